package api

import (
	"github.com/terraincognita07/rhythm/internal/services"
)

type occurrencePayload struct {
	Name            string `json:"name"`
	Date            string `json:"date"`
	Hour            int    `json:"hour"`
	Minute          int    `json:"minute"`
	DurationMinutes int    `json:"duration_minutes"`
	AllDay          bool   `json:"all_day"`
	CategoryID      uint   `json:"category_id"`
	IntervalDays    int    `json:"interval_days"`
}

func (payload occurrencePayload) toInput() (services.OccurrenceInput, error) {
	day, err := parseDayParam(payload.Date)
	if err != nil {
		return services.OccurrenceInput{}, err
	}
	return services.OccurrenceInput{
		Name:            payload.Name,
		Date:            day,
		Hour:            payload.Hour,
		Minute:          payload.Minute,
		DurationMinutes: payload.DurationMinutes,
		AllDay:          payload.AllDay,
		CategoryID:      payload.CategoryID,
		IntervalDays:    payload.IntervalDays,
	}, nil
}

type donePayload struct {
	Done *bool `json:"done"`
}

type friendPayload struct {
	Name          string `json:"name"`
	CadenceDays   int    `json:"cadence_days"`
	BirthdayMonth int    `json:"birthday_month"`
	BirthdayDay   int    `json:"birthday_day"`
	BirthdayOnly  bool   `json:"birthday_only"`
}

func (payload friendPayload) toInput() services.FriendInput {
	return services.FriendInput{
		Name:          payload.Name,
		CadenceDays:   payload.CadenceDays,
		BirthdayMonth: payload.BirthdayMonth,
		BirthdayDay:   payload.BirthdayDay,
		BirthdayOnly:  payload.BirthdayOnly,
	}
}
