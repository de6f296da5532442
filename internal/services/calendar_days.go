package services

import (
	"context"
	"time"

	"github.com/terraincognita07/rhythm/internal/models"
)

type CalendarDayState struct {
	Date        time.Time `json:"-"`
	DateString  string    `json:"date"`
	Day         int       `json:"day"`
	InMonth     bool      `json:"in_month"`
	IsToday     bool      `json:"is_today"`
	HasData     bool      `json:"has_data"`
	AllDayBusy  bool      `json:"all_day_busy"`
	Occurrences int       `json:"occurrences"`
	Calls       int       `json:"calls"`
	Done        int       `json:"done"`
}

// MonthGridRange returns the Sunday-to-Saturday span covering the month that
// contains monthStart.
func MonthGridRange(monthStart time.Time) (time.Time, time.Time) {
	first := CalendarDay(monthStart)
	first = time.Date(first.Year(), first.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := first.AddDate(0, 1, -1)
	gridStart := AddDays(first, -int(first.Weekday()))
	gridEnd := AddDays(monthEnd, 6-int(monthEnd.Weekday()))
	return gridStart, gridEnd
}

func BuildCalendarDayStates(monthStart time.Time, days []DayOccurrences, today time.Time) []CalendarDayState {
	gridStart, gridEnd := MonthGridRange(monthStart)
	month := CalendarDay(monthStart).Month()

	byDate := make(map[string][]models.Occurrence, len(days))
	for _, day := range days {
		byDate[FormatDay(day.Day)] = day.Occurrences
	}
	todayKey := FormatDay(today)

	states := make([]CalendarDayState, 0, 42)
	for day := gridStart; !day.After(gridEnd); day = AddDays(day, 1) {
		key := FormatDay(day)
		state := CalendarDayState{
			Date:       day,
			DateString: key,
			Day:        day.Day(),
			InMonth:    day.Month() == month,
			IsToday:    key == todayKey,
		}
		for _, entry := range byDate[key] {
			state.Occurrences++
			if entry.IsCall() {
				state.Calls++
			}
			if entry.Done {
				state.Done++
			}
			if entry.AllDay {
				state.AllDayBusy = true
			}
		}
		state.HasData = state.Occurrences > 0
		states = append(states, state)
	}
	return states
}

// ViewMonth materializes every day of the month grid around month and
// summarizes each one. The grid is not bound by the range limit.
func (service *CalendarService) ViewMonth(ctx context.Context, month time.Time) ([]CalendarDayState, error) {
	gridStart, gridEnd := MonthGridRange(month)

	days := make([]DayOccurrences, 0, 42)
	for day := gridStart; !day.After(gridEnd); day = AddDays(day, 1) {
		occurrences, err := service.ViewDay(ctx, day)
		if err != nil {
			return nil, err
		}
		days = append(days, DayOccurrences{Day: day, Date: FormatDay(day), Occurrences: occurrences})
	}
	return BuildCalendarDayStates(month, days, service.Today()), nil
}
