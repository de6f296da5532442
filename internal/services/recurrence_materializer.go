package services

import (
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/rhythm/internal/models"
)

// RecurrenceMaterializer turns repeating templates into concrete occurrences
// for a single calendar day.
type RecurrenceMaterializer struct {
	occurrences OccurrenceRepository
	ledger      *DeletionLedger
	logger      logrus.FieldLogger
}

func NewRecurrenceMaterializer(occurrences OccurrenceRepository, ledger *DeletionLedger, logger logrus.FieldLogger) *RecurrenceMaterializer {
	return &RecurrenceMaterializer{
		occurrences: occurrences,
		ledger:      ledger,
		logger:      ensureLogger(logger),
	}
}

// MaterializeRepeatingEvents inserts one occurrence per due series on day and
// returns how many rows were written. Call series are handled by the call
// scheduler and never appear here.
func (service *RecurrenceMaterializer) MaterializeRepeatingEvents(day time.Time) (int, error) {
	day = CalendarDay(day)
	templates, err := service.occurrences.ListRepeatingTemplates(models.CategoryCallsID)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, template := range UniqueSeriesTemplates(templates) {
		if !IsDueOn(template, day) {
			continue
		}

		deleted, err := service.ledger.IsDeleted(template.Name, day)
		if err != nil {
			return created, err
		}
		if deleted {
			continue
		}

		dayStart, dayEnd := DayRange(day)
		exists, err := service.occurrences.ExistsForSeriesOnDay(template.Name, dayStart, dayEnd, template.Hour)
		if err != nil {
			return created, err
		}
		if exists {
			continue
		}

		entry := instanceOf(template, day)
		if err := service.occurrences.Create(&entry); err != nil {
			if errors.Is(err, ErrConstraintViolation) {
				service.logger.WithFields(logrus.Fields{
					"series": template.Name,
					"day":    FormatDay(day),
				}).Warn("occurrence already materialized")
				continue
			}
			return created, err
		}
		created++
	}
	return created, nil
}

// UniqueSeriesTemplates keeps the first template per series name. Input is
// expected in ascending id order so the earliest row wins.
func UniqueSeriesTemplates(templates []models.Occurrence) []models.Occurrence {
	seen := make(map[string]struct{}, len(templates))
	unique := make([]models.Occurrence, 0, len(templates))
	for _, template := range templates {
		if _, ok := seen[template.Name]; ok {
			continue
		}
		seen[template.Name] = struct{}{}
		unique = append(unique, template)
	}
	return unique
}

// IsDueOn reports whether day lies on or after the template's start date at a
// whole multiple of its interval.
func IsDueOn(template models.Occurrence, day time.Time) bool {
	if template.IntervalDays <= 0 {
		return false
	}
	offset := DaysBetween(template.Date, day)
	if offset < 0 {
		return false
	}
	return offset%template.IntervalDays == 0
}

func instanceOf(template models.Occurrence, day time.Time) models.Occurrence {
	return models.Occurrence{
		Name:            template.Name,
		Date:            CalendarDay(day),
		Hour:            template.Hour,
		Minute:          template.Minute,
		DurationMinutes: template.DurationMinutes,
		AllDay:          template.AllDay,
		CategoryID:      template.CategoryID,
		IntervalDays:    template.IntervalDays,
	}
}
