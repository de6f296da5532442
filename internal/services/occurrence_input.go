package services

import (
	"errors"
	"strings"
	"time"

	"github.com/terraincognita07/rhythm/internal/models"
)

const maxDurationMinutes = 24 * 60

var ErrInvalidOccurrenceInput = errors.New("invalid occurrence input")

type OccurrenceInput struct {
	Name            string
	Date            time.Time
	Hour            int
	Minute          int
	DurationMinutes int
	AllDay          bool
	CategoryID      uint
	IntervalDays    int
}

// NormalizeOccurrenceInput validates input and fills the editor defaults.
func NormalizeOccurrenceInput(input OccurrenceInput) (OccurrenceInput, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" || input.Date.IsZero() {
		return OccurrenceInput{}, ErrInvalidOccurrenceInput
	}
	if input.Hour < 0 || input.Hour > 23 || input.Minute < 0 || input.Minute > 59 {
		return OccurrenceInput{}, ErrInvalidOccurrenceInput
	}
	if input.DurationMinutes < 0 || input.DurationMinutes > maxDurationMinutes || input.IntervalDays < 0 {
		return OccurrenceInput{}, ErrInvalidOccurrenceInput
	}

	input.Date = CalendarDay(input.Date)
	if input.DurationMinutes == 0 {
		input.DurationMinutes = models.DefaultDurationMinutes
	}
	if input.CategoryID == 0 {
		input.CategoryID = models.CategoryLifeID
	}
	if input.AllDay {
		input.Hour = 0
		input.Minute = 0
	}
	return input, nil
}

func (input OccurrenceInput) applyTo(entry *models.Occurrence) {
	entry.Name = input.Name
	entry.Date = input.Date
	entry.Hour = input.Hour
	entry.Minute = input.Minute
	entry.DurationMinutes = input.DurationMinutes
	entry.AllDay = input.AllDay
	entry.CategoryID = input.CategoryID
	entry.IntervalDays = input.IntervalDays
}
