package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/rhythm/internal/models"
)

const DefaultMaxRangeDays = 93

var (
	ErrMaterializeFailed  = errors.New("materialize day failed")
	ErrOccurrenceNotFound = errors.New("occurrence not found")
	ErrOccurrenceExists   = errors.New("occurrence already exists")
	ErrInvalidRange       = errors.New("invalid date range")
)

type DayOccurrences struct {
	Day         time.Time           `json:"-"`
	Date        string              `json:"date"`
	Occurrences []models.Occurrence `json:"occurrences"`
}

// CalendarService runs the per-day materialization pipeline and the direct
// occurrence edits, each inside its own store transaction.
type CalendarService struct {
	store        Transactor
	location     *time.Location
	maxRangeDays int
	now          func() time.Time
	logger       logrus.FieldLogger
}

func NewCalendarService(store Transactor, location *time.Location, maxRangeDays int, logger logrus.FieldLogger) *CalendarService {
	if location == nil {
		location = time.UTC
	}
	if maxRangeDays <= 0 {
		maxRangeDays = DefaultMaxRangeDays
	}
	return &CalendarService{
		store:        store,
		location:     location,
		maxRangeDays: maxRangeDays,
		now:          time.Now,
		logger:       ensureLogger(logger),
	}
}

func (service *CalendarService) Today() time.Time {
	return DateAtLocation(service.now(), service.location)
}

// ViewDay materializes repeating events, tops up call batches and ensures
// birthday calls for day, then returns the day's occurrences. Nothing is
// written when any step fails.
func (service *CalendarService) ViewDay(ctx context.Context, day time.Time) ([]models.Occurrence, error) {
	day = CalendarDay(day)
	var occurrences []models.Occurrence
	err := service.store.WithinTransaction(ctx, func(repos Repositories) error {
		if err := service.materializeDay(repos, day); err != nil {
			return err
		}
		dayStart, dayEnd := DayRange(day)
		entries, err := repos.Occurrences.ListByDayRange(dayStart, dayEnd)
		if err != nil {
			return err
		}
		occurrences = entries
		return nil
	})
	if err != nil {
		service.logger.WithError(err).WithField("day", FormatDay(day)).Error("materialize day failed")
		return nil, fmt.Errorf("%w: %w", ErrMaterializeFailed, err)
	}
	return occurrences, nil
}

// ViewRange calls ViewDay for every day in [from, to].
func (service *CalendarService) ViewRange(ctx context.Context, from time.Time, to time.Time) ([]DayOccurrences, error) {
	days, err := service.rangeDays(from, to)
	if err != nil {
		return nil, err
	}

	result := make([]DayOccurrences, 0, len(days))
	for _, day := range days {
		occurrences, err := service.ViewDay(ctx, day)
		if err != nil {
			return nil, err
		}
		result = append(result, DayOccurrences{
			Day:         day,
			Date:        FormatDay(day),
			Occurrences: occurrences,
		})
	}
	return result, nil
}

func (service *CalendarService) rangeDays(from time.Time, to time.Time) ([]time.Time, error) {
	from = CalendarDay(from)
	to = CalendarDay(to)
	span := DaysBetween(from, to)
	if span < 0 || span+1 > service.maxRangeDays {
		return nil, ErrInvalidRange
	}
	days := make([]time.Time, 0, span+1)
	for offset := 0; offset <= span; offset++ {
		days = append(days, AddDays(from, offset))
	}
	return days, nil
}

func (service *CalendarService) materializeDay(repos Repositories, day time.Time) error {
	ledger := NewDeletionLedger(repos.Deletions, service.now)

	materialized, err := NewRecurrenceMaterializer(repos.Occurrences, ledger, service.logger).MaterializeRepeatingEvents(day)
	if err != nil {
		return err
	}
	toppedUp, err := NewCallScheduler(repos.Occurrences, repos.Friends, ledger, service.logger).TopUpIfNeeded(day)
	if err != nil {
		return err
	}
	birthdays, err := NewBirthdayScheduler(repos.Occurrences, repos.Friends, ledger, service.logger).EnsureBirthdayCall(day)
	if err != nil {
		return err
	}

	if materialized+toppedUp+birthdays > 0 {
		service.logger.WithFields(logrus.Fields{
			"day":          FormatDay(day),
			"materialized": materialized,
			"call_batches": toppedUp,
			"birthdays":    birthdays,
		}).Info("day materialized")
	}
	return nil
}

func (service *CalendarService) CreateOccurrence(ctx context.Context, input OccurrenceInput) (models.Occurrence, error) {
	normalized, err := NormalizeOccurrenceInput(input)
	if err != nil {
		return models.Occurrence{}, err
	}

	entry := models.Occurrence{}
	normalized.applyTo(&entry)
	err = service.store.WithinTransaction(ctx, func(repos Repositories) error {
		return repos.Occurrences.Create(&entry)
	})
	if err != nil {
		return models.Occurrence{}, occurrenceWriteError(err)
	}
	return entry, nil
}

func (service *CalendarService) UpdateOccurrence(ctx context.Context, id uint, input OccurrenceInput) (models.Occurrence, error) {
	normalized, err := NormalizeOccurrenceInput(input)
	if err != nil {
		return models.Occurrence{}, err
	}

	var updated models.Occurrence
	err = service.store.WithinTransaction(ctx, func(repos Repositories) error {
		entry, err := repos.Occurrences.FindByID(id)
		if err != nil {
			return err
		}
		normalized.applyTo(&entry)
		if err := repos.Occurrences.Save(&entry); err != nil {
			return err
		}
		updated = entry
		return nil
	})
	if err != nil {
		return models.Occurrence{}, occurrenceWriteError(err)
	}
	return updated, nil
}

// SetOccurrenceDone flips the completion flag. Completing a call also moves
// the friend's last-call date forward.
func (service *CalendarService) SetOccurrenceDone(ctx context.Context, id uint, done bool) (models.Occurrence, error) {
	var updated models.Occurrence
	err := service.store.WithinTransaction(ctx, func(repos Repositories) error {
		entry, err := repos.Occurrences.FindByID(id)
		if err != nil {
			return err
		}
		entry.Done = done
		if err := repos.Occurrences.Save(&entry); err != nil {
			return err
		}
		updated = entry

		if !done || !entry.IsCall() {
			return nil
		}
		friendName, ok := strings.CutPrefix(entry.Name, models.CallNamePrefix)
		if !ok {
			return nil
		}
		friend, found, err := repos.Friends.FindByName(friendName)
		if err != nil || !found {
			return err
		}
		if friend.LastCall != nil && !friend.LastCall.Before(entry.Date) {
			return nil
		}
		return repos.Friends.UpdateLastCall(friend.ID, CalendarDay(entry.Date))
	})
	if err != nil {
		return models.Occurrence{}, occurrenceWriteError(err)
	}
	return updated, nil
}

// DeleteOccurrence records the deletion in the ledger and removes the row in
// one transaction. A zero day means the occurrence's own date. With
// cancelFuture the already-materialized later rows of the series go too.
func (service *CalendarService) DeleteOccurrence(ctx context.Context, id uint, day time.Time, cancelFuture bool) (models.Deletion, error) {
	var recorded models.Deletion
	err := service.store.WithinTransaction(ctx, func(repos Repositories) error {
		entry, err := repos.Occurrences.FindByID(id)
		if err != nil {
			return err
		}
		instanceDay := CalendarDay(entry.Date)
		if !day.IsZero() {
			instanceDay = CalendarDay(day)
		}

		ledger := NewDeletionLedger(repos.Deletions, service.now)
		recorded, err = ledger.RecordDeletion(entry.ID, entry.Name, instanceDay, entry.Hour, cancelFuture)
		if err != nil {
			return err
		}
		if err := repos.Occurrences.Delete(entry.ID); err != nil {
			return err
		}
		if cancelFuture {
			removed, err := repos.Occurrences.DeleteSeriesFrom(entry.Name, AddDays(instanceDay, 1))
			if err != nil {
				return err
			}
			service.logger.WithFields(logrus.Fields{
				"series":  entry.Name,
				"from":    FormatDay(instanceDay),
				"removed": removed,
			}).Info("series cancelled")
		}
		return nil
	})
	if err != nil {
		return models.Deletion{}, occurrenceWriteError(err)
	}
	return recorded, nil
}

func occurrenceWriteError(err error) error {
	switch {
	case errors.Is(err, ErrRecordNotFound):
		return ErrOccurrenceNotFound
	case errors.Is(err, ErrConstraintViolation):
		return ErrOccurrenceExists
	default:
		return err
	}
}
