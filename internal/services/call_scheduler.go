package services

import (
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/rhythm/internal/models"
)

// CallBatchSize is the number of future calls kept per friend.
const CallBatchSize = 4

var ErrCallCadenceRequired = errors.New("call cadence required")

// CallScheduler spreads friend calls across days that carry no all-day
// occurrence yet.
type CallScheduler struct {
	occurrences OccurrenceRepository
	friends     FriendRepository
	ledger      *DeletionLedger
	logger      logrus.FieldLogger
}

func NewCallScheduler(occurrences OccurrenceRepository, friends FriendRepository, ledger *DeletionLedger, logger logrus.FieldLogger) *CallScheduler {
	return &CallScheduler{
		occurrences: occurrences,
		friends:     friends,
		ledger:      ledger,
		logger:      ensureLogger(logger),
	}
}

// ScheduleNextCalls creates CallBatchSize call occurrences for friend, each
// roughly one cadence after the previous, and returns the chosen days.
func (service *CallScheduler) ScheduleNextCalls(friend models.Friend, fromDate time.Time) ([]time.Time, error) {
	if !friend.SchedulesCalls() {
		return nil, ErrCallCadenceRequired
	}

	cadence := friend.CadenceDays
	seriesName := friend.CallSeriesName()
	scheduled := make([]time.Time, 0, CallBatchSize)
	target := AddDays(fromDate, cadence)

	for i := 0; i < CallBatchSize; i++ {
		chosen, found, err := service.FindAvailableDay(seriesName, target, cadence)
		if err != nil {
			return scheduled, err
		}
		if !found {
			chosen = target
			suppressed, err := service.isSuppressed(seriesName, chosen)
			if err != nil {
				return scheduled, err
			}
			if suppressed {
				service.logger.WithFields(logrus.Fields{
					"series": seriesName,
					"day":    FormatDay(chosen),
				}).Debug("skipping call on deleted day")
				target = AddDays(chosen, cadence)
				continue
			}
		}

		entry := models.Occurrence{
			Name:            seriesName,
			Date:            chosen,
			DurationMinutes: models.DefaultCallDurationMinutes,
			AllDay:          true,
			CategoryID:      models.CategoryCallsID,
			IntervalDays:    cadence,
		}
		if err := service.occurrences.Create(&entry); err != nil {
			if !errors.Is(err, ErrConstraintViolation) {
				return scheduled, err
			}
			service.logger.WithFields(logrus.Fields{
				"series": seriesName,
				"day":    FormatDay(chosen),
			}).Warn("call already scheduled on day")
		}

		scheduled = append(scheduled, chosen)
		target = AddDays(chosen, cadence)
	}
	return scheduled, nil
}

// FindAvailableDay probes target, then alternating earlier and later days up
// to cadence days away, and returns the first day without an all-day
// occurrence. Days on which the series was deleted are skipped.
func (service *CallScheduler) FindAvailableDay(seriesName string, target time.Time, cadence int) (time.Time, bool, error) {
	for _, offset := range ProbeOffsets(cadence) {
		candidate := AddDays(target, offset)
		dayStart, dayEnd := DayRange(candidate)

		busy, err := service.occurrences.HasAllDayInRange(dayStart, dayEnd)
		if err != nil {
			return time.Time{}, false, err
		}
		if busy {
			continue
		}

		deleted, err := service.isSuppressed(seriesName, candidate)
		if err != nil {
			return time.Time{}, false, err
		}
		if deleted {
			continue
		}
		return candidate, true, nil
	}
	return CalendarDay(target), false, nil
}

func (service *CallScheduler) isSuppressed(seriesName string, day time.Time) (bool, error) {
	if service.ledger == nil || seriesName == "" {
		return false, nil
	}
	return service.ledger.IsDeleted(seriesName, day)
}

// ProbeOffsets returns 0, -1, +1, -2, +2, ... up to -cadence, +cadence.
func ProbeOffsets(cadence int) []int {
	if cadence < 0 {
		cadence = 0
	}
	offsets := make([]int, 0, 2*cadence+1)
	offsets = append(offsets, 0)
	for step := 1; step <= cadence; step++ {
		offsets = append(offsets, -step, step)
	}
	return offsets
}

// TopUpIfNeeded schedules a new batch for every call series that has fewer
// than CallBatchSize occurrences in [forDate, forDate + CallBatchSize*cadence].
// Series cancelled by a future deletion are left alone.
func (service *CallScheduler) TopUpIfNeeded(forDate time.Time) (int, error) {
	forDate = CalendarDay(forDate)
	series, err := service.occurrences.ListRepeatingByCategory(models.CategoryCallsID)
	if err != nil {
		return 0, err
	}

	toppedUp := 0
	seen := make(map[string]struct{}, len(series))
	for _, entry := range series {
		if _, ok := seen[entry.Name]; ok {
			continue
		}
		seen[entry.Name] = struct{}{}

		friendName, ok := strings.CutPrefix(entry.Name, models.CallNamePrefix)
		if !ok || friendName == "" {
			continue
		}

		friend, found, err := service.friends.FindByName(friendName)
		if err != nil {
			return toppedUp, err
		}
		if !found || !friend.SchedulesCalls() {
			service.logger.WithField("series", entry.Name).Debug("skipping call series without schedulable friend")
			continue
		}

		if service.ledger != nil {
			cancelled, err := service.ledger.SeriesCancelled(entry.Name)
			if err != nil {
				return toppedUp, err
			}
			if cancelled {
				service.logger.WithField("series", entry.Name).Debug("skipping cancelled call series")
				continue
			}
		}

		from, needed, err := service.replenishFrom(entry.Name, forDate, friend.CadenceDays)
		if err != nil {
			return toppedUp, err
		}
		if !needed {
			continue
		}

		if _, err := service.ScheduleNextCalls(friend, from); err != nil {
			return toppedUp, err
		}
		toppedUp++
	}
	return toppedUp, nil
}

// replenishFrom reports whether seriesName needs a new batch and the day the
// batch starts from.
func (service *CallScheduler) replenishFrom(seriesName string, forDate time.Time, cadence int) (time.Time, bool, error) {
	windowEnd := AddDays(forDate, CallBatchSize*cadence)
	entries, err := service.occurrences.ListBySeriesNamePrefix(seriesName)
	if err != nil {
		return time.Time{}, false, err
	}

	inWindow := 0
	var latest time.Time
	for _, entry := range entries {
		if entry.Name != seriesName || entry.CategoryID != models.CategoryCallsID {
			continue
		}
		day := CalendarDay(entry.Date)
		if !day.Before(forDate) && !day.After(windowEnd) {
			inWindow++
		}
		if latest.IsZero() || day.After(latest) {
			latest = day
		}
	}

	if inWindow >= CallBatchSize {
		return time.Time{}, false, nil
	}
	if latest.IsZero() {
		return forDate, true, nil
	}
	return latest, true, nil
}
