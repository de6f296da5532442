package services

import (
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/rhythm/internal/models"
)

type BirthdayScheduler struct {
	occurrences OccurrenceRepository
	friends     FriendRepository
	ledger      *DeletionLedger
	logger      logrus.FieldLogger
}

func NewBirthdayScheduler(occurrences OccurrenceRepository, friends FriendRepository, ledger *DeletionLedger, logger logrus.FieldLogger) *BirthdayScheduler {
	return &BirthdayScheduler{
		occurrences: occurrences,
		friends:     friends,
		ledger:      ledger,
		logger:      ensureLogger(logger),
	}
}

// EnsureBirthdayCall creates the all-day birthday occurrence for every friend
// whose birthday falls on day. Cadence plays no part here.
func (service *BirthdayScheduler) EnsureBirthdayCall(day time.Time) (int, error) {
	day = CalendarDay(day)
	friends, err := service.friends.ListWithBirthdayOn(day.Month(), day.Day())
	if err != nil {
		return 0, err
	}

	dayStart, dayEnd := DayRange(day)
	created := 0
	for _, friend := range friends {
		name := friend.BirthdaySeriesName()

		exists, err := service.occurrences.ExistsAllDayForSeriesOnDay(name, dayStart, dayEnd)
		if err != nil {
			return created, err
		}
		if exists {
			continue
		}

		if service.ledger != nil {
			deleted, err := service.ledger.IsDeleted(name, day)
			if err != nil {
				return created, err
			}
			if deleted {
				continue
			}
		}

		entry := models.Occurrence{
			Name:            name,
			Date:            day,
			DurationMinutes: models.DefaultCallDurationMinutes,
			AllDay:          true,
			CategoryID:      models.CategoryCallsID,
		}
		if err := service.occurrences.Create(&entry); err != nil {
			if errors.Is(err, ErrConstraintViolation) {
				service.logger.WithFields(logrus.Fields{
					"series": name,
					"day":    FormatDay(day),
				}).Warn("birthday already scheduled")
				continue
			}
			return created, err
		}
		created++
	}
	return created, nil
}
