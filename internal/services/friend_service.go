package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/rhythm/internal/models"
)

const maxCadenceDays = 366

var (
	ErrFriendNotFound     = errors.New("friend not found")
	ErrFriendExists       = errors.New("friend already exists")
	ErrInvalidFriendInput = errors.New("invalid friend input")
)

type FriendInput struct {
	Name          string
	CadenceDays   int
	BirthdayMonth int
	BirthdayDay   int
	BirthdayOnly  bool
}

type FriendService struct {
	store    Transactor
	location *time.Location
	now      func() time.Time
	logger   logrus.FieldLogger
}

func NewFriendService(store Transactor, location *time.Location, logger logrus.FieldLogger) *FriendService {
	if location == nil {
		location = time.UTC
	}
	return &FriendService{
		store:    store,
		location: location,
		now:      time.Now,
		logger:   ensureLogger(logger),
	}
}

func NormalizeFriendInput(input FriendInput) (FriendInput, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return FriendInput{}, ErrInvalidFriendInput
	}
	if input.CadenceDays < 0 || input.CadenceDays > maxCadenceDays {
		return FriendInput{}, ErrInvalidFriendInput
	}

	hasBirthday := input.BirthdayMonth != 0 || input.BirthdayDay != 0
	if hasBirthday && !IsValidBirthday(input.BirthdayMonth, input.BirthdayDay) {
		return FriendInput{}, ErrInvalidFriendInput
	}
	if input.BirthdayOnly {
		if !hasBirthday {
			return FriendInput{}, ErrInvalidFriendInput
		}
		input.CadenceDays = 0
	}
	return input, nil
}

// IsValidBirthday accepts any month/day pair that exists in a leap year.
func IsValidBirthday(month int, day int) bool {
	if month < 1 || month > 12 || day < 1 {
		return false
	}
	lastDay := time.Date(2000, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
	return day <= lastDay
}

func (input FriendInput) applyTo(friend *models.Friend) {
	friend.Name = input.Name
	friend.CadenceDays = input.CadenceDays
	friend.BirthdayMonth = input.BirthdayMonth
	friend.BirthdayDay = input.BirthdayDay
	friend.BirthdayOnly = input.BirthdayOnly
}

// CreateFriend stores the friend and, in the same transaction, schedules the
// first batch of calls counted from today.
func (service *FriendService) CreateFriend(ctx context.Context, input FriendInput) (models.Friend, []time.Time, error) {
	normalized, err := NormalizeFriendInput(input)
	if err != nil {
		return models.Friend{}, nil, err
	}

	friend := models.Friend{}
	normalized.applyTo(&friend)
	today := DateAtLocation(service.now(), service.location)

	var scheduled []time.Time
	err = service.store.WithinTransaction(ctx, func(repos Repositories) error {
		if err := repos.Friends.Create(&friend); err != nil {
			return err
		}
		if !friend.SchedulesCalls() {
			return nil
		}
		ledger := NewDeletionLedger(repos.Deletions, service.now)
		days, err := NewCallScheduler(repos.Occurrences, repos.Friends, ledger, service.logger).ScheduleNextCalls(friend, today)
		if err != nil {
			return err
		}
		scheduled = days
		return nil
	})
	if err != nil {
		return models.Friend{}, nil, friendWriteError(err)
	}

	service.logger.WithFields(logrus.Fields{
		"friend": friend.Name,
		"calls":  len(scheduled),
	}).Info("friend created")
	return friend, scheduled, nil
}

// UpdateFriend changes the friend's settings. Calls already on the calendar
// keep their dates; the next top-up uses the new cadence.
func (service *FriendService) UpdateFriend(ctx context.Context, id uint, input FriendInput) (models.Friend, error) {
	normalized, err := NormalizeFriendInput(input)
	if err != nil {
		return models.Friend{}, err
	}

	var updated models.Friend
	err = service.store.WithinTransaction(ctx, func(repos Repositories) error {
		friend, err := repos.Friends.FindByID(id)
		if err != nil {
			return err
		}
		normalized.applyTo(&friend)
		if err := repos.Friends.Save(&friend); err != nil {
			return err
		}
		updated = friend
		return nil
	})
	if err != nil {
		return models.Friend{}, friendWriteError(err)
	}
	return updated, nil
}

func (service *FriendService) DeleteFriend(ctx context.Context, id uint) error {
	err := service.store.WithinTransaction(ctx, func(repos Repositories) error {
		return repos.Friends.Delete(id)
	})
	if err != nil {
		return friendWriteError(err)
	}
	return nil
}

func (service *FriendService) ListFriends(ctx context.Context) ([]models.Friend, error) {
	var friends []models.Friend
	err := service.store.WithinTransaction(ctx, func(repos Repositories) error {
		entries, err := repos.Friends.List()
		if err != nil {
			return err
		}
		friends = entries
		return nil
	})
	if err != nil {
		return nil, err
	}
	return friends, nil
}

func friendWriteError(err error) error {
	switch {
	case errors.Is(err, ErrRecordNotFound):
		return ErrFriendNotFound
	case errors.Is(err, ErrConstraintViolation):
		return ErrFriendExists
	default:
		return err
	}
}
