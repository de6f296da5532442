package services

import (
	"context"
	"errors"
	"time"

	"github.com/terraincognita07/rhythm/internal/models"
)

// Storage boundary errors. Repository implementations wrap these so callers
// can match them with errors.Is.
var (
	ErrConstraintViolation = errors.New("constraint violation")
	ErrRecordNotFound      = errors.New("record not found")
)

type OccurrenceRepository interface {
	Create(entry *models.Occurrence) error
	Save(entry *models.Occurrence) error
	FindByID(id uint) (models.Occurrence, error)
	Delete(id uint) error
	DeleteSeriesFrom(name string, dayStart time.Time) (int64, error)
	ListByDayRange(dayStart time.Time, dayEnd time.Time) ([]models.Occurrence, error)
	ListBetween(fromStart time.Time, toEnd time.Time) ([]models.Occurrence, error)
	ListBySeriesNamePrefix(prefix string) ([]models.Occurrence, error)
	ListRepeatingTemplates(excludeCategoryID uint) ([]models.Occurrence, error)
	ListRepeatingByCategory(categoryID uint) ([]models.Occurrence, error)
	ExistsForSeriesOnDay(name string, dayStart time.Time, dayEnd time.Time, hour int) (bool, error)
	ExistsAllDayForSeriesOnDay(name string, dayStart time.Time, dayEnd time.Time) (bool, error)
	HasAllDayInRange(dayStart time.Time, dayEnd time.Time) (bool, error)
}

type DeletionRepository interface {
	Create(entry *models.Deletion) error
	ExistsForSeriesOnDay(name string, dayStart time.Time, dayEnd time.Time) (bool, error)
	ListBySeries(name string) ([]models.Deletion, error)
}

type FriendRepository interface {
	List() ([]models.Friend, error)
	ListWithBirthdayOn(month time.Month, day int) ([]models.Friend, error)
	FindByID(id uint) (models.Friend, error)
	FindByName(name string) (models.Friend, bool, error)
	Create(friend *models.Friend) error
	Save(friend *models.Friend) error
	Delete(id uint) error
	UpdateLastCall(id uint, day time.Time) error
}

type CategoryRepository interface {
	List() ([]models.Category, error)
	FindByID(id uint) (models.Category, error)
}

// Repositories is the set of stores visible inside one unit of work.
type Repositories struct {
	Occurrences OccurrenceRepository
	Deletions   DeletionRepository
	Friends     FriendRepository
	Categories  CategoryRepository
}

// Transactor runs fn inside a single write transaction. A non-nil error from
// fn rolls back every write made through repos.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(repos Repositories) error) error
}
