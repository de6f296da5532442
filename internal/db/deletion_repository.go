package db

import (
	"time"

	"github.com/terraincognita07/rhythm/internal/models"
	"gorm.io/gorm"
)

// DeletionRepository is append-only: it exposes no update or delete.
type DeletionRepository struct {
	database *gorm.DB
}

func NewDeletionRepository(database *gorm.DB) *DeletionRepository {
	return &DeletionRepository{database: database}
}

func (repo *DeletionRepository) Create(entry *models.Deletion) error {
	return translateError(repo.database.Create(entry).Error)
}

// ExistsForSeriesOnDay matches a record for the same day, or a record on an
// earlier day that cancelled all future occurrences of the series.
func (repo *DeletionRepository) ExistsForSeriesOnDay(name string, dayStart time.Time, dayEnd time.Time) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.Deletion{}).
		Where("name = ?", name).
		Where("(date >= ? AND date < ?) OR (cancel_future = ? AND date < ?)", dayStart, dayEnd, true, dayEnd).
		Count(&matched).Error; err != nil {
		return false, translateError(err)
	}
	return matched > 0, nil
}

func (repo *DeletionRepository) ListBySeries(name string) ([]models.Deletion, error) {
	entries := make([]models.Deletion, 0)
	if err := repo.database.Where("name = ?", name).Order("date ASC, id ASC").Find(&entries).Error; err != nil {
		return nil, translateError(err)
	}
	return entries, nil
}
