package db

import (
	"strings"
	"time"

	"github.com/terraincognita07/rhythm/internal/models"
	"gorm.io/gorm"
)

type OccurrenceRepository struct {
	database *gorm.DB
}

func NewOccurrenceRepository(database *gorm.DB) *OccurrenceRepository {
	return &OccurrenceRepository{database: database}
}

func (repo *OccurrenceRepository) Create(entry *models.Occurrence) error {
	return translateError(repo.database.Create(entry).Error)
}

func (repo *OccurrenceRepository) Save(entry *models.Occurrence) error {
	return translateError(repo.database.Save(entry).Error)
}

func (repo *OccurrenceRepository) FindByID(id uint) (models.Occurrence, error) {
	entry := models.Occurrence{}
	if err := repo.database.First(&entry, id).Error; err != nil {
		return models.Occurrence{}, translateError(err)
	}
	return entry, nil
}

func (repo *OccurrenceRepository) Delete(id uint) error {
	result := repo.database.Delete(&models.Occurrence{}, id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return translateError(gorm.ErrRecordNotFound)
	}
	return nil
}

func (repo *OccurrenceRepository) DeleteSeriesFrom(name string, dayStart time.Time) (int64, error) {
	result := repo.database.Where("name = ? AND date >= ?", name, dayStart).Delete(&models.Occurrence{})
	return result.RowsAffected, translateError(result.Error)
}

func (repo *OccurrenceRepository) ListByDayRange(dayStart time.Time, dayEnd time.Time) ([]models.Occurrence, error) {
	entries := make([]models.Occurrence, 0)
	if err := repo.database.
		Where("date >= ? AND date < ?", dayStart, dayEnd).
		Order("hour ASC, minute ASC, id ASC").
		Find(&entries).Error; err != nil {
		return nil, translateError(err)
	}
	return entries, nil
}

func (repo *OccurrenceRepository) ListBetween(fromStart time.Time, toEnd time.Time) ([]models.Occurrence, error) {
	entries := make([]models.Occurrence, 0)
	if err := repo.database.
		Where("date >= ? AND date < ?", fromStart, toEnd).
		Order("date ASC, hour ASC, minute ASC, id ASC").
		Find(&entries).Error; err != nil {
		return nil, translateError(err)
	}
	return entries, nil
}

func (repo *OccurrenceRepository) ListBySeriesNamePrefix(prefix string) ([]models.Occurrence, error) {
	entries := make([]models.Occurrence, 0)
	if err := repo.database.
		Where(`name LIKE ? ESCAPE '\'`, escapeLikePattern(prefix)+"%").
		Order("date ASC, hour ASC, minute ASC, id ASC").
		Find(&entries).Error; err != nil {
		return nil, translateError(err)
	}
	return entries, nil
}

func (repo *OccurrenceRepository) ListRepeatingTemplates(excludeCategoryID uint) ([]models.Occurrence, error) {
	entries := make([]models.Occurrence, 0)
	if err := repo.database.
		Where("interval_days > 0 AND category_id <> ?", excludeCategoryID).
		Order("id ASC").
		Find(&entries).Error; err != nil {
		return nil, translateError(err)
	}
	return entries, nil
}

func (repo *OccurrenceRepository) ListRepeatingByCategory(categoryID uint) ([]models.Occurrence, error) {
	entries := make([]models.Occurrence, 0)
	if err := repo.database.
		Where("interval_days > 0 AND category_id = ?", categoryID).
		Order("id ASC").
		Find(&entries).Error; err != nil {
		return nil, translateError(err)
	}
	return entries, nil
}

func (repo *OccurrenceRepository) ExistsForSeriesOnDay(name string, dayStart time.Time, dayEnd time.Time, hour int) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.Occurrence{}).
		Where("name = ? AND hour = ? AND date >= ? AND date < ?", name, hour, dayStart, dayEnd).
		Count(&matched).Error; err != nil {
		return false, translateError(err)
	}
	return matched > 0, nil
}

func (repo *OccurrenceRepository) ExistsAllDayForSeriesOnDay(name string, dayStart time.Time, dayEnd time.Time) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.Occurrence{}).
		Where("name = ? AND all_day = ? AND date >= ? AND date < ?", name, true, dayStart, dayEnd).
		Count(&matched).Error; err != nil {
		return false, translateError(err)
	}
	return matched > 0, nil
}

func (repo *OccurrenceRepository) HasAllDayInRange(dayStart time.Time, dayEnd time.Time) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.Occurrence{}).
		Where("all_day = ? AND date >= ? AND date < ?", true, dayStart, dayEnd).
		Count(&matched).Error; err != nil {
		return false, translateError(err)
	}
	return matched > 0, nil
}

func escapeLikePattern(value string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(value)
}
