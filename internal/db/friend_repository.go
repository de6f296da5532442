package db

import (
	"time"

	"github.com/terraincognita07/rhythm/internal/models"
	"gorm.io/gorm"
)

type FriendRepository struct {
	database *gorm.DB
}

func NewFriendRepository(database *gorm.DB) *FriendRepository {
	return &FriendRepository{database: database}
}

func (repo *FriendRepository) List() ([]models.Friend, error) {
	friends := make([]models.Friend, 0)
	if err := repo.database.Order("name ASC, id ASC").Find(&friends).Error; err != nil {
		return nil, translateError(err)
	}
	return friends, nil
}

func (repo *FriendRepository) ListWithBirthdayOn(month time.Month, day int) ([]models.Friend, error) {
	friends := make([]models.Friend, 0)
	if err := repo.database.
		Where("birthday_month = ? AND birthday_day = ?", int(month), day).
		Order("id ASC").
		Find(&friends).Error; err != nil {
		return nil, translateError(err)
	}
	return friends, nil
}

func (repo *FriendRepository) FindByID(id uint) (models.Friend, error) {
	friend := models.Friend{}
	if err := repo.database.First(&friend, id).Error; err != nil {
		return models.Friend{}, translateError(err)
	}
	return friend, nil
}

func (repo *FriendRepository) FindByName(name string) (models.Friend, bool, error) {
	friend := models.Friend{}
	result := repo.database.Where("name = ?", name).Limit(1).Find(&friend)
	if result.Error != nil {
		return models.Friend{}, false, translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.Friend{}, false, nil
	}
	return friend, true, nil
}

func (repo *FriendRepository) Create(friend *models.Friend) error {
	return translateError(repo.database.Create(friend).Error)
}

func (repo *FriendRepository) Save(friend *models.Friend) error {
	return translateError(repo.database.Save(friend).Error)
}

func (repo *FriendRepository) Delete(id uint) error {
	result := repo.database.Delete(&models.Friend{}, id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return translateError(gorm.ErrRecordNotFound)
	}
	return nil
}

func (repo *FriendRepository) UpdateLastCall(id uint, day time.Time) error {
	result := repo.database.Model(&models.Friend{}).Where("id = ?", id).Update("last_call", day)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return translateError(gorm.ErrRecordNotFound)
	}
	return nil
}
