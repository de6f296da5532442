package db

import (
	"github.com/terraincognita07/rhythm/internal/models"
	"gorm.io/gorm"
)

type CategoryRepository struct {
	database *gorm.DB
}

func NewCategoryRepository(database *gorm.DB) *CategoryRepository {
	return &CategoryRepository{database: database}
}

func (repo *CategoryRepository) List() ([]models.Category, error) {
	categories := make([]models.Category, 0)
	if err := repo.database.Order("id ASC").Find(&categories).Error; err != nil {
		return nil, translateError(err)
	}
	return categories, nil
}

func (repo *CategoryRepository) FindByID(id uint) (models.Category, error) {
	category := models.Category{}
	if err := repo.database.First(&category, id).Error; err != nil {
		return models.Category{}, translateError(err)
	}
	return category, nil
}
