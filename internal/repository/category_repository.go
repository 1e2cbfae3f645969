package repository

import (
	"learnspace_backend/internal/model"

	"gorm.io/gorm"
)

type CategoryRepository struct {
	DB *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{DB: db}
}

func (r *CategoryRepository) FindAll() ([]model.ResourceCategory, error) {
	var categories []model.ResourceCategory
	err := r.DB.Order("name ASC").Find(&categories).Error
	return categories, err
}
