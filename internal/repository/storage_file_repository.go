package repository

import (
	"learnspace_backend/internal/model"

	"gorm.io/gorm"
)

type StorageFileRepository struct {
	DB *gorm.DB
}

func NewStorageFileRepository(db *gorm.DB) *StorageFileRepository {
	return &StorageFileRepository{DB: db}
}

func (r *StorageFileRepository) Create(file *model.StorageFile) error {
	return r.DB.Create(file).Error
}

func (r *StorageFileRepository) FindByID(id string) (*model.StorageFile, error) {
	var file model.StorageFile
	err := r.DB.First(&file, "id = ?", id).Error
	return &file, err
}

func (r *StorageFileRepository) FindByOwner(ownerID uint) ([]model.StorageFile, error) {
	var files []model.StorageFile
	err := r.DB.Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&files).Error
	return files, err
}

func (r *StorageFileRepository) Delete(id string) error {
	return r.DB.Delete(&model.StorageFile{}, "id = ?", id).Error
}
