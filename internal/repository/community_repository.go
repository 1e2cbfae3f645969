package repository

import (
	"learnspace_backend/internal/model"

	"gorm.io/gorm"
)

type CommunityRepository struct {
	DB *gorm.DB
}

func NewCommunityRepository(db *gorm.DB) *CommunityRepository {
	return &CommunityRepository{DB: db}
}

func (r *CommunityRepository) Create(community *model.Community) error {
	return r.DB.Create(community).Error
}

func (r *CommunityRepository) FindByID(id string) (*model.Community, error) {
	var community model.Community
	err := r.DB.First(&community, "id = ?", id).Error
	return &community, err
}

func (r *CommunityRepository) FindBySlug(slug string) (*model.Community, error) {
	var community model.Community
	err := r.DB.Where("slug = ?", slug).First(&community).Error
	return &community, err
}

func (r *CommunityRepository) FindAll(offset, limit int) ([]model.Community, int64, error) {
	var communities []model.Community
	var total int64

	if err := r.DB.Model(&model.Community{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.DB.Order("created_at DESC").Offset(offset).Limit(limit).Find(&communities).Error
	return communities, total, err
}

func (r *CommunityRepository) Update(community *model.Community) error {
	return r.DB.Save(community).Error
}

func (r *CommunityRepository) Delete(id string) error {
	return r.DB.Delete(&model.Community{}, "id = ?", id).Error
}
