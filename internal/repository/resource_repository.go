package repository

import (
	"strings"

	"learnspace_backend/internal/model"

	"gorm.io/gorm"
)

type ResourceRepository struct {
	DB *gorm.DB
}

func NewResourceRepository(db *gorm.DB) *ResourceRepository {
	return &ResourceRepository{DB: db}
}

// ResourceFilter is the search filter set exposed to the library UI.
// Zero values mean "no constraint".
type ResourceFilter struct {
	LessonID     string
	ResourceType model.ResourceType
	Category     string
	Tag          string
	IsPublic     *bool
	Query        string
}

func (r *ResourceRepository) Create(resource *model.LessonResource) error {
	return r.DB.Create(resource).Error
}

func (r *ResourceRepository) FindByID(id string) (*model.LessonResource, error) {
	var resource model.LessonResource
	err := r.DB.First(&resource, "id = ?", id).Error
	return &resource, err
}

func (r *ResourceRepository) FindByLesson(lessonID string) ([]model.LessonResource, error) {
	var resources []model.LessonResource
	err := r.DB.Where("lesson_id = ?", lessonID).
		Order("order_index ASC").
		Find(&resources).Error
	return resources, err
}

func (r *ResourceRepository) Search(filter ResourceFilter) ([]model.LessonResource, error) {
	query := r.DB.Model(&model.LessonResource{})

	if filter.LessonID != "" {
		query = query.Where("lesson_id = ?", filter.LessonID)
	}
	if filter.ResourceType != "" {
		query = query.Where("resource_type = ?", filter.ResourceType)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Tag != "" {
		query = query.Where("tags LIKE ?", "%"+filter.Tag+"%")
	}
	if filter.IsPublic != nil {
		query = query.Where("is_public = ?", *filter.IsPublic)
	}
	if filter.Query != "" {
		like := "%" + strings.ToLower(filter.Query) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(file_name) LIKE ?", like, like)
	}

	var resources []model.LessonResource
	err := query.Order("order_index ASC").Find(&resources).Error
	return resources, err
}

func (r *ResourceRepository) Update(resource *model.LessonResource) error {
	return r.DB.Save(resource).Error
}

func (r *ResourceRepository) Delete(id string) error {
	return r.DB.Delete(&model.LessonResource{}, "id = ?", id).Error
}

func (r *ResourceRepository) CountByLesson(lessonID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.LessonResource{}).
		Where("lesson_id = ?", lessonID).
		Count(&count).Error
	return count, err
}

// BatchUpdateOrder writes a full permutation of order indices in one
// transaction so no partial reorder is ever persisted.
func (r *ResourceRepository) BatchUpdateOrder(ids []string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		for i, id := range ids {
			if err := tx.Model(&model.LessonResource{}).
				Where("id = ?", id).
				Update("order_index", i).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// SetCounters overwrites the cached view/download counters, used by the
// reconciliation job.
func (r *ResourceRepository) SetCounters(id string, views, downloads int64) error {
	return r.DB.Model(&model.LessonResource{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"view_count":     views,
			"download_count": downloads,
		}).Error
}

func (r *ResourceRepository) FindAllIDs() ([]string, error) {
	var ids []string
	err := r.DB.Model(&model.LessonResource{}).Pluck("id", &ids).Error
	return ids, err
}
