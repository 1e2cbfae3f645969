package repository

import (
	"time"

	"learnspace_backend/internal/model"

	"gorm.io/gorm"
)

type UsageRepository struct {
	DB *gorm.DB
}

func NewUsageRepository(db *gorm.DB) *UsageRepository {
	return &UsageRepository{DB: db}
}

// Create appends one event to the log. The log is append-only; there are
// no update or delete methods on purpose.
func (r *UsageRepository) Create(event *model.ResourceUsageEvent) error {
	return r.DB.Create(event).Error
}

// FindSince returns all events newer than the cutoff, optionally scoped
// to the resources of one lesson.
func (r *UsageRepository) FindSince(since time.Time, lessonID string) ([]model.ResourceUsageEvent, error) {
	query := r.DB.Where("action_timestamp >= ?", since)

	if lessonID != "" {
		query = query.Where(
			"resource_id IN (?)",
			r.DB.Model(&model.LessonResource{}).Select("id").Where("lesson_id = ?", lessonID),
		)
	}

	var events []model.ResourceUsageEvent
	err := query.Order("action_timestamp ASC").Find(&events).Error
	return events, err
}

// CountByAction tallies view and download events for a single resource
// over the whole log, used to reconcile the cached counters.
func (r *UsageRepository) CountByAction(resourceID string) (views, downloads int64, err error) {
	err = r.DB.Model(&model.ResourceUsageEvent{}).
		Where("resource_id = ? AND action_type = ?", resourceID, model.ActionView).
		Count(&views).Error
	if err != nil {
		return 0, 0, err
	}
	err = r.DB.Model(&model.ResourceUsageEvent{}).
		Where("resource_id = ? AND action_type = ?", resourceID, model.ActionDownload).
		Count(&downloads).Error
	return views, downloads, err
}
