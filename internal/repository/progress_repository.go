package repository

import (
	"time"

	"learnspace_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

// MarkCompleted upserts the completion row for a user/lesson pair.
func (r *ProgressRepository) MarkCompleted(userID uint, lessonID string) error {
	now := time.Now()
	progress := model.LessonProgress{
		UserID:      userID,
		LessonID:    lessonID,
		Completed:   true,
		CompletedAt: &now,
	}
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "lesson_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"completed", "completed_at"}),
	}).Create(&progress).Error
}

func (r *ProgressRepository) FindByUserAndLessons(userID uint, lessonIDs []string) ([]model.LessonProgress, error) {
	var progress []model.LessonProgress
	err := r.DB.Where("user_id = ? AND lesson_id IN ?", userID, lessonIDs).
		Find(&progress).Error
	return progress, err
}

func (r *ProgressRepository) CountCompleted(userID uint, lessonIDs []string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.LessonProgress{}).
		Where("user_id = ? AND lesson_id IN ? AND completed = ?", userID, lessonIDs, true).
		Count(&count).Error
	return count, err
}
