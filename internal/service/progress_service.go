package service

import (
	"errors"

	"learnspace_backend/internal/repository"
	"learnspace_backend/internal/util"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ProgressService struct {
	progressRepo *repository.ProgressRepository
	courseRepo   *repository.CourseRepository
	logger       *zap.Logger
}

func NewProgressService(progressRepo *repository.ProgressRepository, courseRepo *repository.CourseRepository, logger *zap.Logger) *ProgressService {
	return &ProgressService{progressRepo: progressRepo, courseRepo: courseRepo, logger: logger}
}

// CourseProgress is the learner's view of one course: which lessons are
// done and the completion percentage over the current outline. Lessons
// deleted from the outline no longer count, so the percentage can go
// down after an edit.
type CourseProgress struct {
	CourseID         string          `json:"courseId"`
	TotalLessons     int             `json:"totalLessons"`
	CompletedLessons int             `json:"completedLessons"`
	Percent          float64         `json:"percent"`
	Lessons          map[string]bool `json:"lessons"` // lessonID -> completed
}

// MarkCompleted records that a user finished a lesson. Marking twice is
// idempotent.
func (s *ProgressService) MarkCompleted(userID uint, lessonID string) error {
	if _, err := s.courseRepo.FindLessonByID(lessonID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrLessonNotFound
		}
		return err
	}
	return s.progressRepo.MarkCompleted(userID, lessonID)
}

func (s *ProgressService) GetCourseProgress(userID uint, courseID string) (*CourseProgress, error) {
	course, err := s.courseRepo.FindWithOutline(courseID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCourseNotFound
	}
	if err != nil {
		return nil, err
	}

	var lessonIDs []string
	for _, m := range course.Modules {
		for _, l := range m.Lessons {
			lessonIDs = append(lessonIDs, l.ID)
		}
	}

	progress := &CourseProgress{
		CourseID:     courseID,
		TotalLessons: len(lessonIDs),
		Lessons:      make(map[string]bool, len(lessonIDs)),
	}
	for _, id := range lessonIDs {
		progress.Lessons[id] = false
	}
	if len(lessonIDs) == 0 {
		return progress, nil
	}

	rows, err := s.progressRepo.FindByUserAndLessons(userID, lessonIDs)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		if !row.Completed {
			continue
		}
		// Only count lessons still in the outline.
		if _, ok := progress.Lessons[row.LessonID]; ok {
			progress.Lessons[row.LessonID] = true
			progress.CompletedLessons++
		}
	}

	progress.Percent = float64(progress.CompletedLessons) / float64(progress.TotalLessons) * 100
	return progress, nil
}
