package service

import (
	"errors"
	"strings"

	"learnspace_backend/internal/model"
	"learnspace_backend/internal/repository"
	"learnspace_backend/internal/util"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CourseService struct {
	courseRepo *repository.CourseRepository
	logger     *zap.Logger
}

func NewCourseService(courseRepo *repository.CourseRepository, logger *zap.Logger) *CourseService {
	return &CourseService{courseRepo: courseRepo, logger: logger}
}

type CreateCourseInput struct {
	CommunityID string `json:"communityId" binding:"required"`
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description"`
	CoverURL    string `json:"coverUrl"`
}

type UpdateCourseInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	CoverURL    *string `json:"coverUrl"`
}

func (s *CourseService) Create(authorID uint, input CreateCourseInput) (*model.Course, error) {
	course := &model.Course{
		CommunityID: input.CommunityID,
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		CoverURL:    input.CoverURL,
		Status:      model.CourseDraft,
		AuthorID:    authorID,
	}
	if err := s.courseRepo.Create(course); err != nil {
		return nil, err
	}
	s.logger.Info("course created",
		zap.String("courseId", course.ID),
		zap.Uint("authorId", authorID))
	return course, nil
}

func (s *CourseService) Get(id string) (*model.Course, error) {
	course, err := s.courseRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCourseNotFound
	}
	return course, err
}

// GetWithOutline returns the course plus its module/lesson tree and the
// stats derived from that tree.
func (s *CourseService) GetWithOutline(id string) (*model.Course, []ModuleDraft, OutlineStats, error) {
	course, err := s.courseRepo.FindWithOutline(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, OutlineStats{}, util.ErrCourseNotFound
	}
	if err != nil {
		return nil, nil, OutlineStats{}, err
	}
	outline := OutlineFromCourse(course)
	return course, outline, ComputeOutlineStats(outline), nil
}

func (s *CourseService) ListByCommunity(communityID string, publishedOnly bool) ([]model.Course, error) {
	return s.courseRepo.FindByCommunity(communityID, publishedOnly)
}

func (s *CourseService) Update(id string, actorID uint, actorRole model.UserRole, input UpdateCourseInput) (*model.Course, error) {
	course, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if !canEditCourse(course, actorID, actorRole) {
		return nil, util.ErrPermissionDenied
	}

	if input.Title != nil {
		course.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		course.Description = *input.Description
	}
	if input.CoverURL != nil {
		course.CoverURL = *input.CoverURL
	}
	if err := s.courseRepo.Update(course); err != nil {
		return nil, err
	}
	return course, nil
}

// SetStatus flips a course between draft and published. Publishing an
// empty course is allowed; the catalog simply shows it with zero lessons.
func (s *CourseService) SetStatus(id string, actorID uint, actorRole model.UserRole, status model.CourseStatus) error {
	course, err := s.Get(id)
	if err != nil {
		return err
	}
	if !canEditCourse(course, actorID, actorRole) {
		return util.ErrPermissionDenied
	}
	if err := s.courseRepo.UpdateStatus(id, status); err != nil {
		return err
	}
	s.logger.Info("course status changed",
		zap.String("courseId", id),
		zap.String("status", string(status)))
	return nil
}

func (s *CourseService) Delete(id string, actorID uint, actorRole model.UserRole) error {
	course, err := s.Get(id)
	if err != nil {
		return err
	}
	if !canEditCourse(course, actorID, actorRole) {
		return util.ErrPermissionDenied
	}
	return s.courseRepo.Delete(id)
}

// SaveOutline replaces the persisted module/lesson tree of a course with
// the given one. Rows are rewritten wholesale and temp ids are replaced
// with durable ones. Inserts after the initial wipe run sequentially; a
// mid-save failure leaves a partial tree the editor can re-save over.
func (s *CourseService) SaveOutline(courseID string, actorID uint, actorRole model.UserRole, outline []ModuleDraft) ([]ModuleDraft, error) {
	course, err := s.Get(courseID)
	if err != nil {
		return nil, err
	}
	if !canEditCourse(course, actorID, actorRole) {
		return nil, util.ErrPermissionDenied
	}

	if err := s.courseRepo.DeleteOutline(courseID); err != nil {
		return nil, err
	}

	saved := make([]ModuleDraft, 0, len(outline))
	for i, m := range outline {
		module := &model.CourseModule{
			CourseID:    courseID,
			Title:       m.Title,
			Description: m.Description,
			OrderIndex:  i,
		}
		if !strings.HasPrefix(m.ID, "temp-") && m.ID != "" {
			module.ID = m.ID
		}
		if err := s.courseRepo.CreateModule(module); err != nil {
			return nil, err
		}

		savedModule := ModuleDraft{
			ID:          module.ID,
			Title:       module.Title,
			Description: module.Description,
			OrderIndex:  i,
			Lessons:     make([]LessonDraft, 0, len(m.Lessons)),
		}
		for j, l := range m.Lessons {
			lesson := &model.Lesson{
				ModuleID:        module.ID,
				Title:           l.Title,
				Content:         l.Content,
				VideoURL:        l.VideoURL,
				DurationMinutes: l.DurationMinutes,
				OrderIndex:      j,
			}
			if !strings.HasPrefix(l.ID, "temp-") && l.ID != "" {
				lesson.ID = l.ID
			}
			if err := s.courseRepo.CreateLesson(lesson); err != nil {
				return nil, err
			}
			savedModule.Lessons = append(savedModule.Lessons, LessonDraft{
				ID:              lesson.ID,
				Title:           lesson.Title,
				Content:         lesson.Content,
				VideoURL:        lesson.VideoURL,
				DurationMinutes: lesson.DurationMinutes,
				OrderIndex:      j,
			})
		}
		saved = append(saved, savedModule)
	}

	s.logger.Info("course outline saved",
		zap.String("courseId", courseID),
		zap.Int("modules", len(saved)))
	return saved, nil
}

// RenderLesson returns a lesson with its content converted to HTML.
func (s *CourseService) RenderLesson(lessonID string) (*model.Lesson, string, error) {
	lesson, err := s.courseRepo.FindLessonByID(lessonID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", util.ErrLessonNotFound
	}
	if err != nil {
		return nil, "", err
	}
	return lesson, util.RenderLessonContent(lesson.Content), nil
}

// Exists reports whether a course row is present, used by cleanup jobs.
func (s *CourseService) Exists(id string) bool {
	_, err := s.courseRepo.FindByID(id)
	return err == nil
}

// OutlineFromCourse converts the persisted tree into the editing model.
// Rows arrive ordered by order_index, so array position and index agree.
func OutlineFromCourse(course *model.Course) []ModuleDraft {
	outline := make([]ModuleDraft, 0, len(course.Modules))
	for _, m := range course.Modules {
		draft := ModuleDraft{
			ID:          m.ID,
			Title:       m.Title,
			Description: m.Description,
			OrderIndex:  m.OrderIndex,
			Lessons:     make([]LessonDraft, 0, len(m.Lessons)),
		}
		for _, l := range m.Lessons {
			draft.Lessons = append(draft.Lessons, LessonDraft{
				ID:              l.ID,
				Title:           l.Title,
				Content:         l.Content,
				VideoURL:        l.VideoURL,
				DurationMinutes: l.DurationMinutes,
				OrderIndex:      l.OrderIndex,
			})
		}
		outline = append(outline, draft)
	}
	return outline
}

func canEditCourse(course *model.Course, actorID uint, actorRole model.UserRole) bool {
	return course.AuthorID == actorID || actorRole == model.Admin
}
