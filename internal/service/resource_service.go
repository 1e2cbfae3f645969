package service

import (
	"errors"
	"time"

	"learnspace_backend/internal/model"
	"learnspace_backend/internal/repository"
	"learnspace_backend/internal/util"
	"learnspace_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CategoryStore is the slice of the category repository the service
// needs. Narrowed to an interface so the builtin fallback is testable.
type CategoryStore interface {
	FindAll() ([]model.ResourceCategory, error)
}

// UsageSink accepts usage events. Satisfied by UsageRepository.
type UsageSink interface {
	Create(event *model.ResourceUsageEvent) error
}

type ResourceService struct {
	resourceRepo *repository.ResourceRepository
	categories   CategoryStore
	usage        UsageSink
	logger       *zap.Logger
}

func NewResourceService(
	resourceRepo *repository.ResourceRepository,
	categories CategoryStore,
	usage UsageSink,
	logger *zap.Logger,
) *ResourceService {
	return &ResourceService{
		resourceRepo: resourceRepo,
		categories:   categories,
		usage:        usage,
		logger:       logger,
	}
}

type CreateResourceInput struct {
	LessonID     string                `json:"lessonId" binding:"required"`
	Title        string                `json:"title" binding:"required,max=255"`
	ResourceType model.ResourceType    `json:"resourceType" binding:"required"`
	Details      model.ResourceDetails `json:"details"`
	Category     string                `json:"category"`
	Tags         string                `json:"tags"`
	IsPublic     bool                  `json:"isPublic"`
}

type UpdateResourceInput struct {
	Title    *string                `json:"title"`
	Details  *model.ResourceDetails `json:"details"`
	Category *string                `json:"category"`
	Tags     *string                `json:"tags"`
	IsPublic *bool                  `json:"isPublic"`
}

// Create appends a resource at the end of its lesson's list.
func (s *ResourceService) Create(input CreateResourceInput) (*model.LessonResource, error) {
	count, err := s.resourceRepo.CountByLesson(input.LessonID)
	if err != nil {
		return nil, err
	}

	resource := &model.LessonResource{
		LessonID:     input.LessonID,
		Title:        input.Title,
		ResourceType: input.ResourceType,
		Category:     input.Category,
		Tags:         input.Tags,
		IsPublic:     input.IsPublic,
		OrderIndex:   int(count),
	}
	resource.ApplyDetails(input.Details)

	if err := s.resourceRepo.Create(resource); err != nil {
		return nil, err
	}
	return resource, nil
}

func (s *ResourceService) Get(id string) (*model.LessonResource, error) {
	resource, err := s.resourceRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrResourceNotFound
	}
	return resource, err
}

func (s *ResourceService) ListByLesson(lessonID string) ([]model.LessonResource, error) {
	return s.resourceRepo.FindByLesson(lessonID)
}

func (s *ResourceService) Search(filter repository.ResourceFilter) ([]model.LessonResource, error) {
	return s.resourceRepo.Search(filter)
}

func (s *ResourceService) Update(id string, input UpdateResourceInput) (*model.LessonResource, error) {
	resource, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		resource.Title = *input.Title
	}
	if input.Category != nil {
		resource.Category = *input.Category
	}
	if input.Tags != nil {
		resource.Tags = *input.Tags
	}
	if input.IsPublic != nil {
		resource.IsPublic = *input.IsPublic
	}
	if input.Details != nil {
		resource.ApplyDetails(*input.Details)
	}

	if err := s.resourceRepo.Update(resource); err != nil {
		return nil, err
	}
	return resource, nil
}

// Delete removes a resource and re-packs the order indices of its
// surviving siblings so they stay dense.
func (s *ResourceService) Delete(id string) error {
	resource, err := s.Get(id)
	if err != nil {
		return err
	}
	if err := s.resourceRepo.Delete(id); err != nil {
		return err
	}

	siblings, err := s.resourceRepo.FindByLesson(resource.LessonID)
	if err != nil {
		return err
	}
	ids := make([]string, len(siblings))
	for i, sib := range siblings {
		ids[i] = sib.ID
	}
	return s.resourceRepo.BatchUpdateOrder(ids)
}

// Reorder moves the resource at src to dst within a lesson and persists
// the full permutation. Equal or out-of-range positions are a no-op.
func (s *ResourceService) Reorder(lessonID string, src, dst int) ([]model.LessonResource, error) {
	resources, err := s.resourceRepo.FindByLesson(lessonID)
	if err != nil {
		return nil, err
	}
	if src == dst || src < 0 || dst < 0 || src >= len(resources) || dst >= len(resources) {
		return resources, nil
	}

	moved := resources[src]
	resources = append(resources[:src], resources[src+1:]...)
	resources = append(resources[:dst], append([]model.LessonResource{moved}, resources[dst:]...)...)

	ids := make([]string, len(resources))
	for i := range resources {
		resources[i].OrderIndex = i
		ids[i] = resources[i].ID
	}
	if err := s.resourceRepo.BatchUpdateOrder(ids); err != nil {
		return nil, err
	}
	return resources, nil
}

// RecordUsage logs a telemetry event without blocking the caller. The
// write happens on a goroutine; a failed insert is logged and dropped,
// it must never surface to the user-facing request.
func (s *ResourceService) RecordUsage(resourceID string, userID uint, action model.UsageAction, sessionDuration int, deviceInfo string) {
	event := &model.ResourceUsageEvent{
		ResourceID:      resourceID,
		UserID:          userID,
		ActionType:      action,
		ActionTimestamp: time.Now(),
		SessionDuration: sessionDuration,
		DeviceInfo:      deviceInfo,
	}
	go func() {
		if err := s.usage.Create(event); err != nil {
			s.logger.Warn("dropping usage event",
				zap.String("resourceId", resourceID),
				zap.String("action", string(action)),
				zap.Error(err))
			return
		}
		monitoring.UsageEventCounter.WithLabelValues(string(action)).Inc()
	}()
}

// GetCategories returns the category table, or the builtin list when the
// table is unreachable or empty. Selection must keep working through a
// backend outage.
func (s *ResourceService) GetCategories() []model.ResourceCategory {
	categories, err := s.categories.FindAll()
	if err != nil {
		s.logger.Warn("category lookup failed, serving builtin list", zap.Error(err))
		return model.BuiltinCategories()
	}
	if len(categories) == 0 {
		return model.BuiltinCategories()
	}
	return categories
}
