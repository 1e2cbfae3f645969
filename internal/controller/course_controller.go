package controller

import (
	"errors"

	"learnspace_backend/internal/model"
	"learnspace_backend/internal/service"
	"learnspace_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CourseService *service.CourseService
	DraftService  *service.DraftService
}

func NewCourseController(courseService *service.CourseService, draftService *service.DraftService) *CourseController {
	return &CourseController{CourseService: courseService, DraftService: draftService}
}

// Create godoc
// @Summary Create a course
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CreateCourseInput true "course payload"
// @Success 201 {object} util.Response{data=model.Course}
// @Router /api/v1/courses [post]
func (c *CourseController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var input service.CreateCourseInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.Create(claims.UserID, input)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, course)
}

// Get godoc
// @Summary Get a course with its outline and stats
// @Tags courses
// @Produce json
// @Param id path string true "course id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/v1/courses/{id} [get]
func (c *CourseController) Get(ctx *gin.Context) {
	course, outline, stats, err := c.CourseService.GetWithOutline(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{
		"course":  course,
		"outline": outline,
		"stats":   stats,
	})
}

// List godoc
// @Summary List courses of a community
// @Tags courses
// @Produce json
// @Param communityId query string true "community id"
// @Param published query bool false "published only"
// @Success 200 {object} util.Response{data=[]model.Course}
// @Router /api/v1/courses [get]
func (c *CourseController) List(ctx *gin.Context) {
	communityID := ctx.Query("communityId")
	if communityID == "" {
		util.BadRequest(ctx, "communityId is required")
		return
	}

	publishedOnly := ctx.Query("published") == "true"
	// Anonymous callers never see drafts.
	if util.GetUserFromContext(ctx) == nil {
		publishedOnly = true
	}

	courses, err := c.CourseService.ListByCommunity(communityID, publishedOnly)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// Update godoc
// @Summary Update course metadata
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "course id"
// @Param body body service.UpdateCourseInput true "fields to change"
// @Success 200 {object} util.Response{data=model.Course}
// @Router /api/v1/courses/{id} [put]
func (c *CourseController) Update(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var input service.UpdateCourseInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.Update(ctx.Param("id"), claims.UserID, claims.Role, input)
	if err != nil {
		respondCourseError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

type setStatusRequest struct {
	Status model.CourseStatus `json:"status" binding:"required,oneof=draft published"`
}

// SetStatus godoc
// @Summary Publish or unpublish a course
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "course id"
// @Param body body setStatusRequest true "target status"
// @Success 200 {object} util.Response
// @Router /api/v1/courses/{id}/status [put]
func (c *CourseController) SetStatus(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req setStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.CourseService.SetStatus(ctx.Param("id"), claims.UserID, claims.Role, req.Status); err != nil {
		respondCourseError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"status": req.Status})
}

// Delete godoc
// @Summary Delete a course and its outline
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path string true "course id"
// @Success 200 {object} util.Response
// @Router /api/v1/courses/{id} [delete]
func (c *CourseController) Delete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	courseID := ctx.Param("id")
	if err := c.CourseService.Delete(courseID, claims.UserID, claims.Role); err != nil {
		respondCourseError(ctx, err)
		return
	}

	// The draft is gone with the course; errors here are harmless.
	c.DraftService.Delete(ctx.Request.Context(), courseID)
	util.Success(ctx, nil)
}

// GetDraft godoc
// @Summary Get the working outline of a course
// @Description Returns the unsaved draft when one exists, otherwise the persisted outline.
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path string true "course id"
// @Success 200 {object} util.Response
// @Router /api/v1/courses/{id}/draft [get]
func (c *CourseController) GetDraft(ctx *gin.Context) {
	courseID := ctx.Param("id")

	draft, err := c.DraftService.Load(ctx.Request.Context(), courseID)
	if err == nil {
		util.Success(ctx, gin.H{
			"outline": draft.Modules,
			"stats":   service.ComputeOutlineStats(draft.Modules),
			"savedAt": draft.SavedAt,
			"isDraft": true,
		})
		return
	}
	if !errors.Is(err, util.ErrDraftNotFound) {
		util.LogInternalError(ctx, err)
		return
	}

	_, outline, stats, err := c.CourseService.GetWithOutline(courseID)
	if err != nil {
		respondCourseError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{
		"outline": outline,
		"stats":   stats,
		"isDraft": false,
	})
}

// ApplyDraftOp godoc
// @Summary Apply one editing operation to the draft outline
// @Description Loads the draft (seeding it from the saved outline when absent), applies the operation, and stores the result back with a fresh TTL.
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "course id"
// @Param body body service.OutlineOp true "operation"
// @Success 200 {object} util.Response
// @Router /api/v1/courses/{id}/draft/ops [post]
func (c *CourseController) ApplyDraftOp(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var op service.OutlineOp
	if err := ctx.ShouldBindJSON(&op); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	courseID := ctx.Param("id")
	outline, err := c.loadWorkingOutline(ctx, courseID)
	if err != nil {
		respondCourseError(ctx, err)
		return
	}

	outline = service.ApplyOutlineOp(outline, op)

	draft, err := c.DraftService.Save(ctx.Request.Context(), courseID, outline)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{
		"outline": draft.Modules,
		"stats":   service.ComputeOutlineStats(draft.Modules),
		"savedAt": draft.SavedAt,
	})
}

type saveDraftRequest struct {
	Modules []service.ModuleDraft `json:"modules" binding:"required"`
}

// SaveDraft godoc
// @Summary Overwrite the draft outline
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "course id"
// @Param body body saveDraftRequest true "full outline"
// @Success 200 {object} util.Response
// @Router /api/v1/courses/{id}/draft [put]
func (c *CourseController) SaveDraft(ctx *gin.Context) {
	if util.GetUserFromContext(ctx) == nil {
		util.Unauthorized(ctx)
		return
	}

	var req saveDraftRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	draft, err := c.DraftService.Save(ctx.Request.Context(), ctx.Param("id"), req.Modules)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"savedAt": draft.SavedAt})
}

// CommitDraft godoc
// @Summary Persist the draft outline to the database
// @Description Replaces the saved module/lesson tree with the draft and deletes the draft.
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path string true "course id"
// @Success 200 {object} util.Response
// @Router /api/v1/courses/{id}/draft/commit [post]
func (c *CourseController) CommitDraft(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	courseID := ctx.Param("id")
	draft, err := c.DraftService.Load(ctx.Request.Context(), courseID)
	if err != nil {
		if errors.Is(err, util.ErrDraftNotFound) {
			util.Error(ctx, 404, "no draft to commit")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	saved, err := c.CourseService.SaveOutline(courseID, claims.UserID, claims.Role, draft.Modules)
	if err != nil {
		respondCourseError(ctx, err)
		return
	}

	c.DraftService.Delete(ctx.Request.Context(), courseID)
	util.Success(ctx, gin.H{
		"outline": saved,
		"stats":   service.ComputeOutlineStats(saved),
	})
}

// DiscardDraft godoc
// @Summary Discard the draft outline
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path string true "course id"
// @Success 200 {object} util.Response
// @Router /api/v1/courses/{id}/draft [delete]
func (c *CourseController) DiscardDraft(ctx *gin.Context) {
	if util.GetUserFromContext(ctx) == nil {
		util.Unauthorized(ctx)
		return
	}
	if err := c.DraftService.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// RenderLesson godoc
// @Summary Get a lesson with its content rendered to HTML
// @Tags courses
// @Produce json
// @Param id path string true "lesson id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/v1/lessons/{id} [get]
func (c *CourseController) RenderLesson(ctx *gin.Context) {
	lesson, html, err := c.CourseService.RenderLesson(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrLessonNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{
		"lesson":      lesson,
		"contentHtml": html,
	})
}

func (c *CourseController) loadWorkingOutline(ctx *gin.Context, courseID string) ([]service.ModuleDraft, error) {
	draft, err := c.DraftService.Load(ctx.Request.Context(), courseID)
	if err == nil {
		return draft.Modules, nil
	}
	if !errors.Is(err, util.ErrDraftNotFound) {
		return nil, err
	}

	_, outline, _, err := c.CourseService.GetWithOutline(courseID)
	return outline, err
}

func respondCourseError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrCourseNotFound), errors.Is(err, util.ErrLessonNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}
