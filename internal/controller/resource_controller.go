package controller

import (
	"errors"
	"net/http"

	"learnspace_backend/internal/model"
	"learnspace_backend/internal/repository"
	"learnspace_backend/internal/service"
	"learnspace_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ResourceController struct {
	ResourceService *service.ResourceService
}

func NewResourceController(resourceService *service.ResourceService) *ResourceController {
	return &ResourceController{ResourceService: resourceService}
}

// Create godoc
// @Summary Attach a resource to a lesson
// @Tags resources
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CreateResourceInput true "resource payload"
// @Success 201 {object} util.Response{data=model.LessonResource}
// @Router /api/v1/resources [post]
func (c *ResourceController) Create(ctx *gin.Context) {
	var input service.CreateResourceInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resource, err := c.ResourceService.Create(input)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, resource)
}

// Get godoc
// @Summary Get one resource
// @Tags resources
// @Produce json
// @Param id path string true "resource id"
// @Success 200 {object} util.Response{data=model.LessonResource}
// @Failure 404 {object} util.Response
// @Router /api/v1/resources/{id} [get]
func (c *ResourceController) Get(ctx *gin.Context) {
	resource, err := c.ResourceService.Get(ctx.Param("id"))
	if err != nil {
		respondResourceError(ctx, err)
		return
	}
	util.Success(ctx, resource)
}

// Search godoc
// @Summary Search the resource library
// @Tags resources
// @Produce json
// @Param lessonId query string false "scope to one lesson"
// @Param type query string false "resource type"
// @Param category query string false "category id"
// @Param tag query string false "tag"
// @Param public query bool false "public only"
// @Param q query string false "title or filename search"
// @Success 200 {object} util.Response{data=[]model.LessonResource}
// @Router /api/v1/resources [get]
func (c *ResourceController) Search(ctx *gin.Context) {
	filter := repository.ResourceFilter{
		LessonID:     ctx.Query("lessonId"),
		ResourceType: model.ResourceType(ctx.Query("type")),
		Category:     ctx.Query("category"),
		Tag:          ctx.Query("tag"),
		Query:        ctx.Query("q"),
	}
	if public := ctx.Query("public"); public != "" {
		isPublic := public == "true"
		filter.IsPublic = &isPublic
	}

	resources, err := c.ResourceService.Search(filter)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, resources)
}

// ListByLesson godoc
// @Summary List a lesson's resources in display order
// @Tags resources
// @Produce json
// @Param id path string true "lesson id"
// @Success 200 {object} util.Response{data=[]model.LessonResource}
// @Router /api/v1/lessons/{id}/resources [get]
func (c *ResourceController) ListByLesson(ctx *gin.Context) {
	resources, err := c.ResourceService.ListByLesson(ctx.Param("id"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, resources)
}

// Update godoc
// @Summary Update a resource
// @Tags resources
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "resource id"
// @Param body body service.UpdateResourceInput true "fields to change"
// @Success 200 {object} util.Response{data=model.LessonResource}
// @Router /api/v1/resources/{id} [put]
func (c *ResourceController) Update(ctx *gin.Context) {
	var input service.UpdateResourceInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resource, err := c.ResourceService.Update(ctx.Param("id"), input)
	if err != nil {
		respondResourceError(ctx, err)
		return
	}
	util.Success(ctx, resource)
}

// Delete godoc
// @Summary Delete a resource
// @Tags resources
// @Produce json
// @Security BearerAuth
// @Param id path string true "resource id"
// @Success 200 {object} util.Response
// @Router /api/v1/resources/{id} [delete]
func (c *ResourceController) Delete(ctx *gin.Context) {
	if err := c.ResourceService.Delete(ctx.Param("id")); err != nil {
		respondResourceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

type reorderRequest struct {
	Src int `json:"src"`
	Dst int `json:"dst"`
}

// Reorder godoc
// @Summary Move a resource within its lesson
// @Tags resources
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "lesson id"
// @Param body body reorderRequest true "source and destination positions"
// @Success 200 {object} util.Response{data=[]model.LessonResource}
// @Router /api/v1/lessons/{id}/resources/reorder [post]
func (c *ResourceController) Reorder(ctx *gin.Context) {
	var req reorderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resources, err := c.ResourceService.Reorder(ctx.Param("id"), req.Src, req.Dst)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, resources)
}

type usageRequest struct {
	Action          model.UsageAction `json:"action" binding:"required,oneof=view download play"`
	SessionDuration int               `json:"sessionDuration"`
	DeviceInfo      string            `json:"deviceInfo"`
}

// RecordUsage godoc
// @Summary Record a view, download, or play event
// @Description Telemetry is fire-and-forget; the endpoint acknowledges before the event is persisted.
// @Tags resources
// @Accept json
// @Produce json
// @Param id path string true "resource id"
// @Param body body usageRequest true "event payload"
// @Success 202 {object} util.Response
// @Router /api/v1/resources/{id}/usage [post]
func (c *ResourceController) RecordUsage(ctx *gin.Context) {
	var req usageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	var userID uint
	if claims := util.GetUserFromContext(ctx); claims != nil {
		userID = claims.UserID
	}

	c.ResourceService.RecordUsage(ctx.Param("id"), userID, req.Action, req.SessionDuration, req.DeviceInfo)
	ctx.JSON(http.StatusAccepted, util.Response{Code: http.StatusAccepted, Message: "accepted"})
}

// GetCategories godoc
// @Summary List resource categories
// @Description Falls back to the builtin category list when the table is unreachable.
// @Tags resources
// @Produce json
// @Success 200 {object} util.Response{data=[]model.ResourceCategory}
// @Router /api/v1/resource-categories [get]
func (c *ResourceController) GetCategories(ctx *gin.Context) {
	util.Success(ctx, c.ResourceService.GetCategories())
}

func respondResourceError(ctx *gin.Context, err error) {
	if errors.Is(err, util.ErrResourceNotFound) {
		util.NotFound(ctx)
		return
	}
	util.LogInternalError(ctx, err)
}
