package controller

import (
	"errors"
	"strconv"

	"learnspace_backend/internal/service"
	"learnspace_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CommunityController struct {
	CommunityService *service.CommunityService
}

func NewCommunityController(communityService *service.CommunityService) *CommunityController {
	return &CommunityController{CommunityService: communityService}
}

// Create godoc
// @Summary Create a community
// @Tags communities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CreateCommunityInput true "community payload"
// @Success 201 {object} util.Response{data=model.Community}
// @Router /api/v1/communities [post]
func (c *CommunityController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var input service.CreateCommunityInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	community, err := c.CommunityService.Create(claims.UserID, input)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, community)
}

// Get godoc
// @Summary Get a community by id or slug
// @Tags communities
// @Produce json
// @Param id path string true "community id or slug"
// @Success 200 {object} util.Response{data=model.Community}
// @Failure 404 {object} util.Response
// @Router /api/v1/communities/{id} [get]
func (c *CommunityController) Get(ctx *gin.Context) {
	key := ctx.Param("id")

	community, err := c.CommunityService.Get(key)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		community, err = c.CommunityService.GetBySlug(key)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, community)
}

// List godoc
// @Summary List communities
// @Tags communities
// @Produce json
// @Param page query int false "page" default(1)
// @Param limit query int false "page size" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/v1/communities [get]
func (c *CommunityController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	communities, total, err := c.CommunityService.List(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: communities, Total: total, Page: page, Limit: limit})
}

// CreatePost godoc
// @Summary Create a feed post
// @Tags feed
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CreatePostInput true "post payload"
// @Success 201 {object} util.Response{data=model.Post}
// @Router /api/v1/posts [post]
func (c *CommunityController) CreatePost(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var input service.CreatePostInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	post, err := c.CommunityService.CreatePost(claims.UserID, input)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, post)
}

// GetPost godoc
// @Summary Get a post and count the view
// @Tags feed
// @Produce json
// @Param id path string true "post id"
// @Success 200 {object} util.Response{data=model.Post}
// @Failure 404 {object} util.Response
// @Router /api/v1/posts/{id} [get]
func (c *CommunityController) GetPost(ctx *gin.Context) {
	var viewerID uint
	if claims := util.GetUserFromContext(ctx); claims != nil {
		viewerID = claims.UserID
	}

	post, err := c.CommunityService.GetPost(ctx.Request.Context(), ctx.Param("id"), viewerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, post)
}

// ListPosts godoc
// @Summary List a community's feed, pinned posts first
// @Tags feed
// @Produce json
// @Param id path string true "community id"
// @Param page query int false "page" default(1)
// @Param limit query int false "page size" default(20)
// @Param tag query string false "filter by tag"
// @Param q query string false "title or content search"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/v1/communities/{id}/posts [get]
func (c *CommunityController) ListPosts(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	posts, total, err := c.CommunityService.ListPosts(ctx.Param("id"), page, limit, ctx.Query("tag"), ctx.Query("q"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: posts, Total: total, Page: page, Limit: limit})
}

// DeletePost godoc
// @Summary Delete a post
// @Tags feed
// @Produce json
// @Security BearerAuth
// @Param id path string true "post id"
// @Success 200 {object} util.Response
// @Router /api/v1/posts/{id} [delete]
func (c *CommunityController) DeletePost(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.CommunityService.DeletePost(ctx.Param("id"), claims.UserID, claims.Role); err != nil {
		respondFeedError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

type pinRequest struct {
	Pinned bool `json:"pinned"`
}

// PinPost godoc
// @Summary Pin or unpin a post
// @Tags feed
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "post id"
// @Param body body pinRequest true "pinned flag"
// @Success 200 {object} util.Response
// @Router /api/v1/posts/{id}/pin [put]
func (c *CommunityController) PinPost(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req pinRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.CommunityService.PinPost(ctx.Param("id"), req.Pinned, claims.UserID, claims.Role); err != nil {
		respondFeedError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"pinned": req.Pinned})
}

// CreateComment godoc
// @Summary Comment on a post
// @Tags feed
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "post id"
// @Param body body service.CreateCommentInput true "comment payload"
// @Success 201 {object} util.Response{data=model.Comment}
// @Router /api/v1/posts/{id}/comments [post]
func (c *CommunityController) CreateComment(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var input service.CreateCommentInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	comment, err := c.CommunityService.CreateComment(ctx.Param("id"), claims.UserID, input)
	if err != nil {
		respondFeedError(ctx, err)
		return
	}
	util.Created(ctx, comment)
}

// ListComments godoc
// @Summary List a post's comments, oldest first
// @Tags feed
// @Produce json
// @Param id path string true "post id"
// @Success 200 {object} util.Response{data=[]model.Comment}
// @Router /api/v1/posts/{id}/comments [get]
func (c *CommunityController) ListComments(ctx *gin.Context) {
	comments, err := c.CommunityService.ListComments(ctx.Param("id"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, comments)
}

// DeleteComment godoc
// @Summary Delete a comment
// @Tags feed
// @Produce json
// @Security BearerAuth
// @Param id path string true "comment id"
// @Success 200 {object} util.Response
// @Router /api/v1/comments/{id} [delete]
func (c *CommunityController) DeleteComment(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.CommunityService.DeleteComment(ctx.Param("id"), claims.UserID, claims.Role); err != nil {
		respondFeedError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

type likeRequest struct {
	ContentType string `json:"contentType" binding:"required,oneof=post comment"`
	ContentID   string `json:"contentId" binding:"required"`
}

// ToggleLike godoc
// @Summary Like or unlike a post or comment
// @Tags feed
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body likeRequest true "target content"
// @Success 200 {object} util.Response
// @Router /api/v1/likes [post]
func (c *CommunityController) ToggleLike(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req likeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	liked, err := c.CommunityService.ToggleLike(claims.UserID, req.ContentType, req.ContentID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"liked": liked})
}

func respondFeedError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}
