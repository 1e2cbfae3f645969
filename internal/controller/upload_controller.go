package controller

import (
	"errors"
	"strings"

	"learnspace_backend/internal/service"
	"learnspace_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UploadController struct {
	MediaService   *service.MediaService
	StorageService *service.StorageService
}

func NewUploadController(mediaService *service.MediaService, storageService *service.StorageService) *UploadController {
	return &UploadController{MediaService: mediaService, StorageService: storageService}
}

// UploadImage godoc
// @Summary Upload an image
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "image file"
// @Success 201 {object} util.Response{data=model.StorageFile}
// @Failure 400 {object} util.Response
// @Router /api/v1/uploads/image [post]
func (c *UploadController) UploadImage(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	fh, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	file, err := c.MediaService.UploadImage(ctx.Request.Context(), fh, claims.UserID)
	if err != nil {
		respondUploadError(ctx, err)
		return
	}
	util.Created(ctx, file)
}

// UploadFiles godoc
// @Summary Upload one or more resource files
// @Description Files are processed sequentially; a failed file is reported without aborting the batch.
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param files formData file true "files"
// @Success 201 {object} util.Response{data=service.BatchUploadResult}
// @Router /api/v1/uploads/files [post]
func (c *UploadController) UploadFiles(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		util.BadRequest(ctx, "at least one file is required")
		return
	}

	result := c.MediaService.UploadAttachments(ctx.Request.Context(), files, claims.UserID)
	util.Created(ctx, result)
}

// UploadVideo godoc
// @Summary Upload a lesson video
// @Description Probes the video for its duration so the lesson can be pre-filled.
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "video file"
// @Success 201 {object} util.Response{data=service.VideoUploadResult}
// @Failure 400 {object} util.Response
// @Router /api/v1/uploads/video [post]
func (c *UploadController) UploadVideo(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	fh, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	result, err := c.MediaService.UploadVideo(ctx.Request.Context(), fh, claims.UserID)
	if err != nil {
		respondUploadError(ctx, err)
		return
	}
	util.Created(ctx, result)
}

// ListFiles godoc
// @Summary List the caller's uploaded files
// @Tags uploads
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.StorageFile}
// @Router /api/v1/uploads [get]
func (c *UploadController) ListFiles(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	files, err := c.StorageService.ListByOwner(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, files)
}

// DeleteFile godoc
// @Summary Delete an uploaded file
// @Description Removes the stored object and its handle. Lessons still referencing the URL keep the dangling link.
// @Tags uploads
// @Produce json
// @Security BearerAuth
// @Param key path string true "storage key"
// @Success 200 {object} util.Response
// @Router /api/v1/uploads/{key} [delete]
func (c *UploadController) DeleteFile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	// the catch-all param keeps its leading slash
	key := strings.TrimPrefix(ctx.Param("key"), "/")
	if err := c.StorageService.Remove(ctx.Request.Context(), key, claims.UserID, claims.Role); err != nil {
		switch {
		case errors.Is(err, util.ErrResourceNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

func respondUploadError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrFileTooLarge),
		errors.Is(err, util.ErrInvalidFileType),
		errors.Is(err, util.ErrInvalidVideoExt):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
