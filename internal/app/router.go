package app

import (
	"learnspace_backend/docs"
	"learnspace_backend/internal/config"
	"learnspace_backend/internal/middleware"
	"learnspace_backend/internal/model"
	"learnspace_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api/v1"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.Check)

	api := router.Group("/api/v1")

	// Auth
	api.POST("/auth/register", c.auth.Register)
	api.POST("/auth/login", c.auth.Login)

	// Public reads; TryAuth lets logged-in callers see drafts and get
	// their views counted.
	public := api.Group("")
	public.Use(middleware.TryAuthMiddleware(cfg.JWT.Secret))
	{
		public.GET("/communities", c.community.List)
		public.GET("/communities/:id", c.community.Get)
		public.GET("/communities/:id/posts", c.community.ListPosts)
		public.GET("/posts/:id", c.community.GetPost)
		public.GET("/posts/:id/comments", c.community.ListComments)

		public.GET("/courses", c.course.List)
		public.GET("/courses/:id", c.course.Get)
		public.GET("/lessons/:id", c.course.RenderLesson)
		public.GET("/lessons/:id/resources", c.resource.ListByLesson)

		public.GET("/resources", c.resource.Search)
		public.GET("/resources/:id", c.resource.Get)
		public.GET("/resource-categories", c.resource.GetCategories)

		// Telemetry works for anonymous readers too.
		public.POST("/resources/:id/usage", c.resource.RecordUsage)
	}

	// Authenticated
	auth := api.Group("")
	auth.Use(middleware.AuthMiddleware(cfg.JWT.Secret))
	{
		auth.GET("/auth/me", c.auth.GetProfile)
		auth.PUT("/auth/me", c.auth.UpdateProfile)

		auth.POST("/communities", c.community.Create)
		auth.POST("/posts", c.community.CreatePost)
		auth.DELETE("/posts/:id", c.community.DeletePost)
		auth.PUT("/posts/:id/pin", c.community.PinPost)
		auth.POST("/posts/:id/comments", c.community.CreateComment)
		auth.DELETE("/comments/:id", c.community.DeleteComment)
		auth.POST("/likes", c.community.ToggleLike)

		auth.POST("/lessons/:id/complete", c.progress.MarkCompleted)
		auth.GET("/courses/:id/progress", c.progress.GetCourseProgress)

		auth.GET("/uploads", c.upload.ListFiles)
		auth.POST("/uploads/image", c.upload.UploadImage)
		auth.POST("/uploads/files", c.upload.UploadFiles)
		auth.POST("/uploads/video", c.upload.UploadVideo)
		// storage keys contain slashes, so this must be a catch-all
		auth.DELETE("/uploads/*key", c.upload.DeleteFile)
	}

	// Authoring requires the creator or admin role.
	authoring := api.Group("")
	authoring.Use(middleware.AuthMiddleware(cfg.JWT.Secret), middleware.RoleMiddleware(model.Creator, model.Admin))
	{
		authoring.POST("/courses", c.course.Create)
		authoring.PUT("/courses/:id", c.course.Update)
		authoring.PUT("/courses/:id/status", c.course.SetStatus)
		authoring.DELETE("/courses/:id", c.course.Delete)

		authoring.GET("/courses/:id/draft", c.course.GetDraft)
		authoring.PUT("/courses/:id/draft", c.course.SaveDraft)
		authoring.DELETE("/courses/:id/draft", c.course.DiscardDraft)
		authoring.POST("/courses/:id/draft/ops", c.course.ApplyDraftOp)
		authoring.POST("/courses/:id/draft/commit", c.course.CommitDraft)

		authoring.POST("/resources", c.resource.Create)
		authoring.PUT("/resources/:id", c.resource.Update)
		authoring.DELETE("/resources/:id", c.resource.Delete)
		authoring.POST("/lessons/:id/resources/reorder", c.resource.Reorder)

		authoring.GET("/analytics/resources", c.analytics.GetReport)
	}

	// Admin
	admin := api.Group("")
	admin.Use(middleware.AuthMiddleware(cfg.JWT.Secret), middleware.RoleMiddleware(model.Admin))
	{
		admin.PUT("/users/:id/role", c.auth.SetRole)
	}
}
