package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"learnspace_backend/internal/config"
	"learnspace_backend/internal/controller"
	"learnspace_backend/internal/repository"
	"learnspace_backend/internal/service"
	"learnspace_backend/pkg/database"
	"learnspace_backend/pkg/logger"
	"learnspace_backend/pkg/monitoring"
	"learnspace_backend/pkg/security"
	"learnspace_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	DB       *gorm.DB
	Redis    *redis.Client
	jobs     *service.JobRunner
	services *services
}

type repositories struct {
	user        *repository.UserRepository
	community   *repository.CommunityRepository
	post        *repository.PostRepository
	comment     *repository.CommentRepository
	course      *repository.CourseRepository
	resource    *repository.ResourceRepository
	usage       *repository.UsageRepository
	category    *repository.CategoryRepository
	storageFile *repository.StorageFileRepository
	progress    *repository.ProgressRepository
}

type services struct {
	auth      *service.AuthService
	course    *service.CourseService
	draft     *service.DraftService
	resource  *service.ResourceService
	analytics *service.AnalyticsService
	community *service.CommunityService
	progress  *service.ProgressService
	storage   *service.StorageService
	media     *service.MediaService
}

type controllers struct {
	auth      *controller.AuthController
	course    *controller.CourseController
	resource  *controller.ResourceController
	analytics *controller.AnalyticsController
	community *controller.CommunityController
	progress  *controller.ProgressController
	upload    *controller.UploadController
	health    *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:        repository.NewUserRepository(db),
		community:   repository.NewCommunityRepository(db),
		post:        repository.NewPostRepository(db),
		comment:     repository.NewCommentRepository(db),
		course:      repository.NewCourseRepository(db),
		resource:    repository.NewResourceRepository(db),
		usage:       repository.NewUsageRepository(db),
		category:    repository.NewCategoryRepository(db),
		storageFile: repository.NewStorageFileRepository(db),
		progress:    repository.NewProgressRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) (*services, error) {
	provider, err := service.NewStorageProvider(cfg)
	if err != nil {
		return nil, err
	}

	s := &services{}
	s.auth = service.NewAuthService(repos.user, cfg.JWT.Secret, cfg.JWT.ExpireTime, logger.Log)
	s.course = service.NewCourseService(repos.course, logger.Log)
	s.draft = service.NewDraftService(rdb, cfg.Draft.TTLHours, logger.Log)
	s.resource = service.NewResourceService(repos.resource, repos.category, repos.usage, logger.Log)
	s.analytics = service.NewAnalyticsService(repos.usage, repos.resource, logger.Log)
	s.community = service.NewCommunityService(repos.community, repos.post, repos.comment, rdb, logger.Log)
	s.progress = service.NewProgressService(repos.progress, repos.course, logger.Log)
	s.storage = service.NewStorageService(provider, repos.storageFile, logger.Log)
	s.media = service.NewMediaService(s.storage, cfg.Upload.MaxFileSizeMB, cfg.Upload.MaxVideoSizeMB, logger.Log)
	return s, nil
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:      controller.NewAuthController(s.auth),
		course:    controller.NewCourseController(s.course, s.draft),
		resource:  controller.NewResourceController(s.resource),
		analytics: controller.NewAnalyticsController(s.analytics),
		community: controller.NewCommunityController(s.community),
		progress:  controller.NewProgressController(s.progress),
		upload:    controller.NewUploadController(s.media, s.storage),
		health:    controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("logger initialized")

	gin.SetMode(cfg.Server.Mode)

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode != "release" || cfg.ForceMigrate)
	if err != nil {
		logger.Log.Fatal("database init failed", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("redis init failed", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services, err := app.initServices(repos, cfg, rdb)
	if err != nil {
		logger.Log.Fatal("service init failed", zap.Error(err))
	}
	app.services = services
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("learnspace-platform", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("tracing init failed", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.jobs = service.NewJobRunner(repos.resource, repos.usage, services.draft, services.course, logger.Log)
	if err := app.jobs.Start(); err != nil {
		logger.Log.Fatal("job scheduler init failed", zap.Error(err))
	}

	return app
}

// ReloadConfig applies the hot-reloadable settings from a freshly
// parsed config file. The server port, database, and storage backend
// still need a restart.
func (a *App) ReloadConfig(cfg *config.Config) {
	a.services.media.SetLimits(cfg.Upload.MaxFileSizeMB, cfg.Upload.MaxVideoSizeMB)
	a.services.draft.SetTTL(cfg.Draft.TTLHours)
	logger.Log.Info("configuration reloaded",
		zap.Int64("maxFileSizeMB", cfg.Upload.MaxFileSizeMB),
		zap.Int64("maxVideoSizeMB", cfg.Upload.MaxVideoSizeMB),
		zap.Int("draftTTLHours", cfg.Draft.TTLHours))
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	if a.jobs != nil {
		a.jobs.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	logger.Log.Sync()
	log.Println("Server exiting")
}
