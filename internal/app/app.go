package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"science_lms_backend/internal/config"
	"science_lms_backend/internal/controller"
	"science_lms_backend/internal/repository"
	"science_lms_backend/internal/service"
	"science_lms_backend/pkg/database"
	"science_lms_backend/pkg/logger"
	"science_lms_backend/pkg/monitoring"
	"science_lms_backend/pkg/security"
	"science_lms_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user       *repository.UserRepository
	course     *repository.CourseRepository
	enrollment *repository.EnrollmentRepository
	lesson     *repository.LessonRepository
	quiz       *repository.QuizRepository
	assignment *repository.AssignmentRepository
	forum      *repository.ForumRepository
	chat       *repository.ChatRepository
	progress   *repository.ProgressRepository
	dashboard  *repository.DashboardRepository
}

type services struct {
	storage    *service.StorageService
	auth       *service.AuthService
	user       *service.UserService
	course     *service.CourseService
	enrollment *service.EnrollmentService
	lesson     *service.LessonService
	quiz       *service.QuizService
	assignment *service.AssignmentService
	forum      *service.ForumService
	chat       *service.ChatService
	progress   *service.ProgressService
	dashboard  *service.DashboardService
}

type controllers struct {
	auth       *controller.AuthController
	user       *controller.UserController
	course     *controller.CourseController
	enrollment *controller.EnrollmentController
	lesson     *controller.LessonController
	quiz       *controller.QuizController
	assignment *controller.AssignmentController
	forum      *controller.ForumController
	chat       *controller.ChatController
	progress   *controller.ProgressController
	dashboard  *controller.DashboardController
	health     *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig swaps in a reloaded configuration and notifies subscribers.
func (a *App) ApplyConfig(cfg *config.Config) {
	a.Config = cfg
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
	logger.Log.Info("Configuration reloaded")
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		course:     repository.NewCourseRepository(db),
		enrollment: repository.NewEnrollmentRepository(db),
		lesson:     repository.NewLessonRepository(db),
		quiz:       repository.NewQuizRepository(db),
		assignment: repository.NewAssignmentRepository(db),
		forum:      repository.NewForumRepository(db),
		chat:       repository.NewChatRepository(db, rdb),
		progress:   repository.NewProgressRepository(db),
		dashboard:  repository.NewDashboardRepository(db, rdb),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) (*services, error) {
	s := &services{}

	storage, err := service.NewStorageService(cfg)
	if err != nil {
		return nil, err
	}
	s.storage = storage

	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user)
	s.course = service.NewCourseService(repos.course, repos.user, repos.enrollment)
	s.enrollment = service.NewEnrollmentService(repos.enrollment, repos.course)
	s.lesson = service.NewLessonService(repos.lesson, repos.course, s.storage)
	s.quiz = service.NewQuizService(repos.quiz, repos.course, repos.enrollment)
	s.assignment = service.NewAssignmentService(repos.assignment, repos.course, repos.enrollment)
	s.forum = service.NewForumService(repos.forum, repos.course, repos.enrollment)
	s.chat = service.NewChatService(repos.chat, repos.course)
	s.progress = service.NewProgressService(repos.progress, repos.enrollment, repos.lesson)
	s.dashboard = service.NewDashboardService(
		repos.dashboard,
		repos.user,
		repos.course,
		repos.enrollment,
		repos.assignment,
		repos.quiz,
	)

	return s, nil
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth),
		user:       controller.NewUserController(s.user),
		course:     controller.NewCourseController(s.course),
		enrollment: controller.NewEnrollmentController(s.enrollment),
		lesson:     controller.NewLessonController(s.lesson),
		quiz:       controller.NewQuizController(s.quiz),
		assignment: controller.NewAssignmentController(s.assignment),
		forum:      controller.NewForumController(s.forum),
		chat:       controller.NewChatController(s.chat),
		progress:   controller.NewProgressController(s.progress),
		dashboard:  controller.NewDashboardController(s.dashboard),
		health:     controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(func(c *gin.Context) {
		c.Set("config", cfg)
		c.Next()
	})

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

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db, rdb)
	services, err := app.initServices(repos, cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize services", zap.Error(err))
	}
	controllers := app.initControllers(services, db)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("science-lms", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
