package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sals_backend/internal/config"
	"sals_backend/internal/controller"
	"sals_backend/internal/event"
	"sals_backend/internal/llm"
	"sals_backend/internal/repository"
	"sals_backend/internal/service"
	"sals_backend/internal/util"
	"sals_backend/pkg/database"
	"sals_backend/pkg/logger"
	"sals_backend/pkg/monitoring"
	"sals_backend/pkg/security"
	"sals_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	LLM             llm.Completer
	Events          event.Publisher
	services        *services
	configCallbacks []func(*config.Config)
	closers         []func(context.Context) error
}

type repositories struct {
	topic        *repository.TopicRepository
	quiz         *repository.QuizRepository
	learningPath *repository.LearningPathRepository
	progress     *repository.ProgressRepository
}

type services struct {
	storage      *service.StorageService
	cache        *service.CacheService
	progress     *service.ProgressService
	quiz         *service.QuizService
	learningPath *service.LearningPathService
}

type controllers struct {
	quiz         *controller.QuizController
	learningPath *controller.LearningPathController
	progress     *controller.ProgressController
	health       *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig hands a reloaded configuration to every registered callback.
func (a *App) ApplyConfig(cfg *config.Config) {
	for _, cb := range a.configCallbacks {
		cb(cfg)
	}
	logger.Log.Info("Configuration reloaded",
		zap.String("model", cfg.AI.Model),
		zap.Bool("count_missing_as_wrong", cfg.Quiz.CountMissingAsWrong))
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		topic:        repository.NewTopicRepository(db),
		quiz:         repository.NewQuizRepository(db),
		learningPath: repository.NewLearningPathRepository(db),
		progress:     repository.NewProgressRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(&cfg.Storage)
	s.cache = service.NewCacheService(rdb, time.Duration(cfg.Redis.TTLMinutes)*time.Minute)
	s.progress = service.NewProgressService(repos.progress, repos.quiz, repos.topic, s.storage, a.Events)
	s.quiz = service.NewQuizService(repos.topic, repos.quiz, s.progress, a.LLM, cfg.Quiz)
	s.learningPath = service.NewLearningPathService(repos.learningPath, repos.quiz, s.progress, s.cache, a.LLM)

	a.RegisterConfigCallback(func(c *config.Config) {
		s.quiz.SetQuizConfig(c.Quiz)
	})
	if p, ok := a.LLM.(*llm.OpenRouterProvider); ok {
		a.RegisterConfigCallback(func(c *config.Config) {
			p.Reconfigure(c.AI.Model, time.Duration(c.AI.TimeoutSeconds)*time.Second)
		})
	}

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		quiz:         controller.NewQuizController(s.quiz),
		learningPath: controller.NewLearningPathController(s.learningPath),
		progress:     controller.NewProgressController(s.progress),
		health:       controller.NewHealthController(db, rdb, a.LLM.ModelID),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// newLLM builds the completion client. Without an API key every LLM backed
// call fails with ErrProviderUnavailable while the rest of the API keeps working.
func newLLM(cfg *config.AIConfig) llm.Completer {
	p, err := llm.NewOpenRouterProvider(llm.Config{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
		Model:   cfg.Model,
		Referer: cfg.Referer,
		Title:   cfg.Title,
		Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
	})
	if err != nil {
		logger.Log.Warn("LLM provider not configured", zap.Error(err))
		return llm.Unavailable{Reason: err.Error()}
	}
	return p
}

func newPublisher(cfg *config.MessagingConfig) event.Publisher {
	if !cfg.Enabled {
		return event.NoopPublisher{}
	}
	p, err := event.NewAMQPPublisher(cfg.URL, cfg.Exchange, uuid.NewString)
	if err != nil {
		logger.Log.Warn("Progress events disabled", zap.Error(err))
		return event.NoopPublisher{}
	}
	return p
}

func newRedis(cfg *config.RedisConfig) *redis.Client {
	if !cfg.Enabled {
		return nil
	}
	rdb, err := database.InitRedis(cfg)
	if err != nil {
		logger.Log.Warn("Redis unavailable, learning path cache disabled", zap.Error(err))
		return nil
	}
	return rdb
}

// NewApp connects every backing service and builds the router.
func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	if cfg.Server.Mode != "release" || cfg.ForceMigrate {
		if err := database.Migrate(db); err != nil {
			logger.Log.Fatal("Failed to migrate database", zap.Error(err))
		}
	}
	if cfg.MigrateOnly {
		return &App{Config: cfg, DB: db}
	}

	monitoring.Init()

	app := build(cfg, db, newRedis(&cfg.Redis), newLLM(&cfg.AI), newPublisher(&cfg.Messaging))

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.closers = append(app.closers, tp.Shutdown)
	}

	return app
}

// build wires repositories, services and controllers on top of already
// connected backends.
func build(cfg *config.Config, db *gorm.DB, rdb *redis.Client, completer llm.Completer, events event.Publisher) *App {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
		LLM:    completer,
		Events: events,
	}
	app.closers = append(app.closers, func(context.Context) error { return events.Close() })
	if rdb != nil {
		app.closers = append(app.closers, func(context.Context) error { return rdb.Close() })
	}

	repos := app.initRepositories(db)
	app.services = app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(app.services, db, rdb)

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers)

	if cfg.Storage.Type == util.StorageLocal {
		router.Static("/reports", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}
	a.Close(ctx)

	logger.Log.Info("Server exiting")
}

// Close releases the event publisher, cache and tracer.
func (a *App) Close(ctx context.Context) {
	for _, c := range a.closers {
		if err := c(ctx); err != nil {
			logger.Log.Warn("Shutdown step failed", zap.Error(err))
		}
	}
}
