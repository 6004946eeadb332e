package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"outpatient-planner/config"
	deliveryHttp "outpatient-planner/internal/delivery/http"
	"outpatient-planner/internal/delivery/http/handler"
	"outpatient-planner/internal/delivery/http/middleware"
	domainRepo "outpatient-planner/internal/domain/repository"
	"outpatient-planner/internal/infrastructure/cache"
	"outpatient-planner/internal/infrastructure/chart"
	"outpatient-planner/internal/infrastructure/database"
	"outpatient-planner/internal/repository"
	"outpatient-planner/internal/service"
	"outpatient-planner/internal/usecase"
	"outpatient-planner/pkg/jwt"
	"outpatient-planner/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized.
// Postgres and Redis are optional and only dialled when enabled.
func New(cfg *config.Config) (*App, error) {
	app := &App{Config: cfg}

	// Setup logger
	setupLogger(cfg)

	// Initialize database
	if cfg.DB.Enabled {
		db, err := database.NewPostgresConnection(cfg.DB, cfg.IsDevelopment())
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		app.DB = db

		if err := database.Migrate(db); err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		logrus.Info("Database connected successfully")
	}

	// Initialize Redis
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		app.RedisClient = redisClient
		logrus.Info("Redis connected successfully")
	}

	// Initialize all layers
	app.Server = initializeServer(cfg, app.DB, app.RedisClient)

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger(cfg *config.Config) {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
	if cfg.IsDevelopment() {
		logrus.SetLevel(logrus.DebugLevel)
	}
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *http.Server {
	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.Session)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	var sessionRepo domainRepo.SessionRepository
	if redisClient != nil {
		sessionRepo = repository.NewRedisSessionRepository(redisClient)
	} else {
		sessionRepo = repository.NewMemorySessionRepository()
	}

	// Initialize services
	var auditService service.AuditService
	if db != nil {
		auditService = service.NewAuditService(db, log, repository.NewAuditLogRepository())
	} else {
		auditService = service.NewNoopAuditService(log)
	}

	// Initialize usecases
	sessionUsecase := usecase.NewSessionUsecase(log, sessionRepo, jwtService, auditService)
	planningUsecase := usecase.NewPlanningUsecase(log, cfg.Planning, sessionRepo, auditService)
	chartUsecase := usecase.NewChartUsecase(log, cfg.Planning, sessionRepo, chart.NewRenderer())
	auditLogUsecase := usecase.NewAuditLogUsecase(log, auditService)

	// Initialize handlers
	sessionHandler := handler.NewSessionHandler(sessionUsecase)
	planningHandler := handler.NewPlanningHandler(planningUsecase, customValidator, cfg.App.MaxUploadBytes)
	chartHandler := handler.NewChartHandler(chartUsecase, customValidator)
	pageHandler := handler.NewPageHandler(planningUsecase, customValidator)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase)

	// Initialize middleware
	sessionMiddleware := middleware.NewSessionMiddleware(sessionUsecase)
	corsMiddleware := middleware.NewCORSMiddleware()
	loggingMiddleware := middleware.NewLoggingMiddleware(log)

	// Initialize router
	router := deliveryHttp.NewRouter(
		sessionHandler,
		planningHandler,
		chartHandler,
		pageHandler,
		auditLogHandler,
		sessionMiddleware,
		corsMiddleware,
		loggingMiddleware,
	)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:              serverAddr,
		Handler:           httpRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
