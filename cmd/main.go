package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	configs "github.com/playea/beach-api/config"
	"github.com/playea/beach-api/internal/constants"
	"github.com/playea/beach-api/internal/handler"
	"github.com/playea/beach-api/internal/jobs"
	"github.com/playea/beach-api/internal/middleware"
	"github.com/playea/beach-api/internal/repository"
	"github.com/playea/beach-api/internal/router"
	"github.com/playea/beach-api/internal/service"
	"github.com/playea/beach-api/pkg/database"
	"github.com/playea/beach-api/pkg/health"
	"github.com/playea/beach-api/pkg/logger"
	"github.com/playea/beach-api/pkg/mailer"
	"github.com/playea/beach-api/pkg/query"
	"github.com/playea/beach-api/pkg/redis"
	"go.uber.org/zap"
)

func main() {
	config, err := configs.LoadConfig()
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}

	// Initialize Zap logger
	if err := logger.InitLogger(config); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	logger.GetLogger().Info("Application starting",
		zap.String("app_name", config.App.Name),
		zap.String("environment", config.App.Environment),
		zap.String("version", constants.AppVersion),
	)

	db, err := database.NewPostgresDB(config)
	if err != nil {
		logger.GetLogger().Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.CloseDB(db)

	if err := database.AutoMigrate(db); err != nil {
		logger.GetLogger().Fatal("Failed to run database migrations", zap.Error(err))
	}
	if err := database.EnsureSchemaObjects(db); err != nil {
		logger.GetLogger().Fatal("Failed to create schema objects", zap.Error(err))
	}
	logger.GetLogger().Info("Database migrated successfully")

	// Don't fail - the admin may already exist
	if err := database.Seed(db, config.Admin); err != nil {
		logger.GetLogger().Error("Failed to seed database", zap.Error(err))
	}

	// Redis is optional; a nil client means every read goes to the database.
	var redisClient *redis.Client
	if config.Redis.Enabled {
		redisClient, err = redis.NewClient(config)
		if err != nil {
			logger.GetLogger().Warn("Redis unavailable, product cache disabled", zap.Error(err))
			redisClient = nil
		}
	}

	// Repositories
	beachRepo := repository.NewBeachRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	favouriteRepo := repository.NewFavouriteRepository(db)
	rankingRepo := repository.NewRankingRepository(db)
	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	productRepo := repository.NewProductRepository(db)

	// Services
	pagination := query.PaginationConfig{
		DefaultLimit: config.Pagination.DefaultLimit,
		MaxLimit:     config.Pagination.MaxLimit,
	}
	jwtService := service.NewJWTService(config.JWT.Secret, config.JWT.ExpirationTime)
	authService := service.NewAuthService(userRepo, sessionRepo, jwtService, mailer.New(config), config.JWT.RefreshDuration)
	googleService := service.NewGoogleOAuthService(config.Google, userRepo, authService)
	userService := service.NewUserService(userRepo)
	beachService := service.NewBeachService(beachRepo, pagination)
	reviewService := service.NewReviewService(reviewRepo, beachRepo, pagination)
	favouriteService := service.NewFavouriteService(favouriteRepo, beachRepo, pagination)
	rankingService := service.NewRankingService(rankingRepo, pagination)
	productService := service.NewProductService(productRepo, redisClient, config.ProductCache.Key, config.ProductCache.TTL)

	// Dependency health
	monitor := health.NewMonitor(30*time.Second, logger.GetLogger())
	monitor.Register("database", health.CheckerFunc(func(ctx context.Context) error {
		return database.Ping(ctx, db)
	}), true)
	if redisClient != nil {
		monitor.Register("redis", health.CheckerFunc(redisClient.Ping), false)
	}
	monitor.Start()

	// Housekeeping jobs
	var scheduler *jobs.Scheduler
	if config.Jobs.Enabled {
		scheduler = jobs.NewScheduler(config.Jobs.Timeout)
		if err := jobs.Register(scheduler, config, productService, userRepo, sessionRepo); err != nil {
			logger.GetLogger().Fatal("Failed to register jobs", zap.Error(err))
		}
		if redisClient != nil {
			if err := scheduler.RunNow(jobs.ProductCacheJob); err != nil {
				logger.GetLogger().Warn("Initial product cache warm-up failed", zap.Error(err))
			}
		}
		scheduler.Start()
	}

	// Handlers
	baseURL := config.App.BaseURL
	handlers := router.Handlers{
		Beach:     handler.NewBeachHandler(beachService, baseURL),
		Review:    handler.NewReviewHandler(reviewService, baseURL),
		Favourite: handler.NewFavouriteHandler(favouriteService, baseURL),
		Ranking:   handler.NewRankingHandler(rankingService, baseURL),
		Product:   handler.NewProductHandler(productService),
		Auth:      handler.NewAuthHandler(authService, googleService, config.Cookie, config.App.ClientURL),
		User:      handler.NewUserHandler(userService, config.Cookie),
		Health:    handler.NewHealthHandler(monitor),
	}

	// Initialize middleware
	validationMiddleware := middleware.NewValidationMiddleware()
	jwtMiddleware := middleware.NewJWTMiddleware(authService, config.Cookie.Name)

	r := router.NewRouter(handlers, validationMiddleware, jwtMiddleware, config).SetupRoutes()

	srv := &http.Server{
		Addr:              ":" + config.App.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.GetLogger().Info("Server starting",
			zap.String("port", config.App.Port),
			zap.String("host", "0.0.0.0"),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.GetLogger().Fatal("Failed to start server",
				zap.Error(err),
				zap.String("port", config.App.Port),
			)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.GetLogger().Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.GetLogger().Error("Server forced to shutdown", zap.Error(err))
	}
	if scheduler != nil {
		if err := scheduler.Stop(ctx); err != nil {
			logger.GetLogger().Warn("Jobs still running at shutdown", zap.Error(err))
		}
	}
	monitor.Stop()
	if redisClient != nil {
		_ = redisClient.Close()
	}

	logger.GetLogger().Info("Server exited")
}
