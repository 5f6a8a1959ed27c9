package router

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/playea/beach-api/config"
	"github.com/playea/beach-api/internal/constants"
	"github.com/playea/beach-api/internal/handler"
	"github.com/playea/beach-api/internal/middleware"
	"github.com/playea/beach-api/pkg/logger"
	"github.com/playea/beach-api/pkg/validation"
	"go.uber.org/zap"
)

type Router struct {
	beachHandler     *handler.BeachHandler
	reviewHandler    *handler.ReviewHandler
	favouriteHandler *handler.FavouriteHandler
	rankingHandler   *handler.RankingHandler
	productHandler   *handler.ProductHandler
	authHandler      *handler.AuthHandler
	userHandler      *handler.UserHandler
	healthHandler    *handler.HealthHandler

	validMw *middleware.ValidationMiddleware
	jwtMw   *middleware.JWTMiddleware
	Config  *config.Config
}

// Handlers groups everything the router mounts.
type Handlers struct {
	Beach     *handler.BeachHandler
	Review    *handler.ReviewHandler
	Favourite *handler.FavouriteHandler
	Ranking   *handler.RankingHandler
	Product   *handler.ProductHandler
	Auth      *handler.AuthHandler
	User      *handler.UserHandler
	Health    *handler.HealthHandler
}

func NewRouter(
	handlers Handlers,
	validMw *middleware.ValidationMiddleware,
	jwtMw *middleware.JWTMiddleware,
	config *config.Config,
) *Router {
	return &Router{
		beachHandler:     handlers.Beach,
		reviewHandler:    handlers.Review,
		favouriteHandler: handlers.Favourite,
		rankingHandler:   handlers.Ranking,
		productHandler:   handlers.Product,
		authHandler:      handlers.Auth,
		userHandler:      handlers.User,
		healthHandler:    handlers.Health,

		validMw: validMw,
		jwtMw:   jwtMw,
		Config:  config,
	}
}

func (r *Router) SetupRoutes() *gin.Engine {
	if !r.Config.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// Query binding errors should name the json/form field, not the Go one.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.UseJSONNames(v)
	}

	router := gin.New()
	trustProxies(router, r.Config.App)

	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.RequestContext())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORS(r.Config.CORS.AllowedOrigins))
	router.Use(middleware.RequestTimeout(r.Config.App.Timeout))

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, constants.BuildErrorResponse(constants.MsgRouteNotFound, nil))
	})

	api := router.Group("/api")
	{
		api.GET("/health", r.healthHandler.HealthCheck)

		v1 := api.Group("/v1")
		{
			v1.Use(middleware.RateLimit(r.Config.RateLimit.Request, time.Duration(r.Config.RateLimit.Duration)*time.Second))

			r.beachRoutes(v1)
			r.authRoutes(v1)
			r.userRoutes(v1)
			r.reviewRoutes(v1)
			r.favouriteRoutes(v1)
			r.rankingRoutes(v1)
			r.productRoutes(v1)
		}
	}

	return router
}

// trustProxies limits which peers may set the client address through
// forwarding headers. With no proxies configured c.ClientIP() is always
// the socket peer.
func trustProxies(engine *gin.Engine, app config.AppConfig) {
	switch platform := strings.TrimSpace(app.TrustedPlatform); strings.ToLower(platform) {
	case "":
	case "cloudflare":
		engine.TrustedPlatform = gin.PlatformCloudflare
	case "google":
		engine.TrustedPlatform = gin.PlatformGoogleAppEngine
	default:
		engine.TrustedPlatform = platform
	}

	if err := engine.SetTrustedProxies(app.TrustedProxies); err != nil {
		logger.GetLogger().Warn("Invalid trusted proxies, forwarding headers ignored",
			zap.Strings("trusted_proxies", app.TrustedProxies),
			zap.Error(err),
		)
		_ = engine.SetTrustedProxies(nil)
	}
}
