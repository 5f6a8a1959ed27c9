package router

import (
	"github.com/gin-gonic/gin"
	"github.com/playea/beach-api/internal/constants"
	"github.com/playea/beach-api/internal/middleware"
)

func (r *Router) beachRoutes(version *gin.RouterGroup) {
	beaches := version.Group("/beaches")
	beaches.Use(r.jwtMw.OptionalAuth())
	{
		beaches.GET("", r.beachHandler.List)
		beaches.GET("/search", r.beachHandler.Search)
		beaches.GET("/:slug", r.beachHandler.Get)

		// :slug has to be the numeric beach id here; gin does not allow a
		// differently named wildcard in the same position.
		beaches.GET("/:slug/reviews", r.reviewHandler.ListByBeach)
	}
}

func (r *Router) rankingRoutes(version *gin.RouterGroup) {
	ranking := version.Group("/ranking")
	{
		ranking.GET("", r.rankingHandler.List)
		ranking.GET("/:island", r.rankingHandler.List)
	}
}

func (r *Router) productRoutes(version *gin.RouterGroup) {
	products := version.Group("/products")
	{
		products.GET("", r.productHandler.List)

		admin := products.Group("")
		admin.Use(r.jwtMw.RequireAuth(), middleware.RequireRole(constants.RoleAdmin))
		{
			admin.POST("/refresh", r.productHandler.RefreshCache)
		}
	}
}
