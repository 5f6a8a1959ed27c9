package router

import (
	"github.com/gin-gonic/gin"
	"github.com/playea/beach-api/internal/dto"
)

func (r *Router) userRoutes(version *gin.RouterGroup) {
	me := version.Group("/me")
	{
		// All profile routes act on the authenticated user
		me.Use(r.jwtMw.RequireAuth())
		{
			me.GET("", r.userHandler.Me)

			// Only name, username, email and avatarUrl can change here
			me.PATCH("",
				r.validMw.ValidateRequestBody(func() interface{} { return &dto.UpdateMeRequest{} }),
				r.userHandler.UpdateMe)

			me.PUT("/password",
				r.validMw.ValidateRequestBody(func() interface{} { return &dto.UpdatePasswordRequest{} }),
				r.userHandler.UpdatePassword)

			me.DELETE("", r.userHandler.DeleteMe)
		}
	}
}

func (r *Router) reviewRoutes(version *gin.RouterGroup) {
	reviews := version.Group("/reviews")
	reviews.Use(r.jwtMw.RequireAuth())
	{
		reviews.POST("",
			r.validMw.ValidateRequestBody(func() interface{} { return &dto.CreateReviewRequest{} }),
			r.reviewHandler.Create)
		reviews.PUT("/:id",
			r.validMw.ValidateRequestBody(func() interface{} { return &dto.UpdateReviewRequest{} }),
			r.reviewHandler.Update)
		reviews.DELETE("/:id", r.reviewHandler.Delete)
	}
}

func (r *Router) favouriteRoutes(version *gin.RouterGroup) {
	favourites := version.Group("/favourites")
	favourites.Use(r.jwtMw.RequireAuth())
	{
		favourites.GET("", r.favouriteHandler.List)
		favourites.POST("/:beachId", r.favouriteHandler.Add)
		favourites.DELETE("/:beachId", r.favouriteHandler.Remove)
	}
}
