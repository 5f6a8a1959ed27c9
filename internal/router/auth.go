package router

import (
	"github.com/gin-gonic/gin"
	"github.com/playea/beach-api/internal/dto"
)

func (r *Router) authRoutes(version *gin.RouterGroup) {
	auth := version.Group("/auth")
	{
		// Public routes (no authentication required)
		auth.POST("/register",
			r.validMw.ValidateRequestBody(func() interface{} { return &dto.RegisterRequest{} }),
			r.authHandler.Register)
		auth.POST("/login",
			r.validMw.ValidateRequestBody(func() interface{} { return &dto.UserLoginRequest{} }),
			r.authHandler.Login)
		auth.POST("/refresh",
			r.validMw.ValidateRequestBody(func() interface{} { return &dto.RefreshTokenRequest{} }),
			r.authHandler.RefreshToken)

		auth.GET("/google", r.authHandler.GoogleRedirect)
		auth.GET("/google/callback", r.authHandler.GoogleCallback)

		// Protected routes (JWT authentication required)
		protected := auth.Group("")
		protected.Use(r.jwtMw.RequireAuth())
		{
			protected.POST("/logout", r.authHandler.Logout)
		}
	}
}
