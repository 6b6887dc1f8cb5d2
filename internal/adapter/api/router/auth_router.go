package router

import (
	"storefront/internal/adapter/api/handler"
	"storefront/internal/adapter/api/middleware"
	"storefront/internal/domain/entity"

	"github.com/labstack/echo/v4"
)

func SetupAuthRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, accessMiddleware *middleware.AccessMiddleware) {
	authHandler := handler.GetAuthHandler()

	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/admin/login", authHandler.AdminLogin)
	auth.POST("/change-password", authHandler.ChangePassword, authMiddleware.Authenticate, accessMiddleware.Require(entity.RoleAny))

	profile := e.Group("/profile")
	profile.Use(authMiddleware.AuthenticatePage)
	profile.Use(accessMiddleware.RequirePage(entity.RoleBuyer))
	profile.GET("", authHandler.GetProfile)
	profile.POST("", authHandler.UpdateProfile)
}
