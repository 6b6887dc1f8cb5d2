package router

import (
	"storefront/internal/adapter/api/handler"
	"storefront/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupAdminRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, accessMiddleware *middleware.AccessMiddleware) {
	adminHandler := handler.GetAdminHandler()

	admin := e.Group("/api/admin")
	admin.Use(authMiddleware.Authenticate)
	admin.Use(accessMiddleware.AdminOnly)
	admin.POST("/categories", adminHandler.CreateCategory)
	admin.PUT("/categories/:id", adminHandler.RenameCategory)
}
