package router

import (
	"storefront/internal/adapter/api/handler"
	"storefront/internal/adapter/api/middleware"
	"storefront/internal/domain/entity"

	"github.com/labstack/echo/v4"
)

func SetupVendorRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, accessMiddleware *middleware.AccessMiddleware) {
	vendorHandler := handler.GetVendorHandler()

	e.GET("/vendor/dashboard", vendorHandler.Dashboard,
		authMiddleware.AuthenticatePage, accessMiddleware.RequirePage(entity.RoleVendor))
}
