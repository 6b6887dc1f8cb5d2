package router

import (
	"storefront/internal/adapter/api/handler"
	"storefront/internal/adapter/api/middleware"
	"storefront/internal/domain/entity"

	"github.com/labstack/echo/v4"
)

func SetupOrderRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, accessMiddleware *middleware.AccessMiddleware) {
	orderHandler := handler.GetOrderHandler()

	// groups with an empty prefix would wrap the global not-found route
	pages := []echo.MiddlewareFunc{authMiddleware.AuthenticatePage, accessMiddleware.RequirePage(entity.RoleBuyer)}
	e.POST("/place_order", orderHandler.PlaceOrder, pages...)
	e.GET("/orders", orderHandler.ListOrders, pages...)
	e.GET("/order/:id", orderHandler.GetOrder, pages...)

	e.POST("/api/order/cancel/:id", orderHandler.CancelOrder,
		authMiddleware.Authenticate, accessMiddleware.Require(entity.RoleBuyer))
}
