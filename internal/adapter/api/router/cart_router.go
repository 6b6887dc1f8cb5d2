package router

import (
	"storefront/internal/adapter/api/handler"
	"storefront/internal/adapter/api/middleware"
	"storefront/internal/domain/entity"

	"github.com/labstack/echo/v4"
)

func SetupCartRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, accessMiddleware *middleware.AccessMiddleware) {
	cartHandler := handler.GetCartHandler()

	api := e.Group("/api/cart")
	api.Use(authMiddleware.Authenticate)
	api.Use(accessMiddleware.Require(entity.RoleBuyer))
	api.POST("/add", cartHandler.AddToCart)
	api.POST("/update", cartHandler.UpdateCart)
	api.POST("/remove", cartHandler.RemoveFromCart)

	pageMiddleware := []echo.MiddlewareFunc{authMiddleware.AuthenticatePage, accessMiddleware.RequirePage(entity.RoleBuyer)}
	e.GET("/cart", cartHandler.ViewCart, pageMiddleware...)
	e.GET("/checkout", cartHandler.Checkout, pageMiddleware...)
}
