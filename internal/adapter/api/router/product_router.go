package router

import (
	"storefront/internal/adapter/api/handler"
	"storefront/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

// SetupProductRouter mounts the public catalog pages. A valid token is picked
// up when present but never required.
func SetupProductRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	productHandler := handler.GetProductHandler()
	optional := authMiddleware.Optional

	e.GET("/", productHandler.Home, optional)
	e.GET("/products", productHandler.ListProducts, optional)
	e.GET("/product/:id", productHandler.GetProduct, optional)
	e.GET("/category/:id", productHandler.CategoryProducts, optional)
	e.GET("/search", productHandler.SearchProducts, optional)
}
