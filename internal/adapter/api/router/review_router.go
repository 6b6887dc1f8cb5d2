package router

import (
	"storefront/internal/adapter/api/handler"
	"storefront/internal/adapter/api/middleware"
	"storefront/internal/domain/entity"

	"github.com/labstack/echo/v4"
)

func SetupReviewRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, accessMiddleware *middleware.AccessMiddleware) {
	reviewHandler := handler.GetReviewHandler()

	e.GET("/api/products/:id/reviews", reviewHandler.ListReviews)
	e.POST("/api/products/:id/reviews", reviewHandler.CreateReview,
		authMiddleware.Authenticate, accessMiddleware.Require(entity.RoleBuyer))
}
