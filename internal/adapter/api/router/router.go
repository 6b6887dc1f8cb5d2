package router

import (
	"storefront/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, accessMiddleware *middleware.AccessMiddleware, environment string) {
	SetupAuthRouter(e, authMiddleware, accessMiddleware)
	SetupProductRouter(e, authMiddleware)
	SetupCartRouter(e, authMiddleware, accessMiddleware)
	SetupOrderRouter(e, authMiddleware, accessMiddleware)
	SetupReviewRouter(e, authMiddleware, accessMiddleware)
	SetupAdminRouter(e, authMiddleware, accessMiddleware)
	SetupVendorRouter(e, authMiddleware, accessMiddleware)
	SetupHealthRouter(e)
	SetupDevRouter(e, environment)
}
