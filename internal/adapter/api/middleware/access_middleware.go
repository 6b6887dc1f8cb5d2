package middleware

import (
	"github.com/labstack/echo/v4"

	"storefront/internal/domain/entity"
	"storefront/internal/usecase"
	"storefront/pkg/errors"
	"storefront/pkg/logger"
	"storefront/pkg/response"
)

// AccessMiddleware asks the access gate whether the authenticated principal
// holds a role. It runs after AuthMiddleware and stores the role under "role".
type AccessMiddleware struct {
	access *usecase.AccessUseCase
}

func NewAccessMiddleware(access *usecase.AccessUseCase) *AccessMiddleware {
	return &AccessMiddleware{
		access: access,
	}
}

func (m *AccessMiddleware) decide(c echo.Context, required entity.Role) (usecase.Decision, error) {
	uid := UID(c)
	decision := m.access.Authorize(c.Request().Context(), uid, required)
	if decision.Allowed {
		c.Set("role", decision.Role)
		return decision, nil
	}

	if decision.Reason == usecase.ReasonUnauthenticated {
		return decision, errors.Unauthorized("Authentication required", nil)
	}
	logger.Warn("access denied: uid=%s role=%s required=%s path=%s", uid, decision.Role, required, c.Path())
	return decision, errors.Forbidden("Access denied", nil)
}

// Require guards JSON routes: 401 without a usable principal, 403 on a role mismatch.
func (m *AccessMiddleware) Require(required entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, err := m.decide(c, required); err != nil {
				return response.Error(c, err)
			}
			return next(c)
		}
	}
}

// RequirePage guards page routes with a flash and redirect instead of a status.
func (m *AccessMiddleware) RequirePage(required entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, err := m.decide(c, required); err != nil {
				return response.PageError(c, err, "/")
			}
			return next(c)
		}
	}
}

// AdminOnly is Require(entity.RoleAdmin).
func (m *AccessMiddleware) AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return m.Require(entity.RoleAdmin)(next)
}

// Role returns the role stored by Require, or RoleNone.
func Role(c echo.Context) entity.Role {
	role, _ := c.Get("role").(entity.Role)
	return role
}
