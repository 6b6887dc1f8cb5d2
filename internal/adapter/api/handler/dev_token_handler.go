package handler

import (
	"github.com/labstack/echo/v4"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"
	"storefront/pkg/errors"
	"storefront/pkg/response"
)

// DevTokenHandler mints session tokens for existing accounts so a local
// server can be exercised without Firebase sign-in. Development only.
type DevTokenHandler struct {
	userRepo repository.UserRepository
	tokens   usecase.TokenIssuer
}

var devTokenHandler *DevTokenHandler

func NewDevTokenHandler(userRepo repository.UserRepository, tokens usecase.TokenIssuer) *DevTokenHandler {
	return &DevTokenHandler{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

func SetupDevTokenHandler(userRepo repository.UserRepository, tokens usecase.TokenIssuer) {
	devTokenHandler = NewDevTokenHandler(userRepo, tokens)
}

func GetDevTokenHandler() *DevTokenHandler {
	return devTokenHandler
}

// GenerateUserToken never mints admin tokens; those come only from admin login.
func (h *DevTokenHandler) GenerateUserToken(c echo.Context) error {
	uid := c.Param("uid")
	if uid == entity.AdminID {
		return response.Error(c, errors.Forbidden("Admin tokens are not issued here", nil))
	}

	user, err := h.userRepo.GetByID(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}
	if user.Role == entity.RoleAdmin {
		return response.Error(c, errors.Forbidden("Admin tokens are not issued here", nil))
	}

	token, expiresAt, err := h.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"token":      token,
		"expires_at": expiresAt,
		"user": map[string]interface{}{
			"id":    user.ID,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}
