package handler

import (
	"github.com/labstack/echo/v4"

	"storefront/internal/adapter/api/middleware"
	"storefront/internal/domain/entity"
	"storefront/internal/usecase"
	"storefront/pkg/response"
)

type AuthHandler struct {
	authUseCase *usecase.AuthUseCase
}

func NewAuthHandler(authUseCase *usecase.AuthUseCase) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
	}
}

type registerRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	FullName    string `json:"full_name" validate:"required"`
	PhoneNumber string `json:"phone_number"`
}

type adminLoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type changePasswordRequest struct {
	NewPassword     string `json:"new_password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

type profileRequest struct {
	FullName    string `form:"full_name" json:"full_name" validate:"required"`
	PhoneNumber string `form:"phone_number" json:"phone_number"`
	Address     string `form:"address" json:"address"`
	City        string `form:"city" json:"city"`
	State       string `form:"state" json:"state"`
	Zip         string `form:"zip" json:"zip"`
	Country     string `form:"country" json:"country"`
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.authUseCase.Register(c.Request().Context(), usecase.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Phone:    req.PhoneNumber,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, result)
}

func (h *AuthHandler) AdminLogin(c echo.Context) error {
	var req adminLoginRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.authUseCase.AdminLogin(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, result)
}

func (h *AuthHandler) ChangePassword(c echo.Context) error {
	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	if err := h.authUseCase.ChangePassword(c.Request().Context(), middleware.UID(c), req.NewPassword, req.ConfirmPassword); err != nil {
		return response.Error(c, err)
	}
	return response.Message(c, "Password updated successfully")
}

func (h *AuthHandler) GetProfile(c echo.Context) error {
	user, err := h.authUseCase.Profile(c.Request().Context(), middleware.UID(c))
	if err != nil {
		return response.PageError(c, err, "/")
	}
	return response.Page(c, map[string]interface{}{"user": user})
}

// UpdateProfile answers the profile form and redirects back to the profile page.
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	var req profileRequest
	if err := c.Bind(&req); err != nil {
		return response.PageError(c, err, "/profile")
	}
	if err := c.Validate(&req); err != nil {
		return response.PageError(c, err, "/profile")
	}

	_, err := h.authUseCase.UpdateProfile(c.Request().Context(), middleware.UID(c), usecase.ProfileInput{
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
		Address: entity.Address{
			Street:  req.Address,
			City:    req.City,
			State:   req.State,
			Zip:     req.Zip,
			Country: req.Country,
		},
	})
	if err != nil {
		return response.PageError(c, err, "/profile")
	}
	return response.Redirect(c, "/profile", "success", "Profile updated successfully")
}
