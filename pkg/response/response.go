package response

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	apperrors "storefront/pkg/errors"
)

const FlashCookie = "flash"

type Response struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Error     *ErrorInfo  `json:"error,omitempty"`
	Flash     *FlashInfo  `json:"flash,omitempty"`
	Timestamp string      `json:"timestamp"`
}

type FlashInfo struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

type ErrorInfo struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

type PaginatedResponse struct {
	Items      interface{} `json:"items"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"pageSize"`
	TotalPages int         `json:"totalPages"`
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func Success(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, Response{
		Success:   true,
		Data:      data,
		Timestamp: now(),
	})
}

// Message answers a bare {success:true,message} body.
func Message(c echo.Context, message string) error {
	return c.JSON(http.StatusOK, Response{
		Success:   true,
		Message:   message,
		Timestamp: now(),
	})
}

func Created(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusCreated, Response{
		Success:   true,
		Data:      data,
		Timestamp: now(),
	})
}

func Paginated(c echo.Context, items interface{}, total int64, page, pageSize int) error {
	totalPages := 0
	if pageSize > 0 {
		totalPages = int(total) / pageSize
		if int(total)%pageSize > 0 {
			totalPages++
		}
	}

	return c.JSON(http.StatusOK, Response{
		Success:   true,
		Timestamp: now(),
		Data: PaginatedResponse{
			Items:      items,
			Total:      total,
			Page:       page,
			PageSize:   pageSize,
			TotalPages: totalPages,
		},
	})
}

func Error(c echo.Context, err error) error {
	var validationErr validator.ValidationErrors
	if errors.As(err, &validationErr) {
		return handleValidationError(c, validationErr)
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		msg, _ := httpErr.Message.(string)
		if msg == "" {
			msg = http.StatusText(httpErr.Code)
		}
		return fail(c, httpErr.Code, apperrors.CodeBadRequest, msg)
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return fail(c, appErr.Status, appErr.Code, appErr.Message)
	}

	return fail(c, http.StatusInternalServerError, apperrors.CodeInternal, "An unexpected error occurred")
}

func fail(c echo.Context, status int, code, message string) error {
	return c.JSON(status, Response{
		Success:   false,
		Message:   message,
		Timestamp: now(),
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
		},
	})
}

func handleValidationError(c echo.Context, validationErr validator.ValidationErrors) error {
	for _, err := range validationErr {
		field := strings.ToLower(err.Field())
		param := err.Param()

		var message string
		switch err.Tag() {
		case "required":
			message = field + " is required"
		case "min", "gte":
			message = field + " must be at least " + param
		case "max", "lte":
			message = field + " must be at most " + param
		case "oneof":
			message = field + " must be one of: " + param
		case "email":
			message = field + " must be a valid email address"
		case "eqfield":
			message = field + " must match " + strings.ToLower(param)
		default:
			message = field + " is invalid"
		}

		return fail(c, http.StatusBadRequest, apperrors.CodeValidation, message)
	}

	return fail(c, http.StatusBadRequest, apperrors.CodeValidation, "Invalid input data")
}

// Redirect stores a flash message in a cookie and answers 303 See Other.
func Redirect(c echo.Context, to, level, message string) error {
	if message != "" {
		c.SetCookie(&http.Cookie{
			Name:     FlashCookie,
			Value:    url.QueryEscape(level + ":" + message),
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return c.Redirect(http.StatusSeeOther, to)
}

// PageError turns a failure on a page route into a flash + redirect. Missing
// authentication goes to the login page, everything else to fallback.
func PageError(c echo.Context, err error, fallback string) error {
	if apperrors.Is(err, apperrors.CodeUnauthorized) {
		return Redirect(c, "/login", "warning", "Please log in to continue")
	}

	message := "Something went wrong, please try again"
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Code != apperrors.CodeInternal {
		message = appErr.Message
	}
	var validationErr validator.ValidationErrors
	if errors.As(err, &validationErr) && len(validationErr) > 0 {
		message = strings.ToLower(validationErr[0].Field()) + " is invalid"
	}
	return Redirect(c, fallback, "danger", message)
}

// Page answers a page route with its view model and any pending flash.
func Page(c echo.Context, data interface{}) error {
	res := Response{
		Success:   true,
		Data:      data,
		Timestamp: now(),
	}
	if level, message := ReadFlash(c); message != "" {
		res.Flash = &FlashInfo{Level: level, Message: message}
	}
	return c.JSON(http.StatusOK, res)
}

// ReadFlash returns and clears the pending flash message, if any.
func ReadFlash(c echo.Context) (level, message string) {
	cookie, err := c.Cookie(FlashCookie)
	if err != nil || cookie.Value == "" {
		return "", ""
	}
	c.SetCookie(&http.Cookie{Name: FlashCookie, Path: "/", MaxAge: -1})

	raw, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return "", ""
	}
	level, message, found := strings.Cut(raw, ":")
	if !found {
		return "info", raw
	}
	return level, message
}
