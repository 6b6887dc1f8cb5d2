package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// StorePinger is satisfied by both store drivers.
type StorePinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	store StorePinger
}

var healthHandler *HealthHandler

func NewHealthHandler(store StorePinger) *HealthHandler {
	return &HealthHandler{
		store: store,
	}
}

func SetupHealthHandler(store StorePinger) {
	healthHandler = NewHealthHandler(store)
}

func GetHealthHandler() *HealthHandler {
	return healthHandler
}

func (h *HealthHandler) CheckHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "Server is running",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func (h *HealthHandler) CheckStoreHealth(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "Document store unreachable",
			"error":  err.Error(),
		})
	}
	return c.JSON(http.StatusOK, map[string]string{
		"status": "Document store connected",
	})
}
