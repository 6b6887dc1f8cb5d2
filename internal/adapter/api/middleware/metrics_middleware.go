package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"storefront/pkg/metrics"
)

// Metrics records request latency by route template and final status.
func Metrics(m *metrics.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			var httpErr *echo.HTTPError
			if err != nil && errors.As(err, &httpErr) {
				status = httpErr.Code
			} else if err != nil && !c.Response().Committed {
				status = http.StatusInternalServerError
			}

			m.ObserveRequest(c.Request().Method, c.Path(), status, time.Since(start))
			return err
		}
	}
}
