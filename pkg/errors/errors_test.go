package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructorsCarryStatus(t *testing.T) {
	cases := []struct {
		err    *AppError
		code   string
		status int
	}{
		{NotFound("Product", nil), CodeNotFound, http.StatusNotFound},
		{BadRequest("bad", nil), CodeBadRequest, http.StatusBadRequest},
		{Validation(CodeInsufficientStock, "no stock"), CodeInsufficientStock, http.StatusBadRequest},
		{Unauthorized("who", nil), CodeUnauthorized, http.StatusUnauthorized},
		{Forbidden("no", nil), CodeForbidden, http.StatusForbidden},
		{Conflict("dup"), CodeConflict, http.StatusConflict},
		{Transient("down", nil), CodeTransient, http.StatusServiceUnavailable},
		{Internal("boom", nil), CodeInternal, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.code, tc.err.Code)
		assert.Equal(t, tc.status, tc.err.Status)
	}
}

func TestIsAndCodeSeeThroughWrapping(t *testing.T) {
	base := Validation(CodeInvalidState, "order cannot be cancelled")
	wrapped := fmt.Errorf("cancel: %w", base)

	assert.True(t, Is(wrapped, CodeInvalidState))
	assert.False(t, Is(wrapped, CodeNotFound))
	assert.Equal(t, CodeInvalidState, Code(wrapped))
	assert.Equal(t, CodeInternal, Code(fmt.Errorf("plain")))
}

func TestIsTransient(t *testing.T) {
	assert.True(t, IsTransient(Transient("unavailable", nil)))
	assert.False(t, IsTransient(NotFound("Order", nil)))
	assert.False(t, IsTransient(nil))
}

func TestNotFoundMessage(t *testing.T) {
	err := NotFound("Order", nil)
	assert.Equal(t, "Order not found", err.Message)
	assert.Equal(t, "NOT_FOUND: Order not found", err.Error())
}
