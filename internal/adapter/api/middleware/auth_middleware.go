package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"storefront/internal/infrastructure/token"
	"storefront/pkg/errors"
	"storefront/pkg/response"
)

// IDTokenVerifier checks a Firebase ID token and returns its uid.
type IDTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (string, error)
}

// AuthMiddleware resolves the bearer token to a principal id and stores it
// under "uid". Service-issued tokens are tried first, then Firebase ID tokens
// when a verifier is configured.
type AuthMiddleware struct {
	verifier IDTokenVerifier
	issuer   *token.Issuer
}

func NewAuthMiddleware(verifier IDTokenVerifier, issuer *token.Issuer) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
		issuer:   issuer,
	}
}

func bearerToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return "", errors.Unauthorized("Authorization header is required", nil)
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", errors.Unauthorized("Invalid authorization format", nil)
	}
	return strings.TrimSpace(parts[1]), nil
}

// GetUIDFromToken verifies raw and returns the principal it names.
func (m *AuthMiddleware) GetUIDFromToken(ctx context.Context, raw string) (string, error) {
	if m.issuer != nil {
		if claims, err := m.issuer.Verify(raw); err == nil {
			return claims.Subject, nil
		}
	}
	if m.verifier != nil {
		return m.verifier.VerifyIDToken(ctx, raw)
	}
	return "", errors.Unauthorized("Invalid or expired token", nil)
}

func (m *AuthMiddleware) principal(c echo.Context) (string, error) {
	raw, err := bearerToken(c)
	if err != nil {
		return "", err
	}
	uid, err := m.GetUIDFromToken(c.Request().Context(), raw)
	if err != nil || uid == "" {
		return "", errors.Unauthorized("Invalid or expired token", err)
	}
	return uid, nil
}

// Authenticate guards JSON routes.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		uid, err := m.principal(c)
		if err != nil {
			return response.Error(c, err)
		}
		c.Set("uid", uid)
		return next(c)
	}
}

// AuthenticatePage guards page routes; anonymous visitors go to the login page.
func (m *AuthMiddleware) AuthenticatePage(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		uid, err := m.principal(c)
		if err != nil {
			return response.PageError(c, err, "/login")
		}
		c.Set("uid", uid)
		return next(c)
	}
}

// Optional sets "uid" when a valid token is present and lets everyone through.
func (m *AuthMiddleware) Optional(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if uid, err := m.principal(c); err == nil {
			c.Set("uid", uid)
		}
		return next(c)
	}
}

// UID returns the authenticated principal, or "" on public routes.
func UID(c echo.Context) string {
	uid, _ := c.Get("uid").(string)
	return uid
}
