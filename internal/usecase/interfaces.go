package usecase

import (
	"context"
	"time"

	"storefront/internal/domain/entity"
)

// IdentityProvider is the credential store. Passwords never pass through the
// service except on account creation and change.
type IdentityProvider interface {
	CreateUser(ctx context.Context, email, password, displayName string) (string, error)
	GetUserByEmail(ctx context.Context, email string) (string, error)
	GetUserByID(ctx context.Context, uid string) (string, error)
	UpdatePassword(ctx context.Context, uid, newPassword string) error
}

// TokenIssuer signs the service's own session tokens (the admin bypass).
type TokenIssuer interface {
	Issue(subject string, role entity.Role) (token string, expiresAt time.Time, err error)
}
