package repository

import (
	"context"

	"storefront/internal/domain/entity"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	// CreateIfAbsent writes user only when no document with its id exists.
	CreateIfAbsent(ctx context.Context, user *entity.User) (bool, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	UpdateProfile(ctx context.Context, user *entity.User) error
}
