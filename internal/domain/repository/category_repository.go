package repository

import (
	"context"

	"storefront/internal/domain/entity"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	List(ctx context.Context) ([]*entity.Category, error)
	// Rename updates the category and the denormalized name on its products together.
	Rename(ctx context.Context, id, name string) (*entity.Category, error)
}
