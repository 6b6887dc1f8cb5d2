package repository

import (
	"context"

	"storefront/internal/domain/entity"
)

type ReviewRepository interface {
	ListByProduct(ctx context.Context, productID string) ([]*entity.Review, error)
	// Create stores the review and folds its rating into the product atomically.
	Create(ctx context.Context, review *entity.Review) error
}
