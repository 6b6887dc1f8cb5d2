package repository

import (
	"context"

	"storefront/internal/domain/entity"
)

type CartRepository interface {
	// Upsert overwrites the buyer's line for item.ProductID.
	Upsert(ctx context.Context, buyerID string, item *entity.CartItem) error
	SetQuantity(ctx context.Context, buyerID, productID string, quantity int) error
	// Delete is idempotent.
	Delete(ctx context.Context, buyerID, productID string) error
	List(ctx context.Context, buyerID string) ([]*entity.CartItem, error)
}
