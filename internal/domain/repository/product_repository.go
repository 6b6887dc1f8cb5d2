package repository

import (
	"context"

	"storefront/internal/domain/entity"
)

// Sortable product fields.
const (
	ProductFieldCreatedAt = "createdAt"
	ProductFieldPrice     = "productPrice"
	ProductFieldRating    = "rating"
)

// ProductQuery is a conjunction of optional constraints plus one ordering.
type ProductQuery struct {
	MinPrice     *float64
	MaxPrice     *float64
	MinRating    *float64
	CategoryID   string
	VendorID     string
	FeaturedOnly bool
	OrderBy      string
	Descending   bool
	Limit        int
	Offset       int
}

type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetMany returns the products that exist, keyed by id.
	GetMany(ctx context.Context, ids []string) (map[string]*entity.Product, error)
	List(ctx context.Context, query ProductQuery) ([]*entity.Product, error)
	// ListAll enumerates every product in store order.
	ListAll(ctx context.Context) ([]*entity.Product, error)
	CountByCategory(ctx context.Context, categoryID string) (int64, error)
}
