package repository

import (
	"context"

	"storefront/internal/domain/entity"
)

// CheckoutPlan is what a checkout produces from a cart snapshot.
type CheckoutPlan struct {
	Orders []*entity.Order
	// Consumed lists the cart lines (by product id) to delete.
	Consumed []string
	// Decrements maps product id to units to take from stock. Empty disables it.
	Decrements map[string]int
}

// CheckoutPlanner builds the plan from the cart and the live products it
// references. Products that no longer exist are absent from the map.
type CheckoutPlanner func(cart []*entity.CartItem, products map[string]*entity.Product) (*CheckoutPlan, error)

// OrderMutation edits an order in place; returning an error aborts the write.
type OrderMutation func(order *entity.Order) error

type OrderRepository interface {
	// PlaceFromCart reads the cart, plans, creates orders, applies stock
	// decrements and deletes consumed lines as one atomic unit.
	PlaceFromCart(ctx context.Context, buyerID string, plan CheckoutPlanner) ([]*entity.Order, error)
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	ListByBuyer(ctx context.Context, buyerID string) ([]*entity.Order, error)
	ListByVendor(ctx context.Context, vendorID string) ([]*entity.Order, error)
	// Update runs mutate against the current order and saves the result atomically.
	Update(ctx context.Context, id string, mutate OrderMutation) (*entity.Order, error)
	HasDeliveredPurchase(ctx context.Context, buyerID, productID string) (bool, error)
}
