package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/pkg/errors"
)

type orderRepo struct{ s *Store }

// PlaceFromCart holds the store lock for the whole checkout, so a second
// concurrent call always plans against the cart the first one left behind.
func (r *orderRepo) PlaceFromCart(ctx context.Context, buyerID string, planner repository.CheckoutPlanner) ([]*entity.Order, error) {
	release, err := r.s.acquire()
	defer release()
	if err != nil {
		return nil, err
	}

	items := r.s.cartItems(buyerID)
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	products := r.s.productsByID(ids)

	plan, err := planner(items, products)
	if err != nil {
		return nil, err
	}

	for productID, units := range plan.Decrements {
		if p, ok := products[productID]; !ok || p.Quantity < units {
			return nil, errors.Validation(errors.CodeInsufficientStock, "Not enough stock available")
		}
	}

	now := time.Now()
	for productID, units := range plan.Decrements {
		p := r.s.products[productID]
		p.Quantity -= units
		p.UpdatedAt = now
		r.s.products[productID] = p
	}
	for _, order := range plan.Orders {
		order.ID = uuid.NewString()
		r.s.putOrderLocked(order)
	}
	for _, productID := range plan.Consumed {
		delete(r.s.carts[buyerID], productID)
	}
	return plan.Orders, nil
}

func (r *orderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	release, err := r.s.acquire()
	defer release()
	if err != nil {
		return nil, err
	}
	return r.s.orderLocked(id)
}

func (s *Store) orderLocked(id string) (*entity.Order, error) {
	record, ok := s.orders[id]
	if !ok {
		return nil, errors.NotFound("Order", nil)
	}
	order, err := entity.OrderFromRecord(record)
	if err != nil {
		return nil, errors.Internal("Failed to parse order data", err)
	}
	return order, nil
}

func (r *orderRepo) ListByBuyer(ctx context.Context, buyerID string) ([]*entity.Order, error) {
	return r.listWhere(func(o *entity.Order) bool { return o.BuyerID == buyerID })
}

func (r *orderRepo) ListByVendor(ctx context.Context, vendorID string) ([]*entity.Order, error) {
	return r.listWhere(func(o *entity.Order) bool { return o.VendorID == vendorID })
}

func (r *orderRepo) listWhere(keep func(*entity.Order) bool) ([]*entity.Order, error) {
	release, err := r.s.acquire()
	defer release()
	if err != nil {
		return nil, err
	}

	var orders []*entity.Order
	for _, id := range r.s.orderSeq {
		order, err := r.s.orderLocked(id)
		if err != nil {
			return nil, err
		}
		if keep(order) {
			orders = append(orders, order)
		}
	}
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

func (r *orderRepo) Update(ctx context.Context, id string, mutate repository.OrderMutation) (*entity.Order, error) {
	release, err := r.s.acquire()
	defer release()
	if err != nil {
		return nil, err
	}
	order, err := r.s.orderLocked(id)
	if err != nil {
		return nil, err
	}
	if err := mutate(order); err != nil {
		return nil, err
	}
	r.s.putOrderLocked(order)
	return order, nil
}

func (r *orderRepo) HasDeliveredPurchase(ctx context.Context, buyerID, productID string) (bool, error) {
	release, err := r.s.acquire()
	defer release()
	if err != nil {
		return false, err
	}
	for _, id := range r.s.orderSeq {
		order, err := r.s.orderLocked(id)
		if err != nil {
			return false, err
		}
		if order.BuyerID == buyerID && order.Status == entity.OrderStatusDelivered && order.ContainsProduct(productID) {
			return true, nil
		}
	}
	return false, nil
}
