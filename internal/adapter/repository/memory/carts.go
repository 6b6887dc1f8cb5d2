package memory

import (
	"context"
	"sort"
	"time"

	"storefront/internal/domain/entity"
	"storefront/pkg/errors"
)

type cartRepo struct{ s *Store }

func (r *cartRepo) Upsert(ctx context.Context, buyerID string, item *entity.CartItem) error {
	release, err := r.s.acquire()
	defer release()
	if err != nil {
		return err
	}
	cart, ok := r.s.carts[buyerID]
	if !ok {
		cart = make(map[string]entity.CartItem)
		r.s.carts[buyerID] = cart
	}
	stored := *item
	stored.AddedAt = time.Now()
	cart[item.ProductID] = stored
	return nil
}

func (r *cartRepo) SetQuantity(ctx context.Context, buyerID, productID string, quantity int) error {
	release, err := r.s.acquire()
	defer release()
	if err != nil {
		return err
	}
	item, ok := r.s.carts[buyerID][productID]
	if !ok {
		return errors.NotFound("Cart item", nil)
	}
	item.Quantity = quantity
	r.s.carts[buyerID][productID] = item
	return nil
}

func (r *cartRepo) Delete(ctx context.Context, buyerID, productID string) error {
	release, err := r.s.acquire()
	defer release()
	if err != nil {
		return err
	}
	delete(r.s.carts[buyerID], productID)
	return nil
}

func (r *cartRepo) List(ctx context.Context, buyerID string) ([]*entity.CartItem, error) {
	release, err := r.s.acquire()
	defer release()
	if err != nil {
		return nil, err
	}
	return r.s.cartItems(buyerID), nil
}

// cartItems lists a cart oldest line first; product id breaks ties.
func (s *Store) cartItems(buyerID string) []*entity.CartItem {
	items := make([]*entity.CartItem, 0, len(s.carts[buyerID]))
	for _, item := range s.carts[buyerID] {
		it := item
		items = append(items, &it)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].AddedAt.Equal(items[j].AddedAt) {
			return items[i].ProductID < items[j].ProductID
		}
		return items[i].AddedAt.Before(items[j].AddedAt)
	})
	return items
}
