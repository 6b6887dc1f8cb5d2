package repository

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/pkg/errors"
)

type firestoreOrderRepository struct {
	client *firestore.Client
}

func NewFirestoreOrderRepository(client *firestore.Client) repository.OrderRepository {
	return &firestoreOrderRepository{
		client: client,
	}
}

// PlaceFromCart does every read before any write, as Firestore transactions
// require. A concurrent checkout of the same cart conflicts, retries, and then
// plans against the already emptied cart.
func (r *firestoreOrderRepository) PlaceFromCart(ctx context.Context, buyerID string, planner repository.CheckoutPlanner) ([]*entity.Order, error) {
	var placed []*entity.Order
	cart := r.client.Collection(usersCollection).Doc(buyerID).Collection(cartCollection)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		placed = nil

		cartDocs, err := tx.Documents(cart).GetAll()
		if err != nil {
			return storeError("Cart", "Failed to read cart", err)
		}
		items, err := decodeCartItems(cartDocs)
		if err != nil {
			return err
		}

		refs := make([]*firestore.DocumentRef, 0, len(items))
		seen := make(map[string]bool, len(items))
		for _, item := range items {
			if seen[item.ProductID] {
				continue
			}
			seen[item.ProductID] = true
			refs = append(refs, r.client.Collection(productsCollection).Doc(item.ProductID))
		}

		products := map[string]*entity.Product{}
		if len(refs) > 0 {
			productDocs, err := tx.GetAll(refs)
			if err != nil {
				return storeError("Product", "Failed to read cart products", err)
			}
			if products, err = decodeExistingProducts(productDocs); err != nil {
				return err
			}
		}

		plan, err := planner(items, products)
		if err != nil {
			return err
		}

		now := time.Now()
		for productID, units := range plan.Decrements {
			product, ok := products[productID]
			if !ok || product.Quantity < units {
				return errors.Validation(errors.CodeInsufficientStock, "Not enough stock available")
			}
			if err := tx.Update(r.client.Collection(productsCollection).Doc(productID), []firestore.Update{
				{Path: "quantity", Value: product.Quantity - units},
				{Path: "updatedAt", Value: now},
			}); err != nil {
				return err
			}
		}

		for _, order := range plan.Orders {
			ref := r.client.Collection(ordersCollection).NewDoc()
			order.ID = ref.ID
			if err := tx.Create(ref, order.ToRecord()); err != nil {
				return err
			}
		}

		for _, productID := range plan.Consumed {
			if err := tx.Delete(cart.Doc(productID)); err != nil {
				return err
			}
		}

		placed = plan.Orders
		return nil
	})
	if err != nil {
		return nil, storeError("Order", "Failed to place order", err)
	}
	return placed, nil
}

func (r *firestoreOrderRepository) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	doc, err := r.client.Collection(ordersCollection).Doc(id).Get(ctx)
	if err != nil {
		return nil, storeError("Order", "Failed to get order", err)
	}
	return decodeOrder(doc)
}

func (r *firestoreOrderRepository) ListByBuyer(ctx context.Context, buyerID string) ([]*entity.Order, error) {
	return r.listWhere(ctx, "buyerId", buyerID)
}

func (r *firestoreOrderRepository) ListByVendor(ctx context.Context, vendorID string) ([]*entity.Order, error) {
	return r.listWhere(ctx, "vendorId", vendorID)
}

func (r *firestoreOrderRepository) listWhere(ctx context.Context, field, value string) ([]*entity.Order, error) {
	docs, err := r.client.Collection(ordersCollection).Where(field, "==", value).Documents(ctx).GetAll()
	if err != nil {
		return nil, storeError("Order", "Failed to list orders", err)
	}

	orders := make([]*entity.Order, 0, len(docs))
	for _, doc := range docs {
		order, err := decodeOrder(doc)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}

	// sorted here rather than in the query to avoid a composite index
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

func (r *firestoreOrderRepository) Update(ctx context.Context, id string, mutate repository.OrderMutation) (*entity.Order, error) {
	var updated *entity.Order
	ref := r.client.Collection(ordersCollection).Doc(id)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil {
			return storeError("Order", "Failed to get order", err)
		}
		order, err := decodeOrder(doc)
		if err != nil {
			return err
		}
		if err := mutate(order); err != nil {
			return err
		}
		if err := tx.Set(ref, order.ToRecord()); err != nil {
			return err
		}
		updated = order
		return nil
	})
	if err != nil {
		return nil, storeError("Order", "Failed to update order", err)
	}
	return updated, nil
}

func (r *firestoreOrderRepository) HasDeliveredPurchase(ctx context.Context, buyerID, productID string) (bool, error) {
	docs, err := r.client.Collection(ordersCollection).
		Where("buyerId", "==", buyerID).
		Where("status", "==", string(entity.OrderStatusDelivered)).
		Documents(ctx).GetAll()
	if err != nil {
		return false, storeError("Order", "Failed to query orders", err)
	}

	for _, doc := range docs {
		order, err := decodeOrder(doc)
		if err != nil {
			return false, err
		}
		if order.ContainsProduct(productID) {
			return true, nil
		}
	}
	return false, nil
}

// decodeOrder reads through the record codec so documents written by older
// clients with looser typing still load.
func decodeOrder(doc *firestore.DocumentSnapshot) (*entity.Order, error) {
	order, err := entity.OrderFromRecord(doc.Data())
	if err != nil {
		return nil, errors.Internal("Failed to parse order data", err)
	}
	if order.ID == "" {
		order.ID = doc.Ref.ID
	}
	return order, nil
}
