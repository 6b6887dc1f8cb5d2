package repository

import (
	"context"

	"cloud.google.com/go/firestore"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/pkg/errors"
)

type firestoreCartRepository struct {
	client *firestore.Client
}

func NewFirestoreCartRepository(client *firestore.Client) repository.CartRepository {
	return &firestoreCartRepository{
		client: client,
	}
}

func (r *firestoreCartRepository) cart(buyerID string) *firestore.CollectionRef {
	return r.client.Collection(usersCollection).Doc(buyerID).Collection(cartCollection)
}

func (r *firestoreCartRepository) Upsert(ctx context.Context, buyerID string, item *entity.CartItem) error {
	_, err := r.cart(buyerID).Doc(item.ProductID).Set(ctx, map[string]interface{}{
		"productId":    item.ProductID,
		"productName":  item.ProductName,
		"productPrice": item.ProductPrice,
		"imageUrl":     item.ImageURL,
		"quantity":     item.Quantity,
		"size":         item.Size,
		"vendorId":     item.VendorID,
		"addedAt":      firestore.ServerTimestamp,
	}, firestore.MergeAll)
	return storeError("Cart item", "Failed to add to cart", err)
}

func (r *firestoreCartRepository) SetQuantity(ctx context.Context, buyerID, productID string, quantity int) error {
	_, err := r.cart(buyerID).Doc(productID).Update(ctx, []firestore.Update{
		{Path: "quantity", Value: quantity},
	})
	return storeError("Cart item", "Failed to update cart", err)
}

func (r *firestoreCartRepository) Delete(ctx context.Context, buyerID, productID string) error {
	_, err := r.cart(buyerID).Doc(productID).Delete(ctx)
	return storeError("Cart item", "Failed to remove from cart", err)
}

func (r *firestoreCartRepository) List(ctx context.Context, buyerID string) ([]*entity.CartItem, error) {
	docs, err := r.cart(buyerID).Documents(ctx).GetAll()
	if err != nil {
		return nil, storeError("Cart", "Failed to list cart", err)
	}
	return decodeCartItems(docs)
}

func decodeCartItems(docs []*firestore.DocumentSnapshot) ([]*entity.CartItem, error) {
	items := make([]*entity.CartItem, 0, len(docs))
	for _, doc := range docs {
		var item entity.CartItem
		if err := doc.DataTo(&item); err != nil {
			return nil, errors.Internal("Failed to parse cart item", err)
		}
		if item.ProductID == "" {
			item.ProductID = doc.Ref.ID
		}
		items = append(items, &item)
	}
	return items, nil
}
