package repository

import (
	"context"
	"sort"

	"cloud.google.com/go/firestore"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/pkg/errors"
)

type firestoreReviewRepository struct {
	client *firestore.Client
}

func NewFirestoreReviewRepository(client *firestore.Client) repository.ReviewRepository {
	return &firestoreReviewRepository{
		client: client,
	}
}

func (r *firestoreReviewRepository) reviews(productID string) *firestore.CollectionRef {
	return r.client.Collection(productsCollection).Doc(productID).Collection(reviewsCollection)
}

func (r *firestoreReviewRepository) ListByProduct(ctx context.Context, productID string) ([]*entity.Review, error) {
	docs, err := r.reviews(productID).Documents(ctx).GetAll()
	if err != nil {
		return nil, storeError("Review", "Failed to list reviews", err)
	}

	reviews := make([]*entity.Review, 0, len(docs))
	for _, doc := range docs {
		var review entity.Review
		if err := doc.DataTo(&review); err != nil {
			return nil, errors.Internal("Failed to parse review data", err)
		}
		review.ID = doc.Ref.ID
		if review.UserName == "" {
			review.UserName = "Anonymous"
		}
		reviews = append(reviews, &review)
	}

	sort.SliceStable(reviews, func(i, j int) bool {
		return reviews[i].CreatedAt.After(reviews[j].CreatedAt)
	})
	return reviews, nil
}

func (r *firestoreReviewRepository) Create(ctx context.Context, review *entity.Review) error {
	productRef := r.client.Collection(productsCollection).Doc(review.ProductID)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(productRef)
		if err != nil {
			return storeError("Product", "Failed to get product", err)
		}
		product, err := decodeProduct(doc)
		if err != nil {
			return err
		}
		product.AddRating(review.Rating)

		ref := r.reviews(review.ProductID).NewDoc()
		review.ID = ref.ID
		if err := tx.Create(ref, review); err != nil {
			return err
		}
		return tx.Update(productRef, []firestore.Update{
			{Path: "rating", Value: product.Rating},
			{Path: "reviewCount", Value: product.ReviewCount},
		})
	})
	return storeError("Review", "Failed to create review", err)
}
