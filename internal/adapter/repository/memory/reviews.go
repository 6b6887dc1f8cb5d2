package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"storefront/internal/domain/entity"
	"storefront/pkg/errors"
)

type reviewRepo struct{ s *Store }

func (r *reviewRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.Review, error) {
	release, err := r.s.acquire()
	defer release()
	if err != nil {
		return nil, err
	}
	stored := r.s.reviews[productID]
	out := make([]*entity.Review, 0, len(stored))
	for i := range stored {
		review := stored[i]
		if review.UserName == "" {
			review.UserName = "Anonymous"
		}
		out = append(out, &review)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *reviewRepo) Create(ctx context.Context, review *entity.Review) error {
	release, err := r.s.acquire()
	defer release()
	if err != nil {
		return err
	}
	product, ok := r.s.products[review.ProductID]
	if !ok {
		return errors.NotFound("Product", nil)
	}
	product.AddRating(review.Rating)
	r.s.products[review.ProductID] = product

	review.ID = uuid.NewString()
	r.s.reviews[review.ProductID] = append(r.s.reviews[review.ProductID], *review)
	return nil
}
