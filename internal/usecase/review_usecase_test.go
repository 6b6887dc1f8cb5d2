package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain/entity"
	"storefront/pkg/errors"
)

func TestCreateReviewVerifiedPurchase(t *testing.T) {
	s := newStore()
	s.PutUser(entity.User{ID: "b1", Role: entity.RoleBuyer, FullName: "Test Buyer"})
	s.PutProduct(product("p1", "Mug", 10, 5))
	s.PutProduct(product("p2", "Lamp", 20, 5))
	s.PutOrder(entity.Order{
		ID:       "o1",
		BuyerID:  "b1",
		Status:   entity.OrderStatusDelivered,
		Products: []entity.OrderLine{{ProductID: "p1", Quantity: 1}},
	})
	s.PutOrder(entity.Order{
		ID:       "o2",
		BuyerID:  "b1",
		Status:   entity.OrderStatusShipped,
		Products: []entity.OrderLine{{ProductID: "p2", Quantity: 1}},
	})
	uc := NewReviewUseCase(s.Reviews(), s.Products(), s.Orders(), s.Users(), testRetrier())
	ctx := context.Background()

	review, err := uc.CreateReview(ctx, "b1", "p1", CreateReviewInput{Rating: 5, Comment: " great "})
	require.NoError(t, err)
	assert.True(t, review.IsVerifiedPurchase)
	assert.Equal(t, "Test Buyer", review.UserName)
	assert.Equal(t, "great", review.Comment)

	review, err = uc.CreateReview(ctx, "b1", "p2", CreateReviewInput{Rating: 3})
	require.NoError(t, err)
	assert.False(t, review.IsVerifiedPurchase)

	p, _ := s.Products().GetByID(ctx, "p1")
	assert.Equal(t, 5.0, p.Rating)
	assert.Equal(t, 1, p.ReviewCount)

	reviews, err := uc.ListReviews(ctx, "p1")
	require.NoError(t, err)
	assert.Len(t, reviews, 1)
}

func TestCreateReviewRejects(t *testing.T) {
	s := newStore()
	s.PutProduct(product("p1", "Mug", 10, 5))
	uc := NewReviewUseCase(s.Reviews(), s.Products(), s.Orders(), s.Users(), testRetrier())
	ctx := context.Background()

	_, err := uc.CreateReview(ctx, "b1", "p1", CreateReviewInput{Rating: 6})
	assert.True(t, errors.Is(err, errors.CodeValidation))

	_, err = uc.CreateReview(ctx, "b1", "missing", CreateReviewInput{Rating: 4})
	assert.True(t, errors.Is(err, errors.CodeNotFound))
}
