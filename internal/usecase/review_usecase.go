package usecase

import (
	"context"
	"strings"
	"time"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/pkg/errors"
)

type ReviewUseCase struct {
	reviewRepo  repository.ReviewRepository
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	userRepo    repository.UserRepository
	retrier     *Retrier
}

func NewReviewUseCase(
	reviewRepo repository.ReviewRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	userRepo repository.UserRepository,
	retrier *Retrier,
) *ReviewUseCase {
	return &ReviewUseCase{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		userRepo:    userRepo,
		retrier:     retrier,
	}
}

func (uc *ReviewUseCase) ListReviews(ctx context.Context, productID string) ([]*entity.Review, error) {
	var reviews []*entity.Review
	err := uc.retrier.Do(ctx, func(ctx context.Context) error {
		var err error
		reviews, err = uc.reviewRepo.ListByProduct(ctx, productID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

type CreateReviewInput struct {
	Rating  int
	Comment string
}

// CreateReview records a buyer's review. It is marked as a verified purchase
// when the buyer has a delivered order containing the product.
func (uc *ReviewUseCase) CreateReview(ctx context.Context, buyerID, productID string, input CreateReviewInput) (*entity.Review, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, errors.Validation(errors.CodeValidation, "Rating must be between 1 and 5")
	}

	if _, err := uc.productRepo.GetByID(ctx, productID); err != nil {
		return nil, err
	}

	verified, err := uc.orderRepo.HasDeliveredPurchase(ctx, buyerID, productID)
	if err != nil {
		return nil, err
	}

	review := &entity.Review{
		ProductID:          productID,
		UserID:             buyerID,
		Rating:             float64(input.Rating),
		Comment:            strings.TrimSpace(input.Comment),
		CreatedAt:          time.Now(),
		IsVerifiedPurchase: verified,
	}
	if user, err := uc.userRepo.GetByID(ctx, buyerID); err == nil {
		review.UserName = user.FullName
		review.UserImage = user.ProfileImage
	}

	if err := uc.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}
