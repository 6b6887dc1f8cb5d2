package handler

import (
	"github.com/labstack/echo/v4"

	"storefront/internal/adapter/api/middleware"
	"storefront/internal/usecase"
	"storefront/pkg/response"
	"storefront/pkg/utils"
)

const reviewPageSize = 10

type ReviewHandler struct {
	reviewUseCase *usecase.ReviewUseCase
}

func NewReviewHandler(reviewUseCase *usecase.ReviewUseCase) *ReviewHandler {
	return &ReviewHandler{
		reviewUseCase: reviewUseCase,
	}
}

type createReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=2000"`
}

func (h *ReviewHandler) ListReviews(c echo.Context) error {
	reviews, err := h.reviewUseCase.ListReviews(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	paging := utils.GetPaginationParams(c, reviewPageSize)
	start := min(max(paging.Offset, 0), len(reviews))
	end := min(start+paging.PageSize, len(reviews))
	return response.Paginated(c, reviews[start:end], int64(len(reviews)), paging.Page, paging.PageSize)
}

func (h *ReviewHandler) CreateReview(c echo.Context) error {
	var req createReviewRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	review, err := h.reviewUseCase.CreateReview(c.Request().Context(), middleware.UID(c), c.Param("id"), usecase.CreateReviewInput{
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, review)
}
