package handler

import (
	"github.com/labstack/echo/v4"

	"storefront/internal/adapter/api/middleware"
	"storefront/internal/usecase"
	"storefront/pkg/response"
)

type CartHandler struct {
	cartUseCase *usecase.CartUseCase
}

func NewCartHandler(cartUseCase *usecase.CartUseCase) *CartHandler {
	return &CartHandler{
		cartUseCase: cartUseCase,
	}
}

type addToCartRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  *int   `json:"quantity" validate:"omitempty,min=1"`
	Size      string `json:"size"`
}

type updateCartRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  *int   `json:"quantity"`
}

type removeFromCartRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

func (h *CartHandler) AddToCart(c echo.Context) error {
	var req addToCartRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	item, err := h.cartUseCase.AddItem(c.Request().Context(), middleware.UID(c), usecase.AddItemInput{
		ProductID: req.ProductID,
		Quantity:  quantity,
		Size:      req.Size,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, item)
}

// UpdateCart sets a line's quantity; zero or less removes the line.
func (h *CartHandler) UpdateCart(c echo.Context) error {
	var req updateCartRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	if err := h.cartUseCase.UpdateQuantity(c.Request().Context(), middleware.UID(c), req.ProductID, quantity); err != nil {
		return response.Error(c, err)
	}
	return response.Message(c, "Cart updated")
}

func (h *CartHandler) RemoveFromCart(c echo.Context) error {
	var req removeFromCartRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	if err := h.cartUseCase.RemoveItem(c.Request().Context(), middleware.UID(c), req.ProductID); err != nil {
		return response.Error(c, err)
	}
	return response.Message(c, "Item removed from cart")
}

func (h *CartHandler) ViewCart(c echo.Context) error {
	view, err := h.cartUseCase.ListCart(c.Request().Context(), middleware.UID(c))
	if err != nil {
		return response.PageError(c, err, "/")
	}
	return response.Page(c, view)
}

func (h *CartHandler) Checkout(c echo.Context) error {
	view, err := h.cartUseCase.Checkout(c.Request().Context(), middleware.UID(c))
	if err != nil {
		return response.PageError(c, err, "/cart")
	}
	return response.Page(c, view)
}
