package handler

import (
	"github.com/labstack/echo/v4"

	"storefront/internal/adapter/api/middleware"
	"storefront/internal/usecase"
	"storefront/pkg/response"
)

type OrderHandler struct {
	orderUseCase *usecase.OrderUseCase
}

func NewOrderHandler(orderUseCase *usecase.OrderUseCase) *OrderHandler {
	return &OrderHandler{
		orderUseCase: orderUseCase,
	}
}

type placeOrderRequest struct {
	FullName      string `form:"fullName" json:"fullName" validate:"required"`
	PhoneNumber   string `form:"phoneNumber" json:"phoneNumber" validate:"required"`
	Address       string `form:"address" json:"address" validate:"required"`
	PaymentMethod string `form:"paymentMethod" json:"paymentMethod"`
}

// PlaceOrder answers the checkout form. A single order lands on its detail
// page; a cart split across vendors lands on the order list.
func (h *OrderHandler) PlaceOrder(c echo.Context) error {
	var req placeOrderRequest
	if err := c.Bind(&req); err != nil {
		return response.PageError(c, err, "/checkout")
	}
	if err := c.Validate(&req); err != nil {
		return response.PageError(c, err, "/checkout")
	}

	orders, err := h.orderUseCase.PlaceOrder(c.Request().Context(), middleware.UID(c), usecase.ShippingInfo{
		FullName: req.FullName,
		Phone:    req.PhoneNumber,
		Address:  req.Address,
	}, req.PaymentMethod)
	if err != nil {
		return response.PageError(c, err, "/checkout")
	}

	target := "/orders"
	if len(orders) == 1 {
		target = "/order/" + orders[0].ID
	}
	return response.Redirect(c, target, "success", "Order placed successfully!")
}

func (h *OrderHandler) ListOrders(c echo.Context) error {
	orders, err := h.orderUseCase.ListOrders(c.Request().Context(), middleware.UID(c))
	if err != nil {
		return response.PageError(c, err, "/")
	}
	return response.Page(c, map[string]interface{}{"orders": orders})
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	order, err := h.orderUseCase.GetOrder(c.Request().Context(), middleware.UID(c), c.Param("id"))
	if err != nil {
		return response.PageError(c, err, "/orders")
	}
	return response.Page(c, map[string]interface{}{"order": order})
}

func (h *OrderHandler) CancelOrder(c echo.Context) error {
	order, err := h.orderUseCase.CancelOrder(c.Request().Context(), middleware.UID(c), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, order)
}
