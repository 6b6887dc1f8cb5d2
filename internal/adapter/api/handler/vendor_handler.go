package handler

import (
	"github.com/labstack/echo/v4"

	"storefront/internal/adapter/api/middleware"
	"storefront/internal/domain/entity"
	"storefront/internal/usecase"
	"storefront/pkg/response"
)

type VendorHandler struct {
	catalogUseCase *usecase.CatalogUseCase
	orderUseCase   *usecase.OrderUseCase
}

func NewVendorHandler(catalogUseCase *usecase.CatalogUseCase, orderUseCase *usecase.OrderUseCase) *VendorHandler {
	return &VendorHandler{
		catalogUseCase: catalogUseCase,
		orderUseCase:   orderUseCase,
	}
}

type vendorDashboardView struct {
	usecase.VendorOrderStats
	TotalProducts int               `json:"total_products"`
	Products      []*entity.Product `json:"products"`
}

func (h *VendorHandler) Dashboard(c echo.Context) error {
	ctx := c.Request().Context()
	vendorID := middleware.UID(c)

	products, err := h.catalogUseCase.VendorProducts(ctx, vendorID)
	if err != nil {
		return response.PageError(c, err, "/")
	}
	orders, err := h.orderUseCase.ListVendorOrders(ctx, vendorID)
	if err != nil {
		return response.PageError(c, err, "/")
	}

	return response.Page(c, vendorDashboardView{
		VendorOrderStats: usecase.SummarizeVendorOrders(orders),
		TotalProducts:    len(products),
		Products:         products,
	})
}
