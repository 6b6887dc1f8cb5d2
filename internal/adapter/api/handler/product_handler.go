package handler

import (
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"storefront/internal/domain/entity"
	"storefront/internal/usecase"
	"storefront/pkg/errors"
	"storefront/pkg/response"
	"storefront/pkg/utils"
)

const defaultPageSize = 20

type ProductHandler struct {
	catalogUseCase *usecase.CatalogUseCase
	searchUseCase  *usecase.SearchUseCase
}

func NewProductHandler(catalogUseCase *usecase.CatalogUseCase, searchUseCase *usecase.SearchUseCase) *ProductHandler {
	return &ProductHandler{
		catalogUseCase: catalogUseCase,
		searchUseCase:  searchUseCase,
	}
}

// Home has no safer page to fall back to, so failures answer JSON.
func (h *ProductHandler) Home(c echo.Context) error {
	view, err := h.catalogUseCase.Home(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Page(c, view)
}

type productsView struct {
	Products   []*entity.Product          `json:"products"`
	Categories []*usecase.CategorySummary `json:"categories"`
	Sort       string                     `json:"sort"`
	PriceRange string                     `json:"price_range"`
	Rating     string                     `json:"rating"`
	Category   string                     `json:"category"`
	Page       int                        `json:"page"`
	Limit      int                        `json:"limit"`
}

func (h *ProductHandler) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()

	filter := usecase.ProductFilter{
		PriceRange: c.QueryParam("price_range"),
		Sort:       c.QueryParam("sort"),
		CategoryID: c.QueryParam("category"),
	}
	if filter.Sort == "" {
		filter.Sort = usecase.SortNewest
	}
	if raw := c.QueryParam("rating"); raw != "" {
		rating, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return response.PageError(c, errors.BadRequest("Invalid rating parameter", err), "/")
		}
		filter.MinRating = &rating
	}

	paging := utils.GetPaginationParams(c, defaultPageSize)

	products, err := h.catalogUseCase.ListProducts(ctx, filter, paging.Page, paging.PageSize)
	if err != nil {
		return response.PageError(c, err, "/")
	}
	categories, err := h.catalogUseCase.ListCategories(ctx)
	if err != nil {
		return response.PageError(c, err, "/")
	}

	return response.Page(c, productsView{
		Products:   products,
		Categories: categories,
		Sort:       filter.Sort,
		PriceRange: filter.PriceRange,
		Rating:     c.QueryParam("rating"),
		Category:   filter.CategoryID,
		Page:       paging.Page,
		Limit:      paging.PageSize,
	})
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	detail, err := h.catalogUseCase.GetProductDetail(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.PageError(c, err, "/products")
	}
	return response.Page(c, detail)
}

func (h *ProductHandler) CategoryProducts(c echo.Context) error {
	view, err := h.catalogUseCase.CategoryProducts(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.PageError(c, err, "/products")
	}
	return response.Page(c, view)
}

// SearchProducts sends an empty query back to the catalog without touching the store.
func (h *ProductHandler) SearchProducts(c echo.Context) error {
	result, err := h.searchUseCase.Search(c.Request().Context(), c.QueryParam("q"))
	if stderrors.Is(err, usecase.ErrEmptyQuery) {
		return c.Redirect(http.StatusSeeOther, "/products")
	}
	if err != nil {
		return response.PageError(c, err, "/products")
	}
	return response.Page(c, result)
}
