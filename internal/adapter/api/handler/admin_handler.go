package handler

import (
	"github.com/labstack/echo/v4"

	"storefront/internal/usecase"
	"storefront/pkg/response"
)

// AdminHandler manages categories. Renames cascade to the products that
// reference the category.
type AdminHandler struct {
	catalogUseCase *usecase.CatalogUseCase
}

func NewAdminHandler(catalogUseCase *usecase.CatalogUseCase) *AdminHandler {
	return &AdminHandler{
		catalogUseCase: catalogUseCase,
	}
}

type createCategoryRequest struct {
	Name  string `json:"name" validate:"required"`
	Icon  string `json:"icon"`
	Image string `json:"image"`
}

type renameCategoryRequest struct {
	Name string `json:"name" validate:"required"`
}

func (h *AdminHandler) CreateCategory(c echo.Context) error {
	var req createCategoryRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	category, err := h.catalogUseCase.CreateCategory(c.Request().Context(), usecase.CategoryInput{
		Name:  req.Name,
		Icon:  req.Icon,
		Image: req.Image,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, category)
}

func (h *AdminHandler) RenameCategory(c echo.Context) error {
	var req renameCategoryRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	category, err := h.catalogUseCase.RenameCategory(c.Request().Context(), c.Param("id"), req.Name)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, category)
}
