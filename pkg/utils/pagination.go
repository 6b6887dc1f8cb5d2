package utils

import (
	"math"
	"strconv"

	"github.com/labstack/echo/v4"
)

const maxPageSize = 100

// PaginationParams represents pagination parameters
type PaginationParams struct {
	Page     int
	PageSize int
	Offset   int
}

// GetPaginationParams extracts pagination parameters from request.
// Missing or unusable values fall back to page 1 and defaultSize.
func GetPaginationParams(c echo.Context, defaultSize int) PaginationParams {
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page <= 0 {
		page = 1
	}

	pageSize, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || pageSize <= 0 || pageSize > maxPageSize {
		pageSize = defaultSize
	}
	if pageSize <= 0 {
		pageSize = 1
	}
	// keep the offset representable
	if page > math.MaxInt32/pageSize {
		page = math.MaxInt32/pageSize + 1
	}

	return PaginationParams{
		Page:     page,
		PageSize: pageSize,
		Offset:   (page - 1) * pageSize,
	}
}
