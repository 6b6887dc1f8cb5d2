package usecase

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain/entity"
	"storefront/pkg/errors"
)

func TestSearchRanksNameBeforeBrandBeforeCategory(t *testing.T) {
	s := newStore()
	byCategory := product("p1", "Plain Tee", 10, 1)
	byCategory.Category = "Shirts"
	byBrand := product("p2", "Polo", 10, 1)
	byBrand.BrandName = "ShirtCo"
	byName := product("p3", "Blue Shirt", 10, 1)
	s.PutProduct(byCategory)
	s.PutProduct(byBrand)
	s.PutProduct(byName)
	s.PutProduct(product("p4", "Mug", 5, 1))

	uc := NewSearchUseCase(s.Products(), testRetrier())
	result, err := uc.Search(context.Background(), "  SHIRT ")
	require.NoError(t, err)

	require.Equal(t, 3, result.ResultCount)
	assert.Equal(t, "SHIRT", result.Query)
	assert.Equal(t, "p3", result.Products[0].ID)
	assert.Equal(t, "p2", result.Products[1].ID)
	assert.Equal(t, "p1", result.Products[2].ID)
}

func TestSearchTiesKeepStoreOrder(t *testing.T) {
	s := newStore()
	for _, id := range []string{"x", "y", "z"} {
		s.PutProduct(product(id, "Red Shirt "+id, 1, 1))
	}
	uc := NewSearchUseCase(s.Products(), testRetrier())

	result, err := uc.Search(context.Background(), "shirt")
	require.NoError(t, err)
	ids := []string{}
	for _, p := range result.Products {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"x", "y", "z"}, ids)
}

func TestSearchEmptyQueryReadsNothing(t *testing.T) {
	s := newStore()
	// a read would consume this failure
	s.FailNext(1, errors.Internal("should not be called", nil))
	uc := NewSearchUseCase(s.Products(), testRetrier())

	_, err := uc.Search(context.Background(), "   ")
	assert.True(t, stderrors.Is(err, ErrEmptyQuery))

	_, err = s.Products().ListAll(context.Background())
	assert.Error(t, err)
}

func TestSearchNoMatches(t *testing.T) {
	s := newStore()
	s.PutProduct(entity.Product{ID: "p1", Name: "Lamp"})
	uc := NewSearchUseCase(s.Products(), testRetrier())

	result, err := uc.Search(context.Background(), "sofa")
	require.NoError(t, err)
	assert.Empty(t, result.Products)
	assert.Equal(t, 0, result.ResultCount)
}
