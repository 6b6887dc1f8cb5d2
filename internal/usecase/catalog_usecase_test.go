package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/adapter/repository/memory"
	"storefront/internal/domain/entity"
	"storefront/pkg/errors"
)

func catalogFixture(t *testing.T) (*memory.Store, *CatalogUseCase) {
	t.Helper()
	s := newStore()
	prices := []float64{10, 24.99, 25, 37.5, 50, 50.01, 99, 100, 250}
	for i, price := range prices {
		p := product(string(rune('a'+i)), "Item", price, 5)
		p.Rating = float64(i % 6)
		p.CreatedAt = baseTime.Add(time.Duration(i) * time.Hour)
		p.CategoryID = "c1"
		if i%2 == 0 {
			p.CategoryID = "c2"
		}
		s.PutProduct(p)
	}
	s.PutCategory(entity.Category{ID: "c1", Name: "Shirts"})
	s.PutCategory(entity.Category{ID: "c2", Name: "Mugs", Icon: "coffee"})
	return s, NewCatalogUseCase(s.Products(), s.Categories(), s.Users(), s.Reviews(), testRetrier())
}

func TestVendorProducts(t *testing.T) {
	s, uc := catalogFixture(t)
	other := product("z", "Vase", 12, 1)
	other.VendorID = "v2"
	s.PutProduct(other)

	products, err := uc.VendorProducts(context.Background(), "v2")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "z", products[0].ID)

	products, err = uc.VendorProducts(context.Background(), "v1")
	require.NoError(t, err)
	assert.Len(t, products, 9)

	products, err = uc.VendorProducts(context.Background(), "nobody")
	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func TestListProductsPriceRanges(t *testing.T) {
	_, uc := catalogFixture(t)
	ctx := context.Background()

	bounds := map[string][2]float64{
		"0-25":   {0, 25},
		"25-50":  {25, 50},
		"50-100": {50, 100},
		"100+":   {100, 1e9},
	}
	for rng, b := range bounds {
		products, err := uc.ListProducts(ctx, ProductFilter{PriceRange: rng}, 1, 0)
		require.NoError(t, err)
		require.NotEmpty(t, products, rng)
		for _, p := range products {
			assert.GreaterOrEqual(t, p.Price, b[0], rng)
			assert.LessOrEqual(t, p.Price, b[1], rng)
		}
	}

	products, err := uc.ListProducts(ctx, ProductFilter{PriceRange: "25-50"}, 1, 0)
	require.NoError(t, err)
	assert.Len(t, products, 3)

	_, err = uc.ListProducts(ctx, ProductFilter{PriceRange: "cheap"}, 1, 0)
	assert.True(t, errors.Is(err, errors.CodeValidation))
}

func TestListProductsSortAndCompose(t *testing.T) {
	_, uc := catalogFixture(t)
	ctx := context.Background()

	products, err := uc.ListProducts(ctx, ProductFilter{Sort: SortPriceLow}, 1, 0)
	require.NoError(t, err)
	for i := 1; i < len(products); i++ {
		assert.LessOrEqual(t, products[i-1].Price, products[i].Price)
	}

	products, err = uc.ListProducts(ctx, ProductFilter{Sort: "bogus"}, 1, 0)
	require.NoError(t, err)
	for i := 1; i < len(products); i++ {
		assert.False(t, products[i-1].CreatedAt.Before(products[i].CreatedAt))
	}

	minRating := 3.0
	products, err = uc.ListProducts(ctx, ProductFilter{PriceRange: "50-100", MinRating: &minRating, Sort: SortRating}, 1, 0)
	require.NoError(t, err)
	for _, p := range products {
		assert.GreaterOrEqual(t, p.Rating, 3.0)
		assert.GreaterOrEqual(t, p.Price, 50.0)
		assert.LessOrEqual(t, p.Price, 100.0)
	}

	page2, err := uc.ListProducts(ctx, ProductFilter{Sort: SortPriceLow}, 2, 3)
	require.NoError(t, err)
	require.Len(t, page2, 3)
	assert.Equal(t, 37.5, page2[0].Price)
}

func TestListCategoriesCountsAndDefaults(t *testing.T) {
	_, uc := catalogFixture(t)

	categories, err := uc.ListCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 2)

	assert.Equal(t, "Shirts", categories[0].Name)
	assert.Equal(t, int64(4), categories[0].ProductCount)
	assert.Equal(t, entity.DefaultCategoryIcon, categories[0].Icon)
	assert.Equal(t, entity.DefaultCategoryImage, categories[0].ImageURL)

	assert.Equal(t, int64(5), categories[1].ProductCount)
	assert.Equal(t, "coffee", categories[1].Icon)
}

func TestGetProductNotFound(t *testing.T) {
	_, uc := catalogFixture(t)
	_, err := uc.GetProduct(context.Background(), "nope")
	assert.True(t, errors.Is(err, errors.CodeNotFound))
}

func TestGetProductDetail(t *testing.T) {
	s, uc := catalogFixture(t)
	s.PutUser(entity.User{ID: "v1", Role: entity.RoleVendor, BusinessName: "Acme"})
	ctx := context.Background()
	require.NoError(t, s.Reviews().Create(ctx, &entity.Review{ProductID: "a", Rating: 4, CreatedAt: baseTime}))
	require.NoError(t, s.Reviews().Create(ctx, &entity.Review{ProductID: "a", Rating: 2, CreatedAt: baseTime.Add(time.Hour)}))

	detail, err := uc.GetProductDetail(ctx, "a")
	require.NoError(t, err)

	assert.Equal(t, "Acme", detail.Vendor.BusinessName)
	require.Len(t, detail.Reviews, 2)
	assert.Equal(t, 2.0, detail.Reviews[0].Rating)
	assert.Len(t, detail.Related, 4)
	for _, p := range detail.Related {
		assert.NotEqual(t, "a", p.ID)
		assert.Equal(t, "c2", p.CategoryID)
	}
}

func TestGetProductDetailUnknownVendor(t *testing.T) {
	_, uc := catalogFixture(t)
	detail, err := uc.GetProductDetail(context.Background(), "b")
	require.NoError(t, err)
	assert.Equal(t, UnknownVendor, detail.Vendor.BusinessName)
}

func TestFeaturedProductsCapped(t *testing.T) {
	s := newStore()
	for i := 0; i < 10; i++ {
		p := product(string(rune('a'+i)), "Item", 1, 1)
		p.IsFeatured = i != 3
		s.PutProduct(p)
	}
	uc := NewCatalogUseCase(s.Products(), s.Categories(), s.Users(), s.Reviews(), testRetrier())

	featured, err := uc.FeaturedProducts(context.Background())
	require.NoError(t, err)
	assert.Len(t, featured, 8)
	for _, p := range featured {
		assert.True(t, p.IsFeatured)
	}
}

func TestCategoryProducts(t *testing.T) {
	_, uc := catalogFixture(t)
	ctx := context.Background()

	view, err := uc.CategoryProducts(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "Shirts", view.Category.Name)
	assert.Len(t, view.Products, 4)

	_, err = uc.CategoryProducts(ctx, "missing")
	assert.True(t, errors.Is(err, errors.CodeNotFound))
}

func TestCreateAndRenameCategory(t *testing.T) {
	s, uc := catalogFixture(t)
	ctx := context.Background()

	c, err := uc.CreateCategory(ctx, CategoryInput{Name: "  Lamps "})
	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "Lamps", c.Name)
	assert.Equal(t, entity.DefaultCategoryIcon, c.Icon)

	_, err = uc.CreateCategory(ctx, CategoryInput{Name: " "})
	assert.True(t, errors.Is(err, errors.CodeValidation))

	_, err = uc.RenameCategory(ctx, "c1", "Tees")
	require.NoError(t, err)
	p, err := s.Products().GetByID(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, "Tees", p.Category)
}

func TestHome(t *testing.T) {
	_, uc := catalogFixture(t)
	home, err := uc.Home(context.Background())
	require.NoError(t, err)
	assert.Len(t, home.Categories, 2)
	assert.Len(t, home.Products, 9)
	assert.Empty(t, home.Featured)
}

func TestCatalogReadsRetryTransientErrors(t *testing.T) {
	s, uc := catalogFixture(t)
	s.FailNext(2, errors.Transient("unavailable", nil))

	products, err := uc.ListProducts(context.Background(), ProductFilter{}, 1, 0)
	require.NoError(t, err)
	assert.Len(t, products, 9)

	s.FailNext(1, errors.Forbidden("nope", nil))
	_, err = uc.ListProducts(context.Background(), ProductFilter{}, 1, 0)
	assert.True(t, errors.Is(err, errors.CodeForbidden))
}
