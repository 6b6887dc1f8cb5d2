package usecase

import (
	"context"
	"strings"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/pkg/errors"
	"storefront/pkg/logger"
)

const (
	SortNewest    = "newest"
	SortPriceLow  = "price_low"
	SortPriceHigh = "price_high"
	SortRating    = "rating"

	featuredLimit = 8
	relatedLimit  = 4

	UnknownVendor = "Unknown Vendor"
)

type CatalogUseCase struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	userRepo     repository.UserRepository
	reviewRepo   repository.ReviewRepository
	retrier      *Retrier
}

func NewCatalogUseCase(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	userRepo repository.UserRepository,
	reviewRepo repository.ReviewRepository,
	retrier *Retrier,
) *CatalogUseCase {
	return &CatalogUseCase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
		reviewRepo:   reviewRepo,
		retrier:      retrier,
	}
}

type ProductFilter struct {
	PriceRange string
	MinRating  *float64
	Sort       string
	CategoryID string
}

// priceBounds maps a named price bucket to inclusive bounds.
func priceBounds(priceRange string) (min, max *float64, err error) {
	bound := func(v float64) *float64 { return &v }
	switch priceRange {
	case "":
		return nil, nil, nil
	case "0-25":
		return nil, bound(25), nil
	case "25-50":
		return bound(25), bound(50), nil
	case "50-100":
		return bound(50), bound(100), nil
	case "100+":
		return bound(100), nil, nil
	}
	return nil, nil, errors.Validation(errors.CodeValidation, "Unknown price range: "+priceRange)
}

// sortOrder resolves a sort key; anything unrecognised sorts newest first.
func sortOrder(key string) (field string, descending bool) {
	switch key {
	case SortPriceLow:
		return repository.ProductFieldPrice, false
	case SortPriceHigh:
		return repository.ProductFieldPrice, true
	case SortRating:
		return repository.ProductFieldRating, true
	default:
		return repository.ProductFieldCreatedAt, true
	}
}

func (uc *CatalogUseCase) ListProducts(ctx context.Context, filter ProductFilter, page, limit int) ([]*entity.Product, error) {
	min, max, err := priceBounds(filter.PriceRange)
	if err != nil {
		return nil, err
	}
	if filter.MinRating != nil && (*filter.MinRating < 0 || *filter.MinRating > 5) {
		return nil, errors.Validation(errors.CodeValidation, "Rating must be between 0 and 5")
	}

	field, desc := sortOrder(filter.Sort)
	query := repository.ProductQuery{
		MinPrice:   min,
		MaxPrice:   max,
		MinRating:  filter.MinRating,
		CategoryID: filter.CategoryID,
		OrderBy:    field,
		Descending: desc,
		Limit:      limit,
	}
	if limit > 0 && page > 1 {
		query.Offset = (page - 1) * limit
	}

	var products []*entity.Product
	err = uc.retrier.Do(ctx, func(ctx context.Context) error {
		var err error
		products, err = uc.productRepo.List(ctx, query)
		return err
	})
	if err != nil {
		return nil, err
	}
	return products, nil
}

type CategorySummary struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Icon         string `json:"icon"`
	ImageURL     string `json:"imageUrl"`
	ProductCount int64  `json:"product_count"`
}

// ListCategories counts products per category with one count query each.
func (uc *CatalogUseCase) ListCategories(ctx context.Context) ([]*CategorySummary, error) {
	var categories []*entity.Category
	err := uc.retrier.Do(ctx, func(ctx context.Context) error {
		var err error
		categories, err = uc.categoryRepo.List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	summaries := make([]*CategorySummary, 0, len(categories))
	for _, c := range categories {
		var count int64
		err := uc.retrier.Do(ctx, func(ctx context.Context) error {
			var err error
			count, err = uc.productRepo.CountByCategory(ctx, c.ID)
			return err
		})
		if err != nil {
			return nil, err
		}

		summary := &CategorySummary{
			ID:           c.ID,
			Name:         c.Name,
			Icon:         c.Icon,
			ImageURL:     c.Image,
			ProductCount: count,
		}
		if summary.Icon == "" {
			summary.Icon = entity.DefaultCategoryIcon
		}
		if summary.ImageURL == "" {
			summary.ImageURL = entity.DefaultCategoryImage
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (uc *CatalogUseCase) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	var product *entity.Product
	err := uc.retrier.Do(ctx, func(ctx context.Context) error {
		var err error
		product, err = uc.productRepo.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

type VendorSummary struct {
	ID           string `json:"id"`
	BusinessName string `json:"businessName"`
}

type ProductDetail struct {
	Product *entity.Product   `json:"product"`
	Vendor  *VendorSummary    `json:"vendor"`
	Reviews []*entity.Review  `json:"reviews"`
	Related []*entity.Product `json:"related_products"`
}

func (uc *CatalogUseCase) GetProductDetail(ctx context.Context, id string) (*ProductDetail, error) {
	product, err := uc.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &ProductDetail{
		Product: product,
		Vendor:  uc.vendorSummary(ctx, product.VendorID),
		Related: []*entity.Product{},
	}

	err = uc.retrier.Do(ctx, func(ctx context.Context) error {
		var err error
		detail.Reviews, err = uc.reviewRepo.ListByProduct(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	if product.CategoryID != "" {
		var sameCategory []*entity.Product
		err = uc.retrier.Do(ctx, func(ctx context.Context) error {
			var err error
			sameCategory, err = uc.productRepo.List(ctx, repository.ProductQuery{
				CategoryID: product.CategoryID,
				Limit:      relatedLimit + 1,
			})
			return err
		})
		if err != nil {
			return nil, err
		}
		for _, p := range sameCategory {
			if p.ID == id {
				continue
			}
			detail.Related = append(detail.Related, p)
			if len(detail.Related) == relatedLimit {
				break
			}
		}
	}

	return detail, nil
}

// vendorSummary never fails; a missing vendor record reads as Unknown Vendor.
func (uc *CatalogUseCase) vendorSummary(ctx context.Context, vendorID string) *VendorSummary {
	summary := &VendorSummary{ID: vendorID, BusinessName: UnknownVendor}
	if vendorID == "" {
		return summary
	}
	vendor, err := uc.userRepo.GetByID(ctx, vendorID)
	if err != nil {
		if !errors.Is(err, errors.CodeNotFound) {
			logger.Warn("vendor %s lookup failed: %v", vendorID, err)
		}
		return summary
	}
	if vendor.BusinessName != "" {
		summary.BusinessName = vendor.BusinessName
	}
	return summary
}

func (uc *CatalogUseCase) FeaturedProducts(ctx context.Context) ([]*entity.Product, error) {
	var products []*entity.Product
	err := uc.retrier.Do(ctx, func(ctx context.Context) error {
		var err error
		products, err = uc.productRepo.List(ctx, repository.ProductQuery{
			FeaturedOnly: true,
			Limit:        featuredLimit,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return products, nil
}

type HomeView struct {
	Categories []*CategorySummary `json:"categories"`
	Featured   []*entity.Product  `json:"featured_products"`
	Products   []*entity.Product  `json:"all_products"`
}

func (uc *CatalogUseCase) Home(ctx context.Context) (*HomeView, error) {
	categories, err := uc.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	featured, err := uc.FeaturedProducts(ctx)
	if err != nil {
		return nil, err
	}

	var all []*entity.Product
	err = uc.retrier.Do(ctx, func(ctx context.Context) error {
		var err error
		all, err = uc.productRepo.ListAll(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &HomeView{Categories: categories, Featured: featured, Products: all}, nil
}

type CategoryView struct {
	Category *entity.Category  `json:"category"`
	Products []*entity.Product `json:"products"`
}

func (uc *CatalogUseCase) CategoryProducts(ctx context.Context, categoryID string) (*CategoryView, error) {
	view := &CategoryView{}
	err := uc.retrier.Do(ctx, func(ctx context.Context) error {
		var err error
		view.Category, err = uc.categoryRepo.GetByID(ctx, categoryID)
		return err
	})
	if err != nil {
		return nil, err
	}

	err = uc.retrier.Do(ctx, func(ctx context.Context) error {
		var err error
		view.Products, err = uc.productRepo.List(ctx, repository.ProductQuery{CategoryID: categoryID})
		return err
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// VendorProducts lists every product the vendor sells, in store order.
func (uc *CatalogUseCase) VendorProducts(ctx context.Context, vendorID string) ([]*entity.Product, error) {
	var products []*entity.Product
	err := uc.retrier.Do(ctx, func(ctx context.Context) error {
		var err error
		products, err = uc.productRepo.List(ctx, repository.ProductQuery{VendorID: vendorID})
		return err
	})
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []*entity.Product{}
	}
	return products, nil
}

type CategoryInput struct {
	Name  string
	Icon  string
	Image string
}

func (uc *CatalogUseCase) CreateCategory(ctx context.Context, input CategoryInput) (*entity.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, errors.Validation(errors.CodeValidation, "Category name is required")
	}

	category := &entity.Category{
		Name:  name,
		Icon:  input.Icon,
		Image: input.Image,
	}
	if category.Icon == "" {
		category.Icon = entity.DefaultCategoryIcon
	}
	if category.Image == "" {
		category.Image = entity.DefaultCategoryImage
	}

	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	logger.Info("category %s (%s) created", category.ID, category.Name)
	return category, nil
}

// RenameCategory renames the category and every product's copy of its name.
func (uc *CatalogUseCase) RenameCategory(ctx context.Context, id, name string) (*entity.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.Validation(errors.CodeValidation, "Category name is required")
	}
	return uc.categoryRepo.Rename(ctx, id, name)
}
