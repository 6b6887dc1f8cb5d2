package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/pkg/errors"
	"storefront/pkg/utils"
)

type CartUseCase struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	retrier     *Retrier
}

func NewCartUseCase(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	retrier *Retrier,
) *CartUseCase {
	return &CartUseCase{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		retrier:     retrier,
	}
}

type AddItemInput struct {
	ProductID string
	Quantity  int
	Size      string
}

// AddItem snapshots the product into the buyer's cart. Re-adding a product
// overwrites the line's quantity rather than summing it.
func (uc *CartUseCase) AddItem(ctx context.Context, buyerID string, input AddItemInput) (*entity.CartItem, error) {
	if input.Quantity < 1 {
		return nil, errors.Validation(errors.CodeValidation, "Quantity must be at least 1")
	}

	var product *entity.Product
	err := uc.retrier.Do(ctx, func(ctx context.Context) error {
		var err error
		product, err = uc.productRepo.GetByID(ctx, input.ProductID)
		return err
	})
	if err != nil {
		return nil, err
	}

	// checked here only; nothing holds the stock until checkout
	if product.Quantity < input.Quantity {
		return nil, errors.Validation(errors.CodeInsufficientStock, "Not enough stock available")
	}

	item := &entity.CartItem{
		ProductID:    product.ID,
		ProductName:  product.Name,
		ProductPrice: product.Price,
		ImageURL:     product.PrimaryImage(),
		Quantity:     input.Quantity,
		Size:         input.Size,
		VendorID:     product.VendorID,
	}
	if err := uc.cartRepo.Upsert(ctx, buyerID, item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateQuantity overwrites the line's quantity without a stock re-check. A
// quantity of zero or less removes the line.
func (uc *CartUseCase) UpdateQuantity(ctx context.Context, buyerID, productID string, quantity int) error {
	if quantity <= 0 {
		return uc.cartRepo.Delete(ctx, buyerID, productID)
	}
	return uc.cartRepo.SetQuantity(ctx, buyerID, productID, quantity)
}

func (uc *CartUseCase) RemoveItem(ctx context.Context, buyerID, productID string) error {
	return uc.cartRepo.Delete(ctx, buyerID, productID)
}

type CartLine struct {
	ProductID      string  `json:"productId"`
	Name           string  `json:"name"`
	Price          float64 `json:"price"`
	Image          string  `json:"image"`
	Quantity       int     `json:"quantity"`
	Size           string  `json:"size"`
	VendorName     string  `json:"vendor_name"`
	ItemTotal      float64 `json:"item_total"`
	ShippingCharge float64 `json:"shipping_charge"`
}

type CartView struct {
	Items         []*CartLine `json:"cart_items"`
	Subtotal      float64     `json:"subtotal"`
	ShippingTotal float64     `json:"shipping_total"`
	Total         float64     `json:"total"`
}

// ListCart prices each line at its snapshot price and takes shipping from the
// live product. Lines whose product has been deleted are left out.
func (uc *CartUseCase) ListCart(ctx context.Context, buyerID string) (*CartView, error) {
	items, products, err := uc.cartWithProducts(ctx, buyerID)
	if err != nil {
		return nil, err
	}

	view := &CartView{Items: make([]*CartLine, 0, len(items))}
	subtotal, shipping := decimal.Zero, decimal.Zero
	vendors := map[string]string{}

	for _, item := range items {
		product, ok := products[item.ProductID]
		if !ok {
			continue
		}

		vendorName, seen := vendors[product.VendorID]
		if !seen {
			vendorName = uc.vendorName(ctx, product.VendorID)
			vendors[product.VendorID] = vendorName
		}

		itemTotal := utils.LineTotal(item.ProductPrice, item.Quantity)
		charge := decimal.NewFromFloat(product.Shipping())

		view.Items = append(view.Items, &CartLine{
			ProductID:      item.ProductID,
			Name:           item.ProductName,
			Price:          item.ProductPrice,
			Image:          item.ImageURL,
			Quantity:       item.Quantity,
			Size:           item.Size,
			VendorName:     vendorName,
			ItemTotal:      utils.Amount(itemTotal),
			ShippingCharge: utils.Amount(charge),
		})
		subtotal = subtotal.Add(itemTotal)
		shipping = shipping.Add(charge)
	}

	view.Subtotal = utils.Amount(subtotal)
	view.ShippingTotal = utils.Amount(shipping)
	view.Total = utils.Amount(subtotal.Add(shipping))
	return view, nil
}

type CheckoutView struct {
	Items       []entity.OrderLine `json:"cart_items"`
	TotalAmount float64            `json:"totalAmount"`
	Buyer       *entity.User       `json:"user_data"`
}

// Checkout previews the order: lines are priced from the live products, as
// placing the order will do.
func (uc *CartUseCase) Checkout(ctx context.Context, buyerID string) (*CheckoutView, error) {
	items, products, err := uc.cartWithProducts(ctx, buyerID)
	if err != nil {
		return nil, err
	}

	lines, total := priceLines(items, products)
	view := &CheckoutView{Items: lines, TotalAmount: utils.Amount(total)}

	buyer, err := uc.userRepo.GetByID(ctx, buyerID)
	switch {
	case err == nil:
		view.Buyer = buyer
	case errors.Is(err, errors.CodeNotFound):
		view.Buyer = &entity.User{ID: buyerID}
	default:
		return nil, err
	}
	return view, nil
}

func (uc *CartUseCase) cartWithProducts(ctx context.Context, buyerID string) ([]*entity.CartItem, map[string]*entity.Product, error) {
	var items []*entity.CartItem
	err := uc.retrier.Do(ctx, func(ctx context.Context) error {
		var err error
		items, err = uc.cartRepo.List(ctx, buyerID)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}

	var products map[string]*entity.Product
	err = uc.retrier.Do(ctx, func(ctx context.Context) error {
		var err error
		products, err = uc.productRepo.GetMany(ctx, ids)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return items, products, nil
}

func (uc *CartUseCase) vendorName(ctx context.Context, vendorID string) string {
	if vendorID == "" {
		return UnknownVendor
	}
	vendor, err := uc.userRepo.GetByID(ctx, vendorID)
	if err != nil || vendor.BusinessName == "" {
		return UnknownVendor
	}
	return vendor.BusinessName
}

// priceLines builds order lines from live product data, skipping cart lines
// whose product no longer exists.
func priceLines(items []*entity.CartItem, products map[string]*entity.Product) ([]entity.OrderLine, decimal.Decimal) {
	lines := make([]entity.OrderLine, 0, len(items))
	total := decimal.Zero
	for _, item := range items {
		product, ok := products[item.ProductID]
		if !ok {
			continue
		}
		lines = append(lines, entity.OrderLine{
			ProductID:   item.ProductID,
			ProductName: product.Name,
			Price:       product.Price,
			Quantity:    item.Quantity,
			Size:        item.Size,
			ImageURL:    product.PrimaryImage(),
			VendorID:    product.VendorID,
		})
		total = total.Add(utils.LineTotal(product.Price, item.Quantity))
	}
	return lines, total
}
