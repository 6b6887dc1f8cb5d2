package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/pkg/config"
	"storefront/pkg/errors"
	"storefront/pkg/logger"
	"storefront/pkg/metrics"
	"storefront/pkg/utils"
)

type OrderOptions struct {
	// MultiVendorPolicy is one of config.MultiVendorReject, Split or Collapse.
	MultiVendorPolicy    string
	DecrementStock       bool
	DefaultPaymentMethod string
}

type OrderUseCase struct {
	orderRepo repository.OrderRepository
	retrier   *Retrier
	metrics   *metrics.Metrics
	opts      OrderOptions
	now       func() time.Time
}

func NewOrderUseCase(
	orderRepo repository.OrderRepository,
	retrier *Retrier,
	m *metrics.Metrics,
	opts OrderOptions,
) *OrderUseCase {
	if opts.MultiVendorPolicy == "" {
		opts.MultiVendorPolicy = config.MultiVendorReject
	}
	if opts.DefaultPaymentMethod == "" {
		opts.DefaultPaymentMethod = "Cash on Delivery"
	}
	return &OrderUseCase{
		orderRepo: orderRepo,
		retrier:   retrier,
		metrics:   m,
		opts:      opts,
		now:       time.Now,
	}
}

type ShippingInfo struct {
	FullName string
	Phone    string
	Address  string
}

// PlaceOrder turns the buyer's cart into orders. Order creation, optional
// stock decrements and cart clearing commit together or not at all.
func (uc *OrderUseCase) PlaceOrder(ctx context.Context, buyerID string, shipping ShippingInfo, paymentMethod string) ([]*entity.Order, error) {
	if strings.TrimSpace(paymentMethod) == "" {
		paymentMethod = uc.opts.DefaultPaymentMethod
	}

	orders, err := uc.orderRepo.PlaceFromCart(ctx, buyerID, func(cart []*entity.CartItem, products map[string]*entity.Product) (*repository.CheckoutPlan, error) {
		return uc.plan(buyerID, shipping, paymentMethod, cart, products)
	})
	if err != nil {
		uc.metrics.ObserveCheckout(errors.Code(err), 0)
		if errors.Code(err) == errors.CodeInternal {
			logger.LogOrderError("", "place", err)
		}
		return nil, err
	}

	uc.metrics.ObserveCheckout("ok", len(orders))
	for _, o := range orders {
		logger.Info("order %s placed by %s for vendor %s (%.2f)", o.ID, buyerID, o.VendorID, o.TotalAmount)
	}
	return orders, nil
}

func (uc *OrderUseCase) plan(
	buyerID string,
	shipping ShippingInfo,
	paymentMethod string,
	cart []*entity.CartItem,
	products map[string]*entity.Product,
) (*repository.CheckoutPlan, error) {
	lines, _ := priceLines(cart, products)

	var vendors []string
	groups := map[string][]entity.OrderLine{}
	var unassigned []entity.OrderLine
	for _, line := range lines {
		if line.VendorID == "" {
			unassigned = append(unassigned, line)
			continue
		}
		if _, ok := groups[line.VendorID]; !ok {
			vendors = append(vendors, line.VendorID)
		}
		groups[line.VendorID] = append(groups[line.VendorID], line)
	}
	if len(vendors) == 0 {
		return nil, errors.Validation(errors.CodeEmptyCart, "No valid vendor found for the products")
	}

	// outside split mode there is one order, owned by the first vendor seen,
	// holding every line in cart order
	switch {
	case len(vendors) > 1 && uc.opts.MultiVendorPolicy == config.MultiVendorReject:
		return nil, errors.Validation(errors.CodeMultiVendorCart, "Cart contains products from more than one vendor")
	case uc.opts.MultiVendorPolicy != config.MultiVendorSplit:
		vendors = vendors[:1]
		groups[vendors[0]] = append([]entity.OrderLine(nil), lines...)
		unassigned = nil
	}
	// lines without a vendor travel with the first order
	groups[vendors[0]] = append(groups[vendors[0]], unassigned...)

	now := uc.now()
	plan := &repository.CheckoutPlan{
		Orders:   make([]*entity.Order, 0, len(vendors)),
		Consumed: make([]string, 0, len(cart)),
	}
	for _, vendorID := range vendors {
		total := decimal.Zero
		for _, line := range groups[vendorID] {
			total = total.Add(utils.LineTotal(line.Price, line.Quantity))
		}
		plan.Orders = append(plan.Orders, &entity.Order{
			BuyerID:         buyerID,
			VendorID:        vendorID,
			BuyerName:       shipping.FullName,
			BuyerPhone:      shipping.Phone,
			ShippingAddress: shipping.Address,
			PaymentMethod:   paymentMethod,
			Products:        groups[vendorID],
			TotalAmount:     utils.Amount(total),
			Status:          entity.OrderStatusPending,
			CreatedAt:       now,
			UpdatedAt:       now,
		})
	}

	for _, item := range cart {
		plan.Consumed = append(plan.Consumed, item.ProductID)
	}

	if uc.opts.DecrementStock {
		plan.Decrements = make(map[string]int, len(lines))
		for _, line := range lines {
			plan.Decrements[line.ProductID] += line.Quantity
		}
	}
	return plan, nil
}

func (uc *OrderUseCase) ListOrders(ctx context.Context, buyerID string) ([]*entity.Order, error) {
	var orders []*entity.Order
	err := uc.retrier.Do(ctx, func(ctx context.Context) error {
		var err error
		orders, err = uc.orderRepo.ListByBuyer(ctx, buyerID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []*entity.Order{}
	}
	return orders, nil
}

// ListVendorOrders returns the orders routed to vendorID, newest first.
func (uc *OrderUseCase) ListVendorOrders(ctx context.Context, vendorID string) ([]*entity.Order, error) {
	var orders []*entity.Order
	err := uc.retrier.Do(ctx, func(ctx context.Context) error {
		var err error
		orders, err = uc.orderRepo.ListByVendor(ctx, vendorID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []*entity.Order{}
	}
	return orders, nil
}

const recentVendorOrders = 5

type VendorOrderStats struct {
	TotalSales    float64         `json:"total_sales"`
	TotalOrders   int             `json:"total_orders"`
	PendingOrders int             `json:"pending_orders"`
	RecentOrders  []*entity.Order `json:"recent_orders"`
}

// SummarizeVendorOrders expects orders newest first, as ListVendorOrders returns them.
// Cancelled orders still count toward sales, as on the storefront's vendor page.
func SummarizeVendorOrders(orders []*entity.Order) VendorOrderStats {
	total := decimal.Zero
	stats := VendorOrderStats{TotalOrders: len(orders)}
	for _, o := range orders {
		total = total.Add(decimal.NewFromFloat(o.TotalAmount))
		if o.Status == entity.OrderStatusPending {
			stats.PendingOrders++
		}
	}
	stats.TotalSales = utils.Amount(total)

	recent := orders
	if len(recent) > recentVendorOrders {
		recent = recent[:recentVendorOrders]
	}
	stats.RecentOrders = append([]*entity.Order{}, recent...)
	return stats
}

// GetOrder answers Forbidden both for orders that do not exist and for
// orders owned by someone else.
func (uc *OrderUseCase) GetOrder(ctx context.Context, buyerID, orderID string) (*entity.Order, error) {
	var order *entity.Order
	err := uc.retrier.Do(ctx, func(ctx context.Context) error {
		var err error
		order, err = uc.orderRepo.GetByID(ctx, orderID)
		return err
	})
	if errors.Is(err, errors.CodeNotFound) {
		return nil, errors.Forbidden("Access denied", nil)
	}
	if err != nil {
		return nil, err
	}
	if order.BuyerID != buyerID {
		return nil, errors.Forbidden("Access denied", nil)
	}
	return order, nil
}

// CancelOrder moves a pending or processing order to cancelled. Stock is not
// restored.
func (uc *OrderUseCase) CancelOrder(ctx context.Context, buyerID, orderID string) (*entity.Order, error) {
	order, err := uc.orderRepo.Update(ctx, orderID, func(o *entity.Order) error {
		if o.BuyerID != buyerID {
			return errors.Forbidden("Access denied", nil)
		}
		if !o.Status.Cancellable() {
			return errors.Validation(errors.CodeInvalidState, "Order cannot be cancelled")
		}
		o.Status = entity.OrderStatusCancelled
		o.UpdatedAt = uc.now()
		return nil
	})
	if err != nil {
		if errors.Code(err) == errors.CodeInternal {
			logger.LogOrderError(orderID, "cancel", err)
		}
		return nil, err
	}
	return order, nil
}
