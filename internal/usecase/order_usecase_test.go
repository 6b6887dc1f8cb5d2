package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/adapter/repository/memory"
	"storefront/internal/domain/entity"
	"storefront/pkg/config"
	"storefront/pkg/errors"
	"storefront/pkg/metrics"
)

var shipTo = ShippingInfo{FullName: "Test Buyer", Phone: "555-0100", Address: "1 Main St"}

func orderFixture(opts OrderOptions) (*memory.Store, *OrderUseCase) {
	s := newStore()
	s.PutProduct(product("p10", "Mug", 10, 5))
	s.PutProduct(product("p20", "Lamp", 20, 5))
	other := product("q", "Vase", 7.5, 5)
	other.VendorID = "v2"
	s.PutProduct(other)

	uc := NewOrderUseCase(s.Orders(), testRetrier(), metrics.New(prometheus.NewRegistry()), opts)
	uc.now = func() time.Time { return baseTime }
	return s, uc
}

func fillCart(t *testing.T, s *memory.Store, buyerID string, lines map[string]int) {
	t.Helper()
	for id, qty := range lines {
		require.NoError(t, s.Carts().Upsert(context.Background(), buyerID, &entity.CartItem{ProductID: id, Quantity: qty}))
	}
}

func TestPlaceOrderTotalsAndClearsCart(t *testing.T) {
	s, uc := orderFixture(OrderOptions{})
	ctx := context.Background()
	fillCart(t, s, "b1", map[string]int{"p10": 1, "p20": 1})

	orders, err := uc.PlaceOrder(ctx, "b1", shipTo, "")
	require.NoError(t, err)
	require.Len(t, orders, 1)

	o := orders[0]
	assert.NotEmpty(t, o.ID)
	assert.Equal(t, 30.0, o.TotalAmount)
	assert.Equal(t, entity.OrderStatusPending, o.Status)
	assert.Equal(t, "v1", o.VendorID)
	assert.Equal(t, "Cash on Delivery", o.PaymentMethod)
	assert.Equal(t, baseTime, o.CreatedAt)
	assert.Equal(t, baseTime, o.UpdatedAt)
	assert.Len(t, o.Products, 2)

	items, _ := s.Carts().List(ctx, "b1")
	assert.Empty(t, items)

	stored, err := s.Orders().GetByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, o.ID, stored.ID)
	assert.Equal(t, 30.0, stored.TotalAmount)

	// stock untouched unless decrement is enabled
	p, _ := s.Products().GetByID(ctx, "p10")
	assert.Equal(t, 5, p.Quantity)
}

func TestPlaceOrderUsesLivePrice(t *testing.T) {
	s, uc := orderFixture(OrderOptions{})
	ctx := context.Background()
	require.NoError(t, s.Carts().Upsert(ctx, "b1", &entity.CartItem{ProductID: "p10", ProductPrice: 1, Quantity: 2}))

	orders, err := uc.PlaceOrder(ctx, "b1", shipTo, "Card")
	require.NoError(t, err)
	assert.Equal(t, 20.0, orders[0].TotalAmount)
	assert.Equal(t, "Card", orders[0].PaymentMethod)
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	s, uc := orderFixture(OrderOptions{})
	ctx := context.Background()

	_, err := uc.PlaceOrder(ctx, "b1", shipTo, "")
	assert.True(t, errors.Is(err, errors.CodeEmptyCart))

	// a cart whose products are all gone is also empty
	fillCart(t, s, "b1", map[string]int{"gone": 1})
	_, err = uc.PlaceOrder(ctx, "b1", shipTo, "")
	assert.True(t, errors.Is(err, errors.CodeEmptyCart))
	items, _ := s.Carts().List(ctx, "b1")
	assert.Len(t, items, 1)
	assert.Equal(t, 0, s.OrderCount())
}

func TestPlaceOrderMultiVendorPolicies(t *testing.T) {
	ctx := context.Background()

	s, uc := orderFixture(OrderOptions{MultiVendorPolicy: config.MultiVendorReject})
	fillCart(t, s, "b1", map[string]int{"p10": 1, "q": 2})
	_, err := uc.PlaceOrder(ctx, "b1", shipTo, "")
	assert.True(t, errors.Is(err, errors.CodeMultiVendorCart))
	items, _ := s.Carts().List(ctx, "b1")
	assert.Len(t, items, 2)

	s, uc = orderFixture(OrderOptions{MultiVendorPolicy: config.MultiVendorSplit})
	require.NoError(t, s.Carts().Upsert(ctx, "b1", &entity.CartItem{ProductID: "p10", Quantity: 1}))
	require.NoError(t, s.Carts().Upsert(ctx, "b1", &entity.CartItem{ProductID: "q", Quantity: 2}))
	orders, err := uc.PlaceOrder(ctx, "b1", shipTo, "")
	require.NoError(t, err)
	require.Len(t, orders, 2)
	byVendor := map[string]*entity.Order{}
	for _, o := range orders {
		byVendor[o.VendorID] = o
	}
	assert.Equal(t, 10.0, byVendor["v1"].TotalAmount)
	assert.Equal(t, 15.0, byVendor["v2"].TotalAmount)
	assert.Equal(t, 2, s.OrderCount())

	s, uc = orderFixture(OrderOptions{MultiVendorPolicy: config.MultiVendorCollapse})
	fillCart(t, s, "b1", map[string]int{"p10": 1, "q": 2})
	orders, err = uc.PlaceOrder(ctx, "b1", shipTo, "")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, 25.0, orders[0].TotalAmount)
	assert.Len(t, orders[0].Products, 2)
}

func TestPlaceOrderDecrementStock(t *testing.T) {
	ctx := context.Background()
	s, uc := orderFixture(OrderOptions{DecrementStock: true})
	fillCart(t, s, "b1", map[string]int{"p10": 3})

	_, err := uc.PlaceOrder(ctx, "b1", shipTo, "")
	require.NoError(t, err)
	p, _ := s.Products().GetByID(ctx, "p10")
	assert.Equal(t, 2, p.Quantity)

	fillCart(t, s, "b1", map[string]int{"p10": 3})
	_, err = uc.PlaceOrder(ctx, "b1", shipTo, "")
	assert.True(t, errors.Is(err, errors.CodeInsufficientStock))
	p, _ = s.Products().GetByID(ctx, "p10")
	assert.Equal(t, 2, p.Quantity)
	items, _ := s.Carts().List(ctx, "b1")
	assert.Len(t, items, 1)
	assert.Equal(t, 1, s.OrderCount())
}

func TestConcurrentPlaceOrderProducesOneOrderSet(t *testing.T) {
	s, uc := orderFixture(OrderOptions{})
	fillCart(t, s, "b1", map[string]int{"p10": 1, "p20": 1})

	const callers = 8
	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded, empty := 0, 0
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.PlaceOrder(context.Background(), "b1", shipTo, "")
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, errors.CodeEmptyCart):
				empty++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, callers-1, empty)
	assert.Equal(t, 1, s.OrderCount())
}

func TestListOrdersNewestFirst(t *testing.T) {
	s, uc := orderFixture(OrderOptions{})
	s.PutOrder(entity.Order{ID: "o1", BuyerID: "b1", CreatedAt: baseTime})
	s.PutOrder(entity.Order{ID: "o2", BuyerID: "b1", CreatedAt: baseTime.Add(time.Minute)})
	s.PutOrder(entity.Order{ID: "o3", BuyerID: "b2", CreatedAt: baseTime})

	orders, err := uc.ListOrders(context.Background(), "b1")
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "o2", orders[0].ID)

	orders, err = uc.ListOrders(context.Background(), "nobody")
	require.NoError(t, err)
	assert.NotNil(t, orders)
	assert.Empty(t, orders)
}

func TestListVendorOrdersAndSummary(t *testing.T) {
	s, uc := orderFixture(OrderOptions{})
	for i := 0; i < 7; i++ {
		status := entity.OrderStatusDelivered
		if i%3 == 0 {
			status = entity.OrderStatusPending
		}
		s.PutOrder(entity.Order{
			ID:          "v1-" + string(rune('a'+i)),
			BuyerID:     "b1",
			VendorID:    "v1",
			TotalAmount: 10.1,
			Status:      status,
			CreatedAt:   baseTime.Add(time.Duration(i) * time.Minute),
		})
	}
	s.PutOrder(entity.Order{ID: "v2-a", BuyerID: "b1", VendorID: "v2", TotalAmount: 99, Status: entity.OrderStatusPending, CreatedAt: baseTime})

	orders, err := uc.ListVendorOrders(context.Background(), "v1")
	require.NoError(t, err)
	require.Len(t, orders, 7)
	assert.Equal(t, "v1-g", orders[0].ID)

	stats := SummarizeVendorOrders(orders)
	assert.Equal(t, 7, stats.TotalOrders)
	assert.Equal(t, 3, stats.PendingOrders)
	assert.Equal(t, 70.7, stats.TotalSales)
	require.Len(t, stats.RecentOrders, 5)
	assert.Equal(t, "v1-g", stats.RecentOrders[0].ID)

	orders, err = uc.ListVendorOrders(context.Background(), "nobody")
	require.NoError(t, err)
	assert.NotNil(t, orders)
	empty := SummarizeVendorOrders(orders)
	assert.Zero(t, empty.TotalSales)
	assert.NotNil(t, empty.RecentOrders)
}

func TestGetOrderHidesExistence(t *testing.T) {
	s, uc := orderFixture(OrderOptions{})
	s.PutOrder(entity.Order{ID: "o1", BuyerID: "b1", Status: entity.OrderStatusPending})
	ctx := context.Background()

	o, err := uc.GetOrder(ctx, "b1", "o1")
	require.NoError(t, err)
	assert.Equal(t, "o1", o.ID)

	_, foreignErr := uc.GetOrder(ctx, "b2", "o1")
	_, absentErr := uc.GetOrder(ctx, "b2", "missing")
	assert.True(t, errors.Is(foreignErr, errors.CodeForbidden))
	assert.True(t, errors.Is(absentErr, errors.CodeForbidden))
	assert.Equal(t, foreignErr.Error(), absentErr.Error())
}

func TestCancelOrder(t *testing.T) {
	s, uc := orderFixture(OrderOptions{})
	later := baseTime.Add(time.Hour)
	uc.now = func() time.Time { return later }
	ctx := context.Background()

	for _, status := range []entity.OrderStatus{entity.OrderStatusPending, entity.OrderStatusProcessing} {
		s.PutOrder(entity.Order{ID: "o-" + string(status), BuyerID: "b1", Status: status, CreatedAt: baseTime, UpdatedAt: baseTime})
		o, err := uc.CancelOrder(ctx, "b1", "o-"+string(status))
		require.NoError(t, err)
		assert.Equal(t, entity.OrderStatusCancelled, o.Status)
		assert.Equal(t, later, o.UpdatedAt)
	}
}

func TestCancelOrderFailures(t *testing.T) {
	s, uc := orderFixture(OrderOptions{})
	s.PutOrder(entity.Order{ID: "shipped", BuyerID: "b1", Status: entity.OrderStatusShipped})
	s.PutOrder(entity.Order{ID: "theirs", BuyerID: "b2", Status: entity.OrderStatusPending})
	ctx := context.Background()

	_, err := uc.CancelOrder(ctx, "b1", "shipped")
	assert.True(t, errors.Is(err, errors.CodeInvalidState))
	o, _ := s.Orders().GetByID(ctx, "shipped")
	assert.Equal(t, entity.OrderStatusShipped, o.Status)

	_, err = uc.CancelOrder(ctx, "b1", "theirs")
	assert.True(t, errors.Is(err, errors.CodeForbidden))
	o, _ = s.Orders().GetByID(ctx, "theirs")
	assert.Equal(t, entity.OrderStatusPending, o.Status)

	_, err = uc.CancelOrder(ctx, "b1", "missing")
	assert.True(t, errors.Is(err, errors.CodeNotFound))
}
