package entity

import (
	"fmt"
	"time"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
	OrderStatusRefunded   OrderStatus = "refunded"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered},
}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled, OrderStatusRefunded:
		return true
	}
	return false
}

// CanTransitionTo reports whether the lifecycle allows moving from s to next.
// Refunds are reachable from every state except refunded itself.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if !s.Valid() || !next.Valid() {
		return false
	}
	if next == OrderStatusRefunded {
		return s != OrderStatusRefunded
	}
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Cancellable is true while the buyer may still cancel.
func (s OrderStatus) Cancellable() bool {
	return s.CanTransitionTo(OrderStatusCancelled)
}

// OrderLine is the product snapshot frozen into an order.
type OrderLine struct {
	ProductID   string  `json:"productId" firestore:"productId"`
	ProductName string  `json:"productName" firestore:"productName"`
	Price       float64 `json:"price" firestore:"price"`
	Quantity    int     `json:"quantity" firestore:"quantity"`
	Size        string  `json:"size" firestore:"size"`
	ImageURL    string  `json:"imageUrl" firestore:"imageUrl"`
	VendorID    string  `json:"vendorId" firestore:"vendorId"`
}

type Order struct {
	ID              string      `json:"orderId" firestore:"orderId"`
	BuyerID         string      `json:"buyerId" firestore:"buyerId"`
	VendorID        string      `json:"vendorId" firestore:"vendorId"`
	BuyerName       string      `json:"buyerName" firestore:"buyerName"`
	BuyerPhone      string      `json:"buyerPhone" firestore:"buyerPhone"`
	ShippingAddress string      `json:"shippingAddress" firestore:"shippingAddress"`
	PaymentMethod   string      `json:"paymentMethod" firestore:"paymentMethod"`
	Products        []OrderLine `json:"products" firestore:"products"`
	TotalAmount     float64     `json:"totalAmount" firestore:"totalAmount"`
	Status          OrderStatus `json:"status" firestore:"status"`
	CreatedAt       time.Time   `json:"createdAt" firestore:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt" firestore:"updatedAt"`
	CourierID       string      `json:"courierId,omitempty" firestore:"courierId,omitempty"`
	CourierName     string      `json:"courierName,omitempty" firestore:"courierName,omitempty"`
	PickedUpAt      *time.Time  `json:"pickedUpAt,omitempty" firestore:"pickedUpAt,omitempty"`
}

// ContainsProduct reports whether any line of the order is for productID.
func (o *Order) ContainsProduct(productID string) bool {
	for _, line := range o.Products {
		if line.ProductID == productID {
			return true
		}
	}
	return false
}

// ToRecord renders the order as a schemaless document using store field names.
func (o *Order) ToRecord() map[string]interface{} {
	lines := make([]interface{}, 0, len(o.Products))
	for _, l := range o.Products {
		lines = append(lines, map[string]interface{}{
			"productId":   l.ProductID,
			"productName": l.ProductName,
			"price":       l.Price,
			"quantity":    int64(l.Quantity),
			"size":        l.Size,
			"imageUrl":    l.ImageURL,
			"vendorId":    l.VendorID,
		})
	}

	record := map[string]interface{}{
		"orderId":         o.ID,
		"buyerId":         o.BuyerID,
		"vendorId":        o.VendorID,
		"buyerName":       o.BuyerName,
		"buyerPhone":      o.BuyerPhone,
		"shippingAddress": o.ShippingAddress,
		"paymentMethod":   o.PaymentMethod,
		"products":        lines,
		"totalAmount":     o.TotalAmount,
		"status":          string(o.Status),
		"createdAt":       o.CreatedAt,
		"updatedAt":       o.UpdatedAt,
	}
	if o.CourierID != "" {
		record["courierId"] = o.CourierID
	}
	if o.CourierName != "" {
		record["courierName"] = o.CourierName
	}
	if o.PickedUpAt != nil {
		record["pickedUpAt"] = *o.PickedUpAt
	}
	return record
}

// OrderFromRecord reads a stored order document. It tolerates the loose typing
// of older documents: integer totals, missing optional fields, null sizes.
func OrderFromRecord(record map[string]interface{}) (*Order, error) {
	if record == nil {
		return nil, fmt.Errorf("order record is nil")
	}

	o := &Order{
		ID:              recordString(record, "orderId"),
		BuyerID:         recordString(record, "buyerId"),
		VendorID:        recordString(record, "vendorId"),
		BuyerName:       recordString(record, "buyerName"),
		BuyerPhone:      recordString(record, "buyerPhone"),
		ShippingAddress: recordString(record, "shippingAddress"),
		PaymentMethod:   recordString(record, "paymentMethod"),
		TotalAmount:     recordFloat(record, "totalAmount"),
		Status:          OrderStatus(recordString(record, "status")),
		CreatedAt:       recordTime(record, "createdAt"),
		UpdatedAt:       recordTime(record, "updatedAt"),
		CourierID:       recordString(record, "courierId"),
		CourierName:     recordString(record, "courierName"),
	}
	if t := recordTime(record, "pickedUpAt"); !t.IsZero() {
		o.PickedUpAt = &t
	}

	raw, _ := record["products"].([]interface{})
	o.Products = make([]OrderLine, 0, len(raw))
	for i, item := range raw {
		m, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("order %s: line %d is %T, want map", o.ID, i, item)
		}
		o.Products = append(o.Products, OrderLine{
			ProductID:   recordString(m, "productId"),
			ProductName: recordString(m, "productName"),
			Price:       recordFloat(m, "price"),
			Quantity:    int(recordFloat(m, "quantity")),
			Size:        recordString(m, "size"),
			ImageURL:    recordString(m, "imageUrl"),
			VendorID:    recordString(m, "vendorId"),
		})
	}
	return o, nil
}

func recordString(m map[string]interface{}, key string) string {
	switch v := m[key].(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

func recordFloat(m map[string]interface{}, key string) float64 {
	switch v := m[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int64:
		return float64(v)
	case int:
		return float64(v)
	}
	return 0
}

func recordTime(m map[string]interface{}, key string) time.Time {
	switch v := m[key].(type) {
	case time.Time:
		return v
	case *time.Time:
		if v != nil {
			return *v
		}
	}
	return time.Time{}
}
