package entity

import (
	"time"
)

// CartItem is a snapshot of a product taken when it was added to the cart.
// The document id is the product id, so a buyer holds at most one line per product.
type CartItem struct {
	ProductID    string    `json:"productId" firestore:"productId"`
	ProductName  string    `json:"productName" firestore:"productName"`
	ProductPrice float64   `json:"productPrice" firestore:"productPrice"`
	ImageURL     string    `json:"imageUrl" firestore:"imageUrl"`
	Quantity     int       `json:"quantity" firestore:"quantity"`
	Size         string    `json:"size" firestore:"size"`
	VendorID     string    `json:"vendorId" firestore:"vendorId"`
	AddedAt      time.Time `json:"addedAt" firestore:"addedAt"`
}
