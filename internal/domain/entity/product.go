package entity

import (
	"math"
	"time"
)

type Product struct {
	ID             string    `json:"id" firestore:"id"`
	Name           string    `json:"productName" firestore:"productName"`
	Price          float64   `json:"productPrice" firestore:"productPrice"`
	BrandName      string    `json:"brandName" firestore:"brandName"`
	Images         []string  `json:"imageUrlList" firestore:"imageUrlList"`
	Rating         float64   `json:"rating" firestore:"rating"`
	ReviewCount    int       `json:"reviewCount" firestore:"reviewCount"`
	Description    string    `json:"productDescription" firestore:"productDescription"`
	CategoryID     string    `json:"categoryId" firestore:"categoryId"`
	Category       string    `json:"category" firestore:"category"`
	VendorID       string    `json:"vendorId" firestore:"vendorId"`
	Quantity       int       `json:"quantity" firestore:"quantity"`
	IsFeatured     bool      `json:"isFeatured" firestore:"is_featured"`
	ShippingCharge float64   `json:"shippingCharge" firestore:"shippingCharge"`
	ChargeShipping bool      `json:"chargeShipping" firestore:"chargeShipping"`
	CreatedAt      time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt" firestore:"updatedAt"`
}

// PrimaryImage is the first listed image, or "" when the product has none.
func (p *Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// Shipping is the per-line shipping charge, zero unless the vendor charges it.
func (p *Product) Shipping() float64 {
	if !p.ChargeShipping {
		return 0
	}
	return p.ShippingCharge
}

// AddRating folds one more review score into the running average.
func (p *Product) AddRating(score float64) {
	total := p.Rating*float64(p.ReviewCount) + score
	p.ReviewCount++
	p.Rating = math.Round(total/float64(p.ReviewCount)*100) / 100
}
