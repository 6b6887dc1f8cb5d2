package entity

import (
	"time"
)

// Review lives under products/{productId}/reviews.
type Review struct {
	ID                 string    `json:"id" firestore:"id"`
	ProductID          string    `json:"productId" firestore:"productId"`
	UserID             string    `json:"userId" firestore:"userId"`
	UserName           string    `json:"userName" firestore:"userName"`
	UserImage          string    `json:"userImage" firestore:"userImage"`
	Rating             float64   `json:"rating" firestore:"rating"`
	Comment            string    `json:"comment" firestore:"comment"`
	CreatedAt          time.Time `json:"createdAt" firestore:"createdAt"`
	IsVerifiedPurchase bool      `json:"isVerifiedPurchase" firestore:"isVerifiedPurchase"`
}
