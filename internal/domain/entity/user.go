package entity

import (
	"time"
)

type Role string

const (
	RoleNone    Role = ""
	RoleAny     Role = "*"
	RoleBuyer   Role = "buyer"
	RoleVendor  Role = "vendor"
	RoleCourier Role = "courier"
	RoleAdmin   Role = "admin"
)

// AdminID is the fixed document id of the bootstrap admin account.
const AdminID = "admin"

func (r Role) Valid() bool {
	switch r {
	case RoleBuyer, RoleVendor, RoleCourier, RoleAdmin:
		return true
	}
	return false
}

type Address struct {
	Street  string `json:"address" firestore:"address"`
	City    string `json:"city" firestore:"city"`
	State   string `json:"state" firestore:"state"`
	Zip     string `json:"zip" firestore:"zip"`
	Country string `json:"country" firestore:"country"`
}

// User is the single account record; Role replaces the per-role collections.
type User struct {
	ID           string  `json:"id" firestore:"uid"`
	Email        string  `json:"email" firestore:"email"`
	Role         Role    `json:"role" firestore:"role"`
	FullName     string  `json:"full_name" firestore:"fullName"`
	PhoneNumber  string  `json:"phone_number" firestore:"phoneNumber"`
	Address      Address `json:"address" firestore:"address"`
	ProfileImage string  `json:"profile_image,omitempty" firestore:"profileImage,omitempty"`
	BusinessName string  `json:"business_name,omitempty" firestore:"businessName,omitempty"`
	Status       string  `json:"status" firestore:"status"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}
