package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VendorCategories are the service categories a vendor can register under.
var VendorCategories = []string{"Catering", "Florist", "Decoration", "Lighting"}

// Vendor represents a vendor profile owned by a user account
type Vendor struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID         primitive.ObjectID `bson:"user_id" json:"user_id"`
	Name           string             `bson:"name" json:"name"`
	Category       string             `bson:"category" json:"category"`
	Email          string             `bson:"email" json:"email"`
	ContactDetails string             `bson:"contact_details" json:"contact_details"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
}

// IsValidCategory reports whether category is one of the vendor categories.
func IsValidCategory(category string) bool {
	for _, c := range VendorCategories {
		if c == category {
			return true
		}
	}
	return false
}
