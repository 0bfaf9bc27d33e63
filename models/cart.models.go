package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem is one product line in a user's cart. Price is the unit price
// snapshotted when the line was added; TotalPrice is recomputed on every
// mutation of the line.
type CartItem struct {
	ProductID  primitive.ObjectID `bson:"product_id" json:"product_id"`
	Quantity   int                `bson:"quantity" json:"quantity"`
	Price      float64            `bson:"price" json:"price"`
	TotalPrice float64            `bson:"total_price" json:"total_price"`
}

// Cart represents a user's shopping cart. One cart per user, created on
// first access and kept (with an emptied items array) after checkout.
type Cart struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID primitive.ObjectID `bson:"user_id" json:"user_id"`
	Items  []CartItem         `bson:"items" json:"items"`
}
