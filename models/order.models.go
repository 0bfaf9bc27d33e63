package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order statuses, set by the vendor handling the order.
const (
	OrderStatusReceived = "Received"
	OrderStatusReady    = "Ready for Shipping"
	OrderStatusDelivery = "Out For Delivery"
)

// OrderItem is a frozen copy of a cart line at order time. It never tracks
// later product or price changes.
type OrderItem struct {
	ProductID primitive.ObjectID `bson:"product_id" json:"product_id"`
	VendorID  primitive.ObjectID `bson:"vendor_id" json:"vendor_id"`
	Name      string             `bson:"name" json:"name"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	Price     float64            `bson:"price" json:"price"`
}

// CustomerDetails is the delivery contact captured at checkout
type CustomerDetails struct {
	Name          string `bson:"name" json:"name"`
	Email         string `bson:"email" json:"email"`
	Address       string `bson:"address" json:"address"`
	City          string `bson:"city" json:"city"`
	State         string `bson:"state" json:"state"`
	PinCode       string `bson:"pin_code" json:"pinCode"`
	ContactNumber string `bson:"contact_number" json:"contactNumber"`
}

// Order represents a placed order snapshotted from a cart
type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID          primitive.ObjectID `bson:"user_id" json:"user_id"`
	VendorID        primitive.ObjectID `bson:"vendor_id" json:"vendor_id"`
	Items           []OrderItem        `bson:"items" json:"items"`
	TotalAmount     float64            `bson:"total_amount" json:"total_amount"`
	CustomerDetails CustomerDetails    `bson:"customer_details" json:"customer_details"`
	PaymentMethod   string             `bson:"payment_method" json:"payment_method"`
	Status          string             `bson:"status" json:"status"`
	IdempotencyKey  string             `bson:"idempotency_key,omitempty" json:"idempotency_key,omitempty"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
}

// IsValidOrderStatus reports whether status is one of the order statuses.
// Transitions are deliberately unrestricted; only enum membership is checked.
func IsValidOrderStatus(status string) bool {
	switch status {
	case OrderStatusReceived, OrderStatusReady, OrderStatusDelivery:
		return true
	}
	return false
}
