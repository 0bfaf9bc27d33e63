package controllers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"event-marketplace/models"
	"event-marketplace/utils"
)

// OrderController handles order-related requests
type OrderController struct {
	OrderCollection   *mongo.Collection
	CartCollection    *mongo.Collection
	ProductCollection *mongo.Collection
	VendorCollection  *mongo.Collection
	UserCollection    *mongo.Collection
	EmailService      *utils.EmailService
}

// NewOrderController creates a new OrderController
func NewOrderController(client *mongo.Client, emailService *utils.EmailService) *OrderController {
	db := client.Database(utils.DatabaseName)
	return &OrderController{
		OrderCollection:   db.Collection("orders"),
		CartCollection:    db.Collection("carts"),
		ProductCollection: db.Collection("products"),
		VendorCollection:  db.Collection("vendors"),
		UserCollection:    db.Collection("users"),
		EmailService:      emailService,
	}
}

// assembleOrder builds the order items from cart lines and the products that
// could still be resolved, keyed by product ID. Lines whose product is gone
// are skipped; the skipped count is returned so callers can report the
// partial result. The vendor of the first resolved line becomes the order's
// vendor, even when the cart spans several vendors.
func assembleOrder(items []models.CartItem, products map[primitive.ObjectID]models.Product) ([]models.OrderItem, primitive.ObjectID, float64, int) {
	orderItems := []models.OrderItem{}
	var vendorID primitive.ObjectID
	total := 0.0
	skipped := 0

	for _, item := range items {
		product, ok := products[item.ProductID]
		if !ok {
			skipped++
			continue
		}
		if vendorID.IsZero() {
			vendorID = product.VendorID
		}
		orderItems = append(orderItems, models.OrderItem{
			ProductID: product.ID,
			VendorID:  product.VendorID,
			Name:      product.Name,
			Quantity:  item.Quantity,
			Price:     product.Price,
		})
		total += product.Price * float64(item.Quantity)
	}

	return orderItems, vendorID, total, skipped
}

// CreateOrder snapshots the user's cart into a new order and clears the
// cart. An optional idempotency key makes client retries safe: a second call
// with the same key returns the already-created order.
func (oc *OrderController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CustomerDetails models.CustomerDetails `json:"customerDetails"`
		PaymentMethod   string                 `json:"paymentMethod"`
		IdempotencyKey  string                 `json:"idempotencyKey"`
	}
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.PaymentMethod == "" {
		http.Error(w, "Payment method is required", http.StatusBadRequest)
		return
	}
	if req.CustomerDetails.Name == "" || req.CustomerDetails.Email == "" || req.CustomerDetails.Address == "" {
		http.Error(w, "Customer details are incomplete", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	user, err := currentUser(ctx, oc.UserCollection, r)
	if err != nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	// Retried submission: hand back the order created the first time.
	if req.IdempotencyKey != "" {
		var existing models.Order
		err := oc.OrderCollection.FindOne(ctx, bson.M{
			"user_id":         user.ID,
			"idempotency_key": req.IdempotencyKey,
		}).Decode(&existing)
		if err == nil {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]interface{}{
				"message": "Order already placed",
				"order":   existing,
			})
			return
		}
	}

	var cart models.Cart
	err = oc.CartCollection.FindOne(ctx, bson.M{"user_id": user.ID}).Decode(&cart)
	if err != nil || len(cart.Items) == 0 {
		http.Error(w, "Cart is empty", http.StatusBadRequest)
		return
	}

	// Resolve each line's live product and check its vendor still exists.
	// Lines that no longer resolve are dropped from the order.
	products := make(map[primitive.ObjectID]models.Product)
	for _, item := range cart.Items {
		var product models.Product
		err := oc.ProductCollection.FindOne(ctx, bson.M{"_id": item.ProductID}).Decode(&product)
		if err != nil {
			log.Printf("order: product %s no longer exists, skipping line", item.ProductID.Hex())
			continue
		}
		count, err := oc.VendorCollection.CountDocuments(ctx, bson.M{"_id": product.VendorID})
		if err != nil || count == 0 {
			log.Printf("order: vendor %s for product %s no longer exists, skipping line", product.VendorID.Hex(), product.ID.Hex())
			continue
		}
		products[product.ID] = product
	}

	orderItems, vendorID, totalAmount, skipped := assembleOrder(cart.Items, products)
	if len(orderItems) == 0 {
		http.Error(w, "No valid products in cart", http.StatusBadRequest)
		return
	}

	order := models.Order{
		UserID:          user.ID,
		VendorID:        vendorID,
		Items:           orderItems,
		TotalAmount:     totalAmount,
		CustomerDetails: req.CustomerDetails,
		PaymentMethod:   req.PaymentMethod,
		Status:          models.OrderStatusReceived,
		IdempotencyKey:  req.IdempotencyKey,
		CreatedAt:       time.Now(),
	}

	result, err := oc.OrderCollection.InsertOne(ctx, order)
	if err != nil {
		http.Error(w, "Failed to create order", http.StatusInternalServerError)
		return
	}
	order.ID = result.InsertedID.(primitive.ObjectID)

	// Emptying the items array is idempotent, so a retry after a crash here
	// cannot lose anything the idempotency key does not already cover.
	_, err = oc.CartCollection.UpdateOne(ctx, bson.M{"_id": cart.ID}, bson.M{"$set": bson.M{"items": []models.CartItem{}}})
	if err != nil {
		http.Error(w, "Failed to clear cart", http.StatusInternalServerError)
		return
	}

	go func(email string, order models.Order) {
		if err := oc.EmailService.SendOrderConfirmationEmail(email, order); err != nil {
			log.Printf("Failed to send order confirmation to %s: %v", email, err)
		}
	}(req.CustomerDetails.Email, order)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message":      "Order placed successfully",
		"order":        order,
		"skippedItems": skipped,
	})
}

// GetUserOrders retrieves the authenticated user's orders, newest first
func (oc *OrderController) GetUserOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	user, err := currentUser(ctx, oc.UserCollection, r)
	if err != nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := oc.OrderCollection.Find(ctx, bson.M{"user_id": user.ID}, opts)
	if err != nil {
		http.Error(w, "Failed to retrieve orders", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		http.Error(w, "Error decoding orders", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(orders)
}

// GetVendorOrders retrieves a vendor's order queue, newest first
func (oc *OrderController) GetVendorOrders(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	vendorID, err := primitive.ObjectIDFromHex(params["vendorId"])
	if err != nil {
		http.Error(w, "Invalid vendor ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := oc.OrderCollection.Find(ctx, bson.M{"vendor_id": vendorID}, opts)
	if err != nil {
		http.Error(w, "Failed to retrieve orders", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		http.Error(w, "Error decoding orders", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(orders)
}

// UpdateOrderStatus sets an order's status. Only enum membership is
// validated; the workflow does not force forward-only transitions.
func (oc *OrderController) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	orderID, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		http.Error(w, "Invalid order ID", http.StatusBadRequest)
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	err = json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if !models.IsValidOrderStatus(req.Status) {
		http.Error(w, "Invalid status", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := oc.OrderCollection.UpdateOne(ctx, bson.M{"_id": orderID}, bson.M{"$set": bson.M{"status": req.Status}})
	if err != nil {
		http.Error(w, "Failed to update order status", http.StatusInternalServerError)
		return
	}
	if result.MatchedCount == 0 {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}

	var order models.Order
	err = oc.OrderCollection.FindOne(ctx, bson.M{"_id": orderID}).Decode(&order)
	if err != nil {
		http.Error(w, "Failed to retrieve updated order", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Order status updated successfully",
		"order":   order,
	})
}

// GetOrderByID retrieves a single order
func (oc *OrderController) GetOrderByID(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	orderID, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		http.Error(w, "Invalid order ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var order models.Order
	err = oc.OrderCollection.FindOne(ctx, bson.M{"_id": orderID}).Decode(&order)
	if err != nil {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(order)
}
