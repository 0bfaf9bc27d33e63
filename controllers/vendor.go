package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"event-marketplace/models"
	"event-marketplace/utils"
)

// VendorController handles vendor browsing and the vendor's own dashboard
type VendorController struct {
	Collection        *mongo.Collection
	ProductCollection *mongo.Collection
	OrderCollection   *mongo.Collection
	UserCollection    *mongo.Collection
}

// NewVendorController creates a new VendorController
func NewVendorController(client *mongo.Client) *VendorController {
	db := client.Database(utils.DatabaseName)
	return &VendorController{
		Collection:        db.Collection("vendors"),
		ProductCollection: db.Collection("products"),
		OrderCollection:   db.Collection("orders"),
		UserCollection:    db.Collection("users"),
	}
}

// GetAllVendors retrieves every vendor for browsing
func (vc *VendorController) GetAllVendors(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := vc.Collection.Find(ctx, bson.M{})
	if err != nil {
		http.Error(w, "Error fetching vendors", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	vendors := []models.Vendor{}
	if err := cursor.All(ctx, &vendors); err != nil {
		http.Error(w, "Error reading vendors", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(vendors)
}

// GetVendorsByCategory retrieves vendors within one service category
func (vc *VendorController) GetVendorsByCategory(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	category := params["category"]
	if !models.IsValidCategory(category) {
		http.Error(w, "Invalid vendor category", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := vc.Collection.Find(ctx, bson.M{"category": category})
	if err != nil {
		http.Error(w, "Error fetching vendors", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	vendors := []models.Vendor{}
	if err := cursor.All(ctx, &vendors); err != nil {
		http.Error(w, "Error reading vendors", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(vendors)
}

// GetDashboard returns the authenticated vendor's profile with product,
// order and revenue stats
func (vc *VendorController) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	vendor, err := currentVendor(ctx, vc.UserCollection, vc.Collection, r)
	if err != nil {
		http.Error(w, "Vendor profile not found", http.StatusNotFound)
		return
	}

	totalProducts, err := vc.ProductCollection.CountDocuments(ctx, bson.M{"vendor_id": vendor.ID})
	if err != nil {
		http.Error(w, "Error counting products", http.StatusInternalServerError)
		return
	}

	cursor, err := vc.OrderCollection.Find(ctx, bson.M{"vendor_id": vendor.ID})
	if err != nil {
		http.Error(w, "Error fetching orders", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		http.Error(w, "Error reading orders", http.StatusInternalServerError)
		return
	}

	totalRevenue := 0.0
	pendingOrders := 0
	for _, order := range orders {
		totalRevenue += order.TotalAmount
		if order.Status == models.OrderStatusReceived {
			pendingOrders++
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"vendor": vendor,
		"stats": map[string]interface{}{
			"totalProducts": totalProducts,
			"totalOrders":   len(orders),
			"totalRevenue":  totalRevenue,
			"pendingOrders": pendingOrders,
		},
	})
}

// GetTransactions returns the authenticated vendor's orders, newest first
func (vc *VendorController) GetTransactions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	vendor, err := currentVendor(ctx, vc.UserCollection, vc.Collection, r)
	if err != nil {
		http.Error(w, "Vendor profile not found", http.StatusNotFound)
		return
	}

	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := vc.OrderCollection.Find(ctx, bson.M{"vendor_id": vendor.ID}, opts)
	if err != nil {
		http.Error(w, "Error fetching transactions", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		http.Error(w, "Error reading transactions", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"transactions": orders})
}
