package controllers

import (
	"context"
	"encoding/json"
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

// CartController handles cart-related requests. Carts are read-modify-write
// with no locking: the only writer is the owning shopper, and concurrent
// calls from the same user are last-write-wins.
type CartController struct {
	Collection        *mongo.Collection
	ProductCollection *mongo.Collection
	UserCollection    *mongo.Collection
}

// NewCartController creates a new CartController
func NewCartController(client *mongo.Client) *CartController {
	db := client.Database(utils.DatabaseName)
	return &CartController{
		Collection:        db.Collection("carts"),
		ProductCollection: db.Collection("products"),
		UserCollection:    db.Collection("users"),
	}
}

// upsertCartLine adds quantity of a product to the items. An existing line
// accumulates quantity and has its total recomputed at unitPrice (the live
// product price); its stored unit price keeps the original snapshot. A new
// line snapshots unitPrice.
func upsertCartLine(items []models.CartItem, productID primitive.ObjectID, quantity int, unitPrice float64) []models.CartItem {
	for i, item := range items {
		if item.ProductID == productID {
			items[i].Quantity += quantity
			items[i].TotalPrice = float64(items[i].Quantity) * unitPrice
			return items
		}
	}
	return append(items, models.CartItem{
		ProductID:  productID,
		Quantity:   quantity,
		Price:      unitPrice,
		TotalPrice: float64(quantity) * unitPrice,
	})
}

// setCartLineQuantity sets the quantity of an existing line, recomputing the
// total at unitPrice. Returns false if the line is not present.
func setCartLineQuantity(items []models.CartItem, productID primitive.ObjectID, quantity int, unitPrice float64) bool {
	for i, item := range items {
		if item.ProductID == productID {
			items[i].Quantity = quantity
			items[i].TotalPrice = float64(quantity) * unitPrice
			return true
		}
	}
	return false
}

// removeCartLine filters a product's line out of the items. No-op if absent.
func removeCartLine(items []models.CartItem, productID primitive.ObjectID) []models.CartItem {
	updated := []models.CartItem{}
	for _, item := range items {
		if item.ProductID != productID {
			updated = append(updated, item)
		}
	}
	return updated
}

// findOrCreateCart upserts the user's cart document and returns it.
func (cc *CartController) findOrCreateCart(ctx context.Context, userID primitive.ObjectID) (models.Cart, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var cart models.Cart
	err := cc.Collection.FindOneAndUpdate(ctx,
		bson.M{"user_id": userID},
		bson.M{"$setOnInsert": bson.M{"user_id": userID, "items": []models.CartItem{}}},
		opts,
	).Decode(&cart)
	return cart, err
}

// GetCart retrieves the user's cart, creating an empty one on first access
func (cc *CartController) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	user, err := currentUser(ctx, cc.UserCollection, r)
	if err != nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	cart, err := cc.findOrCreateCart(ctx, user.ID)
	if err != nil {
		http.Error(w, "Error loading cart", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(cart)
}

// AddToCart adds a product to the user's cart, accumulating quantity if the
// product is already present
func (cc *CartController) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if req.Quantity < 1 {
		http.Error(w, "Quantity must be at least 1", http.StatusBadRequest)
		return
	}

	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		http.Error(w, "Invalid product ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	user, err := currentUser(ctx, cc.UserCollection, r)
	if err != nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	var product models.Product
	err = cc.ProductCollection.FindOne(ctx, bson.M{"_id": productID}).Decode(&product)
	if err != nil {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}

	cart, err := cc.findOrCreateCart(ctx, user.ID)
	if err != nil {
		http.Error(w, "Error loading cart", http.StatusInternalServerError)
		return
	}

	cart.Items = upsertCartLine(cart.Items, productID, req.Quantity, product.Price)

	_, err = cc.Collection.UpdateOne(ctx, bson.M{"_id": cart.ID}, bson.M{"$set": bson.M{"items": cart.Items}})
	if err != nil {
		http.Error(w, "Error updating cart", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"message": "Item added to cart", "cart": cart})
}

// UpdateCartItem sets the quantity of a line already in the cart. The line
// total is recomputed at the current product price, so a vendor price change
// between add and update changes the effective price of the line.
func (cc *CartController) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if req.Quantity < 1 {
		http.Error(w, "Quantity must be at least 1", http.StatusBadRequest)
		return
	}

	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		http.Error(w, "Invalid product ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	user, err := currentUser(ctx, cc.UserCollection, r)
	if err != nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	var cart models.Cart
	err = cc.Collection.FindOne(ctx, bson.M{"user_id": user.ID}).Decode(&cart)
	if err != nil {
		http.Error(w, "Cart not found", http.StatusNotFound)
		return
	}

	var product models.Product
	err = cc.ProductCollection.FindOne(ctx, bson.M{"_id": productID}).Decode(&product)
	if err != nil {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}

	if !setCartLineQuantity(cart.Items, productID, req.Quantity, product.Price) {
		http.Error(w, "Item not found in cart", http.StatusNotFound)
		return
	}

	_, err = cc.Collection.UpdateOne(ctx, bson.M{"_id": cart.ID}, bson.M{"$set": bson.M{"items": cart.Items}})
	if err != nil {
		http.Error(w, "Error updating cart", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"message": "Cart updated", "cart": cart})
}

// RemoveFromCart removes a product's line from the user's cart
func (cc *CartController) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	productID, err := primitive.ObjectIDFromHex(params["productId"])
	if err != nil {
		http.Error(w, "Invalid product ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	user, err := currentUser(ctx, cc.UserCollection, r)
	if err != nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	var cart models.Cart
	err = cc.Collection.FindOne(ctx, bson.M{"user_id": user.ID}).Decode(&cart)
	if err != nil {
		http.Error(w, "Cart not found", http.StatusNotFound)
		return
	}

	cart.Items = removeCartLine(cart.Items, productID)

	_, err = cc.Collection.UpdateOne(ctx, bson.M{"_id": cart.ID}, bson.M{"$set": bson.M{"items": cart.Items}})
	if err != nil {
		http.Error(w, "Error updating cart", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"message": "Item removed from cart", "cart": cart})
}

// ClearCart empties the items array in place, keeping the cart document
func (cc *CartController) ClearCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	user, err := currentUser(ctx, cc.UserCollection, r)
	if err != nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	var cart models.Cart
	err = cc.Collection.FindOne(ctx, bson.M{"user_id": user.ID}).Decode(&cart)
	if err != nil {
		http.Error(w, "Cart not found", http.StatusNotFound)
		return
	}

	_, err = cc.Collection.UpdateOne(ctx, bson.M{"_id": cart.ID}, bson.M{"$set": bson.M{"items": []models.CartItem{}}})
	if err != nil {
		http.Error(w, "Error clearing cart", http.StatusInternalServerError)
		return
	}

	cart.Items = []models.CartItem{}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"message": "Cart cleared", "cart": cart})
}
