package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"event-marketplace/models"
	"event-marketplace/utils"
)

// UploadDir is where product images are stored on disk. Files are served
// back under the /uploads/ URL prefix.
const UploadDir = "uploads"

// ProductController handles product-related requests
type ProductController struct {
	Collection       *mongo.Collection
	VendorCollection *mongo.Collection
	UserCollection   *mongo.Collection
}

// NewProductController creates a new ProductController
func NewProductController(client *mongo.Client) *ProductController {
	db := client.Database(utils.DatabaseName)
	return &ProductController{
		Collection:       db.Collection("products"),
		VendorCollection: db.Collection("vendors"),
		UserCollection:   db.Collection("users"),
	}
}

// saveProductImage stores an uploaded image under UploadDir and returns its
// relative URL path. Returns "" when no file was sent.
func saveProductImage(r *http.Request) (string, error) {
	file, handler, err := r.FormFile("image")
	if err != nil {
		if err == http.ErrMissingFile {
			return "", nil
		}
		return "", err
	}
	defer file.Close()

	if err := os.MkdirAll(UploadDir, os.ModePerm); err != nil {
		return "", err
	}

	filename := fmt.Sprintf("%d_%s", time.Now().UnixNano(), filepath.Base(handler.Filename))
	dst, err := os.Create(filepath.Join(UploadDir, filename))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", err
	}

	return "/uploads/" + filename, nil
}

// GetAllProducts retrieves every product for browsing
func (pc *ProductController) GetAllProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cursor, err := pc.Collection.Find(ctx, bson.M{})
	if err != nil {
		http.Error(w, "Error fetching products", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		http.Error(w, "Error reading products", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(products)
}

// GetVendorProducts retrieves a vendor's products, newest first
func (pc *ProductController) GetVendorProducts(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	vendorID, err := primitive.ObjectIDFromHex(params["vendorId"])
	if err != nil {
		http.Error(w, "Invalid vendor ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := pc.Collection.Find(ctx, bson.M{"vendor_id": vendorID}, opts)
	if err != nil {
		http.Error(w, "Error fetching products", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		http.Error(w, "Error reading products", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(products)
}

// CreateProduct adds a product for the authenticated vendor. The request is
// multipart form data with name, price and an optional image file.
func (pc *ProductController) CreateProduct(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "Failed to parse multipart form", http.StatusBadRequest)
		return
	}

	name := r.FormValue("name")
	if name == "" {
		http.Error(w, "Product name is required", http.StatusBadRequest)
		return
	}
	price, err := strconv.ParseFloat(r.FormValue("price"), 64)
	if err != nil || price < 0 {
		http.Error(w, "Price must be a non-negative number", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	vendor, err := currentVendor(ctx, pc.UserCollection, pc.VendorCollection, r)
	if err != nil {
		http.Error(w, "Vendor profile not found", http.StatusNotFound)
		return
	}

	imageURL, err := saveProductImage(r)
	if err != nil {
		http.Error(w, "Failed to save image", http.StatusInternalServerError)
		return
	}

	product := models.Product{
		VendorID:  vendor.ID,
		Name:      name,
		Price:     price,
		ImageURL:  imageURL,
		CreatedAt: time.Now(),
	}
	result, err := pc.Collection.InsertOne(ctx, product)
	if err != nil {
		http.Error(w, "Error creating product", http.StatusInternalServerError)
		return
	}
	product.ID = result.InsertedID.(primitive.ObjectID)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Product added successfully",
		"product": product,
	})
}

// UpdateProduct updates a product owned by the authenticated vendor.
// Mutating another vendor's product is rejected with 403.
func (pc *ProductController) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	productID, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		http.Error(w, "Invalid product ID", http.StatusBadRequest)
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "Failed to parse multipart form", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	vendor, err := currentVendor(ctx, pc.UserCollection, pc.VendorCollection, r)
	if err != nil {
		http.Error(w, "Vendor profile not found", http.StatusNotFound)
		return
	}

	var product models.Product
	err = pc.Collection.FindOne(ctx, bson.M{"_id": productID}).Decode(&product)
	if err != nil {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}
	if product.VendorID != vendor.ID {
		http.Error(w, "Not authorized to update this product", http.StatusForbidden)
		return
	}

	update := bson.M{}
	if name := r.FormValue("name"); name != "" {
		update["name"] = name
		product.Name = name
	}
	if priceStr := r.FormValue("price"); priceStr != "" {
		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil || price < 0 {
			http.Error(w, "Price must be a non-negative number", http.StatusBadRequest)
			return
		}
		update["price"] = price
		product.Price = price
	}
	imageURL, err := saveProductImage(r)
	if err != nil {
		http.Error(w, "Failed to save image", http.StatusInternalServerError)
		return
	}
	if imageURL != "" {
		update["image_url"] = imageURL
		product.ImageURL = imageURL
	}

	if len(update) > 0 {
		_, err = pc.Collection.UpdateOne(ctx, bson.M{"_id": productID}, bson.M{"$set": update})
		if err != nil {
			http.Error(w, "Error updating product", http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Product updated successfully",
		"product": product,
	})
}

// DeleteProduct removes a product owned by the authenticated vendor
func (pc *ProductController) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	productID, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		http.Error(w, "Invalid product ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	vendor, err := currentVendor(ctx, pc.UserCollection, pc.VendorCollection, r)
	if err != nil {
		http.Error(w, "Vendor profile not found", http.StatusNotFound)
		return
	}

	var product models.Product
	err = pc.Collection.FindOne(ctx, bson.M{"_id": productID}).Decode(&product)
	if err != nil {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}
	if product.VendorID != vendor.ID {
		http.Error(w, "Not authorized to delete this product", http.StatusForbidden)
		return
	}

	_, err = pc.Collection.DeleteOne(ctx, bson.M{"_id": productID})
	if err != nil {
		http.Error(w, "Error deleting product", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(map[string]string{"message": "Product deleted successfully"})
}
