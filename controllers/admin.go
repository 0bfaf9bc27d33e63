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
	"golang.org/x/crypto/bcrypt"

	"event-marketplace/models"
	"event-marketplace/utils"
)

// AdminController handles user, vendor and membership administration
type AdminController struct {
	UserCollection       *mongo.Collection
	VendorCollection     *mongo.Collection
	MembershipCollection *mongo.Collection
}

// NewAdminController creates a new AdminController
func NewAdminController(client *mongo.Client) *AdminController {
	db := client.Database(utils.DatabaseName)
	return &AdminController{
		UserCollection:       db.Collection("users"),
		VendorCollection:     db.Collection("vendors"),
		MembershipCollection: db.Collection("memberships"),
	}
}

// GetAllUsers lists every user account, passwords stripped
func (ac *AdminController) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := ac.UserCollection.Find(ctx, bson.M{})
	if err != nil {
		http.Error(w, "Error fetching users", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		http.Error(w, "Error reading users", http.StatusInternalServerError)
		return
	}
	for i := range users {
		users[i].Password = ""
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(users)
}

// CreateUser creates a user account with an explicit role
func (ac *AdminController) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" {
		http.Error(w, "Email and password are required", http.StatusBadRequest)
		return
	}
	if !models.IsValidRole(req.Role) {
		http.Error(w, "Invalid role", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	count, err := ac.UserCollection.CountDocuments(ctx, bson.M{"email": req.Email})
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	if count > 0 {
		http.Error(w, "User already exists", http.StatusBadRequest)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "Error hashing password", http.StatusInternalServerError)
		return
	}

	user := models.User{
		Name:      req.Name,
		Email:     req.Email,
		Password:  string(hashedPassword),
		Role:      req.Role,
		CreatedAt: time.Now(),
	}
	result, err := ac.UserCollection.InsertOne(ctx, user)
	if err != nil {
		http.Error(w, "Error creating user", http.StatusInternalServerError)
		return
	}
	user.ID = result.InsertedID.(primitive.ObjectID)
	user.Password = ""

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "User created successfully",
		"user":    user,
	})
}

// UpdateUser patches the provided fields of a user account
func (ac *AdminController) UpdateUser(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	userID, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	var req struct {
		Name  string `json:"name"`
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	err = json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	update := bson.M{}
	if req.Name != "" {
		update["name"] = req.Name
	}
	if req.Email != "" {
		update["email"] = req.Email
	}
	if req.Role != "" {
		if !models.IsValidRole(req.Role) {
			http.Error(w, "Invalid role", http.StatusBadRequest)
			return
		}
		update["role"] = req.Role
	}
	if len(update) == 0 {
		http.Error(w, "Nothing to update", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := ac.UserCollection.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$set": update})
	if err != nil {
		http.Error(w, "Error updating user", http.StatusInternalServerError)
		return
	}
	if result.MatchedCount == 0 {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	json.NewEncoder(w).Encode(map[string]string{"message": "User updated successfully"})
}

// DeleteUser removes a user account
func (ac *AdminController) DeleteUser(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	userID, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := ac.UserCollection.DeleteOne(ctx, bson.M{"_id": userID})
	if err != nil {
		http.Error(w, "Error deleting user", http.StatusInternalServerError)
		return
	}
	if result.DeletedCount == 0 {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	json.NewEncoder(w).Encode(map[string]string{"message": "User deleted successfully"})
}

// GetAllVendors lists every vendor profile
func (ac *AdminController) GetAllVendors(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := ac.VendorCollection.Find(ctx, bson.M{})
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

// CreateVendor creates a vendor profile along with its backing user account
func (ac *AdminController) CreateVendor(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name           string `json:"name"`
		Email          string `json:"email"`
		Password       string `json:"password"`
		Category       string `json:"category"`
		ContactDetails string `json:"contactDetails"`
	}
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" {
		http.Error(w, "Email and password are required", http.StatusBadRequest)
		return
	}
	if !models.IsValidCategory(req.Category) {
		http.Error(w, "Invalid vendor category", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	count, err := ac.UserCollection.CountDocuments(ctx, bson.M{"email": req.Email})
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	if count > 0 {
		http.Error(w, "User already exists", http.StatusBadRequest)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "Error hashing password", http.StatusInternalServerError)
		return
	}

	user := models.User{
		Name:      req.Name,
		Email:     req.Email,
		Password:  string(hashedPassword),
		Role:      models.RoleVendor,
		CreatedAt: time.Now(),
	}
	userResult, err := ac.UserCollection.InsertOne(ctx, user)
	if err != nil {
		http.Error(w, "Error creating user", http.StatusInternalServerError)
		return
	}

	vendor := models.Vendor{
		UserID:         userResult.InsertedID.(primitive.ObjectID),
		Name:           req.Name,
		Category:       req.Category,
		Email:          req.Email,
		ContactDetails: req.ContactDetails,
		CreatedAt:      time.Now(),
	}
	vendorResult, err := ac.VendorCollection.InsertOne(ctx, vendor)
	if err != nil {
		http.Error(w, "Error creating vendor", http.StatusInternalServerError)
		return
	}
	vendor.ID = vendorResult.InsertedID.(primitive.ObjectID)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Vendor created successfully",
		"vendor":  vendor,
	})
}

// UpdateVendor patches the provided fields of a vendor profile
func (ac *AdminController) UpdateVendor(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	vendorID, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		http.Error(w, "Invalid vendor ID", http.StatusBadRequest)
		return
	}

	var req struct {
		Name           string  `json:"name"`
		Email          string  `json:"email"`
		Category       string  `json:"category"`
		ContactDetails *string `json:"contactDetails"`
	}
	err = json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	update := bson.M{}
	if req.Name != "" {
		update["name"] = req.Name
	}
	if req.Email != "" {
		update["email"] = req.Email
	}
	if req.Category != "" {
		if !models.IsValidCategory(req.Category) {
			http.Error(w, "Invalid vendor category", http.StatusBadRequest)
			return
		}
		update["category"] = req.Category
	}
	if req.ContactDetails != nil {
		update["contact_details"] = *req.ContactDetails
	}
	if len(update) == 0 {
		http.Error(w, "Nothing to update", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := ac.VendorCollection.UpdateOne(ctx, bson.M{"_id": vendorID}, bson.M{"$set": update})
	if err != nil {
		http.Error(w, "Error updating vendor", http.StatusInternalServerError)
		return
	}
	if result.MatchedCount == 0 {
		http.Error(w, "Vendor not found", http.StatusNotFound)
		return
	}

	json.NewEncoder(w).Encode(map[string]string{"message": "Vendor updated successfully"})
}

// DeleteVendor removes a vendor profile and its backing user account
func (ac *AdminController) DeleteVendor(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	vendorID, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		http.Error(w, "Invalid vendor ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var vendor models.Vendor
	err = ac.VendorCollection.FindOne(ctx, bson.M{"_id": vendorID}).Decode(&vendor)
	if err != nil {
		http.Error(w, "Vendor not found", http.StatusNotFound)
		return
	}

	_, err = ac.UserCollection.DeleteOne(ctx, bson.M{"_id": vendor.UserID})
	if err != nil {
		http.Error(w, "Error deleting vendor user account", http.StatusInternalServerError)
		return
	}
	_, err = ac.VendorCollection.DeleteOne(ctx, bson.M{"_id": vendorID})
	if err != nil {
		http.Error(w, "Error deleting vendor", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(map[string]string{"message": "Vendor deleted successfully"})
}

// membershipView is a membership plus its derived days-remaining value.
type membershipView struct {
	models.Membership
	DaysRemaining int `json:"daysRemaining"`
}

// GetAllMemberships lists every membership with days remaining computed
// against the current time
func (ac *AdminController) GetAllMemberships(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := ac.MembershipCollection.Find(ctx, bson.M{})
	if err != nil {
		http.Error(w, "Error fetching memberships", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	memberships := []models.Membership{}
	if err := cursor.All(ctx, &memberships); err != nil {
		http.Error(w, "Error reading memberships", http.StatusInternalServerError)
		return
	}

	now := time.Now()
	views := make([]membershipView, 0, len(memberships))
	for _, m := range memberships {
		views = append(views, membershipView{
			Membership:    m,
			DaysRemaining: models.DaysRemaining(m.EndDate, now),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(views)
}

// CreateMembership starts a membership for a vendor. The end date is the
// start plus the chosen duration, with calendar month/year arithmetic.
func (ac *AdminController) CreateMembership(w http.ResponseWriter, r *http.Request) {
	var req struct {
		VendorID string `json:"vendorId"`
		Duration string `json:"duration"`
	}
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	vendorID, err := primitive.ObjectIDFromHex(req.VendorID)
	if err != nil {
		http.Error(w, "Invalid vendor ID", http.StatusBadRequest)
		return
	}
	if req.Duration == "" {
		req.Duration = models.DurationSixMonths
	}
	if req.Duration != models.DurationSixMonths && req.Duration != models.DurationOneYear && req.Duration != models.DurationTwoYears {
		http.Error(w, "Invalid duration", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	count, err := ac.VendorCollection.CountDocuments(ctx, bson.M{"_id": vendorID})
	if err != nil || count == 0 {
		http.Error(w, "Vendor not found", http.StatusNotFound)
		return
	}

	start := time.Now()
	membership := models.Membership{
		VendorID:  vendorID,
		StartDate: start,
		EndDate:   models.DurationEnd(start, req.Duration),
		Duration:  req.Duration,
		Status:    models.MembershipActive,
		CreatedAt: start,
	}

	result, err := ac.MembershipCollection.InsertOne(ctx, membership)
	if err != nil {
		http.Error(w, "Error creating membership", http.StatusInternalServerError)
		return
	}
	membership.ID = result.InsertedID.(primitive.ObjectID)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message":    "Membership created successfully",
		"membership": membership,
	})
}

// UpdateMembership extends or cancels a vendor's membership. Extending
// pushes the current end date forward by the given months and forces the
// status back to active, which deliberately reactivates a cancelled
// membership. Cancelling only flips the status; dates are untouched.
func (ac *AdminController) UpdateMembership(w http.ResponseWriter, r *http.Request) {
	var req struct {
		VendorID string `json:"vendorId"`
		Action   string `json:"action"` // "extend" or "cancel"
		Months   int    `json:"months"`
	}
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	vendorID, err := primitive.ObjectIDFromHex(req.VendorID)
	if err != nil {
		http.Error(w, "Invalid vendor ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// A vendor may have several membership records; act on the latest.
	opts := options.FindOne().SetSort(bson.M{"created_at": -1})
	var membership models.Membership
	err = ac.MembershipCollection.FindOne(ctx, bson.M{"vendor_id": vendorID}, opts).Decode(&membership)
	if err != nil {
		http.Error(w, "Membership not found", http.StatusNotFound)
		return
	}

	switch req.Action {
	case "extend":
		months := req.Months
		if months <= 0 {
			months = 6
		}
		membership.EndDate = models.ExtendEnd(membership.EndDate, months)
		membership.Status = models.MembershipActive
	case "cancel":
		membership.Status = models.MembershipCancelled
	default:
		http.Error(w, "Invalid action", http.StatusBadRequest)
		return
	}

	_, err = ac.MembershipCollection.UpdateOne(ctx, bson.M{"_id": membership.ID}, bson.M{"$set": bson.M{
		"end_date": membership.EndDate,
		"status":   membership.Status,
	}})
	if err != nil {
		http.Error(w, "Error updating membership", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message":    "Membership updated successfully",
		"membership": membership,
	})
}
