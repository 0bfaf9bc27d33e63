// main.go
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/robfig/cron"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"event-marketplace/controllers"
	"event-marketplace/middleware"
	"event-marketplace/models"
	"event-marketplace/routes"
	"event-marketplace/utils"
)

func main() {
	// Load environment variables from .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found. Proceeding with environment variables.")
	}

	// Set the JWT secret key
	utils.JwtKey = []byte(os.Getenv("JWT_SECRET"))

	// Initialize EmailService
	emailService := utils.NewEmailService()

	// Connect to MongoDB
	client := utils.ConnectDB()
	defer func() {
		if err = client.Disconnect(context.TODO()); err != nil {
			log.Fatal(err)
		}
	}()

	// Initialize controllers
	userController := controllers.NewUserController(client)
	vendorController := controllers.NewVendorController(client)
	productController := controllers.NewProductController(client)
	cartController := controllers.NewCartController(client)
	orderController := controllers.NewOrderController(client, emailService)
	adminController := controllers.NewAdminController(client)

	// Set up the router
	router := mux.NewRouter()
	routes.RegisterRoutes(router, userController, vendorController, productController, cartController, orderController, adminController)

	// Serve uploaded product images
	router.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(controllers.UploadDir))))

	// Rate limit all requests per client IP
	limiter := middleware.NewRateLimiter(100, time.Minute)
	router.Use(limiter.Middleware)

	// Daily sweep marking overdue memberships expired
	c := cron.New()
	c.AddFunc("@midnight", func() {
		expireDueMemberships(client, emailService)
	})
	c.Start()

	// Start the server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	fmt.Printf("Server is running on port %s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, router))
}

// expireDueMemberships marks active memberships whose end date has passed as
// expired and emails the affected vendors.
func expireDueMemberships(client *mongo.Client, emailService *utils.EmailService) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := client.Database(utils.DatabaseName)
	memberships := db.Collection("memberships")
	vendors := db.Collection("vendors")

	filter := bson.M{
		"status":   models.MembershipActive,
		"end_date": bson.M{"$lt": time.Now()},
	}

	cursor, err := memberships.Find(ctx, filter)
	if err != nil {
		log.Printf("membership sweep: %v", err)
		return
	}
	due := []models.Membership{}
	if err := cursor.All(ctx, &due); err != nil {
		log.Printf("membership sweep: %v", err)
		return
	}
	if len(due) == 0 {
		return
	}

	result, err := memberships.UpdateMany(ctx, filter, bson.M{"$set": bson.M{"status": models.MembershipExpired}})
	if err != nil {
		log.Printf("membership sweep: %v", err)
		return
	}
	log.Printf("membership sweep: marked %d memberships expired", result.ModifiedCount)

	for _, m := range due {
		var vendor models.Vendor
		if err := vendors.FindOne(ctx, bson.M{"_id": m.VendorID}).Decode(&vendor); err != nil {
			continue
		}
		if err := emailService.SendMembershipExpiryNotice(vendor.Email, vendor.Name); err != nil {
			log.Printf("membership sweep: failed to notify %s: %v", vendor.Email, err)
		}
	}
}
