package routes

import (
	"github.com/gorilla/mux"

	"event-marketplace/controllers"
	"event-marketplace/middleware"
	"event-marketplace/models"
)

// RegisterRoutes sets up all the routes for the application
func RegisterRoutes(
	router *mux.Router,
	userController *controllers.UserController,
	vendorController *controllers.VendorController,
	productController *controllers.ProductController,
	cartController *controllers.CartController,
	orderController *controllers.OrderController,
	adminController *controllers.AdminController,
) {
	// Public auth routes
	router.HandleFunc("/auth/register", userController.Register).Methods("POST")
	router.HandleFunc("/auth/vendor/register", userController.RegisterVendor).Methods("POST")
	router.HandleFunc("/auth/login", userController.Login).Methods("POST")

	// Public browsing routes
	router.HandleFunc("/products/all", productController.GetAllProducts).Methods("GET")
	router.HandleFunc("/products/vendor/{vendorId}", productController.GetVendorProducts).Methods("GET")
	router.HandleFunc("/vendors/all", vendorController.GetAllVendors).Methods("GET")
	router.HandleFunc("/vendors/category/{category}", vendorController.GetVendorsByCategory).Methods("GET")

	// Authenticated routes open to any role
	authed := router.PathPrefix("/").Subrouter()
	authed.Use(middleware.AuthMiddleware)
	authed.HandleFunc("/auth/me", userController.GetProfile).Methods("GET")
	authed.HandleFunc("/orders/{id:[0-9a-fA-F]{24}}", orderController.GetOrderByID).Methods("GET")

	// Shopper routes
	user := router.PathPrefix("/").Subrouter()
	user.Use(middleware.AuthMiddleware)
	user.Use(middleware.RequireRole(models.RoleUser))
	user.HandleFunc("/cart", cartController.GetCart).Methods("GET")
	user.HandleFunc("/cart/add", cartController.AddToCart).Methods("POST")
	user.HandleFunc("/cart/update", cartController.UpdateCartItem).Methods("PUT")
	user.HandleFunc("/cart/remove/{productId}", cartController.RemoveFromCart).Methods("DELETE")
	user.HandleFunc("/cart/clear", cartController.ClearCart).Methods("DELETE")
	user.HandleFunc("/orders", orderController.CreateOrder).Methods("POST")
	user.HandleFunc("/orders/user", orderController.GetUserOrders).Methods("GET")

	// Vendor routes
	vendor := router.PathPrefix("/").Subrouter()
	vendor.Use(middleware.AuthMiddleware)
	vendor.Use(middleware.RequireRole(models.RoleVendor))
	vendor.HandleFunc("/products", productController.CreateProduct).Methods("POST")
	vendor.HandleFunc("/products/{id}", productController.UpdateProduct).Methods("PUT")
	vendor.HandleFunc("/products/{id}", productController.DeleteProduct).Methods("DELETE")
	vendor.HandleFunc("/vendors/dashboard", vendorController.GetDashboard).Methods("GET")
	vendor.HandleFunc("/vendors/transactions", vendorController.GetTransactions).Methods("GET")
	vendor.HandleFunc("/orders/vendor/{vendorId}", orderController.GetVendorOrders).Methods("GET")
	vendor.HandleFunc("/orders/{id}/status", orderController.UpdateOrderStatus).Methods("PUT")

	// Admin routes
	admin := router.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AuthMiddleware)
	admin.Use(middleware.RequireRole(models.RoleAdmin))
	admin.HandleFunc("/users", adminController.GetAllUsers).Methods("GET")
	admin.HandleFunc("/users", adminController.CreateUser).Methods("POST")
	admin.HandleFunc("/users/{id}", adminController.UpdateUser).Methods("PUT")
	admin.HandleFunc("/users/{id}", adminController.DeleteUser).Methods("DELETE")
	admin.HandleFunc("/vendors", adminController.GetAllVendors).Methods("GET")
	admin.HandleFunc("/vendors", adminController.CreateVendor).Methods("POST")
	admin.HandleFunc("/vendors/{id}", adminController.UpdateVendor).Methods("PUT")
	admin.HandleFunc("/vendors/{id}", adminController.DeleteVendor).Methods("DELETE")
	admin.HandleFunc("/memberships", adminController.GetAllMemberships).Methods("GET")
	admin.HandleFunc("/memberships", adminController.CreateMembership).Methods("POST")
	admin.HandleFunc("/memberships", adminController.UpdateMembership).Methods("PUT")
}
