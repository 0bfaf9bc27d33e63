package controllers

import (
	"context"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"event-marketplace/middleware"
	"event-marketplace/models"
	"event-marketplace/utils"
)

// currentUser resolves the authenticated user from the request's JWT claims.
func currentUser(ctx context.Context, users *mongo.Collection, r *http.Request) (models.User, error) {
	claims, ok := r.Context().Value(middleware.UserContextKey).(*utils.Claims)
	if !ok {
		return models.User{}, errors.New("no user in request context")
	}

	var user models.User
	err := users.FindOne(ctx, bson.M{"email": claims.Email}).Decode(&user)
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

// currentVendor resolves the vendor profile owned by the authenticated user.
func currentVendor(ctx context.Context, users, vendors *mongo.Collection, r *http.Request) (models.Vendor, error) {
	user, err := currentUser(ctx, users, r)
	if err != nil {
		return models.Vendor{}, err
	}

	var vendor models.Vendor
	err = vendors.FindOne(ctx, bson.M{"user_id": user.ID}).Decode(&vendor)
	if err != nil {
		return models.Vendor{}, err
	}
	return vendor, nil
}
