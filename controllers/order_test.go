package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"event-marketplace/models"
)

func TestAssembleOrderAllLinesResolve(t *testing.T) {
	vendorID := primitive.NewObjectID()
	productA := models.Product{ID: primitive.NewObjectID(), VendorID: vendorID, Name: "Rose Bouquet", Price: 100}
	productB := models.Product{ID: primitive.NewObjectID(), VendorID: vendorID, Name: "Table Setting", Price: 50}

	items := []models.CartItem{
		{ProductID: productA.ID, Quantity: 2, Price: 100, TotalPrice: 200},
		{ProductID: productB.ID, Quantity: 1, Price: 50, TotalPrice: 50},
	}
	products := map[primitive.ObjectID]models.Product{
		productA.ID: productA,
		productB.ID: productB,
	}

	orderItems, orderVendor, total, skipped := assembleOrder(items, products)

	require.Len(t, orderItems, 2)
	assert.Equal(t, 250.0, total)
	assert.Equal(t, vendorID, orderVendor)
	assert.Equal(t, 0, skipped)
	assert.Equal(t, "Rose Bouquet", orderItems[0].Name)
	assert.Equal(t, 2, orderItems[0].Quantity)
}

func TestAssembleOrderSkipsUnresolvedLines(t *testing.T) {
	product := models.Product{ID: primitive.NewObjectID(), VendorID: primitive.NewObjectID(), Name: "Lighting Rig", Price: 300}

	items := []models.CartItem{
		{ProductID: primitive.NewObjectID(), Quantity: 1}, // product deleted since add
		{ProductID: product.ID, Quantity: 1, Price: 300},
	}
	products := map[primitive.ObjectID]models.Product{product.ID: product}

	orderItems, orderVendor, total, skipped := assembleOrder(items, products)

	require.Len(t, orderItems, 1)
	assert.Equal(t, 300.0, total)
	assert.Equal(t, 1, skipped)
	assert.Equal(t, product.VendorID, orderVendor)
}

func TestAssembleOrderFirstResolvedVendorWins(t *testing.T) {
	vendorA := primitive.NewObjectID()
	vendorB := primitive.NewObjectID()
	productA := models.Product{ID: primitive.NewObjectID(), VendorID: vendorA, Name: "Canapes", Price: 20}
	productB := models.Product{ID: primitive.NewObjectID(), VendorID: vendorB, Name: "Garlands", Price: 35}

	items := []models.CartItem{
		{ProductID: productA.ID, Quantity: 1},
		{ProductID: productB.ID, Quantity: 1},
	}
	products := map[primitive.ObjectID]models.Product{
		productA.ID: productA,
		productB.ID: productB,
	}

	// A multi-vendor cart still yields a single order attributed to the
	// first resolved line's vendor.
	_, orderVendor, _, _ := assembleOrder(items, products)
	assert.Equal(t, vendorA, orderVendor)
}

func TestAssembleOrderNothingResolves(t *testing.T) {
	items := []models.CartItem{
		{ProductID: primitive.NewObjectID(), Quantity: 1},
		{ProductID: primitive.NewObjectID(), Quantity: 2},
	}

	orderItems, orderVendor, total, skipped := assembleOrder(items, map[primitive.ObjectID]models.Product{})

	assert.Empty(t, orderItems)
	assert.True(t, orderVendor.IsZero())
	assert.Equal(t, 0.0, total)
	assert.Equal(t, 2, skipped)
}

func TestAssembleOrderUsesLiveProductPrice(t *testing.T) {
	// The order snapshots the product's price at order time, not the unit
	// price stored on the cart line when it was added.
	product := models.Product{ID: primitive.NewObjectID(), VendorID: primitive.NewObjectID(), Name: "Archway", Price: 80}
	items := []models.CartItem{
		{ProductID: product.ID, Quantity: 2, Price: 60, TotalPrice: 120},
	}
	products := map[primitive.ObjectID]models.Product{product.ID: product}

	orderItems, _, total, _ := assembleOrder(items, products)

	require.Len(t, orderItems, 1)
	assert.Equal(t, 80.0, orderItems[0].Price)
	assert.Equal(t, 160.0, total)
}
