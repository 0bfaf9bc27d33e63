package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"event-marketplace/models"
)

func TestUpsertCartLineAddsNewLine(t *testing.T) {
	productID := primitive.NewObjectID()

	items := upsertCartLine(nil, productID, 2, 100)

	require.Len(t, items, 1)
	assert.Equal(t, productID, items[0].ProductID)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 100.0, items[0].Price)
	assert.Equal(t, 200.0, items[0].TotalPrice)
}

func TestUpsertCartLineAccumulatesQuantity(t *testing.T) {
	productID := primitive.NewObjectID()

	// Adding the same product twice accumulates quantity on one line
	// instead of duplicating it.
	items := upsertCartLine(nil, productID, 2, 100)
	items = upsertCartLine(items, productID, 3, 100)

	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
	assert.Equal(t, 500.0, items[0].TotalPrice)
}

func TestUpsertCartLineRecomputesTotalAtLivePrice(t *testing.T) {
	productID := primitive.NewObjectID()

	items := upsertCartLine(nil, productID, 1, 100)
	// The vendor changed the price between adds. The line keeps its
	// original unit price snapshot but the total follows the live price.
	items = upsertCartLine(items, productID, 1, 150)

	require.Len(t, items, 1)
	assert.Equal(t, 100.0, items[0].Price)
	assert.Equal(t, 300.0, items[0].TotalPrice)
}

func TestSetCartLineQuantity(t *testing.T) {
	productID := primitive.NewObjectID()
	items := upsertCartLine(nil, productID, 2, 100)

	ok := setCartLineQuantity(items, productID, 4, 100)

	require.True(t, ok)
	assert.Equal(t, 4, items[0].Quantity)
	assert.Equal(t, 400.0, items[0].TotalPrice)
}

func TestSetCartLineQuantityUsesCurrentProductPrice(t *testing.T) {
	productID := primitive.NewObjectID()
	items := upsertCartLine(nil, productID, 2, 100)

	// A price change between add and update silently changes the line's
	// effective price. Known inconsistency, preserved on purpose.
	ok := setCartLineQuantity(items, productID, 2, 120)

	require.True(t, ok)
	assert.Equal(t, 100.0, items[0].Price)
	assert.Equal(t, 240.0, items[0].TotalPrice)
}

func TestSetCartLineQuantityMissingLine(t *testing.T) {
	items := upsertCartLine(nil, primitive.NewObjectID(), 1, 50)

	ok := setCartLineQuantity(items, primitive.NewObjectID(), 3, 50)

	assert.False(t, ok)
}

func TestRemoveCartLine(t *testing.T) {
	first := primitive.NewObjectID()
	second := primitive.NewObjectID()
	items := upsertCartLine(nil, first, 1, 10)
	items = upsertCartLine(items, second, 1, 20)

	items = removeCartLine(items, first)

	require.Len(t, items, 1)
	assert.Equal(t, second, items[0].ProductID)
}

func TestRemoveCartLineAbsentIsNoOp(t *testing.T) {
	productID := primitive.NewObjectID()
	items := upsertCartLine(nil, productID, 1, 10)

	items = removeCartLine(items, primitive.NewObjectID())

	require.Len(t, items, 1)
	assert.Equal(t, productID, items[0].ProductID)
}

func TestRemoveCartLineEmpty(t *testing.T) {
	items := removeCartLine([]models.CartItem{}, primitive.NewObjectID())
	assert.Empty(t, items)
}
