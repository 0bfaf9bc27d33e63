package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidOrderStatus(t *testing.T) {
	assert.True(t, IsValidOrderStatus(OrderStatusReceived))
	assert.True(t, IsValidOrderStatus(OrderStatusReady))
	assert.True(t, IsValidOrderStatus(OrderStatusDelivery))

	assert.False(t, IsValidOrderStatus("Delivered"))
	assert.False(t, IsValidOrderStatus("received"))
	assert.False(t, IsValidOrderStatus(""))
}
