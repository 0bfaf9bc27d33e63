package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidCategory(t *testing.T) {
	for _, c := range VendorCategories {
		assert.True(t, IsValidCategory(c))
	}
	assert.False(t, IsValidCategory("Photography"))
	assert.False(t, IsValidCategory("catering"))
}

func TestIsValidRole(t *testing.T) {
	assert.True(t, IsValidRole(RoleAdmin))
	assert.True(t, IsValidRole(RoleVendor))
	assert.True(t, IsValidRole(RoleUser))
	assert.False(t, IsValidRole("superadmin"))
	assert.False(t, IsValidRole(""))
}
