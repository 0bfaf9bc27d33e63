package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"event-marketplace/models"
	"event-marketplace/utils"
)

func init() {
	utils.JwtKey = []byte("test-secret")
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/cart", nil)

	AuthMiddleware(okHandler()).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuthMiddlewareBadFormat(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/cart", nil)
	req.Header.Set("Authorization", "Basic abc123")

	AuthMiddleware(okHandler()).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/cart", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")

	AuthMiddleware(okHandler()).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuthMiddlewareValidTokenAttachesClaims(t *testing.T) {
	token, err := utils.GenerateJWT("shopper@example.com", models.RoleUser)
	require.NoError(t, err)

	var got *utils.Claims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = r.Context().Value(UserContextKey).(*utils.Claims)
		w.WriteHeader(http.StatusOK)
	})

	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/cart", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	AuthMiddleware(next).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	require.NotNil(t, got)
	assert.Equal(t, "shopper@example.com", got.Email)
	assert.Equal(t, models.RoleUser, got.Role)
}

func TestRequireRoleWrongRole(t *testing.T) {
	token, err := utils.GenerateJWT("shopper@example.com", models.RoleUser)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/admin/users", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	AuthMiddleware(RequireRole(models.RoleAdmin)(okHandler())).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestRequireRoleMatchingRole(t *testing.T) {
	token, err := utils.GenerateJWT("admin@example.com", models.RoleAdmin)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/admin/users", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	AuthMiddleware(RequireRole(models.RoleAdmin)(okHandler())).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRequireRoleWithoutAuth(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/admin/users", nil)

	// RequireRole alone (no claims in context) must refuse.
	RequireRole(models.RoleAdmin)(okHandler()).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
}
