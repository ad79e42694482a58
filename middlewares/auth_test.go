package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZEESHAN8692/restaurant-backend/config"
	"github.com/ZEESHAN8692/restaurant-backend/middlewares"
	"github.com/ZEESHAN8692/restaurant-backend/models"
	"github.com/ZEESHAN8692/restaurant-backend/utils"
)

func protectedEndpoint(t *testing.T, roles ...models.Role) http.Handler {
	t.Helper()
	var handler http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := middlewares.GetAuthenticatedUser(r)
		require.NoError(t, err)
		w.Header().Set("X-User-ID", claims.UserID.String())
		w.WriteHeader(http.StatusOK)
	})
	if len(roles) > 0 {
		handler = middlewares.RoleBasedMiddleware(roles...)(handler)
	}
	return middlewares.AuthMiddleware(handler)
}

func TestAuthMiddlewareMissingToken(t *testing.T) {
	config.SecretKey = []byte("test-secret")

	req := httptest.NewRequest(http.MethodGet, "/api/admin/pending-orders", nil)
	rec := httptest.NewRecorder()
	protectedEndpoint(t).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing token")
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	config.SecretKey = []byte("test-secret")

	req := httptest.NewRequest(http.MethodGet, "/api/admin/pending-orders", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec := httptest.NewRecorder()
	protectedEndpoint(t).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// rejecting the token also expires the refresh cookie
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, "refresh_token", cookies[0].Name)
	assert.Equal(t, -1, cookies[0].MaxAge)
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	config.SecretKey = []byte("test-secret")

	userID := uuid.New()
	token, err := utils.GenerateAccessToken(userID, models.RoleAdmin)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/pending-orders", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	protectedEndpoint(t, models.RoleAdmin).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID.String(), rec.Header().Get("X-User-ID"))
}

func TestRoleBasedMiddlewareForbidden(t *testing.T) {
	config.SecretKey = []byte("test-secret")

	token, err := utils.GenerateAccessToken(uuid.New(), models.RoleUser)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/pending-orders", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	protectedEndpoint(t, models.RoleAdmin).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "insufficient role")
}
