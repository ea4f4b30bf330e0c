package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kitabayar/backend/internal/domain/identity"
	"github.com/kitabayar/backend/internal/infrastructure/auth"
	"github.com/kitabayar/backend/internal/infrastructure/cache"
	"github.com/kitabayar/backend/internal/infrastructure/config"
)

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "kitabayar-test",
		MaxRefreshCount:        10,
	})
}

func issue(t *testing.T, svc *auth.JWTService, role identity.Role) (*auth.TokenPair, auth.Subject) {
	t.Helper()
	sub := auth.Subject{UserID: uuid.New(), Email: "warga@example.com", Role: role}
	pair, err := svc.GenerateTokenPair(sub)
	require.NoError(t, err)
	return pair, sub
}

func protected(cfg JWTConfig, handlers ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), JWTAuth(cfg))
	r.GET("/test", append(handlers, func(c *gin.Context) {
		claims := GetClaims(c)
		c.JSON(http.StatusOK, gin.H{"user_id": claims.UserID, "ctx_user": c.GetString(UserIDKey)})
	})...)
	return r
}

func bearer(token string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+token)
	return req
}

func TestJWTAuth_ValidToken(t *testing.T) {
	svc := newTestJWTService()
	pair, sub := issue(t, svc, identity.RoleResident)

	w := serve(protected(JWTConfig{JWTService: svc}), bearer(pair.AccessToken))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), sub.UserID.String())
}

func TestJWTAuth_Rejections(t *testing.T) {
	svc := newTestJWTService()
	pair, _ := issue(t, svc, identity.RoleAdmin)
	r := protected(JWTConfig{JWTService: svc})

	tests := []struct {
		name   string
		header string
		code   string
	}{
		{"missing header", "", "UNAUTHORIZED"},
		{"not bearer", "Basic dXNlcjpwYXNz", "INVALID_TOKEN"},
		{"empty token", "Bearer ", "INVALID_TOKEN"},
		{"garbage", "Bearer not-a-jwt", "INVALID_TOKEN"},
		{"refresh token", "Bearer " + pair.RefreshToken, "INVALID_TOKEN_TYPE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.header != "" {
				req.Header.Set(AuthHeaderKey, tt.header)
			}
			w := serve(r, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, tt.code, decodeError(t, w).Error.Code)
		})
	}
}

func TestJWTAuth_RevokedToken(t *testing.T) {
	svc := newTestJWTService()
	store := cache.NewMemoryStore(0)
	defer store.Close()
	blacklist := auth.NewStoreBlacklist(store)
	r := protected(JWTConfig{JWTService: svc, Blacklist: blacklist})

	pair, _ := issue(t, svc, identity.RoleStaff)
	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	require.NoError(t, blacklist.Revoke(context.Background(), claims.ID, time.Minute))

	w := serve(r, bearer(pair.AccessToken))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "TOKEN_REVOKED", decodeError(t, w).Error.Code)
}

func TestJWTAuth_RevokedUser(t *testing.T) {
	svc := newTestJWTService()
	store := cache.NewMemoryStore(0)
	defer store.Close()
	blacklist := auth.NewStoreBlacklist(store)
	r := protected(JWTConfig{JWTService: svc, Blacklist: blacklist})

	pair, sub := issue(t, svc, identity.RoleResident)
	require.NoError(t, blacklist.RevokeUser(context.Background(), sub.UserID.String(), time.Now(), time.Hour))

	w := serve(r, bearer(pair.AccessToken))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "TOKEN_REVOKED", decodeError(t, w).Error.Code)
}

func TestRequireRole(t *testing.T) {
	svc := newTestJWTService()
	r := gin.New()
	r.Use(JWTAuth(JWTConfig{JWTService: svc}))
	r.GET("/admin", RequireAdmin(), okHandler)
	r.GET("/staff", RequireStaff(), okHandler)

	admin, _ := issue(t, svc, identity.RoleAdmin)
	staff, _ := issue(t, svc, identity.RoleStaff)
	resident, _ := issue(t, svc, identity.RoleResident)

	tests := []struct {
		path   string
		token  string
		status int
	}{
		{"/admin", admin.AccessToken, http.StatusOK},
		{"/admin", staff.AccessToken, http.StatusForbidden},
		{"/staff", staff.AccessToken, http.StatusOK},
		{"/staff", admin.AccessToken, http.StatusOK},
		{"/staff", resident.AccessToken, http.StatusForbidden},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, tt.path, nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+tt.token)
		w := serve(r, req)
		assert.Equal(t, tt.status, w.Code, tt.path)
	}
}

func TestRequireRole_WithoutAuth(t *testing.T) {
	r := gin.New()
	r.GET("/", RequireAdmin(), okHandler)
	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
