package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kitabayar/backend/internal/domain/identity"
	"github.com/kitabayar/backend/internal/domain/shared"
	"github.com/kitabayar/backend/internal/infrastructure/auth"
	"github.com/kitabayar/backend/internal/infrastructure/config"
	"github.com/kitabayar/backend/internal/interfaces/http/middleware"
	"github.com/kitabayar/backend/tests/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := middleware.SetupValidator(); err != nil {
		panic(err)
	}
}

func testJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-32-characters-long",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "kitabayar-test",
		MaxRefreshCount:        10,
	})
}

// tokenFor issues an access token for a fresh user with role
func tokenFor(t *testing.T, jwt *auth.JWTService, role identity.Role) (string, uuid.UUID) {
	t.Helper()
	id := uuid.New()
	pair, err := jwt.GenerateTokenPair(auth.Subject{UserID: id, Email: "user@example.com", Role: role})
	require.NoError(t, err)
	return pair.AccessToken, id
}

func newEngine() *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID())
	return r
}

type recordingInvalidator struct {
	calls int
}

func (r *recordingInvalidator) InvalidateAdminStats(context.Context) {
	r.calls++
}

func TestBaseHandler_HandleError(t *testing.T) {
	h := &BaseHandler{}
	r := newEngine()
	r.GET("/domain", func(c *gin.Context) {
		h.HandleError(c, fmt.Errorf("loading: %w", shared.ErrNotFound))
	})
	r.GET("/conflict", func(c *gin.Context) {
		h.HandleError(c, shared.NewDomainError("IN_USE", "Category still has bill types"))
	})
	r.GET("/internal", func(c *gin.Context) {
		h.HandleError(c, errors.New("pq: connection refused"))
	})

	w := testutil.Do(t, r, http.MethodGet, "/domain", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	testutil.AssertErrorCode(t, w, "NOT_FOUND")

	w = testutil.Do(t, r, http.MethodGet, "/conflict", nil, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = testutil.Do(t, r, http.MethodGet, "/internal", nil, map[string]string{"X-Request-ID": "req-1"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	env := testutil.DecodeEnvelope(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, "INTERNAL_ERROR", env.Error.Code)
	assert.Equal(t, "req-1", env.Error.RequestID)
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestBaseHandler_BindJSON(t *testing.T) {
	type body struct {
		Name  string `json:"name" binding:"required"`
		Phone string `json:"phone_number" binding:"phone_id"`
	}
	h := &BaseHandler{}
	r := newEngine()
	r.POST("/", func(c *gin.Context) {
		var b body
		if !h.BindJSON(c, &b) {
			return
		}
		h.Success(c, b)
	})

	w := testutil.Do(t, r, http.MethodPost, "/", map[string]string{"phone_number": "12"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := testutil.DecodeEnvelope(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Len(t, env.Error.Details, 2)

	w = testutil.Do(t, r, http.MethodPost, "/", "{not json", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	testutil.AssertErrorCode(t, w, "BAD_REQUEST")

	w = testutil.Do(t, r, http.MethodPost, "/", map[string]string{"name": "Siti"}, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBaseHandler_ParseID(t *testing.T) {
	h := &BaseHandler{}
	r := newEngine()
	r.GET("/items/:id", func(c *gin.Context) {
		id, ok := h.ParseID(c, "id")
		if !ok {
			return
		}
		h.Success(c, id.String())
	})

	w := testutil.Do(t, r, http.MethodGet, "/items/nope", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	id := uuid.New()
	w = testutil.Do(t, r, http.MethodGet, "/items/"+id.String(), nil, nil)
	assert.Equal(t, id.String(), testutil.DecodeData[string](t, w))
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

func TestSystemHandler_Health(t *testing.T) {
	r := newEngine()
	r.GET("/health", NewSystemHandler(fakePinger{}, "1.2.3").Health)
	w := testutil.Do(t, r, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", testutil.DecodeJSON[HealthResponse](t, w).Status)

	r = newEngine()
	r.GET("/health", NewSystemHandler(fakePinger{err: errors.New("down")}, "1.2.3").Health)
	w = testutil.Do(t, r, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "disconnected", testutil.DecodeJSON[HealthResponse](t, w).Database)
}

func TestSystemHandler_GetSystemInfo(t *testing.T) {
	r := newEngine()
	r.GET("/system/info", NewSystemHandler(fakePinger{}, "1.2.3").GetSystemInfo)
	w := testutil.Do(t, r, http.MethodGet, "/system/info", nil, nil)

	info := testutil.DecodeData[SystemInfoResponse](t, w)
	assert.Equal(t, "KitaBayar API", info.Name)
	assert.Equal(t, "1.2.3", info.Version)
	assert.NotEmpty(t, info.GoVersion)
}
