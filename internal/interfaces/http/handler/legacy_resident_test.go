package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	residentapp "github.com/kitabayar/backend/internal/application/resident"
	"github.com/kitabayar/backend/internal/domain/resident"
	"github.com/kitabayar/backend/internal/domain/shared"
	"github.com/kitabayar/backend/tests/testutil"
)

func legacyRouter() (*gin.Engine, *testutil.MockResidentRepository, *recordingInvalidator) {
	repo := new(testutil.MockResidentRepository)
	stats := &recordingInvalidator{}
	svc := residentapp.NewService(repo, new(testutil.MockUserRepository), zap.NewNop())
	h := NewLegacyResidentHandler(svc, stats)

	r := newEngine()
	r.GET("/api/residents", h.List)
	r.POST("/api/residents", h.Create)
	r.PUT("/api/residents", h.Replace)
	r.DELETE("/api/residents", h.Delete)
	return r, repo, stats
}

func legacyResident(t *testing.T, name, email string) *resident.Resident {
	t.Helper()
	r, err := resident.NewResident(resident.Profile{FullName: name, Email: email, HouseNumber: "A-1"})
	require.NoError(t, err)
	r.CreatedAt = time.Date(2025, time.January, 15, 22, 30, 0, 0, time.UTC)
	return r
}

func TestLegacyResident_List(t *testing.T) {
	r, repo, _ := legacyRouter()
	siti := legacyResident(t, "Siti", "siti@example.com")
	budi := legacyResident(t, "Budi", "")
	repo.On("FindAll", mock.Anything, resident.Filter{}).Return([]*resident.Resident{siti, budi}, int64(2), nil)

	w := testutil.Do(t, r, http.MethodGet, "/api/residents", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	out := testutil.DecodeJSON[[]LegacyResident](t, w)
	require.Len(t, out, 2)
	assert.Equal(t, siti.ID.String(), out[0].ID)
	assert.Equal(t, "2025-01-15", out[0].CreatedAt)
	assert.Equal(t, "", out[1].Email)
	assert.Equal(t, "", out[1].PhoneNumber)
	assert.True(t, out[1].IsActive)
}

func TestLegacyResident_ListByID(t *testing.T) {
	r, repo, _ := legacyRouter()
	siti := legacyResident(t, "Siti", "")
	missing := uuid.New()
	repo.On("FindByID", mock.Anything, siti.ID).Return(siti, nil)
	repo.On("FindByID", mock.Anything, missing).Return(nil, shared.ErrNotFound)

	w := testutil.Do(t, r, http.MethodGet, "/api/residents?id="+siti.ID.String(), nil, nil)
	out := testutil.DecodeJSON[[]LegacyResident](t, w)
	require.Len(t, out, 1)
	assert.Equal(t, "Siti", out[0].FullName)

	for _, id := range []string{missing.String(), "not-a-uuid"} {
		w = testutil.Do(t, r, http.MethodGet, "/api/residents?id="+id, nil, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	}
}

func TestLegacyResident_Create(t *testing.T) {
	r, repo, _ := legacyRouter()
	repo.On("Create", mock.Anything, mock.AnythingOfType("*resident.Resident")).Return(nil)

	w := testutil.Do(t, r, http.MethodPost, "/api/residents", map[string]any{
		"fullName":    "  Siti Aminah ",
		"email":       " ",
		"phoneNumber": "081234567890",
		"rtRw":        "003/005",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	out := testutil.DecodeJSON[LegacyResident](t, w)
	assert.NotEmpty(t, out.ID)
	assert.Equal(t, "Siti Aminah", out.FullName)
	assert.Equal(t, "", out.Email)
	assert.Equal(t, "003/005", out.RTRW)
	assert.True(t, out.IsActive)
	assert.Len(t, out.CreatedAt, len("2006-01-02"))

	created := repo.Calls[0].Arguments.Get(1).(*resident.Resident)
	assert.Nil(t, created.Email)
}

func TestLegacyResident_CreateRejections(t *testing.T) {
	r, repo, _ := legacyRouter()

	w := testutil.Do(t, r, http.MethodPost, "/api/residents", map[string]any{"fullName": "   "}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "fullName is required", testutil.DecodeJSON[LegacyError](t, w).Error)

	w = testutil.Do(t, r, http.MethodPost, "/api/residents", map[string]any{
		"fullName":     "Siti",
		"email":        "siti",
		"identityCard": "123",
		"postalCode":   "1234",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := testutil.DecodeJSON[LegacyError](t, w)
	assert.Equal(t, "VALIDATION_ERROR", body.Code)
	require.Len(t, body.Details, 3)
	assert.Equal(t, "email", body.Details[0].Field)
	assert.Equal(t, "identityCard", body.Details[1].Field)
	assert.Equal(t, "postalCode", body.Details[2].Field)

	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLegacyResident_Replace(t *testing.T) {
	r, repo, _ := legacyRouter()
	siti := legacyResident(t, "Siti", "siti@example.com")
	repo.On("FindByID", mock.Anything, siti.ID).Return(siti, nil)
	repo.On("Update", mock.Anything, siti).Return(nil)

	active := false
	w := testutil.Do(t, r, http.MethodPut, "/api/residents", map[string]any{
		"id":       siti.ID.String(),
		"fullName": "Siti A.",
		"isActive": active,
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())
	assert.Equal(t, "Siti A.", siti.FullName)
	assert.Nil(t, siti.Email, "omitted fields are cleared")
	assert.Nil(t, siti.HouseNumber)
	assert.False(t, siti.Active)
}

func TestLegacyResident_ReplaceNotFound(t *testing.T) {
	r, repo, _ := legacyRouter()
	missing := uuid.New()
	repo.On("FindByID", mock.Anything, missing).Return(nil, shared.ErrNotFound)

	for _, id := range []string{missing.String(), "garbage"} {
		w := testutil.Do(t, r, http.MethodPut, "/api/residents", map[string]any{"id": id, "fullName": "X"}, nil)
		assert.Equal(t, http.StatusNotFound, w.Code, id)
	}

	w := testutil.Do(t, r, http.MethodPut, "/api/residents", map[string]any{"fullName": "X"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLegacyResident_Delete(t *testing.T) {
	r, repo, _ := legacyRouter()
	id := uuid.New()
	missing := uuid.New()
	repo.On("Delete", mock.Anything, id).Return(nil)
	repo.On("Delete", mock.Anything, missing).Return(shared.ErrNotFound)

	w := testutil.Do(t, r, http.MethodDelete, "/api/residents", map[string]string{"id": id.String()}, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())

	w = testutil.Do(t, r, http.MethodDelete, "/api/residents", map[string]string{"id": missing.String()}, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Resident not found", testutil.DecodeJSON[LegacyError](t, w).Error)
}

func TestLegacyResident_CreatedAtIsUTCDate(t *testing.T) {
	r, repo, _ := legacyRouter()
	wib := time.FixedZone("WIB", 7*60*60)
	siti := legacyResident(t, "Siti", "")
	siti.CreatedAt = time.Date(2025, time.January, 15, 1, 0, 0, 0, wib)
	repo.On("FindByID", mock.Anything, siti.ID).Return(siti, nil)

	w := testutil.Do(t, r, http.MethodGet, "/api/residents?id="+siti.ID.String(), nil, nil)
	out := testutil.DecodeJSON[[]LegacyResident](t, w)
	require.Len(t, out, 1)
	assert.Equal(t, "2025-01-14", out[0].CreatedAt)
}

func TestLegacyResident_MutationsInvalidateStats(t *testing.T) {
	r, repo, stats := legacyRouter()
	siti := legacyResident(t, "Siti", "")
	missing := uuid.New()
	repo.On("Create", mock.Anything, mock.AnythingOfType("*resident.Resident")).Return(nil)
	repo.On("FindByID", mock.Anything, siti.ID).Return(siti, nil)
	repo.On("Update", mock.Anything, siti).Return(nil)
	repo.On("Delete", mock.Anything, siti.ID).Return(nil)
	repo.On("Delete", mock.Anything, missing).Return(shared.ErrNotFound)

	w := testutil.Do(t, r, http.MethodPost, "/api/residents", map[string]any{"fullName": "Budi"}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, stats.calls)

	w = testutil.Do(t, r, http.MethodPut, "/api/residents", map[string]any{"id": siti.ID.String(), "fullName": "Siti A."}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, stats.calls)

	w = testutil.Do(t, r, http.MethodDelete, "/api/residents", map[string]string{"id": siti.ID.String()}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3, stats.calls)

	w = testutil.Do(t, r, http.MethodDelete, "/api/residents", map[string]string{"id": missing.String()}, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	w = testutil.Do(t, r, http.MethodPost, "/api/residents", map[string]any{"fullName": " "}, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 3, stats.calls, "failed requests leave the cache alone")
}
