package integration

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kitabayar/backend/internal/domain/identity"
	"github.com/kitabayar/backend/internal/interfaces/http/handler"
	"github.com/kitabayar/backend/tests/testutil"
)

func TestLegacyResidents(t *testing.T) {
	ts := NewTestServer(t)
	ts.DB.CleanTables()

	ts.CreateUser(t, "staff@kitabayar.local", identity.RoleStaff)
	token := ts.Login(t, "staff@kitabayar.local")

	w := ts.Do(t, http.MethodPost, "/api/residents", handler.LegacyResidentRequest{
		FullName:     "  Budi Santoso ",
		PhoneNumber:  "081234567890",
		IdentityCard: "3273010101900001",
		HouseNumber:  "B-7",
		RTRW:         "003/007",
	}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	created := testutil.DecodeJSON[handler.LegacyResident](t, w)
	assert.Equal(t, "Budi Santoso", created.FullName)
	assert.Equal(t, "", created.Email)
	assert.True(t, created.IsActive)
	assert.Len(t, created.CreatedAt, len("2006-01-02"))

	t.Run("invalid profile lists every field", func(t *testing.T) {
		w := ts.Do(t, http.MethodPost, "/api/residents", handler.LegacyResidentRequest{
			FullName:     "X",
			IdentityCard: "123",
			PostalCode:   "40",
		}, token)
		require.Equal(t, http.StatusBadRequest, w.Code)
		body := testutil.DecodeJSON[handler.LegacyError](t, w)
		assert.Len(t, body.Details, 2)
	})

	w = ts.Do(t, http.MethodGet, "/api/residents?id="+created.ID, nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	list := testutil.DecodeJSON[[]handler.LegacyResident](t, w)
	require.Len(t, list, 1)

	w = ts.Do(t, http.MethodGet, "/api/residents?id=not-a-uuid", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, testutil.DecodeJSON[[]handler.LegacyResident](t, w))

	inactive := false
	w = ts.Do(t, http.MethodPut, "/api/residents", handler.LegacyResidentRequest{
		ID:       created.ID,
		FullName: "Budi S.",
		IsActive: &inactive,
	}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = ts.Do(t, http.MethodGet, "/api/residents?id="+created.ID, nil, token)
	list = testutil.DecodeJSON[[]handler.LegacyResident](t, w)
	require.Len(t, list, 1)
	assert.Equal(t, "Budi S.", list[0].FullName)
	assert.Empty(t, list[0].PhoneNumber, "replace clears omitted fields")
	assert.False(t, list[0].IsActive)

	w = ts.Do(t, http.MethodDelete, "/api/residents", handler.LegacyDeleteRequest{ID: created.ID}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = ts.Do(t, http.MethodDelete, "/api/residents", handler.LegacyDeleteRequest{ID: created.ID}, token)
	assert.Equal(t, http.StatusNotFound, w.Code)

	t.Run("requires a token", func(t *testing.T) {
		w := ts.Do(t, http.MethodGet, "/api/residents", nil, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
