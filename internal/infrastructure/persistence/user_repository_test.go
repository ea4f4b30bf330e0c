package persistence

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/kitabayar/backend/internal/domain/identity"
	"github.com/kitabayar/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUser(t *testing.T, email string, role identity.Role) *identity.User {
	t.Helper()
	u, err := identity.NewUser(email, "rahasia123", role)
	require.NoError(t, err)
	return u
}

func TestGormUserRepository_CRUD(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	admin := newUser(t, "admin@kitabayar.com", identity.RoleAdmin)
	require.NoError(t, admin.SetUsername("admin"))
	require.NoError(t, repo.Create(ctx, admin))

	t.Run("finds by email and username case-insensitively", func(t *testing.T) {
		byEmail, err := repo.FindByEmail(ctx, " ADMIN@kitabayar.com ")
		require.NoError(t, err)
		assert.Equal(t, admin.ID, byEmail.ID)
		assert.Equal(t, identity.RoleAdmin, byEmail.Role)
		assert.True(t, byEmail.VerifyPassword("rahasia123"))

		byUsername, err := repo.FindByUsername(ctx, "Admin")
		require.NoError(t, err)
		assert.Equal(t, admin.ID, byUsername.ID)
	})

	t.Run("duplicate email is already exists", func(t *testing.T) {
		err := repo.Create(ctx, newUser(t, "admin@kitabayar.com", identity.RoleStaff))
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})

	t.Run("update persists deactivation", func(t *testing.T) {
		staff := newUser(t, "staff@kitabayar.com", identity.RoleStaff)
		require.NoError(t, repo.Create(ctx, staff))

		staff.Deactivate()
		require.NoError(t, repo.Update(ctx, staff))

		found, err := repo.FindByID(ctx, staff.ID)
		require.NoError(t, err)
		assert.False(t, found.Active)
	})

	t.Run("update unknown user is not found", func(t *testing.T) {
		ghost := newUser(t, "ghost@kitabayar.com", identity.RoleResident)
		assert.ErrorIs(t, repo.Update(ctx, ghost), shared.ErrNotFound)
	})

	t.Run("exists checks", func(t *testing.T) {
		ok, err := repo.ExistsByEmail(ctx, "admin@kitabayar.com")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = repo.ExistsByUsername(ctx, "nobody")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("find all filters by role", func(t *testing.T) {
		role := identity.RoleAdmin
		users, total, err := repo.FindAll(ctx, identity.UserFilter{Role: &role, Page: 1, PageSize: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, users, 1)
		assert.Equal(t, "admin@kitabayar.com", users[0].Email)

		_, total, err = repo.FindAll(ctx, identity.UserFilter{Keyword: "kitabayar"})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, admin.ID))
		_, err := repo.FindByID(ctx, admin.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, admin.ID), shared.ErrNotFound)
	})
}

func TestGormUserRepository_FindByID_SQL(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormUserRepository(db)

	id := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1 ORDER BY "users"."id" LIMIT \$2`).
		WithArgs(id, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "role", "is_active"}).
			AddRow(id, "warga1@gmail.com", "RESIDENT", true))

	u, err := repo.FindByID(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, "warga1@gmail.com", u.Email)
	assert.Equal(t, identity.RoleResident, u.Role)
	assert.True(t, u.Active)
	assert.NoError(t, mock.ExpectationsWereMet())
}
