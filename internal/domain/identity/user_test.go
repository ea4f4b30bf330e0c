package identity

import (
	"testing"

	"github.com/kitabayar/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("creates active user with hashed password", func(t *testing.T) {
		user, err := NewUser("admin@kitabayar.com", "admin123", RoleAdmin)

		require.NoError(t, err)
		assert.Equal(t, "admin@kitabayar.com", user.Email)
		assert.Equal(t, RoleAdmin, user.Role)
		assert.True(t, user.Active)
		assert.Nil(t, user.Username)
		assert.NotEqual(t, "admin123", user.PasswordHash)
		assert.True(t, user.VerifyPassword("admin123"))
	})

	t.Run("normalizes email", func(t *testing.T) {
		user, err := NewUser("  Resident@Gmail.COM ", "warga1234", RoleResident)

		require.NoError(t, err)
		assert.Equal(t, "resident@gmail.com", user.Email)
	})

	t.Run("fails with invalid email", func(t *testing.T) {
		_, err := NewUser("not-an-email", "admin123", RoleAdmin)

		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "INVALID_EMAIL", de.Code)
	})

	t.Run("fails with unknown role", func(t *testing.T) {
		_, err := NewUser("a@b.co", "admin123", Role("ROOT"))

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Role must be")
	})

	t.Run("fails with weak password", func(t *testing.T) {
		_, err := NewUser("a@b.co", "short1", RoleStaff)
		assert.Contains(t, err.Error(), "at least 8 characters")

		_, err = NewUser("a@b.co", "onlyletters", RoleStaff)
		assert.Contains(t, err.Error(), "one letter and one number")
	})
}

func TestUser_SetUsername(t *testing.T) {
	user, err := NewUser("resident@gmail.com", "resident123", RoleResident)
	require.NoError(t, err)

	require.NoError(t, user.SetUsername("  Warga1 "))
	require.NotNil(t, user.Username)
	assert.Equal(t, "warga1", *user.Username)
	assert.Equal(t, "warga1", user.UsernameOrEmail())

	require.NoError(t, user.SetUsername(""))
	assert.Nil(t, user.Username)
	assert.Equal(t, "resident@gmail.com", user.UsernameOrEmail())

	assert.Error(t, user.SetUsername("ab"))
	assert.Error(t, user.SetUsername("bad name"))
}

func TestUser_ChangePassword(t *testing.T) {
	user, err := NewUser("staff@kitabayar.com", "staff123", RoleStaff)
	require.NoError(t, err)

	t.Run("rejects wrong current password", func(t *testing.T) {
		err := user.ChangePassword("wrong123", "newpass123")
		assert.Contains(t, err.Error(), "incorrect")
		assert.True(t, user.VerifyPassword("staff123"))
	})

	t.Run("changes password", func(t *testing.T) {
		require.NoError(t, user.ChangePassword("staff123", "newpass123"))
		assert.True(t, user.VerifyPassword("newpass123"))
		assert.False(t, user.VerifyPassword("staff123"))
	})
}

func TestRole(t *testing.T) {
	assert.True(t, RoleAdmin.CanManage())
	assert.True(t, RoleStaff.CanManage())
	assert.False(t, RoleResident.CanManage())
	assert.False(t, Role("").IsValid())
	assert.Equal(t, "STAFF", RoleStaff.String())
}

func TestUser_Deactivate(t *testing.T) {
	user, err := NewUser("x@y.id", "abcdef12", RoleResident)
	require.NoError(t, err)

	user.Deactivate()
	assert.False(t, user.Active)
	user.Activate()
	assert.True(t, user.Active)
}
