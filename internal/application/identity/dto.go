package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/kitabayar/backend/internal/domain/identity"
	"github.com/kitabayar/backend/internal/domain/resident"
)

// LoginInput contains the input for user login.
// Login is either an email address or a username.
type LoginInput struct {
	Login    string
	Password string
}

// RegisterInput contains the input for resident self-registration
type RegisterInput struct {
	Email       string
	Username    string
	Password    string
	FullName    string
	PhoneNumber string
	HouseNumber string
	RTRW        string
}

// TokenResult contains an issued token pair and the user it belongs to
type TokenResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
	User                  UserInfo
}

// UserInfo contains the user fields returned by the API
type UserInfo struct {
	ID        uuid.UUID
	Email     string
	Username  string
	Role      identity.Role
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ToUserInfo converts a domain user
func ToUserInfo(u *identity.User) UserInfo {
	info := UserInfo{
		ID:        u.ID,
		Email:     u.Email,
		Role:      u.Role,
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	if u.Username != nil {
		info.Username = *u.Username
	}
	return info
}

// CurrentUser is the authenticated user with the resident profile linked to it, if any
type CurrentUser struct {
	User     UserInfo
	Resident *resident.Resident
}

// ChangePasswordInput contains the input for a self-service password change
type ChangePasswordInput struct {
	UserID      uuid.UUID
	OldPassword string
	NewPassword string
}

// CreateUserInput contains the input for an administrator creating a user
type CreateUserInput struct {
	Email    string
	Username string
	Password string
	Role     identity.Role
}

// UpdateUserInput contains the fields an administrator may change.
// Nil pointers leave the field untouched.
type UpdateUserInput struct {
	Email    *string
	Username *string
	Role     *identity.Role
	Active   *bool
}

// UserListFilter contains the list query for users
type UserListFilter struct {
	Keyword  string
	Role     *identity.Role
	Active   *bool
	Page     int
	PageSize int
}
