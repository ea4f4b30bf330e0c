package handler

import (
	"time"

	appidentity "github.com/kitabayar/backend/internal/application/identity"
)

// LoginRequest represents the login request body
// @Description Login with an email address or a username
type LoginRequest struct {
	Login    string `json:"login" binding:"required,max=255" example:"admin@kitabayar.id"`
	Password string `json:"password" binding:"required,max=128" example:"secret123"`
}

// RegisterRequest represents resident self-registration
type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email,max=255" example:"warga@example.com"`
	Username    string `json:"username" binding:"omitempty,min=3,max=50" example:"siti"`
	Password    string `json:"password" binding:"required,min=8,max=128"`
	FullName    string `json:"full_name" binding:"required,max=200" example:"Siti Aminah"`
	PhoneNumber string `json:"phone_number" binding:"phone_id" example:"081234567890"`
	HouseNumber string `json:"house_number" binding:"omitempty,max=20" example:"A-12"`
	RTRW        string `json:"rt_rw" binding:"omitempty,max=20" example:"003/005"`
}

// RefreshTokenRequest represents the refresh token request body
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ChangePasswordRequest represents a self-service password change
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=128"`
}

// TokenResponse represents the token pair in responses
type TokenResponse struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type" example:"Bearer"`
}

// UserResponse represents a user account
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username,omitempty"`
	Role      string    `json:"role" example:"RESIDENT"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoginResponse represents the login, register and refresh response
type LoginResponse struct {
	Token TokenResponse `json:"token"`
	User  UserResponse  `json:"user"`
}

// MeResponse is the authenticated user with its resident profile
type MeResponse struct {
	User     UserResponse      `json:"user"`
	Resident *ResidentResponse `json:"resident,omitempty"`
}

func toUserResponse(u appidentity.UserInfo) UserResponse {
	return UserResponse{
		ID:        u.ID.String(),
		Email:     u.Email,
		Username:  u.Username,
		Role:      u.Role.String(),
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toLoginResponse(r *appidentity.TokenResult) LoginResponse {
	return LoginResponse{
		Token: TokenResponse{
			AccessToken:           r.AccessToken,
			RefreshToken:          r.RefreshToken,
			AccessTokenExpiresAt:  r.AccessTokenExpiresAt,
			RefreshTokenExpiresAt: r.RefreshTokenExpiresAt,
			TokenType:             r.TokenType,
		},
		User: toUserResponse(r.User),
	}
}
