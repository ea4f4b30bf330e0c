// Package identity implements login, token lifecycle and user administration.
package identity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kitabayar/backend/internal/domain/identity"
	"github.com/kitabayar/backend/internal/domain/resident"
	"github.com/kitabayar/backend/internal/domain/shared"
	"github.com/kitabayar/backend/internal/infrastructure/auth"
)

var (
	ErrInvalidCredentials = shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email/username or password")
	ErrAccountInactive    = shared.NewDomainError("ACCOUNT_DEACTIVATED", "Account has been deactivated")
	ErrEmailTaken         = shared.NewDomainError("ALREADY_EXISTS", "Email is already registered")
	ErrUsernameTaken      = shared.NewDomainError("ALREADY_EXISTS", "Username is already taken")
)

// AuthService handles authentication operations
type AuthService struct {
	users      identity.UserRepository
	residents  resident.Repository
	tx         shared.Transactor
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	logger     *zap.Logger
	now        func() time.Time
}

// NewAuthService creates a new authentication service
func NewAuthService(
	users identity.UserRepository,
	residents resident.Repository,
	tx shared.Transactor,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		users:      users,
		residents:  residents,
		tx:         tx,
		jwtService: jwtService,
		blacklist:  blacklist,
		logger:     logger,
		now:        time.Now,
	}
}

// Login authenticates by email or username and returns a token pair
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*TokenResult, error) {
	login := strings.TrimSpace(input.Login)

	var (
		user *identity.User
		err  error
	)
	if strings.Contains(login, "@") {
		user, err = s.users.FindByEmail(ctx, login)
	} else {
		user, err = s.users.FindByUsername(ctx, login)
	}
	if err != nil {
		if shared.IsNotFound(err) {
			s.logger.Warn("Login for unknown account", zap.String("login", login))
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.VerifyPassword(input.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("user_id", user.ID.String()))
		return nil, ErrInvalidCredentials
	}
	if !user.Active {
		s.logger.Warn("Login attempt for deactivated account", zap.String("user_id", user.ID.String()))
		return nil, ErrAccountInactive
	}

	result, err := s.issue(user)
	if err != nil {
		return nil, err
	}
	s.logger.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("role", user.Role.String()))
	return result, nil
}

// Register creates a RESIDENT user together with its resident profile
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*TokenResult, error) {
	user, err := identity.NewUser(input.Email, input.Password, identity.RoleResident)
	if err != nil {
		return nil, err
	}
	if err := user.SetUsername(input.Username); err != nil {
		return nil, err
	}
	profile, err := resident.NewResident(resident.Profile{
		FullName:    input.FullName,
		Email:       user.Email,
		PhoneNumber: input.PhoneNumber,
		HouseNumber: input.HouseNumber,
		RTRW:        input.RTRW,
	})
	if err != nil {
		return nil, err
	}
	if err := profile.LinkUser(user.ID); err != nil {
		return nil, err
	}

	err = s.tx.Transaction(ctx, func(ctx context.Context) error {
		if err := s.ensureUnique(ctx, user.Email, user.Username); err != nil {
			return err
		}
		if err := s.users.Create(ctx, user); err != nil {
			return err
		}
		return s.residents.Create(ctx, profile)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Resident registered",
		zap.String("user_id", user.ID.String()),
		zap.String("resident_id", profile.ID.String()))
	return s.issue(user)
}

// Refresh exchanges a refresh token for a new pair, picking up role changes
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenResult, error) {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, tokenError(err)
	}
	userID, err := claims.UserUUID()
	if err != nil {
		return nil, tokenError(auth.ErrInvalidClaims)
	}

	revoked, err := s.blacklist.IsUserRevoked(ctx, claims.UserID, claims.IssuedAtTime())
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, tokenError(auth.ErrTokenBlacklisted)
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, tokenError(auth.ErrInvalidClaims)
		}
		return nil, err
	}
	if !user.Active {
		return nil, ErrAccountInactive
	}

	pair, err := s.jwtService.RefreshTokenPair(refreshToken, auth.SubjectOf(user))
	if err != nil {
		return nil, tokenError(err)
	}
	return toTokenResult(pair, user), nil
}

// Logout revokes the presented access token for the rest of its lifetime
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil || claims.ID == "" {
		return nil
	}
	if err := s.blacklist.Revoke(ctx, claims.ID, claims.RemainingTTL(s.now())); err != nil {
		return err
	}
	s.logger.Info("User logged out", zap.String("user_id", claims.UserID))
	return nil
}

// Me returns the authenticated user and the resident profile linked to it
func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*CurrentUser, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := &CurrentUser{User: ToUserInfo(user)}
	r, err := s.residents.FindByUserID(ctx, userID)
	switch {
	case err == nil:
		out.Resident = r
	case !shared.IsNotFound(err):
		return nil, err
	}
	return out, nil
}

// ChangePassword changes the caller's password and revokes every token issued before it
func (s *AuthService) ChangePassword(ctx context.Context, input ChangePasswordInput) error {
	user, err := s.users.FindByID(ctx, input.UserID)
	if err != nil {
		return err
	}
	if err := user.ChangePassword(input.OldPassword, input.NewPassword); err != nil {
		return err
	}
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}
	if err := s.blacklist.RevokeUser(ctx, user.ID.String(), s.now(), s.jwtService.RefreshTokenExpiration()); err != nil {
		s.logger.Error("Failed to revoke tokens after password change", zap.Error(err))
	}
	return nil
}

func (s *AuthService) ensureUnique(ctx context.Context, email string, username *string) error {
	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		return ErrEmailTaken
	}
	if username == nil {
		return nil
	}
	exists, err = s.users.ExistsByUsername(ctx, *username)
	if err != nil {
		return err
	}
	if exists {
		return ErrUsernameTaken
	}
	return nil
}

func (s *AuthService) issue(user *identity.User) (*TokenResult, error) {
	pair, err := s.jwtService.GenerateTokenPair(auth.SubjectOf(user))
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, err
	}
	return toTokenResult(pair, user), nil
}

func toTokenResult(pair *auth.TokenPair, user *identity.User) *TokenResult {
	return &TokenResult{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
		User:                  ToUserInfo(user),
	}
}

func tokenError(err error) error {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return shared.NewDomainError("TOKEN_EXPIRED", "Refresh token has expired")
	case errors.Is(err, auth.ErrMaxRefreshExceeded):
		return shared.NewDomainError("TOKEN_MAX_REFRESH", "Maximum token refresh count exceeded. Please log in again")
	case errors.Is(err, auth.ErrTokenBlacklisted):
		return shared.NewDomainError("TOKEN_REVOKED", "Token has been revoked")
	default:
		return shared.NewDomainError("TOKEN_INVALID", "Invalid refresh token")
	}
}
