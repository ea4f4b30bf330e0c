package identity

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kitabayar/backend/internal/domain/identity"
	"github.com/kitabayar/backend/internal/domain/shared"
)

// UserService handles user administration
type UserService struct {
	users  identity.UserRepository
	logger *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(users identity.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

// List returns a page of users
func (s *UserService) List(ctx context.Context, filter UserListFilter) (shared.Paginated[UserInfo], error) {
	users, total, err := s.users.FindAll(ctx, identity.UserFilter{
		Keyword:  filter.Keyword,
		Role:     filter.Role,
		Active:   filter.Active,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	})
	if err != nil {
		return shared.Paginated[UserInfo]{}, err
	}
	items := make([]UserInfo, len(users))
	for i, u := range users {
		items[i] = ToUserInfo(u)
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}

// Get returns one user
func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*UserInfo, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	info := ToUserInfo(user)
	return &info, nil
}

// Create creates a user with any role
func (s *UserService) Create(ctx context.Context, input CreateUserInput) (*UserInfo, error) {
	user, err := identity.NewUser(input.Email, input.Password, input.Role)
	if err != nil {
		return nil, err
	}
	if err := user.SetUsername(input.Username); err != nil {
		return nil, err
	}
	if err := s.checkEmail(ctx, user.Email); err != nil {
		return nil, err
	}
	if err := s.checkUsername(ctx, user.Username); err != nil {
		return nil, err
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User created",
		zap.String("user_id", user.ID.String()),
		zap.String("role", user.Role.String()))
	info := ToUserInfo(user)
	return &info, nil
}

// Update applies the provided fields
func (s *UserService) Update(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*UserInfo, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Email != nil {
		oldEmail := user.Email
		if err := user.SetEmail(*input.Email); err != nil {
			return nil, err
		}
		if user.Email != oldEmail {
			if err := s.checkEmail(ctx, user.Email); err != nil {
				return nil, err
			}
		}
	}
	if input.Username != nil {
		old := user.UsernameOrEmail()
		if err := user.SetUsername(*input.Username); err != nil {
			return nil, err
		}
		if user.Username != nil && *user.Username != old {
			if err := s.checkUsername(ctx, user.Username); err != nil {
				return nil, err
			}
		}
	}
	if input.Role != nil {
		if err := user.SetRole(*input.Role); err != nil {
			return nil, err
		}
	}
	if input.Active != nil {
		if *input.Active {
			user.Activate()
		} else {
			user.Deactivate()
		}
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	info := ToUserInfo(user)
	return &info, nil
}

// ResetPassword sets a new password without checking the old one
func (s *UserService) ResetPassword(ctx context.Context, id uuid.UUID, password string) error {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := user.SetPassword(password); err != nil {
		return err
	}
	return s.users.Update(ctx, user)
}

// Delete removes a user. The linked resident profile goes with it.
func (s *UserService) Delete(ctx context.Context, id uuid.UUID, actorID uuid.UUID) error {
	if id == actorID {
		return shared.NewDomainError("CANNOT_DELETE_SELF", "You cannot delete your own account")
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("User deleted", zap.String("user_id", id.String()))
	return nil
}

func (s *UserService) checkEmail(ctx context.Context, email string) error {
	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		return ErrEmailTaken
	}
	return nil
}

func (s *UserService) checkUsername(ctx context.Context, username *string) error {
	if username == nil {
		return nil
	}
	exists, err := s.users.ExistsByUsername(ctx, *username)
	if err != nil {
		return err
	}
	if exists {
		return ErrUsernameTaken
	}
	return nil
}
