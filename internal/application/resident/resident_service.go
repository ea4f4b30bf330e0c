// Package resident implements the household registry use cases.
package resident

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kitabayar/backend/internal/domain/identity"
	"github.com/kitabayar/backend/internal/domain/resident"
	"github.com/kitabayar/backend/internal/domain/shared"
)

// ErrAlreadyLinked is returned when a user already owns another resident profile
var ErrAlreadyLinked = shared.NewDomainError("ALREADY_LINKED", "User is already linked to another resident")

// ListInput contains the list query for residents
type ListInput struct {
	Search   string
	Active   *bool
	RTRW     string
	Page     int
	PageSize int
}

// Service handles resident registry operations
type Service struct {
	residents resident.Repository
	users     identity.UserRepository
	logger    *zap.Logger
}

// NewService creates a new resident service
func NewService(residents resident.Repository, users identity.UserRepository, logger *zap.Logger) *Service {
	return &Service{residents: residents, users: users, logger: logger}
}

// List returns a page of residents, newest first
func (s *Service) List(ctx context.Context, input ListInput) (shared.Paginated[*resident.Resident], error) {
	items, total, err := s.residents.FindAll(ctx, resident.Filter{
		Search:   input.Search,
		Active:   input.Active,
		RTRW:     input.RTRW,
		Page:     input.Page,
		PageSize: input.PageSize,
	})
	if err != nil {
		return shared.Paginated[*resident.Resident]{}, err
	}
	return shared.NewPaginated(items, total, input.Page, input.PageSize), nil
}

// ListByID serves the legacy listing: every resident newest first, or only
// the one with the given id. An unknown or malformed id yields an empty list.
func (s *Service) ListByID(ctx context.Context, id string) ([]*resident.Resident, error) {
	if id == "" {
		items, _, err := s.residents.FindAll(ctx, resident.Filter{})
		if err != nil {
			return nil, err
		}
		return items, nil
	}

	rid, err := uuid.Parse(id)
	if err != nil {
		return []*resident.Resident{}, nil
	}
	r, err := s.residents.FindByID(ctx, rid)
	if err != nil {
		if shared.IsNotFound(err) {
			return []*resident.Resident{}, nil
		}
		return nil, err
	}
	return []*resident.Resident{r}, nil
}

// Get returns one resident
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*resident.Resident, error) {
	return s.residents.FindByID(ctx, id)
}

// GetByUser returns the resident profile linked to a user
func (s *Service) GetByUser(ctx context.Context, userID uuid.UUID) (*resident.Resident, error) {
	return s.residents.FindByUserID(ctx, userID)
}

// Create registers a resident
func (s *Service) Create(ctx context.Context, p resident.Profile) (*resident.Resident, error) {
	r, err := resident.NewResident(p)
	if err != nil {
		return nil, err
	}
	if err := s.residents.Create(ctx, r); err != nil {
		return nil, err
	}
	s.logger.Info("Resident created", zap.String("resident_id", r.ID.String()))
	return r, nil
}

// Replace overwrites every mutable field of a resident
func (s *Service) Replace(ctx context.Context, id uuid.UUID, p resident.Profile) (*resident.Resident, error) {
	r, err := s.residents.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.Replace(p); err != nil {
		return nil, err
	}
	if err := s.residents.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// Delete removes a resident with its bills and payments
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.residents.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Resident deleted", zap.String("resident_id", id.String()))
	return nil
}

// LinkUser attaches a login account to a resident profile
func (s *Service) LinkUser(ctx context.Context, residentID, userID uuid.UUID) (*resident.Resident, error) {
	r, err := s.residents.FindByID(ctx, residentID)
	if err != nil {
		return nil, err
	}
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	owner, err := s.residents.FindByUserID(ctx, userID)
	switch {
	case err == nil && owner.ID != r.ID:
		return nil, ErrAlreadyLinked
	case err != nil && !shared.IsNotFound(err):
		return nil, err
	}

	if err := r.LinkUser(userID); err != nil {
		return nil, err
	}
	if err := s.residents.Update(ctx, r); err != nil {
		return nil, err
	}
	s.logger.Info("Resident linked to user",
		zap.String("resident_id", r.ID.String()),
		zap.String("user_id", userID.String()))
	return r, nil
}

// UnlinkUser detaches the login account from a resident profile
func (s *Service) UnlinkUser(ctx context.Context, residentID uuid.UUID) (*resident.Resident, error) {
	r, err := s.residents.FindByID(ctx, residentID)
	if err != nil {
		return nil, err
	}
	if r.UserID == nil {
		return r, nil
	}
	r.UnlinkUser()
	if err := s.residents.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}
