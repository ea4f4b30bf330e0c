package resident

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for resident persistence
type Repository interface {
	Create(ctx context.Context, r *Resident) error

	// Update replaces all columns of an existing resident.
	// Returns shared.ErrNotFound when no row matches.
	Update(ctx context.Context, r *Resident) error

	// Delete removes the resident row; bills and payments cascade.
	Delete(ctx context.Context, id uuid.UUID) error

	FindByID(ctx context.Context, id uuid.UUID) (*Resident, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*Resident, error)

	// FindAll returns residents ordered by created_at desc unless the filter says otherwise
	FindAll(ctx context.Context, filter Filter) ([]*Resident, int64, error)

	// FindActive returns every active resident, used for batch bill issuing
	FindActive(ctx context.Context) ([]*Resident, error)

	Count(ctx context.Context, activeOnly bool) (int64, error)
}

// Filter contains filter options for querying residents
type Filter struct {
	// Search matches full name, house number, RT/RW or phone
	Search string
	Active *bool
	RTRW   string

	// Page 0 means no pagination
	Page     int
	PageSize int
}
