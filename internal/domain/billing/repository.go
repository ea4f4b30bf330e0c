package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// CategoryRepository defines persistence for bill categories
type CategoryRepository interface {
	Create(ctx context.Context, c *Category) error
	Update(ctx context.Context, c *Category) error
	// Delete fails with IN_USE while types or periods reference the category
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	FindAll(ctx context.Context, activeOnly bool) ([]*Category, error)
	ExistsByName(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error)
}

// BillTypeRepository defines persistence for bill types
type BillTypeRepository interface {
	Create(ctx context.Context, bt *BillType) error
	Update(ctx context.Context, bt *BillType) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*BillType, error)
	FindByCategory(ctx context.Context, categoryID uuid.UUID) ([]*BillType, error)
	FindAll(ctx context.Context, activeOnly bool) ([]*BillType, error)
	ExistsByName(ctx context.Context, categoryID uuid.UUID, name string, excludeID *uuid.UUID) (bool, error)
}

// PeriodRepository defines persistence for bill periods
type PeriodRepository interface {
	Create(ctx context.Context, p *Period) error
	Update(ctx context.Context, p *Period) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Period, error)
	FindByCategory(ctx context.Context, categoryID uuid.UUID) ([]*Period, error)
	FindAll(ctx context.Context, activeOnly bool) ([]*Period, error)
	ExistsByName(ctx context.Context, categoryID uuid.UUID, name string, excludeID *uuid.UUID) (bool, error)
}

// BillRepository defines persistence for bills
type BillRepository interface {
	// Create fails with ALREADY_EXISTS on a duplicate (resident, bill type, period)
	Create(ctx context.Context, b *Bill) error
	// CreateBatch inserts bills, skipping duplicates; returns the number inserted
	CreateBatch(ctx context.Context, bills []*Bill) (int, error)
	Update(ctx context.Context, b *Bill) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Bill, error)
	FindAll(ctx context.Context, filter BillFilter) ([]*Bill, int64, error)
	Exists(ctx context.Context, residentID, billTypeID uuid.UUID, period string) (bool, error)

	// MarkOverdue flips PENDING bills due before now to OVERDUE and returns the count
	MarkOverdue(ctx context.Context, now time.Time) (int64, error)

	// CountByStatus returns the number of bills per status, optionally scoped to a period
	CountByStatus(ctx context.Context, periodID *uuid.UUID) (map[BillStatus]int64, error)
}

// BillFilter contains filter options for querying bills
type BillFilter struct {
	ResidentID *uuid.UUID
	BillTypeID *uuid.UUID
	PeriodID   *uuid.UUID
	Period     string
	Statuses   []BillStatus
	DueBefore  *time.Time
	DueAfter   *time.Time

	// OrderBy accepts due_date, created_at, amount
	OrderBy  string
	OrderDir string

	// Page 0 means no pagination
	Page     int
	PageSize int
}
