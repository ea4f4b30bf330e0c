package payment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Record is a payment joined with the names shown in listings
type Record struct {
	*Payment
	ResidentName string
	HouseNumber  string
	BillTypeName string
	Period       string
}

// Stats summarises payments matching a filter
type Stats struct {
	CompletedAmount decimal.Decimal
	CompletedCount  int64
	ByMethod        map[Method]int64
	ByStatus        map[Status]int64
}

// Repository defines the interface for payment persistence
type Repository interface {
	Create(ctx context.Context, p *Payment) error
	Update(ctx context.Context, p *Payment) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)
	FindByGatewayOrderID(ctx context.Context, orderID string) (*Payment, error)

	// FindAll returns joined records ordered by paid_at/created_at desc
	FindAll(ctx context.Context, filter Filter) ([]*Record, int64, error)

	// FindCompletedByBills returns completed payments for the given bills ordered by paid_at
	FindCompletedByBills(ctx context.Context, billIDs []uuid.UUID) ([]*Payment, error)

	// SumCompleted returns the total of completed payments for a bill
	SumCompleted(ctx context.Context, billID uuid.UUID) (decimal.Decimal, error)

	// LastReceipt returns the highest receipt number starting with prefix, or "" when none
	LastReceipt(ctx context.Context, prefix string) (string, error)

	Stats(ctx context.Context, filter Filter) (*Stats, error)
}

// Filter contains filter options for querying payments
type Filter struct {
	// Search matches resident name, bill type name or receipt number
	Search     string
	ResidentID *uuid.UUID
	BillID     *uuid.UUID
	PeriodID   *uuid.UUID
	Status     *Status
	Method     *Method
	PaidFrom   *time.Time
	PaidTo     *time.Time

	// Page 0 means no pagination
	Page     int
	PageSize int
}
