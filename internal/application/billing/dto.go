// Package billing implements bill configuration and bill issuing use cases.
package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kitabayar/backend/internal/domain/billing"
)

// CategoryInput carries the fields of a category create or update
type CategoryInput struct {
	Name        string
	Description string
	Color       string
	Icon        string
	Active      *bool
}

// BillTypeInput carries the fields of a bill type create or update
type BillTypeInput struct {
	CategoryID  uuid.UUID
	Name        string
	Description string
	BaseAmount  decimal.Decimal
	Active      *bool
}

// PeriodInput carries the fields of a period create or update
type PeriodInput struct {
	CategoryID   uuid.UUID
	Name         string
	Description  string
	StartDate    time.Time
	EndDate      time.Time
	DueDate      *time.Time
	Installments int
	Active       *bool
}

func (in PeriodInput) fields() billing.PeriodFields {
	return billing.PeriodFields{
		Name:         in.Name,
		Description:  in.Description,
		StartDate:    in.StartDate,
		EndDate:      in.EndDate,
		DueDate:      in.DueDate,
		Installments: in.Installments,
	}
}

// CreateBillInput creates a single bill
type CreateBillInput struct {
	ResidentID  uuid.UUID
	BillTypeID  uuid.UUID
	PeriodID    *uuid.UUID
	Period      string
	Amount      *decimal.Decimal
	DueDate     *time.Time
	Description string
}

// UpdateBillInput changes a bill. Nil fields are left untouched.
type UpdateBillInput struct {
	Amount      *decimal.Decimal
	DueDate     *time.Time
	Description *string
	Status      *billing.BillStatus
}

// BillListInput filters the bill listing
type BillListInput struct {
	ResidentID *uuid.UUID
	BillTypeID *uuid.UUID
	PeriodID   *uuid.UUID
	Statuses   []billing.BillStatus
	DueBefore  *time.Time
	DueAfter   *time.Time
	OrderBy    string
	OrderDir   string
	Page       int
	PageSize   int
}

// BillView is a bill with the names shown next to it
type BillView struct {
	*billing.Bill
	ResidentName string
	HouseNumber  string
	BillTypeName string
	CategoryID   uuid.UUID
	PaidAmount   decimal.Decimal
}

// IssueInput asks for one bill per active resident for a period
type IssueInput struct {
	PeriodID   uuid.UUID
	BillTypeID uuid.UUID
}

// IssueResult reports a batch issue
type IssueResult struct {
	PeriodID   uuid.UUID `json:"period_id"`
	BillTypeID uuid.UUID `json:"bill_type_id"`
	Created    int       `json:"created"`
	Skipped    int       `json:"skipped"`
}
