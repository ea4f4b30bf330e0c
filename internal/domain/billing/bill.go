package billing

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kitabayar/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// BillStatus is the persisted state of a bill
type BillStatus string

const (
	BillStatusPending   BillStatus = "PENDING"
	BillStatusPaid      BillStatus = "PAID"
	BillStatusOverdue   BillStatus = "OVERDUE"
	BillStatusCancelled BillStatus = "CANCELLED"
)

// IsValid returns true if the status is a known value
func (s BillStatus) IsValid() bool {
	switch s {
	case BillStatusPending, BillStatusPaid, BillStatusOverdue, BillStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation
func (s BillStatus) String() string {
	return string(s)
}

// IsOpen returns true while the bill still expects payment
func (s BillStatus) IsOpen() bool {
	return s == BillStatusPending || s == BillStatusOverdue
}

// Bill is a charge issued to one resident for one bill type and period.
// (ResidentID, BillTypeID, Period) is unique.
type Bill struct {
	shared.BaseEntity
	ResidentID  uuid.UUID
	BillTypeID  uuid.UUID
	PeriodID    *uuid.UUID
	Period      string
	Amount      decimal.Decimal
	DueDate     time.Time
	Status      BillStatus
	Description string
}

// NewBill creates a pending bill
func NewBill(residentID, billTypeID uuid.UUID, period string, amount decimal.Decimal, dueDate time.Time) (*Bill, error) {
	if residentID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_RESIDENT", "Resident ID cannot be empty")
	}
	if billTypeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BILL_TYPE", "Bill type ID cannot be empty")
	}
	period = strings.TrimSpace(period)
	if period == "" {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Period cannot be empty")
	}
	if err := validateAmount(amount); err != nil {
		return nil, err
	}
	if dueDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DUE_DATE", "Due date is required")
	}

	return &Bill{
		BaseEntity: shared.NewBaseEntity(),
		ResidentID: residentID,
		BillTypeID: billTypeID,
		Period:     period,
		Amount:     amount.Round(2),
		DueDate:    dueDate,
		Status:     BillStatusPending,
	}, nil
}

// NewBillForPeriod issues a bill for a configured period using the type's base amount
func NewBillForPeriod(residentID uuid.UUID, billType *BillType, period *Period) (*Bill, error) {
	if billType.CategoryID != period.CategoryID {
		return nil, shared.NewDomainError("CATEGORY_MISMATCH", "Bill type and period belong to different categories")
	}
	b, err := NewBill(residentID, billType.ID, period.Name, billType.BaseAmount, period.DueDate)
	if err != nil {
		return nil, err
	}
	pid := period.ID
	b.PeriodID = &pid
	b.Description = billType.Name + " - " + period.Name
	return b, nil
}

// Update changes amount, due date and description of an open bill
func (b *Bill) Update(amount decimal.Decimal, dueDate time.Time, description string) error {
	if b.Status == BillStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Cancelled bills cannot be modified")
	}
	if err := validateAmount(amount); err != nil {
		return err
	}
	if dueDate.IsZero() {
		return shared.NewDomainError("INVALID_DUE_DATE", "Due date is required")
	}
	b.Amount = amount.Round(2)
	b.DueDate = dueDate
	b.Description = strings.TrimSpace(description)
	b.Touch()
	return nil
}

// MarkPaid settles the bill
func (b *Bill) MarkPaid() error {
	if b.Status == BillStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Cancelled bills cannot be paid")
	}
	b.Status = BillStatusPaid
	b.Touch()
	return nil
}

// Reopen returns a paid bill to PENDING or OVERDUE after a refund or failed payment
func (b *Bill) Reopen(now time.Time) {
	if b.Status != BillStatusPaid {
		return
	}
	b.Status = BillStatusPending
	if now.After(b.DueDate) {
		b.Status = BillStatusOverdue
	}
	b.Touch()
}

// MarkOverdue flips a pending bill past its due date. Returns true if it changed.
func (b *Bill) MarkOverdue(now time.Time) bool {
	if b.Status != BillStatusPending || !now.After(b.DueDate) {
		return false
	}
	b.Status = BillStatusOverdue
	b.Touch()
	return true
}

// Cancel voids an unpaid bill
func (b *Bill) Cancel() error {
	if b.Status == BillStatusPaid {
		return shared.NewDomainError("INVALID_STATE", "Paid bills cannot be cancelled")
	}
	b.Status = BillStatusCancelled
	b.Touch()
	return nil
}

// SetStatus applies an explicit status change requested by an administrator
func (b *Bill) SetStatus(status BillStatus, now time.Time) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown bill status")
	}
	switch status {
	case BillStatusPaid:
		return b.MarkPaid()
	case BillStatusCancelled:
		return b.Cancel()
	case BillStatusOverdue:
		if b.Status == BillStatusCancelled {
			return shared.NewDomainError("INVALID_STATE", "Cancelled bills cannot be modified")
		}
		b.Status = BillStatusOverdue
	case BillStatusPending:
		if b.Status == BillStatusCancelled {
			return shared.NewDomainError("INVALID_STATE", "Cancelled bills cannot be modified")
		}
		b.Status = BillStatusPending
	}
	b.Touch()
	return nil
}
