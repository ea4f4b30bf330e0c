// Package payment implements payment recording, gateway checkout and
// gateway notification handling.
package payment

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kitabayar/backend/internal/domain/identity"
	"github.com/kitabayar/backend/internal/domain/payment"
)

// RecordInput is a payment taken by staff at the counter or by transfer
type RecordInput struct {
	BillID           uuid.UUID
	Amount           *decimal.Decimal // defaults to the amount still owed
	Method           payment.Method
	Status           payment.Status // defaults to COMPLETED
	Notes            string
	InstallmentIndex *int
	PaidAt           *time.Time
}

// ListInput filters the payment listing
type ListInput struct {
	Search     string
	ResidentID *uuid.UUID
	BillID     *uuid.UUID
	PeriodID   *uuid.UUID
	Status     *payment.Status
	Method     *payment.Method
	PaidFrom   *time.Time
	PaidTo     *time.Time
	Page       int
	PageSize   int
}

func (in ListInput) filter() payment.Filter {
	return payment.Filter{
		Search:     in.Search,
		ResidentID: in.ResidentID,
		BillID:     in.BillID,
		PeriodID:   in.PeriodID,
		Status:     in.Status,
		Method:     in.Method,
		PaidFrom:   in.PaidFrom,
		PaidTo:     in.PaidTo,
		Page:       in.Page,
		PageSize:   in.PageSize,
	}
}

// MethodCount is one row of the per-method breakdown
type MethodCount struct {
	Method payment.Method `json:"method"`
	Label  string         `json:"label"`
	Count  int64          `json:"count"`
}

// Summary is the payments page header
type Summary struct {
	TotalAmount    decimal.Decimal          `json:"total_amount"`
	CompletedCount int64                    `json:"completed_count"`
	TodayCount     int64                    `json:"today_count"`
	ByMethod       []MethodCount            `json:"by_method"`
	ByStatus       map[payment.Status]int64 `json:"by_status"`
}

// Actor is the authenticated caller of a checkout
type Actor struct {
	UserID uuid.UUID
	Role   identity.Role
}

// CheckoutInput opens a gateway payment for a bill
type CheckoutInput struct {
	BillID uuid.UUID
	Amount *decimal.Decimal // defaults to the amount still owed
	Method payment.Method
	Actor  Actor
}

// CheckoutResult carries the pending payment and where to send the payer
type CheckoutResult struct {
	Payment     *payment.Payment
	OrderID     string
	Token       string
	RedirectURL string
}

// NotificationResult reports what a gateway callback did
type NotificationResult struct {
	OrderID   string         `json:"order_id"`
	Status    payment.Status `json:"status"`
	Changed   bool           `json:"changed"`
	Duplicate bool           `json:"duplicate"`
}
