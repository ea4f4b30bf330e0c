// Package dashboard assembles the read models behind the admin and resident
// dashboards: collection statistics, period progress and the payments calendar.
package dashboard

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kitabayar/backend/internal/domain/billing"
	"github.com/kitabayar/backend/internal/domain/payment"
)

// AdminStats is the admin home page
type AdminStats struct {
	TotalResidents   int64           `json:"total_residents"`
	UnpaidBills      int64           `json:"unpaid_bills"`
	OverdueBills     int64           `json:"overdue_bills"`
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
	MonthRevenue     decimal.Decimal `json:"month_revenue"`
	MonthPayments    int64           `json:"month_payments"`
	RecentPayments   []RecentPayment `json:"recent_payments"`
	UpcomingBills    []UpcomingBill  `json:"upcoming_bills"`
	GeneratedAt      time.Time       `json:"generated_at"`
	CollectionHealth HealthView      `json:"collection_health"`
}

// HealthView renders a health band
type HealthView struct {
	Percentage int                `json:"percentage"`
	Band       billing.HealthBand `json:"band"`
	Color      string             `json:"color"`
}

func healthOf(pct int) HealthView {
	band := billing.Band(pct)
	return HealthView{Percentage: pct, Band: band, Color: band.Color()}
}

// RecentPayment is one row of the recent payments list
type RecentPayment struct {
	ID            uuid.UUID       `json:"id"`
	ResidentName  string          `json:"resident_name"`
	HouseNumber   string          `json:"house_number"`
	BillTypeName  string          `json:"bill_type_name"`
	Period        string          `json:"period"`
	Amount        decimal.Decimal `json:"amount"`
	Method        payment.Method  `json:"method"`
	ReceiptNumber string          `json:"receipt_number"`
	PaidAt        *time.Time      `json:"paid_at"`
}

// UpcomingBill is one row of the upcoming due bills list
type UpcomingBill struct {
	ID           uuid.UUID          `json:"id"`
	ResidentName string             `json:"resident_name"`
	HouseNumber  string             `json:"house_number"`
	BillTypeName string             `json:"bill_type_name"`
	Period       string             `json:"period"`
	Amount       decimal.Decimal    `json:"amount"`
	DueDate      time.Time          `json:"due_date"`
	Status       billing.BillStatus `json:"status"`
	DaysLeft     int                `json:"days_left"`
}

// PeriodOverview is the collection progress of one period
type PeriodOverview struct {
	PeriodID     uuid.UUID `json:"period_id"`
	Name         string    `json:"name"`
	CategoryID   uuid.UUID `json:"category_id"`
	DueDate      time.Time `json:"due_date"`
	Installments int       `json:"installments"`
	TotalBills   int64     `json:"total_bills"`
	PaidBills    int64     `json:"paid_bills"`
	HealthView
}

// PeriodDetailInput filters the per-resident rows of a period
type PeriodDetailInput struct {
	// Status is LUNAS, SEBAGIAN or BELUM_BAYAR; empty keeps every row
	Status string
	// Search matches resident name or house number, case-insensitively
	Search string
}

// ResidentProgress is one resident's row in a period
type ResidentProgress struct {
	ResidentID            uuid.UUID              `json:"resident_id"`
	FullName              string                 `json:"full_name"`
	HouseNumber           string                 `json:"house_number"`
	Installments          int                    `json:"installments"`
	CompletedPayments     int                    `json:"completed_payments"`
	RemainingInstallments int                    `json:"remaining_installments"`
	TotalAmount           decimal.Decimal        `json:"total_amount"`
	PaidAmount            decimal.Decimal        `json:"paid_amount"`
	RemainingAmount       decimal.Decimal        `json:"remaining_amount"`
	InstallmentAmount     decimal.Decimal        `json:"installment_amount"`
	CompletionPercentage  int                    `json:"completion_percentage"`
	AmountPercentage      int                    `json:"amount_percentage"`
	Status                billing.ProgressStatus `json:"status"`
	StatusKey             string                 `json:"status_key"`
	LastPaymentAt         *time.Time             `json:"last_payment_at"`
}

// TierCounts counts residents per progress tier
type TierCounts struct {
	All        int `json:"all"`
	Lunas      int `json:"lunas"`
	Sebagian   int `json:"sebagian"`
	BelumBayar int `json:"belum_bayar"`
}

// PeriodSummary aggregates a period
type PeriodSummary struct {
	TierCounts
	TotalAmount      decimal.Decimal `json:"total_amount"`
	CollectedAmount  decimal.Decimal `json:"collected_amount"`
	AmountPercentage int             `json:"amount_percentage"`
	HealthView
}

// CalendarEntry is one payment on a calendar day
type CalendarEntry struct {
	PaymentID     uuid.UUID       `json:"payment_id"`
	ResidentName  string          `json:"resident_name"`
	Amount        decimal.Decimal `json:"amount"`
	Method        payment.Method  `json:"method"`
	ReceiptNumber string          `json:"receipt_number"`
	PaidAt        time.Time       `json:"paid_at"`
}

// CalendarDay is one day of the payments calendar
type CalendarDay struct {
	Date     string          `json:"date"`
	Amount   decimal.Decimal `json:"amount"`
	Count    int             `json:"count"`
	Payments []CalendarEntry `json:"payments"`
}

// PeriodDetail is the period progress page
type PeriodDetail struct {
	Period   *billing.Period    `json:"-"`
	Summary  PeriodSummary      `json:"summary"`
	Rows     []ResidentProgress `json:"rows"`
	Calendar []CalendarDay      `json:"calendar"`
}

// UnpaidBill is an open bill on the resident dashboard
type UnpaidBill struct {
	ID              uuid.UUID          `json:"id"`
	BillTypeName    string             `json:"bill_type_name"`
	Period          string             `json:"period"`
	Amount          decimal.Decimal    `json:"amount"`
	PaidAmount      decimal.Decimal    `json:"paid_amount"`
	RemainingAmount decimal.Decimal    `json:"remaining_amount"`
	DueDate         time.Time          `json:"due_date"`
	Status          billing.BillStatus `json:"status"`
	DueState        billing.DueState   `json:"due_state"`
	DueLabel        string             `json:"due_label"`
	DaysLeft        int                `json:"days_left"`
}

// ResidentTotals sums a resident's bills
type ResidentTotals struct {
	TotalBilled      decimal.Decimal `json:"total_billed"`
	TotalPaid        decimal.Decimal `json:"total_paid"`
	TotalOutstanding decimal.Decimal `json:"total_outstanding"`
	PaidBills        int             `json:"paid_bills"`
	UnpaidBills      int             `json:"unpaid_bills"`
	OverdueBills     int             `json:"overdue_bills"`
	DueSoonBills     int             `json:"due_soon_bills"`
}

// ResidentOverview is the resident self-service dashboard
type ResidentOverview struct {
	ResidentID  uuid.UUID       `json:"resident_id"`
	FullName    string          `json:"full_name"`
	HouseNumber string          `json:"house_number"`
	UnpaidBills []UnpaidBill    `json:"unpaid_bills"`
	History     []RecentPayment `json:"history"`
	Totals      ResidentTotals  `json:"totals"`
}
