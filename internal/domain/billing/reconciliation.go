package billing

import (
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// ProgressStatus is the payment tier of a resident for a bill or period
type ProgressStatus string

const (
	StatusLunas      ProgressStatus = "Lunas"
	StatusSebagian   ProgressStatus = "Sebagian"
	StatusBelumBayar ProgressStatus = "Belum Bayar"
)

// Key returns the filter key used by the API (LUNAS, SEBAGIAN, BELUM_BAYAR)
func (s ProgressStatus) Key() string {
	switch s {
	case StatusLunas:
		return "LUNAS"
	case StatusSebagian:
		return "SEBAGIAN"
	default:
		return "BELUM_BAYAR"
	}
}

// ParseProgressKey converts a filter key back to a status
func ParseProgressKey(key string) (ProgressStatus, bool) {
	switch key {
	case "LUNAS":
		return StatusLunas, true
	case "SEBAGIAN":
		return StatusSebagian, true
	case "BELUM_BAYAR":
		return StatusBelumBayar, true
	}
	return "", false
}

// HealthBand grades an aggregate collection percentage
type HealthBand string

const (
	HealthGood      HealthBand = "Baik"
	HealthFair      HealthBand = "Sedang"
	HealthAttention HealthBand = "Perlu Perhatian"
)

// Band thresholds are inclusive lower bounds
const (
	goodThreshold = 80
	fairThreshold = 50
)

// Color returns the dashboard color for the band
func (h HealthBand) Color() string {
	switch h {
	case HealthGood:
		return "green"
	case HealthFair:
		return "yellow"
	default:
		return "red"
	}
}

// DueSoonDays is the window in which an unpaid bill is flagged as urgent
const DueSoonDays = 7

// DueState classifies a bill against its due date
type DueState string

const (
	DueStatePaid      DueState = "PAID"
	DueStateCancelled DueState = "CANCELLED"
	DueStateOverdue   DueState = "OVERDUE"
	DueStateDueSoon   DueState = "DUE_SOON"
	DueStateUpcoming  DueState = "UPCOMING"
)

// Label returns the Indonesian label shown to residents
func (d DueState) Label() string {
	switch d {
	case DueStatePaid:
		return "Lunas"
	case DueStateCancelled:
		return "Dibatalkan"
	case DueStateOverdue:
		return "Terlambat"
	case DueStateDueSoon:
		return "Segera Jatuh Tempo"
	default:
		return "Belum Jatuh Tempo"
	}
}

// Installment is one recorded payment toward a bill or period
type Installment struct {
	PaidAt time.Time
	Amount decimal.Decimal
	Index  int
}

// Progress is the read-only reconciliation of a resident's payments
type Progress struct {
	Installments          int
	CompletedPayments     int
	RemainingInstallments int
	TotalAmount           decimal.Decimal
	PaidAmount            decimal.Decimal
	RemainingAmount       decimal.Decimal
	InstallmentAmount     decimal.Decimal
	CompletionPercentage  int
	AmountPercentage      int
	Status                ProgressStatus
	LastPaymentAt         *time.Time
}

// Reconcile derives progress from the required installment count, the total
// amount due and the completed payments. It never mutates its inputs.
func Reconcile(installments int, total decimal.Decimal, payments []Installment) Progress {
	p := Progress{
		Installments:      installments,
		CompletedPayments: len(payments),
		TotalAmount:       total,
		PaidAmount:        decimal.Zero,
	}

	for i := range payments {
		p.PaidAmount = p.PaidAmount.Add(payments[i].Amount)
		if p.LastPaymentAt == nil || payments[i].PaidAt.After(*p.LastPaymentAt) {
			at := payments[i].PaidAt
			p.LastPaymentAt = &at
		}
	}

	p.RemainingAmount = decimal.Max(total.Sub(p.PaidAmount), decimal.Zero)
	if installments > p.CompletedPayments {
		p.RemainingInstallments = installments - p.CompletedPayments
	}
	if installments > 0 {
		p.InstallmentAmount = total.Div(decimal.NewFromInt(int64(installments))).Round(2)
	}

	p.CompletionPercentage = Percentage(p.CompletedPayments, installments)
	p.AmountPercentage = AmountPercentage(p.PaidAmount, total)
	p.Status = ClassifyCount(p.CompletedPayments, installments)
	return p
}

// Percentage returns round(part / whole * 100) clamped to [0, 100].
// A non-positive whole yields 0.
func Percentage(part, whole int) int {
	if whole <= 0 || part <= 0 {
		return 0
	}
	return ratioPercent(decimal.NewFromInt(int64(part)), decimal.NewFromInt(int64(whole)))
}

// AmountPercentage returns round(paid / total * 100) clamped to [0, 100].
// A non-positive total yields 0.
func AmountPercentage(paid, total decimal.Decimal) int {
	if !total.IsPositive() || !paid.IsPositive() {
		return 0
	}
	return ratioPercent(paid, total)
}

func ratioPercent(part, whole decimal.Decimal) int {
	pct := part.Mul(decimal.NewFromInt(100)).Div(whole).Round(0).IntPart()
	if pct > 100 {
		return 100
	}
	return int(pct)
}

// ClassifyCount classifies k completed payments out of n required.
// n <= 0 is treated as unpaid.
func ClassifyCount(k, n int) ProgressStatus {
	switch {
	case n <= 0 || k <= 0:
		return StatusBelumBayar
	case k >= n:
		return StatusLunas
	default:
		return StatusSebagian
	}
}

// Classify maps a percentage to a status tier
func Classify(percentage int) ProgressStatus {
	switch {
	case percentage >= 100:
		return StatusLunas
	case percentage > 0:
		return StatusSebagian
	default:
		return StatusBelumBayar
	}
}

// Band maps an aggregate percentage to its health band
func Band(percentage int) HealthBand {
	switch {
	case percentage >= goodThreshold:
		return HealthGood
	case percentage >= fairThreshold:
		return HealthFair
	default:
		return HealthAttention
	}
}

// DaysLeft returns the number of calendar days from now until due,
// negative when the due date has passed.
func DaysLeft(due, now time.Time) int {
	d := truncateDay(due.In(now.Location()))
	n := truncateDay(now)
	return int(math.Round(d.Sub(n).Hours() / 24))
}

// ClassifyDue classifies a bill against its due date at time now
func ClassifyDue(status BillStatus, due, now time.Time) DueState {
	return ClassifyDueWithin(status, due, now, DueSoonDays)
}

// ClassifyDueWithin is ClassifyDue with a custom due-soon window in days
func ClassifyDueWithin(status BillStatus, due, now time.Time, window int) DueState {
	switch status {
	case BillStatusPaid:
		return DueStatePaid
	case BillStatusCancelled:
		return DueStateCancelled
	case BillStatusOverdue:
		return DueStateOverdue
	}
	days := DaysLeft(due, now)
	switch {
	case days < 0:
		return DueStateOverdue
	case days <= window:
		return DueStateDueSoon
	default:
		return DueStateUpcoming
	}
}

// Summary aggregates the progress of every resident in a period
type Summary struct {
	Residents        int
	Lunas            int
	Sebagian         int
	BelumBayar       int
	TotalAmount      decimal.Decimal
	CollectedAmount  decimal.Decimal
	Percentage       int // share of residents fully paid
	AmountPercentage int
	Health           HealthBand
}

// Summarize aggregates per-resident progress
func Summarize(items []Progress) Summary {
	s := Summary{
		Residents:       len(items),
		TotalAmount:     decimal.Zero,
		CollectedAmount: decimal.Zero,
	}
	for i := range items {
		switch items[i].Status {
		case StatusLunas:
			s.Lunas++
		case StatusSebagian:
			s.Sebagian++
		default:
			s.BelumBayar++
		}
		s.TotalAmount = s.TotalAmount.Add(items[i].TotalAmount)
		s.CollectedAmount = s.CollectedAmount.Add(items[i].PaidAmount)
	}
	s.Percentage = Percentage(s.Lunas, s.Residents)
	s.AmountPercentage = AmountPercentage(s.CollectedAmount, s.TotalAmount)
	s.Health = Band(s.Percentage)
	return s
}

// DailyTotal is one day of the payments calendar
type DailyTotal struct {
	Date   time.Time
	Amount decimal.Decimal
	Count  int
}

// DailyTotals groups payments by calendar day in loc, ordered by date
func DailyTotals(payments []Installment, loc *time.Location) []DailyTotal {
	if loc == nil {
		loc = time.Local
	}
	byDay := make(map[time.Time]*DailyTotal)
	for i := range payments {
		day := truncateDay(payments[i].PaidAt.In(loc))
		dt, ok := byDay[day]
		if !ok {
			dt = &DailyTotal{Date: day, Amount: decimal.Zero}
			byDay[day] = dt
		}
		dt.Amount = dt.Amount.Add(payments[i].Amount)
		dt.Count++
	}

	out := make([]DailyTotal, 0, len(byDay))
	for _, dt := range byDay {
		out = append(out, *dt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
