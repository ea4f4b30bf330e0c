package billing

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rp(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestPercentage(t *testing.T) {
	t.Run("matches round(100k/N) for every k in 0..N", func(t *testing.T) {
		for n := 1; n <= 12; n++ {
			for k := 0; k <= n; k++ {
				want := int(math.Floor(float64(100*k)/float64(n) + 0.5))
				assert.Equal(t, want, Percentage(k, n), "k=%d n=%d", k, n)
			}
		}
	})

	t.Run("zero installments does not divide by zero", func(t *testing.T) {
		assert.Equal(t, 0, Percentage(0, 0))
		assert.Equal(t, 0, Percentage(3, 0))
		assert.Equal(t, 0, Percentage(1, -2))
	})

	t.Run("rounds half up", func(t *testing.T) {
		assert.Equal(t, 13, Percentage(1, 8)) // 12.5
		assert.Equal(t, 33, Percentage(1, 3)) // 33.33
		assert.Equal(t, 67, Percentage(2, 3)) // 66.67
		assert.Equal(t, 38, Percentage(3, 8)) // 37.5
	})

	t.Run("clamps overpayment to 100", func(t *testing.T) {
		assert.Equal(t, 100, Percentage(5, 4))
	})
}

func TestClassifyCount(t *testing.T) {
	for n := 1; n <= 12; n++ {
		for k := 0; k <= n; k++ {
			got := ClassifyCount(k, n)
			switch {
			case k == n:
				assert.Equal(t, StatusLunas, got, "k=%d n=%d", k, n)
			case k == 0:
				assert.Equal(t, StatusBelumBayar, got, "k=%d n=%d", k, n)
			default:
				assert.Equal(t, StatusSebagian, got, "k=%d n=%d", k, n)
			}
		}
	}
	assert.Equal(t, StatusBelumBayar, ClassifyCount(0, 0))
	assert.Equal(t, StatusBelumBayar, ClassifyCount(2, 0))
}

func TestClassify(t *testing.T) {
	assert.Equal(t, StatusLunas, Classify(100))
	assert.Equal(t, StatusSebagian, Classify(99))
	assert.Equal(t, StatusSebagian, Classify(1))
	assert.Equal(t, StatusBelumBayar, Classify(0))
}

func TestBand(t *testing.T) {
	tests := []struct {
		pct  int
		band HealthBand
		clr  string
	}{
		{100, HealthGood, "green"},
		{80, HealthGood, "green"},
		{79, HealthFair, "yellow"},
		{50, HealthFair, "yellow"},
		{49, HealthAttention, "red"},
		{0, HealthAttention, "red"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d%%", tt.pct), func(t *testing.T) {
			assert.Equal(t, tt.band, Band(tt.pct))
			assert.Equal(t, tt.clr, Band(tt.pct).Color())
		})
	}
}

func TestReconcile(t *testing.T) {
	jan := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)

	t.Run("four installments with two equal payments", func(t *testing.T) {
		payments := []Installment{
			{PaidAt: jan, Amount: rp(25000), Index: 1},
			{PaidAt: jan.AddDate(0, 1, 0), Amount: rp(25000), Index: 2},
		}

		p := Reconcile(4, rp(100000), payments)

		assert.Equal(t, 2, p.CompletedPayments)
		assert.Equal(t, 2, p.RemainingInstallments)
		assert.True(t, p.PaidAmount.Equal(rp(50000)))
		assert.True(t, p.RemainingAmount.Equal(rp(50000)))
		assert.True(t, p.InstallmentAmount.Equal(rp(25000)))
		assert.Equal(t, 50, p.CompletionPercentage)
		assert.Equal(t, 50, p.AmountPercentage)
		assert.Equal(t, StatusSebagian, p.Status)
		assert.Equal(t, HealthFair, Band(p.CompletionPercentage))
		require.NotNil(t, p.LastPaymentAt)
		assert.Equal(t, jan.AddDate(0, 1, 0), *p.LastPaymentAt)
	})

	t.Run("uneven installments report both percentages separately", func(t *testing.T) {
		payments := []Installment{
			{PaidAt: jan, Amount: rp(75000), Index: 1},
		}

		p := Reconcile(4, rp(100000), payments)

		assert.Equal(t, 25, p.CompletionPercentage)
		assert.Equal(t, 75, p.AmountPercentage)
		assert.Equal(t, StatusSebagian, p.Status)
	})

	t.Run("all installments paid is lunas", func(t *testing.T) {
		payments := []Installment{
			{PaidAt: jan, Amount: rp(50000), Index: 1},
			{PaidAt: jan, Amount: rp(50000), Index: 2},
		}

		p := Reconcile(2, rp(100000), payments)

		assert.Equal(t, 100, p.CompletionPercentage)
		assert.Equal(t, StatusLunas, p.Status)
		assert.True(t, p.RemainingAmount.IsZero())
		assert.Equal(t, 0, p.RemainingInstallments)
	})

	t.Run("no payments is belum bayar", func(t *testing.T) {
		p := Reconcile(3, rp(90000), nil)

		assert.Equal(t, 0, p.CompletionPercentage)
		assert.Equal(t, 0, p.AmountPercentage)
		assert.Equal(t, StatusBelumBayar, p.Status)
		assert.Nil(t, p.LastPaymentAt)
		assert.True(t, p.PaidAmount.IsZero())
	})

	t.Run("zero installments guards division", func(t *testing.T) {
		p := Reconcile(0, decimal.Zero, []Installment{{PaidAt: jan, Amount: rp(1000)}})

		assert.Equal(t, 0, p.CompletionPercentage)
		assert.Equal(t, 0, p.AmountPercentage)
		assert.Equal(t, StatusBelumBayar, p.Status)
		assert.True(t, p.InstallmentAmount.IsZero())
	})

	t.Run("does not mutate input", func(t *testing.T) {
		payments := []Installment{{PaidAt: jan, Amount: rp(10000), Index: 1}}
		_ = Reconcile(2, rp(20000), payments)

		assert.True(t, payments[0].Amount.Equal(rp(10000)))
		assert.Len(t, payments, 1)
	})
}

func TestDaysLeftAndClassifyDue(t *testing.T) {
	now := time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)

	assert.Equal(t, 0, DaysLeft(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), now))
	assert.Equal(t, 7, DaysLeft(time.Date(2025, 3, 17, 23, 0, 0, 0, time.UTC), now))
	assert.Equal(t, -1, DaysLeft(time.Date(2025, 3, 9, 23, 59, 0, 0, time.UTC), now))

	tests := []struct {
		name   string
		status BillStatus
		due    time.Time
		want   DueState
	}{
		{"paid wins over dates", BillStatusPaid, now.AddDate(0, 0, -30), DueStatePaid},
		{"cancelled", BillStatusCancelled, now, DueStateCancelled},
		{"persisted overdue", BillStatusOverdue, now.AddDate(0, 0, 30), DueStateOverdue},
		{"past due", BillStatusPending, now.AddDate(0, 0, -1), DueStateOverdue},
		{"due today", BillStatusPending, now, DueStateDueSoon},
		{"due in seven days", BillStatusPending, now.AddDate(0, 0, 7), DueStateDueSoon},
		{"due in eight days", BillStatusPending, now.AddDate(0, 0, 8), DueStateUpcoming},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyDue(tt.status, tt.due, now))
		})
	}

	assert.Equal(t, DueStateUpcoming, ClassifyDueWithin(BillStatusPending, now.AddDate(0, 0, 3), now, 2))
	assert.Equal(t, DueStateDueSoon, ClassifyDueWithin(BillStatusPending, now.AddDate(0, 0, 10), now, 14))

	assert.Equal(t, "Terlambat", DueStateOverdue.Label())
}

func TestSummarize(t *testing.T) {
	items := []Progress{
		Reconcile(2, rp(100000), []Installment{{Amount: rp(50000)}, {Amount: rp(50000)}}),
		Reconcile(2, rp(100000), []Installment{{Amount: rp(50000)}}),
		Reconcile(2, rp(100000), nil),
		Reconcile(2, rp(100000), []Installment{{Amount: rp(50000)}, {Amount: rp(50000)}}),
	}

	s := Summarize(items)

	assert.Equal(t, 4, s.Residents)
	assert.Equal(t, 2, s.Lunas)
	assert.Equal(t, 1, s.Sebagian)
	assert.Equal(t, 1, s.BelumBayar)
	assert.True(t, s.TotalAmount.Equal(rp(400000)))
	assert.True(t, s.CollectedAmount.Equal(rp(250000)))
	assert.Equal(t, 50, s.Percentage)
	assert.Equal(t, 63, s.AmountPercentage)
	assert.Equal(t, HealthFair, s.Health)

	empty := Summarize(nil)
	assert.Equal(t, 0, empty.Percentage)
	assert.Equal(t, HealthAttention, empty.Health)
}

func TestDailyTotals(t *testing.T) {
	day := time.Date(2025, 8, 1, 8, 0, 0, 0, time.UTC)
	payments := []Installment{
		{PaidAt: day.AddDate(0, 0, 2), Amount: rp(20000)},
		{PaidAt: day, Amount: rp(15000)},
		{PaidAt: day.Add(5 * time.Hour), Amount: rp(30000)},
	}

	totals := DailyTotals(payments, time.UTC)

	require.Len(t, totals, 2)
	assert.Equal(t, time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC), totals[0].Date)
	assert.Equal(t, 2, totals[0].Count)
	assert.True(t, totals[0].Amount.Equal(rp(45000)))
	assert.Equal(t, time.Date(2025, 8, 3, 0, 0, 0, 0, time.UTC), totals[1].Date)
	assert.Equal(t, 1, totals[1].Count)
}

func TestProgressKeys(t *testing.T) {
	for _, s := range []ProgressStatus{StatusLunas, StatusSebagian, StatusBelumBayar} {
		got, ok := ParseProgressKey(s.Key())
		assert.True(t, ok)
		assert.Equal(t, s, got)
	}
	_, ok := ParseProgressKey("lunas")
	assert.False(t, ok)
}
