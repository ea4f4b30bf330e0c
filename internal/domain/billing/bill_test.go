package billing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kitabayar/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCategory(t *testing.T) {
	c, err := NewCategory(" Iuran Bulanan ", "Iuran rutin setiap bulan", "#3B82F6", "calendar")
	require.NoError(t, err)
	assert.Equal(t, "Iuran Bulanan", c.Name)
	assert.True(t, c.Active)

	_, err = NewCategory("", "", "", "")
	assert.Error(t, err)

	_, err = NewCategory("17 Agustusan", "", "red", "")
	var de *shared.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "INVALID_COLOR", de.Code)
}

func TestNewBillType(t *testing.T) {
	categoryID := uuid.New()

	bt, err := NewBillType(categoryID, "Iuran Keamanan", "", decimal.NewFromInt(25000))
	require.NoError(t, err)
	assert.Equal(t, categoryID, bt.CategoryID)
	assert.True(t, bt.BaseAmount.Equal(decimal.NewFromInt(25000)))

	_, err = NewBillType(categoryID, "Iuran Keamanan", "", decimal.Zero)
	assert.Contains(t, err.Error(), "greater than zero")

	_, err = NewBillType(uuid.Nil, "Iuran Keamanan", "", decimal.NewFromInt(1))
	assert.Error(t, err)
}

func TestNewPeriod(t *testing.T) {
	categoryID := uuid.New()
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)

	t.Run("defaults installments and due date", func(t *testing.T) {
		p, err := NewPeriod(categoryID, PeriodFields{Name: "Januari 2025", StartDate: start, EndDate: end})

		require.NoError(t, err)
		assert.Equal(t, 1, p.Installments)
		assert.Equal(t, end, p.DueDate)
		assert.True(t, p.Contains(time.Date(2025, 1, 31, 20, 0, 0, 0, time.UTC)))
		assert.False(t, p.Contains(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)))
	})

	t.Run("rejects inverted range", func(t *testing.T) {
		_, err := NewPeriod(categoryID, PeriodFields{Name: "X", StartDate: end, EndDate: start})
		assert.Contains(t, err.Error(), "before start date")
	})

	t.Run("rejects non-positive installments", func(t *testing.T) {
		_, err := NewPeriod(categoryID, PeriodFields{Name: "X", StartDate: start, EndDate: end, Installments: -1})
		assert.Contains(t, err.Error(), "at least 1")
	})

	t.Run("accepts weekly and biweekly installments", func(t *testing.T) {
		for _, n := range []int{13, 26, 52} {
			p, err := NewPeriod(categoryID, PeriodFields{Name: "X", StartDate: start, EndDate: end, Installments: n})
			require.NoError(t, err)
			assert.Equal(t, n, p.Installments)
		}
	})

	t.Run("explicit due date", func(t *testing.T) {
		due := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
		p, err := NewPeriod(categoryID, PeriodFields{Name: "X", StartDate: start, EndDate: end, DueDate: &due, Installments: 4})

		require.NoError(t, err)
		assert.Equal(t, due, p.DueDate)
		assert.Equal(t, 4, p.Installments)
	})
}

func TestBillLifecycle(t *testing.T) {
	due := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	newBill := func(t *testing.T) *Bill {
		b, err := NewBill(uuid.New(), uuid.New(), "2025-01", decimal.NewFromInt(50000), due)
		require.NoError(t, err)
		return b
	}

	t.Run("new bill is pending", func(t *testing.T) {
		b := newBill(t)
		assert.Equal(t, BillStatusPending, b.Status)
		assert.True(t, b.Status.IsOpen())
	})

	t.Run("requires period and positive amount", func(t *testing.T) {
		_, err := NewBill(uuid.New(), uuid.New(), " ", decimal.NewFromInt(1), due)
		assert.Error(t, err)
		_, err = NewBill(uuid.New(), uuid.New(), "2025-01", decimal.NewFromInt(-1), due)
		assert.Error(t, err)
	})

	t.Run("mark overdue only after due date", func(t *testing.T) {
		b := newBill(t)
		assert.False(t, b.MarkOverdue(due.Add(-time.Hour)))
		assert.True(t, b.MarkOverdue(due.Add(time.Hour)))
		assert.Equal(t, BillStatusOverdue, b.Status)
		assert.False(t, b.MarkOverdue(due.Add(2*time.Hour)))
	})

	t.Run("paid bill reopens to overdue after due date", func(t *testing.T) {
		b := newBill(t)
		require.NoError(t, b.MarkPaid())
		b.Reopen(due.AddDate(0, 0, 1))
		assert.Equal(t, BillStatusOverdue, b.Status)
	})

	t.Run("paid bill reopens to pending before due date", func(t *testing.T) {
		b := newBill(t)
		require.NoError(t, b.MarkPaid())
		b.Reopen(due.AddDate(0, 0, -1))
		assert.Equal(t, BillStatusPending, b.Status)
	})

	t.Run("cancelled bill cannot be paid or edited", func(t *testing.T) {
		b := newBill(t)
		require.NoError(t, b.Cancel())
		assert.Error(t, b.MarkPaid())
		assert.Error(t, b.Update(decimal.NewFromInt(1), due, ""))
		assert.Error(t, b.SetStatus(BillStatusPending, due))
	})

	t.Run("paid bill cannot be cancelled", func(t *testing.T) {
		b := newBill(t)
		require.NoError(t, b.MarkPaid())
		assert.Error(t, b.Cancel())
	})

	t.Run("set status rejects unknown", func(t *testing.T) {
		b := newBill(t)
		assert.Error(t, b.SetStatus(BillStatus("LOST"), due))
	})
}

func TestNewBillForPeriod(t *testing.T) {
	categoryID := uuid.New()
	bt, err := NewBillType(categoryID, "Iuran Pokok", "", decimal.NewFromInt(50000))
	require.NoError(t, err)
	p, err := NewPeriod(categoryID, PeriodFields{
		Name:      "Januari 2025",
		StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	residentID := uuid.New()
	b, err := NewBillForPeriod(residentID, bt, p)
	require.NoError(t, err)
	assert.Equal(t, "Januari 2025", b.Period)
	assert.Equal(t, p.ID, *b.PeriodID)
	assert.True(t, b.Amount.Equal(bt.BaseAmount))
	assert.Equal(t, p.DueDate, b.DueDate)
	assert.Equal(t, "Iuran Pokok - Januari 2025", b.Description)

	other, err := NewBillType(uuid.New(), "Dekorasi", "", decimal.NewFromInt(20000))
	require.NoError(t, err)
	_, err = NewBillForPeriod(residentID, other, p)
	assert.Contains(t, err.Error(), "different categories")
}
