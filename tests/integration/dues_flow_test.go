package integration

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appbilling "github.com/kitabayar/backend/internal/application/billing"
	"github.com/kitabayar/backend/internal/application/dashboard"
	"github.com/kitabayar/backend/internal/domain/identity"
	"github.com/kitabayar/backend/internal/interfaces/http/handler"
	"github.com/kitabayar/backend/tests/testutil"
)

func TestDuesFlow(t *testing.T) {
	ts := NewTestServer(t)
	ts.DB.CleanTables()

	ts.CreateUser(t, "admin@kitabayar.local", identity.RoleAdmin)
	admin := ts.Login(t, "admin@kitabayar.local")

	// Billing configuration
	w := ts.Do(t, http.MethodPost, "/api/v1/bill-categories", handler.CategoryRequest{
		Name: "Iuran Bulanan", Color: "#3B82F6",
	}, admin)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	category := testutil.DecodeData[handler.CategoryResponse](t, w)

	w = ts.Do(t, http.MethodPost, "/api/v1/bill-types", handler.BillTypeRequest{
		CategoryID: category.ID, Name: "Iuran Kebersihan", BaseAmount: decimal.NewFromInt(50000),
	}, admin)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	billType := testutil.DecodeData[handler.BillTypeResponse](t, w)

	start := time.Now().UTC().AddDate(0, -1, 0)
	w = ts.Do(t, http.MethodPost, "/api/v1/bill-periods", handler.PeriodRequest{
		CategoryID:   category.ID,
		Name:         "Bulan Lalu",
		StartDate:    start.Format(time.DateOnly),
		EndDate:      start.AddDate(0, 0, 20).Format(time.DateOnly),
		DueDate:      start.AddDate(0, 0, 10).Format(time.DateOnly),
		Installments: 2,
	}, admin)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	period := testutil.DecodeData[handler.PeriodResponse](t, w)
	assert.Equal(t, 2, period.Installments)

	// A resident signs up
	w = ts.Do(t, http.MethodPost, "/api/v1/auth/register", handler.RegisterRequest{
		Email:       "siti@example.com",
		Password:    testPassword,
		FullName:    "Siti Aminah",
		PhoneNumber: "081234567890",
		HouseNumber: "A-12",
		RTRW:        "003/007",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	residentToken := ts.Login(t, "siti@example.com")

	t.Run("residents cannot manage bills", func(t *testing.T) {
		w := ts.Do(t, http.MethodGet, "/api/v1/bills", nil, residentToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	// Issue the period, twice
	issuePath := "/api/v1/bill-periods/" + period.ID + "/issue"
	w = ts.Do(t, http.MethodPost, issuePath, handler.IssueRequest{BillTypeID: billType.ID}, admin)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	issued := testutil.DecodeData[appbilling.IssueResult](t, w)
	assert.Equal(t, 1, issued.Created)

	w = ts.Do(t, http.MethodPost, issuePath, handler.IssueRequest{BillTypeID: billType.ID}, admin)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	again := testutil.DecodeData[appbilling.IssueResult](t, w)
	assert.Zero(t, again.Created)
	assert.Equal(t, 1, again.Skipped)

	w = ts.Do(t, http.MethodGet, "/api/v1/bills?period_id="+period.ID, nil, admin)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	bills := testutil.DecodeData[[]handler.BillResponse](t, w)
	require.Len(t, bills, 1)
	bill := bills[0]
	assert.True(t, bill.Amount.Equal(decimal.NewFromInt(50000)), bill.Amount.String())
	assert.Equal(t, "PENDING", bill.Status)

	// The due date has passed
	w = ts.Do(t, http.MethodPost, "/api/v1/bills/mark-overdue", nil, admin)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, int64(1), testutil.DecodeData[handler.CountData](t, w).Count)

	w = ts.Do(t, http.MethodGet, "/api/v1/me/overview", nil, residentToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	overview := testutil.DecodeData[dashboard.ResidentOverview](t, w)
	assert.Equal(t, "Siti Aminah", overview.FullName)
	require.Len(t, overview.UnpaidBills, 1)
	assert.Equal(t, 1, overview.Totals.OverdueBills)
	assert.True(t, overview.Totals.TotalOutstanding.Equal(decimal.NewFromInt(50000)))

	// Two installments settle the bill
	year := time.Now().UTC().Year()
	half := decimal.NewFromInt(25000)
	for i := 1; i <= 2; i++ {
		index := i
		w = ts.Do(t, http.MethodPost, "/api/v1/payments", handler.RecordPaymentRequest{
			BillID:           bill.ID,
			Amount:           &half,
			Method:           "CASH",
			InstallmentIndex: &index,
		}, admin)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		p := testutil.DecodeData[handler.PaymentResponse](t, w)
		assert.Equal(t, "COMPLETED", p.Status)
		assert.Equal(t, fmt.Sprintf("KBR-%d-%03d", year, i), p.ReceiptNumber)
	}

	w = ts.Do(t, http.MethodGet, "/api/v1/bills/"+bill.ID, nil, admin)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	settled := testutil.DecodeData[handler.BillResponse](t, w)
	assert.Equal(t, "PAID", settled.Status)
	assert.True(t, settled.Remaining.IsZero(), settled.Remaining.String())

	t.Run("a settled bill takes no further payment", func(t *testing.T) {
		w := ts.Do(t, http.MethodPost, "/api/v1/payments", handler.RecordPaymentRequest{
			BillID: bill.ID, Method: "CASH",
		}, admin)
		assert.GreaterOrEqual(t, w.Code, http.StatusBadRequest)
		assert.False(t, testutil.DecodeEnvelope(t, w).Success)
	})

	t.Run("admin stats reflect the payments", func(t *testing.T) {
		w := ts.Do(t, http.MethodGet, "/api/v1/dashboard/stats", nil, admin)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		stats := testutil.DecodeData[dashboard.AdminStats](t, w)
		assert.Equal(t, int64(1), stats.TotalResidents)
		assert.Zero(t, stats.UnpaidBills)
		assert.Zero(t, stats.OverdueBills)
		assert.True(t, stats.TotalRevenue.Equal(decimal.NewFromInt(50000)), stats.TotalRevenue.String())
		assert.Len(t, stats.RecentPayments, 2)
	})

	t.Run("resident overview is settled", func(t *testing.T) {
		w := ts.Do(t, http.MethodGet, "/api/v1/me/overview", nil, residentToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		overview := testutil.DecodeData[dashboard.ResidentOverview](t, w)
		assert.Empty(t, overview.UnpaidBills)
		assert.Len(t, overview.History, 2)
		assert.Equal(t, 1, overview.Totals.PaidBills)
		assert.True(t, overview.Totals.TotalOutstanding.IsZero())
	})
}

func TestAuthFlow_LogoutRevokesToken(t *testing.T) {
	ts := NewTestServer(t)
	ts.DB.CleanTables()

	ts.CreateUser(t, "staff@kitabayar.local", identity.RoleStaff)
	token := ts.Login(t, "staff@kitabayar.local")

	w := ts.Do(t, http.MethodGet, "/api/v1/auth/me", nil, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = ts.Do(t, http.MethodPost, "/api/v1/auth/logout", nil, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = ts.Do(t, http.MethodGet, "/api/v1/auth/me", nil, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = ts.Do(t, http.MethodPost, "/api/v1/auth/login", handler.LoginRequest{Login: "staff@kitabayar.local", Password: "wrong-password"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
