package payment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kitabayar/backend/internal/domain/billing"
	"github.com/kitabayar/backend/internal/domain/identity"
	"github.com/kitabayar/backend/internal/domain/payment"
	"github.com/kitabayar/backend/internal/domain/resident"
	"github.com/kitabayar/backend/internal/domain/shared"
	"github.com/kitabayar/backend/internal/infrastructure/cache"
	"github.com/kitabayar/backend/tests/testutil"
)

var payNow = time.Date(2025, time.March, 14, 10, 30, 0, 0, time.UTC)

type recordedPayment struct {
	method, status string
	amount         decimal.Decimal
}

type fakeMetrics struct {
	payments      []recordedPayment
	notifications []string
}

func (m *fakeMetrics) RecordPayment(_ context.Context, method, status string, amount decimal.Decimal) {
	m.payments = append(m.payments, recordedPayment{method, status, amount})
}

func (m *fakeMetrics) RecordNotification(_ context.Context, result string) {
	m.notifications = append(m.notifications, result)
}

type paymentMocks struct {
	payments  *testutil.MockPaymentRepository
	bills     *testutil.MockBillRepository
	types     *testutil.MockBillTypeRepository
	residents *testutil.MockResidentRepository
	gateway   *testutil.MockGateway
	tx        *testutil.PassthroughTx
	store     *cache.MemoryStore
	metrics   *fakeMetrics
}

func newPaymentService(t *testing.T, withGateway bool) (*Service, paymentMocks) {
	t.Helper()
	m := paymentMocks{
		payments:  new(testutil.MockPaymentRepository),
		bills:     new(testutil.MockBillRepository),
		types:     new(testutil.MockBillTypeRepository),
		residents: new(testutil.MockResidentRepository),
		gateway:   new(testutil.MockGateway),
		tx:        &testutil.PassthroughTx{},
		store:     cache.NewMemoryStore(0),
		metrics:   &fakeMetrics{},
	}
	t.Cleanup(func() { _ = m.store.Close() })

	opts := []Option{
		WithStore(m.store),
		WithMetrics(m.metrics),
		WithClock(testutil.FixedClock(payNow)),
		WithReceiptPrefix("KBR"),
	}
	if withGateway {
		opts = append(opts, WithGateway(m.gateway))
	}
	return NewService(m.payments, m.bills, m.types, m.residents, m.tx, zap.NewNop(), opts...), m
}

type payFixture struct {
	owner    *resident.Resident
	billType *billing.BillType
	bill     *billing.Bill
}

func newPayFixture(t *testing.T, amount string) payFixture {
	t.Helper()
	owner, err := resident.NewResident(resident.Profile{FullName: "Ani Wijaya", Email: "ani@example.com", PhoneNumber: "081234567890"})
	require.NoError(t, err)
	bt, err := billing.NewBillType(uuid.New(), "Kebersihan", "", testutil.Rupiah(amount))
	require.NoError(t, err)
	bill, err := billing.NewBill(owner.ID, bt.ID, "Maret 2025", testutil.Rupiah(amount), testutil.Date(2025, time.March, 31))
	require.NoError(t, err)
	return payFixture{owner: owner, billType: bt, bill: bill}
}

func TestService_Record_CompletesAndSettles(t *testing.T) {
	svc, m := newPaymentService(t, false)
	f := newPayFixture(t, "100000")

	m.bills.On("FindByID", mock.Anything, f.bill.ID).Return(f.bill, nil)
	m.payments.On("SumCompleted", mock.Anything, f.bill.ID).Return(decimal.Zero, nil).Once()
	m.payments.On("SumCompleted", mock.Anything, f.bill.ID).Return(testutil.Rupiah("100000"), nil).Once()
	m.payments.On("LastReceipt", mock.Anything, "KBR-2025-").Return("KBR-2025-041", nil)
	m.payments.On("Create", mock.Anything, mock.AnythingOfType("*payment.Payment")).Return(nil)
	m.bills.On("Update", mock.Anything, f.bill).Return(nil)

	p, err := svc.Record(context.Background(), RecordInput{BillID: f.bill.ID, Method: payment.MethodCash, Notes: " tunai "})
	require.NoError(t, err)
	assert.Equal(t, payment.StatusCompleted, p.Status)
	require.NotNil(t, p.ReceiptNumber)
	assert.Equal(t, "KBR-2025-042", *p.ReceiptNumber)
	assert.Equal(t, payNow, *p.PaidAt)
	assert.Equal(t, "tunai", p.Notes)
	assert.True(t, p.Amount.Equal(testutil.Rupiah("100000")))
	assert.Equal(t, billing.BillStatusPaid, f.bill.Status)
	assert.Equal(t, 1, m.tx.Calls)
	require.Len(t, m.metrics.payments, 1)
	assert.Equal(t, "COMPLETED", m.metrics.payments[0].status)
}

func TestService_Record_PartialKeepsBillOpen(t *testing.T) {
	svc, m := newPaymentService(t, false)
	f := newPayFixture(t, "100000")
	amount := testutil.Rupiah("25000")
	index := 1

	m.bills.On("FindByID", mock.Anything, f.bill.ID).Return(f.bill, nil)
	m.payments.On("SumCompleted", mock.Anything, f.bill.ID).Return(decimal.Zero, nil).Once()
	m.payments.On("SumCompleted", mock.Anything, f.bill.ID).Return(amount, nil).Once()
	m.payments.On("LastReceipt", mock.Anything, "KBR-2025-").Return("", nil)
	m.payments.On("Create", mock.Anything, mock.AnythingOfType("*payment.Payment")).Return(nil)

	p, err := svc.Record(context.Background(), RecordInput{BillID: f.bill.ID, Amount: &amount, Method: payment.MethodTransfer, InstallmentIndex: &index})
	require.NoError(t, err)
	assert.Equal(t, "KBR-2025-001", *p.ReceiptNumber)
	assert.Equal(t, 1, *p.InstallmentIndex)
	assert.Equal(t, billing.BillStatusPending, f.bill.Status)
	m.bills.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestService_Record_RetriesTakenReceipt(t *testing.T) {
	svc, m := newPaymentService(t, false)
	f := newPayFixture(t, "100000")
	amount := testutil.Rupiah("25000")

	m.bills.On("FindByID", mock.Anything, f.bill.ID).Return(f.bill, nil)
	m.payments.On("SumCompleted", mock.Anything, f.bill.ID).Return(decimal.Zero, nil)
	m.payments.On("LastReceipt", mock.Anything, "KBR-2025-").Return("KBR-2025-006", nil).Once()
	m.payments.On("LastReceipt", mock.Anything, "KBR-2025-").Return("KBR-2025-007", nil).Once()
	m.payments.On("Create", mock.Anything, mock.AnythingOfType("*payment.Payment")).Return(shared.ErrAlreadyExists).Once()
	m.payments.On("Create", mock.Anything, mock.AnythingOfType("*payment.Payment")).Return(nil).Once()

	p, err := svc.Record(context.Background(), RecordInput{BillID: f.bill.ID, Amount: &amount, Method: payment.MethodCash})
	require.NoError(t, err)
	assert.Equal(t, "KBR-2025-008", *p.ReceiptNumber)
	assert.Equal(t, 2, m.tx.Calls)

	t.Run("gives up after repeated collisions", func(t *testing.T) {
		svc, m := newPaymentService(t, false)
		m.bills.On("FindByID", mock.Anything, f.bill.ID).Return(f.bill, nil)
		m.payments.On("SumCompleted", mock.Anything, f.bill.ID).Return(decimal.Zero, nil)
		m.payments.On("LastReceipt", mock.Anything, "KBR-2025-").Return("KBR-2025-006", nil)
		m.payments.On("Create", mock.Anything, mock.AnythingOfType("*payment.Payment")).Return(shared.ErrAlreadyExists)

		_, err := svc.Record(context.Background(), RecordInput{BillID: f.bill.ID, Amount: &amount, Method: payment.MethodCash})
		assert.True(t, shared.IsAlreadyExists(err))
		assert.Equal(t, 3, m.tx.Calls)
	})
}

func TestService_Record_Rejections(t *testing.T) {
	t.Run("cancelled bill", func(t *testing.T) {
		svc, m := newPaymentService(t, false)
		f := newPayFixture(t, "50000")
		require.NoError(t, f.bill.Cancel())
		m.bills.On("FindByID", mock.Anything, f.bill.ID).Return(f.bill, nil)

		_, err := svc.Record(context.Background(), RecordInput{BillID: f.bill.ID, Method: payment.MethodCash})
		assert.ErrorIs(t, err, ErrBillCancelled)
		m.payments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("nothing owed", func(t *testing.T) {
		svc, m := newPaymentService(t, false)
		f := newPayFixture(t, "50000")
		m.bills.On("FindByID", mock.Anything, f.bill.ID).Return(f.bill, nil)
		m.payments.On("SumCompleted", mock.Anything, f.bill.ID).Return(testutil.Rupiah("50000"), nil)

		_, err := svc.Record(context.Background(), RecordInput{BillID: f.bill.ID, Method: payment.MethodCash})
		assert.Equal(t, ErrBillAlreadyPaid, err)
	})

	t.Run("refunded is not a creation status", func(t *testing.T) {
		svc, _ := newPaymentService(t, false)
		_, err := svc.Record(context.Background(), RecordInput{BillID: uuid.New(), Method: payment.MethodCash, Status: payment.StatusRefunded})
		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "INVALID_STATUS", de.Code)
	})

	t.Run("non-positive amount", func(t *testing.T) {
		svc, m := newPaymentService(t, false)
		f := newPayFixture(t, "50000")
		zero := decimal.Zero
		m.bills.On("FindByID", mock.Anything, f.bill.ID).Return(f.bill, nil)
		m.payments.On("SumCompleted", mock.Anything, f.bill.ID).Return(decimal.Zero, nil)

		_, err := svc.Record(context.Background(), RecordInput{BillID: f.bill.ID, Amount: &zero, Method: payment.MethodCash})
		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "INVALID_AMOUNT", de.Code)
	})
}

func completedPayment(t *testing.T, f payFixture, amount string) *payment.Payment {
	t.Helper()
	p, err := payment.NewPayment(f.owner.ID, f.bill.ID, testutil.Rupiah(amount), payment.MethodCash)
	require.NoError(t, err)
	require.NoError(t, p.Complete("KBR-2025-007", payNow.Add(-time.Hour)))
	return p
}

func TestService_UpdateStatus_RefundReopensBill(t *testing.T) {
	svc, m := newPaymentService(t, false)
	f := newPayFixture(t, "50000")
	require.NoError(t, f.bill.MarkPaid())
	p := completedPayment(t, f, "50000")

	m.payments.On("FindByID", mock.Anything, p.ID).Return(p, nil)
	m.payments.On("Update", mock.Anything, p).Return(nil)
	m.bills.On("FindByID", mock.Anything, f.bill.ID).Return(f.bill, nil)
	m.payments.On("SumCompleted", mock.Anything, f.bill.ID).Return(decimal.Zero, nil)
	m.bills.On("Update", mock.Anything, f.bill).Return(nil)

	got, err := svc.UpdateStatus(context.Background(), p.ID, payment.StatusRefunded)
	require.NoError(t, err)
	assert.Equal(t, payment.StatusRefunded, got.Status)
	assert.Equal(t, billing.BillStatusPending, f.bill.Status)
}

func TestService_UpdateStatus_InvalidTransition(t *testing.T) {
	svc, m := newPaymentService(t, false)
	f := newPayFixture(t, "50000")
	p := completedPayment(t, f, "50000")
	m.payments.On("FindByID", mock.Anything, p.ID).Return(p, nil)

	_, err := svc.UpdateStatus(context.Background(), p.ID, payment.StatusFailed)
	var de *shared.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "INVALID_STATE", de.Code)

	_, err = svc.UpdateStatus(context.Background(), p.ID, payment.StatusPending)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	m.payments.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestService_Delete_ReopensPaidBill(t *testing.T) {
	svc, m := newPaymentService(t, false)
	f := newPayFixture(t, "50000")
	require.NoError(t, f.bill.MarkPaid())
	p := completedPayment(t, f, "50000")

	m.payments.On("FindByID", mock.Anything, p.ID).Return(p, nil)
	m.payments.On("Delete", mock.Anything, p.ID).Return(nil)
	m.bills.On("FindByID", mock.Anything, f.bill.ID).Return(f.bill, nil)
	m.payments.On("SumCompleted", mock.Anything, f.bill.ID).Return(decimal.Zero, nil)
	m.bills.On("Update", mock.Anything, f.bill).Return(nil)

	require.NoError(t, svc.Delete(context.Background(), p.ID))
	assert.Equal(t, billing.BillStatusPending, f.bill.Status)
}

func TestService_Summary(t *testing.T) {
	svc, m := newPaymentService(t, false)

	m.payments.On("Stats", mock.Anything, mock.MatchedBy(func(f payment.Filter) bool { return f.PaidFrom == nil })).
		Return(&payment.Stats{
			CompletedAmount: testutil.Rupiah("750000"),
			CompletedCount:  9,
			ByMethod:        map[payment.Method]int64{payment.MethodCash: 6, payment.MethodDigitalWallet: 3},
			ByStatus:        map[payment.Status]int64{payment.StatusCompleted: 9, payment.StatusFailed: 1},
		}, nil)
	m.payments.On("Stats", mock.Anything, mock.MatchedBy(func(f payment.Filter) bool {
		return f.PaidFrom != nil && f.PaidFrom.Equal(testutil.Date(2025, time.March, 14))
	})).Return(&payment.Stats{CompletedCount: 2}, nil)

	s, err := svc.Summary(context.Background(), ListInput{})
	require.NoError(t, err)
	assert.True(t, s.TotalAmount.Equal(testutil.Rupiah("750000")))
	assert.Equal(t, int64(9), s.CompletedCount)
	assert.Equal(t, int64(2), s.TodayCount)
	require.Len(t, s.ByMethod, 4)
	assert.Equal(t, MethodCount{Method: payment.MethodCash, Label: "Tunai", Count: 6}, s.ByMethod[0])
	assert.Equal(t, int64(0), s.ByMethod[1].Count)
	assert.Equal(t, int64(1), s.ByStatus[payment.StatusFailed])
}

func TestService_Checkout(t *testing.T) {
	svc, m := newPaymentService(t, true)
	f := newPayFixture(t, "80000")
	userID := uuid.New()
	require.NoError(t, f.owner.LinkUser(userID))

	m.bills.On("FindByID", mock.Anything, f.bill.ID).Return(f.bill, nil)
	m.residents.On("FindByID", mock.Anything, f.owner.ID).Return(f.owner, nil)
	m.payments.On("SumCompleted", mock.Anything, f.bill.ID).Return(testutil.Rupiah("30000"), nil)
	m.types.On("FindByID", mock.Anything, f.billType.ID).Return(f.billType, nil)
	m.payments.On("Create", mock.Anything, mock.AnythingOfType("*payment.Payment")).Return(nil)
	m.gateway.On("CreateCheckout", mock.Anything, mock.MatchedBy(func(r payment.CheckoutRequest) bool {
		return r.Amount.Equal(testutil.Rupiah("50000")) &&
			r.CustomerName == "Ani Wijaya" &&
			r.CustomerEmail == "ani@example.com" &&
			r.ItemName == "Kebersihan Maret 2025"
	})).Return(&payment.Checkout{Token: "snap-token", RedirectURL: "https://app.sandbox.midtrans.com/snap/v2/vtweb/snap-token"}, nil)

	res, err := svc.Checkout(context.Background(), CheckoutInput{
		BillID: f.bill.ID,
		Method: payment.MethodDigitalWallet,
		Actor:  Actor{UserID: userID, Role: identity.RoleResident},
	})
	require.NoError(t, err)
	assert.Equal(t, "snap-token", res.Token)
	assert.Equal(t, "KB-"+res.Payment.ID.String(), res.OrderID)
	assert.Equal(t, payment.StatusPending, res.Payment.Status)
	require.NotNil(t, res.Payment.GatewayOrderID)
	assert.Equal(t, res.OrderID, *res.Payment.GatewayOrderID)
}

func TestService_Checkout_Rejections(t *testing.T) {
	t.Run("gateway disabled", func(t *testing.T) {
		svc, _ := newPaymentService(t, false)
		_, err := svc.Checkout(context.Background(), CheckoutInput{BillID: uuid.New(), Method: payment.MethodCreditCard})
		assert.Equal(t, ErrGatewayDisabled, err)
	})

	t.Run("offline method", func(t *testing.T) {
		svc, _ := newPaymentService(t, true)
		_, err := svc.Checkout(context.Background(), CheckoutInput{BillID: uuid.New(), Method: payment.MethodCash})
		assert.Equal(t, ErrMethodNotOnline, err)
	})

	t.Run("someone else's bill", func(t *testing.T) {
		svc, m := newPaymentService(t, true)
		f := newPayFixture(t, "80000")
		require.NoError(t, f.owner.LinkUser(uuid.New()))
		m.bills.On("FindByID", mock.Anything, f.bill.ID).Return(f.bill, nil)
		m.residents.On("FindByID", mock.Anything, f.owner.ID).Return(f.owner, nil)

		_, err := svc.Checkout(context.Background(), CheckoutInput{
			BillID: f.bill.ID,
			Method: payment.MethodDigitalWallet,
			Actor:  Actor{UserID: uuid.New(), Role: identity.RoleResident},
		})
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("more than owed", func(t *testing.T) {
		svc, m := newPaymentService(t, true)
		f := newPayFixture(t, "80000")
		amount := testutil.Rupiah("90000")
		m.bills.On("FindByID", mock.Anything, f.bill.ID).Return(f.bill, nil)
		m.residents.On("FindByID", mock.Anything, f.owner.ID).Return(f.owner, nil)
		m.payments.On("SumCompleted", mock.Anything, f.bill.ID).Return(decimal.Zero, nil)

		_, err := svc.Checkout(context.Background(), CheckoutInput{
			BillID: f.bill.ID,
			Amount: &amount,
			Method: payment.MethodCreditCard,
			Actor:  Actor{UserID: uuid.New(), Role: identity.RoleStaff},
		})
		assert.Equal(t, ErrAmountExceedsDue, err)
	})
}

func TestService_Checkout_GatewayFailureMarksPaymentFailed(t *testing.T) {
	svc, m := newPaymentService(t, true)
	f := newPayFixture(t, "80000")

	m.bills.On("FindByID", mock.Anything, f.bill.ID).Return(f.bill, nil)
	m.residents.On("FindByID", mock.Anything, f.owner.ID).Return(f.owner, nil)
	m.payments.On("SumCompleted", mock.Anything, f.bill.ID).Return(decimal.Zero, nil)
	m.types.On("FindByID", mock.Anything, f.billType.ID).Return(f.billType, nil)
	m.payments.On("Create", mock.Anything, mock.AnythingOfType("*payment.Payment")).Return(nil)
	m.gateway.On("CreateCheckout", mock.Anything, mock.Anything).Return(nil, errors.New("503 from snap"))

	var updated *payment.Payment
	m.payments.On("Update", mock.Anything, mock.AnythingOfType("*payment.Payment")).
		Run(func(args mock.Arguments) { updated = args.Get(1).(*payment.Payment) }).
		Return(nil)

	_, err := svc.Checkout(context.Background(), CheckoutInput{
		BillID: f.bill.ID,
		Method: payment.MethodDigitalWallet,
		Actor:  Actor{Role: identity.RoleAdmin},
	})
	assert.ErrorIs(t, err, ErrGatewayFailed)
	require.NotNil(t, updated)
	assert.Equal(t, payment.StatusFailed, updated.Status)
}

func pendingGatewayPayment(t *testing.T, f payFixture, amount string) *payment.Payment {
	t.Helper()
	p, err := payment.NewPayment(f.owner.ID, f.bill.ID, testutil.Rupiah(amount), payment.MethodDigitalWallet)
	require.NoError(t, err)
	p.AttachGatewayOrder("KB-" + p.ID.String())
	return p
}

func statusPtr(s payment.Status) *payment.Status { return &s }

func TestService_HandleNotification_Settlement(t *testing.T) {
	svc, m := newPaymentService(t, true)
	f := newPayFixture(t, "80000")
	p := pendingGatewayPayment(t, f, "80000")
	body := []byte(`{"order_id":"x"}`)

	m.gateway.On("ParseNotification", mock.Anything, body).Return(&payment.Notification{
		OrderID:       *p.GatewayOrderID,
		TransactionID: "trx-1",
		GrossAmount:   testutil.Rupiah("80000.00"),
		RawStatus:     "settlement",
		Outcome:       statusPtr(payment.StatusCompleted),
	}, nil)
	m.payments.On("FindByGatewayOrderID", mock.Anything, *p.GatewayOrderID).Return(p, nil)
	m.payments.On("LastReceipt", mock.Anything, "KBR-2025-").Return("KBR-2025-009", nil)
	m.payments.On("Update", mock.Anything, p).Return(nil)
	m.bills.On("FindByID", mock.Anything, f.bill.ID).Return(f.bill, nil)
	m.payments.On("SumCompleted", mock.Anything, f.bill.ID).Return(testutil.Rupiah("80000"), nil)
	m.bills.On("Update", mock.Anything, f.bill).Return(nil)

	res, err := svc.HandleNotification(context.Background(), body)
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.Equal(t, payment.StatusCompleted, res.Status)
	assert.Equal(t, "KBR-2025-010", *p.ReceiptNumber)
	assert.Equal(t, billing.BillStatusPaid, f.bill.Status)

	// the same callback again is suppressed
	again, err := svc.HandleNotification(context.Background(), body)
	require.NoError(t, err)
	assert.True(t, again.Duplicate)
	m.payments.AssertNumberOfCalls(t, "Update", 1)
	assert.Equal(t, []string{"applied", "duplicate"}, m.metrics.notifications)
}

func TestService_HandleNotification_InvalidSignature(t *testing.T) {
	svc, m := newPaymentService(t, true)
	body := []byte(`{}`)
	m.gateway.On("ParseNotification", mock.Anything, body).Return(nil, payment.ErrInvalidSignature)

	_, err := svc.HandleNotification(context.Background(), body)
	assert.ErrorIs(t, err, shared.ErrForbidden)
	m.payments.AssertNotCalled(t, "FindByGatewayOrderID", mock.Anything, mock.Anything)
	assert.Equal(t, 0, m.store.Len())
}

func TestService_HandleNotification_PendingIsNoop(t *testing.T) {
	svc, m := newPaymentService(t, true)
	f := newPayFixture(t, "80000")
	p := pendingGatewayPayment(t, f, "80000")
	body := []byte(`pending`)

	m.gateway.On("ParseNotification", mock.Anything, body).Return(&payment.Notification{
		OrderID:   *p.GatewayOrderID,
		RawStatus: "pending",
	}, nil)
	m.payments.On("FindByGatewayOrderID", mock.Anything, *p.GatewayOrderID).Return(p, nil)

	res, err := svc.HandleNotification(context.Background(), body)
	require.NoError(t, err)
	assert.False(t, res.Changed)
	assert.Equal(t, payment.StatusPending, res.Status)
	m.payments.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestService_HandleNotification_AmountMismatchAllowsRetry(t *testing.T) {
	svc, m := newPaymentService(t, true)
	f := newPayFixture(t, "80000")
	p := pendingGatewayPayment(t, f, "80000")
	body := []byte(`tampered`)

	m.gateway.On("ParseNotification", mock.Anything, body).Return(&payment.Notification{
		OrderID:     *p.GatewayOrderID,
		GrossAmount: testutil.Rupiah("1000"),
		RawStatus:   "settlement",
		Outcome:     statusPtr(payment.StatusCompleted),
	}, nil)
	m.payments.On("FindByGatewayOrderID", mock.Anything, *p.GatewayOrderID).Return(p, nil)

	_, err := svc.HandleNotification(context.Background(), body)
	assert.Equal(t, ErrAmountMismatch, err)
	assert.Equal(t, payment.StatusPending, p.Status)
	assert.Equal(t, 0, m.store.Len())
}

func TestService_HandleNotification_FailureOutcome(t *testing.T) {
	svc, m := newPaymentService(t, true)
	f := newPayFixture(t, "80000")
	p := pendingGatewayPayment(t, f, "80000")
	body := []byte(`expire`)

	m.gateway.On("ParseNotification", mock.Anything, body).Return(&payment.Notification{
		OrderID:   *p.GatewayOrderID,
		RawStatus: "expire",
		Outcome:   statusPtr(payment.StatusFailed),
	}, nil)
	m.payments.On("FindByGatewayOrderID", mock.Anything, *p.GatewayOrderID).Return(p, nil)
	m.payments.On("Update", mock.Anything, p).Return(nil)
	m.bills.On("FindByID", mock.Anything, f.bill.ID).Return(f.bill, nil)
	m.payments.On("SumCompleted", mock.Anything, f.bill.ID).Return(decimal.Zero, nil)

	res, err := svc.HandleNotification(context.Background(), body)
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.Equal(t, payment.StatusFailed, p.Status)
	assert.Equal(t, billing.BillStatusPending, f.bill.Status)
}
