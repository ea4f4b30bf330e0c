package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/kitabayar/backend/internal/domain/billing"
	"github.com/kitabayar/backend/internal/domain/identity"
	"github.com/kitabayar/backend/internal/domain/payment"
	"github.com/kitabayar/backend/internal/domain/resident"
	"github.com/kitabayar/backend/internal/domain/shared"
	"github.com/kitabayar/backend/internal/infrastructure/cache"
)

var (
	ErrGatewayDisabled   = shared.NewDomainError("GATEWAY_DISABLED", "Online payment is not enabled")
	ErrGatewayFailed     = shared.NewDomainError("GATEWAY_ERROR", "Payment gateway request failed")
	ErrBillCancelled     = shared.NewDomainError("INVALID_STATE", "Cancelled bills cannot receive payments")
	ErrBillAlreadyPaid   = shared.NewDomainError("INVALID_STATE", "Bill is already paid in full")
	ErrMethodNotOnline   = shared.NewDomainError("INVALID_METHOD", "Only DIGITAL_WALLET and CREDIT_CARD can be paid online")
	ErrAmountExceedsDue  = shared.NewDomainError("INVALID_AMOUNT", "Amount exceeds what is still owed on the bill")
	ErrAmountMismatch    = shared.NewDomainError("INVALID_AMOUNT", "Notification amount does not match the payment")
	ErrSignatureMismatch = shared.NewDomainError("FORBIDDEN", "Invalid notification signature")
	ErrNotOwnBill        = shared.NewDomainError("FORBIDDEN", "Residents can only pay their own bills")
	ErrInvalidTransition = shared.NewDomainError("INVALID_STATUS", "Status must be COMPLETED, FAILED or REFUNDED")
)

const (
	// DefaultReceiptPrefix yields receipts like KBR-2025-001
	DefaultReceiptPrefix = "KBR"

	orderPrefix       = "KB-"
	notificationTTL   = 24 * time.Hour
	notificationKeyNS = "midtrans:notif:"
	receiptAttempts   = 3
)

// Metrics receives payment counters. *telemetry.BillingMetrics implements it.
type Metrics interface {
	RecordPayment(ctx context.Context, method, status string, amount decimal.Decimal)
	RecordNotification(ctx context.Context, result string)
}

type nopMetrics struct{}

func (nopMetrics) RecordPayment(context.Context, string, string, decimal.Decimal) {}
func (nopMetrics) RecordNotification(context.Context, string)                     {}

// Service handles payment use cases
type Service struct {
	payments  payment.Repository
	bills     billing.BillRepository
	types     billing.BillTypeRepository
	residents resident.Repository
	tx        shared.Transactor
	gateway   payment.Gateway
	store     cache.Store
	metrics   Metrics
	logger    *zap.Logger

	receiptPrefix string
	loc           *time.Location
	now           func() time.Time
}

// Option configures a Service
type Option func(*Service)

// WithGateway enables online checkout and notifications
func WithGateway(g payment.Gateway) Option {
	return func(s *Service) { s.gateway = g }
}

// WithStore enables duplicate notification suppression
func WithStore(store cache.Store) Option {
	return func(s *Service) { s.store = store }
}

// WithMetrics sets the metrics recorder
func WithMetrics(m Metrics) Option {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithReceiptPrefix overrides the receipt prefix
func WithReceiptPrefix(prefix string) Option {
	return func(s *Service) {
		if prefix != "" {
			s.receiptPrefix = prefix
		}
	}
}

// WithLocation sets the time zone used for receipt years and "today"
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a new payment service
func NewService(
	payments payment.Repository,
	bills billing.BillRepository,
	types billing.BillTypeRepository,
	residents resident.Repository,
	tx shared.Transactor,
	logger *zap.Logger,
	opts ...Option,
) *Service {
	s := &Service{
		payments:      payments,
		bills:         bills,
		types:         types,
		residents:     residents,
		tx:            tx,
		metrics:       nopMetrics{},
		logger:        logger,
		receiptPrefix: DefaultReceiptPrefix,
		loc:           time.UTC,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GatewayEnabled reports whether online checkout is available
func (s *Service) GatewayEnabled() bool {
	return s.gateway != nil
}

// Record stores a payment taken by staff. A completed payment receives a
// receipt number and settles the bill once the bill amount is covered.
func (s *Service) Record(ctx context.Context, in RecordInput) (*payment.Payment, error) {
	status := in.Status
	if status == "" {
		status = payment.StatusCompleted
	}
	if status != payment.StatusCompleted && status != payment.StatusPending && status != payment.StatusFailed {
		return nil, shared.NewDomainError("INVALID_STATUS", "A new payment must be PENDING, COMPLETED or FAILED")
	}

	var p *payment.Payment
	err := s.withReceiptRetry(func() error {
		return s.tx.Transaction(ctx, func(ctx context.Context) error {
			return s.record(ctx, in, status, &p)
		})
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordPayment(ctx, p.Method.String(), p.Status.String(), p.Amount)
	s.logger.Info("Payment recorded",
		zap.String("payment_id", p.ID.String()),
		zap.String("bill_id", p.BillID.String()),
		zap.String("status", p.Status.String()),
		zap.String("amount", p.Amount.StringFixed(2)))
	return p, nil
}

// withReceiptRetry reruns fn when a concurrent payment took the same
// receipt number.
func (s *Service) withReceiptRetry(fn func() error) error {
	var err error
	for range receiptAttempts {
		if err = fn(); !shared.IsAlreadyExists(err) {
			return err
		}
		s.logger.Debug("Receipt number taken, retrying")
	}
	return err
}

func (s *Service) record(ctx context.Context, in RecordInput, status payment.Status, out **payment.Payment) error {
	bill, err := s.bills.FindByID(ctx, in.BillID)
	if err != nil {
		return err
	}
	if bill.Status == billing.BillStatusCancelled {
		return ErrBillCancelled
	}

	amount, err := s.amountFor(ctx, bill, in.Amount, false)
	if err != nil {
		return err
	}
	p, err := payment.NewPayment(bill.ResidentID, bill.ID, amount, in.Method)
	if err != nil {
		return err
	}
	p.SetNotes(in.Notes)
	if in.InstallmentIndex != nil {
		if err := p.SetInstallment(*in.InstallmentIndex); err != nil {
			return err
		}
	}

	switch status {
	case payment.StatusCompleted:
		paidAt := s.now()
		if in.PaidAt != nil {
			paidAt = *in.PaidAt
		}
		if err := s.complete(ctx, p, paidAt); err != nil {
			return err
		}
	case payment.StatusFailed:
		if err := p.Fail(); err != nil {
			return err
		}
	}

	if err := s.payments.Create(ctx, p); err != nil {
		return err
	}
	*out = p
	return s.settleBill(ctx, bill)
}

// List returns a page of payments joined with resident and bill names
func (s *Service) List(ctx context.Context, in ListInput) (shared.Paginated[*payment.Record], error) {
	items, total, err := s.payments.FindAll(ctx, in.filter())
	if err != nil {
		return shared.Paginated[*payment.Record]{}, err
	}
	return shared.NewPaginated(items, total, in.Page, in.PageSize), nil
}

// Get returns one payment
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*payment.Payment, error) {
	return s.payments.FindByID(ctx, id)
}

// UpdateStatus moves a payment to COMPLETED, FAILED or REFUNDED and
// re-settles its bill.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status payment.Status) (*payment.Payment, error) {
	var p *payment.Payment
	err := s.tx.Transaction(ctx, func(ctx context.Context) error {
		var err error
		if p, err = s.payments.FindByID(ctx, id); err != nil {
			return err
		}
		if err := s.transition(ctx, p, status); err != nil {
			return err
		}
		if err := s.payments.Update(ctx, p); err != nil {
			return err
		}
		return s.settleBillByID(ctx, p.BillID)
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordPayment(ctx, p.Method.String(), p.Status.String(), p.Amount)
	s.logger.Info("Payment status changed",
		zap.String("payment_id", p.ID.String()),
		zap.String("status", p.Status.String()))
	return p, nil
}

// Delete removes a payment and re-settles its bill
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.tx.Transaction(ctx, func(ctx context.Context) error {
		p, err := s.payments.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := s.payments.Delete(ctx, id); err != nil {
			return err
		}
		s.logger.Info("Payment deleted", zap.String("payment_id", id.String()))
		if p.Status != payment.StatusCompleted {
			return nil
		}
		return s.settleBillByID(ctx, p.BillID)
	})
}

// Summary returns totals for the payments page. The filter's status is ignored
// for the completed figures.
func (s *Service) Summary(ctx context.Context, in ListInput) (*Summary, error) {
	stats, err := s.payments.Stats(ctx, in.filter())
	if err != nil {
		return nil, err
	}

	now := s.now().In(s.loc)
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
	todayFilter := in.filter()
	todayFilter.PaidFrom = &start
	todayFilter.PaidTo = &now
	today, err := s.payments.Stats(ctx, todayFilter)
	if err != nil {
		return nil, err
	}

	out := &Summary{
		TotalAmount:    stats.CompletedAmount,
		CompletedCount: stats.CompletedCount,
		TodayCount:     today.CompletedCount,
		ByMethod:       make([]MethodCount, 0, len(payment.AllMethods)),
		ByStatus:       stats.ByStatus,
	}
	for _, m := range payment.AllMethods {
		out.ByMethod = append(out.ByMethod, MethodCount{Method: m, Label: m.Label(), Count: stats.ByMethod[m]})
	}
	return out, nil
}

// Checkout opens a gateway transaction for a bill and stores a PENDING
// payment carrying the gateway order id.
func (s *Service) Checkout(ctx context.Context, in CheckoutInput) (*CheckoutResult, error) {
	if s.gateway == nil {
		return nil, ErrGatewayDisabled
	}
	if !in.Method.ViaGateway() {
		return nil, ErrMethodNotOnline
	}

	bill, err := s.bills.FindByID(ctx, in.BillID)
	if err != nil {
		return nil, err
	}
	switch bill.Status {
	case billing.BillStatusCancelled:
		return nil, ErrBillCancelled
	case billing.BillStatusPaid:
		return nil, ErrBillAlreadyPaid
	}

	owner, err := s.residents.FindByID(ctx, bill.ResidentID)
	if err != nil {
		return nil, err
	}
	if in.Actor.Role == identity.RoleResident && (owner.UserID == nil || *owner.UserID != in.Actor.UserID) {
		return nil, ErrNotOwnBill
	}

	amount, err := s.amountFor(ctx, bill, in.Amount, true)
	if err != nil {
		return nil, err
	}
	bt, err := s.types.FindByID(ctx, bill.BillTypeID)
	if err != nil {
		return nil, err
	}

	p, err := payment.NewPayment(bill.ResidentID, bill.ID, amount, in.Method)
	if err != nil {
		return nil, err
	}
	orderID := orderPrefix + p.ID.String()
	p.AttachGatewayOrder(orderID)
	p.SetNotes("Pembayaran online " + in.Method.Label())
	if err := s.payments.Create(ctx, p); err != nil {
		return nil, err
	}

	req := payment.CheckoutRequest{
		OrderID:      orderID,
		Amount:       amount,
		Method:       in.Method,
		ItemID:       bill.ID.String(),
		ItemName:     bt.Name + " " + bill.Period,
		CustomerName: owner.FullName,
	}
	if owner.Email != nil {
		req.CustomerEmail = *owner.Email
	}
	if owner.PhoneNumber != nil {
		req.CustomerPhone = *owner.PhoneNumber
	}

	checkout, err := s.gateway.CreateCheckout(ctx, req)
	if err != nil {
		s.logger.Error("Gateway checkout failed", zap.String("order_id", orderID), zap.Error(err))
		if ferr := p.Fail(); ferr == nil {
			if uerr := s.payments.Update(ctx, p); uerr != nil {
				s.logger.Error("Failed to mark payment failed", zap.String("payment_id", p.ID.String()), zap.Error(uerr))
			}
		}
		s.metrics.RecordPayment(ctx, p.Method.String(), p.Status.String(), p.Amount)
		return nil, fmt.Errorf("%w: %v", ErrGatewayFailed, err)
	}

	s.metrics.RecordPayment(ctx, p.Method.String(), p.Status.String(), p.Amount)
	s.logger.Info("Gateway checkout created",
		zap.String("order_id", orderID),
		zap.String("bill_id", bill.ID.String()),
		zap.String("amount", amount.StringFixed(2)))
	return &CheckoutResult{
		Payment:     p,
		OrderID:     orderID,
		Token:       checkout.Token,
		RedirectURL: checkout.RedirectURL,
	}, nil
}

// HandleNotification applies a gateway callback. Replays of the same
// callback and callbacks that do not change the status are no-ops.
func (s *Service) HandleNotification(ctx context.Context, body []byte) (*NotificationResult, error) {
	if s.gateway == nil {
		return nil, ErrGatewayDisabled
	}

	n, err := s.gateway.ParseNotification(ctx, body)
	if err != nil {
		if errors.Is(err, payment.ErrInvalidSignature) {
			s.metrics.RecordNotification(ctx, "invalid_signature")
			s.logger.Warn("Rejected gateway notification with invalid signature")
			return nil, ErrSignatureMismatch
		}
		s.metrics.RecordNotification(ctx, "malformed")
		return nil, shared.NewDomainError("INVALID_INPUT", "Malformed notification: "+err.Error())
	}

	result := &NotificationResult{OrderID: n.OrderID}

	key := notificationKeyNS + n.OrderID + ":" + n.RawStatus
	if s.store != nil {
		fresh, err := s.store.SetNX(ctx, key, []byte(n.TransactionID), notificationTTL)
		if err != nil {
			s.logger.Warn("Notification dedupe unavailable", zap.Error(err))
		} else if !fresh {
			s.metrics.RecordNotification(ctx, "duplicate")
			result.Duplicate = true
			return result, nil
		}
	}

	p, changed, err := s.applyNotification(ctx, n)
	if err != nil {
		if s.store != nil {
			_ = s.store.Delete(ctx, key)
		}
		return nil, err
	}
	result.Status = p.Status
	result.Changed = changed

	if changed {
		s.metrics.RecordNotification(ctx, "applied")
		s.metrics.RecordPayment(ctx, p.Method.String(), p.Status.String(), p.Amount)
		s.logger.Info("Gateway notification applied",
			zap.String("order_id", n.OrderID),
			zap.String("transaction_status", n.RawStatus),
			zap.String("status", p.Status.String()))
	} else {
		s.metrics.RecordNotification(ctx, "ignored")
	}
	return result, nil
}

func (s *Service) applyNotification(ctx context.Context, n *payment.Notification) (*payment.Payment, bool, error) {
	var (
		p       *payment.Payment
		changed bool
	)
	err := s.tx.Transaction(ctx, func(ctx context.Context) error {
		var err error
		if p, err = s.payments.FindByGatewayOrderID(ctx, n.OrderID); err != nil {
			return err
		}
		if n.Outcome == nil || p.Status == *n.Outcome {
			return nil
		}
		if *n.Outcome == payment.StatusCompleted && !n.GrossAmount.Round(0).Equal(p.Amount.Round(0)) {
			s.metrics.RecordNotification(ctx, "amount_mismatch")
			return ErrAmountMismatch
		}
		if err := s.transition(ctx, p, *n.Outcome); err != nil {
			return err
		}
		if err := s.payments.Update(ctx, p); err != nil {
			return err
		}
		changed = true
		return s.settleBillByID(ctx, p.BillID)
	})
	return p, changed, err
}

func (s *Service) transition(ctx context.Context, p *payment.Payment, status payment.Status) error {
	switch status {
	case payment.StatusCompleted:
		return s.complete(ctx, p, s.now())
	case payment.StatusFailed:
		return p.Fail()
	case payment.StatusRefunded:
		return p.Refund()
	default:
		return ErrInvalidTransition
	}
}

func (s *Service) complete(ctx context.Context, p *payment.Payment, at time.Time) error {
	if p.Status == payment.StatusCompleted {
		return nil
	}
	receipt, err := s.nextReceipt(ctx, at)
	if err != nil {
		return err
	}
	return p.Complete(receipt, at)
}

// nextReceipt returns the following receipt number of the payment's year
func (s *Service) nextReceipt(ctx context.Context, at time.Time) (string, error) {
	year := at.In(s.loc).Year()
	last, err := s.payments.LastReceipt(ctx, payment.ReceiptPrefix(s.receiptPrefix, year))
	if err != nil {
		return "", fmt.Errorf("read last receipt: %w", err)
	}
	seq, _ := payment.ParseReceiptSequence(last, s.receiptPrefix, year)
	return payment.FormatReceipt(s.receiptPrefix, year, seq+1), nil
}

// amountFor resolves the payment amount against what is still owed.
// Online payments may not exceed the remaining amount.
func (s *Service) amountFor(ctx context.Context, bill *billing.Bill, requested *decimal.Decimal, capped bool) (decimal.Decimal, error) {
	paid, err := s.payments.SumCompleted(ctx, bill.ID)
	if err != nil {
		return decimal.Zero, err
	}
	remaining := decimal.Max(bill.Amount.Sub(paid), decimal.Zero)

	if requested == nil {
		if !remaining.IsPositive() {
			return decimal.Zero, ErrBillAlreadyPaid
		}
		return remaining, nil
	}
	if capped && requested.GreaterThan(remaining) {
		return decimal.Zero, ErrAmountExceedsDue
	}
	return *requested, nil
}

func (s *Service) settleBillByID(ctx context.Context, billID uuid.UUID) error {
	bill, err := s.bills.FindByID(ctx, billID)
	if err != nil {
		return err
	}
	return s.settleBill(ctx, bill)
}

// settleBill marks the bill PAID once completed payments cover it and
// reopens a PAID bill whose payments no longer do.
func (s *Service) settleBill(ctx context.Context, bill *billing.Bill) error {
	if bill.Status == billing.BillStatusCancelled {
		return nil
	}
	paid, err := s.payments.SumCompleted(ctx, bill.ID)
	if err != nil {
		return err
	}

	covered := paid.GreaterThanOrEqual(bill.Amount)
	switch {
	case covered && bill.Status != billing.BillStatusPaid:
		if err := bill.MarkPaid(); err != nil {
			return err
		}
	case !covered && bill.Status == billing.BillStatusPaid:
		bill.Reopen(s.now())
	default:
		return nil
	}
	if err := s.bills.Update(ctx, bill); err != nil {
		return err
	}
	s.logger.Info("Bill settlement changed",
		zap.String("bill_id", bill.ID.String()),
		zap.String("status", bill.Status.String()),
		zap.String("paid", paid.StringFixed(2)))
	return nil
}
