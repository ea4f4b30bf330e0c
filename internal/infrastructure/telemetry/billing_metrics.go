package telemetry

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ErrMeterNil is returned when a metrics collector is built without a meter
var ErrMeterNil = errors.New("telemetry: meter is nil")

// BillingMetrics counts dues-collection activity.
// A nil *BillingMetrics is valid and records nothing.
type BillingMetrics struct {
	payments      metric.Int64Counter
	paymentAmount metric.Float64Counter
	billsIssued   metric.Int64Counter
	billsOverdue  metric.Int64Counter
	notifications metric.Int64Counter
}

// NewBillingMetrics creates the billing instruments on meter
func NewBillingMetrics(meter metric.Meter) (*BillingMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}
	var (
		m   BillingMetrics
		err error
	)
	if m.payments, err = meter.Int64Counter("kitabayar_payments_total",
		metric.WithDescription("Payments recorded"),
		metric.WithUnit("{payments}"),
	); err != nil {
		return nil, err
	}
	if m.paymentAmount, err = meter.Float64Counter("kitabayar_payment_amount_total",
		metric.WithDescription("Rupiah collected by completed payments"),
		metric.WithUnit("{IDR}"),
	); err != nil {
		return nil, err
	}
	if m.billsIssued, err = meter.Int64Counter("kitabayar_bills_issued_total",
		metric.WithDescription("Bills issued"),
		metric.WithUnit("{bills}"),
	); err != nil {
		return nil, err
	}
	if m.billsOverdue, err = meter.Int64Counter("kitabayar_bills_overdue_total",
		metric.WithDescription("Bills flipped to overdue"),
		metric.WithUnit("{bills}"),
	); err != nil {
		return nil, err
	}
	if m.notifications, err = meter.Int64Counter("kitabayar_gateway_notifications_total",
		metric.WithDescription("Payment gateway notifications handled"),
		metric.WithUnit("{notifications}"),
	); err != nil {
		return nil, err
	}
	return &m, nil
}

// RecordPayment counts a payment transition. Completed payments also add
// their amount to the collected total.
func (m *BillingMetrics) RecordPayment(ctx context.Context, method, status string, amount decimal.Decimal) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("status", status),
	)
	m.payments.Add(ctx, 1, attrs)
	if status == "COMPLETED" {
		m.paymentAmount.Add(ctx, amount.InexactFloat64(), metric.WithAttributes(attribute.String("method", method)))
	}
}

// RecordBillsIssued counts bills created by source ("single" or "batch")
func (m *BillingMetrics) RecordBillsIssued(ctx context.Context, source string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.billsIssued.Add(ctx, int64(n), metric.WithAttributes(attribute.String("source", source)))
}

// RecordOverdue counts bills marked overdue by a sweep
func (m *BillingMetrics) RecordOverdue(ctx context.Context, n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.billsOverdue.Add(ctx, n)
}

// RecordNotification counts a gateway callback by its result
func (m *BillingMetrics) RecordNotification(ctx context.Context, result string) {
	if m == nil {
		return
	}
	m.notifications.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}
