package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/kitabayar/backend/internal/infrastructure/config"
	"github.com/kitabayar/backend/internal/infrastructure/telemetry"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Aggregation {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	out := map[string]metricdata.Aggregation{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m.Data
		}
	}
	return out
}

func int64Point(t *testing.T, data metricdata.Aggregation, kv ...attribute.KeyValue) int64 {
	t.Helper()
	want := attribute.NewSet(kv...)
	switch d := data.(type) {
	case metricdata.Sum[int64]:
		for _, dp := range d.DataPoints {
			if dp.Attributes.Equals(&want) {
				return dp.Value
			}
		}
	case metricdata.Gauge[int64]:
		for _, dp := range d.DataPoints {
			if dp.Attributes.Equals(&want) {
				return dp.Value
			}
		}
	}
	t.Fatalf("no data point with attributes %v", kv)
	return 0
}

func TestNewBillingMetrics_NilMeter(t *testing.T) {
	m, err := telemetry.NewBillingMetrics(nil)
	assert.ErrorIs(t, err, telemetry.ErrMeterNil)
	assert.Nil(t, m)
}

func TestBillingMetrics_NilReceiverIsNoop(t *testing.T) {
	var m *telemetry.BillingMetrics
	ctx := context.Background()
	assert.NotPanics(t, func() {
		m.RecordPayment(ctx, "CASH", "COMPLETED", decimal.NewFromInt(1))
		m.RecordBillsIssued(ctx, "batch", 3)
		m.RecordOverdue(ctx, 2)
		m.RecordNotification(ctx, "applied")
	})
}

func TestBillingMetrics_Noop(t *testing.T) {
	m, err := telemetry.NewBillingMetrics(noop.NewMeterProvider().Meter("test"))
	require.NoError(t, err)
	m.RecordPayment(context.Background(), "TRANSFER", "PENDING", decimal.NewFromInt(25000))
}

func TestBillingMetrics_Records(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	m, err := telemetry.NewBillingMetrics(provider.Meter("test"))
	require.NoError(t, err)

	ctx := context.Background()
	m.RecordPayment(ctx, "CASH", "COMPLETED", decimal.NewFromInt(50000))
	m.RecordPayment(ctx, "CASH", "COMPLETED", decimal.NewFromInt(25000))
	m.RecordPayment(ctx, "TRANSFER", "PENDING", decimal.NewFromInt(10000))
	m.RecordBillsIssued(ctx, "batch", 12)
	m.RecordBillsIssued(ctx, "single", 1)
	m.RecordBillsIssued(ctx, "batch", 0)
	m.RecordOverdue(ctx, 4)
	m.RecordNotification(ctx, "applied")
	m.RecordNotification(ctx, "duplicate")
	m.RecordNotification(ctx, "applied")

	data := collect(t, reader)

	assert.Equal(t, int64(2), int64Point(t, data["kitabayar_payments_total"],
		attribute.String("method", "CASH"), attribute.String("status", "COMPLETED")))
	assert.Equal(t, int64(1), int64Point(t, data["kitabayar_payments_total"],
		attribute.String("method", "TRANSFER"), attribute.String("status", "PENDING")))

	amount, ok := data["kitabayar_payment_amount_total"].(metricdata.Sum[float64])
	require.True(t, ok)
	require.Len(t, amount.DataPoints, 1)
	assert.InDelta(t, 75000, amount.DataPoints[0].Value, 0.001)

	assert.Equal(t, int64(12), int64Point(t, data["kitabayar_bills_issued_total"], attribute.String("source", "batch")))
	assert.Equal(t, int64(1), int64Point(t, data["kitabayar_bills_issued_total"], attribute.String("source", "single")))
	assert.Equal(t, int64(4), int64Point(t, data["kitabayar_bills_overdue_total"]))
	assert.Equal(t, int64(2), int64Point(t, data["kitabayar_gateway_notifications_total"], attribute.String("result", "applied")))
}

func TestObservePool(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	db.SetMaxOpenConns(7)

	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	reg, err := telemetry.ObservePool(provider.Meter("test"), db)
	require.NoError(t, err)
	defer func() { _ = reg.Unregister() }()

	data := collect(t, reader)
	assert.Equal(t, int64(7), int64Point(t, data["kitabayar_db_pool_connections_max"]))
	assert.Equal(t, int64(db.Stats().Idle), int64Point(t, data["kitabayar_db_pool_connections"], attribute.String("state", "idle")))
	assert.Contains(t, data, "kitabayar_db_pool_wait_total")
}

func TestSetup_AllDisabled(t *testing.T) {
	p, err := telemetry.Setup(context.Background(), config.TelemetryConfig{ServiceName: "kitabayar"}, "test", zap.NewNop())
	require.NoError(t, err)

	assert.False(t, p.TracingEnabled())
	assert.Nil(t, p.LogCore(zapcore.InfoLevel))
	assert.NotNil(t, p.Meter("kitabayar"))
	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestProviders_NilSafe(t *testing.T) {
	var p *telemetry.Providers
	assert.False(t, p.TracingEnabled())
	assert.Nil(t, p.LogCore(zapcore.InfoLevel))
	assert.NotNil(t, p.Meter("x"))
	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestStartSpan_EndSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	ctx, span := telemetry.StartSpan(context.Background(), "payment", "record", attribute.String("bill_id", "b-1"))
	assert.NotEmpty(t, telemetry.TraceID(ctx))
	telemetry.EndSpan(span, nil)

	_, failed := telemetry.StartSpan(context.Background(), "bill", "issue")
	telemetry.EndSpan(failed, errors.New("boom"))

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "payment.record", spans[0].Name())
	assert.Equal(t, codes.Ok, spans[0].Status().Code)
	assert.Contains(t, spans[0].Attributes(), attribute.String("bill_id", "b-1"))
	assert.Equal(t, "bill.issue", spans[1].Name())
	assert.Equal(t, codes.Error, spans[1].Status().Code)
	assert.Equal(t, "boom", spans[1].Status().Description)
}

func TestInstrumentGorm_Disabled(t *testing.T) {
	assert.NoError(t, telemetry.InstrumentGorm(nil, config.TelemetryConfig{}, zap.NewNop()))
}

func TestTraceID_NoSpan(t *testing.T) {
	assert.Empty(t, telemetry.TraceID(context.Background()))
}
