package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/kitabayar/backend/internal/domain/identity"
)

func setupTestTracer(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		_ = tp.Shutdown(t.Context())
	})
	return sr
}

func attrValue(attrs []attribute.KeyValue, key string) (string, bool) {
	for _, a := range attrs {
		if string(a.Key) == key {
			return a.Value.Emit(), true
		}
	}
	return "", false
}

func TestTracing_Disabled(t *testing.T) {
	sr := setupTestTracer(t)
	r := gin.New()
	r.Use(Tracing("kitabayar-test", false))
	r.GET("/", okHandler)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, sr.Ended())
}

func TestTracing_EnrichesSpan(t *testing.T) {
	sr := setupTestTracer(t)
	svc := newTestJWTService()
	pair, sub := issue(t, svc, identity.RoleStaff)

	r := gin.New()
	r.Use(RequestID(), Tracing("kitabayar-test", true), JWTAuth(JWTConfig{JWTService: svc}), SpanEnricher())
	r.GET("/api/v1/bills/:id", okHandler)
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bills/42", nil)
	req.Header.Set(RequestIDHeader, "trace-req-1")
	req.Header.Set(AuthHeaderKey, BearerPrefix+pair.AccessToken)
	serve(r, req)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Contains(t, spans[0].Name(), "/api/v1/bills/:id")
	v, ok := attrValue(spans[0].Attributes(), "request_id")
	require.True(t, ok)
	assert.Equal(t, "trace-req-1", v)
	v, _ = attrValue(spans[0].Attributes(), "user_id")
	assert.Equal(t, sub.UserID.String(), v)
	v, _ = attrValue(spans[0].Attributes(), "user_role")
	assert.Equal(t, "STAFF", v)

	req = httptest.NewRequest(http.MethodGet, "/boom", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+pair.AccessToken)
	serve(r, req)
	spans = sr.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, codes.Error, spans[1].Status().Code)
}
