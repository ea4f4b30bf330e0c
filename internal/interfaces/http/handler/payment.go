package handler

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apppayment "github.com/kitabayar/backend/internal/application/payment"
	"github.com/kitabayar/backend/internal/domain/payment"
	"github.com/kitabayar/backend/internal/interfaces/http/dto"
	"github.com/kitabayar/backend/internal/interfaces/http/middleware"
)

// maxNotificationBytes bounds a gateway callback body
const maxNotificationBytes = 64 << 10

// PaymentHandler handles payments, online checkout and gateway callbacks
type PaymentHandler struct {
	BaseHandler
	payments *apppayment.Service
	stats    StatsInvalidator
}

// NewPaymentHandler creates a new payment handler. stats may be nil.
func NewPaymentHandler(payments *apppayment.Service, stats StatsInvalidator) *PaymentHandler {
	return &PaymentHandler{payments: payments, stats: stats}
}

func (h *PaymentHandler) changed(c *gin.Context) {
	if h.stats != nil {
		h.stats.InvalidateAdminStats(c.Request.Context())
	}
}

func (h *PaymentHandler) listInput(c *gin.Context) (apppayment.ListInput, bool) {
	var q PaymentListQuery
	if !h.BindQuery(c, &q) {
		return apppayment.ListInput{}, false
	}
	page := dto.ListRequest{Page: q.Page, PageSize: q.PageSize}
	page.Normalize()

	in := apppayment.ListInput{
		Search:   q.Search,
		Page:     page.Page,
		PageSize: page.PageSize,
	}
	in.ResidentID, _ = parseOptionalUUID(q.ResidentID)
	in.BillID, _ = parseOptionalUUID(q.BillID)
	in.PeriodID, _ = parseOptionalUUID(q.PeriodID)
	if q.Status != "" {
		s := payment.Status(q.Status)
		in.Status = &s
	}
	if q.Method != "" {
		m := payment.Method(q.Method)
		in.Method = &m
	}
	in.PaidFrom, _ = parseDate(q.From)
	if to, _ := parseDate(q.To); to != nil {
		// inclusive calendar day
		end := to.Add(24*time.Hour - time.Nanosecond)
		in.PaidTo = &end
	}
	return in, true
}

// List godoc
// @ID           listPayments
// @Summary      List payments
// @Description  Searchable by resident name, bill type name or receipt number
// @Tags         payments
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Param        search query string false "Search term"
// @Param        resident_id query string false "Resident ID" format(uuid)
// @Param        bill_id query string false "Bill ID" format(uuid)
// @Param        period_id query string false "Period ID" format(uuid)
// @Param        status query string false "Status" Enums(PENDING, COMPLETED, FAILED, REFUNDED)
// @Param        method query string false "Method" Enums(CASH, TRANSFER, DIGITAL_WALLET, CREDIT_CARD)
// @Param        from query string false "Paid on or after (YYYY-MM-DD)"
// @Param        to query string false "Paid on or before (YYYY-MM-DD)"
// @Success      200 {object} APIResponse[[]PaymentRecordResponse]
// @Security     BearerAuth
// @Router       /payments [get]
func (h *PaymentHandler) List(c *gin.Context) {
	in, ok := h.listInput(c)
	if !ok {
		return
	}
	result, err := h.payments.List(c.Request.Context(), in)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	out := make([]PaymentRecordResponse, len(result.Items))
	for i, r := range result.Items {
		out[i] = toPaymentRecordResponse(r)
	}
	h.SuccessWithMeta(c, out, result.Total, result.Page, result.PageSize)
}

// Summary godoc
// @ID           paymentSummary
// @Summary      Payment summary
// @Description  Completed total and count, today's count and counts per method for the same filters as the listing
// @Tags         payments
// @Produce      json
// @Param        search query string false "Search term"
// @Param        from query string false "Paid on or after (YYYY-MM-DD)"
// @Param        to query string false "Paid on or before (YYYY-MM-DD)"
// @Success      200 {object} APIResponse[apppayment.Summary]
// @Security     BearerAuth
// @Router       /payments/summary [get]
func (h *PaymentHandler) Summary(c *gin.Context) {
	in, ok := h.listInput(c)
	if !ok {
		return
	}
	summary, err := h.payments.Summary(c.Request.Context(), in)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// Get godoc
// @ID           getPayment
// @Summary      Get a payment
// @Tags         payments
// @Produce      json
// @Param        id path string true "Payment ID" format(uuid)
// @Success      200 {object} APIResponse[PaymentResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /payments/{id} [get]
func (h *PaymentHandler) Get(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	p, err := h.payments.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toPaymentResponse(p))
}

// Record godoc
// @ID           recordPayment
// @Summary      Record a payment
// @Description  Completed payments get a receipt number; the bill becomes PAID once fully covered
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        request body RecordPaymentRequest true "Payment"
// @Success      201 {object} APIResponse[PaymentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /payments [post]
func (h *PaymentHandler) Record(c *gin.Context) {
	var req RecordPaymentRequest
	if !h.BindJSON(c, &req) {
		return
	}
	p, err := h.payments.Record(c.Request.Context(), apppayment.RecordInput{
		BillID:           uuid.MustParse(req.BillID),
		Amount:           req.Amount,
		Method:           payment.Method(req.Method),
		Status:           payment.Status(req.Status),
		Notes:            req.Notes,
		InstallmentIndex: req.InstallmentIndex,
		PaidAt:           req.PaidAt,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.changed(c)
	h.Created(c, toPaymentResponse(p))
}

// UpdateStatus godoc
// @ID           updatePaymentStatus
// @Summary      Change a payment's status
// @Description  Refunding or failing a payment re-opens a PAID bill
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        id path string true "Payment ID" format(uuid)
// @Param        request body UpdatePaymentStatusRequest true "Status"
// @Success      200 {object} APIResponse[PaymentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /payments/{id}/status [put]
func (h *PaymentHandler) UpdateStatus(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var req UpdatePaymentStatusRequest
	if !h.BindJSON(c, &req) {
		return
	}
	p, err := h.payments.UpdateStatus(c.Request.Context(), id, payment.Status(req.Status))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.changed(c)
	h.Success(c, toPaymentResponse(p))
}

// Delete godoc
// @ID           deletePayment
// @Summary      Delete a payment
// @Tags         payments
// @Param        id path string true "Payment ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /payments/{id} [delete]
func (h *PaymentHandler) Delete(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	if err := h.payments.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.changed(c)
	h.NoContent(c)
}

// Checkout godoc
// @ID           checkoutPayment
// @Summary      Pay a bill online
// @Description  Opens a Midtrans Snap transaction for DIGITAL_WALLET or CREDIT_CARD. Residents may only pay their own bills.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        request body CheckoutRequest true "Checkout"
// @Success      201 {object} APIResponse[CheckoutResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      502 {object} ErrorResponse
// @Failure      503 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /payments/checkout [post]
func (h *PaymentHandler) Checkout(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	userID, err := claims.UserUUID()
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	var req CheckoutRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.payments.Checkout(c.Request.Context(), apppayment.CheckoutInput{
		BillID: uuid.MustParse(req.BillID),
		Amount: req.Amount,
		Method: payment.Method(req.Method),
		Actor:  apppayment.Actor{UserID: userID, Role: claims.Role},
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, CheckoutResponse{
		Payment:     toPaymentResponse(result.Payment),
		OrderID:     result.OrderID,
		Token:       result.Token,
		RedirectURL: result.RedirectURL,
	})
}

// MidtransNotification godoc
// @ID           midtransNotification
// @Summary      Midtrans payment notification
// @Description  Unauthenticated gateway callback verified by its signature key. Repeated notifications are acknowledged without effect.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Success      200 {object} APIResponse[apppayment.NotificationResult]
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      503 {object} ErrorResponse
// @Router       /payments/notifications/midtrans [post]
func (h *PaymentHandler) MidtransNotification(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxNotificationBytes+1))
	if err != nil {
		h.BadRequest(c, "Unable to read notification")
		return
	}
	if len(body) > maxNotificationBytes {
		h.Error(c, http.StatusRequestEntityTooLarge, dto.CodePayloadTooLarge, "Notification too large")
		return
	}

	result, err := h.payments.HandleNotification(c.Request.Context(), body)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if result.Changed {
		h.changed(c)
	}
	h.Success(c, result)
}
