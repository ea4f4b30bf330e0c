package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appbilling "github.com/kitabayar/backend/internal/application/billing"
	"github.com/kitabayar/backend/internal/domain/billing"
	"github.com/kitabayar/backend/internal/interfaces/http/dto"
)

// StatsInvalidator drops cached dashboard statistics after a write
type StatsInvalidator interface {
	InvalidateAdminStats(ctx context.Context)
}

// BillHandler handles bills
type BillHandler struct {
	BaseHandler
	bills *appbilling.BillService
	stats StatsInvalidator
}

// NewBillHandler creates a new bill handler. stats may be nil.
func NewBillHandler(bills *appbilling.BillService, stats StatsInvalidator) *BillHandler {
	return &BillHandler{bills: bills, stats: stats}
}

func (h *BillHandler) changed(c *gin.Context) {
	if h.stats != nil {
		h.stats.InvalidateAdminStats(c.Request.Context())
	}
}

// List godoc
// @ID           listBills
// @Summary      List bills
// @Tags         bills
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Param        resident_id query string false "Resident ID" format(uuid)
// @Param        bill_type_id query string false "Bill type ID" format(uuid)
// @Param        period_id query string false "Period ID" format(uuid)
// @Param        status query string false "Status" Enums(PENDING, PAID, OVERDUE, CANCELLED)
// @Param        due_from query string false "Due on or after (YYYY-MM-DD)"
// @Param        due_to query string false "Due on or before (YYYY-MM-DD)"
// @Param        order_by query string false "Sort column" Enums(due_date, amount, created_at, status)
// @Param        order_dir query string false "Sort direction" Enums(asc, desc)
// @Success      200 {object} APIResponse[[]BillResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /bills [get]
func (h *BillHandler) List(c *gin.Context) {
	var q BillListQuery
	if !h.BindQuery(c, &q) {
		return
	}
	page := dto.ListRequest{Page: q.Page, PageSize: q.PageSize}
	page.Normalize()

	in := appbilling.BillListInput{
		OrderBy:  q.OrderBy,
		OrderDir: q.OrderDir,
		Page:     page.Page,
		PageSize: page.PageSize,
	}
	in.ResidentID, _ = parseOptionalUUID(q.ResidentID)
	in.BillTypeID, _ = parseOptionalUUID(q.BillTypeID)
	in.PeriodID, _ = parseOptionalUUID(q.PeriodID)
	in.DueAfter, _ = parseDate(q.DueFrom)
	in.DueBefore, _ = parseDate(q.DueTo)
	if q.Status != "" {
		in.Statuses = []billing.BillStatus{billing.BillStatus(q.Status)}
	}

	result, err := h.bills.List(c.Request.Context(), in)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	out := make([]BillResponse, len(result.Items))
	for i, v := range result.Items {
		out[i] = toBillResponse(v)
	}
	h.SuccessWithMeta(c, out, result.Total, result.Page, result.PageSize)
}

// Get godoc
// @ID           getBill
// @Summary      Get a bill
// @Tags         bills
// @Produce      json
// @Param        id path string true "Bill ID" format(uuid)
// @Success      200 {object} APIResponse[BillResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /bills/{id} [get]
func (h *BillHandler) Get(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	v, err := h.bills.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toBillResponse(v))
}

// Create godoc
// @ID           createBill
// @Summary      Create a bill
// @Description  Amount defaults to the bill type's base amount and the due date to the period's
// @Tags         bills
// @Accept       json
// @Produce      json
// @Param        request body BillRequest true "Bill"
// @Success      201 {object} APIResponse[BillResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /bills [post]
func (h *BillHandler) Create(c *gin.Context) {
	var req BillRequest
	if !h.BindJSON(c, &req) {
		return
	}
	due, err := parseDate(req.DueDate)
	if err != nil {
		h.BadRequest(c, "due_date must use the YYYY-MM-DD format")
		return
	}
	in := appbilling.CreateBillInput{
		ResidentID:  uuid.MustParse(req.ResidentID),
		BillTypeID:  uuid.MustParse(req.BillTypeID),
		Period:      req.Period,
		Amount:      req.Amount,
		DueDate:     due,
		Description: req.Description,
	}
	in.PeriodID, _ = parseOptionalUUID(req.PeriodID)

	v, err := h.bills.Create(c.Request.Context(), in)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.changed(c)
	h.Created(c, toBillResponse(v))
}

// Update godoc
// @ID           updateBill
// @Summary      Update a bill
// @Tags         bills
// @Accept       json
// @Produce      json
// @Param        id path string true "Bill ID" format(uuid)
// @Param        request body UpdateBillRequest true "Changes"
// @Success      200 {object} APIResponse[BillResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /bills/{id} [put]
func (h *BillHandler) Update(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var req UpdateBillRequest
	if !h.BindJSON(c, &req) {
		return
	}
	in := appbilling.UpdateBillInput{
		Amount:      req.Amount,
		Description: req.Description,
	}
	if req.DueDate != nil {
		due, err := parseDate(*req.DueDate)
		if err != nil || due == nil {
			h.BadRequest(c, "due_date must use the YYYY-MM-DD format")
			return
		}
		in.DueDate = due
	}
	if req.Status != nil {
		status := billing.BillStatus(*req.Status)
		in.Status = &status
	}

	v, err := h.bills.Update(c.Request.Context(), id, in)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.changed(c)
	h.Success(c, toBillResponse(v))
}

// Cancel godoc
// @ID           cancelBill
// @Summary      Cancel a bill
// @Tags         bills
// @Produce      json
// @Param        id path string true "Bill ID" format(uuid)
// @Success      200 {object} APIResponse[BillResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /bills/{id}/cancel [post]
func (h *BillHandler) Cancel(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	v, err := h.bills.Cancel(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.changed(c)
	h.Success(c, toBillResponse(v))
}

// Delete godoc
// @ID           deleteBill
// @Summary      Delete a bill
// @Description  Removes the bill with its payments
// @Tags         bills
// @Param        id path string true "Bill ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /bills/{id} [delete]
func (h *BillHandler) Delete(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	if err := h.bills.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.changed(c)
	h.NoContent(c)
}

// Issue godoc
// @ID           issueBills
// @Summary      Issue bills for a period
// @Description  Creates one bill per active resident; residents already billed are skipped
// @Tags         bills
// @Accept       json
// @Produce      json
// @Param        id path string true "Period ID" format(uuid)
// @Param        request body IssueRequest true "Bill type"
// @Success      200 {object} APIResponse[appbilling.IssueResult]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /bill-periods/{id}/issue [post]
func (h *BillHandler) Issue(c *gin.Context) {
	periodID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var req IssueRequest
	if !h.BindJSON(c, &req) {
		return
	}
	result, err := h.bills.IssueForPeriod(c.Request.Context(), appbilling.IssueInput{
		PeriodID:   periodID,
		BillTypeID: uuid.MustParse(req.BillTypeID),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if result.Created > 0 {
		h.changed(c)
	}
	h.Success(c, result)
}

// MarkOverdue godoc
// @ID           markBillsOverdue
// @Summary      Mark overdue bills
// @Description  PENDING bills past their due date become OVERDUE
// @Tags         bills
// @Produce      json
// @Success      200 {object} APIResponse[CountData]
// @Security     BearerAuth
// @Router       /bills/mark-overdue [post]
func (h *BillHandler) MarkOverdue(c *gin.Context) {
	n, err := h.bills.MarkOverdue(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if n > 0 {
		h.changed(c)
	}
	h.Success(c, CountData{Count: n})
}
