package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appbilling "github.com/kitabayar/backend/internal/application/billing"
)

// BillingConfigHandler handles bill categories, bill types and periods
type BillingConfigHandler struct {
	BaseHandler
	config *appbilling.ConfigService
}

// NewBillingConfigHandler creates a new billing configuration handler
func NewBillingConfigHandler(config *appbilling.ConfigService) *BillingConfigHandler {
	return &BillingConfigHandler{config: config}
}

// ListCategories godoc
// @ID           listBillCategories
// @Summary      List bill categories
// @Tags         billing-config
// @Produce      json
// @Param        active_only query bool false "Only active categories"
// @Success      200 {object} APIResponse[[]CategoryResponse]
// @Security     BearerAuth
// @Router       /bill-categories [get]
func (h *BillingConfigHandler) ListCategories(c *gin.Context) {
	var q ConfigListQuery
	if !h.BindQuery(c, &q) {
		return
	}
	items, err := h.config.ListCategories(c.Request.Context(), q.ActiveOnly)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	out := make([]CategoryResponse, len(items))
	for i, cat := range items {
		out[i] = toCategoryResponse(cat)
	}
	h.Success(c, out)
}

// GetCategory godoc
// @ID           getBillCategory
// @Summary      Get a bill category
// @Tags         billing-config
// @Produce      json
// @Param        id path string true "Category ID" format(uuid)
// @Success      200 {object} APIResponse[CategoryResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /bill-categories/{id} [get]
func (h *BillingConfigHandler) GetCategory(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	cat, err := h.config.GetCategory(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toCategoryResponse(cat))
}

// CreateCategory godoc
// @ID           createBillCategory
// @Summary      Create a bill category
// @Tags         billing-config
// @Accept       json
// @Produce      json
// @Param        request body CategoryRequest true "Category"
// @Success      201 {object} APIResponse[CategoryResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /bill-categories [post]
func (h *BillingConfigHandler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if !h.BindJSON(c, &req) {
		return
	}
	cat, err := h.config.CreateCategory(c.Request.Context(), categoryInput(req))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toCategoryResponse(cat))
}

// UpdateCategory godoc
// @ID           updateBillCategory
// @Summary      Update a bill category
// @Tags         billing-config
// @Accept       json
// @Produce      json
// @Param        id path string true "Category ID" format(uuid)
// @Param        request body CategoryRequest true "Category"
// @Success      200 {object} APIResponse[CategoryResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /bill-categories/{id} [put]
func (h *BillingConfigHandler) UpdateCategory(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var req CategoryRequest
	if !h.BindJSON(c, &req) {
		return
	}
	cat, err := h.config.UpdateCategory(c.Request.Context(), id, categoryInput(req))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toCategoryResponse(cat))
}

// DeleteCategory godoc
// @ID           deleteBillCategory
// @Summary      Delete a bill category
// @Description  Fails with 409 while bill types or periods still reference it
// @Tags         billing-config
// @Param        id path string true "Category ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /bill-categories/{id} [delete]
func (h *BillingConfigHandler) DeleteCategory(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	if err := h.config.DeleteCategory(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListBillTypes godoc
// @ID           listBillTypes
// @Summary      List bill types
// @Tags         billing-config
// @Produce      json
// @Param        category_id query string false "Category ID" format(uuid)
// @Param        active_only query bool false "Only active bill types"
// @Success      200 {object} APIResponse[[]BillTypeResponse]
// @Security     BearerAuth
// @Router       /bill-types [get]
func (h *BillingConfigHandler) ListBillTypes(c *gin.Context) {
	var q ConfigListQuery
	if !h.BindQuery(c, &q) {
		return
	}
	categoryID, _ := parseOptionalUUID(q.CategoryID)
	items, err := h.config.ListBillTypes(c.Request.Context(), categoryID, q.ActiveOnly)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	out := make([]BillTypeResponse, len(items))
	for i, bt := range items {
		out[i] = toBillTypeResponse(bt)
	}
	h.Success(c, out)
}

// GetBillType godoc
// @ID           getBillType
// @Summary      Get a bill type
// @Tags         billing-config
// @Produce      json
// @Param        id path string true "Bill type ID" format(uuid)
// @Success      200 {object} APIResponse[BillTypeResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /bill-types/{id} [get]
func (h *BillingConfigHandler) GetBillType(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	bt, err := h.config.GetBillType(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toBillTypeResponse(bt))
}

// CreateBillType godoc
// @ID           createBillType
// @Summary      Create a bill type
// @Tags         billing-config
// @Accept       json
// @Produce      json
// @Param        request body BillTypeRequest true "Bill type"
// @Success      201 {object} APIResponse[BillTypeResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /bill-types [post]
func (h *BillingConfigHandler) CreateBillType(c *gin.Context) {
	var req BillTypeRequest
	if !h.BindJSON(c, &req) {
		return
	}
	bt, err := h.config.CreateBillType(c.Request.Context(), billTypeInput(req))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toBillTypeResponse(bt))
}

// UpdateBillType godoc
// @ID           updateBillType
// @Summary      Update a bill type
// @Tags         billing-config
// @Accept       json
// @Produce      json
// @Param        id path string true "Bill type ID" format(uuid)
// @Param        request body BillTypeRequest true "Bill type"
// @Success      200 {object} APIResponse[BillTypeResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /bill-types/{id} [put]
func (h *BillingConfigHandler) UpdateBillType(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var req BillTypeRequest
	if !h.BindJSON(c, &req) {
		return
	}
	bt, err := h.config.UpdateBillType(c.Request.Context(), id, billTypeInput(req))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toBillTypeResponse(bt))
}

// DeleteBillType godoc
// @ID           deleteBillType
// @Summary      Delete a bill type
// @Tags         billing-config
// @Param        id path string true "Bill type ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /bill-types/{id} [delete]
func (h *BillingConfigHandler) DeleteBillType(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	if err := h.config.DeleteBillType(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListPeriods godoc
// @ID           listBillPeriods
// @Summary      List billing periods
// @Tags         billing-config
// @Produce      json
// @Param        category_id query string false "Category ID" format(uuid)
// @Param        active_only query bool false "Only active periods"
// @Success      200 {object} APIResponse[[]PeriodResponse]
// @Security     BearerAuth
// @Router       /bill-periods [get]
func (h *BillingConfigHandler) ListPeriods(c *gin.Context) {
	var q ConfigListQuery
	if !h.BindQuery(c, &q) {
		return
	}
	categoryID, _ := parseOptionalUUID(q.CategoryID)
	items, err := h.config.ListPeriods(c.Request.Context(), categoryID, q.ActiveOnly)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	out := make([]PeriodResponse, len(items))
	for i, p := range items {
		out[i] = toPeriodResponse(p)
	}
	h.Success(c, out)
}

// GetPeriod godoc
// @ID           getBillPeriod
// @Summary      Get a billing period
// @Tags         billing-config
// @Produce      json
// @Param        id path string true "Period ID" format(uuid)
// @Success      200 {object} APIResponse[PeriodResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /bill-periods/{id} [get]
func (h *BillingConfigHandler) GetPeriod(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	p, err := h.config.GetPeriod(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toPeriodResponse(p))
}

// CreatePeriod godoc
// @ID           createBillPeriod
// @Summary      Create a billing period
// @Tags         billing-config
// @Accept       json
// @Produce      json
// @Param        request body PeriodRequest true "Period"
// @Success      201 {object} APIResponse[PeriodResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /bill-periods [post]
func (h *BillingConfigHandler) CreatePeriod(c *gin.Context) {
	var req PeriodRequest
	if !h.BindJSON(c, &req) {
		return
	}
	in, ok := h.periodInput(c, req)
	if !ok {
		return
	}
	p, err := h.config.CreatePeriod(c.Request.Context(), in)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toPeriodResponse(p))
}

// UpdatePeriod godoc
// @ID           updateBillPeriod
// @Summary      Update a billing period
// @Tags         billing-config
// @Accept       json
// @Produce      json
// @Param        id path string true "Period ID" format(uuid)
// @Param        request body PeriodRequest true "Period"
// @Success      200 {object} APIResponse[PeriodResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /bill-periods/{id} [put]
func (h *BillingConfigHandler) UpdatePeriod(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var req PeriodRequest
	if !h.BindJSON(c, &req) {
		return
	}
	in, ok := h.periodInput(c, req)
	if !ok {
		return
	}
	p, err := h.config.UpdatePeriod(c.Request.Context(), id, in)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toPeriodResponse(p))
}

// DeletePeriod godoc
// @ID           deleteBillPeriod
// @Summary      Delete a billing period
// @Tags         billing-config
// @Param        id path string true "Period ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /bill-periods/{id} [delete]
func (h *BillingConfigHandler) DeletePeriod(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	if err := h.config.DeletePeriod(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

func categoryInput(req CategoryRequest) appbilling.CategoryInput {
	return appbilling.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		Icon:        req.Icon,
		Active:      req.Active,
	}
}

// binding has already checked the uuid format
func billTypeInput(req BillTypeRequest) appbilling.BillTypeInput {
	return appbilling.BillTypeInput{
		CategoryID:  uuid.MustParse(req.CategoryID),
		Name:        req.Name,
		Description: req.Description,
		BaseAmount:  req.BaseAmount,
		Active:      req.Active,
	}
}

func (h *BillingConfigHandler) periodInput(c *gin.Context, req PeriodRequest) (appbilling.PeriodInput, bool) {
	start, err1 := time.Parse(DateLayout, req.StartDate)
	end, err2 := time.Parse(DateLayout, req.EndDate)
	due, err3 := parseDate(req.DueDate)
	if err1 != nil || err2 != nil || err3 != nil {
		h.BadRequest(c, "Dates must use the YYYY-MM-DD format")
		return appbilling.PeriodInput{}, false
	}
	return appbilling.PeriodInput{
		CategoryID:   uuid.MustParse(req.CategoryID),
		Name:         req.Name,
		Description:  req.Description,
		StartDate:    start,
		EndDate:      end,
		DueDate:      due,
		Installments: req.Installments,
		Active:       req.Active,
	}, true
}
