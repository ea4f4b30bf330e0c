package handler

import (
	"github.com/gin-gonic/gin"

	appdashboard "github.com/kitabayar/backend/internal/application/dashboard"
)

// PeriodDetailQuery filters the period detail rows
type PeriodDetailQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=LUNAS SEBAGIAN BELUM_BAYAR"`
	Search string `form:"search" binding:"omitempty,max=100"`
}

// DashboardHandler serves the admin and resident dashboards
type DashboardHandler struct {
	BaseHandler
	dashboard *appdashboard.Service
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboard *appdashboard.Service) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// AdminStats godoc
// @ID           dashboardAdminStats
// @Summary      Admin dashboard statistics
// @Tags         dashboard
// @Produce      json
// @Success      200 {object} APIResponse[appdashboard.AdminStats]
// @Security     BearerAuth
// @Router       /dashboard/stats [get]
func (h *DashboardHandler) AdminStats(c *gin.Context) {
	stats, err := h.dashboard.AdminStats(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}

// BillsOverview godoc
// @ID           dashboardBillsOverview
// @Summary      Collection progress per period
// @Tags         dashboard
// @Produce      json
// @Success      200 {object} APIResponse[[]appdashboard.PeriodOverview]
// @Security     BearerAuth
// @Router       /dashboard/periods [get]
func (h *DashboardHandler) BillsOverview(c *gin.Context) {
	overview, err := h.dashboard.BillsOverview(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, overview)
}

// PeriodDetail godoc
// @ID           dashboardPeriodDetail
// @Summary      Per-resident progress of a period
// @Description  Resident rows with tier counts and the daily payments calendar
// @Tags         dashboard
// @Produce      json
// @Param        id path string true "Period ID" format(uuid)
// @Param        status query string false "Tier" Enums(LUNAS, SEBAGIAN, BELUM_BAYAR)
// @Param        search query string false "Name or house number"
// @Success      200 {object} APIResponse[appdashboard.PeriodDetail]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /dashboard/periods/{id} [get]
func (h *DashboardHandler) PeriodDetail(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var q PeriodDetailQuery
	if !h.BindQuery(c, &q) {
		return
	}
	detail, err := h.dashboard.PeriodDetail(c.Request.Context(), id, appdashboard.PeriodDetailInput{
		Status: q.Status,
		Search: q.Search,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, detail)
}

// MyOverview godoc
// @ID           myOverview
// @Summary      Resident self-service overview
// @Description  Profile, unpaid bills with due classification, payment history and totals of the caller
// @Tags         me
// @Produce      json
// @Success      200 {object} APIResponse[appdashboard.ResidentOverview]
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /me/overview [get]
func (h *DashboardHandler) MyOverview(c *gin.Context) {
	userID, ok := h.CurrentUser(c)
	if !ok {
		return
	}
	overview, err := h.dashboard.ResidentOverview(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, overview)
}
