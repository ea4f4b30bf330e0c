package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	residentapp "github.com/kitabayar/backend/internal/application/resident"
	"github.com/kitabayar/backend/internal/interfaces/http/dto"
)

// ResidentHandler handles the versioned resident endpoints
type ResidentHandler struct {
	BaseHandler
	residents *residentapp.Service
	stats     StatsInvalidator
}

// NewResidentHandler creates a new resident handler. stats may be nil.
func NewResidentHandler(residents *residentapp.Service, stats StatsInvalidator) *ResidentHandler {
	return &ResidentHandler{residents: residents, stats: stats}
}

func (h *ResidentHandler) changed(c *gin.Context) {
	if h.stats != nil {
		h.stats.InvalidateAdminStats(c.Request.Context())
	}
}

// List godoc
// @ID           listResidents
// @Summary      List residents
// @Description  Paginated residents, newest first, searchable by name, house number, NIK or phone
// @Tags         residents
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Param        search query string false "Search term"
// @Param        active query bool false "Filter by active flag"
// @Param        rt_rw query string false "Filter by RT/RW"
// @Success      200 {object} APIResponse[[]ResidentResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /residents [get]
func (h *ResidentHandler) List(c *gin.Context) {
	var q ResidentListQuery
	if !h.BindQuery(c, &q) {
		return
	}
	page := dto.ListRequest{Page: q.Page, PageSize: q.PageSize}
	page.Normalize()

	result, err := h.residents.List(c.Request.Context(), residentapp.ListInput{
		Search:   q.Search,
		Active:   q.Active,
		RTRW:     q.RTRW,
		Page:     page.Page,
		PageSize: page.PageSize,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, toResidentResponses(result.Items), result.Total, result.Page, result.PageSize)
}

// Get godoc
// @ID           getResident
// @Summary      Get a resident
// @Tags         residents
// @Produce      json
// @Param        id path string true "Resident ID" format(uuid)
// @Success      200 {object} APIResponse[ResidentResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /residents/{id} [get]
func (h *ResidentHandler) Get(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	r, err := h.residents.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toResidentResponse(r))
}

// Create godoc
// @ID           createResident
// @Summary      Create a resident
// @Tags         residents
// @Accept       json
// @Produce      json
// @Param        request body ResidentRequest true "Resident"
// @Success      201 {object} APIResponse[ResidentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /residents [post]
func (h *ResidentHandler) Create(c *gin.Context) {
	var req ResidentRequest
	if !h.BindJSON(c, &req) {
		return
	}
	r, err := h.residents.Create(c.Request.Context(), req.profile())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.changed(c)
	h.Created(c, toResidentResponse(r))
}

// Update godoc
// @ID           updateResident
// @Summary      Replace a resident
// @Description  Overwrites every mutable field; omitted optional fields are cleared
// @Tags         residents
// @Accept       json
// @Produce      json
// @Param        id path string true "Resident ID" format(uuid)
// @Param        request body ResidentRequest true "Resident"
// @Success      200 {object} APIResponse[ResidentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /residents/{id} [put]
func (h *ResidentHandler) Update(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var req ResidentRequest
	if !h.BindJSON(c, &req) {
		return
	}
	r, err := h.residents.Replace(c.Request.Context(), id, req.profile())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.changed(c)
	h.Success(c, toResidentResponse(r))
}

// Delete godoc
// @ID           deleteResident
// @Summary      Delete a resident
// @Description  Removes the resident with its bills and payments
// @Tags         residents
// @Param        id path string true "Resident ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /residents/{id} [delete]
func (h *ResidentHandler) Delete(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	if err := h.residents.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.changed(c)
	h.NoContent(c)
}

// LinkUser godoc
// @ID           linkResidentUser
// @Summary      Link a login account to a resident
// @Tags         residents
// @Accept       json
// @Produce      json
// @Param        id path string true "Resident ID" format(uuid)
// @Param        request body LinkUserRequest true "User to link"
// @Success      200 {object} APIResponse[ResidentResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /residents/{id}/user [put]
func (h *ResidentHandler) LinkUser(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var req LinkUserRequest
	if !h.BindJSON(c, &req) {
		return
	}
	r, err := h.residents.LinkUser(c.Request.Context(), id, uuid.MustParse(req.UserID))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toResidentResponse(r))
}

// UnlinkUser godoc
// @ID           unlinkResidentUser
// @Summary      Detach the login account from a resident
// @Tags         residents
// @Produce      json
// @Param        id path string true "Resident ID" format(uuid)
// @Success      200 {object} APIResponse[ResidentResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /residents/{id}/user [delete]
func (h *ResidentHandler) UnlinkUser(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	r, err := h.residents.UnlinkUser(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toResidentResponse(r))
}
