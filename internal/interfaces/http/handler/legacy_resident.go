package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	residentapp "github.com/kitabayar/backend/internal/application/resident"
	"github.com/kitabayar/backend/internal/domain/resident"
	"github.com/kitabayar/backend/internal/domain/shared"
	"github.com/kitabayar/backend/internal/infrastructure/logger"
	"github.com/kitabayar/backend/internal/interfaces/http/dto"
)

// LegacyResident is the resident shape of /api/residents.
// Missing values render as "" and createdAt is a calendar date.
type LegacyResident struct {
	ID           string `json:"id"`
	FullName     string `json:"fullName"`
	Email        string `json:"email"`
	PhoneNumber  string `json:"phoneNumber"`
	Address      string `json:"address"`
	HouseNumber  string `json:"houseNumber"`
	IdentityCard string `json:"identityCard"`
	RTRW         string `json:"rtRw"`
	Kelurahan    string `json:"kelurahan"`
	Kecamatan    string `json:"kecamatan"`
	City         string `json:"city"`
	PostalCode   string `json:"postalCode"`
	IsActive     bool   `json:"isActive"`
	CreatedAt    string `json:"createdAt" example:"2025-01-15"`
}

// LegacyResidentRequest is the body of POST and PUT /api/residents
type LegacyResidentRequest struct {
	ID           string `json:"id"`
	FullName     string `json:"fullName"`
	Email        string `json:"email"`
	PhoneNumber  string `json:"phoneNumber"`
	Address      string `json:"address"`
	HouseNumber  string `json:"houseNumber"`
	IdentityCard string `json:"identityCard"`
	RTRW         string `json:"rtRw"`
	Kelurahan    string `json:"kelurahan"`
	Kecamatan    string `json:"kecamatan"`
	City         string `json:"city"`
	PostalCode   string `json:"postalCode"`
	IsActive     *bool  `json:"isActive"`
}

// LegacyDeleteRequest is the body of DELETE /api/residents
type LegacyDeleteRequest struct {
	ID string `json:"id"`
}

// LegacyError is the error body of /api/residents
type LegacyError struct {
	Error   string                 `json:"error"`
	Code    string                 `json:"code,omitempty"`
	Details []dto.ValidationDetail `json:"details,omitempty"`
}

func (r LegacyResidentRequest) profile() resident.Profile {
	return resident.Profile{
		FullName:     r.FullName,
		Email:        r.Email,
		PhoneNumber:  r.PhoneNumber,
		Address:      r.Address,
		HouseNumber:  r.HouseNumber,
		IdentityCard: r.IdentityCard,
		RTRW:         r.RTRW,
		Kelurahan:    r.Kelurahan,
		Kecamatan:    r.Kecamatan,
		City:         r.City,
		PostalCode:   r.PostalCode,
		Active:       r.IsActive,
	}
}

// toLegacyResident converts a resident to the legacy shape
func toLegacyResident(r *resident.Resident) LegacyResident {
	return LegacyResident{
		ID:           r.ID.String(),
		FullName:     r.FullName,
		Email:        deref(r.Email),
		PhoneNumber:  deref(r.PhoneNumber),
		Address:      deref(r.Address),
		HouseNumber:  deref(r.HouseNumber),
		IdentityCard: deref(r.IdentityCard),
		RTRW:         deref(r.RTRW),
		Kelurahan:    deref(r.Kelurahan),
		Kecamatan:    deref(r.Kecamatan),
		City:         deref(r.City),
		PostalCode:   deref(r.PostalCode),
		IsActive:     r.Active,
		CreatedAt:    legacyDate(r.CreatedAt),
	}
}

// legacyDate renders t as its UTC calendar date
func legacyDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(DateLayout)
}

// profileDetails reports every invalid field of a profile after trimming
func profileDetails(p resident.Profile) []dto.ValidationDetail {
	p = p.Normalize()
	var details []dto.ValidationDetail
	add := func(field, msg string) {
		details = append(details, dto.ValidationDetail{Field: field, Message: msg})
	}
	if p.FullName == "" {
		add("fullName", "fullName is required")
	}
	if p.Email != "" && !resident.IsValidEmail(p.Email) {
		add("email", "Invalid email format")
	}
	if p.PhoneNumber != "" && !resident.IsValidPhone(p.PhoneNumber) {
		add("phoneNumber", "Phone number must be 10-15 digits with an optional leading +")
	}
	if p.IdentityCard != "" && !resident.IsValidIdentityCard(p.IdentityCard) {
		add("identityCard", "Identity card number (NIK) must be exactly 16 digits")
	}
	if p.PostalCode != "" && !resident.IsValidPostalCode(p.PostalCode) {
		add("postalCode", "Postal code must be exactly 5 digits")
	}
	return details
}

// LegacyResidentHandler serves the unversioned /api/residents surface
type LegacyResidentHandler struct {
	residents *residentapp.Service
	stats     StatsInvalidator
}

// NewLegacyResidentHandler creates a new legacy resident handler. stats may be nil.
func NewLegacyResidentHandler(residents *residentapp.Service, stats StatsInvalidator) *LegacyResidentHandler {
	return &LegacyResidentHandler{residents: residents, stats: stats}
}

func (h *LegacyResidentHandler) changed(c *gin.Context) {
	if h.stats != nil {
		h.stats.InvalidateAdminStats(c.Request.Context())
	}
}

func (h *LegacyResidentHandler) fail(c *gin.Context, err error) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		c.JSON(dto.HTTPStatus(domainErr.Code), LegacyError{Error: domainErr.Message, Code: domainErr.Code})
		return
	}
	logger.FromGin(c).Error("Resident request failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, LegacyError{Error: "Internal server error"})
}

func (h *LegacyResidentHandler) notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, LegacyError{Error: "Resident not found", Code: dto.CodeNotFound})
}

// List godoc
// @ID           listResidentsLegacy
// @Summary      List residents (legacy)
// @Description  Every resident newest first, or only the one matching ?id. Unknown ids yield an empty array.
// @Tags         residents-legacy
// @Produce      json
// @Param        id query string false "Resident ID"
// @Success      200 {array} LegacyResident
// @Failure      500 {object} LegacyError
// @Security     BearerAuth
// @Router       /api/residents [get]
func (h *LegacyResidentHandler) List(c *gin.Context) {
	items, err := h.residents.ListByID(c.Request.Context(), strings.TrimSpace(c.Query("id")))
	if err != nil {
		h.fail(c, err)
		return
	}
	out := make([]LegacyResident, 0, len(items))
	for _, r := range items {
		out = append(out, toLegacyResident(r))
	}
	c.JSON(http.StatusOK, out)
}

// Create godoc
// @ID           createResidentLegacy
// @Summary      Create a resident (legacy)
// @Tags         residents-legacy
// @Accept       json
// @Produce      json
// @Param        request body LegacyResidentRequest true "Resident"
// @Success      200 {object} LegacyResident
// @Failure      400 {object} LegacyError
// @Failure      409 {object} LegacyError
// @Failure      500 {object} LegacyError
// @Security     BearerAuth
// @Router       /api/residents [post]
func (h *LegacyResidentHandler) Create(c *gin.Context) {
	var req LegacyResidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, LegacyError{Error: "Invalid request body", Code: dto.CodeBadRequest})
		return
	}
	p := req.profile()
	if details := profileDetails(p); len(details) > 0 {
		c.JSON(http.StatusBadRequest, LegacyError{Error: details[0].Message, Code: dto.CodeValidation, Details: details})
		return
	}

	r, err := h.residents.Create(c.Request.Context(), p)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.changed(c)
	c.JSON(http.StatusOK, toLegacyResident(r))
}

// Replace godoc
// @ID           replaceResidentLegacy
// @Summary      Replace a resident (legacy)
// @Description  Overwrites every mutable field; omitted fields are cleared.
// @Tags         residents-legacy
// @Accept       json
// @Produce      json
// @Param        request body LegacyResidentRequest true "Resident with id"
// @Success      200 {object} dto.SuccessMessage
// @Failure      400 {object} LegacyError
// @Failure      404 {object} LegacyError
// @Failure      500 {object} LegacyError
// @Security     BearerAuth
// @Router       /api/residents [put]
func (h *LegacyResidentHandler) Replace(c *gin.Context) {
	var req LegacyResidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, LegacyError{Error: "Invalid request body", Code: dto.CodeBadRequest})
		return
	}
	if strings.TrimSpace(req.ID) == "" {
		c.JSON(http.StatusBadRequest, LegacyError{Error: "id is required", Code: dto.CodeBadRequest})
		return
	}
	id, err := uuid.Parse(strings.TrimSpace(req.ID))
	if err != nil {
		h.notFound(c)
		return
	}
	p := req.profile()
	if details := profileDetails(p); len(details) > 0 {
		c.JSON(http.StatusBadRequest, LegacyError{Error: details[0].Message, Code: dto.CodeValidation, Details: details})
		return
	}

	if _, err := h.residents.Replace(c.Request.Context(), id, p); err != nil {
		if shared.IsNotFound(err) {
			h.notFound(c)
			return
		}
		h.fail(c, err)
		return
	}
	h.changed(c)
	c.JSON(http.StatusOK, dto.SuccessMessage{Success: true})
}

// Delete godoc
// @ID           deleteResidentLegacy
// @Summary      Delete a resident (legacy)
// @Description  Removes the resident with its bills and payments.
// @Tags         residents-legacy
// @Accept       json
// @Produce      json
// @Param        request body LegacyDeleteRequest true "Resident id"
// @Success      200 {object} dto.SuccessMessage
// @Failure      400 {object} LegacyError
// @Failure      404 {object} LegacyError
// @Failure      500 {object} LegacyError
// @Security     BearerAuth
// @Router       /api/residents [delete]
func (h *LegacyResidentHandler) Delete(c *gin.Context) {
	var req LegacyDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.ID) == "" {
		c.JSON(http.StatusBadRequest, LegacyError{Error: "id is required", Code: dto.CodeBadRequest})
		return
	}
	id, err := uuid.Parse(strings.TrimSpace(req.ID))
	if err != nil {
		h.notFound(c)
		return
	}
	if err := h.residents.Delete(c.Request.Context(), id); err != nil {
		if shared.IsNotFound(err) {
			h.notFound(c)
			return
		}
		h.fail(c, err)
		return
	}
	h.changed(c)
	c.JSON(http.StatusOK, dto.SuccessMessage{Success: true})
}
