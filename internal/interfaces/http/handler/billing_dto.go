package handler

import (
	"time"

	"github.com/shopspring/decimal"

	appbilling "github.com/kitabayar/backend/internal/application/billing"
	"github.com/kitabayar/backend/internal/domain/billing"
)

// CategoryRequest is the body of category create and update
type CategoryRequest struct {
	Name        string `json:"name" binding:"required,max=100" example:"Iuran Bulanan"`
	Description string `json:"description" binding:"omitempty,max=500"`
	Color       string `json:"color" binding:"omitempty,hexcolor" example:"#3B82F6"`
	Icon        string `json:"icon" binding:"omitempty,max=50" example:"home"`
	Active      *bool  `json:"active"`
}

// BillTypeRequest is the body of bill type create and update
type BillTypeRequest struct {
	CategoryID  string          `json:"category_id" binding:"required,uuid"`
	Name        string          `json:"name" binding:"required,max=100" example:"Iuran Kebersihan"`
	Description string          `json:"description" binding:"omitempty,max=500"`
	BaseAmount  decimal.Decimal `json:"base_amount" swaggertype:"string" example:"50000"`
	Active      *bool           `json:"active"`
}

// PeriodRequest is the body of period create and update
type PeriodRequest struct {
	CategoryID   string `json:"category_id" binding:"required,uuid"`
	Name         string `json:"name" binding:"required,max=100" example:"Januari 2025"`
	Description  string `json:"description" binding:"omitempty,max=500"`
	StartDate    string `json:"start_date" binding:"required,datetime=2006-01-02" example:"2025-01-01"`
	EndDate      string `json:"end_date" binding:"required,datetime=2006-01-02" example:"2025-01-31"`
	DueDate      string `json:"due_date" binding:"omitempty,datetime=2006-01-02" example:"2025-01-31"`
	Installments int    `json:"installments" binding:"omitempty,min=1" example:"4"`
	Active       *bool  `json:"active"`
}

// IssueRequest asks for one bill per active resident
type IssueRequest struct {
	BillTypeID string `json:"bill_type_id" binding:"required,uuid"`
}

// ConfigListQuery filters configuration listings
type ConfigListQuery struct {
	CategoryID string `form:"category_id" binding:"omitempty,uuid"`
	ActiveOnly bool   `form:"active_only"`
}

// CategoryResponse is a bill category
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Color       string    `json:"color"`
	Icon        string    `json:"icon"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BillTypeResponse is a bill type
type BillTypeResponse struct {
	ID          string          `json:"id"`
	CategoryID  string          `json:"category_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	BaseAmount  decimal.Decimal `json:"base_amount" swaggertype:"string"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// PeriodResponse is a billing period
type PeriodResponse struct {
	ID           string    `json:"id"`
	CategoryID   string    `json:"category_id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	StartDate    string    `json:"start_date"`
	EndDate      string    `json:"end_date"`
	DueDate      string    `json:"due_date"`
	Installments int       `json:"installments"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BillRequest creates a single bill
type BillRequest struct {
	ResidentID  string           `json:"resident_id" binding:"required,uuid"`
	BillTypeID  string           `json:"bill_type_id" binding:"required,uuid"`
	PeriodID    string           `json:"period_id" binding:"omitempty,uuid"`
	Period      string           `json:"period" binding:"omitempty,max=50" example:"2025-01"`
	Amount      *decimal.Decimal `json:"amount" swaggertype:"string" example:"50000"`
	DueDate     string           `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
	Description string           `json:"description" binding:"omitempty,max=500"`
}

// UpdateBillRequest changes a bill; omitted fields stay as they are
type UpdateBillRequest struct {
	Amount      *decimal.Decimal `json:"amount" swaggertype:"string"`
	DueDate     *string          `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
	Description *string          `json:"description" binding:"omitempty,max=500"`
	Status      *string          `json:"status" binding:"omitempty,oneof=PENDING PAID OVERDUE CANCELLED"`
}

// BillListQuery filters the bill listing
type BillListQuery struct {
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	ResidentID string `form:"resident_id" binding:"omitempty,uuid"`
	BillTypeID string `form:"bill_type_id" binding:"omitempty,uuid"`
	PeriodID   string `form:"period_id" binding:"omitempty,uuid"`
	Status     string `form:"status" binding:"omitempty,oneof=PENDING PAID OVERDUE CANCELLED"`
	DueFrom    string `form:"due_from" binding:"omitempty,datetime=2006-01-02"`
	DueTo      string `form:"due_to" binding:"omitempty,datetime=2006-01-02"`
	OrderBy    string `form:"order_by" binding:"omitempty,oneof=due_date amount created_at status"`
	OrderDir   string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// BillResponse is a bill with its resident and type names
type BillResponse struct {
	ID           string          `json:"id"`
	ResidentID   string          `json:"resident_id"`
	ResidentName string          `json:"resident_name"`
	HouseNumber  string          `json:"house_number"`
	BillTypeID   string          `json:"bill_type_id"`
	BillTypeName string          `json:"bill_type_name"`
	CategoryID   string          `json:"category_id"`
	PeriodID     *string         `json:"period_id,omitempty"`
	Period       string          `json:"period"`
	Amount       decimal.Decimal `json:"amount" swaggertype:"string"`
	PaidAmount   decimal.Decimal `json:"paid_amount" swaggertype:"string"`
	Remaining    decimal.Decimal `json:"remaining_amount" swaggertype:"string"`
	DueDate      string          `json:"due_date"`
	Status       string          `json:"status"`
	Description  string          `json:"description"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func toCategoryResponse(c *billing.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID.String(),
		Name:        c.Name,
		Description: c.Description,
		Color:       c.Color,
		Icon:        c.Icon,
		Active:      c.Active,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func toBillTypeResponse(bt *billing.BillType) BillTypeResponse {
	return BillTypeResponse{
		ID:          bt.ID.String(),
		CategoryID:  bt.CategoryID.String(),
		Name:        bt.Name,
		Description: bt.Description,
		BaseAmount:  bt.BaseAmount,
		Active:      bt.Active,
		CreatedAt:   bt.CreatedAt,
		UpdatedAt:   bt.UpdatedAt,
	}
}

func toPeriodResponse(p *billing.Period) PeriodResponse {
	return PeriodResponse{
		ID:           p.ID.String(),
		CategoryID:   p.CategoryID.String(),
		Name:         p.Name,
		Description:  p.Description,
		StartDate:    formatDate(p.StartDate),
		EndDate:      formatDate(p.EndDate),
		DueDate:      formatDate(p.DueDate),
		Installments: p.Installments,
		Active:       p.Active,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func toBillResponse(v *appbilling.BillView) BillResponse {
	resp := BillResponse{
		ID:           v.ID.String(),
		ResidentID:   v.ResidentID.String(),
		ResidentName: v.ResidentName,
		HouseNumber:  v.HouseNumber,
		BillTypeID:   v.BillTypeID.String(),
		BillTypeName: v.BillTypeName,
		CategoryID:   v.CategoryID.String(),
		Period:       v.Period,
		Amount:       v.Amount,
		PaidAmount:   v.PaidAmount,
		Remaining:    decimal.Max(v.Amount.Sub(v.PaidAmount), decimal.Zero),
		DueDate:      formatDate(v.DueDate),
		Status:       v.Status.String(),
		Description:  v.Description,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
	if v.PeriodID != nil {
		id := v.PeriodID.String()
		resp.PeriodID = &id
	}
	return resp
}
