package handler

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kitabayar/backend/internal/domain/payment"
)

// RecordPaymentRequest is a payment taken by staff
type RecordPaymentRequest struct {
	BillID           string           `json:"bill_id" binding:"required,uuid"`
	Amount           *decimal.Decimal `json:"amount" swaggertype:"string" example:"25000"`
	Method           string           `json:"method" binding:"required,oneof=CASH TRANSFER DIGITAL_WALLET CREDIT_CARD"`
	Status           string           `json:"status" binding:"omitempty,oneof=PENDING COMPLETED"`
	Notes            string           `json:"notes" binding:"omitempty,max=500"`
	InstallmentIndex *int             `json:"installment_index" binding:"omitempty,min=1" example:"1"`
	PaidAt           *time.Time       `json:"paid_at"`
}

// UpdatePaymentStatusRequest moves a payment to a new status
type UpdatePaymentStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=COMPLETED FAILED REFUNDED"`
}

// CheckoutRequest opens a gateway payment
type CheckoutRequest struct {
	BillID string           `json:"bill_id" binding:"required,uuid"`
	Amount *decimal.Decimal `json:"amount" swaggertype:"string" example:"25000"`
	Method string           `json:"method" binding:"required,oneof=DIGITAL_WALLET CREDIT_CARD"`
}

// PaymentListQuery filters the payment listing
type PaymentListQuery struct {
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Search     string `form:"search" binding:"omitempty,max=100"`
	ResidentID string `form:"resident_id" binding:"omitempty,uuid"`
	BillID     string `form:"bill_id" binding:"omitempty,uuid"`
	PeriodID   string `form:"period_id" binding:"omitempty,uuid"`
	Status     string `form:"status" binding:"omitempty,oneof=PENDING COMPLETED FAILED REFUNDED"`
	Method     string `form:"method" binding:"omitempty,oneof=CASH TRANSFER DIGITAL_WALLET CREDIT_CARD"`
	From       string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To         string `form:"to" binding:"omitempty,datetime=2006-01-02"`
}

// PaymentResponse is a payment
type PaymentResponse struct {
	ID               string          `json:"id"`
	ResidentID       string          `json:"resident_id"`
	BillID           string          `json:"bill_id"`
	Amount           decimal.Decimal `json:"amount" swaggertype:"string"`
	Method           string          `json:"method"`
	MethodLabel      string          `json:"method_label"`
	Status           string          `json:"status"`
	PaidAt           *time.Time      `json:"paid_at,omitempty"`
	ReceiptNumber    string          `json:"receipt_number,omitempty" example:"KBR-2025-001"`
	Notes            string          `json:"notes"`
	InstallmentIndex *int            `json:"installment_index,omitempty"`
	GatewayOrderID   string          `json:"gateway_order_id,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// PaymentRecordResponse is a payment row of the listing
type PaymentRecordResponse struct {
	PaymentResponse
	ResidentName string `json:"resident_name"`
	HouseNumber  string `json:"house_number"`
	BillTypeName string `json:"bill_type_name"`
	Period       string `json:"period"`
}

// CheckoutResponse tells the client where to pay
type CheckoutResponse struct {
	Payment     PaymentResponse `json:"payment"`
	OrderID     string          `json:"order_id"`
	Token       string          `json:"token"`
	RedirectURL string          `json:"redirect_url"`
}

func toPaymentResponse(p *payment.Payment) PaymentResponse {
	return PaymentResponse{
		ID:               p.ID.String(),
		ResidentID:       p.ResidentID.String(),
		BillID:           p.BillID.String(),
		Amount:           p.Amount,
		Method:           p.Method.String(),
		MethodLabel:      p.Method.Label(),
		Status:           p.Status.String(),
		PaidAt:           p.PaidAt,
		ReceiptNumber:    deref(p.ReceiptNumber),
		Notes:            p.Notes,
		InstallmentIndex: p.InstallmentIndex,
		GatewayOrderID:   deref(p.GatewayOrderID),
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

func toPaymentRecordResponse(r *payment.Record) PaymentRecordResponse {
	return PaymentRecordResponse{
		PaymentResponse: toPaymentResponse(r.Payment),
		ResidentName:    r.ResidentName,
		HouseNumber:     r.HouseNumber,
		BillTypeName:    r.BillTypeName,
		Period:          r.Period,
	}
}
