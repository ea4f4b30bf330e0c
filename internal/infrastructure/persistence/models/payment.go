package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/kitabayar/backend/internal/domain/payment"
	"github.com/shopspring/decimal"
)

// PaymentModel is the persistence model for payment.Payment
type PaymentModel struct {
	BaseModel
	ResidentID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	BillID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount           decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Method           payment.Method  `gorm:"column:payment_method;type:varchar(20);not null"`
	Status           payment.Status  `gorm:"type:varchar(20);not null;index"`
	PaidAt           *time.Time      `gorm:"index"`
	ReceiptNumber    *string         `gorm:"type:varchar(50);uniqueIndex"`
	Notes            string          `gorm:"type:text"`
	InstallmentIndex *int
	GatewayOrderID   *string `gorm:"type:varchar(100);uniqueIndex"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the model to a domain Payment
func (m *PaymentModel) ToDomain() *payment.Payment {
	return &payment.Payment{
		BaseEntity:       m.BaseModel.ToDomain(),
		ResidentID:       m.ResidentID,
		BillID:           m.BillID,
		Amount:           m.Amount,
		Method:           m.Method,
		Status:           m.Status,
		PaidAt:           m.PaidAt,
		ReceiptNumber:    m.ReceiptNumber,
		Notes:            m.Notes,
		InstallmentIndex: m.InstallmentIndex,
		GatewayOrderID:   m.GatewayOrderID,
	}
}

// FromDomain populates the model from a domain Payment
func (m *PaymentModel) FromDomain(p *payment.Payment) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.ResidentID = p.ResidentID
	m.BillID = p.BillID
	m.Amount = p.Amount
	m.Method = p.Method
	m.Status = p.Status
	m.PaidAt = p.PaidAt
	m.ReceiptNumber = p.ReceiptNumber
	m.Notes = p.Notes
	m.InstallmentIndex = p.InstallmentIndex
	m.GatewayOrderID = p.GatewayOrderID
}

// PaymentModelFromDomain creates a persistence model from a domain Payment
func PaymentModelFromDomain(p *payment.Payment) *PaymentModel {
	m := &PaymentModel{}
	m.FromDomain(p)
	return m
}

// PaymentRecordRow is a payment joined with resident, bill and bill type names
type PaymentRecordRow struct {
	PaymentModel
	ResidentName string
	HouseNumber  *string
	BillTypeName string
	BillPeriod   string
}

// ToDomain converts the joined row to a payment record
func (r *PaymentRecordRow) ToDomain() *payment.Record {
	rec := &payment.Record{
		Payment:      r.PaymentModel.ToDomain(),
		ResidentName: r.ResidentName,
		BillTypeName: r.BillTypeName,
		Period:       r.BillPeriod,
	}
	if r.HouseNumber != nil {
		rec.HouseNumber = *r.HouseNumber
	}
	return rec
}
