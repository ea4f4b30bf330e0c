package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/kitabayar/backend/internal/domain/billing"
	"github.com/shopspring/decimal"
)

// BillCategoryModel is the persistence model for billing.Category
type BillCategoryModel struct {
	BaseModel
	Name        string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Description string `gorm:"type:text"`
	Color       string `gorm:"type:varchar(7)"`
	Icon        string `gorm:"type:varchar(50)"`
	Active      bool   `gorm:"column:is_active;not null"`
}

// TableName returns the table name for GORM
func (BillCategoryModel) TableName() string {
	return "bill_categories"
}

// ToDomain converts the model to a domain Category
func (m *BillCategoryModel) ToDomain() *billing.Category {
	return &billing.Category{
		BaseEntity:  m.BaseModel.ToDomain(),
		Name:        m.Name,
		Description: m.Description,
		Color:       m.Color,
		Icon:        m.Icon,
		Active:      m.Active,
	}
}

// FromDomain populates the model from a domain Category
func (m *BillCategoryModel) FromDomain(c *billing.Category) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.Name = c.Name
	m.Description = c.Description
	m.Color = c.Color
	m.Icon = c.Icon
	m.Active = c.Active
}

// BillTypeModel is the persistence model for billing.BillType
type BillTypeModel struct {
	BaseModel
	CategoryID  uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_bill_types_category_name,priority:1"`
	Name        string          `gorm:"type:varchar(100);not null;uniqueIndex:idx_bill_types_category_name,priority:2"`
	Description string          `gorm:"type:text"`
	BaseAmount  decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Active      bool            `gorm:"column:is_active;not null"`
}

// TableName returns the table name for GORM
func (BillTypeModel) TableName() string {
	return "bill_types"
}

// ToDomain converts the model to a domain BillType
func (m *BillTypeModel) ToDomain() *billing.BillType {
	return &billing.BillType{
		BaseEntity:  m.BaseModel.ToDomain(),
		CategoryID:  m.CategoryID,
		Name:        m.Name,
		Description: m.Description,
		BaseAmount:  m.BaseAmount,
		Active:      m.Active,
	}
}

// FromDomain populates the model from a domain BillType
func (m *BillTypeModel) FromDomain(bt *billing.BillType) {
	m.FromDomainBaseEntity(bt.BaseEntity)
	m.CategoryID = bt.CategoryID
	m.Name = bt.Name
	m.Description = bt.Description
	m.BaseAmount = bt.BaseAmount
	m.Active = bt.Active
}

// BillPeriodModel is the persistence model for billing.Period
type BillPeriodModel struct {
	BaseModel
	CategoryID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_bill_periods_category_name,priority:1"`
	Name         string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_bill_periods_category_name,priority:2"`
	Description  string    `gorm:"type:text"`
	StartDate    time.Time `gorm:"not null"`
	EndDate      time.Time `gorm:"not null"`
	DueDate      time.Time `gorm:"not null"`
	Installments int       `gorm:"not null"`
	Active       bool      `gorm:"column:is_active;not null"`
}

// TableName returns the table name for GORM
func (BillPeriodModel) TableName() string {
	return "bill_periods"
}

// ToDomain converts the model to a domain Period
func (m *BillPeriodModel) ToDomain() *billing.Period {
	return &billing.Period{
		BaseEntity:   m.BaseModel.ToDomain(),
		CategoryID:   m.CategoryID,
		Name:         m.Name,
		Description:  m.Description,
		StartDate:    m.StartDate,
		EndDate:      m.EndDate,
		DueDate:      m.DueDate,
		Installments: m.Installments,
		Active:       m.Active,
	}
}

// FromDomain populates the model from a domain Period
func (m *BillPeriodModel) FromDomain(p *billing.Period) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.CategoryID = p.CategoryID
	m.Name = p.Name
	m.Description = p.Description
	m.StartDate = p.StartDate
	m.EndDate = p.EndDate
	m.DueDate = p.DueDate
	m.Installments = p.Installments
	m.Active = p.Active
}

// BillModel is the persistence model for billing.Bill
type BillModel struct {
	BaseModel
	ResidentID  uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex:idx_bills_resident_type_period,priority:1"`
	BillTypeID  uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex:idx_bills_resident_type_period,priority:2;index"`
	PeriodID    *uuid.UUID         `gorm:"type:uuid;index"`
	Period      string             `gorm:"type:varchar(100);not null;uniqueIndex:idx_bills_resident_type_period,priority:3"`
	Amount      decimal.Decimal    `gorm:"type:numeric(12,2);not null"`
	DueDate     time.Time          `gorm:"not null;index"`
	Status      billing.BillStatus `gorm:"type:varchar(20);not null;index"`
	Description string             `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (BillModel) TableName() string {
	return "bills"
}

// ToDomain converts the model to a domain Bill
func (m *BillModel) ToDomain() *billing.Bill {
	return &billing.Bill{
		BaseEntity:  m.BaseModel.ToDomain(),
		ResidentID:  m.ResidentID,
		BillTypeID:  m.BillTypeID,
		PeriodID:    m.PeriodID,
		Period:      m.Period,
		Amount:      m.Amount,
		DueDate:     m.DueDate,
		Status:      m.Status,
		Description: m.Description,
	}
}

// FromDomain populates the model from a domain Bill
func (m *BillModel) FromDomain(b *billing.Bill) {
	m.FromDomainBaseEntity(b.BaseEntity)
	m.ResidentID = b.ResidentID
	m.BillTypeID = b.BillTypeID
	m.PeriodID = b.PeriodID
	m.Period = b.Period
	m.Amount = b.Amount
	m.DueDate = b.DueDate
	m.Status = b.Status
	m.Description = b.Description
}

// BillModelFromDomain creates a persistence model from a domain Bill
func BillModelFromDomain(b *billing.Bill) *BillModel {
	m := &BillModel{}
	m.FromDomain(b)
	return m
}
