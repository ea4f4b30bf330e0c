package models

import (
	"github.com/google/uuid"
	"github.com/kitabayar/backend/internal/domain/resident"
)

// ResidentModel is the persistence model for resident.Resident.
// Optional text columns are NULL when blank.
type ResidentModel struct {
	BaseModel
	UserID       *uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	FullName     string     `gorm:"type:varchar(255);not null;index"`
	Email        *string    `gorm:"type:varchar(255)"`
	PhoneNumber  *string    `gorm:"type:varchar(20)"`
	Address      *string    `gorm:"type:text"`
	HouseNumber  *string    `gorm:"type:varchar(20)"`
	IdentityCard *string    `gorm:"type:varchar(16)"`
	RTRW         *string    `gorm:"column:rt_rw;type:varchar(20)"`
	Kelurahan    *string    `gorm:"type:varchar(100)"`
	Kecamatan    *string    `gorm:"type:varchar(100)"`
	City         *string    `gorm:"type:varchar(100)"`
	PostalCode   *string    `gorm:"type:varchar(5)"`
	Active       bool       `gorm:"column:is_active;not null"`
}

// TableName returns the table name for GORM
func (ResidentModel) TableName() string {
	return "residents"
}

// ToDomain converts the persistence model to a domain Resident
func (m *ResidentModel) ToDomain() *resident.Resident {
	return &resident.Resident{
		BaseEntity:   m.BaseModel.ToDomain(),
		UserID:       m.UserID,
		FullName:     m.FullName,
		Email:        m.Email,
		PhoneNumber:  m.PhoneNumber,
		Address:      m.Address,
		HouseNumber:  m.HouseNumber,
		IdentityCard: m.IdentityCard,
		RTRW:         m.RTRW,
		Kelurahan:    m.Kelurahan,
		Kecamatan:    m.Kecamatan,
		City:         m.City,
		PostalCode:   m.PostalCode,
		Active:       m.Active,
	}
}

// FromDomain populates the persistence model from a domain Resident
func (m *ResidentModel) FromDomain(r *resident.Resident) {
	m.FromDomainBaseEntity(r.BaseEntity)
	m.UserID = r.UserID
	m.FullName = r.FullName
	m.Email = r.Email
	m.PhoneNumber = r.PhoneNumber
	m.Address = r.Address
	m.HouseNumber = r.HouseNumber
	m.IdentityCard = r.IdentityCard
	m.RTRW = r.RTRW
	m.Kelurahan = r.Kelurahan
	m.Kecamatan = r.Kecamatan
	m.City = r.City
	m.PostalCode = r.PostalCode
	m.Active = r.Active
}

// ResidentModelFromDomain creates a persistence model from a domain Resident
func ResidentModelFromDomain(r *resident.Resident) *ResidentModel {
	m := &ResidentModel{}
	m.FromDomain(r)
	return m
}
