package handler

import (
	"time"

	"github.com/kitabayar/backend/internal/domain/resident"
)

// ResidentRequest is the body of resident create and update
type ResidentRequest struct {
	FullName     string `json:"full_name" binding:"required,max=200" example:"Siti Aminah"`
	Email        string `json:"email" binding:"omitempty,email"`
	PhoneNumber  string `json:"phone_number" binding:"phone_id" example:"081234567890"`
	Address      string `json:"address" binding:"omitempty,max=500"`
	HouseNumber  string `json:"house_number" binding:"omitempty,max=20" example:"A-12"`
	IdentityCard string `json:"identity_card" binding:"nik"`
	RTRW         string `json:"rt_rw" binding:"omitempty,max=20" example:"003/005"`
	Kelurahan    string `json:"kelurahan" binding:"omitempty,max=100"`
	Kecamatan    string `json:"kecamatan" binding:"omitempty,max=100"`
	City         string `json:"city" binding:"omitempty,max=100"`
	PostalCode   string `json:"postal_code" binding:"postal_code"`
	Active       *bool  `json:"active"`
}

func (r ResidentRequest) profile() resident.Profile {
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
		Active:       r.Active,
	}
}

// ResidentListQuery is the query of the resident listing
type ResidentListQuery struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Search   string `form:"search" binding:"omitempty,max=100"`
	Active   *bool  `form:"active"`
	RTRW     string `form:"rt_rw" binding:"omitempty,max=20"`
}

// LinkUserRequest links a login account to a resident
type LinkUserRequest struct {
	UserID string `json:"user_id" binding:"required,uuid"`
}

// ResidentResponse is a resident in the versioned API
type ResidentResponse struct {
	ID           string    `json:"id"`
	UserID       *string   `json:"user_id,omitempty"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	PhoneNumber  string    `json:"phone_number"`
	Address      string    `json:"address"`
	HouseNumber  string    `json:"house_number"`
	IdentityCard string    `json:"identity_card"`
	RTRW         string    `json:"rt_rw"`
	Kelurahan    string    `json:"kelurahan"`
	Kecamatan    string    `json:"kecamatan"`
	City         string    `json:"city"`
	PostalCode   string    `json:"postal_code"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toResidentResponse(r *resident.Resident) ResidentResponse {
	resp := ResidentResponse{
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
		Active:       r.Active,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
	if r.UserID != nil {
		id := r.UserID.String()
		resp.UserID = &id
	}
	return resp
}

func toResidentResponses(items []*resident.Resident) []ResidentResponse {
	out := make([]ResidentResponse, len(items))
	for i, r := range items {
		out[i] = toResidentResponse(r)
	}
	return out
}
