// Package resident models the households registered with the association.
package resident

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/kitabayar/backend/internal/domain/shared"
)

var (
	emailRegex        = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRegex        = regexp.MustCompile(`^\+?[0-9]{10,15}$`)
	identityCardRegex = regexp.MustCompile(`^[0-9]{16}$`)
	postalCodeRegex   = regexp.MustCompile(`^[0-9]{5}$`)
)

// Resident is a household member registered in the RT/RW.
// Optional fields are nil when blank.
type Resident struct {
	shared.BaseEntity
	UserID       *uuid.UUID
	FullName     string
	Email        *string
	PhoneNumber  *string
	Address      *string
	HouseNumber  *string
	IdentityCard *string
	RTRW         *string
	Kelurahan    *string
	Kecamatan    *string
	City         *string
	PostalCode   *string
	Active       bool
}

// Profile carries every mutable resident field as entered.
// Active nil means "not provided" and defaults to true.
type Profile struct {
	FullName     string
	Email        string
	PhoneNumber  string
	Address      string
	HouseNumber  string
	IdentityCard string
	RTRW         string
	Kelurahan    string
	Kecamatan    string
	City         string
	PostalCode   string
	Active       *bool
}

// NewResident creates a resident from a profile
func NewResident(p Profile) (*Resident, error) {
	r := &Resident{BaseEntity: shared.NewBaseEntity()}
	if err := r.apply(p); err != nil {
		return nil, err
	}
	return r, nil
}

// Replace overwrites every mutable field. Fields absent from p are cleared.
func (r *Resident) Replace(p Profile) error {
	if err := r.apply(p); err != nil {
		return err
	}
	r.Touch()
	return nil
}

// LinkUser attaches the login account owning this resident profile
func (r *Resident) LinkUser(userID uuid.UUID) error {
	if userID == uuid.Nil {
		return shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if r.UserID != nil && *r.UserID != userID {
		return shared.NewDomainError("ALREADY_LINKED", "Resident is already linked to another user")
	}
	r.UserID = &userID
	r.Touch()
	return nil
}

// UnlinkUser detaches the login account
func (r *Resident) UnlinkUser() {
	r.UserID = nil
	r.Touch()
}

// Profile returns the resident's mutable fields with nil rendered as "".
func (r *Resident) Profile() Profile {
	active := r.Active
	return Profile{
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
		Active:       &active,
	}
}

func (r *Resident) apply(p Profile) error {
	p = p.Normalize()
	if err := p.Validate(); err != nil {
		return err
	}

	r.FullName = p.FullName
	r.Email = optional(p.Email)
	r.PhoneNumber = optional(p.PhoneNumber)
	r.Address = optional(p.Address)
	r.HouseNumber = optional(p.HouseNumber)
	r.IdentityCard = optional(p.IdentityCard)
	r.RTRW = optional(p.RTRW)
	r.Kelurahan = optional(p.Kelurahan)
	r.Kecamatan = optional(p.Kecamatan)
	r.City = optional(p.City)
	r.PostalCode = optional(p.PostalCode)
	r.Active = true
	if p.Active != nil {
		r.Active = *p.Active
	}
	return nil
}

// Normalize trims every text field
func (p Profile) Normalize() Profile {
	p.FullName = strings.TrimSpace(p.FullName)
	p.Email = strings.TrimSpace(p.Email)
	p.PhoneNumber = strings.TrimSpace(p.PhoneNumber)
	p.Address = strings.TrimSpace(p.Address)
	p.HouseNumber = strings.TrimSpace(p.HouseNumber)
	p.IdentityCard = strings.TrimSpace(p.IdentityCard)
	p.RTRW = strings.TrimSpace(p.RTRW)
	p.Kelurahan = strings.TrimSpace(p.Kelurahan)
	p.Kecamatan = strings.TrimSpace(p.Kecamatan)
	p.City = strings.TrimSpace(p.City)
	p.PostalCode = strings.TrimSpace(p.PostalCode)
	return p
}

// Validate checks a normalized profile. Blank optional fields are always valid.
func (p Profile) Validate() error {
	if p.FullName == "" {
		return shared.NewDomainError("INVALID_FULL_NAME", "fullName is required")
	}
	if len(p.FullName) > 200 {
		return shared.NewDomainError("INVALID_FULL_NAME", "fullName cannot exceed 200 characters")
	}
	if p.Email != "" && !IsValidEmail(p.Email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	if p.PhoneNumber != "" && !IsValidPhone(p.PhoneNumber) {
		return shared.NewDomainError("INVALID_PHONE", "Phone number must be 10-15 digits with an optional leading +")
	}
	if p.IdentityCard != "" && !IsValidIdentityCard(p.IdentityCard) {
		return shared.NewDomainError("INVALID_IDENTITY_CARD", "Identity card (NIK) must be exactly 16 digits")
	}
	if p.PostalCode != "" && !IsValidPostalCode(p.PostalCode) {
		return shared.NewDomainError("INVALID_POSTAL_CODE", "Postal code must be exactly 5 digits")
	}
	return nil
}

// IsValidEmail reports whether s looks like local@domain.tld
func IsValidEmail(s string) bool {
	return emailRegex.MatchString(s)
}

// IsValidPhone reports whether s has 10-15 digits with an optional leading +
func IsValidPhone(s string) bool {
	return phoneRegex.MatchString(s)
}

// IsValidIdentityCard reports whether s is a 16 digit NIK
func IsValidIdentityCard(s string) bool {
	return identityCardRegex.MatchString(s)
}

// IsValidPostalCode reports whether s is a 5 digit postal code
func IsValidPostalCode(s string) bool {
	return postalCodeRegex.MatchString(s)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
