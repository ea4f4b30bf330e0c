package billing

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kitabayar/backend/internal/domain/shared"
)

// Period is a billing window within a category, e.g. "Januari 2025".
// A period may be paid in several installments.
type Period struct {
	shared.BaseEntity
	CategoryID   uuid.UUID
	Name         string
	Description  string
	StartDate    time.Time
	EndDate      time.Time
	DueDate      time.Time
	Installments int
	Active       bool
}

// PeriodFields carries the mutable fields of a period
type PeriodFields struct {
	Name         string
	Description  string
	StartDate    time.Time
	EndDate      time.Time
	DueDate      *time.Time // defaults to EndDate
	Installments int        // defaults to 1
}

// NewPeriod creates an active period
func NewPeriod(categoryID uuid.UUID, f PeriodFields) (*Period, error) {
	if categoryID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Category ID cannot be empty")
	}
	p := &Period{BaseEntity: shared.NewBaseEntity(), CategoryID: categoryID, Active: true}
	if err := p.Update(f); err != nil {
		return nil, err
	}
	return p, nil
}

// Update replaces the period's name, dates and installment count
func (p *Period) Update(f PeriodFields) error {
	name := strings.TrimSpace(f.Name)
	if err := validateName(name); err != nil {
		return err
	}
	if f.StartDate.IsZero() || f.EndDate.IsZero() {
		return shared.NewDomainError("INVALID_DATE_RANGE", "Start and end dates are required")
	}
	if f.EndDate.Before(f.StartDate) {
		return shared.NewDomainError("INVALID_DATE_RANGE", "End date cannot be before start date")
	}
	installments := f.Installments
	if installments == 0 {
		installments = 1
	}
	if installments < 1 {
		return shared.NewDomainError("INVALID_INSTALLMENTS", "Installments must be at least 1")
	}
	due := f.EndDate
	if f.DueDate != nil && !f.DueDate.IsZero() {
		if f.DueDate.Before(f.StartDate) {
			return shared.NewDomainError("INVALID_DATE_RANGE", "Due date cannot be before start date")
		}
		due = *f.DueDate
	}

	p.Name = name
	p.Description = strings.TrimSpace(f.Description)
	p.StartDate = f.StartDate
	p.EndDate = f.EndDate
	p.DueDate = due
	p.Installments = installments
	p.Touch()
	return nil
}

// SetActive toggles the period
func (p *Period) SetActive(active bool) {
	p.Active = active
	p.Touch()
}

// Contains reports whether t falls within the period's date range (inclusive, by day)
func (p *Period) Contains(t time.Time) bool {
	d := truncateDay(t)
	return !d.Before(truncateDay(p.StartDate)) && !d.After(truncateDay(p.EndDate))
}
