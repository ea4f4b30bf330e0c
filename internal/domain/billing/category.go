// Package billing holds bill configuration (categories, types, periods),
// issued bills and the installment reconciliation rules.
package billing

import (
	"regexp"
	"strings"

	"github.com/kitabayar/backend/internal/domain/shared"
)

var colorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Category groups bill types and periods, e.g. "Iuran Bulanan" or "17 Agustusan".
type Category struct {
	shared.BaseEntity
	Name        string
	Description string
	Color       string
	Icon        string
	Active      bool
}

// NewCategory creates an active category
func NewCategory(name, description, color, icon string) (*Category, error) {
	c := &Category{BaseEntity: shared.NewBaseEntity(), Active: true}
	if err := c.Update(name, description, color, icon); err != nil {
		return nil, err
	}
	return c, nil
}

// Update changes the descriptive fields
func (c *Category) Update(name, description, color, icon string) error {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return err
	}
	color = strings.TrimSpace(color)
	if color != "" && !colorRegex.MatchString(color) {
		return shared.NewDomainError("INVALID_COLOR", "Color must be a hex value like #3B82F6")
	}
	c.Name = name
	c.Description = strings.TrimSpace(description)
	c.Color = color
	c.Icon = strings.TrimSpace(icon)
	c.Touch()
	return nil
}

// SetActive toggles whether the category is offered for new bills
func (c *Category) SetActive(active bool) {
	c.Active = active
	c.Touch()
}

func validateName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Name cannot exceed 100 characters")
	}
	return nil
}
