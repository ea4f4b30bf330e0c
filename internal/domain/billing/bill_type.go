package billing

import (
	"strings"

	"github.com/google/uuid"
	"github.com/kitabayar/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// BillType is a kind of charge within a category, e.g. "Iuran Keamanan".
// Name is unique within its category.
type BillType struct {
	shared.BaseEntity
	CategoryID  uuid.UUID
	Name        string
	Description string
	BaseAmount  decimal.Decimal
	Active      bool
}

// NewBillType creates an active bill type
func NewBillType(categoryID uuid.UUID, name, description string, baseAmount decimal.Decimal) (*BillType, error) {
	if categoryID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Category ID cannot be empty")
	}
	bt := &BillType{BaseEntity: shared.NewBaseEntity(), CategoryID: categoryID, Active: true}
	if err := bt.Update(name, description, baseAmount); err != nil {
		return nil, err
	}
	return bt, nil
}

// Update changes name, description and base amount
func (bt *BillType) Update(name, description string, baseAmount decimal.Decimal) error {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return err
	}
	if err := validateAmount(baseAmount); err != nil {
		return err
	}
	bt.Name = name
	bt.Description = strings.TrimSpace(description)
	bt.BaseAmount = baseAmount.Round(2)
	bt.Touch()
	return nil
}

// SetActive toggles whether new bills can use this type
func (bt *BillType) SetActive(active bool) {
	bt.Active = active
	bt.Touch()
}

func validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount must be greater than zero")
	}
	if amount.GreaterThanOrEqual(maxAmount) {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount exceeds the supported maximum")
	}
	return nil
}

// maxAmount fits NUMERIC(12,2)
var maxAmount = decimal.New(1, 10)
