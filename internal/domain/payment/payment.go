// Package payment models installments paid toward bills.
package payment

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kitabayar/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Method is how a payment was made
type Method string

const (
	MethodCash          Method = "CASH"
	MethodTransfer      Method = "TRANSFER"
	MethodDigitalWallet Method = "DIGITAL_WALLET"
	MethodCreditCard    Method = "CREDIT_CARD"
)

// AllMethods lists every method in display order
var AllMethods = []Method{MethodCash, MethodTransfer, MethodDigitalWallet, MethodCreditCard}

// IsValid returns true if the method is a known value
func (m Method) IsValid() bool {
	switch m {
	case MethodCash, MethodTransfer, MethodDigitalWallet, MethodCreditCard:
		return true
	}
	return false
}

// String returns the string representation
func (m Method) String() string {
	return string(m)
}

// Label returns the Indonesian display label
func (m Method) Label() string {
	switch m {
	case MethodCash:
		return "Tunai"
	case MethodTransfer:
		return "Transfer Bank"
	case MethodDigitalWallet:
		return "E-Wallet"
	case MethodCreditCard:
		return "Kartu Kredit"
	}
	return string(m)
}

// ViaGateway reports whether the method settles through the payment gateway
func (m Method) ViaGateway() bool {
	return m == MethodDigitalWallet || m == MethodCreditCard
}

// Status is the persisted state of a payment
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusCompleted Status = "COMPLETED"
	StatusFailed    Status = "FAILED"
	StatusRefunded  Status = "REFUNDED"
)

// IsValid returns true if the status is a known value
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusFailed, StatusRefunded:
		return true
	}
	return false
}

// String returns the string representation
func (s Status) String() string {
	return string(s)
}

// IsTerminal returns true if no further transition is allowed
func (s Status) IsTerminal() bool {
	return s == StatusFailed || s == StatusRefunded
}

// Payment is money received from a resident toward one bill
type Payment struct {
	shared.BaseEntity
	ResidentID       uuid.UUID
	BillID           uuid.UUID
	Amount           decimal.Decimal
	Method           Method
	Status           Status
	PaidAt           *time.Time
	ReceiptNumber    *string
	Notes            string
	InstallmentIndex *int
	GatewayOrderID   *string
}

// NewPayment creates a pending payment
func NewPayment(residentID, billID uuid.UUID, amount decimal.Decimal, method Method) (*Payment, error) {
	if residentID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_RESIDENT", "Resident ID cannot be empty")
	}
	if billID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BILL", "Bill ID cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be greater than zero")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_METHOD", "Payment method must be one of CASH, TRANSFER, DIGITAL_WALLET, CREDIT_CARD")
	}

	return &Payment{
		BaseEntity: shared.NewBaseEntity(),
		ResidentID: residentID,
		BillID:     billID,
		Amount:     amount.Round(2),
		Method:     method,
		Status:     StatusPending,
	}, nil
}

// SetNotes replaces the free-text notes
func (p *Payment) SetNotes(notes string) {
	p.Notes = strings.TrimSpace(notes)
	p.Touch()
}

// SetInstallment records which installment this payment covers (1-based)
func (p *Payment) SetInstallment(index int) error {
	if index < 1 {
		return shared.NewDomainError("INVALID_INSTALLMENT", "Installment index must be at least 1")
	}
	p.InstallmentIndex = &index
	p.Touch()
	return nil
}

// AttachGatewayOrder stores the order id sent to the payment gateway
func (p *Payment) AttachGatewayOrder(orderID string) {
	p.GatewayOrderID = &orderID
	p.Touch()
}

// Complete settles the payment and issues its receipt number
func (p *Payment) Complete(receipt string, at time.Time) error {
	if p.Status == StatusCompleted {
		return nil
	}
	if p.Status != StatusPending {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot complete a %s payment", p.Status))
	}
	if receipt == "" {
		return shared.NewDomainError("INVALID_RECEIPT", "Receipt number is required")
	}
	p.Status = StatusCompleted
	p.PaidAt = &at
	p.ReceiptNumber = &receipt
	p.Touch()
	return nil
}

// Fail marks a pending payment as failed
func (p *Payment) Fail() error {
	if p.Status == StatusFailed {
		return nil
	}
	if p.Status != StatusPending {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot fail a %s payment", p.Status))
	}
	p.Status = StatusFailed
	p.Touch()
	return nil
}

// Refund reverses a completed payment
func (p *Payment) Refund() error {
	if p.Status == StatusRefunded {
		return nil
	}
	if p.Status != StatusCompleted {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot refund a %s payment", p.Status))
	}
	p.Status = StatusRefunded
	p.Touch()
	return nil
}

// FormatReceipt builds a receipt number like KBR-2025-001
func FormatReceipt(prefix string, year int, seq int64) string {
	return fmt.Sprintf("%s-%d-%03d", prefix, year, seq)
}

// ReceiptPrefix returns the prefix shared by all receipts of a year, e.g. "KBR-2025-"
func ReceiptPrefix(prefix string, year int) string {
	return fmt.Sprintf("%s-%d-", prefix, year)
}

// ParseReceiptSequence extracts the sequence number from a receipt of the given year
func ParseReceiptSequence(receipt, prefix string, year int) (int64, bool) {
	p := ReceiptPrefix(prefix, year)
	if !strings.HasPrefix(receipt, p) {
		return 0, false
	}
	seq, err := strconv.ParseInt(strings.TrimPrefix(receipt, p), 10, 64)
	if err != nil || seq < 1 {
		return 0, false
	}
	return seq, true
}
