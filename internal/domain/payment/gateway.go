package payment

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// ErrInvalidSignature is returned when a gateway notification fails verification
var ErrInvalidSignature = errors.New("invalid gateway notification signature")

// CheckoutRequest asks the gateway to open a hosted payment page
type CheckoutRequest struct {
	OrderID  string
	Amount   decimal.Decimal
	Method   Method
	ItemID   string
	ItemName string

	CustomerName  string
	CustomerEmail string
	CustomerPhone string
}

// Checkout is the hosted page the payer is sent to
type Checkout struct {
	Token       string
	RedirectURL string
}

// Notification is a verified gateway callback.
// Outcome is nil when the notification does not change the payment.
type Notification struct {
	OrderID       string
	TransactionID string
	GrossAmount   decimal.Decimal
	RawStatus     string
	Outcome       *Status
}

// Gateway is the port for an external payment gateway
type Gateway interface {
	CreateCheckout(ctx context.Context, req CheckoutRequest) (*Checkout, error)

	// ParseNotification verifies a callback body and maps it to a Notification.
	// A bad signature yields ErrInvalidSignature.
	ParseNotification(ctx context.Context, body []byte) (*Notification, error)
}
