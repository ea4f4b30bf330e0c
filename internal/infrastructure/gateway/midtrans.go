// Package gateway adapts Midtrans Snap to the payment.Gateway port.
package gateway

import (
	"context"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kitabayar/backend/internal/domain/payment"
	"github.com/kitabayar/backend/internal/infrastructure/config"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"github.com/shopspring/decimal"
)

// snapAPI is the slice of snap.Client used here
type snapAPI interface {
	CreateTransaction(req *snap.Request) (*snap.Response, *midtrans.Error)
}

// MidtransGateway implements payment.Gateway with Midtrans Snap
type MidtransGateway struct {
	client    snapAPI
	serverKey string
	finishURL string
	expiry    int64
}

// NewMidtransGateway creates a gateway for the sandbox or production environment
func NewMidtransGateway(cfg config.MidtransConfig) *MidtransGateway {
	env := midtrans.Sandbox
	if cfg.Production {
		env = midtrans.Production
	}
	client := &snap.Client{}
	client.New(cfg.ServerKey, env)

	return &MidtransGateway{
		client:    client,
		serverKey: cfg.ServerKey,
		finishURL: cfg.FinishURL,
		expiry:    int64(cfg.ExpiryMinute),
	}
}

// CreateCheckout opens a Snap transaction for the order
func (g *MidtransGateway) CreateCheckout(_ context.Context, req payment.CheckoutRequest) (*payment.Checkout, error) {
	if req.OrderID == "" {
		return nil, fmt.Errorf("order id is required")
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("amount must be positive")
	}
	// IDR has no minor unit
	gross := req.Amount.Round(0).IntPart()

	first, last := splitName(req.CustomerName)
	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  req.OrderID,
			GrossAmt: gross,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: first,
			LName: last,
			Email: req.CustomerEmail,
			Phone: req.CustomerPhone,
		},
		Items: &[]midtrans.ItemDetails{{
			ID:       truncate(req.ItemID, 50),
			Name:     truncate(req.ItemName, 50),
			Price:    gross,
			Qty:      1,
			Category: "Iuran",
		}},
		EnabledPayments: enabledPayments(req.Method),
	}
	if req.Method == payment.MethodCreditCard {
		snapReq.CreditCard = &snap.CreditCardDetails{Secure: true}
	}
	if g.expiry > 0 {
		snapReq.Expiry = &snap.ExpiryDetails{Unit: "minute", Duration: g.expiry}
	}
	if g.finishURL != "" {
		snapReq.Callbacks = &snap.Callbacks{Finish: g.finishURL}
	}

	resp, merr := g.client.CreateTransaction(snapReq)
	if merr != nil {
		return nil, fmt.Errorf("midtrans create transaction: %w", merr)
	}
	return &payment.Checkout{Token: resp.Token, RedirectURL: resp.RedirectURL}, nil
}

func enabledPayments(m payment.Method) []snap.SnapPaymentType {
	switch m {
	case payment.MethodCreditCard:
		return []snap.SnapPaymentType{snap.PaymentTypeCreditCard}
	case payment.MethodDigitalWallet:
		return []snap.SnapPaymentType{snap.PaymentTypeGopay, snap.PaymentTypeShopeepay}
	}
	return nil
}

// notification is the Midtrans HTTP notification body
type notification struct {
	OrderID           string `json:"order_id"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
	TransactionStatus string `json:"transaction_status"`
	TransactionID     string `json:"transaction_id"`
	FraudStatus       string `json:"fraud_status"`
	PaymentType       string `json:"payment_type"`
}

// ParseNotification verifies SHA512(order_id+status_code+gross_amount+server_key)
// and maps the transaction status.
func (g *MidtransGateway) ParseNotification(_ context.Context, body []byte) (*payment.Notification, error) {
	var n notification
	if err := json.Unmarshal(body, &n); err != nil {
		return nil, fmt.Errorf("invalid notification payload: %w", err)
	}
	if n.OrderID == "" {
		return nil, fmt.Errorf("notification has no order_id")
	}
	if !g.verify(n) {
		return nil, payment.ErrInvalidSignature
	}

	gross, err := decimal.NewFromString(n.GrossAmount)
	if err != nil {
		return nil, fmt.Errorf("invalid gross_amount %q: %w", n.GrossAmount, err)
	}

	return &payment.Notification{
		OrderID:       n.OrderID,
		TransactionID: n.TransactionID,
		GrossAmount:   gross,
		RawStatus:     n.TransactionStatus,
		Outcome:       outcome(n.TransactionStatus, n.FraudStatus),
	}, nil
}

func (g *MidtransGateway) verify(n notification) bool {
	want := Signature(n.OrderID, n.StatusCode, n.GrossAmount, g.serverKey)
	got := strings.ToLower(strings.TrimSpace(n.SignatureKey))
	return got != "" && subtle.ConstantTimeCompare([]byte(want), []byte(got)) == 1
}

// Signature computes the Midtrans notification signature key
func Signature(orderID, statusCode, grossAmount, serverKey string) string {
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))
	return hex.EncodeToString(sum[:])
}

func outcome(status, fraud string) *payment.Status {
	var s payment.Status
	switch status {
	case "settlement":
		s = payment.StatusCompleted
	case "capture":
		switch fraud {
		case "", "accept":
			s = payment.StatusCompleted
		case "deny":
			s = payment.StatusFailed
		default:
			// challenge waits for a later settlement or deny
			return nil
		}
	case "deny", "cancel", "expire", "failure":
		s = payment.StatusFailed
	case "refund", "partial_refund":
		s = payment.StatusRefunded
	default:
		return nil
	}
	return &s
}

func splitName(full string) (string, string) {
	first, last, _ := strings.Cut(strings.TrimSpace(full), " ")
	return first, strings.TrimSpace(last)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

var _ payment.Gateway = (*MidtransGateway)(nil)
