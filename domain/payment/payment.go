package payment

import (
	"context"
	"time"

	"github.com/investmatch/investmatch/domain/store"
)

// Order is a provider-side payment order.
type Order struct {
	ID       string
	Amount   int64
	Currency string
	Receipt  string
	Status   string
}

// Payment is a verified checkout.
type Payment struct {
	orderID    string
	paymentID  string
	userID     string
	amount     int64
	currency   string
	status     string
	verifiedAt time.Time
}

// StatusVerified marks a payment whose signature checked out.
const StatusVerified = "verified"

// NewPayment creates a verified Payment.
func NewPayment(orderID, paymentID, userID string, amount int64, currency string, verifiedAt time.Time) Payment {
	return Payment{
		orderID:    orderID,
		paymentID:  paymentID,
		userID:     userID,
		amount:     amount,
		currency:   currency,
		status:     StatusVerified,
		verifiedAt: verifiedAt,
	}
}

// ReconstructPayment rebuilds a Payment from persistence.
func ReconstructPayment(orderID, paymentID, userID string, amount int64, currency, status string, verifiedAt time.Time) Payment {
	p := NewPayment(orderID, paymentID, userID, amount, currency, verifiedAt)
	p.status = status
	return p
}

// OrderID returns the provider order id.
func (p Payment) OrderID() string { return p.orderID }

// PaymentID returns the provider payment id.
func (p Payment) PaymentID() string { return p.paymentID }

// UserID returns the paying user id.
func (p Payment) UserID() string { return p.userID }

// Amount returns the amount in the smallest currency unit.
func (p Payment) Amount() int64 { return p.amount }

// Currency returns the ISO currency code.
func (p Payment) Currency() string { return p.currency }

// Status returns the payment status.
func (p Payment) Status() string { return p.status }

// VerifiedAt returns the verification time.
func (p Payment) VerifiedAt() time.Time { return p.verifiedAt }

// Store persists payments.
type Store interface {
	store.Store[Payment]
	// Save records the payment; saving the same order twice keeps one row.
	Save(ctx context.Context, p Payment) (Payment, error)
}
