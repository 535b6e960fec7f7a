package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/investmatch/investmatch/domain/account"
	"github.com/investmatch/investmatch/domain/errs"
	"github.com/investmatch/investmatch/domain/payment"
	"github.com/investmatch/investmatch/domain/service"
)

// VerifyParams is the checkout callback posted by the browser.
type VerifyParams struct {
	OrderID   string
	PaymentID string
	Signature string
	Amount    int64
	Currency  string
}

// Payments creates orders and verifies checkout signatures.
type Payments struct {
	orders   service.Orders
	payments payment.Store
	secret   string
	logger   *slog.Logger
}

// NewPayments creates a Payments service. secret is the gateway key secret
// used for signature verification.
func NewPayments(orders service.Orders, payments payment.Store, secret string, logger *slog.Logger) *Payments {
	return &Payments{orders: orders, payments: payments, secret: secret, logger: logger}
}

// CreateOrder opens an order for amount in the currency's smallest unit.
func (s *Payments) CreateOrder(ctx context.Context, actor account.Actor, amount int64, currency string) (payment.Order, error) {
	if !actor.Authenticated() {
		return payment.Order{}, errs.ErrUnauthenticated
	}
	if amount <= 0 {
		return payment.Order{}, fmt.Errorf("%w: amount must be positive", errs.ErrValidation)
	}
	if s.orders == nil {
		return payment.Order{}, ErrPaymentsNotConfigured
	}
	receipt := "rcpt_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:20]
	order, err := s.orders.CreateOrder(ctx, amount, strings.ToUpper(strings.TrimSpace(currency)), receipt)
	if err != nil {
		return payment.Order{}, fmt.Errorf("create order: %w", err)
	}
	s.logger.Info("payment order created", slog.String("order_id", order.ID), slog.String("user_id", actor.UserID()))
	return order, nil
}

// Verify checks the checkout signature and records the payment. A mismatch
// fails with errs.ErrSignatureMismatch and writes nothing.
func (s *Payments) Verify(ctx context.Context, actor account.Actor, p VerifyParams) (payment.Payment, error) {
	if !actor.Authenticated() {
		return payment.Payment{}, errs.ErrUnauthenticated
	}
	if p.OrderID == "" || p.PaymentID == "" || p.Signature == "" {
		return payment.Payment{}, fmt.Errorf("%w: order id, payment id and signature are required", errs.ErrValidation)
	}
	if s.secret == "" {
		return payment.Payment{}, ErrPaymentsNotConfigured
	}
	if err := payment.VerifySignature(p.OrderID, p.PaymentID, p.Signature, s.secret); err != nil {
		s.logger.Warn("payment signature mismatch", slog.String("order_id", p.OrderID))
		return payment.Payment{}, err
	}

	currency := strings.ToUpper(strings.TrimSpace(p.Currency))
	if currency == "" {
		currency = "INR"
	}
	saved, err := s.payments.Save(ctx, payment.NewPayment(p.OrderID, p.PaymentID, actor.UserID(), p.Amount, currency, time.Now().UTC()))
	if err != nil {
		return payment.Payment{}, fmt.Errorf("save payment: %w", err)
	}
	s.logger.Info("payment verified", slog.String("order_id", p.OrderID), slog.String("payment_id", p.PaymentID))
	return saved, nil
}
