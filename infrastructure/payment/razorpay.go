// Package payment creates orders with the Razorpay API.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/investmatch/investmatch/domain/errs"
	"github.com/investmatch/investmatch/domain/payment"
)

// DefaultBaseURL is the Razorpay API root.
const DefaultBaseURL = "https://api.razorpay.com/v1"

// ErrNotConfigured is returned when credentials are missing.
var ErrNotConfigured = fmt.Errorf("%w: razorpay not configured", errs.ErrUnavailable)

// Razorpay is an orders API client using basic auth.
type Razorpay struct {
	baseURL   string
	keyID     string
	keySecret string
	http      *http.Client
}

// Option configures a Razorpay client.
type Option func(*Razorpay)

// WithBaseURL overrides the API root.
func WithBaseURL(u string) Option {
	return func(r *Razorpay) { r.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient sets the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(r *Razorpay) { r.http = c }
}

// NewRazorpay creates a client for the given key pair.
func NewRazorpay(keyID, keySecret string, opts ...Option) *Razorpay {
	r := &Razorpay{
		baseURL:   DefaultBaseURL,
		keyID:     keyID,
		keySecret: keySecret,
		http:      &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// KeyID returns the public key id the checkout widget needs.
func (r *Razorpay) KeyID() string { return r.keyID }

type orderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt,omitempty"`
}

type orderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

type errorResponse struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

// CreateOrder creates an order for amount in the currency's smallest unit.
func (r *Razorpay) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (payment.Order, error) {
	if r.keyID == "" || r.keySecret == "" {
		return payment.Order{}, ErrNotConfigured
	}
	if amount <= 0 {
		return payment.Order{}, fmt.Errorf("%w: amount must be positive", errs.ErrValidation)
	}
	if currency == "" {
		currency = "INR"
	}

	data, err := json.Marshal(orderRequest{Amount: amount, Currency: currency, Receipt: receipt})
	if err != nil {
		return payment.Order{}, fmt.Errorf("encode order: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/orders", bytes.NewReader(data))
	if err != nil {
		return payment.Order{}, fmt.Errorf("create order request: %w", err)
	}
	req.SetBasicAuth(r.keyID, r.keySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.http.Do(req)
	if err != nil {
		return payment.Order{}, fmt.Errorf("razorpay: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return payment.Order{}, fmt.Errorf("read razorpay response: %w", err)
	}

	if resp.StatusCode >= 300 {
		var e errorResponse
		_ = json.Unmarshal(body, &e)
		msg := e.Error.Description
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		if resp.StatusCode == http.StatusBadRequest {
			return payment.Order{}, fmt.Errorf("%w: %s", errs.ErrValidation, msg)
		}
		return payment.Order{}, fmt.Errorf("razorpay returned %d: %s", resp.StatusCode, msg)
	}

	var o orderResponse
	if err := json.Unmarshal(body, &o); err != nil {
		return payment.Order{}, fmt.Errorf("decode order: %w", err)
	}
	return payment.Order{ID: o.ID, Amount: o.Amount, Currency: o.Currency, Receipt: o.Receipt, Status: o.Status}, nil
}
