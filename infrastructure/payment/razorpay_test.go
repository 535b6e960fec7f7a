package payment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/investmatch/investmatch/domain/errs"
	"github.com/investmatch/investmatch/domain/payment"
)

func TestRazorpay_CreateOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/orders", r.URL.Path)
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "rzp_id", user)
		assert.Equal(t, "rzp_secret", pass)

		var body orderRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, int64(49900), body.Amount)
		assert.Equal(t, "INR", body.Currency)

		_, _ = w.Write([]byte(`{"id":"order_1","amount":49900,"currency":"INR","receipt":"rcpt_1","status":"created"}`))
	}))
	defer srv.Close()

	rz := NewRazorpay("rzp_id", "rzp_secret", WithBaseURL(srv.URL+"/v1"), WithHTTPClient(srv.Client()))
	order, err := rz.CreateOrder(context.Background(), 49900, "", "rcpt_1")
	require.NoError(t, err)
	assert.Equal(t, payment.Order{ID: "order_1", Amount: 49900, Currency: "INR", Receipt: "rcpt_1", Status: "created"}, order)
}

func TestRazorpay_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":"BAD_REQUEST_ERROR","description":"amount exceeds maximum"}}`))
	}))
	defer srv.Close()

	rz := NewRazorpay("id", "secret", WithBaseURL(srv.URL))
	_, err := rz.CreateOrder(context.Background(), 1, "INR", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrValidation))
	assert.Contains(t, err.Error(), "amount exceeds maximum")

	_, err = rz.CreateOrder(context.Background(), 0, "INR", "")
	assert.True(t, errors.Is(err, errs.ErrValidation))

	_, err = NewRazorpay("", "").CreateOrder(context.Background(), 100, "INR", "")
	assert.ErrorIs(t, err, ErrNotConfigured)
}
