// Package payment models Razorpay orders and payment verification.
package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/investmatch/investmatch/domain/errs"
)

// Sign returns the hex HMAC-SHA256 of "orderID|paymentID" keyed by secret.
func Sign(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature checks a checkout signature in constant time.
func VerifySignature(orderID, paymentID, signature, secret string) error {
	if orderID == "" || paymentID == "" || signature == "" {
		return fmt.Errorf("%w: order id, payment id and signature are required", errs.ErrValidation)
	}
	if secret == "" {
		return fmt.Errorf("payment secret is not configured")
	}
	expected := Sign(orderID, paymentID, secret)
	if !hmac.Equal([]byte(expected), []byte(strings.ToLower(signature))) {
		return errs.ErrSignatureMismatch
	}
	return nil
}
