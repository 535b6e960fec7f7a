package dto

// OrderRequest opens a payment order. Amount is in the currency's smallest
// unit; Currency defaults to INR.
type OrderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// VerifyPaymentRequest is the checkout handler's callback payload.
type VerifyPaymentRequest struct {
	OrderID   string `json:"razorpay_order_id"`
	PaymentID string `json:"razorpay_payment_id"`
	Signature string `json:"razorpay_signature"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
}
