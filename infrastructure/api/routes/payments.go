package routes

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/investmatch/investmatch/application/service"
	"github.com/investmatch/investmatch/infrastructure/api/jsonapi"
	"github.com/investmatch/investmatch/infrastructure/api/middleware"
	"github.com/investmatch/investmatch/infrastructure/api/routes/dto"
)

// PaymentsRouter serves the Razorpay checkout endpoints.
type PaymentsRouter struct {
	payments   *service.Payments
	keyID      string
	serializer *jsonapi.Serializer
	logger     *slog.Logger
}

// NewPaymentsRouter creates a PaymentsRouter. keyID is the public key
// returned alongside new orders for the checkout widget.
func NewPaymentsRouter(payments *service.Payments, keyID string, logger *slog.Logger) *PaymentsRouter {
	return &PaymentsRouter{payments: payments, keyID: keyID, serializer: jsonapi.NewSerializer(), logger: logger}
}

// Routes returns the /api/razorpay routes.
func (p *PaymentsRouter) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireActor(p.logger))

	router.Post("/order", p.CreateOrder)
	router.Post("/verify", p.Verify)

	return router
}

// CreateOrder handles POST /api/razorpay/order.
func (p *PaymentsRouter) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var body dto.OrderRequest
	if err := decodeJSON(w, r, &body); err != nil {
		middleware.WriteError(w, r, err, p.logger)
		return
	}
	order, err := p.payments.CreateOrder(r.Context(), middleware.Actor(r.Context()), body.Amount, body.Currency)
	if err != nil {
		middleware.WriteError(w, r, err, p.logger)
		return
	}
	middleware.WriteJSON(w, http.StatusCreated, jsonapi.NewSingleResponse(p.serializer.OrderResource(order, p.keyID)))
}

// Verify handles POST /api/razorpay/verify.
func (p *PaymentsRouter) Verify(w http.ResponseWriter, r *http.Request) {
	var body dto.VerifyPaymentRequest
	if err := decodeJSON(w, r, &body); err != nil {
		middleware.WriteError(w, r, err, p.logger)
		return
	}
	paid, err := p.payments.Verify(r.Context(), middleware.Actor(r.Context()), service.VerifyParams{
		OrderID:   body.OrderID,
		PaymentID: body.PaymentID,
		Signature: body.Signature,
		Amount:    body.Amount,
		Currency:  body.Currency,
	})
	if err != nil {
		middleware.WriteError(w, r, err, p.logger)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, jsonapi.NewSingleResponse(p.serializer.PaymentResource(paid)))
}
