package service

import (
	"context"

	"github.com/investmatch/investmatch/domain/payment"
)

// Orders creates payment orders with the payment provider.
type Orders interface {
	CreateOrder(ctx context.Context, amount int64, currency, receipt string) (payment.Order, error)
}
