package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm/clause"

	"github.com/investmatch/investmatch/domain/payment"
	"github.com/investmatch/investmatch/domain/store"
	"github.com/investmatch/investmatch/internal/database"
)

// PaymentStore implements payment.Store using GORM.
type PaymentStore struct {
	database.Repository[payment.Payment, PaymentModel]
}

// NewPaymentStore creates a new PaymentStore.
func NewPaymentStore(db database.Database) PaymentStore {
	return PaymentStore{
		Repository: database.NewRepository[payment.Payment, PaymentModel](db, PaymentMapper{}, "payment"),
	}
}

// Save records a verified payment. Re-verifying the same order keeps the
// first row.
func (s PaymentStore) Save(ctx context.Context, p payment.Payment) (payment.Payment, error) {
	model := s.Mapper().ToModel(p)
	err := s.DB(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "order_id"}},
		DoNothing: true,
	}).Create(&model).Error
	if err != nil {
		return payment.Payment{}, fmt.Errorf("save payment: %w", err)
	}
	return s.FindOne(ctx, store.WithCondition("order_id", p.OrderID()))
}
