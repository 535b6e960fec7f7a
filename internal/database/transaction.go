package database

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// WithTransaction runs fn inside a transaction. The Database handed to fn is
// bound to the transaction, so stores built on it share the transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
func WithTransaction(ctx context.Context, db Database, fn func(tx Database) error) error {
	err := db.Session(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(Database{db: tx})
	})
	if err != nil {
		return fmt.Errorf("transaction: %w", err)
	}
	return nil
}
