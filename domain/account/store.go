package account

import (
	"context"

	"github.com/investmatch/investmatch/domain/store"
)

// ProfileStore persists profiles.
type ProfileStore interface {
	store.Store[Profile]
	// Upsert inserts or updates the profile keyed by id.
	Upsert(ctx context.Context, p Profile) (Profile, error)
}

// WithEmail filters by the "email" column.
func WithEmail(email string) store.Option {
	return store.WithCondition("email", email)
}

// WithRole filters by the "role" column.
func WithRole(role Role) store.Option {
	return store.WithCondition("role", string(role))
}
