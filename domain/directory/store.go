package directory

import (
	"context"

	"github.com/investmatch/investmatch/domain/store"
)

// StartupStore persists startups.
type StartupStore interface {
	store.Store[Startup]
	Save(ctx context.Context, s Startup) (Startup, error)
	Search(ctx context.Context, filter Filter) ([]Startup, error)
}

// InvestorStore persists investors.
type InvestorStore interface {
	store.Store[Investor]
	Save(ctx context.Context, inv Investor) (Investor, error)
	Search(ctx context.Context, filter Filter) ([]Investor, error)
	// LinkedUsers maps investor ids to their linked user ids. Investors
	// without a linked user are absent from the result.
	LinkedUsers(ctx context.Context, investorIDs []string) (map[string]string, error)
}

// WithFounderID filters startups by the "founder_id" column.
func WithFounderID(id string) store.Option {
	return store.WithCondition("founder_id", id)
}

// WithUserID filters investors by the "user_id" column.
func WithUserID(id string) store.Option {
	return store.WithCondition("user_id", id)
}
