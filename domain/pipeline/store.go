package pipeline

import (
	"context"

	"github.com/investmatch/investmatch/domain/account"
	"github.com/investmatch/investmatch/domain/store"
)

// Store persists pipeline entries. Every method is scoped to the actor:
// rows the actor may not see behave as missing, and inserts the actor may
// not make fail with errs.ErrForbidden.
type Store interface {
	// Upsert inserts the entry or returns the existing row for the same
	// (investor, startup) pair unchanged.
	Upsert(ctx context.Context, actor account.Actor, e Entry) (Entry, error)
	Get(ctx context.Context, actor account.Actor, id string) (Entry, error)
	Find(ctx context.Context, actor account.Actor, options ...store.Option) ([]Entry, error)
	UpdateStage(ctx context.Context, actor account.Actor, id string, stage Stage) (Entry, error)
	UpdateNotes(ctx context.Context, actor account.Actor, id string, notes string) (Entry, error)
	Delete(ctx context.Context, actor account.Actor, id string) error
	Count(ctx context.Context, options ...store.Option) (int64, error)
}

// WithInvestorID filters by the "investor_id" column.
func WithInvestorID(id string) store.Option {
	return store.WithCondition("investor_id", id)
}

// WithStartupID filters by the "startup_id" column.
func WithStartupID(id string) store.Option {
	return store.WithCondition("startup_id", id)
}

// WithStage filters by the "stage" column.
func WithStage(s Stage) store.Option {
	return store.WithCondition("stage", string(s))
}
