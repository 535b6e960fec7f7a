package pitch

import (
	"context"

	"github.com/investmatch/investmatch/domain/account"
	"github.com/investmatch/investmatch/domain/store"
)

// Store persists pitches.
type Store interface {
	store.Store[Pitch]
	Save(ctx context.Context, p Pitch) (Pitch, error)
}

// RecipientStore persists pitch recipients.
type RecipientStore interface {
	Save(ctx context.Context, r Recipient) (Recipient, error)
	Find(ctx context.Context, options ...store.Option) ([]Recipient, error)
	// UpdateStatus changes the status of a recipient row. Only the user
	// linked to the investor (or an admin) may see the row.
	UpdateStatus(ctx context.Context, actor account.Actor, pitchID, investorID string, status Status) (Recipient, error)
}

// WithFounderID filters pitches by the "founder_id" column.
func WithFounderID(id string) store.Option {
	return store.WithCondition("founder_id", id)
}

// WithPitchID filters recipients by the "pitch_id" column.
func WithPitchID(id string) store.Option {
	return store.WithCondition("pitch_id", id)
}

// WithPitchIDIn filters recipients by several pitch ids.
func WithPitchIDIn(ids []string) store.Option {
	return store.WithConditionIn("pitch_id", ids)
}

// WithInvestorID filters recipients by the "investor_id" column.
func WithInvestorID(id string) store.Option {
	return store.WithCondition("investor_id", id)
}
