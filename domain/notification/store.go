package notification

import (
	"context"

	"github.com/investmatch/investmatch/domain/account"
	"github.com/investmatch/investmatch/domain/store"
)

// Store persists notifications. Reads and updates only touch rows whose
// recipient is the actor.
type Store interface {
	Save(ctx context.Context, n Notification) (Notification, error)
	Find(ctx context.Context, actor account.Actor, options ...store.Option) ([]Notification, error)
	MarkRead(ctx context.Context, actor account.Actor, id string) error
	MarkAllRead(ctx context.Context, actor account.Actor) (int64, error)
	CountUnread(ctx context.Context, actor account.Actor) (int64, error)
	Count(ctx context.Context, options ...store.Option) (int64, error)
}

// WithUnread restricts to unread notifications.
func WithUnread() store.Option {
	return store.WithCondition("is_read", false)
}

// WithType filters by the "type" column.
func WithType(t Type) store.Option {
	return store.WithCondition("type", string(t))
}
