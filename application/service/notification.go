package service

import (
	"context"
	"fmt"

	"github.com/investmatch/investmatch/domain/account"
	"github.com/investmatch/investmatch/domain/notification"
	"github.com/investmatch/investmatch/domain/store"
	"github.com/investmatch/investmatch/internal/cache"
)

// DefaultNotificationLimit caps a notification listing.
const DefaultNotificationLimit = 50

// Notifications reads and acknowledges the actor's notifications.
type Notifications struct {
	store notification.Store
	views *cache.Views
}

// NewNotifications creates a Notifications service.
func NewNotifications(s notification.Store, views *cache.Views) *Notifications {
	return &Notifications{store: s, views: views}
}

// List returns the actor's newest notifications.
func (s *Notifications) List(ctx context.Context, actor account.Actor, unreadOnly bool, limit int) ([]notification.Notification, error) {
	if limit <= 0 || limit > DefaultNotificationLimit {
		limit = DefaultNotificationLimit
	}
	opts := []store.Option{store.WithOrderDesc("created_at"), store.WithLimit(limit)}
	if unreadOnly {
		opts = append(opts, notification.WithUnread())
	}
	key := cache.Key(fmt.Sprintf("%s?unread=%t&limit=%d", ViewNotifications, unreadOnly, limit), actor.UserID())
	return cache.Remember(s.views, key, func() ([]notification.Notification, error) {
		return s.store.Find(ctx, actor, opts...)
	})
}

// UnreadCount returns how many notifications the actor has not read.
func (s *Notifications) UnreadCount(ctx context.Context, actor account.Actor) (int64, error) {
	return s.store.CountUnread(ctx, actor)
}

// MarkRead acknowledges one notification.
func (s *Notifications) MarkRead(ctx context.Context, actor account.Actor, id string) error {
	if err := s.store.MarkRead(ctx, actor, id); err != nil {
		return err
	}
	s.views.Invalidate(ViewNotifications)
	return nil
}

// MarkAllRead acknowledges everything and returns how many changed.
func (s *Notifications) MarkAllRead(ctx context.Context, actor account.Actor) (int64, error) {
	n, err := s.store.MarkAllRead(ctx, actor)
	if err != nil {
		return 0, err
	}
	s.views.Invalidate(ViewNotifications)
	return n, nil
}
