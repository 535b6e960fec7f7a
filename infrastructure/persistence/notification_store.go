package persistence

import (
	"context"
	"fmt"

	"github.com/investmatch/investmatch/domain/account"
	"github.com/investmatch/investmatch/domain/errs"
	"github.com/investmatch/investmatch/domain/notification"
	"github.com/investmatch/investmatch/domain/store"
	"github.com/investmatch/investmatch/internal/database"
)

// NotificationStore implements notification.Store using GORM.
type NotificationStore struct {
	repo database.Repository[notification.Notification, NotificationModel]
}

// NewNotificationStore creates a new NotificationStore.
func NewNotificationStore(db database.Database) NotificationStore {
	return NotificationStore{
		repo: database.NewRepository[notification.Notification, NotificationModel](db, NotificationMapper{}, "notification"),
	}
}

// Save inserts a notification.
func (s NotificationStore) Save(ctx context.Context, n notification.Notification) (notification.Notification, error) {
	model := s.repo.Mapper().ToModel(n)
	if err := s.repo.DB(ctx).Create(&model).Error; err != nil {
		return notification.Notification{}, fmt.Errorf("save notification: %w", err)
	}
	return s.repo.Mapper().ToDomain(model), nil
}

// Find returns the actor's notifications matching options.
func (s NotificationStore) Find(ctx context.Context, actor account.Actor, options ...store.Option) ([]notification.Notification, error) {
	scope, err := notificationScope(actor)
	if err != nil {
		return nil, err
	}
	return s.repo.Find(ctx, append(options, scope...)...)
}

// MarkRead flags one of the actor's notifications as read.
func (s NotificationStore) MarkRead(ctx context.Context, actor account.Actor, id string) error {
	scope, err := notificationScope(actor)
	if err != nil {
		return err
	}
	opts := append([]store.Option{store.WithID(id)}, scope...)
	result := database.ApplyConditions(s.repo.DB(ctx).Model(&NotificationModel{}), opts...).Update("is_read", true)
	if result.Error != nil {
		return fmt.Errorf("mark notification read: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: notification %s", errs.ErrNotFound, id)
	}
	return nil
}

// MarkAllRead flags all of the actor's unread notifications as read and
// returns how many changed.
func (s NotificationStore) MarkAllRead(ctx context.Context, actor account.Actor) (int64, error) {
	scope, err := notificationScope(actor)
	if err != nil {
		return 0, err
	}
	opts := append([]store.Option{notification.WithUnread()}, scope...)
	result := database.ApplyConditions(s.repo.DB(ctx).Model(&NotificationModel{}), opts...).Update("is_read", true)
	if result.Error != nil {
		return 0, fmt.Errorf("mark all notifications read: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// CountUnread returns the actor's unread count.
func (s NotificationStore) CountUnread(ctx context.Context, actor account.Actor) (int64, error) {
	scope, err := notificationScope(actor)
	if err != nil {
		return 0, err
	}
	return s.repo.Count(ctx, append([]store.Option{notification.WithUnread()}, scope...)...)
}

// Count returns the number of notifications matching options, unscoped.
func (s NotificationStore) Count(ctx context.Context, options ...store.Option) (int64, error) {
	return s.repo.Count(ctx, options...)
}
