// Package notification models in-app notifications.
package notification

import (
	"maps"
	"time"
)

// Type classifies a notification.
type Type string

// Notification types.
const (
	TypePitchReceived        Type = "pitch_received"
	TypePipelineInterest     Type = "pipeline_interest"
	TypePipelineStageChanged Type = "pipeline_stage_changed"
)

// String returns the type name.
func (t Type) String() string { return string(t) }

// Notification is a message for one user. Only the read flag changes after
// creation.
type Notification struct {
	id        string
	userID    string
	kind      Type
	title     string
	body      string
	data      map[string]any
	read      bool
	createdAt time.Time
}

// New creates an unread Notification.
func New(userID string, kind Type, title, body string, data map[string]any) Notification {
	return Notification{
		userID: userID,
		kind:   kind,
		title:  title,
		body:   body,
		data:   maps.Clone(data),
	}
}

// Reconstruct rebuilds a Notification from persistence.
func Reconstruct(
	id, userID string,
	kind Type,
	title, body string,
	data map[string]any,
	read bool,
	createdAt time.Time,
) Notification {
	n := New(userID, kind, title, body, data)
	n.id = id
	n.read = read
	n.createdAt = createdAt
	return n
}

// ID returns the notification id.
func (n Notification) ID() string { return n.id }

// UserID returns the recipient user id.
func (n Notification) UserID() string { return n.userID }

// Type returns the notification type.
func (n Notification) Type() Type { return n.kind }

// Title returns the title.
func (n Notification) Title() string { return n.title }

// Body returns the body text.
func (n Notification) Body() string { return n.body }

// Data returns a copy of the payload.
func (n Notification) Data() map[string]any { return maps.Clone(n.data) }

// IsRead reports whether the recipient has read it.
func (n Notification) IsRead() bool { return n.read }

// CreatedAt returns the creation time.
func (n Notification) CreatedAt() time.Time { return n.createdAt }
