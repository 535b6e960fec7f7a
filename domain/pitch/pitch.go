// Package pitch models founder pitches and their investor recipients.
package pitch

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/investmatch/investmatch/domain/errs"
)

// ExcerptLength is the number of runes of the message carried in
// notifications.
const ExcerptLength = 140

// Pitch is an immutable message from a founder to one or more investors.
type Pitch struct {
	id        string
	founderID string
	startupID string
	subject   string
	message   string
	deckURL   string
	createdAt time.Time
}

// NewPitch creates a Pitch.
func NewPitch(founderID, startupID, subject, message, deckURL string) Pitch {
	return Pitch{
		founderID: founderID,
		startupID: startupID,
		subject:   subject,
		message:   message,
		deckURL:   deckURL,
	}
}

// ReconstructPitch rebuilds a Pitch from persistence.
func ReconstructPitch(id, founderID, startupID, subject, message, deckURL string, createdAt time.Time) Pitch {
	p := NewPitch(founderID, startupID, subject, message, deckURL)
	p.id = id
	p.createdAt = createdAt
	return p
}

// ID returns the pitch id.
func (p Pitch) ID() string { return p.id }

// FounderID returns the sender's user id.
func (p Pitch) FounderID() string { return p.founderID }

// StartupID returns the sender's startup id, or "".
func (p Pitch) StartupID() string { return p.startupID }

// Subject returns the subject line.
func (p Pitch) Subject() string { return p.subject }

// Message returns the body.
func (p Pitch) Message() string { return p.message }

// DeckURL returns the deck link, or "".
func (p Pitch) DeckURL() string { return p.deckURL }

// CreatedAt returns the creation time.
func (p Pitch) CreatedAt() time.Time { return p.createdAt }

// Excerpt returns the first ExcerptLength runes of the message.
func (p Pitch) Excerpt() string {
	return Excerpt(p.message, ExcerptLength)
}

// Excerpt truncates s to n runes.
func Excerpt(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// Draft is an unsent pitch as submitted by a founder.
type Draft struct {
	Subject     string
	Message     string
	InvestorIDs []string
	DeckURL     string
}

// Validate rejects drafts with a blank subject or message, or no recipients.
func (d Draft) Validate() error {
	if strings.TrimSpace(d.Subject) == "" {
		return fmt.Errorf("%w: subject is required", errs.ErrValidation)
	}
	if strings.TrimSpace(d.Message) == "" {
		return fmt.Errorf("%w: message is required", errs.ErrValidation)
	}
	if len(d.Recipients()) == 0 {
		return fmt.Errorf("%w: at least one recipient is required", errs.ErrValidation)
	}
	return nil
}

// Recipients returns the non-blank investor ids, deduplicated in order.
func (d Draft) Recipients() []string {
	seen := make(map[string]struct{}, len(d.InvestorIDs))
	out := make([]string, 0, len(d.InvestorIDs))
	for _, id := range d.InvestorIDs {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
