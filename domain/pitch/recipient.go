package pitch

import (
	"fmt"
	"strings"
	"time"

	"github.com/investmatch/investmatch/domain/errs"
)

// Status is a recipient's response state.
type Status string

// Status values.
const (
	StatusSent     Status = "sent"
	StatusViewed   Status = "viewed"
	StatusReplied  Status = "replied"
	StatusDeclined Status = "declined"
)

// ParseStatus validates s.
func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusSent:
		return StatusSent, nil
	case StatusViewed:
		return StatusViewed, nil
	case StatusReplied:
		return StatusReplied, nil
	case StatusDeclined:
		return StatusDeclined, nil
	}
	return "", fmt.Errorf("%w: invalid recipient status %q", errs.ErrValidation, s)
}

// String returns the status name.
func (s Status) String() string { return string(s) }

// Recipient links a pitch to an investor.
type Recipient struct {
	pitchID    string
	investorID string
	status     Status
	updatedAt  time.Time
}

// NewRecipient creates a Recipient in the sent state.
func NewRecipient(pitchID, investorID string) Recipient {
	return Recipient{pitchID: pitchID, investorID: investorID, status: StatusSent}
}

// ReconstructRecipient rebuilds a Recipient from persistence.
func ReconstructRecipient(pitchID, investorID string, status Status, updatedAt time.Time) Recipient {
	return Recipient{pitchID: pitchID, investorID: investorID, status: status, updatedAt: updatedAt}
}

// PitchID returns the pitch id.
func (r Recipient) PitchID() string { return r.pitchID }

// InvestorID returns the investor id.
func (r Recipient) InvestorID() string { return r.investorID }

// Status returns the response state.
func (r Recipient) Status() Status { return r.status }

// UpdatedAt returns the last status change.
func (r Recipient) UpdatedAt() time.Time { return r.updatedAt }
