package jsonapi

import (
	"time"

	"github.com/investmatch/investmatch/domain/account"
	"github.com/investmatch/investmatch/domain/directory"
	"github.com/investmatch/investmatch/domain/notification"
	"github.com/investmatch/investmatch/domain/payment"
	"github.com/investmatch/investmatch/domain/pipeline"
	"github.com/investmatch/investmatch/domain/pitch"
)

// Resource types.
const (
	TypeProfile       = "profile"
	TypeStartup       = "startup"
	TypeInvestor      = "investor"
	TypePipelineEntry = "pipeline_entry"
	TypePitch         = "pitch"
	TypeRecipient     = "pitch_recipient"
	TypeNotification  = "notification"
	TypeOrder         = "order"
	TypePayment       = "payment"
)

// ProfileAttributes represents profile attributes in JSON:API format.
type ProfileAttributes struct {
	Email     string     `json:"email"`
	FullName  string     `json:"full_name"`
	Role      string     `json:"role"`
	AvatarURL string     `json:"avatar_url,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// StartupAttributes represents startup attributes in JSON:API format.
type StartupAttributes struct {
	Name        string     `json:"name"`
	Tagline     string     `json:"tagline"`
	Description string     `json:"description"`
	Sector      string     `json:"sector"`
	Stage       string     `json:"stage"`
	Location    string     `json:"location"`
	Website     string     `json:"website"`
	LogoURL     string     `json:"logo_url"`
	TeamSize    int        `json:"team_size"`
	RaiseAmount int64      `json:"raise_amount"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// InvestorAttributes represents investor attributes in JSON:API format.
// Check-size bounds are null when open.
type InvestorAttributes struct {
	Name         string     `json:"name"`
	Firm         string     `json:"firm"`
	Title        string     `json:"title"`
	Bio          string     `json:"bio"`
	Sectors      []string   `json:"sectors"`
	Stages       []string   `json:"stages"`
	Geos         []string   `json:"geos"`
	CheckSizeMin *int64     `json:"check_size_min"`
	CheckSizeMax *int64     `json:"check_size_max"`
	Website      string     `json:"website"`
	LinkedinURL  string     `json:"linkedin_url"`
	Claimed      bool       `json:"claimed"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

// PipelineEntryAttributes represents pipeline entry attributes in JSON:API format.
type PipelineEntryAttributes struct {
	InvestorID      string     `json:"investor_id"`
	StartupID       string     `json:"startup_id"`
	Stage           string     `json:"stage"`
	DiscussionNotes string     `json:"discussion_notes"`
	CreatedAt       *time.Time `json:"created_at,omitempty"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
}

// RecipientAttributes represents a pitch recipient in JSON:API format.
type RecipientAttributes struct {
	PitchID    string     `json:"pitch_id"`
	InvestorID string     `json:"investor_id"`
	Status     string     `json:"status"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}

// PitchAttributes represents pitch attributes in JSON:API format.
// Recipients is set on a founder's sent pitches; Status on an investor's
// received pitches.
type PitchAttributes struct {
	Subject    string                `json:"subject"`
	Message    string                `json:"message"`
	DeckURL    string                `json:"deck_url,omitempty"`
	Recipients []RecipientAttributes `json:"recipients,omitempty"`
	Status     string                `json:"status,omitempty"`
	CreatedAt  *time.Time            `json:"created_at,omitempty"`
}

// NotificationAttributes represents notification attributes in JSON:API format.
type NotificationAttributes struct {
	Type      string         `json:"type"`
	Title     string         `json:"title"`
	Body      string         `json:"body"`
	Data      map[string]any `json:"data"`
	IsRead    bool           `json:"is_read"`
	CreatedAt *time.Time     `json:"created_at,omitempty"`
}

// OrderAttributes represents a payment order in JSON:API format. KeyID is
// the public key the checkout widget needs.
type OrderAttributes struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
	KeyID    string `json:"key_id,omitempty"`
}

// PaymentAttributes represents a verified payment in JSON:API format.
type PaymentAttributes struct {
	PaymentID  string     `json:"payment_id"`
	Amount     int64      `json:"amount"`
	Currency   string     `json:"currency"`
	Status     string     `json:"status"`
	Verified   bool       `json:"verified"`
	VerifiedAt *time.Time `json:"verified_at,omitempty"`
}

// Serializer converts domain objects to JSON:API resources.
type Serializer struct{}

// NewSerializer creates a new Serializer.
func NewSerializer() *Serializer {
	return &Serializer{}
}

// ProfileResource converts a profile to a JSON:API resource.
func (s *Serializer) ProfileResource(p account.Profile) *Resource {
	return NewResource(TypeProfile, p.ID(), &ProfileAttributes{
		Email:     p.Email(),
		FullName:  p.FullName(),
		Role:      p.Role().String(),
		AvatarURL: p.AvatarURL(),
		CreatedAt: timePtr(p.CreatedAt()),
		UpdatedAt: timePtr(p.UpdatedAt()),
	})
}

// ProfileResources converts multiple profiles to JSON:API resources.
func (s *Serializer) ProfileResources(profiles []account.Profile) []*Resource {
	resources := make([]*Resource, len(profiles))
	for i, p := range profiles {
		resources[i] = s.ProfileResource(p)
	}
	return resources
}

// StartupResource converts a startup to a JSON:API resource.
func (s *Serializer) StartupResource(st directory.Startup) *Resource {
	return NewResource(TypeStartup, st.ID(), &StartupAttributes{
		Name:        st.Name(),
		Tagline:     st.Tagline(),
		Description: st.Description(),
		Sector:      st.Sector(),
		Stage:       st.Stage(),
		Location:    st.Location(),
		Website:     st.Website(),
		LogoURL:     st.LogoURL(),
		TeamSize:    st.TeamSize(),
		RaiseAmount: st.RaiseAmount(),
		CreatedAt:   timePtr(st.CreatedAt()),
		UpdatedAt:   timePtr(st.UpdatedAt()),
	}).WithRelationship("founder", TypeProfile, st.FounderID())
}

// StartupResources converts multiple startups to JSON:API resources.
func (s *Serializer) StartupResources(startups []directory.Startup) []*Resource {
	resources := make([]*Resource, len(startups))
	for i, st := range startups {
		resources[i] = s.StartupResource(st)
	}
	return resources
}

// InvestorResource converts an investor to a JSON:API resource. The linked
// user id is not exposed; Claimed reports whether one exists.
func (s *Serializer) InvestorResource(inv directory.Investor) *Resource {
	attrs := &InvestorAttributes{
		Name:        inv.Name(),
		Firm:        inv.Firm(),
		Title:       inv.Title(),
		Bio:         inv.Bio(),
		Sectors:     nonNil(inv.Sectors()),
		Stages:      nonNil(inv.Stages()),
		Geos:        nonNil(inv.Geos()),
		Website:     inv.Website(),
		LinkedinURL: inv.LinkedinURL(),
		Claimed:     inv.UserID() != "",
		CreatedAt:   timePtr(inv.CreatedAt()),
		UpdatedAt:   timePtr(inv.UpdatedAt()),
	}
	if v, ok := inv.CheckSize().Min(); ok {
		attrs.CheckSizeMin = &v
	}
	if v, ok := inv.CheckSize().Max(); ok {
		attrs.CheckSizeMax = &v
	}
	return NewResource(TypeInvestor, inv.ID(), attrs)
}

// InvestorResources converts multiple investors to JSON:API resources.
func (s *Serializer) InvestorResources(investors []directory.Investor) []*Resource {
	resources := make([]*Resource, len(investors))
	for i, inv := range investors {
		resources[i] = s.InvestorResource(inv)
	}
	return resources
}

// PipelineEntryResource converts a pipeline entry to a JSON:API resource.
func (s *Serializer) PipelineEntryResource(e pipeline.Entry) *Resource {
	return NewResource(TypePipelineEntry, e.ID(), &PipelineEntryAttributes{
		InvestorID:      e.InvestorID(),
		StartupID:       e.StartupID(),
		Stage:           e.Stage().String(),
		DiscussionNotes: e.Notes(),
		CreatedAt:       timePtr(e.CreatedAt()),
		UpdatedAt:       timePtr(e.UpdatedAt()),
	})
}

// PipelineEntryResources converts multiple entries to JSON:API resources.
func (s *Serializer) PipelineEntryResources(entries []pipeline.Entry) []*Resource {
	resources := make([]*Resource, len(entries))
	for i, e := range entries {
		resources[i] = s.PipelineEntryResource(e)
	}
	return resources
}

// PitchResource converts a pitch to a JSON:API resource.
func (s *Serializer) PitchResource(p pitch.Pitch) *Resource {
	return NewResource(TypePitch, p.ID(), pitchAttributes(p)).
		WithRelationship("startup", TypeStartup, p.StartupID())
}

// SentPitchResource converts a founder's pitch and its recipients.
func (s *Serializer) SentPitchResource(p pitch.Pitch, recipients []pitch.Recipient) *Resource {
	attrs := pitchAttributes(p)
	attrs.Recipients = make([]RecipientAttributes, len(recipients))
	for i, r := range recipients {
		attrs.Recipients[i] = recipientAttributes(r)
	}
	return NewResource(TypePitch, p.ID(), attrs).
		WithRelationship("startup", TypeStartup, p.StartupID())
}

// ReceivedPitchResource converts a pitch as seen by one recipient.
func (s *Serializer) ReceivedPitchResource(p pitch.Pitch, r pitch.Recipient) *Resource {
	attrs := pitchAttributes(p)
	attrs.Status = r.Status().String()
	return NewResource(TypePitch, p.ID(), attrs).
		WithRelationship("startup", TypeStartup, p.StartupID()).
		WithRelationship("investor", TypeInvestor, r.InvestorID())
}

// RecipientResource converts a recipient to a JSON:API resource.
func (s *Serializer) RecipientResource(r pitch.Recipient) *Resource {
	attrs := recipientAttributes(r)
	return NewResource(TypeRecipient, r.PitchID()+":"+r.InvestorID(), &attrs)
}

// NotificationResource converts a notification to a JSON:API resource.
func (s *Serializer) NotificationResource(n notification.Notification) *Resource {
	data := n.Data()
	if data == nil {
		data = map[string]any{}
	}
	return NewResource(TypeNotification, n.ID(), &NotificationAttributes{
		Type:      n.Type().String(),
		Title:     n.Title(),
		Body:      n.Body(),
		Data:      data,
		IsRead:    n.IsRead(),
		CreatedAt: timePtr(n.CreatedAt()),
	})
}

// NotificationResources converts multiple notifications to JSON:API resources.
func (s *Serializer) NotificationResources(ns []notification.Notification) []*Resource {
	resources := make([]*Resource, len(ns))
	for i, n := range ns {
		resources[i] = s.NotificationResource(n)
	}
	return resources
}

// OrderResource converts a payment order to a JSON:API resource.
func (s *Serializer) OrderResource(o payment.Order, keyID string) *Resource {
	return NewResource(TypeOrder, o.ID, &OrderAttributes{
		Amount:   o.Amount,
		Currency: o.Currency,
		Receipt:  o.Receipt,
		Status:   o.Status,
		KeyID:    keyID,
	})
}

// PaymentResource converts a verified payment to a JSON:API resource.
func (s *Serializer) PaymentResource(p payment.Payment) *Resource {
	return NewResource(TypePayment, p.OrderID(), &PaymentAttributes{
		PaymentID:  p.PaymentID(),
		Amount:     p.Amount(),
		Currency:   p.Currency(),
		Status:     p.Status(),
		Verified:   p.Status() == payment.StatusVerified,
		VerifiedAt: timePtr(p.VerifiedAt()),
	})
}

func pitchAttributes(p pitch.Pitch) *PitchAttributes {
	return &PitchAttributes{
		Subject:   p.Subject(),
		Message:   p.Message(),
		DeckURL:   p.DeckURL(),
		CreatedAt: timePtr(p.CreatedAt()),
	}
}

func recipientAttributes(r pitch.Recipient) RecipientAttributes {
	return RecipientAttributes{
		PitchID:    r.PitchID(),
		InvestorID: r.InvestorID(),
		Status:     r.Status().String(),
		UpdatedAt:  timePtr(r.UpdatedAt()),
	}
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
