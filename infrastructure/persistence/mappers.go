package persistence

import (
	"encoding/json"
	"log/slog"
	"strings"

	"gorm.io/datatypes"

	"github.com/investmatch/investmatch/domain/account"
	"github.com/investmatch/investmatch/domain/directory"
	"github.com/investmatch/investmatch/domain/notification"
	"github.com/investmatch/investmatch/domain/payment"
	"github.com/investmatch/investmatch/domain/pipeline"
	"github.com/investmatch/investmatch/domain/pitch"
)

// ProfileMapper maps between account.Profile and ProfileModel.
type ProfileMapper struct{}

// ToDomain converts a ProfileModel to a domain Profile.
func (ProfileMapper) ToDomain(e ProfileModel) account.Profile {
	return account.ReconstructProfile(e.ID, e.Email, e.FullName, account.Role(e.Role), e.AvatarURL, e.CreatedAt, e.UpdatedAt)
}

// ToModel converts a domain Profile to a ProfileModel.
func (ProfileMapper) ToModel(p account.Profile) ProfileModel {
	return ProfileModel{
		ID:        p.ID(),
		Email:     p.Email(),
		FullName:  p.FullName(),
		Role:      p.Role().String(),
		AvatarURL: p.AvatarURL(),
		CreatedAt: p.CreatedAt(),
		UpdatedAt: p.UpdatedAt(),
	}
}

// StartupMapper maps between directory.Startup and StartupModel.
type StartupMapper struct{}

// ToDomain converts a StartupModel to a domain Startup.
func (StartupMapper) ToDomain(e StartupModel) directory.Startup {
	return directory.ReconstructStartup(e.ID, e.FounderID, directory.StartupParams{
		Name:        e.Name,
		Tagline:     e.Tagline,
		Description: e.Description,
		Sector:      e.Sector,
		Stage:       e.Stage,
		Location:    e.Location,
		Website:     e.Website,
		LogoURL:     e.LogoURL,
		TeamSize:    e.TeamSize,
		RaiseAmount: e.RaiseAmount,
	}, e.CreatedAt, e.UpdatedAt)
}

// ToModel converts a domain Startup to a StartupModel.
func (StartupMapper) ToModel(s directory.Startup) StartupModel {
	return StartupModel{
		ID:          s.ID(),
		FounderID:   s.FounderID(),
		Name:        s.Name(),
		Tagline:     s.Tagline(),
		Description: s.Description(),
		Sector:      s.Sector(),
		Stage:       s.Stage(),
		Location:    s.Location(),
		Website:     s.Website(),
		LogoURL:     s.LogoURL(),
		TeamSize:    s.TeamSize(),
		RaiseAmount: s.RaiseAmount(),
		CreatedAt:   s.CreatedAt(),
		UpdatedAt:   s.UpdatedAt(),
	}
}

// InvestorMapper maps between directory.Investor and InvestorModel.
type InvestorMapper struct{}

// ToDomain converts an InvestorModel to a domain Investor.
func (InvestorMapper) ToDomain(e InvestorModel) directory.Investor {
	var userID string
	if e.UserID != nil {
		userID = *e.UserID
	}
	return directory.ReconstructInvestor(e.ID, userID, directory.InvestorParams{
		Name:        e.Name,
		Firm:        e.Firm,
		Title:       e.Title,
		Bio:         e.Bio,
		Sectors:     decodeList(e.Sectors),
		Stages:      decodeList(e.Stages),
		Geos:        decodeList(e.Geos),
		CheckSize:   directory.NewCheckSize(e.CheckSizeMin, e.CheckSizeMax),
		Website:     e.Website,
		LinkedinURL: e.LinkedinURL,
	}, e.CreatedAt, e.UpdatedAt)
}

// ToModel converts a domain Investor to an InvestorModel.
func (InvestorMapper) ToModel(inv directory.Investor) InvestorModel {
	m := InvestorModel{
		ID:          inv.ID(),
		Name:        inv.Name(),
		Firm:        inv.Firm(),
		Title:       inv.Title(),
		Bio:         inv.Bio(),
		Sectors:     encodeList(inv.Sectors()),
		Stages:      encodeList(inv.Stages()),
		Geos:        encodeList(inv.Geos()),
		Website:     inv.Website(),
		LinkedinURL: inv.LinkedinURL(),
		CreatedAt:   inv.CreatedAt(),
		UpdatedAt:   inv.UpdatedAt(),
	}
	if id := inv.UserID(); id != "" {
		m.UserID = &id
	}
	if v, ok := inv.CheckSize().Min(); ok {
		m.CheckSizeMin = &v
	}
	if v, ok := inv.CheckSize().Max(); ok {
		m.CheckSizeMax = &v
	}
	return m
}

// encodeList stores values comma-wrapped with their casing intact. Matching
// lowercases both sides.
func encodeList(values []string) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			parts = append(parts, strings.ReplaceAll(v, ",", " "))
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return "," + strings.Join(parts, ",") + ","
}

func decodeList(s string) []string {
	s = strings.Trim(s, ",")
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

// PipelineEntryMapper maps between pipeline.Entry and PipelineEntryModel.
type PipelineEntryMapper struct{}

// ToDomain converts a PipelineEntryModel to a domain Entry.
func (PipelineEntryMapper) ToDomain(e PipelineEntryModel) pipeline.Entry {
	return pipeline.ReconstructEntry(e.ID, e.InvestorID, e.StartupID, pipeline.Stage(e.Stage), e.DiscussionNotes, e.CreatedAt, e.UpdatedAt)
}

// ToModel converts a domain Entry to a PipelineEntryModel.
func (PipelineEntryMapper) ToModel(e pipeline.Entry) PipelineEntryModel {
	return PipelineEntryModel{
		ID:              e.ID(),
		InvestorID:      e.InvestorID(),
		StartupID:       e.StartupID(),
		Stage:           e.Stage().String(),
		DiscussionNotes: e.Notes(),
		CreatedAt:       e.CreatedAt(),
		UpdatedAt:       e.UpdatedAt(),
	}
}

// PitchMapper maps between pitch.Pitch and PitchModel.
type PitchMapper struct{}

// ToDomain converts a PitchModel to a domain Pitch.
func (PitchMapper) ToDomain(e PitchModel) pitch.Pitch {
	var startupID string
	if e.StartupID != nil {
		startupID = *e.StartupID
	}
	return pitch.ReconstructPitch(e.ID, e.FounderID, startupID, e.Subject, e.Message, e.DeckURL, e.CreatedAt)
}

// ToModel converts a domain Pitch to a PitchModel.
func (PitchMapper) ToModel(p pitch.Pitch) PitchModel {
	m := PitchModel{
		ID:        p.ID(),
		FounderID: p.FounderID(),
		Subject:   p.Subject(),
		Message:   p.Message(),
		DeckURL:   p.DeckURL(),
		CreatedAt: p.CreatedAt(),
	}
	if id := p.StartupID(); id != "" {
		m.StartupID = &id
	}
	return m
}

// PitchRecipientMapper maps between pitch.Recipient and PitchRecipientModel.
type PitchRecipientMapper struct{}

// ToDomain converts a PitchRecipientModel to a domain Recipient.
func (PitchRecipientMapper) ToDomain(e PitchRecipientModel) pitch.Recipient {
	return pitch.ReconstructRecipient(e.PitchID, e.InvestorID, pitch.Status(e.Status), e.UpdatedAt)
}

// ToModel converts a domain Recipient to a PitchRecipientModel.
func (PitchRecipientMapper) ToModel(r pitch.Recipient) PitchRecipientModel {
	return PitchRecipientModel{
		PitchID:    r.PitchID(),
		InvestorID: r.InvestorID(),
		Status:     string(r.Status()),
		UpdatedAt:  r.UpdatedAt(),
	}
}

// NotificationMapper maps between notification.Notification and NotificationModel.
type NotificationMapper struct{}

// ToDomain converts a NotificationModel to a domain Notification. A payload
// that fails to decode is dropped rather than failing the listing.
func (NotificationMapper) ToDomain(e NotificationModel) notification.Notification {
	var data map[string]any
	if len(e.Data) > 0 {
		if err := json.Unmarshal(e.Data, &data); err != nil {
			slog.Warn("discarding undecodable notification payload", slog.String("id", e.ID), slog.Any("error", err))
			data = nil
		}
	}
	return notification.Reconstruct(e.ID, e.UserID, notification.Type(e.Type), e.Title, e.Body, data, e.IsRead, e.CreatedAt)
}

// ToModel converts a domain Notification to a NotificationModel.
func (NotificationMapper) ToModel(n notification.Notification) NotificationModel {
	m := NotificationModel{
		ID:        n.ID(),
		UserID:    n.UserID(),
		Type:      string(n.Type()),
		Title:     n.Title(),
		Body:      n.Body(),
		IsRead:    n.IsRead(),
		CreatedAt: n.CreatedAt(),
	}
	if data := n.Data(); len(data) > 0 {
		if raw, err := json.Marshal(data); err == nil {
			m.Data = datatypes.JSON(raw)
		}
	}
	return m
}

// PaymentMapper maps between payment.Payment and PaymentModel.
type PaymentMapper struct{}

// ToDomain converts a PaymentModel to a domain Payment.
func (PaymentMapper) ToDomain(e PaymentModel) payment.Payment {
	return payment.ReconstructPayment(e.OrderID, e.PaymentID, e.UserID, e.Amount, e.Currency, e.Status, e.VerifiedAt)
}

// ToModel converts a domain Payment to a PaymentModel.
func (PaymentMapper) ToModel(p payment.Payment) PaymentModel {
	return PaymentModel{
		OrderID:    p.OrderID(),
		PaymentID:  p.PaymentID(),
		UserID:     p.UserID(),
		Amount:     p.Amount(),
		Currency:   p.Currency(),
		Status:     p.Status(),
		VerifiedAt: p.VerifiedAt(),
	}
}
