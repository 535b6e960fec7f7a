package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/investmatch/investmatch/domain/account"
	"github.com/investmatch/investmatch/domain/directory"
	"github.com/investmatch/investmatch/domain/errs"
	"github.com/investmatch/investmatch/domain/notification"
	"github.com/investmatch/investmatch/domain/pitch"
	"github.com/investmatch/investmatch/domain/service"
	"github.com/investmatch/investmatch/domain/store"
	"github.com/investmatch/investmatch/internal/cache"
)

// Deck is an uploaded pitch deck file.
type Deck struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// SendParams is a pitch submission.
type SendParams struct {
	Draft pitch.Draft
	// Deck, when set, is uploaded and replaces Draft.DeckURL.
	Deck *Deck
}

// SentPitch is a founder's pitch with its recipients.
type SentPitch struct {
	Pitch      pitch.Pitch
	Recipients []pitch.Recipient
}

// ReceivedPitch is a pitch as seen by one recipient investor.
type ReceivedPitch struct {
	Pitch     pitch.Pitch
	Recipient pitch.Recipient
}

// Pitches sends pitches and fans them out as notifications.
type Pitches struct {
	pitches       pitch.Store
	recipients    pitch.RecipientStore
	startups      directory.StartupStore
	investors     directory.InvestorStore
	notifications notification.Store
	bucket        service.Bucket
	views         *cache.Views
	logger        *slog.Logger
}

// NewPitches creates a Pitches service.
func NewPitches(
	pitches pitch.Store,
	recipients pitch.RecipientStore,
	startups directory.StartupStore,
	investors directory.InvestorStore,
	notifications notification.Store,
	bucket service.Bucket,
	views *cache.Views,
	logger *slog.Logger,
) *Pitches {
	return &Pitches{
		pitches:       pitches,
		recipients:    recipients,
		startups:      startups,
		investors:     investors,
		notifications: notifications,
		bucket:        bucket,
		views:         views,
		logger:        logger,
	}
}

// Send validates the draft, uploads the deck, then writes the pitch, one
// recipient row per investor and one notification per investor with a
// linked user. The writes are sequential and not transactional: if a
// recipient or notification write fails the pitch row stays and the error
// is returned.
func (s *Pitches) Send(ctx context.Context, actor account.Actor, p SendParams) (pitch.Pitch, error) {
	if err := requireRole(actor, account.RoleFounder); err != nil {
		return pitch.Pitch{}, err
	}
	if err := p.Draft.Validate(); err != nil {
		return pitch.Pitch{}, err
	}
	investorIDs := p.Draft.Recipients()

	deckURL := strings.TrimSpace(p.Draft.DeckURL)
	if p.Deck != nil {
		if s.bucket == nil {
			return pitch.Pitch{}, fmt.Errorf("%w: no storage configured for deck uploads", errs.ErrUnavailable)
		}
		url, err := s.bucket.Upload(ctx, deckPath(actor.UserID(), p.Deck.Filename), p.Deck.ContentType, p.Deck.Body)
		if err != nil {
			return pitch.Pitch{}, fmt.Errorf("upload deck: %w", err)
		}
		deckURL = url
	}

	startupID, startupName := "", ""
	if st, err := s.startups.FindOne(ctx, directory.WithFounderID(actor.UserID())); err == nil {
		startupID, startupName = st.ID(), st.Name()
	} else if !errors.Is(err, errs.ErrNotFound) {
		return pitch.Pitch{}, fmt.Errorf("load startup: %w", err)
	}

	saved, err := s.pitches.Save(ctx, pitch.NewPitch(actor.UserID(), startupID,
		strings.TrimSpace(p.Draft.Subject), strings.TrimSpace(p.Draft.Message), deckURL))
	if err != nil {
		return pitch.Pitch{}, fmt.Errorf("save pitch: %w", err)
	}
	defer s.views.Invalidate(ViewPitches, ViewNotifications, ViewAdmin)

	for _, id := range investorIDs {
		if _, err := s.recipients.Save(ctx, pitch.NewRecipient(saved.ID(), id)); err != nil {
			return saved, fmt.Errorf("save recipient %s: %w", id, err)
		}
	}

	users, err := s.investors.LinkedUsers(ctx, investorIDs)
	if err != nil {
		return saved, fmt.Errorf("resolve recipients: %w", err)
	}

	title := "New pitch: " + saved.Subject()
	if startupName != "" {
		title = "New pitch from " + startupName
	}
	notified := 0
	for _, id := range investorIDs {
		userID, ok := users[id]
		if !ok {
			continue
		}
		n := notification.New(userID, notification.TypePitchReceived, title, saved.Excerpt(), map[string]any{
			"pitch_id":    saved.ID(),
			"investor_id": id,
			"startup_id":  startupID,
			"subject":     saved.Subject(),
			"deck_url":    deckURL,
		})
		if _, err := s.notifications.Save(ctx, n); err != nil {
			return saved, fmt.Errorf("notify investor %s: %w", id, err)
		}
		notified++
	}

	s.logger.Info("pitch sent",
		slog.String("pitch_id", saved.ID()),
		slog.String("founder_id", actor.UserID()),
		slog.Int("recipients", len(investorIDs)),
		slog.Int("notified", notified),
	)
	return saved, nil
}

// Sent lists the founder's pitches newest first with their recipients.
func (s *Pitches) Sent(ctx context.Context, actor account.Actor) ([]SentPitch, error) {
	if actor.UserID() == "" {
		return nil, errs.ErrUnauthenticated
	}
	key := cache.Key(ViewPitches+"/sent", actor.UserID())
	return cache.Remember(s.views, key, func() ([]SentPitch, error) {
		pitches, err := s.pitches.Find(ctx, pitch.WithFounderID(actor.UserID()), store.WithOrderDesc("created_at"))
		if err != nil {
			return nil, fmt.Errorf("list pitches: %w", err)
		}
		if len(pitches) == 0 {
			return []SentPitch{}, nil
		}

		ids := make([]string, len(pitches))
		for i, p := range pitches {
			ids[i] = p.ID()
		}
		recipients, err := s.recipients.Find(ctx, pitch.WithPitchIDIn(ids))
		if err != nil {
			return nil, fmt.Errorf("list recipients: %w", err)
		}
		byPitch := make(map[string][]pitch.Recipient, len(pitches))
		for _, r := range recipients {
			byPitch[r.PitchID()] = append(byPitch[r.PitchID()], r)
		}

		out := make([]SentPitch, len(pitches))
		for i, p := range pitches {
			out[i] = SentPitch{Pitch: p, Recipients: byPitch[p.ID()]}
		}
		return out, nil
	})
}

// Received lists pitches sent to the investor entries linked to the actor,
// newest first.
func (s *Pitches) Received(ctx context.Context, actor account.Actor) ([]ReceivedPitch, error) {
	if actor.UserID() == "" {
		return nil, errs.ErrUnauthenticated
	}
	key := cache.Key(ViewPitches+"/received", actor.UserID())
	return cache.Remember(s.views, key, func() ([]ReceivedPitch, error) {
		investors, err := s.investors.Find(ctx, directory.WithUserID(actor.UserID()))
		if err != nil {
			return nil, fmt.Errorf("load investor: %w", err)
		}
		if len(investors) == 0 {
			return []ReceivedPitch{}, nil
		}
		investorIDs := make([]string, len(investors))
		for i, inv := range investors {
			investorIDs[i] = inv.ID()
		}

		recipients, err := s.recipients.Find(ctx, store.WithConditionIn("investor_id", investorIDs))
		if err != nil {
			return nil, fmt.Errorf("list recipients: %w", err)
		}
		if len(recipients) == 0 {
			return []ReceivedPitch{}, nil
		}
		pitchIDs := make([]string, len(recipients))
		for i, r := range recipients {
			pitchIDs[i] = r.PitchID()
		}

		pitches, err := s.pitches.Find(ctx, store.WithIDIn(pitchIDs), store.WithOrderDesc("created_at"))
		if err != nil {
			return nil, fmt.Errorf("list pitches: %w", err)
		}
		byPitch := make(map[string][]pitch.Recipient, len(recipients))
		for _, r := range recipients {
			byPitch[r.PitchID()] = append(byPitch[r.PitchID()], r)
		}

		out := make([]ReceivedPitch, 0, len(recipients))
		for _, p := range pitches {
			for _, r := range byPitch[p.ID()] {
				out = append(out, ReceivedPitch{Pitch: p, Recipient: r})
			}
		}
		return out, nil
	})
}

// UpdateStatus records a recipient's response. Only the recipient investor's
// user may change it.
func (s *Pitches) UpdateStatus(ctx context.Context, actor account.Actor, pitchID, investorID, status string) (pitch.Recipient, error) {
	if !actor.Authenticated() {
		return pitch.Recipient{}, errs.ErrUnauthenticated
	}
	st, err := pitch.ParseStatus(status)
	if err != nil {
		return pitch.Recipient{}, err
	}
	r, err := s.recipients.UpdateStatus(ctx, actor, pitchID, investorID, st)
	if err != nil {
		return pitch.Recipient{}, fmt.Errorf("update recipient: %w", err)
	}
	s.views.Invalidate(ViewPitches)
	return r, nil
}

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// deckPath places a deck under the founder's folder with a unique prefix.
func deckPath(userID, filename string) string {
	name := unsafeName.ReplaceAllString(path.Base(strings.ReplaceAll(filename, `\`, "/")), "_")
	name = strings.Trim(name, "._")
	if name == "" {
		name = "deck.pdf"
	}
	return userID + "/" + uuid.NewString() + "-" + name
}
