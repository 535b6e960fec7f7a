package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/investmatch/investmatch/domain/errs"
	"github.com/investmatch/investmatch/domain/notification"
	"github.com/investmatch/investmatch/domain/pitch"
)

func newPitchService(s stores, bucket *fakeBucket) *Pitches {
	return NewPitches(s.pitches, s.recipients, s.startups, s.investors, s.notifications, bucket, s.views, discardLogger())
}

func TestPitches_Send_NotifiesResolvedRecipients(t *testing.T) {
	ctx := context.Background()
	s := newStores(t)
	rohan := s.linkInvestor(t, rohanID, "u-rohan")
	svc := newPitchService(s, &fakeBucket{})

	p, err := svc.Send(ctx, asha, SendParams{Draft: pitch.Draft{
		Subject:     "LumenPay seed round",
		Message:     strings.Repeat("We settle merchant payouts instantly. ", 10),
		InvestorIDs: []string{priyaID, rohanID, priyaID, " "},
		DeckURL:     "https://decks.test/lumenpay.pdf",
	}})
	require.NoError(t, err)

	recipients, err := s.recipients.Find(ctx, pitch.WithPitchID(p.ID()))
	require.NoError(t, err)
	assert.Len(t, recipients, 2)

	total, err := s.notifications.Count(ctx, notification.WithType(notification.TypePitchReceived))
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	got, err := s.notifications.Find(ctx, rohan)
	require.NoError(t, err)
	require.Len(t, got, 1)
	n := got[0]
	assert.Equal(t, "New pitch from LumenPay", n.Title())
	assert.Len(t, []rune(n.Body()), pitch.ExcerptLength)
	assert.Equal(t, p.ID(), n.Data()["pitch_id"])
	assert.Equal(t, "https://decks.test/lumenpay.pdf", n.Data()["deck_url"])
}

func TestPitches_Send_SkipsUnlinkedInvestors(t *testing.T) {
	ctx := context.Background()
	s := newStores(t)
	svc := newPitchService(s, &fakeBucket{})

	p, err := svc.Send(ctx, asha, SendParams{Draft: pitch.Draft{
		Subject:     "Hello",
		Message:     "Short note",
		InvestorIDs: []string{priyaID, rohanID, meeraID},
	}})
	require.NoError(t, err)

	recipients, err := s.recipients.Find(ctx, pitch.WithPitchID(p.ID()))
	require.NoError(t, err)
	assert.Len(t, recipients, 3)

	total, err := s.notifications.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestPitches_Send_RejectsBeforeAnyWrite(t *testing.T) {
	ctx := context.Background()
	s := newStores(t)
	bucket := &fakeBucket{}
	svc := newPitchService(s, bucket)

	drafts := map[string]pitch.Draft{
		"no recipients":    {Subject: "s", Message: "m"},
		"blank recipients": {Subject: "s", Message: "m", InvestorIDs: []string{"", "  "}},
		"blank subject":    {Subject: " ", Message: "m", InvestorIDs: []string{priyaID}},
		"blank message":    {Subject: "s", Message: "\n", InvestorIDs: []string{priyaID}},
	}
	for name, d := range drafts {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Send(ctx, asha, SendParams{
				Draft: d,
				Deck:  &Deck{Filename: "deck.pdf", Body: strings.NewReader("pdf")},
			})
			assert.True(t, errors.Is(err, errs.ErrValidation))
		})
	}

	n, err := s.pitches.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
	n, err = s.notifications.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, bucket.uploads)
}

func TestPitches_Send_UploadsDeck(t *testing.T) {
	ctx := context.Background()
	s := newStores(t)
	bucket := &fakeBucket{}
	svc := newPitchService(s, bucket)

	p, err := svc.Send(ctx, asha, SendParams{
		Draft: pitch.Draft{Subject: "s", Message: "m", InvestorIDs: []string{priyaID}, DeckURL: "ignored"},
		Deck:  &Deck{Filename: `C:\decks\Lumen Pay v2.pdf`, ContentType: "application/pdf", Body: strings.NewReader("%PDF")},
	})
	require.NoError(t, err)

	require.Len(t, bucket.uploads, 1)
	for path, body := range bucket.uploads {
		assert.True(t, strings.HasPrefix(path, ashaID+"/"), path)
		assert.True(t, strings.HasSuffix(path, "-Lumen_Pay_v2.pdf"), path)
		assert.Equal(t, "%PDF", string(body))
		assert.Equal(t, "https://cdn.test/"+path, p.DeckURL())
	}
}

func TestPitches_Send_UploadFailureWritesNothing(t *testing.T) {
	ctx := context.Background()
	s := newStores(t)
	svc := newPitchService(s, &fakeBucket{err: errBoom})

	_, err := svc.Send(ctx, asha, SendParams{
		Draft: pitch.Draft{Subject: "s", Message: "m", InvestorIDs: []string{priyaID}},
		Deck:  &Deck{Filename: "deck.pdf", Body: strings.NewReader("x")},
	})
	require.ErrorIs(t, err, errBoom)

	n, err := s.pitches.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestPitches_Send_RequiresFounder(t *testing.T) {
	svc := newPitchService(newStores(t), &fakeBucket{})
	draft := pitch.Draft{Subject: "s", Message: "m", InvestorIDs: []string{priyaID}}

	_, err := svc.Send(context.Background(), priya, SendParams{Draft: draft})
	assert.True(t, errors.Is(err, errs.ErrForbidden))
}

func TestPitches_ListingsAndStatus(t *testing.T) {
	ctx := context.Background()
	s := newStores(t)
	svc := newPitchService(s, &fakeBucket{})

	p, err := svc.Send(ctx, asha, SendParams{Draft: pitch.Draft{Subject: "s", Message: "m", InvestorIDs: []string{priyaID, rohanID}}})
	require.NoError(t, err)

	sent, err := svc.Sent(ctx, asha)
	require.NoError(t, err)
	require.Len(t, sent, 1)
	assert.Len(t, sent[0].Recipients, 2)

	received, err := svc.Received(ctx, priya)
	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, p.ID(), received[0].Pitch.ID())
	assert.Equal(t, pitch.StatusSent, received[0].Recipient.Status())

	_, err = svc.UpdateStatus(ctx, dev, p.ID(), priyaID, "viewed")
	assert.True(t, errors.Is(err, errs.ErrNotFound))

	_, err = svc.UpdateStatus(ctx, priya, p.ID(), priyaID, "archived")
	assert.True(t, errors.Is(err, errs.ErrValidation))

	r, err := svc.UpdateStatus(ctx, priya, p.ID(), priyaID, "replied")
	require.NoError(t, err)
	assert.Equal(t, pitch.StatusReplied, r.Status())

	received, err = svc.Received(ctx, priya)
	require.NoError(t, err)
	assert.Equal(t, pitch.StatusReplied, received[0].Recipient.Status())

	none, err := svc.Received(ctx, dev)
	require.NoError(t, err)
	assert.Empty(t, none)
}
