package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/investmatch/investmatch/domain/account"
	"github.com/investmatch/investmatch/domain/directory"
	"github.com/investmatch/investmatch/domain/errs"
	"github.com/investmatch/investmatch/domain/notification"
	"github.com/investmatch/investmatch/domain/pipeline"
)

func newPipelineService(s stores) *Pipeline {
	return NewPipeline(s.entries, s.startups, s.investors, s.notifications, s.views, discardLogger())
}

func lumenPayID(t *testing.T, s stores) string {
	t.Helper()
	st, err := s.startups.FindOne(context.Background(), directory.WithFounderID(ashaID))
	require.NoError(t, err)
	return st.ID()
}

func TestPipeline_CreateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := newStores(t)
	svc := newPipelineService(s)
	startupID := lumenPayID(t, s)

	first, err := svc.Create(ctx, priya, priyaID, startupID)
	require.NoError(t, err)
	assert.Equal(t, pipeline.StageToContact, first.Stage())

	_, err = svc.UpdateStage(ctx, priya, first.ID(), "discussion")
	require.NoError(t, err)

	second, err := svc.Create(ctx, priya, priyaID, startupID)
	require.NoError(t, err)
	assert.Equal(t, first.ID(), second.ID())
	assert.Equal(t, pipeline.StageDiscussion, second.Stage())

	n, err := s.entries.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	interest, err := s.notifications.Find(ctx, asha, notification.WithType(notification.TypePipelineInterest))
	require.NoError(t, err)
	require.Len(t, interest, 1)
	assert.Equal(t, "Priya Kapoor (Northstar Ventures) added your startup to their pipeline.", interest[0].Body())
}

func TestPipeline_UpdateStage(t *testing.T) {
	ctx := context.Background()
	s := newStores(t)
	svc := newPipelineService(s)
	entry, err := svc.Create(ctx, priya, priyaID, lumenPayID(t, s))
	require.NoError(t, err)

	_, err = svc.UpdateStage(ctx, priya, entry.ID(), "negotiation")
	assert.True(t, errors.Is(err, errs.ErrValidation))

	got, err := s.entries.Get(ctx, priya, entry.ID())
	require.NoError(t, err)
	assert.Equal(t, pipeline.StageToContact, got.Stage())

	updated, err := svc.UpdateStage(ctx, priya, entry.ID(), "closed")
	require.NoError(t, err)
	assert.Equal(t, pipeline.StageClosed, updated.Stage())

	changed, err := s.notifications.Find(ctx, asha, notification.WithType(notification.TypePipelineStageChanged))
	require.NoError(t, err)
	require.Len(t, changed, 1)
	assert.Equal(t, "closed", changed[0].Data()["stage"])

	// The founder's own edit does not notify them.
	updated, err = svc.UpdateStage(ctx, asha, entry.ID(), "discussion")
	require.NoError(t, err)
	assert.Equal(t, pipeline.StageDiscussion, updated.Stage())

	changed, err = s.notifications.Find(ctx, asha, notification.WithType(notification.TypePipelineStageChanged))
	require.NoError(t, err)
	assert.Len(t, changed, 1)

	_, err = svc.UpdateStage(ctx, dev, entry.ID(), "discussion")
	assert.True(t, errors.Is(err, errs.ErrNotFound))
}

func TestPipeline_NotesAndDelete(t *testing.T) {
	ctx := context.Background()
	s := newStores(t)
	svc := newPipelineService(s)
	entry, err := svc.Create(ctx, priya, priyaID, lumenPayID(t, s))
	require.NoError(t, err)

	updated, err := svc.UpdateNotes(ctx, priya, entry.ID(), "Intro call on Friday")
	require.NoError(t, err)
	assert.Equal(t, "Intro call on Friday", updated.Notes())

	require.ErrorIs(t, svc.Delete(ctx, dev, entry.ID()), errs.ErrNotFound)
	require.NoError(t, svc.Delete(ctx, asha, entry.ID()))

	n, err := s.entries.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestPipeline_ListInvalidatedOnMutation(t *testing.T) {
	ctx := context.Background()
	s := newStores(t)
	svc := newPipelineService(s)
	startupID := lumenPayID(t, s)

	empty, err := svc.List(ctx, asha, "")
	require.NoError(t, err)
	assert.Empty(t, empty)

	entry, err := svc.Create(ctx, priya, priyaID, startupID)
	require.NoError(t, err)

	founderView, err := svc.List(ctx, asha, "")
	require.NoError(t, err)
	require.Len(t, founderView, 1)

	_, err = svc.UpdateStage(ctx, priya, entry.ID(), "discussion")
	require.NoError(t, err)

	toContact, err := svc.List(ctx, asha, "to_contact")
	require.NoError(t, err)
	assert.Empty(t, toContact)

	investorView, err := svc.List(ctx, priya, "discussion")
	require.NoError(t, err)
	assert.Len(t, investorView, 1)

	others, err := svc.List(ctx, dev, "")
	require.NoError(t, err)
	assert.Empty(t, others)
}

func TestPipeline_RequiresIdentity(t *testing.T) {
	ctx := context.Background()
	s := newStores(t)
	svc := newPipelineService(s)
	anon := account.Actor{}

	_, err := svc.Create(ctx, anon, priyaID, lumenPayID(t, s))
	assert.ErrorIs(t, err, errs.ErrUnauthenticated)

	_, err = svc.Create(ctx, dev, priyaID, lumenPayID(t, s))
	assert.ErrorIs(t, err, errs.ErrForbidden)

	_, err = svc.Create(ctx, priya, "", "")
	assert.ErrorIs(t, err, errs.ErrValidation)
}
