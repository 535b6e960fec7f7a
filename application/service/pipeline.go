package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/investmatch/investmatch/domain/account"
	"github.com/investmatch/investmatch/domain/directory"
	"github.com/investmatch/investmatch/domain/errs"
	"github.com/investmatch/investmatch/domain/notification"
	"github.com/investmatch/investmatch/domain/pipeline"
	"github.com/investmatch/investmatch/domain/store"
	"github.com/investmatch/investmatch/internal/cache"
)

// Pipeline manages investor-startup relationship rows. Ownership is
// enforced by the store's row policies, not here.
type Pipeline struct {
	entries       pipeline.Store
	startups      directory.StartupStore
	investors     directory.InvestorStore
	notifications notification.Store
	views         *cache.Views
	logger        *slog.Logger
}

// NewPipeline creates a Pipeline service.
func NewPipeline(
	entries pipeline.Store,
	startups directory.StartupStore,
	investors directory.InvestorStore,
	notifications notification.Store,
	views *cache.Views,
	logger *slog.Logger,
) *Pipeline {
	return &Pipeline{
		entries:       entries,
		startups:      startups,
		investors:     investors,
		notifications: notifications,
		views:         views,
		logger:        logger,
	}
}

// List returns the pipeline rows visible to the actor, optionally limited to
// one stage, most recently updated first.
func (s *Pipeline) List(ctx context.Context, actor account.Actor, stage string) ([]pipeline.Entry, error) {
	if !actor.Authenticated() {
		return nil, errs.ErrUnauthenticated
	}
	opts := []store.Option{store.WithOrderDesc("updated_at")}
	if strings.TrimSpace(stage) != "" {
		st, err := pipeline.ParseStage(stage)
		if err != nil {
			return nil, err
		}
		opts = append(opts, pipeline.WithStage(st))
	}

	key := cache.Key(pipelineView(actor)+"?stage="+strings.TrimSpace(stage), actor.UserID())
	return cache.Remember(s.views, key, func() ([]pipeline.Entry, error) {
		return s.entries.Find(ctx, actor, opts...)
	})
}

// Create adds the startup to the investor's pipeline at the first stage.
// Creating an existing pair returns the existing row unchanged.
func (s *Pipeline) Create(ctx context.Context, actor account.Actor, investorID, startupID string) (pipeline.Entry, error) {
	if !actor.Authenticated() {
		return pipeline.Entry{}, errs.ErrUnauthenticated
	}
	investorID, startupID = strings.TrimSpace(investorID), strings.TrimSpace(startupID)
	if investorID == "" || startupID == "" {
		return pipeline.Entry{}, fmt.Errorf("%w: investor_id and startup_id are required", errs.ErrValidation)
	}

	existing, err := s.entries.Find(ctx, actor, pipeline.WithInvestorID(investorID), pipeline.WithStartupID(startupID))
	if err != nil {
		return pipeline.Entry{}, fmt.Errorf("check pipeline: %w", err)
	}

	entry, err := s.entries.Upsert(ctx, actor, pipeline.NewEntry(investorID, startupID))
	if err != nil {
		return pipeline.Entry{}, fmt.Errorf("create pipeline entry: %w", err)
	}
	s.invalidate()

	if len(existing) == 0 {
		s.notifyFounder(ctx, actor, entry, notification.TypePipelineInterest,
			"New investor interest", "%s added your startup to their pipeline.")
		s.logger.Info("pipeline entry created",
			slog.String("entry_id", entry.ID()),
			slog.String("investor_id", investorID),
			slog.String("startup_id", startupID),
		)
	}
	return entry, nil
}

// UpdateStage moves an entry to another stage. Unknown stages are rejected
// before anything is written.
func (s *Pipeline) UpdateStage(ctx context.Context, actor account.Actor, id, stage string) (pipeline.Entry, error) {
	if !actor.Authenticated() {
		return pipeline.Entry{}, errs.ErrUnauthenticated
	}
	st, err := pipeline.ParseStage(stage)
	if err != nil {
		return pipeline.Entry{}, err
	}

	entry, err := s.entries.UpdateStage(ctx, actor, id, st)
	if err != nil {
		return pipeline.Entry{}, fmt.Errorf("update stage: %w", err)
	}
	s.invalidate()
	s.notifyFounder(ctx, actor, entry, notification.TypePipelineStageChanged,
		"Pipeline stage changed", "%s moved your startup to "+stageLabel(st)+".")
	return entry, nil
}

// UpdateNotes replaces an entry's discussion notes.
func (s *Pipeline) UpdateNotes(ctx context.Context, actor account.Actor, id, notes string) (pipeline.Entry, error) {
	if !actor.Authenticated() {
		return pipeline.Entry{}, errs.ErrUnauthenticated
	}
	entry, err := s.entries.UpdateNotes(ctx, actor, id, notes)
	if err != nil {
		return pipeline.Entry{}, fmt.Errorf("update notes: %w", err)
	}
	s.invalidate()
	return entry, nil
}

// Delete removes an entry.
func (s *Pipeline) Delete(ctx context.Context, actor account.Actor, id string) error {
	if !actor.Authenticated() {
		return errs.ErrUnauthenticated
	}
	if err := s.entries.Delete(ctx, actor, id); err != nil {
		return fmt.Errorf("delete pipeline entry: %w", err)
	}
	s.invalidate()
	return nil
}

func (s *Pipeline) invalidate() {
	s.views.Invalidate(ViewInvestorPipeline, ViewFounderPipeline, ViewAdmin)
}

// notifyFounder tells the startup's founder about a pipeline change. The
// pipeline write has already happened, so failures are logged only.
// notifyFounder tells the startup's founder about a change made by someone
// else. Founders are not notified of their own edits.
func (s *Pipeline) notifyFounder(ctx context.Context, actor account.Actor, entry pipeline.Entry, kind notification.Type, title, bodyFormat string) {
	startup, err := s.startups.FindOne(ctx, store.WithID(entry.StartupID()))
	if err != nil {
		if !errors.Is(err, errs.ErrNotFound) {
			s.logger.Warn("load startup for notification", slog.String("startup_id", entry.StartupID()), slog.Any("error", err))
		}
		return
	}
	if startup.FounderID() == actor.UserID() {
		return
	}
	name := "An investor"
	if inv, err := s.investors.FindOne(ctx, store.WithID(entry.InvestorID())); err == nil {
		name = inv.Name()
		if inv.Firm() != "" {
			name += " (" + inv.Firm() + ")"
		}
	}

	n := notification.New(startup.FounderID(), kind, title, fmt.Sprintf(bodyFormat, name), map[string]any{
		"pipeline_id": entry.ID(),
		"investor_id": entry.InvestorID(),
		"startup_id":  entry.StartupID(),
		"stage":       entry.Stage().String(),
	})
	if _, err := s.notifications.Save(ctx, n); err != nil {
		s.logger.Warn("save pipeline notification", slog.String("entry_id", entry.ID()), slog.Any("error", err))
		return
	}
	s.views.Invalidate(ViewNotifications)
}

func pipelineView(actor account.Actor) string {
	if actor.Role() == account.RoleFounder {
		return ViewFounderPipeline
	}
	return ViewInvestorPipeline
}

func stageLabel(s pipeline.Stage) string {
	switch s {
	case pipeline.StageToContact:
		return "to contact"
	case pipeline.StageDiscussion:
		return "discussion"
	case pipeline.StageClosed:
		return "closed"
	default:
		return s.String()
	}
}
