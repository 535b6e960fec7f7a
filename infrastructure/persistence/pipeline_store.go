package persistence

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm/clause"

	"github.com/investmatch/investmatch/domain/account"
	"github.com/investmatch/investmatch/domain/errs"
	"github.com/investmatch/investmatch/domain/pipeline"
	"github.com/investmatch/investmatch/domain/store"
	"github.com/investmatch/investmatch/internal/database"
)

// PipelineStore implements pipeline.Store using GORM, scoped by actor.
type PipelineStore struct {
	repo database.Repository[pipeline.Entry, PipelineEntryModel]
}

// NewPipelineStore creates a new PipelineStore.
func NewPipelineStore(db database.Database) PipelineStore {
	return PipelineStore{
		repo: database.NewRepository[pipeline.Entry, PipelineEntryModel](db, PipelineEntryMapper{}, "pipeline entry"),
	}
}

// Upsert inserts the entry; an existing row for the same pair is returned
// unchanged. Only the user linked to the investor or the startup's founder
// may insert.
func (s PipelineStore) Upsert(ctx context.Context, actor account.Actor, e pipeline.Entry) (pipeline.Entry, error) {
	if err := s.checkInsert(ctx, actor, e.InvestorID(), e.StartupID()); err != nil {
		return pipeline.Entry{}, err
	}

	model := s.repo.Mapper().ToModel(e)
	err := s.repo.DB(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "investor_id"}, {Name: "startup_id"}},
		DoNothing: true,
	}).Create(&model).Error
	if err != nil {
		return pipeline.Entry{}, fmt.Errorf("upsert pipeline entry: %w", err)
	}

	return s.findOne(ctx, actor,
		pipeline.WithInvestorID(e.InvestorID()),
		pipeline.WithStartupID(e.StartupID()),
	)
}

func (s PipelineStore) checkInsert(ctx context.Context, actor account.Actor, investorID, startupID string) error {
	if err := requireActor(actor); err != nil {
		return err
	}
	if actor.IsAdmin() {
		return nil
	}
	var investors, startups int64
	db := s.repo.DB(ctx)
	if err := db.Model(&InvestorModel{}).Where("id = ? AND user_id = ?", investorID, actor.UserID()).Count(&investors).Error; err != nil {
		return fmt.Errorf("check pipeline insert: %w", err)
	}
	if investors > 0 {
		return nil
	}
	if err := db.Model(&StartupModel{}).Where("id = ? AND founder_id = ?", startupID, actor.UserID()).Count(&startups).Error; err != nil {
		return fmt.Errorf("check pipeline insert: %w", err)
	}
	if startups == 0 {
		return fmt.Errorf("%w: neither investor %s nor startup %s belongs to this account", errs.ErrForbidden, investorID, startupID)
	}
	return nil
}

// Get returns an entry visible to the actor.
func (s PipelineStore) Get(ctx context.Context, actor account.Actor, id string) (pipeline.Entry, error) {
	return s.findOne(ctx, actor, store.WithID(id))
}

// Find returns the entries visible to the actor.
func (s PipelineStore) Find(ctx context.Context, actor account.Actor, options ...store.Option) ([]pipeline.Entry, error) {
	scope, err := pipelineScope(actor)
	if err != nil {
		return nil, err
	}
	return s.repo.Find(ctx, append(options, scope...)...)
}

// UpdateStage sets the stage of a visible entry.
func (s PipelineStore) UpdateStage(ctx context.Context, actor account.Actor, id string, stage pipeline.Stage) (pipeline.Entry, error) {
	return s.update(ctx, actor, id, map[string]any{"stage": stage.String()})
}

// UpdateNotes sets the discussion notes of a visible entry.
func (s PipelineStore) UpdateNotes(ctx context.Context, actor account.Actor, id string, notes string) (pipeline.Entry, error) {
	return s.update(ctx, actor, id, map[string]any{"discussion_notes": notes})
}

// Delete removes a visible entry.
func (s PipelineStore) Delete(ctx context.Context, actor account.Actor, id string) error {
	scope, err := pipelineScope(actor)
	if err != nil {
		return err
	}
	n, err := s.repo.DeleteBy(ctx, append([]store.Option{store.WithID(id)}, scope...)...)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: pipeline entry %s", errs.ErrNotFound, id)
	}
	return nil
}

// Count returns the number of entries matching options, unscoped.
func (s PipelineStore) Count(ctx context.Context, options ...store.Option) (int64, error) {
	return s.repo.Count(ctx, options...)
}

func (s PipelineStore) update(ctx context.Context, actor account.Actor, id string, values map[string]any) (pipeline.Entry, error) {
	scope, err := pipelineScope(actor)
	if err != nil {
		return pipeline.Entry{}, err
	}
	values["updated_at"] = time.Now().UTC()

	opts := append([]store.Option{store.WithID(id)}, scope...)
	result := database.ApplyConditions(s.repo.DB(ctx).Model(&PipelineEntryModel{}), opts...).Updates(values)
	if result.Error != nil {
		return pipeline.Entry{}, fmt.Errorf("update pipeline entry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return pipeline.Entry{}, fmt.Errorf("%w: pipeline entry %s", errs.ErrNotFound, id)
	}
	return s.findOne(ctx, actor, store.WithID(id))
}

func (s PipelineStore) findOne(ctx context.Context, actor account.Actor, options ...store.Option) (pipeline.Entry, error) {
	scope, err := pipelineScope(actor)
	if err != nil {
		return pipeline.Entry{}, err
	}
	return s.repo.FindOne(ctx, append(options, scope...)...)
}
