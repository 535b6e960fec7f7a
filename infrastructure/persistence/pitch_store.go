package persistence

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm/clause"

	"github.com/investmatch/investmatch/domain/account"
	"github.com/investmatch/investmatch/domain/errs"
	"github.com/investmatch/investmatch/domain/pitch"
	"github.com/investmatch/investmatch/domain/store"
	"github.com/investmatch/investmatch/internal/database"
)

// PitchStore implements pitch.Store using GORM.
type PitchStore struct {
	database.Repository[pitch.Pitch, PitchModel]
}

// NewPitchStore creates a new PitchStore.
func NewPitchStore(db database.Database) PitchStore {
	return PitchStore{
		Repository: database.NewRepository[pitch.Pitch, PitchModel](db, PitchMapper{}, "pitch"),
	}
}

// Save inserts a pitch. Pitches are immutable, so there is no update path.
func (s PitchStore) Save(ctx context.Context, p pitch.Pitch) (pitch.Pitch, error) {
	model := s.Mapper().ToModel(p)
	if err := s.DB(ctx).Create(&model).Error; err != nil {
		return pitch.Pitch{}, fmt.Errorf("save pitch: %w", err)
	}
	return s.Mapper().ToDomain(model), nil
}

// RecipientStore implements pitch.RecipientStore using GORM.
type RecipientStore struct {
	repo database.Repository[pitch.Recipient, PitchRecipientModel]
}

// NewRecipientStore creates a new RecipientStore.
func NewRecipientStore(db database.Database) RecipientStore {
	return RecipientStore{
		repo: database.NewRepository[pitch.Recipient, PitchRecipientModel](db, PitchRecipientMapper{}, "pitch recipient"),
	}
}

// Save inserts a recipient row; an existing row for the pair is kept.
func (s RecipientStore) Save(ctx context.Context, r pitch.Recipient) (pitch.Recipient, error) {
	model := s.repo.Mapper().ToModel(r)
	model.UpdatedAt = time.Now().UTC()
	err := s.repo.DB(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&model).Error
	if err != nil {
		return pitch.Recipient{}, fmt.Errorf("save pitch recipient: %w", err)
	}
	return s.repo.FindOne(ctx, pitch.WithPitchID(r.PitchID()), pitch.WithInvestorID(r.InvestorID()))
}

// Find returns recipients matching options.
func (s RecipientStore) Find(ctx context.Context, options ...store.Option) ([]pitch.Recipient, error) {
	return s.repo.Find(ctx, options...)
}

// UpdateStatus changes the status of a recipient row visible to the actor.
func (s RecipientStore) UpdateStatus(ctx context.Context, actor account.Actor, pitchID, investorID string, status pitch.Status) (pitch.Recipient, error) {
	scope, err := recipientScope(actor)
	if err != nil {
		return pitch.Recipient{}, err
	}
	opts := append([]store.Option{pitch.WithPitchID(pitchID), pitch.WithInvestorID(investorID)}, scope...)

	result := database.ApplyConditions(s.repo.DB(ctx).Model(&PitchRecipientModel{}), opts...).
		Updates(map[string]any{"status": string(status), "updated_at": time.Now().UTC()})
	if result.Error != nil {
		return pitch.Recipient{}, fmt.Errorf("update pitch recipient: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return pitch.Recipient{}, fmt.Errorf("%w: pitch recipient", errs.ErrNotFound)
	}
	return s.repo.FindOne(ctx, opts...)
}
