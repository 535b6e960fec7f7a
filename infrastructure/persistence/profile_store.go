package persistence

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm/clause"

	"github.com/investmatch/investmatch/domain/account"
	"github.com/investmatch/investmatch/domain/store"
	"github.com/investmatch/investmatch/internal/database"
)

// ProfileStore implements account.ProfileStore using GORM.
type ProfileStore struct {
	database.Repository[account.Profile, ProfileModel]
}

// NewProfileStore creates a new ProfileStore.
func NewProfileStore(db database.Database) ProfileStore {
	return ProfileStore{
		Repository: database.NewRepository[account.Profile, ProfileModel](db, ProfileMapper{}, "profile"),
	}
}

// Upsert inserts the profile or refreshes its email, name and role.
func (s ProfileStore) Upsert(ctx context.Context, p account.Profile) (account.Profile, error) {
	model := s.Mapper().ToModel(p)
	model.UpdatedAt = time.Now().UTC()

	err := s.DB(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"email", "full_name", "role", "updated_at"}),
	}).Create(&model).Error
	if err != nil {
		return account.Profile{}, fmt.Errorf("upsert profile: %w", err)
	}
	return s.FindOne(ctx, store.WithID(p.ID()))
}
