package persistence

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm/clause"

	"github.com/investmatch/investmatch/domain/directory"
	"github.com/investmatch/investmatch/domain/store"
	"github.com/investmatch/investmatch/internal/database"
)

// StartupStore implements directory.StartupStore using GORM.
type StartupStore struct {
	database.Repository[directory.Startup, StartupModel]
}

// NewStartupStore creates a new StartupStore.
func NewStartupStore(db database.Database) StartupStore {
	return StartupStore{
		Repository: database.NewRepository[directory.Startup, StartupModel](db, StartupMapper{}, "startup"),
	}
}

var startupEditableColumns = []string{
	"name", "tagline", "description", "sector", "stage", "location",
	"website", "logo_url", "team_size", "raise_amount", "updated_at",
}

// Save upserts the founder's startup. A founder owns one startup, so the
// founder id is the conflict key.
func (s StartupStore) Save(ctx context.Context, st directory.Startup) (directory.Startup, error) {
	model := s.Mapper().ToModel(st)
	model.UpdatedAt = time.Now().UTC()

	err := s.DB(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "founder_id"}},
		DoUpdates: clause.AssignmentColumns(startupEditableColumns),
	}).Create(&model).Error
	if err != nil {
		return directory.Startup{}, fmt.Errorf("save startup: %w", err)
	}
	return s.FindOne(ctx, directory.WithFounderID(st.FounderID()))
}

// Search returns startups matching the filter, newest first. Keyword matches
// name, tagline, description, sector or location; sectors, stages and geos
// match the sector, stage and location columns.
func (s StartupStore) Search(ctx context.Context, filter directory.Filter) ([]directory.Startup, error) {
	opts, err := sqlOptions(startupPredicates(filter)...)
	if err != nil {
		return nil, err
	}
	opts = append(opts,
		store.WithOrderDesc("created_at"),
		store.WithLimit(filter.Limit(directory.DefaultStartupLimit)),
	)
	return s.Find(ctx, opts...)
}
