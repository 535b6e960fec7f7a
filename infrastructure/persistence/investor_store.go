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

// InvestorStore implements directory.InvestorStore using GORM.
type InvestorStore struct {
	database.Repository[directory.Investor, InvestorModel]
}

// NewInvestorStore creates a new InvestorStore.
func NewInvestorStore(db database.Database) InvestorStore {
	return InvestorStore{
		Repository: database.NewRepository[directory.Investor, InvestorModel](db, InvestorMapper{}, "investor"),
	}
}

var investorEditableColumns = []string{
	"name", "firm", "title", "bio", "sectors", "stages", "geos",
	"check_size_min", "check_size_max", "website", "linkedin_url", "updated_at",
}

// Save persists an investor. Entries with an id are upserted on the id,
// which also relinks the entry to its user. New entries linked to a user
// are upserted on the user id, so an investor account owns at most one
// entry.
func (s InvestorStore) Save(ctx context.Context, inv directory.Investor) (directory.Investor, error) {
	model := s.Mapper().ToModel(inv)
	model.UpdatedAt = time.Now().UTC()

	db := s.DB(ctx)
	lookup := store.WithID(model.ID)
	switch {
	case model.ID != "":
		db = db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns(append([]string{"user_id"}, investorEditableColumns...)),
		})
	case model.UserID != nil:
		db = db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns(investorEditableColumns),
		})
		lookup = directory.WithUserID(*model.UserID)
	}

	if err := db.Create(&model).Error; err != nil {
		return directory.Investor{}, fmt.Errorf("save investor: %w", err)
	}
	if model.UserID == nil || inv.ID() != "" {
		lookup = store.WithID(model.ID)
	}
	return s.FindOne(ctx, lookup)
}

// Search returns investors matching the filter's keyword and categories,
// newest first. Check-size overlap is not applied here.
func (s InvestorStore) Search(ctx context.Context, filter directory.Filter) ([]directory.Investor, error) {
	opts, err := sqlOptions(investorPredicates(filter)...)
	if err != nil {
		return nil, err
	}
	opts = append(opts,
		store.WithOrderDesc("created_at"),
		store.WithLimit(filter.Limit(directory.DefaultInvestorLimit)),
	)
	return s.Find(ctx, opts...)
}

// LinkedUsers maps investor ids to their linked user ids.
func (s InvestorStore) LinkedUsers(ctx context.Context, investorIDs []string) (map[string]string, error) {
	out := make(map[string]string, len(investorIDs))
	if len(investorIDs) == 0 {
		return out, nil
	}

	var rows []InvestorModel
	err := s.DB(ctx).
		Select("id", "user_id").
		Where("id IN ?", investorIDs).
		Where("user_id IS NOT NULL").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("resolve investor users: %w", err)
	}
	for _, r := range rows {
		if r.UserID != nil && *r.UserID != "" {
			out[r.ID] = *r.UserID
		}
	}
	return out, nil
}
