package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/investmatch/investmatch/domain/account"
	"github.com/investmatch/investmatch/domain/directory"
	"github.com/investmatch/investmatch/internal/database"
)

// newTestDB creates a migrated in-memory SQLite database.
// Cannot use testdb package here due to import cycle (testdb imports persistence).
func newTestDB(t *testing.T) database.Database {
	t.Helper()
	ctx := context.Background()
	db, err := database.NewDatabase(ctx, "sqlite:///:memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, AutoMigrate(db))
	return db
}

// world is a minimal directory: one founder with a startup, one investor
// user with a linked entry, and an unrelated founder.
type world struct {
	db        database.Database
	founder   account.Actor
	investor  account.Actor
	stranger  account.Actor
	startup   directory.Startup
	investorE directory.Investor
}

func newWorld(t *testing.T) world {
	t.Helper()
	ctx := context.Background()
	db := newTestDB(t)

	profiles := NewProfileStore(db)
	for _, p := range []account.Profile{
		account.NewProfile("u-founder", "f@example.com", "Founder", account.RoleFounder),
		account.NewProfile("u-investor", "i@example.com", "Investor", account.RoleInvestor),
		account.NewProfile("u-stranger", "s@example.com", "Stranger", account.RoleFounder),
	} {
		_, err := profiles.Upsert(ctx, p)
		require.NoError(t, err)
	}

	st, err := NewStartupStore(db).Save(ctx, directory.NewStartup("u-founder", directory.StartupParams{
		Name: "Acme", Sector: "Fintech", Stage: "Seed", Location: "Bengaluru",
	}))
	require.NoError(t, err)

	inv, err := NewInvestorStore(db).Save(ctx, directory.NewInvestor("u-investor", directory.InvestorParams{
		Name: "Ivy", Firm: "Ivy Capital", Sectors: []string{"Fintech"},
	}))
	require.NoError(t, err)

	return world{
		db:        db,
		founder:   account.NewActor("u-founder", account.RoleFounder),
		investor:  account.NewActor("u-investor", account.RoleInvestor),
		stranger:  account.NewActor("u-stranger", account.RoleFounder),
		startup:   st,
		investorE: inv,
	}
}
