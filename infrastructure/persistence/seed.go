package persistence

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"gopkg.in/yaml.v3"

	"github.com/investmatch/investmatch/domain/account"
	"github.com/investmatch/investmatch/domain/directory"
	"github.com/investmatch/investmatch/internal/database"
)

//go:embed fixtures/directory.yaml
var defaultFixture []byte

// Fixture is a directory snapshot for seeding.
type Fixture struct {
	Profiles  []FixtureProfile  `yaml:"profiles"`
	Startups  []FixtureStartup  `yaml:"startups"`
	Investors []FixtureInvestor `yaml:"investors"`
}

// FixtureProfile is a seeded user profile.
type FixtureProfile struct {
	ID       string `yaml:"id"`
	Email    string `yaml:"email"`
	FullName string `yaml:"full_name"`
	Role     string `yaml:"role"`
}

// FixtureStartup is a seeded startup.
type FixtureStartup struct {
	FounderID   string `yaml:"founder_id"`
	Name        string `yaml:"name"`
	Tagline     string `yaml:"tagline"`
	Description string `yaml:"description"`
	Sector      string `yaml:"sector"`
	Stage       string `yaml:"stage"`
	Location    string `yaml:"location"`
	Website     string `yaml:"website"`
	LogoURL     string `yaml:"logo_url"`
	TeamSize    int    `yaml:"team_size"`
	RaiseAmount int64  `yaml:"raise_amount"`
}

// FixtureInvestor is a seeded investor. UserID may be empty.
type FixtureInvestor struct {
	ID           string   `yaml:"id"`
	UserID       string   `yaml:"user_id"`
	Name         string   `yaml:"name"`
	Firm         string   `yaml:"firm"`
	Title        string   `yaml:"title"`
	Bio          string   `yaml:"bio"`
	Sectors      []string `yaml:"sectors"`
	Stages       []string `yaml:"stages"`
	Geos         []string `yaml:"geos"`
	CheckSizeMin *int64   `yaml:"check_size_min"`
	CheckSizeMax *int64   `yaml:"check_size_max"`
	Website      string   `yaml:"website"`
	LinkedinURL  string   `yaml:"linkedin_url"`
}

// SeedResult reports how many rows of each kind were written.
type SeedResult struct {
	Profiles  int
	Startups  int
	Investors int
}

// ParseFixture decodes a YAML fixture. Unknown keys are rejected.
func ParseFixture(r io.Reader) (Fixture, error) {
	var f Fixture
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return Fixture{}, fmt.Errorf("parse fixture: %w", err)
	}
	return f, nil
}

// DefaultFixture returns the bundled demo directory.
func DefaultFixture() (Fixture, error) {
	return ParseFixture(bytes.NewReader(defaultFixture))
}

// Seed writes the fixture in one transaction. Rows are upserted, so seeding
// twice leaves one copy of each.
func Seed(ctx context.Context, db database.Database, f Fixture) (SeedResult, error) {
	var res SeedResult
	err := database.WithTransaction(ctx, db, func(tx database.Database) error {
		profiles := NewProfileStore(tx)
		startups := NewStartupStore(tx)
		investors := NewInvestorStore(tx)

		for _, p := range f.Profiles {
			role, err := account.ParseRole(p.Role)
			if err != nil {
				return fmt.Errorf("profile %s: %w", p.Email, err)
			}
			if _, err := profiles.Upsert(ctx, account.NewProfile(p.ID, p.Email, p.FullName, role)); err != nil {
				return err
			}
			res.Profiles++
		}

		for _, s := range f.Startups {
			st := directory.NewStartup(s.FounderID, directory.StartupParams{
				Name:        s.Name,
				Tagline:     s.Tagline,
				Description: s.Description,
				Sector:      s.Sector,
				Stage:       s.Stage,
				Location:    s.Location,
				Website:     s.Website,
				LogoURL:     s.LogoURL,
				TeamSize:    s.TeamSize,
				RaiseAmount: s.RaiseAmount,
			})
			if _, err := startups.Save(ctx, st); err != nil {
				return err
			}
			res.Startups++
		}

		for _, i := range f.Investors {
			inv := directory.NewInvestor(i.UserID, directory.InvestorParams{
				Name:        i.Name,
				Firm:        i.Firm,
				Title:       i.Title,
				Bio:         i.Bio,
				Sectors:     i.Sectors,
				Stages:      i.Stages,
				Geos:        i.Geos,
				CheckSize:   directory.NewCheckSize(i.CheckSizeMin, i.CheckSizeMax),
				Website:     i.Website,
				LinkedinURL: i.LinkedinURL,
			}).WithID(i.ID)
			if _, err := investors.Save(ctx, inv); err != nil {
				return err
			}
			res.Investors++
		}
		return nil
	})
	if err != nil {
		return SeedResult{}, fmt.Errorf("seed: %w", err)
	}

	slog.InfoContext(ctx, "seeded directory",
		slog.Int("profiles", res.Profiles),
		slog.Int("startups", res.Startups),
		slog.Int("investors", res.Investors),
	)
	return res, nil
}
