// Package directory provides the startup and investor directory.
package directory

import "time"

// Startup is a founder's company listing.
type Startup struct {
	id          string
	founderID   string
	name        string
	tagline     string
	description string
	sector      string
	stage       string
	location    string
	website     string
	logoURL     string
	teamSize    int
	raiseAmount int64
	createdAt   time.Time
	updatedAt   time.Time
}

// StartupParams carries the editable startup attributes.
type StartupParams struct {
	Name        string
	Tagline     string
	Description string
	Sector      string
	Stage       string
	Location    string
	Website     string
	LogoURL     string
	TeamSize    int
	RaiseAmount int64
}

// NewStartup creates a Startup owned by founderID.
func NewStartup(founderID string, p StartupParams) Startup {
	return Startup{
		founderID:   founderID,
		name:        p.Name,
		tagline:     p.Tagline,
		description: p.Description,
		sector:      p.Sector,
		stage:       p.Stage,
		location:    p.Location,
		website:     p.Website,
		logoURL:     p.LogoURL,
		teamSize:    p.TeamSize,
		raiseAmount: p.RaiseAmount,
	}
}

// ReconstructStartup rebuilds a Startup from persistence.
func ReconstructStartup(id, founderID string, p StartupParams, createdAt, updatedAt time.Time) Startup {
	s := NewStartup(founderID, p)
	s.id = id
	s.createdAt = createdAt
	s.updatedAt = updatedAt
	return s
}

// ID returns the startup id.
func (s Startup) ID() string { return s.id }

// FounderID returns the owning founder's user id.
func (s Startup) FounderID() string { return s.founderID }

// Name returns the company name.
func (s Startup) Name() string { return s.name }

// Tagline returns the one-line pitch.
func (s Startup) Tagline() string { return s.tagline }

// Description returns the long description.
func (s Startup) Description() string { return s.description }

// Sector returns the sector.
func (s Startup) Sector() string { return s.sector }

// Stage returns the funding stage.
func (s Startup) Stage() string { return s.stage }

// Location returns the geography.
func (s Startup) Location() string { return s.location }

// Website returns the website URL.
func (s Startup) Website() string { return s.website }

// LogoURL returns the logo URL.
func (s Startup) LogoURL() string { return s.logoURL }

// TeamSize returns the headcount.
func (s Startup) TeamSize() int { return s.teamSize }

// RaiseAmount returns the amount being raised.
func (s Startup) RaiseAmount() int64 { return s.raiseAmount }

// CreatedAt returns the creation time.
func (s Startup) CreatedAt() time.Time { return s.createdAt }

// UpdatedAt returns the last update time.
func (s Startup) UpdatedAt() time.Time { return s.updatedAt }

// Params returns the editable attributes.
func (s Startup) Params() StartupParams {
	return StartupParams{
		Name:        s.name,
		Tagline:     s.tagline,
		Description: s.description,
		Sector:      s.sector,
		Stage:       s.stage,
		Location:    s.location,
		Website:     s.website,
		LogoURL:     s.logoURL,
		TeamSize:    s.teamSize,
		RaiseAmount: s.raiseAmount,
	}
}

// WithID returns a copy with the given id.
func (s Startup) WithID(id string) Startup {
	s.id = id
	return s
}
