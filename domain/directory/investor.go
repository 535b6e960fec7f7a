package directory

import "time"

// Investor is a directory entry for an investor. UserID is empty for
// entries that no investor account has claimed yet.
type Investor struct {
	id          string
	userID      string
	name        string
	firm        string
	title       string
	bio         string
	sectors     []string
	stages      []string
	geos        []string
	checkSize   CheckSize
	website     string
	linkedinURL string
	createdAt   time.Time
	updatedAt   time.Time
}

// InvestorParams carries the editable investor attributes.
type InvestorParams struct {
	Name        string
	Firm        string
	Title       string
	Bio         string
	Sectors     []string
	Stages      []string
	Geos        []string
	CheckSize   CheckSize
	Website     string
	LinkedinURL string
}

// NewInvestor creates an Investor linked to userID (may be empty).
func NewInvestor(userID string, p InvestorParams) Investor {
	return Investor{
		userID:      userID,
		name:        p.Name,
		firm:        p.Firm,
		title:       p.Title,
		bio:         p.Bio,
		sectors:     copyStrings(p.Sectors),
		stages:      copyStrings(p.Stages),
		geos:        copyStrings(p.Geos),
		checkSize:   p.CheckSize,
		website:     p.Website,
		linkedinURL: p.LinkedinURL,
	}
}

// ReconstructInvestor rebuilds an Investor from persistence.
func ReconstructInvestor(id, userID string, p InvestorParams, createdAt, updatedAt time.Time) Investor {
	inv := NewInvestor(userID, p)
	inv.id = id
	inv.createdAt = createdAt
	inv.updatedAt = updatedAt
	return inv
}

// ID returns the investor id.
func (i Investor) ID() string { return i.id }

// UserID returns the linked user id, or "" when unclaimed.
func (i Investor) UserID() string { return i.userID }

// Name returns the investor's name.
func (i Investor) Name() string { return i.name }

// Firm returns the firm name.
func (i Investor) Firm() string { return i.firm }

// Title returns the job title.
func (i Investor) Title() string { return i.title }

// Bio returns the biography.
func (i Investor) Bio() string { return i.bio }

// Sectors returns a copy of the focus sectors.
func (i Investor) Sectors() []string { return copyStrings(i.sectors) }

// Stages returns a copy of the focus stages.
func (i Investor) Stages() []string { return copyStrings(i.stages) }

// Geos returns a copy of the focus geographies.
func (i Investor) Geos() []string { return copyStrings(i.geos) }

// CheckSize returns the cheque-size range.
func (i Investor) CheckSize() CheckSize { return i.checkSize }

// Website returns the website URL.
func (i Investor) Website() string { return i.website }

// LinkedinURL returns the LinkedIn profile URL.
func (i Investor) LinkedinURL() string { return i.linkedinURL }

// CreatedAt returns the creation time.
func (i Investor) CreatedAt() time.Time { return i.createdAt }

// UpdatedAt returns the last update time.
func (i Investor) UpdatedAt() time.Time { return i.updatedAt }

// Params returns the editable attributes.
func (i Investor) Params() InvestorParams {
	return InvestorParams{
		Name:        i.name,
		Firm:        i.firm,
		Title:       i.title,
		Bio:         i.bio,
		Sectors:     copyStrings(i.sectors),
		Stages:      copyStrings(i.stages),
		Geos:        copyStrings(i.geos),
		CheckSize:   i.checkSize,
		Website:     i.website,
		LinkedinURL: i.linkedinURL,
	}
}

// WithID returns a copy with the given id.
func (i Investor) WithID(id string) Investor {
	i.id = id
	return i
}

func copyStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
