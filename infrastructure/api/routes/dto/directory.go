package dto

import "github.com/investmatch/investmatch/domain/directory"

// StartupRequest is the founder's startup form.
type StartupRequest struct {
	Name        string `json:"name"`
	Tagline     string `json:"tagline"`
	Description string `json:"description"`
	Sector      string `json:"sector"`
	Stage       string `json:"stage"`
	Location    string `json:"location"`
	Website     string `json:"website"`
	LogoURL     string `json:"logo_url"`
	TeamSize    int    `json:"team_size"`
	RaiseAmount int64  `json:"raise_amount"`
}

// Params converts the form to domain params.
func (r StartupRequest) Params() directory.StartupParams {
	return directory.StartupParams{
		Name:        r.Name,
		Tagline:     r.Tagline,
		Description: r.Description,
		Sector:      r.Sector,
		Stage:       r.Stage,
		Location:    r.Location,
		Website:     r.Website,
		LogoURL:     r.LogoURL,
		TeamSize:    r.TeamSize,
		RaiseAmount: r.RaiseAmount,
	}
}

// InvestorRequest is the investor's directory entry form. Omitted
// check-size bounds are open.
type InvestorRequest struct {
	Name         string   `json:"name"`
	Firm         string   `json:"firm"`
	Title        string   `json:"title"`
	Bio          string   `json:"bio"`
	Sectors      []string `json:"sectors"`
	Stages       []string `json:"stages"`
	Geos         []string `json:"geos"`
	CheckSizeMin *int64   `json:"check_size_min"`
	CheckSizeMax *int64   `json:"check_size_max"`
	Website      string   `json:"website"`
	LinkedinURL  string   `json:"linkedin_url"`
}

// Params converts the form to domain params.
func (r InvestorRequest) Params() directory.InvestorParams {
	return directory.InvestorParams{
		Name:        r.Name,
		Firm:        r.Firm,
		Title:       r.Title,
		Bio:         r.Bio,
		Sectors:     r.Sectors,
		Stages:      r.Stages,
		Geos:        r.Geos,
		CheckSize:   directory.NewCheckSize(r.CheckSizeMin, r.CheckSizeMax),
		Website:     r.Website,
		LinkedinURL: r.LinkedinURL,
	}
}
