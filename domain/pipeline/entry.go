package pipeline

import "time"

// Entry is one startup on one investor's board. The (investor, startup)
// pair is unique.
type Entry struct {
	id         string
	investorID string
	startupID  string
	stage      Stage
	notes      string
	createdAt  time.Time
	updatedAt  time.Time
}

// NewEntry creates an Entry in the to_contact stage.
func NewEntry(investorID, startupID string) Entry {
	return Entry{
		investorID: investorID,
		startupID:  startupID,
		stage:      StageToContact,
	}
}

// ReconstructEntry rebuilds an Entry from persistence.
func ReconstructEntry(
	id, investorID, startupID string,
	stage Stage,
	notes string,
	createdAt, updatedAt time.Time,
) Entry {
	return Entry{
		id:         id,
		investorID: investorID,
		startupID:  startupID,
		stage:      stage,
		notes:      notes,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

// ID returns the entry id.
func (e Entry) ID() string { return e.id }

// InvestorID returns the investor id.
func (e Entry) InvestorID() string { return e.investorID }

// StartupID returns the startup id.
func (e Entry) StartupID() string { return e.startupID }

// Stage returns the current stage.
func (e Entry) Stage() Stage { return e.stage }

// Notes returns the discussion notes.
func (e Entry) Notes() string { return e.notes }

// CreatedAt returns the creation time.
func (e Entry) CreatedAt() time.Time { return e.createdAt }

// UpdatedAt returns the last update time.
func (e Entry) UpdatedAt() time.Time { return e.updatedAt }

// WithStage returns a copy in the given stage.
func (e Entry) WithStage(s Stage) Entry {
	e.stage = s
	return e
}

// WithNotes returns a copy with the given notes.
func (e Entry) WithNotes(notes string) Entry {
	e.notes = notes
	return e
}
