package dto

import "github.com/investmatch/investmatch/domain/pitch"

// PitchRequest is the JSON pitch form.
type PitchRequest struct {
	Subject     string   `json:"subject"`
	Message     string   `json:"message"`
	DeckURL     string   `json:"deckUrl"`
	InvestorIDs []string `json:"investorIds"`
}

// Draft converts the form to a pitch draft.
func (r PitchRequest) Draft() pitch.Draft {
	return pitch.Draft{
		Subject:     r.Subject,
		Message:     r.Message,
		InvestorIDs: r.InvestorIDs,
		DeckURL:     r.DeckURL,
	}
}

// RecipientStatusRequest sets a recipient's response status.
type RecipientStatusRequest struct {
	Status string `json:"status"`
}
