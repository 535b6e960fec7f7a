package dto

// PipelineCreateRequest adds a startup to an investor's pipeline. An
// investor may omit InvestorID to use their own directory entry.
type PipelineCreateRequest struct {
	InvestorID string `json:"investor_id"`
	StartupID  string `json:"startup_id"`
}

// PipelineUpdateRequest changes an entry's stage, notes, or both. ID may be
// given in the path instead.
type PipelineUpdateRequest struct {
	ID              string  `json:"id"`
	Stage           *string `json:"stage"`
	DiscussionNotes *string `json:"discussion_notes"`
}

// PipelineDeleteRequest identifies the entry to delete.
type PipelineDeleteRequest struct {
	ID string `json:"id"`
}
