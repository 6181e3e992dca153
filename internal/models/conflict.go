package models

// ConflictPreview is the outcome of a simulated rebase of a branch onto a base.
type ConflictPreview struct {
	HasConflicts    bool     `json:"hasConflicts"`
	ConflictCount   int      `json:"conflictCount"`
	ConflictedFiles []string `json:"conflictedFiles"`
	Summary         string   `json:"summary"`
	// Unavailable is set when the simulation itself failed and the preview
	// is only a clean-looking placeholder.
	Unavailable bool `json:"unavailable,omitempty"`
}
