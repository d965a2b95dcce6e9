package model

import "time"

// RunStatus tracks a persisted run through its lifecycle.
type RunStatus string

const (
	RunQueued   RunStatus = "queued"
	RunRunning  RunStatus = "running"
	RunComplete RunStatus = "complete"
	RunFailed   RunStatus = "failed"
)

// Run is the persistence record for one processed URL.
type Run struct {
	ID        string       `json:"id"`
	URL       string       `json:"url"`
	Status    RunStatus    `json:"status"`
	Result    *FinalResult `json:"result,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}
