package domain

import "time"

type RunStatus string

const (
	RunStatusRunning        RunStatus = "running"
	RunStatusCompleted      RunStatus = "completed"
	RunStatusFailed         RunStatus = "failed"
	RunStatusPartialSuccess RunStatus = "partial_success"
)

// ParsingRunLog records one scraping invocation against one source. A row is
// created when the run starts and closed with counts when it ends.
type ParsingRunLog struct {
	ID           int64
	RunID        string
	ProjectID    int64
	SourceType   SourceType
	SourceID     int64
	Status       RunStatus
	PostsFound   int
	PostsAdded   int
	ErrorMessage string
	StartedAt    time.Time
	EndedAt      *time.Time
}
