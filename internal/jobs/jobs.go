package jobs

import (
	"errors"
	"time"

	"gear-loadout-optimiser/internal/optimizer"
)

var ErrJobNotFound = errors.New("job not found")

type Status string

const (
	StatusQueued    Status = "queued"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusFailed    Status = "failed"
)

func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusFailed
}

type EventType string

const (
	EventProgress  EventType = "progress"
	EventDone      EventType = "done"
	EventCancelled EventType = "cancelled"
	EventError     EventType = "error"
)

// Event is emitted to a job's listener. Result is set on EventDone and Err on EventError.
type Event struct {
	Type    EventType
	JobID   string
	Current int64
	Total   int64
	Result  *optimizer.Computation
	Err     error
}

type Listener func(Event)

// Snapshot is the pollable state of a job.
type Snapshot struct {
	JobID      string                 `json:"job_id"`
	Status     Status                 `json:"status"`
	Current    int64                  `json:"current"`
	Total      int64                  `json:"total"`
	Result     *optimizer.Computation `json:"result,omitempty"`
	Error      string                 `json:"error,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
	FinishedAt *time.Time             `json:"finished_at,omitempty"`
}

// StatusRecorder keeps a durable log of job status transitions. Results are never recorded.
type StatusRecorder interface {
	Queued(jobID string) error
	Processing(jobID string) error
	Completed(jobID string, estimatedCombos int64, totalCombos int64) error
	Cancelled(jobID string) error
	Failed(jobID string, message string) error
}

// StatusHistory reads back recorded transitions, including jobs of earlier processes.
// Snapshots from it never carry a result.
type StatusHistory interface {
	// Entry returns nil when the job was never recorded.
	Entry(jobID string) (*Snapshot, error)
	Recent(limit int) ([]Snapshot, error)
}
