package catalog

import "time"

// JobStatus enumerates the import job lifecycle states.
type JobStatus string

const (
	StatusPending             JobStatus = "pending"
	StatusProcessing          JobStatus = "processing"
	StatusCompleted           JobStatus = "completed"
	StatusCompletedWithErrors JobStatus = "completed_with_errors"
	StatusFailed              JobStatus = "failed"
)

// IsTerminal reports whether no further transition is permitted.
func (s JobStatus) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusCompletedWithErrors, StatusFailed:
		return true
	}
	return false
}

// CanTransitionTo is the single authority on legal status transitions:
// pending -> processing -> {completed, completed_with_errors, failed}.
// A job may also fail straight from pending when it never starts.
func (s JobStatus) CanTransitionTo(next JobStatus) bool {
	if s.IsTerminal() {
		return false
	}
	switch s {
	case StatusPending:
		return next == StatusProcessing || next == StatusFailed
	case StatusProcessing:
		return next.IsTerminal()
	}
	return false
}

// ImportJob is the persisted record of one bulk import, identified by an
// externally generated job ID. Progress counters only move forward and the
// row becomes immutable once the status is terminal.
type ImportJob struct {
	JobID            string
	Filename         string
	TotalRecords     int64
	ProcessedRecords int64
	Status           JobStatus
	Errors           []string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
