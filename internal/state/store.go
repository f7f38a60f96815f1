// Package state provides run-history tracking for qmod using SQLite.
// Every macro invocation is recorded so sessions can be audited and
// replayed.
package state

import "time"

// RunStatus represents the lifecycle state of a macro run.
type RunStatus string

// Run statuses.
const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// Run is one recorded macro invocation.
type Run struct {
	ID          string
	Macro       string
	Args        string
	ModelPath   string
	Status      RunStatus
	StartedAt   time.Time
	CompletedAt *time.Time
	Error       string
}
