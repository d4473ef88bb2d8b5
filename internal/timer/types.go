// Package timer implements the workshop timer session controller: a
// single-instance state machine over the backend's one-session-per-user
// timer, with start/stop/swap/cancel transitions, best-effort location
// capture, and task/process completion bookkeeping.
package timer

import (
	"time"

	"github.com/shopfloor-dev/shopfloor/internal/api"
)

// Phase is the controller's top-level state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhaseAwaitingCompletion
)

// String returns a display label for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhaseAwaitingCompletion:
		return "awaiting completion"
	default:
		return "unknown"
	}
}

// PendingKind distinguishes what confirm/skip will do once the completion
// prompt resolves.
type PendingKind int

const (
	PendingStop PendingKind = iota
	PendingSwap
)

// pending carries the action parked behind the completion prompt,
// including the swap target when the pending action is a swap.
type pending struct {
	Kind PendingKind
	Next StartParams
}

// StartParams are the inputs to a start (or the start half of a swap).
type StartParams struct {
	Process   string
	ProjectID string
	Notes     string
	TaskID    string
}

// Prompt is the data handed to the completion prompt collaborator.
type Prompt struct {
	ProcessName   string
	IsLastProcess bool
	Kind          PendingKind
}

// StartResult reports a successful start. Warning is informational
// (e.g. a geofence violation) and never blocked the transition.
type StartResult struct {
	Session         api.TimerSession
	Warning         string
	OutsideGeofence bool
}

// StopResult reports a completed stop (or the stop half of a swap).
type StopResult struct {
	Hours      float64
	FromServer bool // false when Hours was recomputed locally from StartedAt
	Elapsed    time.Duration

	// Notices collects non-fatal bookkeeping failures (process-status or
	// task completion). The stop itself succeeded; these are retryable
	// independently.
	Notices []string

	// Next is set when the stop was the first half of a swap and the
	// follow-on start succeeded.
	Next *StartResult
}

// Snapshot is a read-only copy of the controller state for rendering.
type Snapshot struct {
	Phase   Phase
	Session *api.TimerSession // nil unless Running or AwaitingCompletion
	Prompt  *Prompt           // nil unless AwaitingCompletion
	Elapsed time.Duration     // zero when no session
}

// StopRecord is the local bookkeeping record produced by every completed
// stop, consumed by a Recorder (the journal).
type StopRecord struct {
	SessionID string
	ProjectID string
	Process   string
	TaskID    string
	Comments  string
	StartedAt time.Time
	StoppedAt time.Time
	Hours     float64
}

// Recorder persists stop records locally. Failures are logged, never fatal.
type Recorder interface {
	Record(rec StopRecord) error
}
