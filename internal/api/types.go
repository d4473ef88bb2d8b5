// Package api implements the typed REST client for the workshop backend.
package api

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// TimerSession is the single active work session for the current user.
// The backend enforces at-most-one per user; a conflict on start means an
// existing session should be reloaded and shown instead.
type TimerSession struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"projectId,omitempty"`
	Process   string    `json:"process"`
	StartedAt time.Time `json:"startedAt"`
	Notes     string    `json:"notes,omitempty"`
	TaskID    string    `json:"taskId,omitempty"`
}

// TimeEntry is the closed record the backend produces when a session stops.
type TimeEntry struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"projectId,omitempty"`
	Process   string    `json:"process"`
	StartedAt time.Time `json:"startedAt"`
	StoppedAt time.Time `json:"stoppedAt"`
}

// ProcessDefinition describes one permitted process code for the tenant.
type ProcessDefinition struct {
	Code                string `json:"code"`
	Name                string `json:"name"`
	IsGeneric           bool   `json:"isGeneric"`
	IsLastManufacturing bool   `json:"isLastManufacturing"`
	IsLastInstallation  bool   `json:"isLastInstallation"`
}

// TaskMeta carries the optional per-task settings the client reads and writes.
type TaskMeta struct {
	ProcessCode string `json:"processCode,omitempty"`
}

// Task is a read-only view of a workshop task. Mutation happens only
// through the task endpoints, never by editing these fields.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	DueAt       *time.Time `json:"dueAt,omitempty"`
	RelatedType string     `json:"relatedType,omitempty"`
	RelatedID   string     `json:"relatedId,omitempty"`
	Meta        TaskMeta   `json:"meta"`
}

// StartTimerRequest is the payload for POST /workshop/timer/start.
// Location fields are omitted entirely when no fix was captured.
type StartTimerRequest struct {
	Process   string   `json:"process"`
	ProjectID string   `json:"projectId,omitempty"`
	Notes     string   `json:"notes,omitempty"`
	TaskID    string   `json:"taskId,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Accuracy  *float64 `json:"accuracy,omitempty"`
}

// StartTimerResponse is the backend's answer to a start request.
// Warning is informational (e.g. a geofence violation) and never blocks.
type StartTimerResponse struct {
	Timer           *TimerSession `json:"timer"`
	Warning         string        `json:"warning,omitempty"`
	OutsideGeofence bool          `json:"outsideGeofence,omitempty"`
}

// StopTimerResponse is the backend's answer to a stop request.
type StopTimerResponse struct {
	TimeEntry *TimeEntry `json:"timeEntry"`
	Hours     Hours      `json:"hours"`
}

// WorkshopTasksResponse groups tasks into the due-today and overdue buckets.
// Membership comes from the id lists; Tasks holds the full records.
type WorkshopTasksResponse struct {
	Tasks       []Task   `json:"tasks"`
	DueTodayIDs []string `json:"dueTodayIds"`
	OverdueIDs  []string `json:"overdueIds"`
}

// Hours accepts the backend's `hours` field, which is observed as either a
// JSON number or a string. Value reports whether a usable numeric value was
// present; callers fall back to local duration computation otherwise.
type Hours struct {
	raw string
}

// UnmarshalJSON accepts a number, a string, or null.
func (h *Hours) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		h.raw = s
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		h.raw = n.String()
		return nil
	}
	if string(data) == "null" {
		h.raw = ""
		return nil
	}
	return fmt.Errorf("hours: unexpected JSON value %s", data)
}

// MarshalJSON writes the value back as a number when numeric, else a string.
func (h Hours) MarshalJSON() ([]byte, error) {
	if v, ok := h.Value(); ok {
		return json.Marshal(v)
	}
	return json.Marshal(h.raw)
}

// Value returns the parsed hours and true, or (0, false) when the backend
// sent something non-numeric.
func (h Hours) Value() (float64, bool) {
	v, err := strconv.ParseFloat(h.raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// String returns the raw backend value, useful for logging.
func (h Hours) String() string { return h.raw }
