// Package testutil provides test helper utilities for shopfloor tests.
// This file implements a scriptable fake of the workshop backend.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopfloor-dev/shopfloor/internal/api"
)

// FakeBackend is an in-process stand-in for the workshop REST backend.
// Response behavior is scripted through the exported fields; every request
// is recorded as "METHOD /path" in Calls for ordering assertions.
type FakeBackend struct {
	mu     sync.Mutex
	server *httptest.Server
	nextID int

	Timer *api.TimerSession // current session, nil when none
	Calls []string

	// LastStart is the decoded body of the most recent start request.
	LastStart *api.StartTimerRequest

	// Start behavior.
	StartWarning    string
	OutsideGeofence bool
	FailStart       string // non-empty: start fails with this message

	// Stop behavior. StopHours is marshalled as-is, so tests can script a
	// number (2.5) or a junk string ("N/A").
	StopHours any
	FailStop  string

	// Bookkeeping behavior.
	FailProcessStatus string
	FailCompleteTask  string

	Processes []api.ProcessDefinition
	Tasks     api.WorkshopTasksResponse
}

// NewFakeBackend starts the fake server. It is shut down when the test
// finishes.
func NewFakeBackend(t *testing.T) *FakeBackend {
	t.Helper()
	b := &FakeBackend{StopHours: 1.0}
	b.server = httptest.NewServer(http.HandlerFunc(b.handle))
	t.Cleanup(b.server.Close)
	return b
}

// URL returns the fake backend's base URL.
func (b *FakeBackend) URL() string { return b.server.URL }

// Client returns an api.Client pointed at the fake backend.
func (b *FakeBackend) Client() *api.Client {
	return api.NewClient(b.server.URL, "test-token")
}

// CallLog returns a copy of the recorded calls.
func (b *FakeBackend) CallLog() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.Calls))
	copy(out, b.Calls)
	return out
}

// CallCount returns how many recorded calls match the given prefix.
func (b *FakeBackend) CallCount(prefix string) int {
	n := 0
	for _, c := range b.CallLog() {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

// SetTimer replaces the current scripted session.
func (b *FakeBackend) SetTimer(sess *api.TimerSession) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Timer = sess
}

func (b *FakeBackend) handle(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	path := r.URL.Path
	b.Calls = append(b.Calls, r.Method+" "+path)

	switch {
	case r.Method == http.MethodGet && path == "/workshop/timer":
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "timer": b.Timer})

	case r.Method == http.MethodPost && path == "/workshop/timer/start":
		if b.FailStart != "" {
			writeJSON(w, http.StatusBadRequest, map[string]any{"ok": false, "error": b.FailStart})
			return
		}
		if b.Timer != nil {
			writeJSON(w, http.StatusConflict, map[string]any{"ok": false, "error": "a timer is already running"})
			return
		}
		var req api.StartTimerRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		b.LastStart = &req
		b.nextID++
		b.Timer = &api.TimerSession{
			ID:        fmt.Sprintf("ts-%d", b.nextID),
			StartedAt: time.Now().UTC(),
			ProjectID: req.ProjectID,
			Process:   req.Process,
			Notes:     req.Notes,
			TaskID:    req.TaskID,
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":              true,
			"timer":           b.Timer,
			"warning":         b.StartWarning,
			"outsideGeofence": b.OutsideGeofence,
		})

	case r.Method == http.MethodPost && path == "/workshop/timer/stop":
		if b.FailStop != "" {
			writeJSON(w, http.StatusInternalServerError, map[string]any{"ok": false, "error": b.FailStop})
			return
		}
		b.Timer = nil
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":        true,
			"timeEntry": map[string]any{"id": "te-1"},
			"hours":     b.StopHours,
		})

	case r.Method == http.MethodDelete && path == "/workshop/timer":
		b.Timer = nil
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})

	case r.Method == http.MethodPatch && path == "/workshop/process-status":
		if b.FailProcessStatus != "" {
			writeJSON(w, http.StatusInternalServerError, map[string]any{"ok": false, "error": b.FailProcessStatus})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})

	case r.Method == http.MethodGet && path == "/workshop/processes":
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "processes": b.Processes})

	case r.Method == http.MethodGet && path == "/tasks/workshop":
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":          true,
			"tasks":       b.Tasks.Tasks,
			"dueTodayIds": b.Tasks.DueTodayIDs,
			"overdueIds":  b.Tasks.OverdueIDs,
		})

	case r.Method == http.MethodPost && strings.HasPrefix(path, "/tasks/") && strings.HasSuffix(path, "/complete"):
		if b.FailCompleteTask != "" {
			writeJSON(w, http.StatusInternalServerError, map[string]any{"ok": false, "error": b.FailCompleteTask})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})

	case r.Method == http.MethodPatch && strings.HasPrefix(path, "/tasks/"):
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})

	default:
		writeJSON(w, http.StatusNotFound, map[string]any{"ok": false, "error": "not found: " + path})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
