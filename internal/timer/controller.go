package timer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shopfloor-dev/shopfloor/internal/api"
	"github.com/shopfloor-dev/shopfloor/internal/geo"
	"github.com/shopfloor-dev/shopfloor/internal/log"
	"github.com/shopfloor-dev/shopfloor/internal/process"
	"github.com/shopfloor-dev/shopfloor/internal/tasks"
)

// Transition guard errors. Validation failures come back as
// *process.ValidationError with a user-facing reason.
var (
	ErrAlreadyRunning = errors.New("a timer is already running; stop or swap it first")
	ErrNotRunning     = errors.New("no timer is running")
	ErrNoPending      = errors.New("nothing is awaiting completion")
)

// EventSink receives structured events. *log.Logger satisfies it.
type EventSink interface {
	Append(event log.LogEvent) error
}

// Options configures optional controller collaborators.
type Options struct {
	Locator  geo.Locator // nil disables location capture
	Events   EventSink   // nil disables event logging
	Recorder Recorder    // nil disables the local journal
	Now      func() time.Time
}

// Controller is the timer session state machine. All transitions are
// serialized through the instance mutex; the UI layer additionally keeps
// its controls disabled while one is in flight.
type Controller struct {
	client  *api.Client
	catalog *process.Catalog
	locator geo.Locator
	events  EventSink
	rec     Recorder
	now     func() time.Time

	mu      sync.Mutex
	phase   Phase
	session api.TimerSession
	pend    pending

	// gen increments on every explicit transition; a poll refresh started
	// under an older generation discards its result, so transitions stay
	// authoritative over polls.
	gen uint64
}

// New creates an idle Controller.
func New(client *api.Client, catalog *process.Catalog, opts Options) *Controller {
	c := &Controller{
		client:  client,
		catalog: catalog,
		locator: opts.Locator,
		events:  opts.Events,
		rec:     opts.Recorder,
		now:     opts.Now,
	}
	if c.now == nil {
		c.now = time.Now
	}
	return c
}

// Processes returns the catalog definitions available for starting.
func (c *Controller) Processes() []process.Definition {
	return c.catalog.All()
}

// Snapshot returns a copy of the current state for rendering.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	snap := Snapshot{Phase: c.phase}
	if c.phase == PhaseIdle {
		return snap
	}
	sess := c.session
	snap.Session = &sess
	snap.Elapsed = c.now().Sub(sess.StartedAt)
	if c.phase == PhaseAwaitingCompletion {
		p := c.promptLocked()
		snap.Prompt = &p
	}
	return snap
}

// promptLocked builds the completion prompt data for the active session.
func (c *Controller) promptLocked() Prompt {
	p := Prompt{ProcessName: c.session.Process, Kind: c.pend.Kind}
	if def, ok := c.catalog.Lookup(c.session.Process); ok {
		p.ProcessName = def.DisplayName()
		p.IsLastProcess = def.IsTerminal()
	}
	return p
}

// Refresh fetches the current session from the backend and applies it,
// unless an explicit transition started in the meantime (the transition's
// own result wins) or a completion prompt is open. Errors are logged and
// returned; state is left unchanged (stale but safe).
func (c *Controller) Refresh(ctx context.Context) (Snapshot, error) {
	c.mu.Lock()
	gen := c.gen
	c.mu.Unlock()

	sess, err := c.client.GetTimer(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.emit(log.LogEvent{Event: log.EventRefreshFailed, Error: err.Error()})
		return c.snapshotLocked(), err
	}
	if gen != c.gen || c.phase == PhaseAwaitingCompletion {
		return c.snapshotLocked(), nil
	}

	if sess == nil {
		c.phase = PhaseIdle
		c.session = api.TimerSession{}
	} else {
		c.phase = PhaseRunning
		c.session = *sess
	}
	return c.snapshotLocked(), nil
}

// Start validates and starts a new session: Idle -> Running.
// Validation failures return before any network call. A geofence warning
// from the backend is carried in the result without blocking.
func (c *Controller) Start(ctx context.Context, p StartParams) (*StartResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != PhaseIdle {
		return nil, ErrAlreadyRunning
	}
	if _, err := c.catalog.Validate(p.Process, p.ProjectID); err != nil {
		return nil, err
	}

	c.gen++
	res, err := c.startLocked(ctx, p)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// startLocked performs the network half of a start. Caller holds the lock
// and has already validated and bumped the generation.
func (c *Controller) startLocked(ctx context.Context, p StartParams) (*StartResult, error) {
	req := api.StartTimerRequest{
		Process:   p.Process,
		ProjectID: p.ProjectID,
		Notes:     p.Notes,
		TaskID:    p.TaskID,
	}
	if fix := c.capture(ctx); fix != nil {
		req.Latitude = &fix.Latitude
		req.Longitude = &fix.Longitude
		if fix.Accuracy > 0 {
			req.Accuracy = &fix.Accuracy
		}
	}

	resp, err := c.client.StartTimer(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp.Timer == nil {
		return nil, errors.New("backend accepted the start but returned no timer")
	}

	c.phase = PhaseRunning
	c.session = *resp.Timer
	c.emit(log.LogEvent{
		Event:     log.EventTimerStarted,
		SessionID: c.session.ID,
		ProjectID: c.session.ProjectID,
		Process:   c.session.Process,
		TaskID:    c.session.TaskID,
		Warning:   resp.Warning,
	})

	return &StartResult{
		Session:         c.session,
		Warning:         resp.Warning,
		OutsideGeofence: resp.OutsideGeofence,
	}, nil
}

// capture obtains a best-effort location fix. Failure is logged and
// yields nil; the surrounding transition proceeds regardless.
func (c *Controller) capture(ctx context.Context) *geo.Fix {
	if c.locator == nil {
		return nil
	}
	fix, err := c.locator.Locate(ctx)
	if err != nil {
		if !errors.Is(err, geo.ErrNoLocator) {
			c.emit(log.LogEvent{Event: log.EventGeoUnavailable, Error: err.Error()})
		}
		return nil
	}
	return fix
}

// Stop opens the completion prompt: Running -> AwaitingCompletion(stop).
// No network call is made until Confirm or Skip.
func (c *Controller) Stop() (*Prompt, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != PhaseRunning {
		return nil, ErrNotRunning
	}
	c.phase = PhaseAwaitingCompletion
	c.pend = pending{Kind: PendingStop}
	p := c.promptLocked()
	return &p, nil
}

// Swap validates the new target and opens the completion prompt for the
// current session: Running -> AwaitingCompletion(swap). The new session
// starts only after the current one stops cleanly.
func (c *Controller) Swap(next StartParams) (*Prompt, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != PhaseRunning {
		return nil, ErrNotRunning
	}
	if _, err := c.catalog.Validate(next.Process, next.ProjectID); err != nil {
		return nil, err
	}
	c.phase = PhaseAwaitingCompletion
	c.pend = pending{Kind: PendingSwap, Next: next}
	p := c.promptLocked()
	return &p, nil
}

// Dismiss closes the completion prompt without doing anything:
// AwaitingCompletion -> Running.
func (c *Controller) Dismiss() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != PhaseAwaitingCompletion {
		return ErrNoPending
	}
	c.phase = PhaseRunning
	c.pend = pending{}
	return nil
}

// Confirm resolves the completion prompt with comments: the session is
// stopped, the bound project process is marked completed with the
// comments, and the linked task (if any) is completed.
func (c *Controller) Confirm(ctx context.Context, comments string) (*StopResult, error) {
	return c.finish(ctx, true, comments)
}

// Skip resolves the completion prompt without marking process completion.
// The linked task (if any) is still completed.
func (c *Controller) Skip(ctx context.Context) (*StopResult, error) {
	return c.finish(ctx, false, "")
}

// finish runs the stop phase and its bookkeeping, then the start phase
// when a swap is pending. A stop failure returns the machine to Running
// untouched; bookkeeping failures after a persisted stop are collected as
// notices, never rolled back. If the swap's start phase fails the result
// is returned alongside the error: the stop has already happened.
func (c *Controller) finish(ctx context.Context, markComplete bool, comments string) (*StopResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != PhaseAwaitingCompletion {
		return nil, ErrNoPending
	}
	old := c.session
	pend := c.pend
	c.gen++

	stopResp, err := c.client.StopTimer(ctx)
	if err != nil {
		// Backend error: prompt closes, session keeps running.
		c.phase = PhaseRunning
		c.pend = pending{}
		return nil, err
	}

	c.phase = PhaseIdle
	c.session = api.TimerSession{}
	c.pend = pending{}

	res := &StopResult{}
	res.Hours, res.FromServer = stopResp.Hours.Value()
	stoppedAt := c.now()
	if res.FromServer {
		res.Elapsed = time.Duration(res.Hours * float64(time.Hour))
	} else {
		// Documented fallback: recompute locally when the backend's hours
		// value is unusable.
		res.Elapsed = stoppedAt.Sub(old.StartedAt)
		res.Hours = res.Elapsed.Hours()
	}

	if markComplete && old.ProjectID != "" && old.Process != "" {
		if err := c.client.CompleteProcess(ctx, old.ProjectID, old.Process, comments); err != nil {
			res.Notices = append(res.Notices, fmt.Sprintf("process completion not recorded: %v", err))
			c.emit(log.LogEvent{Event: log.EventProcessFailed, SessionID: old.ID, ProjectID: old.ProjectID, Process: old.Process, Error: err.Error()})
		} else {
			c.emit(log.LogEvent{Event: log.EventProcessCompleted, SessionID: old.ID, ProjectID: old.ProjectID, Process: old.Process})
		}
	}

	if old.TaskID != "" {
		// Best effort: task bookkeeping must never block the stop.
		if err := c.client.CompleteTask(ctx, old.TaskID, comments); err != nil {
			res.Notices = append(res.Notices, fmt.Sprintf("task not completed: %v", err))
			c.emit(log.LogEvent{Event: log.EventTaskCompleteFailed, SessionID: old.ID, TaskID: old.TaskID, Error: err.Error()})
		} else {
			c.emit(log.LogEvent{Event: log.EventTaskCompleted, SessionID: old.ID, TaskID: old.TaskID})
		}
	}

	c.record(StopRecord{
		SessionID: old.ID,
		ProjectID: old.ProjectID,
		Process:   old.Process,
		TaskID:    old.TaskID,
		Comments:  comments,
		StartedAt: old.StartedAt,
		StoppedAt: stoppedAt,
		Hours:     res.Hours,
	})

	event := log.EventTimerStopped
	if pend.Kind == PendingSwap {
		event = log.EventTimerSwapped
	}
	c.emit(log.LogEvent{
		Event:     event,
		SessionID: old.ID,
		ProjectID: old.ProjectID,
		Process:   old.Process,
		TaskID:    old.TaskID,
		Hours:     res.Hours,
	})

	if pend.Kind == PendingSwap {
		next, err := c.startLocked(ctx, pend.Next)
		if err != nil {
			// The old session is stopped; surface the start failure with
			// the stop result so elapsed time is not lost.
			return res, err
		}
		res.Next = next
	}
	return res, nil
}

// Cancel discards the active session without logging any time and without
// touching process or task state. The caller is responsible for explicit
// user confirmation; this transition is irreversible.
func (c *Controller) Cancel(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase == PhaseIdle {
		return ErrNotRunning
	}
	old := c.session
	c.gen++

	if err := c.client.CancelTimer(ctx); err != nil {
		return err
	}

	c.phase = PhaseIdle
	c.session = api.TimerSession{}
	c.pend = pending{}
	c.emit(log.LogEvent{
		Event:     log.EventTimerCancelled,
		SessionID: old.ID,
		ProjectID: old.ProjectID,
		Process:   old.Process,
	})
	return nil
}

// StartFromTask derives start parameters from a task: its assigned
// process code (required), its opportunity-linked project, and its title
// as notes. The task id is bound so stopping the session completes it.
func (c *Controller) StartFromTask(ctx context.Context, t api.Task) (*StartResult, error) {
	if t.Meta.ProcessCode == "" {
		return nil, &process.ValidationError{
			Reason: fmt.Sprintf("task %q has no process assigned; assign one with: shopfloor tasks --assign", t.Title),
		}
	}
	return c.Start(ctx, StartParams{
		Process:   t.Meta.ProcessCode,
		ProjectID: tasks.ProjectID(t),
		Notes:     t.Title,
		TaskID:    t.ID,
	})
}

// emit writes an event, dropping logger failures.
func (c *Controller) emit(event log.LogEvent) {
	if c.events == nil {
		return
	}
	_ = c.events.Append(event)
}

// record writes the local journal entry, dropping failures.
func (c *Controller) record(rec StopRecord) {
	if c.rec == nil {
		return
	}
	_ = c.rec.Record(rec)
}
