// app.go wires the watch-mode views together: the timer screen, the
// start form, the task buckets, the completion prompt, and the cancel
// confirmation. One transition runs at a time; controls stay disabled
// while it is in flight.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/shopfloor-dev/shopfloor/internal/config"
	"github.com/shopfloor-dev/shopfloor/internal/tasks"
	"github.com/shopfloor-dev/shopfloor/internal/timer"
)

// viewState selects which screen the app is showing.
type viewState int

const (
	stateTimer viewState = iota
	stateStartForm
	stateTasks
	statePrompt
	stateCancelConfirm
)

// Message types.

type tickMsg time.Time

type pollMsg time.Time

// refreshedMsg carries a poll result.
type refreshedMsg struct {
	snap timer.Snapshot
}

// startedMsg reports a finished start transition.
type startedMsg struct {
	res *timer.StartResult
	err error
}

// stoppedMsg reports a finished confirm/skip transition.
type stoppedMsg struct {
	res *timer.StopResult
	err error
}

// cancelledMsg reports a finished cancel transition.
type cancelledMsg struct {
	err error
}

// tasksLoadedMsg carries the fetched task buckets.
type tasksLoadedMsg struct {
	buckets *tasks.Buckets
	err     error
}

// App is the top-level Bubble Tea model for watch mode.
type App struct {
	ctl    *timer.Controller
	source *tasks.Source
	cfg    *config.Config

	state viewState
	snap  timer.Snapshot
	busy  bool

	form   startForm
	tasks  taskView
	prompt promptView

	spin     spinner.Model
	flash    string
	flashErr bool
	width    int
	height   int
}

// NewApp creates the watch-mode application.
func NewApp(ctl *timer.Controller, source *tasks.Source, cfg *config.Config) *App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return &App{
		ctl:    ctl,
		source: source,
		cfg:    cfg,
		snap:   ctl.Snapshot(),
		spin:   sp,
	}
}

// Init starts the elapsed tick and the poll loop.
func (a *App) Init() tea.Cmd {
	return tea.Batch(tickCmd(), a.pollCmd(), a.spin.Tick)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (a *App) pollCmd() tea.Cmd {
	interval := time.Duration(a.cfg.PollInterval()) * time.Second
	return tea.Tick(interval, func(t time.Time) tea.Msg { return pollMsg(t) })
}

// refreshCmd fetches backend state. The controller discards the result if
// a transition supersedes it.
func (a *App) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		snap, _ := a.ctl.Refresh(context.Background())
		return refreshedMsg{snap: snap}
	}
}

// Update handles messages and updates the application state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tickMsg:
		// Re-render so the elapsed line ticks. Skipped while a transition
		// holds the controller; its completion message updates the view.
		if !a.busy {
			a.snap = a.ctl.Snapshot()
		}
		return a, tickCmd()

	case pollMsg:
		if a.busy || a.state == statePrompt || a.state == stateCancelConfirm {
			// Poll is superseded while a transition or prompt is open.
			return a, a.pollCmd()
		}
		return a, tea.Batch(a.refreshCmd(), a.pollCmd())

	case refreshedMsg:
		a.snap = msg.snap
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd

	case startedMsg:
		a.busy = false
		a.snap = a.ctl.Snapshot()
		if msg.err != nil {
			a.setFlash(msg.err.Error(), true)
			return a, nil
		}
		a.state = stateTimer
		if msg.res.Warning != "" {
			a.setFlash(msg.res.Warning, false)
		} else {
			a.setFlash("Timer started", false)
		}
		return a, nil

	case stoppedMsg:
		a.busy = false
		a.snap = a.ctl.Snapshot()
		if msg.res != nil {
			note := fmt.Sprintf("Logged %s", timer.FormatDuration(msg.res.Elapsed))
			if len(msg.res.Notices) > 0 {
				note += "; " + strings.Join(msg.res.Notices, "; ")
			}
			a.setFlash(note, false)
		}
		if msg.err != nil {
			a.setFlash(msg.err.Error(), true)
		}
		a.state = stateTimer
		return a, nil

	case cancelledMsg:
		a.busy = false
		a.snap = a.ctl.Snapshot()
		a.state = stateTimer
		if msg.err != nil {
			a.setFlash(msg.err.Error(), true)
		} else {
			a.setFlash("Session discarded", false)
		}
		return a, nil

	case tasksLoadedMsg:
		a.busy = false
		if msg.err != nil {
			a.setFlash(msg.err.Error(), true)
			a.state = stateTimer
			return a, nil
		}
		a.tasks = newTaskView(msg.buckets)
		a.state = stateTasks
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

// handleKey dispatches key presses to the active view.
func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == KeyCtrlC {
		return a, tea.Quit
	}
	if a.busy {
		// Transition in flight: controls disabled.
		return a, nil
	}

	switch a.state {
	case stateTimer:
		return a.handleTimerKey(msg)
	case stateStartForm:
		return a.handleFormKey(msg)
	case stateTasks:
		return a.handleTasksKey(msg)
	case statePrompt:
		return a.handlePromptKey(msg)
	case stateCancelConfirm:
		return a.handleCancelKey(msg)
	}
	return a, nil
}

func (a *App) handleTimerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return a, tea.Quit

	case "s":
		if a.snap.Phase == timer.PhaseIdle {
			a.form = newStartForm(a.ctl.Processes(), false)
			a.state = stateStartForm
		} else {
			prompt, err := a.ctl.Stop()
			if err != nil {
				a.setFlash(err.Error(), true)
				return a, nil
			}
			a.prompt = newPromptView(*prompt)
			a.state = statePrompt
		}
		return a, nil

	case "w":
		if a.snap.Phase != timer.PhaseRunning {
			return a, nil
		}
		// Swap: pick the next process first, prompt second.
		a.form = newStartForm(a.ctl.Processes(), true)
		a.state = stateStartForm
		return a, nil

	case "t":
		a.busy = true
		return a, func() tea.Msg {
			buckets, err := a.source.Buckets(context.Background())
			return tasksLoadedMsg{buckets: buckets, err: err}
		}

	case "c":
		if a.snap.Phase == timer.PhaseRunning {
			a.state = stateCancelConfirm
		}
		return a, nil
	}
	return a, nil
}

func (a *App) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == KeyEsc {
		a.state = stateTimer
		return a, nil
	}

	done, params := a.form.handleKey(msg)
	if !done {
		return a, nil
	}

	if a.form.swap {
		prompt, err := a.ctl.Swap(params)
		if err != nil {
			a.setFlash(err.Error(), true)
			a.state = stateTimer
			return a, nil
		}
		a.prompt = newPromptView(*prompt)
		a.state = statePrompt
		return a, nil
	}

	a.busy = true
	return a, func() tea.Msg {
		res, err := a.ctl.Start(context.Background(), params)
		return startedMsg{res: res, err: err}
	}
}

func (a *App) handleTasksKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case KeyEsc, "q":
		a.state = stateTimer
		return a, nil
	case KeyUp, "k":
		a.tasks.moveUp()
		return a, nil
	case KeyDown, "j":
		a.tasks.moveDown()
		return a, nil
	case KeyEnter:
		task, ok := a.tasks.selected()
		if !ok {
			return a, nil
		}
		a.busy = true
		return a, func() tea.Msg {
			res, err := a.ctl.StartFromTask(context.Background(), task)
			return startedMsg{res: res, err: err}
		}
	}
	return a, nil
}

func (a *App) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := a.prompt.handleKey(msg)
	switch action {
	case promptDismiss:
		if err := a.ctl.Dismiss(); err == nil {
			a.state = stateTimer
		}
		return a, nil

	case promptConfirm:
		comments := a.prompt.comments()
		a.busy = true
		return a, func() tea.Msg {
			res, err := a.ctl.Confirm(context.Background(), comments)
			return stoppedMsg{res: res, err: err}
		}

	case promptSkip:
		a.busy = true
		return a, func() tea.Msg {
			res, err := a.ctl.Skip(context.Background())
			return stoppedMsg{res: res, err: err}
		}
	}
	return a, nil
}

func (a *App) handleCancelKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y":
		a.busy = true
		return a, func() tea.Msg {
			return cancelledMsg{err: a.ctl.Cancel(context.Background())}
		}
	case "n", KeyEsc:
		a.state = stateTimer
	}
	return a, nil
}

func (a *App) setFlash(text string, isErr bool) {
	a.flash = text
	a.flashErr = isErr
}

// View renders the active screen.
func (a *App) View() string {
	var body string
	switch a.state {
	case stateStartForm:
		body = a.form.view()
	case stateTasks:
		body = a.tasks.view()
	case statePrompt:
		body = a.prompt.view()
	case stateCancelConfirm:
		body = BoxStyle.Render(
			TitleStyle.Render("Discard session?") + "\n\n" +
				"No time will be logged and nothing is marked complete.\n\n" +
				DimStyle.Render("y: discard   n: keep running"))
	default:
		body = a.timerView()
	}

	status := ""
	if a.busy {
		status = a.spin.View() + " working..."
	} else if a.flash != "" {
		if a.flashErr {
			status = ErrorStyle.Render(a.flash)
		} else {
			status = SuccessStyle.Render(a.flash)
		}
	}

	return body + "\n" + status + "\n"
}

// timerView renders the idle/running screen.
func (a *App) timerView() string {
	var b strings.Builder

	switch a.snap.Phase {
	case timer.PhaseIdle:
		b.WriteString(TitleStyle.Render("No timer running"))
		b.WriteString("\n\n")
		b.WriteString(DimStyle.Render("s: start   t: tasks   q: quit"))

	default:
		sess := a.snap.Session
		b.WriteString(TitleStyle.Render("Timing: " + sess.Process))
		b.WriteString("\n\n")
		b.WriteString(ElapsedStyle.Render(timer.FormatDuration(a.snap.Elapsed)))
		b.WriteString("\n")
		if sess.ProjectID != "" {
			b.WriteString(DimStyle.Render("project " + sess.ProjectID))
			b.WriteString("\n")
		}
		if sess.Notes != "" {
			b.WriteString(DimStyle.Render(sess.Notes))
			b.WriteString("\n")
		}
		if sess.TaskID != "" {
			b.WriteString(DimStyle.Render("task " + sess.TaskID + " completes on stop"))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(DimStyle.Render("s: stop   w: swap   c: cancel   t: tasks   q: quit"))
	}

	return BoxStyle.Render(b.String())
}
