// startform.go implements the process picker and project/notes inputs
// used by both start and swap.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/shopfloor-dev/shopfloor/internal/process"
	"github.com/shopfloor-dev/shopfloor/internal/timer"
)

// formField tracks which input has focus.
type formField int

const (
	fieldProcess formField = iota
	fieldProject
	fieldNotes
)

// startForm collects the parameters for a start or swap.
type startForm struct {
	defs   []process.Definition
	cursor int
	field  formField
	swap   bool

	project textinput.Model
	notes   textinput.Model
}

func newStartForm(defs []process.Definition, swap bool) startForm {
	project := textinput.New()
	project.Placeholder = "project id"
	project.CharLimit = 64

	notes := textinput.New()
	notes.Placeholder = "notes (optional)"
	notes.CharLimit = 200

	return startForm{
		defs:    defs,
		swap:    swap,
		project: project,
		notes:   notes,
	}
}

// handleKey processes one key. It returns done=true with the collected
// parameters when the form is submitted.
func (f *startForm) handleKey(msg tea.KeyMsg) (bool, timer.StartParams) {
	key := msg.String()

	if key == KeyTab {
		f.field = (f.field + 1) % 3
		f.syncFocus()
		return false, timer.StartParams{}
	}

	switch f.field {
	case fieldProcess:
		switch key {
		case KeyUp, "k":
			if f.cursor > 0 {
				f.cursor--
			}
		case KeyDown, "j":
			if f.cursor < len(f.defs)-1 {
				f.cursor++
			}
		case KeyEnter:
			return true, f.params()
		}

	default:
		if key == KeyEnter {
			return true, f.params()
		}
		var cmd tea.Cmd
		if f.field == fieldProject {
			f.project, cmd = f.project.Update(msg)
		} else {
			f.notes, cmd = f.notes.Update(msg)
		}
		_ = cmd // blink commands are dropped; the app tick redraws anyway
	}

	return false, timer.StartParams{}
}

func (f *startForm) syncFocus() {
	f.project.Blur()
	f.notes.Blur()
	switch f.field {
	case fieldProject:
		f.project.Focus()
	case fieldNotes:
		f.notes.Focus()
	}
}

func (f *startForm) params() timer.StartParams {
	var code string
	if f.cursor < len(f.defs) {
		code = f.defs[f.cursor].Code
	}
	return timer.StartParams{
		Process:   code,
		ProjectID: strings.TrimSpace(f.project.Value()),
		Notes:     strings.TrimSpace(f.notes.Value()),
	}
}

func (f *startForm) view() string {
	var b strings.Builder

	title := "Start timer"
	if f.swap {
		title = "Swap to"
	}
	b.WriteString(TitleStyle.Render(title))
	b.WriteString("\n\n")

	for i, def := range f.defs {
		line := fmt.Sprintf("  %s", def.DisplayName())
		if def.IsGeneric {
			line += DimStyle.Render("  (no project needed)")
		}
		if i == f.cursor && f.field == fieldProcess {
			line = SelectedStyle.Render("> " + def.DisplayName())
			if def.IsGeneric {
				line += DimStyle.Render("  (no project needed)")
			}
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	if len(f.defs) == 0 {
		b.WriteString(DimStyle.Render("  no processes available"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString("Project: " + f.project.View())
	b.WriteString("\n")
	b.WriteString("Notes:   " + f.notes.View())
	b.WriteString("\n\n")
	b.WriteString(DimStyle.Render("tab: next field   enter: start   esc: back"))

	return BoxStyle.Render(b.String())
}
