// prompt.go implements the completion prompt shown before a stop or swap
// commits: optional free-text comments, confirm or skip, and an extra
// confirmation line for terminal processes.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/shopfloor-dev/shopfloor/internal/timer"
)

// promptAction is the outcome of one key press in the prompt.
type promptAction int

const (
	promptNone promptAction = iota
	promptConfirm
	promptSkip
	promptDismiss
)

// promptView is the completion prompt collaborator.
type promptView struct {
	data timer.Prompt
	text textarea.Model
}

func newPromptView(data timer.Prompt) promptView {
	ta := textarea.New()
	ta.Placeholder = "completion comments (optional)"
	ta.SetHeight(3)
	ta.CharLimit = 500
	ta.Focus()
	return promptView{data: data, text: ta}
}

// handleKey processes one key and reports the resulting action.
// ctrl+d confirms, ctrl+s skips, esc dismisses back to running.
func (p *promptView) handleKey(msg tea.KeyMsg) promptAction {
	switch msg.String() {
	case KeyEsc:
		return promptDismiss
	case "ctrl+d":
		return promptConfirm
	case "ctrl+s":
		return promptSkip
	}
	var cmd tea.Cmd
	p.text, cmd = p.text.Update(msg)
	_ = cmd
	return promptNone
}

func (p *promptView) comments() string {
	return strings.TrimSpace(p.text.Value())
}

func (p *promptView) view() string {
	var b strings.Builder

	verb := "Stopping"
	if p.data.Kind == timer.PendingSwap {
		verb = "Swapping off"
	}
	b.WriteString(TitleStyle.Render(verb + ": " + p.data.ProcessName))
	b.WriteString("\n\n")

	if p.data.IsLastProcess {
		b.WriteString(WarningStyle.Render(
			"This is the last process on the job. Confirming marks the job's\n" +
				"downstream completion as done."))
		b.WriteString("\n\n")
	}

	b.WriteString(p.text.View())
	b.WriteString("\n\n")
	b.WriteString(DimStyle.Render("ctrl+d: complete process   ctrl+s: stop without completing   esc: keep running"))

	return BoxStyle.Render(b.String())
}
