// taskview.go renders the due-today and overdue task buckets and lets a
// task with an assigned process be started directly.
package tui

import (
	"fmt"
	"strings"

	"github.com/shopfloor-dev/shopfloor/internal/api"
	"github.com/shopfloor-dev/shopfloor/internal/tasks"
)

// taskRow pairs a task with its bucket label for flat navigation.
type taskRow struct {
	task    api.Task
	overdue bool
}

type taskView struct {
	rows   []taskRow
	cursor int
}

func newTaskView(b *tasks.Buckets) taskView {
	var rows []taskRow
	for _, t := range b.DueToday {
		rows = append(rows, taskRow{task: t})
	}
	for _, t := range b.Overdue {
		rows = append(rows, taskRow{task: t, overdue: true})
	}
	return taskView{rows: rows}
}

func (v *taskView) moveUp() {
	if v.cursor > 0 {
		v.cursor--
	}
}

func (v *taskView) moveDown() {
	if v.cursor < len(v.rows)-1 {
		v.cursor++
	}
}

func (v *taskView) selected() (api.Task, bool) {
	if v.cursor >= len(v.rows) {
		return api.Task{}, false
	}
	return v.rows[v.cursor].task, true
}

func (v *taskView) view() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("Workshop tasks"))
	b.WriteString("\n\n")

	if len(v.rows) == 0 {
		b.WriteString(DimStyle.Render("  nothing due"))
		b.WriteString("\n")
	}

	for i, row := range v.rows {
		label := row.task.Title
		if row.task.Meta.ProcessCode != "" {
			label += fmt.Sprintf("  [%s]", row.task.Meta.ProcessCode)
		} else {
			label += DimStyle.Render("  [no process]")
		}
		if row.overdue {
			label = ErrorStyle.Render("overdue  ") + label
		}
		if i == v.cursor {
			b.WriteString(SelectedStyle.Render("> "))
		} else {
			b.WriteString("  ")
		}
		b.WriteString(label)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(DimStyle.Render("enter: start timer from task   esc: back"))

	return BoxStyle.Render(b.String())
}
