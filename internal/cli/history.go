// history.go implements the "shopfloor history" command over the local
// journal of completed entries.
package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/shopfloor-dev/shopfloor/internal/timer"
)

var historyWeek bool

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show locally journalled time entries",
	Long: `Show the time entries this machine has logged today (or this week
with --week). The backend holds the authoritative record; the journal is
local bookkeeping that works offline.`,
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	app, err := newAppContext(cmd.Context())
	if err != nil {
		return err
	}
	defer app.Close()

	now := time.Now()
	y, m, d := now.Date()
	since := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	label := "Today"
	if historyWeek {
		// Back to Monday.
		offset := (int(now.Weekday()) + 6) % 7
		since = since.AddDate(0, 0, -offset)
		label = "This week"
	}

	entries, err := app.Journal.ListSince(since)
	if err != nil {
		return err
	}

	for _, e := range entries {
		name := e.Process
		if def, ok := app.Catalog.Lookup(e.Process); ok {
			name = def.DisplayName()
		}
		line := fmt.Sprintf("  %s  %-18s  %s",
			e.StoppedAt.Local().Format("Mon 15:04"), name, timer.FormatHours(e.Hours))
		if e.ProjectID != "" {
			line += fmt.Sprintf("  (project %s)", e.ProjectID)
		}
		fmt.Println(line)
	}

	total, err := app.Journal.HoursSince(since)
	if err != nil {
		return err
	}
	fmt.Printf("\n%s: %s across %d entries\n", label, timer.FormatHours(total), len(entries))
	return nil
}

func init() {
	historyCmd.Flags().BoolVar(&historyWeek, "week", false, "Show the current week instead of today")
}
