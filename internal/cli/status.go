// status.go implements the "shopfloor status" command showing the
// current timer session.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shopfloor-dev/shopfloor/internal/timer"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current timer session",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	app, err := newAppContext(cmd.Context())
	if err != nil {
		return err
	}
	defer app.Close()

	snap := app.Controller.Snapshot()
	if snap.Phase == timer.PhaseIdle {
		fmt.Println("No timer running.")
		return nil
	}

	sess := snap.Session
	name := sess.Process
	if def, ok := app.Catalog.Lookup(sess.Process); ok {
		name = def.DisplayName()
	}

	fmt.Printf("Running: %s", name)
	if sess.ProjectID != "" {
		fmt.Printf("  (project %s)", sess.ProjectID)
	}
	fmt.Println()
	fmt.Printf("Elapsed: %s\n", timer.FormatDuration(snap.Elapsed))
	if sess.Notes != "" {
		fmt.Printf("Notes:   %s\n", sess.Notes)
	}
	if sess.TaskID != "" {
		fmt.Printf("Task:    %s (completed on stop)\n", sess.TaskID)
	}
	return nil
}
