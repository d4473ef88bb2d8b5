// start.go implements the "shopfloor start" command.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shopfloor-dev/shopfloor/internal/timer"
)

var (
	startProject string
	startNotes   string
	startTask    string
)

var startCmd = &cobra.Command{
	Use:   "start <process>",
	Short: "Start a timer session",
	Long: `Start a timer against a process code. Non-generic processes need
--project; generic ones (admin, overhead) do not. When location capture
is configured, a best-effort fix is attached to the start.`,
	Args: cobra.ExactArgs(1),
	RunE: runStart,
}

func runStart(cmd *cobra.Command, args []string) error {
	app, err := newAppContext(cmd.Context())
	if err != nil {
		return err
	}
	defer app.Close()

	res, err := app.Controller.Start(cmd.Context(), timer.StartParams{
		Process:   args[0],
		ProjectID: startProject,
		Notes:     startNotes,
		TaskID:    startTask,
	})
	if err != nil {
		return err
	}

	printStarted(app, res)
	return nil
}

// printStarted reports a started session, including any soft warning.
func printStarted(app *appContext, res *timer.StartResult) {
	name := res.Session.Process
	if def, ok := app.Catalog.Lookup(res.Session.Process); ok {
		name = def.DisplayName()
	}
	fmt.Printf("Timer started: %s", name)
	if res.Session.ProjectID != "" {
		fmt.Printf(" (project %s)", res.Session.ProjectID)
	}
	fmt.Println()
	if res.Warning != "" {
		fmt.Printf("Note: %s\n", res.Warning)
	}
}

func init() {
	startCmd.Flags().StringVarP(&startProject, "project", "p", "", "Project to time against")
	startCmd.Flags().StringVarP(&startNotes, "notes", "n", "", "Session notes")
	startCmd.Flags().StringVar(&startTask, "task", "", "Task id to complete when the session stops")
}
