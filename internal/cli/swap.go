// swap.go implements the "shopfloor swap" command: complete the current
// session and start the next one as a single action.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/shopfloor-dev/shopfloor/internal/timer"
)

var (
	swapProject  string
	swapNotes    string
	swapComments string
	swapSkip     bool
)

var swapCmd = &cobra.Command{
	Use:   "swap <process>",
	Short: "Stop the current session and start the next one",
	Long: `Swap validates the new process up front, then runs the same
completion flow as stop for the current session. The new session only
starts once the current one has stopped cleanly, so a failed stop never
leaves two sessions running.`,
	Args: cobra.ExactArgs(1),
	RunE: runSwap,
}

func runSwap(cmd *cobra.Command, args []string) error {
	app, err := newAppContext(cmd.Context())
	if err != nil {
		return err
	}
	defer app.Close()

	prompt, err := app.Controller.Swap(timer.StartParams{
		Process:   args[0],
		ProjectID: swapProject,
		Notes:     swapNotes,
	})
	if err != nil {
		return err
	}

	var res *timer.StopResult
	switch {
	case swapSkip:
		res, err = app.Controller.Skip(cmd.Context())
	case cmd.Flags().Changed("comments"):
		res, err = app.Controller.Confirm(cmd.Context(), swapComments)
	default:
		comments, skip := askCompletion(prompt)
		if skip {
			res, err = app.Controller.Skip(cmd.Context())
		} else {
			res, err = app.Controller.Confirm(cmd.Context(), comments)
		}
	}
	if res != nil {
		printStopped(res)
	}
	return err
}

func init() {
	swapCmd.Flags().StringVarP(&swapProject, "project", "p", "", "Project for the new session")
	swapCmd.Flags().StringVarP(&swapNotes, "notes", "n", "", "Notes for the new session")
	swapCmd.Flags().StringVar(&swapComments, "comments", "", "Completion comments for the old session")
	swapCmd.Flags().BoolVar(&swapSkip, "skip", false, "Stop the old session without marking its process completed")
}
