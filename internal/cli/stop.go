// stop.go implements the "shopfloor stop" command: the non-TTY rendering
// of the two-phase completion flow. --comments confirms process
// completion with those comments; --skip stops without it.
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shopfloor-dev/shopfloor/internal/timer"
)

var (
	stopComments string
	stopSkip     bool
)

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the timer and log the elapsed time",
	Long: `Stop the running session. By default you are prompted for optional
completion comments; pass --skip to stop without marking the project's
process completed, or --comments to confirm non-interactively. A session
started from a task completes that task either way.`,
	RunE: runStop,
}

func runStop(cmd *cobra.Command, args []string) error {
	app, err := newAppContext(cmd.Context())
	if err != nil {
		return err
	}
	defer app.Close()

	prompt, err := app.Controller.Stop()
	if err != nil {
		return err
	}

	var res *timer.StopResult
	switch {
	case stopSkip:
		res, err = app.Controller.Skip(cmd.Context())
	case cmd.Flags().Changed("comments"):
		res, err = app.Controller.Confirm(cmd.Context(), stopComments)
	default:
		comments, skip := askCompletion(prompt)
		if skip {
			res, err = app.Controller.Skip(cmd.Context())
		} else {
			res, err = app.Controller.Confirm(cmd.Context(), comments)
		}
	}
	if err != nil {
		return err
	}

	printStopped(res)
	return nil
}

// askCompletion runs the completion prompt on stdin. Returns skip=true
// when the user declines to mark the process completed.
func askCompletion(p *timer.Prompt) (comments string, skip bool) {
	reader := bufio.NewReader(os.Stdin)

	if p.IsLastProcess {
		fmt.Printf("%s is the last process on this job. Mark it completed? [y/N] ", p.ProcessName)
		answer, _ := reader.ReadString('\n')
		if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(answer)), "y") {
			return "", true
		}
	}

	fmt.Print("Completion comments (empty to skip completion): ")
	line, _ := reader.ReadString('\n')
	line = strings.TrimSpace(line)
	if line == "" && !p.IsLastProcess {
		return "", true
	}
	return line, false
}

// printStopped reports elapsed time and any bookkeeping notices.
func printStopped(res *timer.StopResult) {
	fmt.Printf("Stopped. Logged %s (%s)\n", timer.FormatDuration(res.Elapsed), timer.FormatHours(res.Hours))
	if !res.FromServer {
		fmt.Println("Note: backend sent no usable duration; elapsed time computed locally.")
	}
	for _, n := range res.Notices {
		fmt.Printf("Note: %s\n", n)
	}
	if res.Next != nil {
		fmt.Printf("Now running: %s\n", res.Next.Session.Process)
		if res.Next.Warning != "" {
			fmt.Printf("Note: %s\n", res.Next.Warning)
		}
	}
}

func init() {
	stopCmd.Flags().StringVar(&stopComments, "comments", "", "Completion comments (confirms process completion)")
	stopCmd.Flags().BoolVar(&stopSkip, "skip", false, "Stop without marking the process completed")
}
