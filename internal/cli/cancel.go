// cancel.go implements the "shopfloor cancel" command: discard the
// session without logging any time.
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var cancelYes bool

var cancelCmd = &cobra.Command{
	Use:   "cancel",
	Short: "Discard the running session without logging time",
	Long: `Cancel throws away the running session: no time entry is created,
no process is marked completed, and no task is touched. This cannot be
undone, so it asks for confirmation unless --yes is passed.`,
	RunE: runCancel,
}

func runCancel(cmd *cobra.Command, args []string) error {
	app, err := newAppContext(cmd.Context())
	if err != nil {
		return err
	}
	defer app.Close()

	if !cancelYes {
		fmt.Print("Discard the running session and its elapsed time? [y/N] ")
		answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(answer)), "y") {
			fmt.Println("Kept running.")
			return nil
		}
	}

	if err := app.Controller.Cancel(cmd.Context()); err != nil {
		return err
	}
	fmt.Println("Session discarded.")
	return nil
}

func init() {
	cancelCmd.Flags().BoolVarP(&cancelYes, "yes", "y", false, "Skip the confirmation prompt")
}
