// tasks.go implements the "shopfloor tasks" command: list the due-today
// and overdue buckets, start a timer from a task, or manage a task's
// process assignment.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shopfloor-dev/shopfloor/internal/api"
)

var (
	tasksStart  string
	tasksAssign string
	tasksClear  string
	tasksCode   string
)

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "List workshop tasks or start a timer from one",
	Long: `List the workshop tasks due today and overdue. A task with an
assigned process can be started directly with --start; the session then
completes the task when it stops. Use --assign/--process to set a
task's process, or --clear to remove it.`,
	RunE: runTasks,
}

func runTasks(cmd *cobra.Command, args []string) error {
	app, err := newAppContext(cmd.Context())
	if err != nil {
		return err
	}
	defer app.Close()

	ctx := cmd.Context()

	switch {
	case tasksAssign != "":
		if tasksCode == "" {
			return fmt.Errorf("--assign needs --process <code>")
		}
		if _, ok := app.Catalog.Lookup(tasksCode); !ok {
			return fmt.Errorf("process %q is not available to you", tasksCode)
		}
		if err := app.Tasks.AssignProcess(ctx, tasksAssign, tasksCode); err != nil {
			return err
		}
		fmt.Printf("Task %s assigned to %s\n", tasksAssign, tasksCode)
		return nil

	case tasksClear != "":
		if err := app.Tasks.ClearProcess(ctx, tasksClear); err != nil {
			return err
		}
		fmt.Printf("Task %s process assignment cleared\n", tasksClear)
		return nil

	case tasksStart != "":
		return startFromTask(app, cmd, tasksStart)
	}

	buckets, err := app.Tasks.Buckets(ctx)
	if err != nil {
		return err
	}

	printBucket("Due today", buckets.DueToday)
	printBucket("Overdue", buckets.Overdue)
	if len(buckets.DueToday) == 0 && len(buckets.Overdue) == 0 {
		fmt.Println("No workshop tasks due.")
	}
	return nil
}

// startFromTask finds the task in the current buckets and starts a timer
// bound to it.
func startFromTask(app *appContext, cmd *cobra.Command, id string) error {
	buckets, err := app.Tasks.Buckets(cmd.Context())
	if err != nil {
		return err
	}

	var task *api.Task
	for _, list := range [][]api.Task{buckets.DueToday, buckets.Overdue} {
		for i := range list {
			if list[i].ID == id {
				task = &list[i]
			}
		}
	}
	if task == nil {
		return fmt.Errorf("task %q is not in your workshop buckets", id)
	}

	res, err := app.Controller.StartFromTask(cmd.Context(), *task)
	if err != nil {
		return err
	}
	printStarted(app, res)
	return nil
}

func printBucket(title string, list []api.Task) {
	if len(list) == 0 {
		return
	}
	fmt.Printf("%s:\n", title)
	for _, t := range list {
		line := fmt.Sprintf("  %-10s  %s", t.ID, t.Title)
		if t.Meta.ProcessCode != "" {
			line += fmt.Sprintf("  [%s]", t.Meta.ProcessCode)
		} else {
			line += "  [no process]"
		}
		fmt.Println(line)
	}
	fmt.Println()
}

func init() {
	tasksCmd.Flags().StringVar(&tasksStart, "start", "", "Start a timer from the given task id")
	tasksCmd.Flags().StringVar(&tasksAssign, "assign", "", "Assign a process to the given task id")
	tasksCmd.Flags().StringVar(&tasksClear, "clear", "", "Clear the process assignment of the given task id")
	tasksCmd.Flags().StringVar(&tasksCode, "process", "", "Process code used with --assign")
}
