// processes.go implements the "shopfloor processes" command: show the
// catalog, optionally refreshing the local cache from the backend.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shopfloor-dev/shopfloor/internal/config"
	"github.com/shopfloor-dev/shopfloor/internal/process"
)

var processesRefresh bool

var processesCmd = &cobra.Command{
	Use:   "processes",
	Short: "List the processes you can time against",
	RunE:  runProcesses,
}

func runProcesses(cmd *cobra.Command, args []string) error {
	app, err := newAppContext(cmd.Context())
	if err != nil {
		return err
	}
	defer app.Close()

	catalog := app.Catalog
	if processesRefresh {
		defs, err := app.Client.ListProcesses(cmd.Context())
		if err != nil {
			return fmt.Errorf("refreshing catalog: %w", err)
		}
		catalog = process.NewCatalog(defs)
		app.Config.Processes = process.ToConfig(defs)
		if err := config.WriteConfig(app.Dir, app.Config); err != nil {
			return err
		}
	} else if app.FromCache {
		fmt.Println("(backend unreachable; showing cached catalog)")
	}

	for _, def := range catalog.All() {
		flags := ""
		if def.IsGeneric {
			flags += "  [generic]"
		}
		if def.IsTerminal() {
			flags += "  [last process]"
		}
		fmt.Printf("  %-14s  %s%s\n", def.Code, def.DisplayName(), flags)
	}
	if catalog.Len() == 0 {
		fmt.Println("No processes available; check your permissions with the office.")
	}
	return nil
}

func init() {
	processesCmd.Flags().BoolVar(&processesRefresh, "refresh", false, "Refetch the catalog and update the cache")
}
