// init.go implements the "shopfloor init" command that writes config.yaml.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shopfloor-dev/shopfloor/internal/api"
	"github.com/shopfloor-dev/shopfloor/internal/config"
	"github.com/shopfloor-dev/shopfloor/internal/process"
)

var (
	initURL      string
	initToken    string
	initTenant   string
	initLocation string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Configure the backend connection",
	Long: `Write the shopfloor config file with the backend URL and API token,
then fetch and cache the tenant's process catalog.`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	if initURL == "" || initToken == "" {
		return fmt.Errorf("both --url and --token are required")
	}

	dir, err := config.Dir()
	if err != nil {
		return err
	}

	cfg, err := config.ReadConfig(dir)
	if err != nil {
		cfg = config.DefaultConfig()
	}
	cfg.API.BaseURL = initURL
	cfg.API.Token = initToken
	if initTenant != "" {
		cfg.API.Tenant = initTenant
	}
	if initLocation != "" {
		cfg.Location.Enabled = true
		cfg.Location.Command = initLocation
	}

	// Cache the catalog so validation works offline. Best-effort: a dead
	// backend at init time is reported but does not block writing config.
	client := api.NewClient(cfg.API.BaseURL, cfg.API.Token)
	defs, err := client.ListProcesses(cmd.Context())
	if err != nil {
		fmt.Printf("warning: could not fetch process catalog: %v\n", err)
	} else {
		cfg.Processes = process.ToConfig(defs)
	}

	if err := config.WriteConfig(dir, cfg); err != nil {
		return err
	}

	fmt.Printf("Configured %s (%d processes cached)\n", cfg.API.BaseURL, len(cfg.Processes))
	return nil
}

func init() {
	initCmd.Flags().StringVar(&initURL, "url", "", "Backend base URL")
	initCmd.Flags().StringVar(&initToken, "token", "", "API bearer token")
	initCmd.Flags().StringVar(&initTenant, "tenant", "", "Tenant identifier")
	initCmd.Flags().StringVar(&initLocation, "location-command", "", "Helper command printing a JSON location fix")
}
