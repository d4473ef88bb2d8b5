// context.go wires the shared collaborators every command needs: config,
// API client, process catalog, journal, event log, and the controller.
package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/shopfloor-dev/shopfloor/internal/api"
	"github.com/shopfloor-dev/shopfloor/internal/config"
	"github.com/shopfloor-dev/shopfloor/internal/geo"
	"github.com/shopfloor-dev/shopfloor/internal/journal"
	"github.com/shopfloor-dev/shopfloor/internal/log"
	"github.com/shopfloor-dev/shopfloor/internal/process"
	"github.com/shopfloor-dev/shopfloor/internal/tasks"
	"github.com/shopfloor-dev/shopfloor/internal/timer"
)

// appContext bundles everything a command works with.
type appContext struct {
	Dir        string
	Config     *config.Config
	Client     *api.Client
	Catalog    *process.Catalog
	Controller *timer.Controller
	Tasks      *tasks.Source
	Journal    *journal.Store
	Events     *log.Logger
	FromCache  bool // catalog came from the config cache, not the backend
}

// newAppContext loads config and builds the collaborator graph.
// The controller is refreshed once so commands see the live session.
func newAppContext(ctx context.Context) (*appContext, error) {
	dir, err := config.Dir()
	if err != nil {
		return nil, err
	}

	cfg, err := config.ReadConfig(dir)
	if err != nil {
		return nil, errors.New("not configured; run: shopfloor init --url <backend> --token <token>")
	}
	if cfg.API.BaseURL == "" {
		return nil, errors.New("config has no api.base_url; run: shopfloor init")
	}

	client := api.NewClient(cfg.API.BaseURL, cfg.API.Token)

	catalog, fromCache, err := process.Load(ctx, client, cfg.Processes)
	if err != nil {
		return nil, fmt.Errorf("loading process catalog: %w", err)
	}

	events, err := log.NewLogger(dir)
	if err != nil {
		return nil, err
	}

	store, err := journal.NewStore(filepath.Join(dir, "journal.db"))
	if err != nil {
		return nil, fmt.Errorf("opening journal: %w", err)
	}

	var locator geo.Locator = geo.NopLocator{}
	if cfg.Location.Enabled {
		locator = &geo.CommandLocator{Command: cfg.Location.Command}
	}

	ctl := timer.New(client, catalog, timer.Options{
		Locator:  locator,
		Events:   events,
		Recorder: store,
	})
	// Pick up any session left running by a previous invocation.
	if _, err := ctl.Refresh(ctx); err != nil && verbose {
		fmt.Printf("warning: could not refresh timer state: %v\n", err)
	}

	return &appContext{
		Dir:        dir,
		Config:     cfg,
		Client:     client,
		Catalog:    catalog,
		Controller: ctl,
		Tasks:      tasks.NewSource(client),
		Journal:    store,
		Events:     events,
		FromCache:  fromCache,
	}, nil
}

// Close releases held resources.
func (a *appContext) Close() {
	if a.Journal != nil {
		_ = a.Journal.Close()
	}
}
