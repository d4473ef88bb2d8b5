package process

import (
	"context"

	"github.com/shopfloor-dev/shopfloor/internal/api"
	"github.com/shopfloor-dev/shopfloor/internal/config"
)

// FromConfig builds a Catalog from the cached catalog in config.yaml.
func FromConfig(entries []config.ProcessConfig) *Catalog {
	defs := make([]api.ProcessDefinition, 0, len(entries))
	for _, e := range entries {
		defs = append(defs, api.ProcessDefinition{
			Code:                e.Code,
			Name:                e.Name,
			IsGeneric:           e.IsGeneric,
			IsLastManufacturing: e.IsLastManufacturing,
			IsLastInstallation:  e.IsLastInstallation,
		})
	}
	return NewCatalog(defs)
}

// ToConfig converts API definitions into cacheable config entries.
func ToConfig(defs []api.ProcessDefinition) []config.ProcessConfig {
	out := make([]config.ProcessConfig, 0, len(defs))
	for _, d := range defs {
		out = append(out, config.ProcessConfig{
			Code:                d.Code,
			Name:                d.Name,
			IsGeneric:           d.IsGeneric,
			IsLastManufacturing: d.IsLastManufacturing,
			IsLastInstallation:  d.IsLastInstallation,
		})
	}
	return out
}

// Load fetches the catalog from the backend, falling back to the config
// cache when the backend is unreachable. The second return reports
// whether the cache was used.
func Load(ctx context.Context, client *api.Client, cached []config.ProcessConfig) (*Catalog, bool, error) {
	defs, err := client.ListProcesses(ctx)
	if err == nil && len(defs) > 0 {
		return NewCatalog(defs), false, nil
	}
	if len(cached) > 0 {
		return FromConfig(cached), true, nil
	}
	if err != nil {
		return nil, false, err
	}
	return NewCatalog(nil), false, nil
}
