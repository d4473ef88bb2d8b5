// Package process holds the per-tenant catalog of permitted process codes
// and the client-side validation rules for binding a timer to a process.
package process

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopfloor-dev/shopfloor/internal/api"
)

// Definition describes one process code the current user may time against.
type Definition struct {
	Code                string
	Name                string
	IsGeneric           bool // no project required (admin/overhead time)
	IsLastManufacturing bool
	IsLastInstallation  bool
}

// IsTerminal reports whether completing this process should prompt for
// downstream-completion confirmation.
func (d Definition) IsTerminal() bool {
	return d.IsLastManufacturing || d.IsLastInstallation
}

// DisplayName returns the human name, falling back to the code.
func (d Definition) DisplayName() string {
	if d.Name != "" {
		return d.Name
	}
	return d.Code
}

// Catalog is the immutable allowed set of processes. Lookups are
// case-insensitive on code.
type Catalog struct {
	byCode  map[string]Definition
	ordered []Definition
}

// NewCatalog builds a Catalog from API definitions, sorted by name.
func NewCatalog(defs []api.ProcessDefinition) *Catalog {
	c := &Catalog{byCode: make(map[string]Definition, len(defs))}
	for _, d := range defs {
		def := Definition{
			Code:                d.Code,
			Name:                d.Name,
			IsGeneric:           d.IsGeneric,
			IsLastManufacturing: d.IsLastManufacturing,
			IsLastInstallation:  d.IsLastInstallation,
		}
		key := strings.ToUpper(def.Code)
		if _, dup := c.byCode[key]; dup {
			continue
		}
		c.byCode[key] = def
		c.ordered = append(c.ordered, def)
	}
	sort.Slice(c.ordered, func(i, j int) bool {
		return c.ordered[i].DisplayName() < c.ordered[j].DisplayName()
	})
	return c
}

// Lookup returns the definition for code, if it is in the allowed set.
func (c *Catalog) Lookup(code string) (Definition, bool) {
	d, ok := c.byCode[strings.ToUpper(code)]
	return d, ok
}

// All returns the definitions sorted by display name.
func (c *Catalog) All() []Definition {
	out := make([]Definition, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// Len returns the number of definitions in the catalog.
func (c *Catalog) Len() int { return len(c.ordered) }

// ValidationError is a client-side rejection raised before any network
// call is made. The message is shown to the user as-is.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// Validate checks that code names a permitted process and, for non-generic
// processes, that a project is bound. Returns the resolved definition.
func (c *Catalog) Validate(code, projectID string) (Definition, error) {
	if strings.TrimSpace(code) == "" {
		return Definition{}, &ValidationError{Reason: "select a process before starting the timer"}
	}
	def, ok := c.Lookup(code)
	if !ok {
		return Definition{}, &ValidationError{Reason: fmt.Sprintf("process %q is not available to you", code)}
	}
	if !def.IsGeneric && projectID == "" {
		return Definition{}, &ValidationError{
			Reason: fmt.Sprintf("process %s needs a project; pick one or use a generic process", def.DisplayName()),
		}
	}
	return def, nil
}
