package process

import (
	"errors"
	"testing"

	"github.com/shopfloor-dev/shopfloor/internal/api"
	"github.com/shopfloor-dev/shopfloor/internal/config"
)

func catalog() *Catalog {
	return NewCatalog([]api.ProcessDefinition{
		{Code: "CUTTING", Name: "Cutting"},
		{Code: "ADMIN", Name: "Admin", IsGeneric: true},
		{Code: "FINAL_FIT", Name: "Final fit", IsLastInstallation: true},
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		code      string
		projectID string
		wantErr   bool
	}{
		{"non-generic with project", "CUTTING", "p1", false},
		{"non-generic without project", "CUTTING", "", true},
		{"generic without project", "ADMIN", "", false},
		{"unknown process", "WELDING", "p1", true},
		{"empty code", "", "p1", true},
		{"case-insensitive lookup", "cutting", "p1", false},
	}

	c := catalog()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Validate(tt.code, tt.projectID)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate(%q, %q): err = %v, wantErr %v", tt.code, tt.projectID, err, tt.wantErr)
			}
			if err != nil {
				var verr *ValidationError
				if !errors.As(err, &verr) {
					t.Errorf("expected *ValidationError, got %T", err)
				}
			}
		})
	}
}

func TestIsTerminal(t *testing.T) {
	c := catalog()
	def, ok := c.Lookup("FINAL_FIT")
	if !ok || !def.IsTerminal() {
		t.Errorf("FINAL_FIT should be terminal")
	}
	def, _ = c.Lookup("CUTTING")
	if def.IsTerminal() {
		t.Errorf("CUTTING should not be terminal")
	}
}

func TestAllSortedByDisplayName(t *testing.T) {
	all := catalog().All()
	if len(all) != 3 {
		t.Fatalf("expected 3 definitions, got %d", len(all))
	}
	if all[0].Name != "Admin" || all[1].Name != "Cutting" || all[2].Name != "Final fit" {
		t.Errorf("unexpected order: %v, %v, %v", all[0].Name, all[1].Name, all[2].Name)
	}
}

func TestConfigRoundTrip(t *testing.T) {
	entries := []config.ProcessConfig{
		{Code: "CUTTING", Name: "Cutting"},
		{Code: "ADMIN", Name: "Admin", IsGeneric: true},
	}
	c := FromConfig(entries)
	if c.Len() != 2 {
		t.Fatalf("expected 2 definitions, got %d", c.Len())
	}
	def, ok := c.Lookup("ADMIN")
	if !ok || !def.IsGeneric {
		t.Errorf("ADMIN should be generic after round trip")
	}

	back := ToConfig([]api.ProcessDefinition{{Code: "X", Name: "X", IsLastManufacturing: true}})
	if len(back) != 1 || !back[0].IsLastManufacturing {
		t.Errorf("ToConfig dropped the terminal flag")
	}
}
