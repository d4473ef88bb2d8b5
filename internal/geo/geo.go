// Package geo captures a best-effort location fix for timer starts.
// A fix is enrichment data only: failure to obtain one never blocks the
// transition that asked for it.
package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// CaptureTimeout is the hard budget for a single location read.
const CaptureTimeout = 5 * time.Second

// Fix is a single location reading. Low accuracy is acceptable.
type Fix struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Accuracy  float64 `json:"accuracy,omitempty"`
}

// Locator obtains a location fix. Implementations must respect ctx.
type Locator interface {
	Locate(ctx context.Context) (*Fix, error)
}

// ErrNoLocator indicates location capture is not configured on this host.
var ErrNoLocator = errors.New("geo: no location helper configured")

// CommandLocator shells out to a platform helper (CoreLocationCLI,
// termux-location, or similar) that prints a JSON fix on stdout.
type CommandLocator struct {
	// Command is split on whitespace; the first token is the binary.
	Command string
}

// Locate runs the helper under the capture timeout and parses its output.
func (l *CommandLocator) Locate(ctx context.Context) (*Fix, error) {
	if strings.TrimSpace(l.Command) == "" {
		return nil, ErrNoLocator
	}
	parts := strings.Fields(l.Command)

	ctx, cancel := context.WithTimeout(ctx, CaptureTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, parts[0], parts[1:]...).Output()
	if err != nil {
		return nil, fmt.Errorf("geo: running %s: %w", parts[0], err)
	}

	var fix Fix
	if err := json.Unmarshal(out, &fix); err != nil {
		return nil, fmt.Errorf("geo: parsing helper output: %w", err)
	}
	if fix.Latitude == 0 && fix.Longitude == 0 {
		return nil, errors.New("geo: helper returned an empty fix")
	}
	return &fix, nil
}

// NopLocator always reports that no fix is available. Used when location
// capture is disabled in config.
type NopLocator struct{}

// Locate implements Locator.
func (NopLocator) Locate(context.Context) (*Fix, error) { return nil, ErrNoLocator }
