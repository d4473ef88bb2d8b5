package timer

import (
	"testing"
	"time"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name string
		d    time.Duration
		want string
	}{
		{"zero", 0, "0m"},
		{"under a minute rounds down", 59 * time.Second, "0m"},
		{"whole minutes", 125 * time.Second, "2m"},
		{"just under an hour", 59*time.Minute + 59*time.Second, "59m"},
		{"hours and minutes", 7384 * time.Second, "2h 3m"},
		{"exact hour", time.Hour, "1h 0m"},
		{"negative clamps to zero", -time.Minute, "0m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDuration(tt.d); got != tt.want {
				t.Errorf("FormatDuration(%v): got %q, want %q", tt.d, got, tt.want)
			}
		})
	}
}

func TestFormatHours(t *testing.T) {
	if got := FormatHours(1.5); got != "1.50h" {
		t.Errorf("FormatHours(1.5): got %q, want %q", got, "1.50h")
	}
}
