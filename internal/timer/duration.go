package timer

import (
	"fmt"
	"time"
)

// FormatDuration renders an elapsed duration in whole minutes, rounding
// down: "2m" under an hour, "2h 3m" above.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	minutes := int(d / time.Minute)
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

// FormatHours renders a fractional-hours value the way the backend
// reports it, e.g. "1.25h".
func FormatHours(hours float64) string {
	return fmt.Sprintf("%.2fh", hours)
}
