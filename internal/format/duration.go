package format

import (
	"fmt"
	"time"
)

// ExecutionDuration formats a time.Duration for the per-session report lines.
// It shows microseconds for durations less than a millisecond, milliseconds
// for durations less than a second, and a second-rounded representation
// otherwise. Session runs routinely last tens of seconds; full nanosecond
// precision only adds noise there.
//
// Parameters:
//   - d: The duration to format.
//
// Returns:
//   - string: A formatted string representing the duration.
func ExecutionDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	} else if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.Round(10 * time.Millisecond).String()
}
