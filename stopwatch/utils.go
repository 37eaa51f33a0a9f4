package stopwatch

import (
	"fmt"
	"time"
)

// ErrDisplay is rendered in place of a time when the duration is invalid.
const ErrDisplay = "Er"

// FormatMinutes converts a duration into a zero-padded two-digit minute
// string. A negative duration is invalid input and renders ErrDisplay
// instead of a misleading time value.
func FormatMinutes(d time.Duration) string {
	if d < 0 {
		return ErrDisplay
	}
	return fmt.Sprintf("%02d", int(d.Minutes()))
}
