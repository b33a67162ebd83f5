package util

import (
	"fmt"
	"time"
)

// FormatDuration renders a duration for timing logs.
//
// Below a microsecond it reports nanoseconds, below 5ms microseconds, below
// one second milliseconds. Above a minute it reports minutes and seconds;
// otherwise seconds followed by the sub-second remainder.
func FormatDuration(d time.Duration) string {
	switch {
	case d == 0:
		return "no time (0)"
	case d < time.Microsecond:
		return plural(d.Nanoseconds(), "nanosecond")
	case d < 5*time.Millisecond:
		return plural(d.Microseconds(), "microsecond")
	case d < time.Second:
		return plural(d.Milliseconds(), "millisecond")
	case d > time.Minute:
		secs := int64(d / time.Second)
		return plural(secs/60, "minute") + " " + plural(secs%60, "second")
	}

	s := plural(int64(d/time.Second), "second")
	if rem := d % time.Second; rem != 0 {
		s += " " + FormatDuration(rem)
	}
	return s
}

func plural(n int64, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
