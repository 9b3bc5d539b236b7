package probe

import "fmt"

// Duration band boundaries and divisors, in protocol time units (1/100 s).
// Rounding is always upward within the chosen band.
const (
	secondTicks = 100
	minuteTicks = 60000
	hourTicks   = 360000
	dayTicks    = 8640000
)

// FormatTicks renders an elapsed duration given in protocol time units using
// the banded format: seconds below the minute band, then minutes, hours, days.
func FormatTicks(ticks int64) string {
	if ticks < 0 {
		ticks = 0
	}
	switch {
	case ticks < minuteTicks:
		return fmt.Sprintf("%ds", ceilDiv(ticks, secondTicks))
	case ticks < hourTicks:
		return fmt.Sprintf("%dmin", ceilDiv(ticks, minuteTicks))
	case ticks < dayTicks:
		return fmt.Sprintf("%dh", ceilDiv(ticks, hourTicks))
	default:
		return fmt.Sprintf("%dd", ceilDiv(ticks, dayTicks))
	}
}

func ceilDiv(a, b int64) int64 {
	return (a + b - 1) / b
}
