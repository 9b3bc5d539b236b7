package models

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ─────────────────────────────────────────────────────────────────────────────
// Range — monitoring-plugin threshold range
// ─────────────────────────────────────────────────────────────────────────────

// Range is one parsed warning or critical threshold range in the standard
// monitoring-plugin syntax:
//
//	"10"      → alert when value < 0 or > 10
//	"10:"     → alert when value < 10
//	"~:10"    → alert when value > 10
//	"10:20"   → alert when value < 10 or > 20
//	"@10:20"  → alert when 10 ≤ value ≤ 20 (inverted)
//
// Spec is the original descriptor text, preserved verbatim for perfdata.
type Range struct {
	Spec   string
	Low    float64
	High   float64
	Inside bool
}

// ParseRange parses a single range descriptor. An empty descriptor is a
// configuration error — callers decide whether thresholds apply at all by the
// presence of the flag, not by empty list entries.
func ParseRange(spec string) (Range, error) {
	r := Range{Spec: spec, Low: 0, High: math.Inf(1)}

	s := spec
	if strings.HasPrefix(s, "@") {
		r.Inside = true
		s = s[1:]
	}
	if s == "" {
		return r, fmt.Errorf("empty threshold range")
	}

	low, high, found := strings.Cut(s, ":")
	if !found {
		v, err := strconv.ParseFloat(low, 64)
		if err != nil {
			return r, fmt.Errorf("threshold range %q: %w", spec, err)
		}
		r.High = v
		return r, nil
	}

	switch low {
	case "", "~":
		r.Low = math.Inf(-1)
		if low == "" {
			r.Low = 0
		}
	default:
		v, err := strconv.ParseFloat(low, 64)
		if err != nil {
			return r, fmt.Errorf("threshold range %q: %w", spec, err)
		}
		r.Low = v
	}

	if high != "" {
		v, err := strconv.ParseFloat(high, 64)
		if err != nil {
			return r, fmt.Errorf("threshold range %q: %w", spec, err)
		}
		r.High = v
	}

	if r.Low > r.High {
		return r, fmt.Errorf("threshold range %q: start exceeds end", spec)
	}
	return r, nil
}

// Alerts reports whether value violates the range.
func (r Range) Alerts(value float64) bool {
	inside := value >= r.Low && value <= r.High
	if r.Inside {
		return inside
	}
	return !inside
}

// ─────────────────────────────────────────────────────────────────────────────
// Threshold — warning/critical pair
// ─────────────────────────────────────────────────────────────────────────────

// Threshold pairs one warning range with one critical range. Classify applies
// critical first, matching the global severity precedence.
type Threshold struct {
	Warning  Range
	Critical Range
}

// Classify returns the severity contribution of value under this threshold.
func (t Threshold) Classify(value float64) Severity {
	if t.Critical.Alerts(value) {
		return Critical
	}
	if t.Warning.Alerts(value) {
		return Warning
	}
	return OK
}

// ParseThresholds parses comma-separated warning and critical range lists into
// paired thresholds. The two lists must be the same length; per-line count
// validation against the device's output line count happens later, once that
// count is known.
func ParseThresholds(warning, critical string) ([]Threshold, error) {
	warnSpecs := strings.Split(warning, ",")
	critSpecs := strings.Split(critical, ",")
	if len(warnSpecs) != len(critSpecs) {
		return nil, fmt.Errorf(
			"threshold lists differ in length: %d warning vs %d critical ranges",
			len(warnSpecs), len(critSpecs),
		)
	}

	out := make([]Threshold, 0, len(warnSpecs))
	for i := range warnSpecs {
		w, err := ParseRange(strings.TrimSpace(warnSpecs[i]))
		if err != nil {
			return nil, fmt.Errorf("warning threshold %d: %w", i+1, err)
		}
		c, err := ParseRange(strings.TrimSpace(critSpecs[i]))
		if err != nil {
			return nil, fmt.Errorf("critical threshold %d: %w", i+1, err)
		}
		out = append(out, Threshold{Warning: w, Critical: c})
	}
	return out, nil
}
