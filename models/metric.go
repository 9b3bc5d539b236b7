package models

import "strconv"

// Metric is a single named, unit-tagged numeric observation destined for the
// monitoring host's performance-data channel. Metrics are created by the
// section evaluators, never mutated afterward, and collected in discovery
// order (stable for a given input).
type Metric struct {
	// Label is the perfdata label, e.g. "battery_charge" or "output_load_1".
	Label string

	// Value is the observed value, already scaled to its display unit.
	Value float64

	// UOM is the unit-of-measure suffix ("s", "%", "c", "" …).
	UOM string

	// Warn and Crit carry the threshold range descriptors verbatim when a
	// threshold applies to this metric, empty otherwise.
	Warn string
	Crit string

	// Min is the declared minimum, "0" unless overridden.
	// Max is the declared maximum, empty when unbounded.
	Min string
	Max string
}

// NewMetric constructs a Metric with the default declared minimum of 0.
func NewMetric(label string, value float64, uom string) Metric {
	return Metric{Label: label, Value: value, UOM: uom, Min: "0"}
}

// FormatValue renders the value without spurious trailing zeroes, so that
// integral observations stay integral on the wire.
func (m Metric) FormatValue() string {
	return strconv.FormatFloat(m.Value, 'f', -1, 64)
}

// Result is the complete outcome of one evaluation pass: the verdict, the
// rendered report line, and all collected metrics. It is the sole value handed
// from the probe core to the output formatter.
type Result struct {
	Severity Severity
	Output   string
	Metrics  []Metric
}
