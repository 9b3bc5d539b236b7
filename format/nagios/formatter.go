// Package nagios renders an evaluation result in the monitoring-plugin output
// convention: one line of report text, optionally followed by performance
// data behind a pipe, with the verdict carried in the process exit code.
package nagios

import (
	"strings"

	"github.com/vpbank/ups_probe/models"
)

// Config controls Formatter behaviour.
type Config struct {
	// NoPerfData suppresses the performance-data section entirely.
	NoPerfData bool
}

// Formatter serialises a models.Result into the plugin output line.
type Formatter struct {
	cfg Config
}

// New constructs a Formatter.
func New(cfg Config) *Formatter {
	return &Formatter{cfg: cfg}
}

// Format renders the single output line for result.
func (f *Formatter) Format(result models.Result) string {
	if f.cfg.NoPerfData || len(result.Metrics) == 0 {
		return result.Output
	}
	return result.Output + " | " + PerfData(result.Metrics)
}

// PerfData renders metrics as space-separated perfdata tokens:
//
//	label=value[uom];[warn];[crit];[min];[max]
//
// Trailing empty fields are trimmed per the plugin guidelines.
func PerfData(metrics []models.Metric) string {
	tokens := make([]string, 0, len(metrics))
	for _, m := range metrics {
		fields := []string{
			m.Label + "=" + m.FormatValue() + m.UOM,
			m.Warn,
			m.Crit,
			m.Min,
			m.Max,
		}
		for len(fields) > 1 && fields[len(fields)-1] == "" {
			fields = fields[:len(fields)-1]
		}
		tokens = append(tokens, strings.Join(fields, ";"))
	}
	return strings.Join(tokens, " ")
}
