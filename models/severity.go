// Package models defines the core data structures shared across all layers of
// the UPS probe. These types represent the canonical in-memory form of one
// evaluation pass; every other package depends on this package and nothing
// here depends on any other internal package.
package models

import "strings"

// ─────────────────────────────────────────────────────────────────────────────
// Severity
// ─────────────────────────────────────────────────────────────────────────────

// Severity is the four-level monitoring verdict. The ordering is significant:
// the overall severity of a run is the maximum of all section contributions
// and must never decrease once raised.
type Severity int

const (
	OK Severity = iota
	Warning
	Critical

	// Unknown is reserved for fatal configuration or data errors. It is never
	// produced by a section evaluator; a run either completes with one of the
	// three levels above or aborts with Unknown and no report body.
	Unknown
)

// String returns the conventional upper-case verdict name.
func (s Severity) String() string {
	switch s {
	case OK:
		return "OK"
	case Warning:
		return "WARNING"
	case Critical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// ExitCode maps a severity to the standard monitoring-plugin exit code.
func (s Severity) ExitCode() int {
	switch s {
	case OK:
		return 0
	case Warning:
		return 1
	case Critical:
		return 2
	default:
		return 3
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Report — severity-tagged fragment accumulator
// ─────────────────────────────────────────────────────────────────────────────

// Report accumulates human-readable fragments in three severity buckets and
// tracks the running overall severity. A fragment belongs to exactly one
// bucket for the lifetime of the run; the overall severity is monotonically
// non-decreasing as evaluators execute.
//
// The zero value is ready to use.
type Report struct {
	sev  Severity
	ok   []string
	warn []string
	crit []string
}

// Add appends fragment to the bucket for sev and escalates the overall
// severity. A Warning fragment is dropped entirely when the overall severity
// has already reached Critical: once critical, a later evaluator may not pull
// the verdict back down, and a warning clause on a critical line would only
// restate a weaker symptom of the same condition.
func (r *Report) Add(sev Severity, fragment string) {
	switch sev {
	case Critical:
		r.crit = append(r.crit, fragment)
		r.sev = Critical
	case Warning:
		if r.sev == Critical {
			return
		}
		r.warn = append(r.warn, fragment)
		r.sev = Warning
	default:
		r.ok = append(r.ok, fragment)
	}
}

// Severity returns the running overall severity.
func (r *Report) Severity() Severity {
	return r.sev
}

// Render assembles the final report line. On OK the head text (device
// identification) prefixes the normal fragments; on Warning and Critical the
// head is omitted and lower-severity buckets are appended behind their
// severity label, most severe first.
func (r *Report) Render(head string) string {
	switch r.sev {
	case Critical:
		var b strings.Builder
		b.WriteString(strings.Join(r.crit, ", "))
		if len(r.warn) > 0 {
			b.WriteString(", WARNING: ")
			b.WriteString(strings.Join(r.warn, ", "))
		}
		if len(r.ok) > 0 {
			b.WriteString(", OK: ")
			b.WriteString(strings.Join(r.ok, ", "))
		}
		return b.String()
	case Warning:
		out := strings.Join(r.warn, ", ")
		if len(r.ok) > 0 {
			out += ", OK: " + strings.Join(r.ok, ", ")
		}
		return out
	default:
		return head + ": " + strings.Join(r.ok, ", ")
	}
}
