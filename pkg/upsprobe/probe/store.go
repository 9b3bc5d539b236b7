package probe

import (
	"fmt"
	"strconv"
	"strings"
)

// ─────────────────────────────────────────────────────────────────────────────
// Store — write-once value store with typed field access
// ─────────────────────────────────────────────────────────────────────────────

// Store maps normalised identifiers (no leading dot) to the raw string values
// returned by the transport. It is populated during the fetch rounds and
// read-only afterward.
//
// The typed accessors implement the mandatory-field contract: an absent or
// malformed field fails the whole run, naming the human-readable field
// description, so that the probe can never report a false healthy verdict off
// the back of a parse failure.
type Store map[string]string

// NewStore returns an empty store.
func NewStore() Store {
	return make(Store)
}

// Merge copies values into the store, normalising keys.
func (s Store) Merge(values map[string]string) {
	for oid, v := range values {
		s[strings.TrimPrefix(oid, ".")] = v
	}
}

// Lookup returns the raw value for an optional field.
func (s Store) Lookup(oid string) (string, bool) {
	v, ok := s[strings.TrimPrefix(oid, ".")]
	return v, ok
}

// Int extracts a mandatory integer field.
func (s Store) Int(oid, desc string) (int64, error) {
	raw, ok := s.Lookup(oid)
	if !ok {
		return 0, fmt.Errorf("%s (%s) missing from response", desc, oid)
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s (%s): %q is not an integer", desc, oid, raw)
	}
	return v, nil
}

// Count extracts a mandatory non-negative integer field (line and alarm
// counts).
func (s Store) Count(oid, desc string) (int64, error) {
	v, err := s.Int(oid, desc)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, fmt.Errorf("%s (%s): %d is negative", desc, oid, v)
	}
	return v, nil
}

// OID extracts a mandatory dotted-identifier field.
func (s Store) OID(oid, desc string) (string, error) {
	raw, ok := s.Lookup(oid)
	if !ok {
		return "", fmt.Errorf("%s (%s) missing from response", desc, oid)
	}
	v := strings.TrimPrefix(raw, ".")
	if !isDottedIdentifier(v) {
		return "", fmt.Errorf("%s (%s): %q is not an object identifier", desc, oid, raw)
	}
	return v, nil
}

func isDottedIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for _, label := range strings.Split(s, ".") {
		if label == "" {
			return false
		}
		for _, c := range label {
			if c < '0' || c > '9' {
				return false
			}
		}
	}
	return true
}
