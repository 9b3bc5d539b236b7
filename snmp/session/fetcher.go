package session

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gosnmp/gosnmp"
)

// MaxOIDsPerRequest bounds a single Get request. Agents are not required to
// answer arbitrarily large requests, so any identifier list is sliced into
// batches of at most this size before going on the wire.
const MaxOIDsPerRequest = 40

// ─────────────────────────────────────────────────────────────────────────────
// Fetcher interface
// ─────────────────────────────────────────────────────────────────────────────

// Fetcher retrieves named values from the device. Identifiers that the agent
// reports as absent (noSuchObject, noSuchInstance, endOfMibView) are omitted
// from the result rather than surfaced as errors; only transport failures are
// errors. Tests inject fakes through this interface.
type Fetcher interface {
	Fetch(ctx context.Context, oids []string) (map[string]string, error)
}

// ─────────────────────────────────────────────────────────────────────────────
// Getter — the slice of gosnmp the fetcher uses
// ─────────────────────────────────────────────────────────────────────────────

// Getter is the single gosnmp operation the fetcher depends on.
// *gosnmp.GoSNMP satisfies it.
type Getter interface {
	Get(oids []string) (*gosnmp.SnmpPacket, error)
}

// ─────────────────────────────────────────────────────────────────────────────
// SNMPFetcher — production implementation
// ─────────────────────────────────────────────────────────────────────────────

// SNMPFetcher is the production Fetcher backed by a connected gosnmp session.
type SNMPFetcher struct {
	conn   Getter
	logger *slog.Logger
}

// NewFetcher wraps a connected session. If logger is nil, a no-op logger is
// substituted so the fetcher never panics on a nil receiver.
func NewFetcher(conn Getter, logger *slog.Logger) *SNMPFetcher {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(noopWriter{}, nil))
	}
	return &SNMPFetcher{conn: conn, logger: logger}
}

// Fetch implements Fetcher. The identifier list is sliced into batches of
// MaxOIDsPerRequest; the responses are merged into one map keyed by the
// normalised identifier (no leading dot).
func (f *SNMPFetcher) Fetch(ctx context.Context, oids []string) (map[string]string, error) {
	out := make(map[string]string, len(oids))
	start := time.Now()

	batches := 0
	for _, batch := range SplitBatches(oids, MaxOIDsPerRequest) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		pkt, err := f.conn.Get(batch)
		if err != nil {
			return nil, fmt.Errorf("snmp get (%d oids): %w", len(batch), err)
		}
		batches++
		for _, pdu := range pkt.Variables {
			value, ok := pduString(pdu)
			if !ok {
				continue
			}
			out[strings.TrimPrefix(pdu.Name, ".")] = value
		}
	}

	f.logger.Debug("fetch completed",
		"requested", len(oids),
		"received", len(out),
		"batches", batches,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return out, nil
}

// SplitBatches slices oids into consecutive chunks of at most size elements.
// The chunks alias the input slice.
func SplitBatches(oids []string, size int) [][]string {
	if size <= 0 || len(oids) == 0 {
		return nil
	}
	batches := make([][]string, 0, (len(oids)+size-1)/size)
	for i := 0; i < len(oids); i += size {
		end := i + size
		if end > len(oids) {
			end = len(oids)
		}
		batches = append(batches, oids[i:end])
	}
	return batches
}

// ─────────────────────────────────────────────────────────────────────────────
// PDU value normalisation
// ─────────────────────────────────────────────────────────────────────────────

// pduString converts a PDU value to its canonical string form. The second
// return value is false for error-sentinel PDU types, which callers must treat
// as "identifier absent".
func pduString(pdu gosnmp.SnmpPDU) (string, bool) {
	switch pdu.Type {
	case gosnmp.NoSuchObject, gosnmp.NoSuchInstance, gosnmp.EndOfMibView, gosnmp.Null:
		return "", false
	case gosnmp.OctetString:
		if b, ok := pdu.Value.([]byte); ok {
			return string(b), true
		}
		return fmt.Sprint(pdu.Value), true
	case gosnmp.ObjectIdentifier:
		if s, ok := pdu.Value.(string); ok {
			return strings.TrimPrefix(s, "."), true
		}
		return fmt.Sprint(pdu.Value), true
	default:
		// Integer, Counter32, Gauge32, TimeTicks, Counter64 …
		if n := gosnmp.ToBigInt(pdu.Value); n != nil {
			return n.String(), true
		}
		return fmt.Sprint(pdu.Value), true
	}
}

type noopWriter struct{}

func (noopWriter) Write(p []byte) (int, error) { return len(p), nil }
