// Package probe implements the status interpretation and reporting engine of
// the UPS probe: the two-round value fetch, the typed field accessor over the
// fetched values, the six section evaluators, threshold application, and the
// severity aggregation that yields the final verdict.
//
// The pass is fully sequential. Severity is monotonically non-decreasing
// across the evaluator sequence (battery → input → output → bypass → alarms →
// self-test), and every report fragment lands in exactly one severity bucket.
package probe

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/vpbank/ups_probe/models"
	"github.com/vpbank/ups_probe/pkg/upsprobe/config"
	"github.com/vpbank/ups_probe/snmp/session"
	"github.com/vpbank/ups_probe/snmp/upsmib"
)

// fallbackIdent is used for the report head when the device exposes no
// identification at all.
const fallbackIdent = "UPS"

// ─────────────────────────────────────────────────────────────────────────────
// Probe
// ─────────────────────────────────────────────────────────────────────────────

// Probe runs one evaluation pass against a UPS agent.
type Probe struct {
	fetcher session.Fetcher
	cfg     *config.Config
	logger  *slog.Logger
}

// New constructs a Probe. If logger is nil, a no-op logger is substituted.
func New(fetcher session.Fetcher, cfg *config.Config, logger *slog.Logger) *Probe {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(noopWriter{}, nil))
	}
	return &Probe{fetcher: fetcher, cfg: cfg, logger: logger}
}

// Run executes the full pass: the fixed initial fetch, the computed follow-up
// fetch sized by the line and alarm counts, then every section evaluator in
// order, and finally the report rendering. Any error is fatal — no partial
// report is ever produced.
func (p *Probe) Run(ctx context.Context) (models.Result, error) {
	store := NewStore()

	values, err := p.fetcher.Fetch(ctx, initialOIDs())
	if err != nil {
		return models.Result{}, err
	}
	store.Merge(values)

	uptime, err := store.Int(upsmib.SysUpTime, "system uptime")
	if err != nil {
		return models.Result{}, err
	}
	inputLines, err := store.Count(upsmib.InputNumLines, "input line count")
	if err != nil {
		return models.Result{}, err
	}
	outputLines, err := store.Count(upsmib.OutputNumLines, "output line count")
	if err != nil {
		return models.Result{}, err
	}
	bypassLines, err := store.Count(upsmib.BypassNumLines, "bypass line count")
	if err != nil {
		return models.Result{}, err
	}
	alarmCount, err := store.Count(upsmib.AlarmsPresent, "active alarm count")
	if err != nil {
		return models.Result{}, err
	}

	// One threshold applies to every output line; otherwise the correspondence
	// must be exactly 1:1.
	if n := len(p.cfg.Thresholds); n > 1 && int64(n) != outputLines {
		return models.Result{}, fmt.Errorf(
			"%d thresholds configured for %d output lines (need 1 or %d)",
			n, outputLines, outputLines)
	}

	if followUp := followUpOIDs(int(inputLines), int(outputLines), int(bypassLines), int(alarmCount)); len(followUp) > 0 {
		values, err := p.fetcher.Fetch(ctx, followUp)
		if err != nil {
			return models.Result{}, err
		}
		store.Merge(values)
	}

	e := &evaluation{
		store:               store,
		uptime:              uptime,
		inputLines:          int(inputLines),
		outputLines:         int(outputLines),
		bypassLines:         int(bypassLines),
		thresholds:          p.cfg.Thresholds,
		ignoreAlarms:        p.cfg.IgnoreAlarms,
		suppressTestResults: p.cfg.SuppressTestResults,
	}

	steps := []func() error{e.battery, e.input, e.output, e.bypass, e.alarms, e.selfTest}
	for _, step := range steps {
		if err := step(); err != nil {
			return models.Result{}, err
		}
	}

	severity := e.report.Severity()
	p.logger.Debug("evaluation completed",
		"severity", severity.String(),
		"metrics", len(e.metrics),
	)
	return models.Result{
		Severity: severity,
		Output:   e.report.Render(identHead(store)),
		Metrics:  e.metrics,
	}, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// evaluation — shared state of one pass
// ─────────────────────────────────────────────────────────────────────────────

// evaluation carries the accumulators the section evaluators mutate: the
// three-bucket report with its running severity, and the ordered metric list.
type evaluation struct {
	store  Store
	uptime int64

	inputLines  int
	outputLines int
	bypassLines int

	thresholds          []models.Threshold
	ignoreAlarms        map[string]struct{}
	suppressTestResults bool

	report  models.Report
	metrics []models.Metric
}

func (e *evaluation) addMetric(m models.Metric) {
	e.metrics = append(e.metrics, m)
}

// ─────────────────────────────────────────────────────────────────────────────
// Fetch round identifier lists
// ─────────────────────────────────────────────────────────────────────────────

// initialOIDs is the fixed-shape first round: every scalar the evaluators
// need, the count fields that size the second round, and the optional ident
// fields for the report head.
func initialOIDs() []string {
	return []string{
		upsmib.SysUpTime,
		upsmib.IdentManufacturer,
		upsmib.IdentModel,
		upsmib.IdentName,
		upsmib.BatteryStatus,
		upsmib.SecondsOnBattery,
		upsmib.EstimatedMinutesRemain,
		upsmib.EstimatedChargeRemaining,
		upsmib.BatteryVoltage,
		upsmib.BatteryCurrent,
		upsmib.BatteryTemperature,
		upsmib.InputLineBads,
		upsmib.InputNumLines,
		upsmib.OutputSource,
		upsmib.OutputFrequency,
		upsmib.OutputNumLines,
		upsmib.BypassFrequency,
		upsmib.BypassNumLines,
		upsmib.AlarmsPresent,
		upsmib.TestID,
		upsmib.TestResultsSummary,
		upsmib.TestStartTime,
	}
}

// followUpOIDs computes the second round from the fetched counts: the per-line
// table columns and the per-alarm rows.
func followUpOIDs(inputLines, outputLines, bypassLines, alarms int) []string {
	oids := make([]string, 0, 4*inputLines+4*outputLines+3*bypassLines+2*alarms)
	for i := 1; i <= inputLines; i++ {
		oids = append(oids,
			upsmib.InputFrequency(i),
			upsmib.InputVoltage(i),
			upsmib.InputCurrent(i),
			upsmib.InputTruePower(i),
		)
	}
	for i := 1; i <= outputLines; i++ {
		oids = append(oids,
			upsmib.OutputVoltage(i),
			upsmib.OutputCurrent(i),
			upsmib.OutputPower(i),
			upsmib.OutputPercentLoad(i),
		)
	}
	for i := 1; i <= bypassLines; i++ {
		oids = append(oids,
			upsmib.BypassVoltage(i),
			upsmib.BypassCurrent(i),
			upsmib.BypassPower(i),
		)
	}
	for i := 1; i <= alarms; i++ {
		oids = append(oids, upsmib.AlarmDescr(i), upsmib.AlarmTime(i))
	}
	return oids
}

// identHead builds the report head text from the optional ident fields:
// the configured device name, else manufacturer and model, else a fixed
// placeholder.
func identHead(store Store) string {
	if name, ok := store.Lookup(upsmib.IdentName); ok && strings.TrimSpace(name) != "" {
		return strings.TrimSpace(name)
	}
	manufacturer, _ := store.Lookup(upsmib.IdentManufacturer)
	model, _ := store.Lookup(upsmib.IdentModel)
	if head := strings.TrimSpace(manufacturer + " " + model); head != "" {
		return head
	}
	return fallbackIdent
}

type noopWriter struct{}

func (noopWriter) Write(p []byte) (int, error) { return len(p), nil }
