package probe

import (
	"fmt"
	"strings"

	"github.com/vpbank/ups_probe/models"
	"github.com/vpbank/ups_probe/snmp/upsmib"
)

// alarmEntry is one row of the active-alarm table after identifier resolution.
type alarmEntry struct {
	name     string
	raisedAt int64 // timestamp in protocol time units, relative to sysUpTime
	ignored  bool
}

// alarms reads the active-alarm table, filters it against the configured
// ignore set, and contributes the alarm fragments. Any non-ignored active
// alarm is critical.
func (e *evaluation) alarms() error {
	count, err := e.store.Count(upsmib.AlarmsPresent, "active alarm count")
	if err != nil {
		return err
	}
	e.addMetric(models.NewMetric("active_alarms", float64(count), "c"))

	entries := make([]alarmEntry, 0, count)
	ignored := 0
	for i := 1; i <= int(count); i++ {
		descr, err := e.store.OID(upsmib.AlarmDescr(i), fmt.Sprintf("alarm %d identifier", i))
		if err != nil {
			return err
		}
		raisedAt, err := e.store.Int(upsmib.AlarmTime(i), fmt.Sprintf("alarm %d activation time", i))
		if err != nil {
			return err
		}
		_, skip := e.ignoreAlarms[descr]
		if skip {
			ignored++
		}
		entries = append(entries, alarmEntry{
			name:     upsmib.AlarmName(descr),
			raisedAt: raisedAt,
			ignored:  skip,
		})
	}

	switch {
	case int(count) > ignored:
		e.report.Add(models.Critical, "alarms: "+e.renderAlarms(entries))
		if ignored > 0 {
			e.report.Add(models.OK, pluralizeIgnored(ignored))
		}
	case ignored > 0:
		e.report.Add(models.OK, pluralizeIgnored(ignored))
	default:
		e.report.Add(models.OK, "no alarms")
	}
	return nil
}

// renderAlarms joins the non-ignored alarm names. Consecutive alarms sharing
// one activation timestamp show the elapsed duration once, on the run's
// trailing member: a name carries "(<duration>)" only when it is the last in
// sequence or the following alarm was raised at a different time.
func (e *evaluation) renderAlarms(entries []alarmEntry) string {
	shown := entries[:0:0]
	for _, entry := range entries {
		if !entry.ignored {
			shown = append(shown, entry)
		}
	}

	parts := make([]string, 0, len(shown))
	for i, entry := range shown {
		name := entry.name
		if i == len(shown)-1 || shown[i+1].raisedAt != entry.raisedAt {
			name += "(" + FormatTicks(e.uptime-entry.raisedAt) + ")"
		}
		parts = append(parts, name)
	}
	return strings.Join(parts, ", ")
}

func pluralizeIgnored(n int) string {
	if n == 1 {
		return "1 alarm ignored"
	}
	return fmt.Sprintf("%d alarms ignored", n)
}
