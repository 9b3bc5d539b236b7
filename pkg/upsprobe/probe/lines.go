package probe

import (
	"fmt"

	"github.com/vpbank/ups_probe/models"
	"github.com/vpbank/ups_probe/snmp/upsmib"
)

// input reads the upsInput group: the cumulative bad-line counter plus four
// metrics per input line. Metrics only; no severity contribution.
func (e *evaluation) input() error {
	bads, err := e.store.Int(upsmib.InputLineBads, "input line bads")
	if err != nil {
		return err
	}
	e.addMetric(models.NewMetric("input_line_bads", float64(bads), "c"))

	for i := 1; i <= e.inputLines; i++ {
		frequency, err := e.store.Int(upsmib.InputFrequency(i), fmt.Sprintf("input line %d frequency", i))
		if err != nil {
			return err
		}
		voltage, err := e.store.Int(upsmib.InputVoltage(i), fmt.Sprintf("input line %d voltage", i))
		if err != nil {
			return err
		}
		current, err := e.store.Int(upsmib.InputCurrent(i), fmt.Sprintf("input line %d current", i))
		if err != nil {
			return err
		}
		power, err := e.store.Int(upsmib.InputTruePower(i), fmt.Sprintf("input line %d true power", i))
		if err != nil {
			return err
		}

		e.addMetric(models.NewMetric(fmt.Sprintf("input_frequency_%d", i), float64(frequency)/10, ""))
		e.addMetric(models.NewMetric(fmt.Sprintf("input_voltage_%d", i), float64(voltage), ""))
		e.addMetric(models.NewMetric(fmt.Sprintf("input_current_%d", i), float64(current)/10, ""))
		e.addMetric(models.NewMetric(fmt.Sprintf("input_power_%d", i), float64(power), ""))
	}
	return nil
}

// output reads the upsOutput group. Each line's percent load is classified
// against the applicable threshold when thresholds are configured; the source
// code decides the section severity regardless of the per-line loads.
func (e *evaluation) output() error {
	source, err := e.store.Int(upsmib.OutputSource, "output source")
	if err != nil {
		return err
	}
	frequency, err := e.store.Int(upsmib.OutputFrequency, "output frequency")
	if err != nil {
		return err
	}
	e.addMetric(models.NewMetric("output_frequency", float64(frequency)/10, ""))

	var maxLoad int64
	for i := 1; i <= e.outputLines; i++ {
		voltage, err := e.store.Int(upsmib.OutputVoltage(i), fmt.Sprintf("output line %d voltage", i))
		if err != nil {
			return err
		}
		current, err := e.store.Int(upsmib.OutputCurrent(i), fmt.Sprintf("output line %d current", i))
		if err != nil {
			return err
		}
		power, err := e.store.Int(upsmib.OutputPower(i), fmt.Sprintf("output line %d power", i))
		if err != nil {
			return err
		}
		load, err := e.store.Int(upsmib.OutputPercentLoad(i), fmt.Sprintf("output line %d percent load", i))
		if err != nil {
			return err
		}
		if load > maxLoad {
			maxLoad = load
		}

		e.addMetric(models.NewMetric(fmt.Sprintf("output_voltage_%d", i), float64(voltage), ""))
		e.addMetric(models.NewMetric(fmt.Sprintf("output_current_%d", i), float64(current)/10, ""))
		e.addMetric(models.NewMetric(fmt.Sprintf("output_power_%d", i), float64(power), ""))

		loadMetric := models.NewMetric(fmt.Sprintf("output_load_%d", i), float64(load), "%")
		loadMetric.Max = "100"

		if len(e.thresholds) > 0 {
			threshold := e.thresholds[0]
			if len(e.thresholds) > 1 {
				threshold = e.thresholds[i-1]
			}
			loadMetric.Warn = threshold.Warning.Spec
			loadMetric.Crit = threshold.Critical.Spec

			if sev := threshold.Classify(float64(load)); sev != models.OK {
				e.report.Add(sev, fmt.Sprintf("output line %d load %d%%", i, load))
			}
		}
		e.addMetric(loadMetric)
	}

	fragment := "output " + upsmib.OutputSourceName(source)
	if e.outputLines > 0 {
		fragment += fmt.Sprintf(" (max load %d%%)", maxLoad)
	}

	severity := models.OK
	if source != upsmib.SourceNormal {
		severity = models.Critical
	}
	e.report.Add(severity, fragment)
	return nil
}

// bypass reads the upsBypass group. Metrics only, mirroring input.
func (e *evaluation) bypass() error {
	frequency, err := e.store.Int(upsmib.BypassFrequency, "bypass frequency")
	if err != nil {
		return err
	}
	e.addMetric(models.NewMetric("bypass_frequency", float64(frequency)/10, ""))

	for i := 1; i <= e.bypassLines; i++ {
		voltage, err := e.store.Int(upsmib.BypassVoltage(i), fmt.Sprintf("bypass line %d voltage", i))
		if err != nil {
			return err
		}
		current, err := e.store.Int(upsmib.BypassCurrent(i), fmt.Sprintf("bypass line %d current", i))
		if err != nil {
			return err
		}
		power, err := e.store.Int(upsmib.BypassPower(i), fmt.Sprintf("bypass line %d power", i))
		if err != nil {
			return err
		}

		e.addMetric(models.NewMetric(fmt.Sprintf("bypass_voltage_%d", i), float64(voltage), ""))
		e.addMetric(models.NewMetric(fmt.Sprintf("bypass_current_%d", i), float64(current)/10, ""))
		e.addMetric(models.NewMetric(fmt.Sprintf("bypass_power_%d", i), float64(power), ""))
	}
	return nil
}
