package probe

import (
	"fmt"

	"github.com/vpbank/ups_probe/models"
	"github.com/vpbank/ups_probe/snmp/upsmib"
)

// battery reads the upsBattery group, emits its six metrics, and contributes
// the battery fragment. Battery health is never a warning: any status other
// than normal is critical.
func (e *evaluation) battery() error {
	status, err := e.store.Int(upsmib.BatteryStatus, "battery status")
	if err != nil {
		return err
	}
	seconds, err := e.store.Int(upsmib.SecondsOnBattery, "seconds on battery")
	if err != nil {
		return err
	}
	minutes, err := e.store.Int(upsmib.EstimatedMinutesRemain, "estimated minutes remaining")
	if err != nil {
		return err
	}
	charge, err := e.store.Int(upsmib.EstimatedChargeRemaining, "estimated charge remaining")
	if err != nil {
		return err
	}
	voltage, err := e.store.Int(upsmib.BatteryVoltage, "battery voltage")
	if err != nil {
		return err
	}
	current, err := e.store.Int(upsmib.BatteryCurrent, "battery current")
	if err != nil {
		return err
	}
	temperature, err := e.store.Int(upsmib.BatteryTemperature, "battery temperature")
	if err != nil {
		return err
	}

	e.addMetric(models.NewMetric("battery_seconds_on_battery", float64(seconds), "s"))
	e.addMetric(models.NewMetric("battery_minutes_remaining", float64(minutes), ""))
	chargeMetric := models.NewMetric("battery_charge", float64(charge), "%")
	chargeMetric.Max = "100"
	e.addMetric(chargeMetric)
	e.addMetric(models.NewMetric("battery_voltage", float64(voltage)/10, ""))
	e.addMetric(models.NewMetric("battery_current", float64(current)/10, ""))
	e.addMetric(models.NewMetric("battery_temperature", float64(temperature), ""))

	fragment := fmt.Sprintf("battery %s (%d%%; %dmin)",
		upsmib.BatteryStatusName(status), charge, minutes)

	severity := models.OK
	if status != upsmib.BatteryNormal {
		severity = models.Critical
	}
	e.report.Add(severity, fragment)
	return nil
}
