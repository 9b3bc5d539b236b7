// Package upsmib holds the RFC 1628 UPS-MIB identifiers and the static
// code→label tables the probe needs to render device state. Everything here is
// pure data: the tables are built once at process start and never branch the
// evaluation logic beyond the codes themselves.
package upsmib

import (
	"fmt"
	"strconv"
	"strings"
)

// ─────────────────────────────────────────────────────────────────────────────
// Scalar OIDs (instance suffix .0 included)
// ─────────────────────────────────────────────────────────────────────────────

const (
	// SNMPv2-MIB — reference clock for alarm/test elapsed durations.
	SysUpTime = "1.3.6.1.2.1.1.3.0"

	// upsIdent group — optional, used only for the report head text.
	IdentManufacturer = "1.3.6.1.2.1.33.1.1.1.0"
	IdentModel        = "1.3.6.1.2.1.33.1.1.2.0"
	IdentName         = "1.3.6.1.2.1.33.1.1.5.0"

	// upsBattery group.
	BatteryStatus            = "1.3.6.1.2.1.33.1.2.1.0"
	SecondsOnBattery         = "1.3.6.1.2.1.33.1.2.2.0"
	EstimatedMinutesRemain   = "1.3.6.1.2.1.33.1.2.3.0"
	EstimatedChargeRemaining = "1.3.6.1.2.1.33.1.2.4.0"
	BatteryVoltage           = "1.3.6.1.2.1.33.1.2.5.0" // 0.1 V
	BatteryCurrent           = "1.3.6.1.2.1.33.1.2.6.0" // 0.1 A
	BatteryTemperature       = "1.3.6.1.2.1.33.1.2.7.0" // degrees C

	// upsInput group.
	InputLineBads = "1.3.6.1.2.1.33.1.3.1.0"
	InputNumLines = "1.3.6.1.2.1.33.1.3.2.0"

	// upsOutput group.
	OutputSource    = "1.3.6.1.2.1.33.1.4.1.0"
	OutputFrequency = "1.3.6.1.2.1.33.1.4.2.0" // 0.1 Hz
	OutputNumLines  = "1.3.6.1.2.1.33.1.4.3.0"

	// upsBypass group.
	BypassFrequency = "1.3.6.1.2.1.33.1.5.1.0" // 0.1 Hz
	BypassNumLines  = "1.3.6.1.2.1.33.1.5.2.0"

	// upsAlarm group.
	AlarmsPresent = "1.3.6.1.2.1.33.1.6.1.0"

	// upsTest group.
	TestID             = "1.3.6.1.2.1.33.1.7.1.0"
	TestResultsSummary = "1.3.6.1.2.1.33.1.7.3.0"
	TestStartTime      = "1.3.6.1.2.1.33.1.7.5.0"
)

// Table entry prefixes. Rows are addressed as <prefix>.<column>.<index>.
const (
	inputEntry  = "1.3.6.1.2.1.33.1.3.3.1"
	outputEntry = "1.3.6.1.2.1.33.1.4.4.1"
	bypassEntry = "1.3.6.1.2.1.33.1.5.3.1"
	alarmEntry  = "1.3.6.1.2.1.33.1.6.2.1"

	wellKnownAlarmPrefix = "1.3.6.1.2.1.33.1.6.3"
	wellKnownTestPrefix  = "1.3.6.1.2.1.33.1.7.7"
)

// Per-line column accessors. Line and alarm indexes are 1-based, as in the MIB.

func InputFrequency(line int) string { return col(inputEntry, 2, line) } // 0.1 Hz
func InputVoltage(line int) string   { return col(inputEntry, 3, line) } // V RMS
func InputCurrent(line int) string   { return col(inputEntry, 4, line) } // 0.1 A
func InputTruePower(line int) string { return col(inputEntry, 5, line) } // W

func OutputVoltage(line int) string     { return col(outputEntry, 2, line) } // V RMS
func OutputCurrent(line int) string     { return col(outputEntry, 3, line) } // 0.1 A
func OutputPower(line int) string       { return col(outputEntry, 4, line) } // W
func OutputPercentLoad(line int) string { return col(outputEntry, 5, line) } // %

func BypassVoltage(line int) string { return col(bypassEntry, 2, line) } // V RMS
func BypassCurrent(line int) string { return col(bypassEntry, 3, line) } // 0.1 A
func BypassPower(line int) string   { return col(bypassEntry, 4, line) } // W

func AlarmDescr(row int) string { return col(alarmEntry, 2, row) } // OID value
func AlarmTime(row int) string  { return col(alarmEntry, 3, row) } // TimeStamp

func col(entry string, column, index int) string {
	return fmt.Sprintf("%s.%d.%d", entry, column, index)
}

// ─────────────────────────────────────────────────────────────────────────────
// Enumeration tables
// ─────────────────────────────────────────────────────────────────────────────

// Battery status codes (upsBatteryStatus).
const (
	BatteryUnknown  = 1
	BatteryNormal   = 2
	BatteryLow      = 3
	BatteryDepleted = 4
)

var batteryStatusNames = map[int64]string{
	BatteryUnknown:  "unknown",
	BatteryNormal:   "normal",
	BatteryLow:      "low",
	BatteryDepleted: "depleted",
}

// BatteryStatusName returns the label for an upsBatteryStatus code.
func BatteryStatusName(code int64) string {
	if name, ok := batteryStatusNames[code]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", code)
}

// Output source codes (upsOutputSource).
const (
	SourceOther   = 1
	SourceNone    = 2
	SourceNormal  = 3
	SourceBypass  = 4
	SourceBattery = 5
	SourceBooster = 6
	SourceReducer = 7
)

var outputSourceNames = map[int64]string{
	SourceOther:   "other",
	SourceNone:    "none",
	SourceNormal:  "normal",
	SourceBypass:  "bypass",
	SourceBattery: "battery",
	SourceBooster: "booster",
	SourceReducer: "reducer",
}

// OutputSourceName returns the label for an upsOutputSource code.
func OutputSourceName(code int64) string {
	if name, ok := outputSourceNames[code]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", code)
}

// Self-test result summary codes (upsTestResultsSummary).
const (
	TestDonePass         = 1
	TestDoneWarning      = 2
	TestDoneError        = 3
	TestAborted          = 4
	TestInProgress       = 5
	TestNoTestsInitiated = 6
)

// wellKnownAlarms holds the 24 upsWellKnownAlarms names indexed by their final
// sub-identifier under 1.3.6.1.2.1.33.1.6.3.
var wellKnownAlarms = [...]string{
	1:  "BatteryBad",
	2:  "OnBattery",
	3:  "LowBattery",
	4:  "DepletedBattery",
	5:  "TempBad",
	6:  "InputBad",
	7:  "OutputBad",
	8:  "OutputOverload",
	9:  "OnBypass",
	10: "BypassBad",
	11: "OutputOffAsRequested",
	12: "UpsOffAsRequested",
	13: "ChargerFailed",
	14: "UpsOutputOff",
	15: "UpsSystemOff",
	16: "FanFailure",
	17: "FuseFailure",
	18: "GeneralFault",
	19: "DiagnosticTestFailed",
	20: "CommunicationsLost",
	21: "AwaitingPower",
	22: "ShutdownPending",
	23: "ShutdownImminent",
	24: "TestInProgress",
}

// NumWellKnownAlarms is the size of the fixed upsWellKnownAlarms namespace.
const NumWellKnownAlarms = len(wellKnownAlarms) - 1

// WellKnownAlarmOID returns the full identifier for well-known alarm n
// (1-based), or "" when n is outside the namespace.
func WellKnownAlarmOID(n int) string {
	if n < 1 || n > NumWellKnownAlarms {
		return ""
	}
	return fmt.Sprintf("%s.%d", wellKnownAlarmPrefix, n)
}

// AlarmName resolves an upsAlarmDescr identifier to its well-known name. The
// raw identifier is returned unchanged for vendor-specific alarms.
func AlarmName(oid string) string {
	oid = strings.TrimPrefix(oid, ".")
	if n := wellKnownIndex(oid, wellKnownAlarmPrefix); n >= 1 && n <= NumWellKnownAlarms {
		return wellKnownAlarms[n]
	}
	return oid
}

// wellKnownIndex extracts the final sub-identifier when oid is exactly
// <prefix>.<n>, returning 0 otherwise.
func wellKnownIndex(oid, prefix string) int {
	rest, ok := strings.CutPrefix(oid, prefix+".")
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(rest)
	if err != nil {
		return 0
	}
	return n
}

// AlarmOIDForName resolves a well-known alarm name (case-insensitive) to its
// identifier, or "" when the name is not in the fixed namespace.
func AlarmOIDForName(name string) string {
	for i := 1; i <= NumWellKnownAlarms; i++ {
		if strings.EqualFold(wellKnownAlarms[i], name) {
			return WellKnownAlarmOID(i)
		}
	}
	return ""
}

// wellKnownTests holds the five upsWellKnownTests names indexed by their final
// sub-identifier under 1.3.6.1.2.1.33.1.7.7.
var wellKnownTests = [...]string{
	1: "NoTestsInitiated",
	2: "AbortTestInProgress",
	3: "GeneralSystemsTest",
	4: "QuickBatteryTest",
	5: "DeepBatteryCalibration",
}

// TestName resolves an upsTestId identifier to its well-known name, falling
// back to the raw identifier.
func TestName(oid string) string {
	oid = strings.TrimPrefix(oid, ".")
	if n := wellKnownIndex(oid, wellKnownTestPrefix); n >= 1 && n < len(wellKnownTests) {
		return wellKnownTests[n]
	}
	return oid
}

// IsNoTestsInitiated reports whether an upsTestId identifier names the
// NoTestsInitiated well-known test.
func IsNoTestsInitiated(oid string) bool {
	return strings.TrimPrefix(oid, ".") == wellKnownTestPrefix+".1"
}
