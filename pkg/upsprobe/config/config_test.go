package config_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vpbank/ups_probe/pkg/upsprobe/config"
)

func parse(t *testing.T, args ...string) (*config.Config, error) {
	t.Helper()
	return config.FromArgs(args, io.Discard)
}

func TestFromArgsMinimal(t *testing.T) {
	cfg, err := parse(t, "-host", "ups1.example.net")
	if err != nil {
		t.Fatalf("FromArgs: %v", err)
	}
	if cfg.Session.Host != "ups1.example.net" {
		t.Errorf("host = %q", cfg.Session.Host)
	}
	if cfg.Session.Port != 161 || cfg.Session.Version != "2c" {
		t.Errorf("defaults: port %d version %q", cfg.Session.Port, cfg.Session.Version)
	}
	if cfg.Thresholds != nil {
		t.Errorf("unexpected thresholds: %v", cfg.Thresholds)
	}
}

func TestFromArgsErrors(t *testing.T) {
	cases := []struct {
		name string
		args []string
	}{
		{"missing host", nil},
		{"surplus operand", []string{"-host", "h", "leftover"}},
		{"bad version", []string{"-host", "h", "-version", "4"}},
		{"port out of range", []string{"-host", "h", "-port", "99999"}},
		{"warning without critical", []string{"-host", "h", "-warning", "80"}},
		{"critical without warning", []string{"-host", "h", "-critical", "90"}},
		{"threshold count mismatch", []string{"-host", "h", "-warning", "80,80", "-critical", "90"}},
		{"bad threshold range", []string{"-host", "h", "-warning", "x", "-critical", "90"}},
		{"bad ignore token", []string{"-host", "h", "-ignore-alarms", "NotAnAlarm"}},
		{"ignore number out of range", []string{"-host", "h", "-ignore-alarms", "99"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := parse(t, tc.args...); err == nil {
				t.Error("expected configuration error")
			}
		})
	}
}

func TestFromArgsThresholds(t *testing.T) {
	cfg, err := parse(t, "-host", "h", "-warning", "70,75", "-critical", "85,90")
	if err != nil {
		t.Fatalf("FromArgs: %v", err)
	}
	if len(cfg.Thresholds) != 2 {
		t.Fatalf("got %d thresholds, want 2", len(cfg.Thresholds))
	}
	if cfg.Thresholds[0].Warning.Spec != "70" || cfg.Thresholds[1].Critical.Spec != "90" {
		t.Errorf("thresholds parsed wrong: %+v", cfg.Thresholds)
	}
}

// All three ignore-token forms must resolve to the same identifier.
func TestParseIgnoreAlarmsEquivalence(t *testing.T) {
	wantOID := "1.3.6.1.2.1.33.1.6.3.2"

	for _, token := range []string{"2", "OnBattery", "onbattery", wantOID, "." + wantOID} {
		set, err := config.ParseIgnoreAlarms(token)
		if err != nil {
			t.Fatalf("ParseIgnoreAlarms(%q): %v", token, err)
		}
		if _, ok := set[wantOID]; !ok || len(set) != 1 {
			t.Errorf("ParseIgnoreAlarms(%q) = %v, want {%s}", token, set, wantOID)
		}
	}
}

func TestParseIgnoreAlarmsList(t *testing.T) {
	set, err := config.ParseIgnoreAlarms("OnBattery, 3 ,1.3.6.1.4.1.318.0.1")
	if err != nil {
		t.Fatalf("ParseIgnoreAlarms: %v", err)
	}
	for _, oid := range []string{
		"1.3.6.1.2.1.33.1.6.3.2",
		"1.3.6.1.2.1.33.1.6.3.3",
		"1.3.6.1.4.1.318.0.1",
	} {
		if _, ok := set[oid]; !ok {
			t.Errorf("set lacks %s", oid)
		}
	}
}

func TestDefaultsFileOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "defaults.yml")
	data := "" +
		"host: ups-from-file\n" +
		"community: secret\n" +
		"version: \"1\"\n" +
		"timeout_ms: 2500\n" +
		"retries: 3\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	// Explicit flags win over the file; the file fills the rest.
	cfg, err := parse(t, "-defaults", path, "-community", "override")
	if err != nil {
		t.Fatalf("FromArgs: %v", err)
	}
	if cfg.Session.Host != "ups-from-file" {
		t.Errorf("host = %q", cfg.Session.Host)
	}
	if cfg.Session.Community != "override" {
		t.Errorf("community = %q, want flag override", cfg.Session.Community)
	}
	if cfg.Session.Version != "1" {
		t.Errorf("version = %q", cfg.Session.Version)
	}
	if cfg.Session.Timeout != 2500*time.Millisecond {
		t.Errorf("timeout = %v", cfg.Session.Timeout)
	}
	if cfg.Session.Retries != 3 {
		t.Errorf("retries = %d", cfg.Session.Retries)
	}
}

func TestEnvDefaults(t *testing.T) {
	t.Setenv("UPSPROBE_COMMUNITY", "env-community")
	t.Setenv("UPSPROBE_PORT", "1161")

	cfg, err := parse(t, "-host", "h")
	if err != nil {
		t.Fatalf("FromArgs: %v", err)
	}
	if cfg.Session.Community != "env-community" {
		t.Errorf("community = %q", cfg.Session.Community)
	}
	if cfg.Session.Port != 1161 {
		t.Errorf("port = %d", cfg.Session.Port)
	}
}
