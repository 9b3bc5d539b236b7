package models_test

import (
	"testing"

	"github.com/vpbank/ups_probe/models"
)

func TestParseRange(t *testing.T) {
	cases := []struct {
		spec   string
		value  float64
		alerts bool
	}{
		// "10": alert when outside 0..10.
		{"10", 5, false},
		{"10", 10, false},
		{"10", 11, true},
		{"10", -1, true},

		// "10:": alert below 10.
		{"10:", 9, true},
		{"10:", 10, false},
		{"10:", 1e9, false},

		// "~:10": alert above 10, no lower bound.
		{"~:10", -50, false},
		{"~:10", 10, false},
		{"~:10", 10.5, true},

		// "10:20": alert outside 10..20.
		{"10:20", 9, true},
		{"10:20", 15, false},
		{"10:20", 21, true},

		// "@10:20": alert inside 10..20.
		{"@10:20", 15, true},
		{"@10:20", 10, true},
		{"@10:20", 9, false},
		{"@10:20", 21, false},
	}

	for _, tc := range cases {
		r, err := models.ParseRange(tc.spec)
		if err != nil {
			t.Fatalf("ParseRange(%q): %v", tc.spec, err)
		}
		if got := r.Alerts(tc.value); got != tc.alerts {
			t.Errorf("range %q: Alerts(%v) = %v, want %v", tc.spec, tc.value, got, tc.alerts)
		}
	}
}

func TestParseRangeErrors(t *testing.T) {
	for _, spec := range []string{"", "@", "abc", "20:10", "1:x"} {
		if _, err := models.ParseRange(spec); err == nil {
			t.Errorf("ParseRange(%q): expected error", spec)
		}
	}
}

func TestThresholdClassifyPrecedence(t *testing.T) {
	th := models.Threshold{
		Warning:  mustRange(t, "80"),
		Critical: mustRange(t, "90"),
	}

	cases := []struct {
		value float64
		want  models.Severity
	}{
		{50, models.OK},
		{80, models.OK},
		{85, models.Warning},
		{90, models.Warning},
		{95, models.Critical},
	}
	for _, tc := range cases {
		if got := th.Classify(tc.value); got != tc.want {
			t.Errorf("Classify(%v) = %v, want %v", tc.value, got, tc.want)
		}
	}
}

func TestParseThresholds(t *testing.T) {
	thresholds, err := models.ParseThresholds("70,75,80", "85,90,95")
	if err != nil {
		t.Fatalf("ParseThresholds: %v", err)
	}
	if len(thresholds) != 3 {
		t.Fatalf("got %d thresholds, want 3", len(thresholds))
	}
	if thresholds[1].Warning.Spec != "75" || thresholds[1].Critical.Spec != "90" {
		t.Errorf("threshold 2 = %q/%q, want 75/90",
			thresholds[1].Warning.Spec, thresholds[1].Critical.Spec)
	}
}

func TestParseThresholdsLengthMismatch(t *testing.T) {
	if _, err := models.ParseThresholds("70,80", "90"); err == nil {
		t.Fatal("expected error for mismatched list lengths")
	}
}

func mustRange(t *testing.T, spec string) models.Range {
	t.Helper()
	r, err := models.ParseRange(spec)
	if err != nil {
		t.Fatalf("ParseRange(%q): %v", spec, err)
	}
	return r
}
