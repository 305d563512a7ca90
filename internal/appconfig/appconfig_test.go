// internal/appconfig/appconfig_test.go
package appconfig

import (
	"os"
	"testing"
	"time"
)

// TestLoad tests the Load function to ensure it correctly handles various
// scenarios, including valid and invalid configurations. It verifies that a
// valid configuration file is loaded with defaults applied, while files with
// invalid JSON, an inconsistent experiment section, or that are nonexistent
// result in an appropriate error. This test uses temporary files to simulate
// different configuration scenarios and asserts that the function behaves as
// expected in each case.
func TestLoad(t *testing.T) {
	validConfig := `{
        "experiment": {
            "cv": true,
            "nFolds": 3,
            "metricName": "auc",
            "direction": "max"
        },
        "feed": {
            "intervalSeconds": 0.5,
            "maxTrials": 50
        },
        "theme": "light",
        "showLoading": true
    }`
	tmpfile, err := os.CreateTemp("", "config.json")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())
	if _, err := tmpfile.Write([]byte(validConfig)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Load() with valid config failed: %v", err)
	}
	if !cfg.Experiment.CV || cfg.Experiment.NFolds != 3 {
		t.Fatalf("unexpected experiment section: %+v", cfg.Experiment)
	}
	if cfg.FeedInterval() != 500*time.Millisecond {
		t.Fatalf("expected 500ms feed interval, got %v", cfg.FeedInterval())
	}
	if cfg.MaxTrials() != 50 {
		t.Fatalf("expected 50 max trials, got %d", cfg.MaxTrials())
	}
	if cfg.ThemeName() != "light" {
		t.Fatalf("expected light theme, got %q", cfg.ThemeName())
	}
	if cfg.ConfigPath != tmpfile.Name() {
		t.Fatalf("expected ConfigPath %q, got %q", tmpfile.Name(), cfg.ConfigPath)
	}

	invalidJSON := `{ "experiment": {`
	tmpfile2, err := os.CreateTemp("", "config.json")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile2.Name())
	if _, err := tmpfile2.Write([]byte(invalidJSON)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile2.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(tmpfile2.Name()); err == nil {
		t.Fatal("Load() with invalid JSON should have failed")
	}

	cvNoFolds := `{ "experiment": { "cv": true } }`
	tmpfile3, err := os.CreateTemp("", "config.json")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile3.Name())
	if _, err := tmpfile3.Write([]byte(cvNoFolds)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile3.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(tmpfile3.Name()); err == nil {
		t.Fatal("Load() with cv enabled but no folds should have failed")
	}

	badDirection := `{ "experiment": { "direction": "sideways" } }`
	tmpfile4, err := os.CreateTemp("", "config.json")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile4.Name())
	if _, err := tmpfile4.Write([]byte(badDirection)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile4.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(tmpfile4.Name()); err == nil {
		t.Fatal("Load() with unknown direction should have failed")
	}

	if _, err := Load("nonexistent.json"); err == nil {
		t.Fatal("Load() with nonexistent file should have failed")
	}
}

// TestDefaults verifies the fallbacks applied when optional settings are
// omitted.
func TestDefaults(t *testing.T) {
	var cfg Config
	if cfg.FeedInterval() != time.Second {
		t.Fatalf("expected 1s default interval, got %v", cfg.FeedInterval())
	}
	if cfg.MaxTrials() != 20 {
		t.Fatalf("expected 20 default max trials, got %d", cfg.MaxTrials())
	}
	if cfg.ThemeName() != "dark" {
		t.Fatalf("expected dark default theme, got %q", cfg.ThemeName())
	}
	if cfg.LogFilePath() != "trialscope.log" {
		t.Fatalf("unexpected default log file: %q", cfg.LogFilePath())
	}
	tc := cfg.TrialConfig()
	if tc.MetricName != "reward" || !tc.Maximize() {
		t.Fatalf("unexpected trial config defaults: %+v", tc)
	}
}
