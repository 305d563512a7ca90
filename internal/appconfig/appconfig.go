// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mwiater/trialscope/internal/trial"
)

const (
	// DefaultConfigPath is the default path to the application's configuration file.
	DefaultConfigPath = "config/config.json"
	// legacyConfigPath is the path to the configuration file used in previous versions.
	legacyConfigPath = "config.json"
	// defaultFeedInterval is the pacing between synthetic trial records when the config omits it.
	defaultFeedInterval = 1 * time.Second
	// defaultMaxTrials bounds a synthetic run when the config omits the value.
	defaultMaxTrials = 20
	// defaultMetricName is used when neither the config nor a scenario names the metric.
	defaultMetricName = "reward"
)

// Config represents the top-level application configuration.
type Config struct {
	Experiment  Experiment `json:"experiment"`
	Feed        Feed       `json:"feed"`
	Theme       string     `json:"theme,omitempty"`
	ShowLoading bool       `json:"showLoading"`
	Debug       bool       `json:"debug"`
	LogFile     string     `json:"logFile,omitempty"`
	ExportHTML  string     `json:"exportHtml,omitempty"`
	ConfigPath  string     `json:"-"`
}

// Experiment describes the run whose trials are being charted.
type Experiment struct {
	CV         bool   `json:"cv"`
	NFolds     int    `json:"nFolds,omitempty"`
	MetricName string `json:"metricName,omitempty"`
	Direction  string `json:"direction,omitempty"`
}

// Feed controls where trial records come from and how fast they arrive.
type Feed struct {
	IntervalSeconds float64 `json:"intervalSeconds,omitempty"`
	MaxTrials       int     `json:"maxTrials,omitempty"`
	Scenario        string  `json:"scenario,omitempty"`
	Seed            int64   `json:"seed,omitempty"`
}

// TrialConfig converts the experiment section into the form the chart
// pipeline consumes.
func (c Config) TrialConfig() trial.ExperimentConfig {
	cfg := trial.ExperimentConfig{
		CV:         c.Experiment.CV,
		NFolds:     c.Experiment.NFolds,
		MetricName: c.Experiment.MetricName,
		Direction:  c.Experiment.Direction,
	}
	if cfg.MetricName == "" {
		cfg.MetricName = defaultMetricName
	}
	return cfg
}

// FeedInterval returns the pacing between trial records, falling back to the default if not specified.
func (c Config) FeedInterval() time.Duration {
	if c.Feed.IntervalSeconds <= 0 {
		return defaultFeedInterval
	}
	return time.Duration(c.Feed.IntervalSeconds * float64(time.Second))
}

// MaxTrials returns the configured run length for synthetic feeds.
func (c Config) MaxTrials() int {
	if c.Feed.MaxTrials <= 0 {
		return defaultMaxTrials
	}
	return c.Feed.MaxTrials
}

// LogFilePath returns the path to the application log file, applying a default if not set.
func (c Config) LogFilePath() string {
	if path := c.LogFile; strings.TrimSpace(path) != "" {
		return path
	}
	return "trialscope.log"
}

// ThemeName returns the configured theme, applying the default if not set.
func (c Config) ThemeName() string {
	if t := strings.TrimSpace(c.Theme); t != "" {
		return t
	}
	return "dark"
}

// Load reads the application configuration from the specified path, with fallback to a legacy path.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}

	config, err := loadFromPath(path)
	if err == nil {
		config.ConfigPath = path
		return config, nil
	}

	if errors.Is(err, os.ErrNotExist) {
		if path == DefaultConfigPath {
			config, legacyErr := loadFromPath(legacyConfigPath)
			if legacyErr == nil {
				config.ConfigPath = legacyConfigPath
				return config, nil
			}
			if errors.Is(legacyErr, os.ErrNotExist) {
				return Config{}, fmt.Errorf("no configuration file found (searched %q and %q)", DefaultConfigPath, legacyConfigPath)
			}
			return Config{}, fmt.Errorf("could not read config file %q: %w", legacyConfigPath, legacyErr)
		}
		return Config{}, fmt.Errorf("no configuration file found at %q", path)
	}

	return Config{}, fmt.Errorf("could not read config file %q: %w", path, err)
}

// loadFromPath is a helper function that loads the configuration from a specific file path.
func loadFromPath(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	var config Config
	if err := json.NewDecoder(file).Decode(&config); err != nil {
		return Config{}, err
	}
	if config.Experiment.CV && config.Experiment.NFolds <= 0 {
		return Config{}, errors.New("experiment.nFolds must be positive when experiment.cv is enabled")
	}
	if config.Experiment.Direction != "" && config.Experiment.Direction != "max" && config.Experiment.Direction != "min" {
		return Config{}, fmt.Errorf("experiment.direction must be %q or %q, got %q", "max", "min", config.Experiment.Direction)
	}

	return config, nil
}
