// internal/feed/scenario.go
package feed

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Scenario describes a synthetic experiment run: how many trials to emit,
// at what cadence, and how the rewards should evolve.
type Scenario struct {
	Name            string              `yaml:"name"`
	Metric          string              `yaml:"metric"`
	Direction       string              `yaml:"direction"`
	CV              bool                `yaml:"cv"`
	NFolds          int                 `yaml:"nFolds"`
	MaxTrials       int                 `yaml:"maxTrials"`
	IntervalSeconds float64             `yaml:"intervalSeconds"`
	StartReward     float64             `yaml:"startReward"`
	RewardDrift     float64             `yaml:"rewardDrift"`
	RewardJitter    float64             `yaml:"rewardJitter"`
	BaseElapsed     int                 `yaml:"baseElapsedSeconds"`
	ElapsedJitter   int                 `yaml:"elapsedJitterSeconds"`
	HyperParams     map[string][]string `yaml:"hyperParams"`
	Features        []string            `yaml:"features"`
	EarlyStopping   *ScenarioStopping   `yaml:"earlyStopping"`
}

// ScenarioStopping carries the synthetic run's early-stopping limits.
type ScenarioStopping struct {
	MaxNoImprovedTrials int     `yaml:"maxNoImprovedTrials"`
	MaxElapsedTime      float64 `yaml:"maxElapsedTime"`
}

// Interval returns the emission cadence, defaulting to one trial per second.
func (s Scenario) Interval() time.Duration {
	if s.IntervalSeconds <= 0 {
		return time.Second
	}
	return time.Duration(s.IntervalSeconds * float64(time.Second))
}

// DefaultScenario is the built-in run used when no scenario file is given.
func DefaultScenario() Scenario {
	return Scenario{
		Name:          "tabular-binary",
		Metric:        "auc",
		Direction:     "max",
		CV:            true,
		NFolds:        3,
		MaxTrials:     20,
		StartReward:   0.55,
		RewardDrift:   0.01,
		RewardJitter:  0.04,
		BaseElapsed:   60,
		ElapsedJitter: 45,
		HyperParams: map[string][]string{
			"max_depth":     {"3", "5", "7", "9"},
			"learning_rate": {"0.05", "0.1", "0.2"},
			"n_estimators":  {"100", "200", "400"},
		},
		Features: []string{"age", "income", "tenure", "balance", "score", "region", "segment", "visits"},
	}
}

// LoadScenario reads a YAML scenario file and fills unset fields from the
// default scenario.
func LoadScenario(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("could not read scenario file %q: %w", path, err)
	}

	sc := DefaultScenario()
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return Scenario{}, fmt.Errorf("could not parse scenario file %q: %w", path, err)
	}
	if sc.MaxTrials <= 0 {
		return Scenario{}, fmt.Errorf("scenario %q: maxTrials must be positive", path)
	}
	if sc.CV && sc.NFolds <= 0 {
		return Scenario{}, fmt.Errorf("scenario %q: cv requires a positive nFolds", path)
	}
	return sc, nil
}
