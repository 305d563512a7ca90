// internal/trial/types.go
// Package trial defines the record shapes produced by an experiment run and
// the append-only history built from them.
package trial

// MaxImportances caps how many feature importances are carried per fold.
const MaxImportances = 10

// Importance is a single named feature importance value.
type Importance struct {
	Name       string  `json:"name"`
	Importance float64 `json:"importance"`
}

// FoldResult holds the outcome of one cross-validation fold, or the single
// model result when cross-validation is disabled (Fold 0).
type FoldResult struct {
	Reward      float64      `json:"reward"`
	Fold        int          `json:"fold"`
	Importances []Importance `json:"importances,omitempty"`
}

// EarlyStoppingStatus reports the live early-stopping counters of a search.
type EarlyStoppingStatus struct {
	BestReward       float64 `json:"reward"`
	NoImprovedTrials int     `json:"noImprovedTrials"`
	ElapsedTime      float64 `json:"elapsedTime"`
}

// EarlyStoppingConfig mirrors the limits the search was started with.
type EarlyStoppingConfig struct {
	ExpectedReward      *float64 `json:"exceptedReward,omitempty"`
	MaxNoImprovedTrials int      `json:"maxNoImprovedTrials,omitempty"`
	MaxElapsedTime      float64  `json:"maxElapsedTime,omitempty"`
	Direction           string   `json:"direction,omitempty"`
}

// EarlyStopping bundles early-stopping status and configuration on a record.
type EarlyStopping struct {
	Status *EarlyStoppingStatus `json:"status,omitempty"`
	Config *EarlyStoppingConfig `json:"config,omitempty"`
}

// TrialRecord is one observation from a training or tuning run. TrialNo is
// monotonically increasing and unique within a run; Elapsed is whole seconds.
type TrialRecord struct {
	TrialNo       int               `json:"trialNo"`
	HyperParams   map[string]string `json:"hyperParams,omitempty"`
	Models        []FoldResult      `json:"models"`
	AvgReward     float64           `json:"avgReward"`
	Elapsed       int               `json:"elapsed"`
	MetricName    string            `json:"metricName"`
	EarlyStopping *EarlyStopping    `json:"earlyStopping,omitempty"`
}

// ExperimentConfig carries the run-wide settings fixed for the lifetime of a
// chart instance. NFolds is meaningful only when CV is true.
type ExperimentConfig struct {
	CV         bool   `json:"cv"`
	NFolds     int    `json:"nFolds"`
	MetricName string `json:"metricName,omitempty"`
	Direction  string `json:"direction,omitempty"`
}

// Maximize reports whether higher rewards are better for this experiment.
// An unset direction defaults to maximizing, matching metrics like auc.
func (c ExperimentConfig) Maximize() bool {
	return c.Direction != "min"
}
