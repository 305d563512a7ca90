// internal/trial/history.go
package trial

import "sort"

// History is an append-only sequence of trial records ordered by arrival.
// It tracks the best and worst trials under the experiment's optimize
// direction; it is not safe for concurrent use.
type History struct {
	maximize bool
	trials   []TrialRecord
}

// NewHistory creates an empty history for the given experiment settings.
func NewHistory(cfg ExperimentConfig) *History {
	return &History{maximize: cfg.Maximize()}
}

// Append adds a record and reports whether it improved on the best reward
// seen so far. The first record always counts as an improvement.
func (h *History) Append(rec TrialRecord) bool {
	improved := true
	if best := h.Best(); best != nil {
		if h.maximize {
			improved = rec.AvgReward > best.AvgReward
		} else {
			improved = rec.AvgReward < best.AvgReward
		}
	}
	h.trials = append(h.trials, rec)
	return improved
}

// Len returns the number of recorded trials.
func (h *History) Len() int { return len(h.trials) }

// Trials returns the accumulated records in arrival order. The returned
// slice is shared; callers must not mutate it.
func (h *History) Trials() []TrialRecord { return h.trials }

// Last returns the most recently appended record, or nil when empty.
func (h *History) Last() *TrialRecord {
	if len(h.trials) == 0 {
		return nil
	}
	return &h.trials[len(h.trials)-1]
}

// Best returns the trial with the best reward under the optimize direction,
// or nil when the history is empty.
func (h *History) Best() *TrialRecord {
	return h.pick(func(candidate, current float64) bool {
		if h.maximize {
			return candidate > current
		}
		return candidate < current
	})
}

// Worst returns the trial with the worst reward under the optimize
// direction, or nil when the history is empty.
func (h *History) Worst() *TrialRecord {
	return h.pick(func(candidate, current float64) bool {
		if h.maximize {
			return candidate < current
		}
		return candidate > current
	})
}

// Top returns up to n trials sorted from best to worst reward.
func (h *History) Top(n int) []TrialRecord {
	sorted := make([]TrialRecord, len(h.trials))
	copy(sorted, h.trials)
	sort.SliceStable(sorted, func(i, j int) bool {
		if h.maximize {
			return sorted[i].AvgReward > sorted[j].AvgReward
		}
		return sorted[i].AvgReward < sorted[j].AvgReward
	})
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

func (h *History) pick(better func(candidate, current float64) bool) *TrialRecord {
	if len(h.trials) == 0 {
		return nil
	}
	idx := 0
	for i := 1; i < len(h.trials); i++ {
		if better(h.trials[i].AvgReward, h.trials[idx].AvgReward) {
			idx = i
		}
	}
	return &h.trials[idx]
}

// TopImportances sorts importances by value descending and truncates the
// list to MaxImportances entries.
func TopImportances(imps []Importance) []Importance {
	sorted := make([]Importance, len(imps))
	copy(sorted, imps)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Importance > sorted[j].Importance
	})
	if len(sorted) > MaxImportances {
		sorted = sorted[:MaxImportances]
	}
	return sorted
}
