// internal/summary/summary.go
package summary

import (
	"sort"
	"time"

	"github.com/mwiater/trialscope/internal/trial"
)

// ExperimentSummary is the aggregated view of one experiment run.
type ExperimentSummary struct {
	Name         string             `json:"name,omitempty"`
	MetricName   string             `json:"metric_name"`
	Direction    string             `json:"direction"`
	CV           bool               `json:"cv"`
	NFolds       int                `json:"n_folds,omitempty"`
	Trials       int                `json:"trials"`
	BestTrialNo  int                `json:"best_trial_no"`
	BestReward   float64            `json:"best_reward"`
	WorstReward  float64            `json:"worst_reward"`
	Reward       RunningStat        `json:"reward"`
	Elapsed      RunningStat        `json:"elapsed_seconds"`
	TotalElapsed time.Duration      `json:"-"`
	TopFeatures  []trial.Importance `json:"top_features,omitempty"`
	BestParams   map[string]string  `json:"best_params,omitempty"`
}

// Build aggregates an entire trial history. Feature importances are
// averaged across every fold of every trial, then truncated to the top
// entries the same way single records are.
func Build(h *trial.History, cfg trial.ExperimentConfig) ExperimentSummary {
	s := ExperimentSummary{
		MetricName: cfg.MetricName,
		Direction:  cfg.Direction,
		CV:         cfg.CV,
		NFolds:     cfg.NFolds,
		Trials:     h.Len(),
	}
	if s.Direction == "" {
		s.Direction = "max"
	}

	if h.Len() == 0 {
		return s
	}

	sums := map[string]float64{}
	counts := map[string]int{}
	var totalElapsed time.Duration

	for _, rec := range h.Trials() {
		s.Reward.Update(rec.AvgReward)
		s.Elapsed.Update(float64(rec.Elapsed))
		totalElapsed += time.Duration(rec.Elapsed) * time.Second
		if s.MetricName == "" {
			s.MetricName = rec.MetricName
		}
		for _, m := range rec.Models {
			for _, imp := range m.Importances {
				sums[imp.Name] += imp.Importance
				counts[imp.Name]++
			}
		}
	}
	s.TotalElapsed = totalElapsed

	if best := h.Best(); best != nil {
		s.BestTrialNo = best.TrialNo
		s.BestReward = best.AvgReward
		s.BestParams = best.HyperParams
	}
	if worst := h.Worst(); worst != nil {
		s.WorstReward = worst.AvgReward
	}

	avgImps := make([]trial.Importance, 0, len(sums))
	for name, sum := range sums {
		avgImps = append(avgImps, trial.Importance{Name: name, Importance: sum / float64(counts[name])})
	}
	sort.SliceStable(avgImps, func(i, j int) bool {
		if avgImps[i].Importance == avgImps[j].Importance {
			return avgImps[i].Name < avgImps[j].Name
		}
		return avgImps[i].Importance > avgImps[j].Importance
	})
	s.TopFeatures = trial.TopImportances(avgImps)

	return s
}
