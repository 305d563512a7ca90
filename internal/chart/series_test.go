// internal/chart/series_test.go
package chart

import (
	"strings"
	"testing"

	"github.com/mwiater/trialscope/internal/trial"
)

// TestBuildOptionsSingleModel verifies the cv=false derivation: one reward
// line series from the first model, elapsed minutes rounded to the nearest
// integer, and #-prefixed category labels.
func TestBuildOptionsSingleModel(t *testing.T) {
	history := []trial.TrialRecord{{
		TrialNo:    1,
		Models:     []trial.FoldResult{{Reward: 0.7}},
		AvgReward:  0.7,
		Elapsed:    100,
		MetricName: "auc",
	}}

	opts, err := BuildOptions(history, trial.ExperimentConfig{CV: false, MetricName: "auc"})
	if err != nil {
		t.Fatalf("BuildOptions failed: %v", err)
	}

	if len(opts.XAxis) != 1 || len(opts.XAxis[0].Data) != 1 || opts.XAxis[0].Data[0] != "#1" {
		t.Fatalf("unexpected x axis: %+v", opts.XAxis)
	}
	if len(opts.Series) != 2 {
		t.Fatalf("expected reward + elapsed series, got %d", len(opts.Series))
	}

	reward := opts.Series[0]
	if reward.Type != SeriesLine || reward.Name != "auc" || len(reward.Data) != 1 || reward.Data[0] != 0.7 {
		t.Fatalf("unexpected reward series: %+v", reward)
	}

	elapsed := opts.Series[1]
	if elapsed.Type != SeriesBar || elapsed.YAxisIndex != 1 {
		t.Fatalf("unexpected elapsed series shape: %+v", elapsed)
	}
	if len(elapsed.Data) != 1 || elapsed.Data[0] != 2 {
		t.Fatalf("expected 100s to round to 2 minutes, got %v", elapsed.Data)
	}
}

// TestBuildOptionsCrossValidation verifies the cv=true derivation: one
// scatter series per fold plus one averaged line series.
func TestBuildOptionsCrossValidation(t *testing.T) {
	history := []trial.TrialRecord{{
		TrialNo:    1,
		Models:     []trial.FoldResult{{Reward: 0.5, Fold: 0}, {Reward: 0.9, Fold: 1}},
		AvgReward:  0.7,
		Elapsed:    30,
		MetricName: "auc",
	}}

	opts, err := BuildOptions(history, trial.ExperimentConfig{CV: true, NFolds: 2, MetricName: "auc"})
	if err != nil {
		t.Fatalf("BuildOptions failed: %v", err)
	}

	// 2 fold scatters, 1 avg line, 1 elapsed bar.
	if len(opts.Series) != 4 {
		t.Fatalf("expected 4 series, got %d", len(opts.Series))
	}
	for fold := 0; fold < 2; fold++ {
		s := opts.Series[fold]
		if s.Type != SeriesScatter || len(s.Data) != 1 {
			t.Fatalf("unexpected fold series %d: %+v", fold, s)
		}
	}
	if opts.Series[0].Data[0] != 0.5 || opts.Series[1].Data[0] != 0.9 {
		t.Fatalf("unexpected fold rewards: %v %v", opts.Series[0].Data, opts.Series[1].Data)
	}

	avg := opts.Series[2]
	if avg.Type != SeriesLine || avg.Name != "avg auc" || avg.Data[0] != 0.7 {
		t.Fatalf("unexpected avg series: %+v", avg)
	}
}

// TestBuildOptionsSeriesLengths verifies the series-length invariant: label
// count, elapsed series, and every reward series match the history size.
func TestBuildOptionsSeriesLengths(t *testing.T) {
	var history []trial.TrialRecord
	for i := 1; i <= 5; i++ {
		history = append(history, trial.TrialRecord{
			TrialNo:   i,
			Models:    []trial.FoldResult{{Reward: 0.1}, {Reward: 0.2}, {Reward: 0.3}},
			AvgReward: 0.2,
			Elapsed:   i * 40,
		})
	}

	opts, err := BuildOptions(history, trial.ExperimentConfig{CV: true, NFolds: 3})
	if err != nil {
		t.Fatalf("BuildOptions failed: %v", err)
	}
	if len(opts.XAxis[0].Data) != len(history) {
		t.Fatalf("label count %d != history %d", len(opts.XAxis[0].Data), len(history))
	}
	for _, s := range opts.Series {
		if len(s.Data) != len(history) {
			t.Fatalf("series %q length %d != history %d", s.Name, len(s.Data), len(history))
		}
	}
	if len(opts.Legend.Data) != len(opts.Series) {
		t.Fatalf("legend entries %d != series %d", len(opts.Legend.Data), len(opts.Series))
	}
}

// TestBuildOptionsFoldMismatch verifies that a record with fewer fold
// results than nFolds fails loudly instead of plotting gaps.
func TestBuildOptionsFoldMismatch(t *testing.T) {
	history := []trial.TrialRecord{{
		TrialNo:   7,
		Models:    []trial.FoldResult{{Reward: 0.5}},
		AvgReward: 0.5,
	}}

	_, err := BuildOptions(history, trial.ExperimentConfig{CV: true, NFolds: 3})
	if err == nil {
		t.Fatal("expected fold mismatch error")
	}
	if !strings.Contains(err.Error(), "trial #7") {
		t.Fatalf("error should name the offending trial: %v", err)
	}

	if _, err := BuildOptions(history, trial.ExperimentConfig{CV: true, NFolds: 0}); err == nil {
		t.Fatal("expected error for cv with no folds")
	}

	empty := []trial.TrialRecord{{TrialNo: 1}}
	if _, err := BuildOptions(empty, trial.ExperimentConfig{}); err == nil {
		t.Fatal("expected error for record without model results")
	}
}

// TestBuildOptionsRounding verifies round-half-away-from-zero on the
// elapsed-minutes conversion.
func TestBuildOptionsRounding(t *testing.T) {
	history := []trial.TrialRecord{
		{TrialNo: 1, Models: []trial.FoldResult{{Reward: 0}}, Elapsed: 89},  // 1.48 -> 1
		{TrialNo: 2, Models: []trial.FoldResult{{Reward: 0}}, Elapsed: 90},  // 1.5  -> 2
		{TrialNo: 3, Models: []trial.FoldResult{{Reward: 0}}, Elapsed: 0},   // 0
		{TrialNo: 4, Models: []trial.FoldResult{{Reward: 0}}, Elapsed: 150}, // 2.5  -> 3
	}

	opts, err := BuildOptions(history, trial.ExperimentConfig{})
	if err != nil {
		t.Fatalf("BuildOptions failed: %v", err)
	}
	elapsed := opts.Series[len(opts.Series)-1]
	want := []float64{1, 2, 0, 3}
	for i, w := range want {
		if elapsed.Data[i] != w {
			t.Fatalf("elapsed[%d] = %v, want %v", i, elapsed.Data[i], w)
		}
	}
}
