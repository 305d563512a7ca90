// internal/summary/summary_test.go
package summary

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mwiater/trialscope/internal/trial"
)

func buildHistory() (*trial.History, trial.ExperimentConfig) {
	cfg := trial.ExperimentConfig{CV: true, NFolds: 2, MetricName: "auc", Direction: "max"}
	h := trial.NewHistory(cfg)
	h.Append(trial.TrialRecord{
		TrialNo: 1,
		Models: []trial.FoldResult{
			{Reward: 0.6, Fold: 0, Importances: []trial.Importance{{Name: "age", Importance: 0.8}, {Name: "income", Importance: 0.2}}},
			{Reward: 0.7, Fold: 1, Importances: []trial.Importance{{Name: "age", Importance: 0.6}, {Name: "income", Importance: 0.4}}},
		},
		AvgReward:   0.65,
		Elapsed:     60,
		MetricName:  "auc",
		HyperParams: map[string]string{"max_depth": "5"},
	})
	h.Append(trial.TrialRecord{
		TrialNo: 2,
		Models: []trial.FoldResult{
			{Reward: 0.8, Fold: 0, Importances: []trial.Importance{{Name: "age", Importance: 1.0}}},
			{Reward: 0.9, Fold: 1},
		},
		AvgReward:   0.85,
		Elapsed:     120,
		MetricName:  "auc",
		HyperParams: map[string]string{"max_depth": "7"},
	})
	return h, cfg
}

// TestBuild verifies trial counts, best-trial selection, running reward
// stats, and cross-fold importance averaging.
func TestBuild(t *testing.T) {
	h, cfg := buildHistory()
	s := Build(h, cfg)

	if s.Trials != 2 || s.BestTrialNo != 2 || s.BestReward != 0.85 {
		t.Fatalf("unexpected summary: %+v", s)
	}
	if s.WorstReward != 0.65 {
		t.Fatalf("unexpected worst reward: %v", s.WorstReward)
	}
	if s.Reward.Mean != 0.75 || s.Reward.Min != 0.65 || s.Reward.Max != 0.85 {
		t.Fatalf("unexpected reward stats: %+v", s.Reward)
	}
	if s.TotalElapsed.Seconds() != 180 {
		t.Fatalf("unexpected total elapsed: %v", s.TotalElapsed)
	}
	if s.BestParams["max_depth"] != "7" {
		t.Fatalf("unexpected best params: %+v", s.BestParams)
	}

	// age importance: (0.8 + 0.6 + 1.0) / 3 = 0.8; income: (0.2 + 0.4) / 2 = 0.3
	if len(s.TopFeatures) != 2 {
		t.Fatalf("expected 2 features, got %+v", s.TopFeatures)
	}
	if s.TopFeatures[0].Name != "age" || s.TopFeatures[0].Importance != 0.8 {
		t.Fatalf("unexpected top feature: %+v", s.TopFeatures[0])
	}
	if s.TopFeatures[1].Name != "income" || s.TopFeatures[1].Importance != 0.3 {
		t.Fatalf("unexpected second feature: %+v", s.TopFeatures[1])
	}
}

// TestBuildEmpty verifies the zero-trial summary stays well-formed.
func TestBuildEmpty(t *testing.T) {
	cfg := trial.ExperimentConfig{MetricName: "auc"}
	s := Build(trial.NewHistory(cfg), cfg)
	if s.Trials != 0 || s.BestTrialNo != 0 || len(s.TopFeatures) != 0 {
		t.Fatalf("unexpected empty summary: %+v", s)
	}
	if s.Direction != "max" {
		t.Fatalf("expected default direction max, got %q", s.Direction)
	}
}

// TestRunningStat verifies the Welford update against known values.
func TestRunningStat(t *testing.T) {
	var rs RunningStat
	for _, v := range []float64{2, 4, 4, 4, 5, 5, 7, 9} {
		rs.Update(v)
	}
	if rs.Count != 8 || rs.Mean != 5 || rs.Min != 2 || rs.Max != 9 {
		t.Fatalf("unexpected stat: %+v", rs)
	}
	if got := rs.StdDev(); got < 2.13 || got > 2.14 {
		t.Fatalf("unexpected stddev: %v", got)
	}
	if (RunningStat{}).StdDev() != 0 {
		t.Fatal("empty stddev should be zero")
	}
}

// TestRenderText verifies the terminal rendering includes the key figures.
func TestRenderText(t *testing.T) {
	h, cfg := buildHistory()
	var buf bytes.Buffer
	RenderText(&buf, Build(h, cfg))

	out := buf.String()
	for _, want := range []string{"auc", "2-fold cv", "trial #2", "0.8500", "max_depth = 7", "age"} {
		if !strings.Contains(out, want) {
			t.Fatalf("text summary missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	RenderText(&buf, Build(trial.NewHistory(cfg), cfg))
	if !strings.Contains(buf.String(), "No trials recorded") {
		t.Fatalf("expected empty-run notice:\n%s", buf.String())
	}
}

// TestGenerateReport verifies the HTML report embeds the summary figures
// and the machine-readable JSON payload.
func TestGenerateReport(t *testing.T) {
	h, cfg := buildHistory()
	html, err := GenerateReport(Build(h, cfg))
	if err != nil {
		t.Fatalf("GenerateReport failed: %v", err)
	}
	for _, want := range []string{"0.8500", "trial #2", "age", "summary-data", "best_trial_no"} {
		if !strings.Contains(html, want) {
			t.Fatalf("report missing %q", want)
		}
	}
}
