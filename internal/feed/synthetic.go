// internal/feed/synthetic.go
package feed

import (
	"context"
	"math/rand"
	"time"

	"github.com/mwiater/trialscope/internal/logging"
	"github.com/mwiater/trialscope/internal/store"
	"github.com/mwiater/trialscope/internal/trial"
)

// Synthetic emits one generated trial record per interval tick, simulating
// a live hyperparameter search. Rewards follow a drifting random walk so a
// run looks like a search that is slowly improving.
type Synthetic struct {
	scenario   Scenario
	dispatcher Dispatcher
	rng        *rand.Rand
	interval   time.Duration
}

// SyntheticOption configures the generator.
type SyntheticOption func(*Synthetic)

// WithSeed pins the random source for reproducible runs.
func WithSeed(seed int64) SyntheticOption {
	return func(s *Synthetic) { s.rng = rand.New(rand.NewSource(seed)) }
}

// WithInterval overrides the scenario's emission cadence. Zero means no
// pacing, which is what tests and headless replays want.
func WithInterval(d time.Duration) SyntheticOption {
	return func(s *Synthetic) { s.interval = d }
}

// NewSynthetic builds a generator for one scenario.
func NewSynthetic(sc Scenario, d Dispatcher, opts ...SyntheticOption) *Synthetic {
	s := &Synthetic{
		scenario:   sc,
		dispatcher: d,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
		interval:   sc.Interval(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run emits trials until the scenario is exhausted, an early-stopping limit
// trips, or the context is cancelled.
func (s *Synthetic) Run(ctx context.Context) error {
	sc := s.scenario
	reward := sc.StartReward
	best := 0.0
	noImproved := 0
	start := time.Now()

	maximize := sc.Direction != "min"
	if !maximize {
		best = 1.0
	}

	for trialNo := 1; trialNo <= sc.MaxTrials; trialNo++ {
		if s.interval > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(s.interval):
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}

		reward = s.step(reward)
		rec := s.record(trialNo, reward)

		improved := (maximize && rec.AvgReward > best) || (!maximize && rec.AvgReward < best)
		if improved {
			best = rec.AvgReward
			noImproved = 0
		} else {
			noImproved++
		}
		if stop := sc.EarlyStopping; stop != nil {
			rec.EarlyStopping = &trial.EarlyStopping{
				Status: &trial.EarlyStoppingStatus{
					BestReward:       best,
					NoImprovedTrials: noImproved,
					ElapsedTime:      time.Since(start).Seconds(),
				},
				Config: &trial.EarlyStoppingConfig{
					MaxNoImprovedTrials: stop.MaxNoImprovedTrials,
					MaxElapsedTime:      stop.MaxElapsedTime,
					Direction:           sc.Direction,
				},
			}
		}

		logging.LogAction("out", "synthetic-feed", store.ActionUpdate, rec)
		s.dispatcher.Dispatch(store.Action{Kind: store.ActionUpdate, Data: rec})

		if stop := sc.EarlyStopping; stop != nil {
			if stop.MaxNoImprovedTrials > 0 && noImproved >= stop.MaxNoImprovedTrials {
				logging.LogEvent("early stopping: %d trials without improvement", noImproved)
				return nil
			}
			if stop.MaxElapsedTime > 0 && time.Since(start).Seconds() >= stop.MaxElapsedTime {
				logging.LogEvent("early stopping: time limit reached")
				return nil
			}
		}
	}
	return nil
}

// step advances the reward walk, clamped to [0, 1].
func (s *Synthetic) step(reward float64) float64 {
	reward += s.scenario.RewardDrift + s.scenario.RewardJitter*(s.rng.Float64()*2-1)
	if reward < 0 {
		return 0
	}
	if reward > 1 {
		return 1
	}
	return reward
}

func (s *Synthetic) record(trialNo int, reward float64) *trial.TrialRecord {
	sc := s.scenario

	nFolds := 1
	if sc.CV {
		nFolds = sc.NFolds
	}
	models := make([]trial.FoldResult, nFolds)
	sum := 0.0
	for fold := 0; fold < nFolds; fold++ {
		foldReward := clamp01(reward + sc.RewardJitter*(s.rng.Float64()*2-1)/2)
		sum += foldReward
		models[fold] = trial.FoldResult{
			Reward:      foldReward,
			Fold:        fold,
			Importances: s.importances(),
		}
	}

	elapsed := sc.BaseElapsed
	if sc.ElapsedJitter > 0 {
		elapsed += s.rng.Intn(sc.ElapsedJitter)
	}

	params := make(map[string]string, len(sc.HyperParams))
	for name, values := range sc.HyperParams {
		if len(values) > 0 {
			params[name] = values[s.rng.Intn(len(values))]
		}
	}

	return &trial.TrialRecord{
		TrialNo:     trialNo,
		HyperParams: params,
		Models:      models,
		AvgReward:   sum / float64(nFolds),
		Elapsed:     elapsed,
		MetricName:  sc.Metric,
	}
}

func (s *Synthetic) importances() []trial.Importance {
	imps := make([]trial.Importance, len(s.scenario.Features))
	for i, name := range s.scenario.Features {
		imps[i] = trial.Importance{Name: name, Importance: s.rng.Float64()}
	}
	return trial.TopImportances(imps)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
