// internal/cli/watch.go
package trialscope

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mwiater/trialscope/dashboard"
	"github.com/mwiater/trialscope/internal/appconfig"
	"github.com/mwiater/trialscope/internal/feed"
	"github.com/mwiater/trialscope/internal/store"
	"github.com/spf13/cobra"
)

// watchCmd represents the 'watch' command.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch a synthetic tuning run in the live dashboard",
	Long: `The 'watch' command starts the live dashboard against a synthetic trial
feed. The feed follows the configured scenario (or a built-in default) and
records arrive at the configured interval until the run ends or early
stopping kicks in.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		sc, err := resolveScenario(cfg)
		if err != nil {
			return err
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		st := store.New()
		defer st.Close()

		runCfg := *cfg
		runCfg.Experiment = appconfig.Experiment{
			CV:         sc.CV,
			NFolds:     sc.NFolds,
			MetricName: sc.Metric,
			Direction:  sc.Direction,
		}

		var opts []feed.SyntheticOption
		if cfg.Feed.Seed != 0 {
			opts = append(opts, feed.WithSeed(cfg.Feed.Seed))
		}
		src := feed.NewSynthetic(sc, st, opts...)
		return dashboard.Run(ctx, &runCfg, st, src)
	},
}

// resolveScenario loads the configured scenario file, or falls back to the
// built-in default, and then applies config overrides on top.
func resolveScenario(cfg *appconfig.Config) (feed.Scenario, error) {
	sc := feed.DefaultScenario()
	if cfg.Feed.Scenario != "" {
		loaded, err := feed.LoadScenario(cfg.Feed.Scenario)
		if err != nil {
			return feed.Scenario{}, fmt.Errorf("load scenario: %w", err)
		}
		sc = loaded
	}

	if cfg.Experiment.MetricName != "" {
		sc.Metric = cfg.Experiment.MetricName
	}
	if cfg.Experiment.Direction != "" {
		sc.Direction = cfg.Experiment.Direction
	}
	if cfg.Experiment.CV {
		sc.CV = true
		sc.NFolds = cfg.Experiment.NFolds
	}
	if cfg.Feed.MaxTrials > 0 {
		sc.MaxTrials = cfg.Feed.MaxTrials
	}
	if cfg.Feed.IntervalSeconds > 0 {
		sc.IntervalSeconds = cfg.Feed.IntervalSeconds
	}
	return sc, nil
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
