// internal/cli/replay.go
package trialscope

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/mwiater/trialscope/dashboard"
	"github.com/mwiater/trialscope/internal/feed"
	"github.com/mwiater/trialscope/internal/store"
	"github.com/spf13/cobra"
)

// replayCmd represents the 'replay' command.
var replayCmd = &cobra.Command{
	Use:   "replay <records.jsonl>",
	Short: "Replay recorded trials in the live dashboard",
	Long: `The 'replay' command reads trial records from a JSONL file, one record
per line, and plays them into the live dashboard at the configured interval.
Invalid lines abort the replay with the offending line number.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		st := store.New()
		defer st.Close()

		src := feed.NewReplay(args[0], st, cfg.FeedInterval())
		return dashboard.Run(ctx, cfg, st, src)
	},
}

func init() {
	rootCmd.AddCommand(replayCmd)
}
