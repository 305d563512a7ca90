// internal/cli/summary.go
package trialscope

import (
	"bufio"
	"bytes"
	"fmt"
	"os"

	"github.com/mwiater/trialscope/internal/summary"
	"github.com/mwiater/trialscope/internal/trial"
	"github.com/spf13/cobra"
)

// summaryCmd represents the 'summary' command.
var summaryCmd = &cobra.Command{
	Use:   "summary <records.jsonl>",
	Short: "Summarize a recorded run",
	Long: `The 'summary' command aggregates a JSONL file of trial records into a
run summary: best trial, reward statistics, elapsed totals, and averaged
feature importances. With --exportHtml the same summary is written as a
standalone HTML report.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		history, err := loadHistory(args[0], cfg.TrialConfig())
		if err != nil {
			return err
		}

		s := summary.Build(history, cfg.TrialConfig())
		summary.RenderText(cmd.OutOrStdout(), s)

		if cfg.ExportHTML != "" {
			html, err := summary.GenerateReport(s)
			if err != nil {
				return fmt.Errorf("generate report: %w", err)
			}
			if err := os.WriteFile(cfg.ExportHTML, []byte(html), 0o644); err != nil {
				return fmt.Errorf("write report: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\nReport written to %s\n", cfg.ExportHTML)
		}
		return nil
	},
}

// loadHistory reads a JSONL record file into a trial history. Parse errors
// carry the file name and line number.
func loadHistory(path string, cfg trial.ExperimentConfig) (*trial.History, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open record file %q: %w", path, err)
	}
	defer file.Close()

	history := trial.NewHistory(cfg)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		data := bytes.TrimSpace(scanner.Bytes())
		if len(data) == 0 {
			continue
		}
		rec, err := trial.ParseRecord(data)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, line, err)
		}
		history.Append(*rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %q: %w", path, err)
	}
	return history, nil
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}
