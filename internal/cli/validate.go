// internal/cli/validate.go
package trialscope

import (
	"bufio"
	"bytes"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mwiater/trialscope/internal/trial"
	"github.com/spf13/cobra"
)

// validateCmd represents the 'validate' command.
var validateCmd = &cobra.Command{
	Use:   "validate <records.jsonl>",
	Short: "Validate trial records against the wire schema",
	Long: `The 'validate' command checks every line of a JSONL file against the
trial record schema and reports each violation with its line number. The
command fails when any record is invalid.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		file, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("could not open record file %q: %w", path, err)
		}
		defer file.Close()

		ok := color.New(color.FgGreen)
		bad := color.New(color.FgRed, color.Bold)
		out := cmd.OutOrStdout()

		scanner := bufio.NewScanner(file)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		line := 0
		records := 0
		invalid := 0
		for scanner.Scan() {
			line++
			data := bytes.TrimSpace(scanner.Bytes())
			if len(data) == 0 {
				continue
			}
			records++
			if err := trial.ValidateJSON(data); err != nil {
				invalid++
				bad.Fprintf(out, "line %d: %v\n", line, err)
			}
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("read %q: %w", path, err)
		}

		if invalid > 0 {
			return fmt.Errorf("%d of %d records invalid", invalid, records)
		}
		ok.Fprintf(out, "%d records valid\n", records)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
