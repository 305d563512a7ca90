// internal/cli/show.go
package trialscope

import (
	"github.com/spf13/cobra"
)

// showCmd is the parent for read-only inspection subcommands.
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Inspect resolved settings",
}

func init() {
	rootCmd.AddCommand(showCmd)
}
