// internal/cli/show_config.go
package trialscope

import (
	"fmt"

	"github.com/k0kubun/pp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// showConfigCmd implements 'show config', which prints the configuration
// after flags, config file, and defaults have been merged.
var showConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show config settings",
	Long:  `Show config settings ensuring that the JSON configs are loaded properly and overridden by flags accordingly.`,
	Run: func(cmd *cobra.Command, args []string) {
		runShowConfig()
	},
}

func runShowConfig() {
	file := viper.ConfigFileUsed()
	if file == "" {
		fmt.Println("No config file loaded (using defaults).")
	} else {
		fmt.Printf("Config file: %s\n\n", file)
	}

	cfg := GetConfig()
	fmt.Println("Current configuration:")
	if cfg == nil {
		fmt.Printf("  Debug:        %v\n", viper.GetBool("debug"))
		fmt.Printf("  Theme:        %s\n", viper.GetString("theme"))
		fmt.Printf("  Show Loading: %v\n", viper.GetBool("showLoading"))
		return
	}

	fmt.Printf("  Debug:        %v\n", cfg.Debug)
	fmt.Printf("  Theme:        %s\n", cfg.ThemeName())
	fmt.Printf("  Show Loading: %v\n", cfg.ShowLoading)
	direction := cfg.Experiment.Direction
	if direction == "" {
		direction = "max"
	}
	fmt.Printf("  Metric:       %s (%s)\n", cfg.TrialConfig().MetricName, direction)
	fmt.Printf("  CV:           %v", cfg.Experiment.CV)
	if cfg.Experiment.CV {
		fmt.Printf(" (%d folds)", cfg.Experiment.NFolds)
	}
	fmt.Println()
	fmt.Printf("  Feed:         every %s, up to %d trials\n", cfg.FeedInterval(), cfg.MaxTrials())
	if cfg.Feed.Scenario != "" {
		fmt.Printf("  Scenario:     %s\n", cfg.Feed.Scenario)
	}
	fmt.Printf("  Log File:     %s\n", cfg.LogFilePath())
	if cfg.ExportHTML != "" {
		fmt.Printf("  Export HTML:  %s\n", cfg.ExportHTML)
	}

	if cfg.Debug {
		fmt.Println()
		pp.Println(cfg)
	}
}

func init() {
	showCmd.AddCommand(showConfigCmd)
}
