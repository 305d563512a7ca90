// internal/cli/root.go
// Package cli wires the trialscope commands: the live dashboard, JSONL
// replay, run summaries, and record validation. Configuration merges flags
// over the config file over defaults, and the merged snapshot is what every
// subcommand consumes.
package trialscope

import (
	"fmt"
	"os"
	"strconv"

	"github.com/mwiater/trialscope/internal/appconfig"
	"github.com/mwiater/trialscope/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile       string
	currentConfig *appconfig.Config
	appVersion    = "dev"
	appCommit     = "none"
	appDate       = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "trialscope",
	Short: "trialscope - live terminal charts for ML experiment trials",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := ensureConfigLoaded(); err != nil {
			return err
		}

		for _, name := range []string{"debug", "showLoading"} {
			if !cmd.Flags().Changed(name) {
				val := viper.GetBool(name)
				_ = cmd.Flags().Set(name, strconv.FormatBool(val))
			}
		}
		if !cmd.Flags().Changed("cv") {
			_ = cmd.Flags().Set("cv", strconv.FormatBool(viper.GetBool("experiment.cv")))
		}

		var cfg appconfig.Config
		if err := viper.Unmarshal(&cfg); err != nil {
			return fmt.Errorf("unmarshal config: %w", err)
		}
		cfg.ConfigPath = cfgFile
		if cfg.Experiment.CV && cfg.Experiment.NFolds <= 0 {
			return fmt.Errorf("invalid configuration: experiment.nFolds must be positive when experiment.cv is enabled")
		}
		if d := cfg.Experiment.Direction; d != "" && d != "max" && d != "min" {
			return fmt.Errorf("invalid configuration: experiment.direction must be max or min, got %q", d)
		}
		currentConfig = &cfg

		if err := logging.Init(currentConfig.LogFilePath()); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", appVersion, appCommit, appDate)

	defer logging.Close()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config/config.json", "config file (e.g., config/config.json)")

	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().Bool("showLoading", false, "show a loading indicator until the first trial arrives")
	rootCmd.PersistentFlags().Bool("cv", false, "treat records as cross-validated (one series per fold)")
	rootCmd.PersistentFlags().Int("nFolds", 0, "fold count expected on each record when cv is enabled")
	rootCmd.PersistentFlags().String("metric", "", "metric name shown on the chart")
	rootCmd.PersistentFlags().String("direction", "", "optimize direction, max or min")
	rootCmd.PersistentFlags().Float64("interval", 0, "seconds between feed records (0 = default)")
	rootCmd.PersistentFlags().Int("maxTrials", 0, "synthetic run length (0 = default)")
	rootCmd.PersistentFlags().String("scenario", "", "path to a YAML scenario for the synthetic feed")
	rootCmd.PersistentFlags().String("theme", "", "surface theme, dark or light")
	rootCmd.PersistentFlags().String("logFile", "", "path to the log file")
	rootCmd.PersistentFlags().String("exportHtml", "", "write an HTML report to this file")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("showLoading", rootCmd.PersistentFlags().Lookup("showLoading"))
	_ = viper.BindPFlag("experiment.cv", rootCmd.PersistentFlags().Lookup("cv"))
	_ = viper.BindPFlag("experiment.nFolds", rootCmd.PersistentFlags().Lookup("nFolds"))
	_ = viper.BindPFlag("experiment.metricName", rootCmd.PersistentFlags().Lookup("metric"))
	_ = viper.BindPFlag("experiment.direction", rootCmd.PersistentFlags().Lookup("direction"))
	_ = viper.BindPFlag("feed.intervalSeconds", rootCmd.PersistentFlags().Lookup("interval"))
	_ = viper.BindPFlag("feed.maxTrials", rootCmd.PersistentFlags().Lookup("maxTrials"))
	_ = viper.BindPFlag("feed.scenario", rootCmd.PersistentFlags().Lookup("scenario"))
	_ = viper.BindPFlag("theme", rootCmd.PersistentFlags().Lookup("theme"))
	_ = viper.BindPFlag("logFile", rootCmd.PersistentFlags().Lookup("logFile"))
	_ = viper.BindPFlag("exportHtml", rootCmd.PersistentFlags().Lookup("exportHtml"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

// ensureConfigLoaded reads the config and sets safe defaults.
func ensureConfigLoaded() error {
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to load config: %w", err)
	}
	return nil
}

// GetConfig returns the loaded application configuration for other packages.
func GetConfig() *appconfig.Config {
	return currentConfig
}

// DebugEnabled returns true if debug mode is enabled.
func DebugEnabled() bool { return viper.GetBool("debug") }

// SetVersionInfo allows the main package to inject build-time variables.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}
