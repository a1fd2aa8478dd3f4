package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ngmaloney/tidewatch/internal/config"
)

// Global flag values.
var (
	configPath string
	logLevel   string
)

// cfg is loaded once before any subcommand runs.
var cfg *config.Config

// rootCmd is the base command for tidewatch.
var rootCmd = &cobra.Command{
	Use:   "tidewatch",
	Short: "Tide, weather and astronomy kiosk",
	Long: `TideWatch proxies NOAA tide predictions, weather.gov conditions and USNO
sun and moon data for one configured location, and shows them on a terminal
kiosk dashboard.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return &exitCodeError{code: ExitError, msg: fmt.Sprintf("failed to load config: %v", err)}
		}
		if logLevel != "" {
			loaded.LogLevel = logLevel
		}
		cfg = loaded
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a config file (yaml, toml or json)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(versionCmd)
}
