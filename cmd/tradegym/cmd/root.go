package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradegym/config"
	"github.com/rustyeddy/tradegym/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "tradegym",
	Short: "A bar indicator pipeline and trading environment",
	Long: `Tradegym turns OHLCV bars into a volatility, volume and momentum
feature table and steps a buy/sell/hold trading environment over it.

It provides tools for:
  - Fetching bars from Polygon or Binance, or generating synthetic ones
  - Computing the feature table and storing it as CSV or SQLite
  - Running hold, random and signal policies through the environment
  - Journaling runs and steps to CSV or SQLite
  - Exposing run metrics to Prometheus

Complete documentation is available at https://github.com/rustyeddy/tradegym`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

var (
	cfgFile  string
	logLevel string

	cfg *config.Config
	log = logger.Nop()
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error); overrides the config")
}

// setup loads the configuration and builds the logger. Without --config the
// defaults are used unvalidated; commands check what they need.
func setup(cmd *cobra.Command, args []string) error {
	if cfgFile != "" {
		c, err := config.LoadFromFile(cfgFile)
		if err != nil {
			return err
		}
		cfg = c
	} else {
		cfg = config.Default()
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}

	l, err := logger.New(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	log = l
	return nil
}

func teardown(cmd *cobra.Command, args []string) error {
	// Sync on stderr fails on some terminals.
	_ = log.Sync()
	return nil
}
