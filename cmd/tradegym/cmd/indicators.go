package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rustyeddy/tradegym/indicators"
	"github.com/rustyeddy/tradegym/journal"
)

var indicatorsCmd = &cobra.Command{
	Use:   "indicators",
	Short: "Compute the feature table of a bar series",
	Long: `Compute positive volatility, the upper signal, the volume gauge and
color, and momentum with its reference levels for every bar. The table is
written as CSV with unknown values left empty, and optionally stored in a
SQLite database.

Examples:
  tradegym indicators -i spy.csv -o spy-features.csv
  tradegym indicators -i spy.parquet --db tradegym.sqlite`,
	Args: cobra.NoArgs,
	RunE: runIndicators,
}

var (
	indInput  string
	indOutput string
	indDB     string
)

func init() {
	rootCmd.AddCommand(indicatorsCmd)

	indicatorsCmd.Flags().StringVarP(&indInput, "input", "i", "", "bar file (.csv or .parquet); defaults to the configured data source")
	indicatorsCmd.Flags().StringVarP(&indOutput, "output", "o", "-", "feature CSV output, - for stdout")
	indicatorsCmd.Flags().StringVar(&indDB, "db", "", "also store the table in this SQLite database")
}

func runIndicators(cmd *cobra.Command, args []string) error {
	bars, dataset, err := loadBars(cmd.Context(), indInput)
	if err != nil {
		return err
	}
	ft, err := indicators.Compute(bars, cfg.Indicators)
	if err != nil {
		return fmt.Errorf("compute: %w", err)
	}
	log.Debug("features computed", zap.String("dataset", dataset), zap.Int("rows", ft.Len()))

	if indDB != "" {
		j, err := journal.NewSQLite(indDB)
		if err != nil {
			return fmt.Errorf("open db: %w", err)
		}
		defer j.Close()
		if err := j.RecordFeatures(dataset, bars, ft); err != nil {
			return fmt.Errorf("store features: %w", err)
		}
		log.Info("features stored", zap.String("db", indDB), zap.String("dataset", dataset))
	}

	var w io.Writer = cmd.OutOrStdout()
	if indOutput != "-" {
		f, err := os.Create(indOutput)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	return journal.WriteFeaturesCSV(w, bars, ft)
}
