package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/tradegym/config"
	"github.com/rustyeddy/tradegym/indicators"
	"github.com/rustyeddy/tradegym/internal/id"
	"github.com/rustyeddy/tradegym/internal/metrics"
	"github.com/rustyeddy/tradegym/journal"
	"github.com/rustyeddy/tradegym/market"
	"github.com/rustyeddy/tradegym/sim"
	"github.com/rustyeddy/tradegym/strategies"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a policy through the trading environment",
	Long: `Compute the feature table of a bar series, join it with the close
price and step a policy through one or more episodes of the buy/sell/hold
environment. Steps and the run summary go to the configured journal.

Policies:
  - hold:   never trades (baseline)
  - random: samples buy, sell and hold uniformly
  - signal: buys on momentum above overbought unless volume is Low,
            sells on momentum below oversold

Examples:
  tradegym simulate -i spy.csv --policy signal
  tradegym simulate --config tradegym.yaml --episodes 10 --org ./reports`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

var (
	simInput    string
	simPolicy   string
	simEpisodes int
	simBalance  float64
	simOrgDir   string
	simMetrics  string
	simRender   bool
	simProgress bool
)

func init() {
	rootCmd.AddCommand(simulateCmd)

	simulateCmd.Flags().StringVarP(&simInput, "input", "i", "", "bar file (.csv or .parquet); defaults to the configured data source")
	simulateCmd.Flags().StringVarP(&simPolicy, "policy", "p", "", "policy (hold, random, signal); defaults to simulation.policy")
	simulateCmd.Flags().IntVarP(&simEpisodes, "episodes", "e", 0, "episodes to run; defaults to simulation.episodes")
	simulateCmd.Flags().Float64VarP(&simBalance, "balance", "b", 0, "initial balance; defaults to simulation.initial_balance")
	simulateCmd.Flags().StringVar(&simOrgDir, "org", "", "write an Org-mode run report to this directory")
	simulateCmd.Flags().StringVar(&simMetrics, "metrics-addr", "", "serve Prometheus metrics on this address while running")
	simulateCmd.Flags().BoolVar(&simRender, "render", false, "print the environment state at the end of every episode")
	simulateCmd.Flags().BoolVar(&simProgress, "progress", true, "show a progress bar on stderr")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	applySimulateFlags(cmd.Flags(), cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	bars, dataset, err := loadBars(ctx, "")
	if err != nil {
		return err
	}
	ft, err := indicators.Compute(bars, cfg.Indicators)
	if err != nil {
		return fmt.Errorf("compute: %w", err)
	}
	table, err := sim.Join(bars, ft)
	if err != nil {
		return err
	}
	env, err := sim.NewEnv(table, cfg.Simulation.InitialBalance)
	if err != nil {
		return err
	}
	policy, err := strategies.New(cfg.Simulation.Policy, env.Columns(), cfg.Simulation.Seed)
	if err != nil {
		return fmt.Errorf("policy: %w", err)
	}

	j, err := openJournal(cfg.Journal)
	if err != nil {
		return err
	}
	if j != nil {
		defer j.Close()
	}

	rec := metrics.New(cfg.Simulation.InitialBalance)
	if cfg.Metrics.Addr != "" {
		stop := serveMetrics(cfg.Metrics.Addr, rec)
		defer stop()
	}

	runID := id.New()
	r := &sim.Runner{
		Env:     env,
		Policy:  policy,
		RunID:   runID,
		Journal: j,
		Metrics: rec,
		Logger:  log.Logger,
		Times:   bars.Times(),
	}

	if simProgress {
		total := cfg.Simulation.Episodes * (env.Len() - 1)
		bar := progressbar.NewOptions(total,
			progressbar.OptionSetDescription(fmt.Sprintf("Simulating %s", policy.Name())),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
		)
		defer bar.Finish()
		r.OnStep = func() { _ = bar.Add(1) }
	}

	log.Info("simulation started",
		zap.String("run_id", runID),
		zap.String("policy", policy.Name()),
		zap.String("dataset", dataset),
		zap.Int("rows", env.Len()),
		zap.Int("episodes", cfg.Simulation.Episodes),
	)

	res, err := r.Run(ctx, cfg.Simulation.Episodes)
	if err != nil {
		return fmt.Errorf("run %s: %w", runID, err)
	}
	if simRender {
		if err := env.Render(cmd.OutOrStdout()); err != nil {
			return err
		}
	}

	run := runRecord(res, bars, dataset)
	if cfg.Journal.OrgDir != "" {
		run.OrgPath = filepath.Join(cfg.Journal.OrgDir, runID+".org")
		if err := os.MkdirAll(cfg.Journal.OrgDir, 0755); err != nil {
			return err
		}
		if err := run.WriteOrg(); err != nil {
			return fmt.Errorf("org report: %w", err)
		}
	}
	if j != nil {
		if err := j.RecordRun(run); err != nil {
			return fmt.Errorf("journal run: %w", err)
		}
	}

	log.Info("simulation finished",
		zap.String("run_id", runID),
		zap.Int("steps", res.Steps),
		zap.Float64("net_pl", run.NetPL),
		zap.Float64("return_pct", run.ReturnPct),
	)
	sim.PrintResult(cmd.OutOrStdout(), res)
	return nil
}

// applySimulateFlags copies the flags set on the command line over c.
func applySimulateFlags(flags *pflag.FlagSet, c *config.Config) {
	if flags.Changed("policy") {
		c.Simulation.Policy = simPolicy
	}
	if flags.Changed("episodes") {
		c.Simulation.Episodes = simEpisodes
	}
	if flags.Changed("balance") {
		c.Simulation.InitialBalance = simBalance
	}
	if flags.Changed("org") {
		c.Journal.OrgDir = simOrgDir
	}
	if flags.Changed("metrics-addr") {
		c.Metrics.Addr = simMetrics
	}
	if flags.Changed("input") {
		c.Data.Source = "file"
		c.Data.Path = simInput
	}
}

// openJournal returns nil for the "none" journal type.
func openJournal(jc config.JournalConfig) (journal.Journal, error) {
	switch jc.Type {
	case "csv":
		j, err := journal.NewCSV(jc.RunsFile, jc.StepsFile)
		if err != nil {
			return nil, fmt.Errorf("open csv journal: %w", err)
		}
		return j, nil
	case "sqlite":
		j, err := journal.NewSQLite(jc.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open db: %w", err)
		}
		return j, nil
	case "none", "":
		return nil, nil
	}
	return nil, fmt.Errorf("unknown journal type %q", jc.Type)
}

func runRecord(res sim.Result, bars market.Bars, dataset string) journal.Run {
	run := journal.Run{
		RunID:          res.RunID,
		Created:        time.Now().UTC(),
		Symbol:         cfg.Data.Symbol,
		Dataset:        dataset,
		Policy:         res.Policy,
		Episodes:       res.Episodes,
		Steps:          res.Steps,
		InitialBalance: res.InitialBalance,
		FinalBalance:   res.FinalValue,
		NetPL:          res.LastReturn,
	}
	if res.InitialBalance > 0 {
		run.ReturnPct = res.LastReturn / res.InitialBalance * 100
	}
	if n := bars.Len(); n > 0 {
		run.Start = bars[0].Time
		run.End = bars[n-1].Time
	}
	if b, err := yaml.Marshal(cfg); err == nil {
		run.Config = b
	} else {
		log.Warn("config not recorded", zap.Error(err))
	}
	return run
}

// serveMetrics exposes rec on addr until the returned stop is called.
func serveMetrics(addr string, rec *metrics.Recorder) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", rec.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server", zap.Error(err))
		}
	}()
	log.Info("metrics server listening", zap.String("addr", addr))

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}
