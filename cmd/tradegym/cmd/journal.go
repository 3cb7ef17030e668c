package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradegym/internal/id"
	"github.com/rustyeddy/tradegym/journal"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Query the run journal",
	Long: `Query and display simulation runs recorded in a SQLite journal.

Subcommands:
  runs   - List the most recent runs
  run    - Show the Org-mode report of one run
  steps  - List the steps of a run

Examples:
  tradegym journal runs --limit 10
  tradegym journal run <run-id>
  tradegym journal steps <run-id> --episode 2`,
}

var journalRunsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List the most recent runs",
	Args:  cobra.NoArgs,
	RunE:  runJournalRuns,
}

var journalRunCmd = &cobra.Command{
	Use:   "run <run-id>",
	Short: "Show one run",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalRun,
}

var journalStepsCmd = &cobra.Command{
	Use:   "steps <run-id>",
	Short: "List the steps of a run",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalSteps,
}

var (
	journalDBPath  string
	journalLimit   int
	journalEpisode int
)

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalRunsCmd)
	journalCmd.AddCommand(journalRunCmd)
	journalCmd.AddCommand(journalStepsCmd)

	journalCmd.PersistentFlags().StringVarP(&journalDBPath, "db", "d", "", "path to SQLite journal DB; defaults to journal.db_path")
	journalRunsCmd.Flags().IntVarP(&journalLimit, "limit", "n", 20, "number of runs, 0 for all")
	journalStepsCmd.Flags().IntVarP(&journalEpisode, "episode", "e", 0, "episode to list, 0 for all")
}

func openSQLite() (*journal.SQLite, error) {
	path := journalDBPath
	if path == "" {
		path = cfg.Journal.DBPath
	}
	j, err := journal.NewSQLite(path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	return j, nil
}

func runJournalRuns(cmd *cobra.Command, args []string) error {
	j, err := openSQLite()
	if err != nil {
		return err
	}
	defer j.Close()

	runs, err := j.ListRuns(journalLimit)
	if err != nil {
		return fmt.Errorf("query runs: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), journal.FormatRunsOrg(runs))
	return nil
}

// parseRunID rejects arguments that are not run IDs and returns the time
// encoded in the ID.
func parseRunID(s string) (time.Time, error) {
	t, err := id.Time(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("run id %q: %w", s, err)
	}
	return t, nil
}

func runJournalRun(cmd *cobra.Command, args []string) error {
	created, err := parseRunID(args[0])
	if err != nil {
		return err
	}
	j, err := openSQLite()
	if err != nil {
		return err
	}
	defer j.Close()

	run, err := j.GetRun(args[0])
	if err != nil {
		return fmt.Errorf("get run: %w", err)
	}
	if run.Created.IsZero() {
		run.Created = created
	}
	s, err := run.FormatOrg()
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), s)
	return nil
}

func runJournalSteps(cmd *cobra.Command, args []string) error {
	if _, err := parseRunID(args[0]); err != nil {
		return err
	}
	j, err := openSQLite()
	if err != nil {
		return err
	}
	defer j.Close()

	steps, err := j.ListSteps(args[0], journalEpisode)
	if err != nil {
		return fmt.Errorf("query steps: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), journal.FormatStepsOrg(steps))
	return nil
}
