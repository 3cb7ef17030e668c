package journal

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
)

var runColumns = []string{
	"run_id", "created", "symbol", "dataset", "policy", "start_time", "end_time",
	"episodes", "steps", "initial_balance", "final_balance", "net_pl", "return_pct",
	"config", "org_path",
}

var stepColumns = []string{
	"run_id", "episode", "step", "time", "action", "price", "balance", "shares_held", "reward", "done",
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (Run, error) {
	var r Run
	err := s.Scan(
		&r.RunID, &r.Created, &r.Symbol, &r.Dataset, &r.Policy, &r.Start, &r.End,
		&r.Episodes, &r.Steps, &r.InitialBalance, &r.FinalBalance, &r.NetPL, &r.ReturnPct,
		&r.Config, &r.OrgPath,
	)
	return r, err
}

// GetRun returns a single run by ID.
func (j *SQLite) GetRun(runID string) (Run, error) {
	query, args, err := j.sq.Select(runColumns...).
		From("runs").
		Where(squirrel.Eq{"run_id": runID}).
		ToSql()
	if err != nil {
		return Run{}, err
	}

	r, err := scanRun(j.db.QueryRow(query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, fmt.Errorf("run %q: %w", runID, ErrNotFound)
		}
		return Run{}, err
	}
	return r, nil
}

// ListRuns returns the most recent runs first. A limit of zero or less
// returns every run.
func (j *SQLite) ListRuns(limit int) ([]Run, error) {
	b := j.sq.Select(runColumns...).From("runs").OrderBy("created DESC", "run_id DESC")
	if limit > 0 {
		b = b.Limit(uint64(limit))
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := j.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListSteps returns the steps of a run in episode and step order. An
// episode of zero selects every episode.
func (j *SQLite) ListSteps(runID string, episode int) ([]StepRecord, error) {
	b := j.sq.Select(stepColumns...).
		From("steps").
		Where(squirrel.Eq{"run_id": runID}).
		OrderBy("episode ASC", "step ASC")
	if episode > 0 {
		b = b.Where(squirrel.Eq{"episode": episode})
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := j.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []StepRecord
	for rows.Next() {
		var s StepRecord
		if err := rows.Scan(
			&s.RunID, &s.Episode, &s.Step, &s.Time, &s.Action,
			&s.Price, &s.Balance, &s.SharesHeld, &s.Reward, &s.Done,
		); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
