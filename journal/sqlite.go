package journal

import (
	"database/sql"
	"fmt"
	"math"

	"github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"

	"github.com/rustyeddy/tradegym/indicators"
	"github.com/rustyeddy/tradegym/market"
)

type SQLite struct {
	db *sql.DB
	sq squirrel.StatementBuilderType
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SQLite{
		db: db,
		sq: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}, nil
}

// RecordRun inserts r, replacing an earlier record with the same ID.
func (j *SQLite) RecordRun(r Run) error {
	_, err := j.db.Exec(`
		INSERT OR REPLACE INTO runs
		(run_id, created, symbol, dataset, policy, start_time, end_time, episodes, steps,
		 initial_balance, final_balance, net_pl, return_pct, config, org_path)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Created, r.Symbol, r.Dataset, r.Policy, r.Start, r.End, r.Episodes, r.Steps,
		r.InitialBalance, r.FinalBalance, r.NetPL, r.ReturnPct, r.Config, r.OrgPath,
	)
	return err
}

func (j *SQLite) RecordStep(s StepRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO steps
		(run_id, episode, step, time, action, price, balance, shares_held, reward, done)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.RunID, s.Episode, s.Step, s.Time, s.Action, s.Price, s.Balance, s.SharesHeld, s.Reward, s.Done,
	)
	return err
}

// RecordFeatures stores a feature table under dataset, replacing any rows
// previously stored under the same name. Unknown values are NULL.
func (j *SQLite) RecordFeatures(dataset string, bars market.Bars, ft *indicators.FeatureTable) error {
	if len(bars) != ft.Len() {
		return fmt.Errorf("features for %s: %d bars, %d feature rows", dataset, len(bars), ft.Len())
	}

	tx, err := j.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM features WHERE dataset = ?`, dataset); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO features
		(dataset, row, time, close, positive_volatility, upper_signal, volume_gauge,
		 volume_color, momentum, mom_oversold, mom_overbought)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, r := range ft.Rows {
		if _, err := stmt.Exec(
			dataset, i, bars[i].Time, bars[i].Close,
			nullable(r.PositiveVolatility),
			nullable(r.UpperSignal),
			nullable(r.VolumeGauge),
			r.VolumeColor.String(),
			nullable(r.Momentum),
			r.MomOversold,
			r.MomOverbought,
		); err != nil {
			return fmt.Errorf("features for %s row %d: %w", dataset, i, err)
		}
	}
	return tx.Commit()
}

func (j *SQLite) Close() error {
	return j.db.Close()
}

func nullable(v indicators.Value) sql.NullFloat64 {
	f := indicators.Float64(v)
	if math.IsNaN(f) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: f, Valid: true}
}
