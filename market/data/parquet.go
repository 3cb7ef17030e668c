package data

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"math/big"
	"slices"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"

	"github.com/rustyeddy/tradegym/market"
)

func openDuckDB() (*sql.DB, error) {
	db, err := sql.Open("duckdb", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	return db, nil
}

// quoteLiteral quotes s as a SQL string literal.
func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// LoadParquet reads bars from a Parquet file through DuckDB. Bars are
// ordered by time when the file has a time column.
func LoadParquet(ctx context.Context, path string) (market.Bars, error) {
	db, err := openDuckDB()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	query, args, err := squirrel.Select("*").
		From(fmt.Sprintf("read_parquet(%s)", quoteLiteral(path))).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", path, err)
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	cols := make(map[string][]float64)
	timeIdx := -1
	for i, n := range names {
		key := strings.ToLower(strings.TrimSpace(n))
		if timeIdx < 0 && isTimeColumn(key) {
			timeIdx = i
		}
		names[i] = key
	}

	var times []time.Time
	vals := make([]any, len(names))
	ptrs := make([]any, len(names))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		for i, v := range vals {
			if i == timeIdx {
				t, _ := v.(time.Time)
				times = append(times, t.UTC())
				continue
			}
			cols[names[i]] = append(cols[names[i]], toFloat(v))
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	bars, err := market.FromColumns(cols, times)
	if err != nil {
		return nil, err
	}
	if times != nil {
		slices.SortStableFunc(bars, func(a, b market.Bar) int { return a.Time.Compare(b.Time) })
	}
	return bars, nil
}

func toFloat(v any) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case float32:
		return float64(x)
	case int64:
		return float64(x)
	case int32:
		return float64(x)
	case int:
		return float64(x)
	case uint64:
		return float64(x)
	case *big.Int:
		f, _ := new(big.Float).SetInt(x).Float64()
		return f
	default:
		return math.NaN()
	}
}

// WriteParquet writes bars to path as Parquet through DuckDB.
func WriteParquet(ctx context.Context, path string, bars market.Bars) error {
	db, err := openDuckDB()
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, `
		CREATE TABLE bars (
			time TIMESTAMP,
			open DOUBLE,
			high DOUBLE,
			low DOUBLE,
			close DOUBLE,
			volume DOUBLE
		)`); err != nil {
		return fmt.Errorf("create table: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO bars VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, b := range bars {
		ts := sql.NullTime{Time: b.Time, Valid: !b.Time.IsZero()}
		if _, err := stmt.ExecContext(ctx, ts, b.Open, b.High, b.Low, b.Close, b.Volume); err != nil {
			return fmt.Errorf("insert bar %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	if _, err := db.ExecContext(ctx, fmt.Sprintf("COPY bars TO %s (FORMAT PARQUET)", quoteLiteral(path))); err != nil {
		return fmt.Errorf("export parquet: %w", err)
	}
	return nil
}
