// Package data loads, fetches, generates and writes market.Bars.
package data

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/rustyeddy/tradegym/market"
)

// timeColumns are the accepted names of the optional time column.
var timeColumns = []string{"time", "timestamp", "date", "datetime"}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// LoadCSV reads bars from a CSV with a header row. Column names are matched
// without regard to case. Cells that do not parse as numbers are NaN.
func LoadCSV(r io.Reader) (market.Bars, error) {
	df := dataframe.ReadCSV(r,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("read csv: %w", df.Err)
	}

	cols := make(map[string][]float64)
	var times []time.Time
	for _, name := range df.Names() {
		key := strings.ToLower(strings.TrimSpace(name))
		if isTimeColumn(key) {
			if times != nil {
				continue
			}
			ts, err := parseTimes(df.Col(name).Records())
			if err != nil {
				return nil, fmt.Errorf("column %q: %w", name, err)
			}
			times = ts
			continue
		}
		cols[key] = df.Col(name).Float()
	}
	return market.FromColumns(cols, times)
}

func isTimeColumn(name string) bool {
	for _, c := range timeColumns {
		if name == c {
			return true
		}
	}
	return false
}

func parseTimes(recs []string) ([]time.Time, error) {
	out := make([]time.Time, len(recs))
	for i, s := range recs {
		t, err := parseTime(s)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out[i] = t
	}
	return out, nil
}

// parseTime accepts the layouts in timeLayouts or Unix seconds or
// milliseconds. An empty cell is the zero time.
func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		if n > 1e11 {
			return time.UnixMilli(n).UTC(), nil
		}
		return time.Unix(n, 0).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("unrecognised time %q", s)
}

// WriteCSV writes bars with a time,open,high,low,close,volume header.
func WriteCSV(w io.Writer, bars market.Bars) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"time", "open", "high", "low", "close", "volume"}); err != nil {
		return err
	}
	for _, b := range bars {
		ts := ""
		if !b.Time.IsZero() {
			ts = b.Time.UTC().Format(time.RFC3339)
		}
		if err := cw.Write([]string{ts, ff(b.Open), ff(b.High), ff(b.Low), ff(b.Close), ff(b.Volume)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func ff(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
