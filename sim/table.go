package sim

import (
	"fmt"
	"slices"

	"github.com/rustyeddy/tradegym/indicators"
	"github.com/rustyeddy/tradegym/market"
)

// PriceColumn is the column the environment trades at.
const PriceColumn = "price"

// Table is the numeric input of an environment. Row i is the state of the
// market at step i.
type Table struct {
	Columns []string
	Rows    [][]float64
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Index returns the position of col, or -1.
func (t *Table) Index(col string) int {
	return slices.Index(t.Columns, col)
}

func (t *Table) validate() error {
	if t == nil || len(t.Rows) == 0 {
		return ErrEmptyTable
	}
	if t.Index(PriceColumn) < 0 {
		return fmt.Errorf("%w: %q", ErrMissingColumn, PriceColumn)
	}
	for i, row := range t.Rows {
		if len(row) != len(t.Columns) {
			return fmt.Errorf("%w: row %d has %d values, want %d", ErrRowWidth, i, len(row), len(t.Columns))
		}
	}
	return nil
}

// Join lines up bars and their feature table by position. The result holds
// the feature columns in their stable order followed by the price column,
// which is the bar close. Unknown features are NaN.
func Join(bars market.Bars, ft *indicators.FeatureTable) (*Table, error) {
	if ft == nil || len(bars) != ft.Len() {
		n := 0
		if ft != nil {
			n = ft.Len()
		}
		return nil, fmt.Errorf("%w: %d bars, %d feature rows", ErrLengthMismatch, len(bars), n)
	}

	cols := ft.Columns()
	data := make([][]float64, len(cols))
	for j, c := range cols {
		v, err := ft.Float64s(c)
		if err != nil {
			return nil, err
		}
		data[j] = v
	}

	rows := make([][]float64, len(bars))
	for i, b := range bars {
		row := make([]float64, 0, len(cols)+1)
		for j := range cols {
			row = append(row, data[j][i])
		}
		rows[i] = append(row, b.Close)
	}

	return &Table{
		Columns: append(cols, PriceColumn),
		Rows:    rows,
	}, nil
}
