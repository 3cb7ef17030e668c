package market

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

var (
	ErrMissingColumn = errors.New("missing column")
	ErrColumnLength  = errors.New("column length mismatch")
)

// RequiredColumns are the columns every bar table must carry.
var RequiredColumns = []string{"high", "low", "close", "volume"}

// FromColumns builds bars from named columns. Names are matched without
// regard to case or surrounding space. "open" is optional and defaults to
// NaN. times may be nil; otherwise it must be as long as the columns.
func FromColumns(cols map[string][]float64, times []time.Time) (Bars, error) {
	norm := make(map[string][]float64, len(cols))
	for name, v := range cols {
		norm[strings.ToLower(strings.TrimSpace(name))] = v
	}

	for _, name := range RequiredColumns {
		if _, ok := norm[name]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, name)
		}
	}

	n := len(norm["close"])
	for _, name := range append([]string{"open"}, RequiredColumns...) {
		v, ok := norm[name]
		if ok && len(v) != n {
			return nil, fmt.Errorf("%w: %q has %d rows, close has %d", ErrColumnLength, name, len(v), n)
		}
	}
	if times != nil && len(times) != n {
		return nil, fmt.Errorf("%w: %d timestamps for %d rows", ErrColumnLength, len(times), n)
	}

	opens, hasOpen := norm["open"]
	bars := make(Bars, n)
	for i := range bars {
		open := math.NaN()
		if hasOpen {
			open = opens[i]
		}
		bars[i] = Bar{
			Open:   open,
			High:   norm["high"][i],
			Low:    norm["low"][i],
			Close:  norm["close"][i],
			Volume: norm["volume"][i],
		}
		if times != nil {
			bars[i].Time = times[i]
		}
	}
	return bars, nil
}
