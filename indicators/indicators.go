// Package indicators turns a table of OHLCV bars into a feature table of
// volatility, volume-pressure and momentum signals.
//
// Values that are not yet defined (inside a warm-up window, or derived from
// a missing input) are reported as unknown and never default to zero.
package indicators

import (
	"errors"
	"math"

	"github.com/moznion/go-optional"
)

var ErrEmptyTable = errors.New("empty bar table")

// Value is a feature value that may be unknown.
type Value = optional.Option[float64]

// Known wraps v. NaN is treated as unknown.
func Known(v float64) Value {
	if math.IsNaN(v) {
		return optional.None[float64]()
	}
	return optional.Some(v)
}

// Unknown returns the unknown value.
func Unknown() Value {
	return optional.None[float64]()
}

// Float64 unwraps v, mapping unknown to NaN.
func Float64(v Value) float64 {
	return v.TakeOr(math.NaN())
}

// Indicator is a streaming computation over a series.
type Indicator interface {
	// Name returns a stable identifier like "MA(20)".
	Name() string

	// Warmup returns how many updates are needed before Ready() can be true.
	Warmup() int

	// Reset clears all internal state.
	Reset()

	// Ready reports whether the current value is defined.
	Ready() bool
}
