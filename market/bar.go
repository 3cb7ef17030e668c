// Package market holds the OHLCV bar type shared by the loaders, the
// indicator pipeline and the simulation environment.
package market

import (
	"fmt"
	"math"
	"time"
)

// Bar is one OHLCV period. Time is optional; a zero Time means the
// series is indexed by position only.
type Bar struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Bars is a time-ordered series of bars. Position is the index.
type Bars []Bar

func (b Bars) Len() int {
	return len(b)
}

func (b Bars) Opens() []float64 {
	return b.column(func(x Bar) float64 { return x.Open })
}

func (b Bars) Highs() []float64 {
	return b.column(func(x Bar) float64 { return x.High })
}

func (b Bars) Lows() []float64 {
	return b.column(func(x Bar) float64 { return x.Low })
}

func (b Bars) Closes() []float64 {
	return b.column(func(x Bar) float64 { return x.Close })
}

func (b Bars) Volumes() []float64 {
	return b.column(func(x Bar) float64 { return x.Volume })
}

// Times returns the bar timestamps, or nil when none of the bars carry one.
func (b Bars) Times() []time.Time {
	out := make([]time.Time, len(b))
	set := false
	for i, x := range b {
		out[i] = x.Time
		if !x.Time.IsZero() {
			set = true
		}
	}
	if !set {
		return nil
	}
	return out
}

func (b Bars) column(get func(Bar) float64) []float64 {
	out := make([]float64, len(b))
	for i, x := range b {
		out[i] = get(x)
	}
	return out
}

// Validate reports the first bar that is not well formed: non-finite
// high/low/close/volume, negative volume, high below low, or a timestamp
// that does not increase. The indicator pipeline does not require it.
func (b Bars) Validate() error {
	for i, x := range b {
		for _, f := range []struct {
			name string
			v    float64
		}{{"high", x.High}, {"low", x.Low}, {"close", x.Close}, {"volume", x.Volume}} {
			if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
				return fmt.Errorf("bar %d: %s is not finite", i, f.name)
			}
		}
		if x.Volume < 0 {
			return fmt.Errorf("bar %d: negative volume %v", i, x.Volume)
		}
		if x.High < x.Low {
			return fmt.Errorf("bar %d: high %v below low %v", i, x.High, x.Low)
		}
		if i > 0 && !x.Time.IsZero() && !b[i-1].Time.IsZero() && !x.Time.After(b[i-1].Time) {
			return fmt.Errorf("bar %d: time %s not after %s", i, x.Time.Format(time.RFC3339), b[i-1].Time.Format(time.RFC3339))
		}
	}
	return nil
}
