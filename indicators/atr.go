package indicators

import (
	"math"

	"github.com/rustyeddy/tradegym/market"
)

// trueRange is the largest of high-low, |high-prevClose| and
// |low-prevClose|. Terms that involve a NaN are skipped; when every term is
// NaN the result is NaN.
func trueRange(high, low, prevClose float64) float64 {
	terms := [3]float64{high - low, math.Abs(high - prevClose), math.Abs(low - prevClose)}
	tr := math.NaN()
	for _, v := range terms {
		if math.IsNaN(v) {
			continue
		}
		if math.IsNaN(tr) || v > tr {
			tr = v
		}
	}
	return tr
}

// TrueRanges computes the true range of every bar. The first bar has no
// previous close and falls back to high-low.
func TrueRanges(bars market.Bars) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		if i == 0 {
			out[i] = b.High - b.Low
			continue
		}
		out[i] = trueRange(b.High, b.Low, bars[i-1].Close)
	}
	return out
}
