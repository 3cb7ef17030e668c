package indicators

import (
	"testing"

	talib "github.com/markcheno/go-talib"
	"github.com/stretchr/testify/assert"
)

func TestTrueRangesMatchTalib(t *testing.T) {
	t.Parallel()

	bars := randomBars(150, 11)
	want := talib.TRange(bars.Highs(), bars.Lows(), bars.Closes())
	got := TrueRanges(bars)

	for i := 1; i < len(bars); i++ {
		assert.InDelta(t, want[i], got[i], 1e-9, "row %d", i)
	}
}

func TestMomentumMatchesTalib(t *testing.T) {
	t.Parallel()

	closes := randomBars(150, 12).Closes()
	want := talib.Mom(closes, 14)
	got := Momentum(closes, 14)

	for i := 14; i < len(closes); i++ {
		assert.InDelta(t, want[i], got[i].Unwrap(), 1e-9, "row %d", i)
	}
}

func TestRollingMatchesTalibSma(t *testing.T) {
	t.Parallel()

	vols := randomBars(150, 13).Volumes()
	want := talib.Sma(vols, 20)
	got := Rolling(knownColumn(vols), 20)

	for i := 19; i < len(vols); i++ {
		assert.InDelta(t, want[i], got[i].Unwrap(), 1e-6, "row %d", i)
	}
}
