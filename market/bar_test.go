package market

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromColumns(t *testing.T) {
	t.Parallel()

	bars, err := FromColumns(map[string][]float64{
		"Open":   {1, 2},
		"High":   {3, 4},
		" low ":  {0.5, 1.5},
		"CLOSE":  {2, 3},
		"volume": {100, 200},
	}, nil)
	require.NoError(t, err)
	require.Len(t, bars, 2)

	assert.Equal(t, Bar{Open: 2, High: 4, Low: 1.5, Close: 3, Volume: 200}, bars[1])
	assert.Nil(t, bars.Times())
	assert.Equal(t, []float64{2, 3}, bars.Closes())
	assert.Equal(t, []float64{100, 200}, bars.Volumes())
}

func TestFromColumnsOpenOptional(t *testing.T) {
	t.Parallel()

	bars, err := FromColumns(map[string][]float64{
		"high": {3}, "low": {1}, "close": {2}, "volume": {10},
	}, nil)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(bars[0].Open))
}

func TestFromColumnsErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		cols  map[string][]float64
		times []time.Time
		want  error
		msg   string
	}{
		{
			name: "missing volume",
			cols: map[string][]float64{"high": {1}, "low": {1}, "close": {1}},
			want: ErrMissingColumn,
			msg:  "volume",
		},
		{
			name: "missing high",
			cols: map[string][]float64{"low": {1}, "close": {1}, "volume": {1}},
			want: ErrMissingColumn,
			msg:  "high",
		},
		{
			name: "ragged columns",
			cols: map[string][]float64{"high": {1, 2}, "low": {1}, "close": {1}, "volume": {1}},
			want: ErrColumnLength,
			msg:  "high",
		},
		{
			name:  "short times",
			cols:  map[string][]float64{"high": {1}, "low": {1}, "close": {1}, "volume": {1}},
			times: []time.Time{{}, {}},
			want:  ErrColumnLength,
			msg:   "timestamps",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := FromColumns(tt.cols, tt.times)
			require.ErrorIs(t, err, tt.want)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestBarsValidate(t *testing.T) {
	t.Parallel()

	t0 := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		bars Bars
		msg  string
	}{
		{name: "ok", bars: Bars{
			{Time: t0, High: 2, Low: 1, Close: 1.5, Volume: 10},
			{Time: t0.Add(time.Hour), High: 2, Low: 1, Close: 1.5, Volume: 0},
		}},
		{name: "nan close", bars: Bars{{High: 2, Low: 1, Close: math.NaN()}}, msg: "close is not finite"},
		{name: "negative volume", bars: Bars{{High: 2, Low: 1, Close: 1, Volume: -1}}, msg: "negative volume"},
		{name: "inverted range", bars: Bars{{High: 1, Low: 2, Close: 1}}, msg: "below low"},
		{name: "time not increasing", bars: Bars{
			{Time: t0, High: 2, Low: 1, Close: 1},
			{Time: t0, High: 2, Low: 1, Close: 1},
		}, msg: "bar 1"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.bars.Validate()
			if tt.msg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}
