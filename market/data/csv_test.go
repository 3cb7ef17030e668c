package data

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/tradegym/market"
)

func TestLoadCSV(t *testing.T) {
	t.Parallel()

	in := `timestamp,Open,High,Low,Close,Volume,trade_count
2024-01-02,100,105,99,104,1200,10
2024-01-03,104,106,101,102.5,900,8
`
	bars, err := LoadCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, bars, 2)

	assert.Equal(t, market.Bar{
		Time:   time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
		Open:   104,
		High:   106,
		Low:    101,
		Close:  102.5,
		Volume: 900,
	}, bars[1])
}

func TestLoadCSVWithoutTime(t *testing.T) {
	t.Parallel()

	in := "high,low,close,volume\n2,1,1.5,10\n3,2,2.5,\n"
	bars, err := LoadCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, bars, 2)

	assert.Nil(t, bars.Times())
	assert.True(t, math.IsNaN(bars[0].Open))
	assert.True(t, math.IsNaN(bars[1].Volume))
}

func TestLoadCSVMissingColumn(t *testing.T) {
	t.Parallel()

	_, err := LoadCSV(strings.NewReader("time,high,low,close\n2024-01-02,2,1,1.5\n"))
	assert.ErrorIs(t, err, market.ErrMissingColumn)
	assert.ErrorContains(t, err, "volume")
}

func TestLoadCSVBadTime(t *testing.T) {
	t.Parallel()

	_, err := LoadCSV(strings.NewReader("time,high,low,close,volume\nyesterday,2,1,1.5,1\n"))
	assert.ErrorContains(t, err, "yesterday")
}

func TestParseTime(t *testing.T) {
	t.Parallel()

	want := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2024-05-06T07:08:09Z", want},
		{"2024-05-06T09:08:09+02:00", want},
		{"2024-05-06 07:08:09+00:00", want},
		{"2024-05-06 07:08:09", want},
		{"1714979289", want},
		{"1714979289000", want},
		{"2024-05-06", time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)},
		{"", time.Time{}},
	}
	for _, tt := range tests {
		got, err := parseTime(tt.in)
		require.NoError(t, err, tt.in)
		assert.True(t, tt.want.Equal(got), "%s: got %s", tt.in, got)
	}
}

func TestWriteCSVRoundTrip(t *testing.T) {
	t.Parallel()

	cfg := DefaultGeneratorConfig()
	cfg.Count = 25
	bars := Generate(cfg)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, bars))
	assert.True(t, strings.HasPrefix(buf.String(), "time,open,high,low,close,volume\n"))

	got, err := LoadCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, bars, got)
}
