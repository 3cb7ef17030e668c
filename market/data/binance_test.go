package data

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	binance "github.com/adshao/go-binance/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func kline(open time.Time, close float64) *binance.Kline {
	c := strconv.FormatFloat(close, 'f', -1, 64)
	return &binance.Kline{
		OpenTime:  open.UnixMilli(),
		CloseTime: open.Add(time.Hour).UnixMilli() - 1,
		Open:      c,
		High:      c,
		Low:       c,
		Close:     c,
		Volume:    "10.5",
	}
}

func TestBinanceBarsPaginates(t *testing.T) {
	t.Parallel()

	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	first := make([]*binance.Kline, binancePageSize)
	for i := range first {
		first[i] = kline(t0.Add(time.Duration(i)*time.Hour), float64(i))
	}
	second := []*binance.Kline{kline(t0.Add(binancePageSize*time.Hour), 1000)}

	var starts []int64
	var interval string
	b := &Binance{
		logger: zap.NewNop(),
		klines: func(_ context.Context, _ string, iv string, start, _ int64, _ int) ([]*binance.Kline, error) {
			interval = iv
			starts = append(starts, start)
			if len(starts) == 1 {
				return first, nil
			}
			return second, nil
		},
	}

	req := validRequest()
	req.Symbol = "BTCUSDT"
	req.Multiplier = 1
	req.Timespan = "hour"
	req.End = t0.AddDate(0, 3, 0)

	bars, err := b.Bars(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, bars, binancePageSize+1)

	assert.Equal(t, "1h", interval)
	require.Len(t, starts, 2)
	assert.Equal(t, first[len(first)-1].CloseTime+1, starts[1])
	assert.Equal(t, 1000.0, bars[binancePageSize].Close)
	assert.Equal(t, 10.5, bars[0].Volume)
	assert.True(t, t0.Equal(bars[0].Time))
}

func TestBinanceBarsErrors(t *testing.T) {
	t.Parallel()

	b := &Binance{
		logger: zap.NewNop(),
		klines: func(context.Context, string, string, int64, int64, int) ([]*binance.Kline, error) {
			return nil, errors.New("teapot")
		},
	}
	_, err := b.Bars(context.Background(), validRequest())
	assert.ErrorContains(t, err, "teapot")

	req := validRequest()
	req.Multiplier = 7
	_, err = b.Bars(context.Background(), req)
	assert.ErrorContains(t, err, "does not serve")
}

func TestKlineBarBadNumber(t *testing.T) {
	t.Parallel()

	k := kline(time.Now(), 1)
	k.High = "n/a"
	_, err := klineBar(k)
	assert.Error(t, err)
}

func TestBinanceInterval(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		mult     int
		timespan string
		want     string
	}{
		{1, "minute", "1m"}, {15, "minute", "15m"}, {4, "hour", "4h"},
		{1, "day", "1d"}, {3, "day", "3d"}, {1, "week", "1w"}, {1, "month", "1M"},
	} {
		got, err := binanceInterval(tt.mult, tt.timespan)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := binanceInterval(2, "week")
	assert.Error(t, err)
}
