package data

import (
	"context"
	"fmt"
	"strconv"
	"time"

	binance "github.com/adshao/go-binance/v2"
	"go.uber.org/zap"

	"github.com/rustyeddy/tradegym/market"
)

// binancePageSize is the largest kline page Binance serves.
const binancePageSize = 1000

type klinesFunc func(ctx context.Context, symbol, interval string, start, end int64, limit int) ([]*binance.Kline, error)

// Binance fetches crypto klines from the public Binance API.
type Binance struct {
	klines klinesFunc
	logger *zap.Logger
}

func NewBinance(logger *zap.Logger) *Binance {
	client := binance.NewClient("", "")
	return &Binance{
		klines: func(ctx context.Context, symbol, interval string, start, end int64, limit int) ([]*binance.Kline, error) {
			return client.NewKlinesService().
				Symbol(symbol).
				Interval(interval).
				StartTime(start).
				EndTime(end).
				Limit(limit).
				Do(ctx)
		},
		logger: logger,
	}
}

func (b *Binance) Name() string { return "binance" }

func (b *Binance) Bars(ctx context.Context, req Request) (market.Bars, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	interval, err := binanceInterval(req.Multiplier, req.Timespan)
	if err != nil {
		return nil, err
	}

	start := req.Start.UnixMilli()
	end := req.End.UnixMilli()

	var bars market.Bars
	for start < end {
		page, err := b.klines(ctx, req.Symbol, interval, start, end, binancePageSize)
		if err != nil {
			return nil, fmt.Errorf("binance klines for %s: %w", req.Symbol, err)
		}
		if len(page) == 0 {
			break
		}
		for _, k := range page {
			bar, err := klineBar(k)
			if err != nil {
				return nil, err
			}
			bars = append(bars, bar)
		}
		req.progress(len(bars))

		if len(page) < binancePageSize {
			break
		}
		start = page[len(page)-1].CloseTime + 1
	}

	b.logger.Info("fetched bars",
		zap.String("provider", b.Name()),
		zap.String("symbol", req.Symbol),
		zap.String("interval", interval),
		zap.Int("bars", len(bars)),
	)
	return bars, nil
}

func klineBar(k *binance.Kline) (market.Bar, error) {
	var (
		bar market.Bar
		err error
	)
	bar.Time = time.UnixMilli(k.OpenTime).UTC()
	for _, f := range []struct {
		dst *float64
		src string
	}{
		{&bar.Open, k.Open}, {&bar.High, k.High}, {&bar.Low, k.Low}, {&bar.Close, k.Close}, {&bar.Volume, k.Volume},
	} {
		if *f.dst, err = strconv.ParseFloat(f.src, 64); err != nil {
			return market.Bar{}, fmt.Errorf("kline at %d: %w", k.OpenTime, err)
		}
	}
	return bar, nil
}

// binanceInterval maps a multiplier and timespan onto the intervals
// Binance serves: 1m 3m 5m 15m 30m 1h 2h 4h 6h 8h 12h 1d 3d 1w 1M.
func binanceInterval(mult int, timespan string) (string, error) {
	var s string
	switch timespan {
	case "minute":
		s = fmt.Sprintf("%dm", mult)
	case "hour":
		s = fmt.Sprintf("%dh", mult)
	case "day":
		s = fmt.Sprintf("%dd", mult)
	case "week":
		s = fmt.Sprintf("%dw", mult)
	case "month":
		s = fmt.Sprintf("%dM", mult)
	}
	switch s {
	case "1m", "3m", "5m", "15m", "30m", "1h", "2h", "4h", "6h", "8h", "12h", "1d", "3d", "1w", "1M":
		return s, nil
	}
	return "", fmt.Errorf("binance does not serve %d %s bars", mult, timespan)
}
