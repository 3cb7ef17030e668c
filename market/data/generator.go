package data

import (
	"math"
	"math/rand"
	"time"

	"github.com/rustyeddy/tradegym/market"
)

// GeneratorConfig configures synthetic bars.
type GeneratorConfig struct {
	Start          time.Time
	Interval       time.Duration
	Count          int
	InitialPrice   float64
	Volatility     float64 // per-bar, 0.01 = 1%
	Trend          float64 // total drift over the series
	VolumeBase     float64
	VolumeVariance float64 // 0.0 to 1.0
	Seed           int64
}

func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Start:          time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		Interval:       24 * time.Hour,
		Count:          500,
		InitialPrice:   100,
		Volatility:     0.02,
		VolumeBase:     10000,
		VolumeVariance: 0.3,
		Seed:           1,
	}
}

// Generate produces bars following a geometric Brownian motion. The same
// config always produces the same bars.
func Generate(cfg GeneratorConfig) market.Bars {
	rng := rand.New(rand.NewSource(cfg.Seed))
	bars := make(market.Bars, cfg.Count)

	price := cfg.InitialPrice
	ts := cfg.Start
	drift := 0.0
	if cfg.Count > 0 {
		drift = cfg.Trend / float64(cfg.Count)
	}

	for i := range bars {
		open := price
		closePx := open * (1 + cfg.Volatility*rng.NormFloat64() + drift)
		if closePx <= 0 {
			closePx = open * 0.99
		}

		high := math.Max(open, closePx) + rng.Float64()*cfg.Volatility*open*0.5
		low := math.Min(open, closePx) - rng.Float64()*cfg.Volatility*open*0.5
		if low <= 0 {
			low = math.Min(open, closePx) * 0.99
		}

		volume := cfg.VolumeBase * (1 + (rng.Float64()*2-1)*cfg.VolumeVariance)
		if volume < 0 {
			volume = cfg.VolumeBase * 0.1
		}

		bars[i] = market.Bar{
			Time:   ts,
			Open:   round(open, 4),
			High:   round(high, 4),
			Low:    round(low, 4),
			Close:  round(closePx, 4),
			Volume: round(volume, 2),
		}
		price = closePx
		ts = ts.Add(cfg.Interval)
	}
	return bars
}

func round(v float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(v*pow) / pow
}
