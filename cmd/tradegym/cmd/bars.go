package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/rustyeddy/tradegym/market"
	"github.com/rustyeddy/tradegym/market/data"
)

const apiKeyEnv = "POLYGON_API_KEY"

// loadBars reads bars from path when it is set and from the configured data
// source otherwise. It also returns a name for the data set.
func loadBars(ctx context.Context, path string) (market.Bars, string, error) {
	src := cfg.Data.Source
	if path != "" {
		src = "file"
	} else {
		path = cfg.Data.Path
	}

	var (
		bars    market.Bars
		dataset string
		err     error
	)
	switch src {
	case "file":
		if path == "" {
			return nil, "", fmt.Errorf("no input file: use -i or set data.path")
		}
		bars, err = data.LoadFile(ctx, path)
		dataset = path

	case "polygon", "binance":
		start, end, rerr := cfg.Data.Range()
		if rerr != nil {
			return nil, "", rerr
		}
		bars, err = fetchBars(ctx, src, cfg.Data.Symbol, cfg.Data.Interval, start, end, os.Getenv(apiKeyEnv))
		dataset = fmt.Sprintf("%s:%s:%s", src, cfg.Data.Symbol, cfg.Data.Interval)

	case "synthetic":
		gc := data.DefaultGeneratorConfig()
		gc.Seed = cfg.Simulation.Seed
		bars = data.Generate(gc)
		dataset = fmt.Sprintf("synthetic:%d", gc.Seed)

	default:
		return nil, "", fmt.Errorf("unknown data source %q", src)
	}
	if err != nil {
		return nil, "", err
	}

	if err := bars.Validate(); err != nil {
		return nil, "", fmt.Errorf("%s: %w", dataset, err)
	}
	log.Info("bars loaded",
		zap.String("dataset", dataset),
		zap.Int("bars", bars.Len()),
	)
	return bars, dataset, nil
}

// fetchBars downloads bars from a provider with a progress spinner on stderr.
func fetchBars(ctx context.Context, provider, symbol, interval string, start, end time.Time, apiKey string) (market.Bars, error) {
	p, err := data.NewProvider(provider, apiKey, log.Logger)
	if err != nil {
		return nil, err
	}
	mult, span, err := data.ParseInterval(interval)
	if err != nil {
		return nil, err
	}

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(fmt.Sprintf("Downloading %s", symbol)),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
	)
	defer bar.Finish()

	return p.Bars(ctx, data.Request{
		Symbol:     symbol,
		Start:      start,
		End:        end,
		Multiplier: mult,
		Timespan:   span,
		OnProgress: func(n int) { _ = bar.Set(n) },
	})
}
