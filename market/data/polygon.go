package data

import (
	"context"
	"errors"
	"fmt"
	"time"

	polygon "github.com/polygon-io/client-go/rest"
	"github.com/polygon-io/client-go/rest/models"
	"go.uber.org/zap"

	"github.com/rustyeddy/tradegym/market"
)

type aggsIterator interface {
	Next() bool
	Item() models.Agg
	Err() error
}

type aggsLister interface {
	ListAggs(ctx context.Context, params *models.ListAggsParams, opts ...models.RequestOption) aggsIterator
}

type polygonREST struct {
	client *polygon.Client
}

func (p polygonREST) ListAggs(ctx context.Context, params *models.ListAggsParams, opts ...models.RequestOption) aggsIterator {
	return p.client.ListAggs(ctx, params, opts...)
}

// Polygon fetches stock aggregates from polygon.io.
type Polygon struct {
	api    aggsLister
	logger *zap.Logger
}

func NewPolygon(apiKey string, logger *zap.Logger) (*Polygon, error) {
	if apiKey == "" {
		return nil, errors.New("polygon: api key is required")
	}
	return &Polygon{api: polygonREST{client: polygon.New(apiKey)}, logger: logger}, nil
}

func (p *Polygon) Name() string { return "polygon" }

func (p *Polygon) Bars(ctx context.Context, req Request) (market.Bars, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	params := models.ListAggsParams{
		Ticker:     req.Symbol,
		Multiplier: req.Multiplier,
		Timespan:   models.Timespan(req.Timespan),
		From:       models.Millis(req.Start),
		To:         models.Millis(req.End),
	}.WithLimit(50000)

	iter := p.api.ListAggs(ctx, params)

	var bars market.Bars
	for iter.Next() {
		agg := iter.Item()
		bars = append(bars, market.Bar{
			Time:   time.Time(agg.Timestamp).UTC(),
			Open:   agg.Open,
			High:   agg.High,
			Low:    agg.Low,
			Close:  agg.Close,
			Volume: agg.Volume,
		})
		if len(bars)%1000 == 0 {
			req.progress(len(bars))
		}
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("polygon aggregates for %s: %w", req.Symbol, err)
	}
	req.progress(len(bars))

	p.logger.Info("fetched bars",
		zap.String("provider", p.Name()),
		zap.String("symbol", req.Symbol),
		zap.Int("bars", len(bars)),
	)
	return bars, nil
}
