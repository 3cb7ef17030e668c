package data

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/rustyeddy/tradegym/market"
)

// Progress is called with the number of bars fetched so far.
type Progress func(fetched int)

// Request selects a historical bar series.
type Request struct {
	Symbol     string    `validate:"required"`
	Start      time.Time `validate:"required"`
	End        time.Time `validate:"required,gtfield=Start"`
	Multiplier int       `validate:"gte=1"`
	Timespan   string    `validate:"oneof=minute hour day week month"`

	OnProgress Progress `validate:"-"`
}

var validate = validator.New()

func (r Request) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("invalid request: %w", err)
	}
	return nil
}

func (r Request) progress(n int) {
	if r.OnProgress != nil {
		r.OnProgress(n)
	}
}

// ParseInterval splits an interval such as "1d", "15m", "4h", "1w" or "1M"
// into a multiplier and timespan.
func ParseInterval(s string) (int, string, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return 0, "", fmt.Errorf("bad interval %q", s)
	}
	var mult int
	if _, err := fmt.Sscanf(s[:len(s)-1], "%d", &mult); err != nil || mult < 1 {
		return 0, "", fmt.Errorf("bad interval %q", s)
	}
	switch s[len(s)-1] {
	case 'm':
		return mult, "minute", nil
	case 'h':
		return mult, "hour", nil
	case 'd':
		return mult, "day", nil
	case 'w':
		return mult, "week", nil
	case 'M':
		return mult, "month", nil
	}
	return 0, "", fmt.Errorf("bad interval %q", s)
}

// Provider fetches historical bars from a market data service.
type Provider interface {
	Name() string
	Bars(ctx context.Context, req Request) (market.Bars, error)
}

// NewProvider returns the named provider. Polygon needs an API key;
// Binance public klines do not.
func NewProvider(name, apiKey string, logger *zap.Logger) (Provider, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	switch strings.ToLower(name) {
	case "polygon":
		return NewPolygon(apiKey, logger)
	case "binance":
		return NewBinance(logger), nil
	}
	return nil, fmt.Errorf("unknown provider %q", name)
}
