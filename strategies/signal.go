package strategies

import (
	"fmt"
	"math"

	"github.com/rustyeddy/tradegym/indicators"
	"github.com/rustyeddy/tradegym/sim"
)

// Signal trades momentum against its oversold and overbought references.
// It buys when momentum is above overbought on volume that is not Low,
// sells when momentum is below oversold, and holds otherwise, including
// while momentum is unknown.
type Signal struct {
	momentum   int
	overbought int
	oversold   int
	color      int
}

// NewSignal locates the feature columns it reads in columns.
func NewSignal(columns []string) (*Signal, error) {
	idx := make(map[string]int, len(columns))
	for i, c := range columns {
		idx[c] = i
	}

	s := &Signal{}
	for _, f := range []struct {
		col string
		dst *int
	}{
		{indicators.ColMomentum, &s.momentum},
		{indicators.ColMomOverbought, &s.overbought},
		{indicators.ColMomOversold, &s.oversold},
		{indicators.ColVolumeColor, &s.color},
	} {
		i, ok := idx[f.col]
		if !ok {
			return nil, fmt.Errorf("signal policy: %w: %q", sim.ErrMissingColumn, f.col)
		}
		*f.dst = i
	}
	return s, nil
}

func (s *Signal) Name() string { return "signal" }

func (s *Signal) Act(obs sim.Observation) (sim.Action, error) {
	for _, i := range []int{s.momentum, s.overbought, s.oversold, s.color} {
		if i >= len(obs) {
			return sim.Hold, fmt.Errorf("signal policy: observation has %d values, need index %d", len(obs), i)
		}
	}

	mom := obs[s.momentum]
	if math.IsNaN(mom) {
		return sim.Hold, nil
	}
	switch {
	case mom > obs[s.overbought] && obs[s.color] != indicators.VolumeLow.Float64():
		return sim.Buy, nil
	case mom < obs[s.oversold]:
		return sim.Sell, nil
	default:
		return sim.Hold, nil
	}
}
