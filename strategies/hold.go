package strategies

import "github.com/rustyeddy/tradegym/sim"

// Hold never trades.
type Hold struct{}

func (Hold) Name() string { return "hold" }

func (Hold) Act(sim.Observation) (sim.Action, error) {
	return sim.Hold, nil
}
