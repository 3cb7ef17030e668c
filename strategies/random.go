package strategies

import (
	"math/rand"

	"github.com/rustyeddy/tradegym/sim"
)

// Random samples the action space uniformly. The same seed gives the same
// action sequence.
type Random struct {
	rng   *rand.Rand
	space sim.Discrete
}

func NewRandom(seed int64) *Random {
	return &Random{
		rng:   rand.New(rand.NewSource(seed)),
		space: sim.ActionSpace(),
	}
}

func (r *Random) Name() string { return "random" }

func (r *Random) Act(sim.Observation) (sim.Action, error) {
	return r.space.Sample(r.rng), nil
}
