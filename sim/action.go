package sim

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
)

// Action is the discrete decision taken at each step.
type Action int

const (
	Hold Action = iota
	Buy
	Sell
)

func (a Action) String() string {
	switch a {
	case Hold:
		return "hold"
	case Buy:
		return "buy"
	case Sell:
		return "sell"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

func (a Action) Valid() bool {
	return a >= Hold && a <= Sell
}

// ParseAction accepts an action name in any case, or its numeric code.
func ParseAction(s string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hold", "0":
		return Hold, nil
	case "buy", "1":
		return Buy, nil
	case "sell", "2":
		return Sell, nil
	}
	return Hold, fmt.Errorf("%w: %q", ErrInvalidAction, s)
}

// Discrete is a space of N actions numbered 0..N-1.
type Discrete struct {
	N int
}

func (d Discrete) Contains(a Action) bool {
	return int(a) >= 0 && int(a) < d.N
}

func (d Discrete) Sample(r *rand.Rand) Action {
	return Action(r.Intn(d.N))
}

// Box is an unbounded real vector space of fixed length.
type Box struct {
	Shape int
	Low   float64
	High  float64
}

func (b Box) Contains(obs Observation) bool {
	if len(obs) != b.Shape {
		return false
	}
	for _, v := range obs {
		if !math.IsNaN(v) && (v < b.Low || v > b.High) {
			return false
		}
	}
	return true
}

// ActionSpace is the three-action space of the environment.
func ActionSpace() Discrete {
	return Discrete{N: 3}
}
