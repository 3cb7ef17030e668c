// Package strategies holds simple non-learning policies for the trading
// environment.
package strategies

import (
	"fmt"
	"strings"

	"github.com/rustyeddy/tradegym/sim"
)

// Names lists the policies New accepts.
var Names = []string{"hold", "random", "signal"}

// New returns the named policy. columns are the environment's table
// columns, used by policies that read features by name.
func New(name string, columns []string, seed int64) (sim.Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "hold", "noop", "none":
		return Hold{}, nil

	case "random":
		return NewRandom(seed), nil

	case "signal":
		return NewSignal(columns)

	default:
		return nil, fmt.Errorf("unknown policy %q (supported: %s)", name, strings.Join(Names, ", "))
	}
}
