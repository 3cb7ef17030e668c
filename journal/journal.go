// Package journal persists simulation runs, their steps and computed
// feature tables.
package journal

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("not found")

// StepRecord is one environment step of one episode.
type StepRecord struct {
	RunID      string
	Episode    int
	Step       int
	Time       time.Time
	Action     string
	Price      float64
	Balance    float64
	SharesHeld float64
	Reward     float64
	Done       bool
}

type Journal interface {
	RecordRun(Run) error
	RecordStep(StepRecord) error
	Close() error
}
