// Package sim is a single-asset trading environment over a table of
// features. An agent resets it, then steps it one row at a time with a
// buy, sell or hold action and receives the total profit as reward.
package sim

import (
	"fmt"
	"io"
	"math"

	"github.com/shopspring/decimal"
)

// Observation is the feature row at the current step followed by the
// balance and the shares held.
type Observation []float64

// Info carries auxiliary step data. It is currently always empty.
type Info map[string]any

// StepResult is what Step returns.
type StepResult struct {
	Observation Observation
	Reward      float64
	Done        bool
	Info        Info
}

// State is a snapshot of the environment.
type State struct {
	CurrentStep int
	Balance     float64
	SharesHeld  float64
	TotalProfit float64
}

// Env steps through a Table. The last row is never an action point: an
// episode is done once the cursor reaches it, so a valid next observation
// always exists while it is not done.
//
// An Env is not safe for concurrent use.
type Env struct {
	columns  []string
	rows     [][]float64
	prices   []decimal.Decimal
	priceIdx int

	initial     decimal.Decimal
	currentStep int
	pos         position
	totalProfit decimal.Decimal
}

// NewEnv copies table and sets up an episode with initialBalance in cash.
func NewEnv(table *Table, initialBalance float64) (*Env, error) {
	if err := table.validate(); err != nil {
		return nil, err
	}
	if math.IsNaN(initialBalance) || math.IsInf(initialBalance, 0) || initialBalance < 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBalance, initialBalance)
	}

	e := &Env{
		columns:  append([]string(nil), table.Columns...),
		rows:     make([][]float64, len(table.Rows)),
		prices:   make([]decimal.Decimal, len(table.Rows)),
		priceIdx: table.Index(PriceColumn),
		initial:  decimal.NewFromFloat(initialBalance),
	}
	for i, row := range table.Rows {
		p := row[e.priceIdx]
		if math.IsNaN(p) || math.IsInf(p, 0) || p <= 0 {
			return nil, fmt.Errorf("%w: row %d price %v", ErrInvalidPrice, i, p)
		}
		e.rows[i] = append([]float64(nil), row...)
		e.prices[i] = decimal.NewFromFloat(p)
	}
	e.Reset()
	return e, nil
}

// ObservationSpace describes the vectors returned by Reset and Step.
func (e *Env) ObservationSpace() Box {
	return Box{Shape: len(e.columns) + 2, Low: math.Inf(-1), High: math.Inf(1)}
}

// Reset starts a new episode at row 0 with the initial balance and no shares.
func (e *Env) Reset() Observation {
	e.currentStep = 0
	e.pos = position{balance: e.initial, shares: decimal.Zero}
	e.totalProfit = decimal.Zero
	return e.observation()
}

// Step applies a at the current row's price, advances one row and returns
// the observation of the new row. The reward is the total profit marked at
// the price the action executed at.
//
// Stepping an episode that is already done returns ErrOutOfRange and an
// invalid action returns ErrInvalidAction; neither changes the state.
func (e *Env) Step(a Action) (StepResult, error) {
	if !a.Valid() {
		return StepResult{}, fmt.Errorf("%w: %d", ErrInvalidAction, int(a))
	}
	if e.Done() {
		return StepResult{}, fmt.Errorf("%w: step %d of %d rows", ErrOutOfRange, e.currentStep, len(e.rows))
	}

	price := e.prices[e.currentStep]
	switch a {
	case Buy:
		e.pos.buy(price)
	case Sell:
		e.pos.sell(price)
	}

	e.currentStep++
	e.totalProfit = e.pos.totalProfit(price, e.initial)

	return StepResult{
		Observation: e.observation(),
		Reward:      e.totalProfit.InexactFloat64(),
		Done:        e.Done(),
		Info:        Info{},
	}, nil
}

// Done reports whether the cursor has reached the last row.
func (e *Env) Done() bool {
	return e.currentStep >= len(e.rows)-1
}

func (e *Env) State() State {
	return State{
		CurrentStep: e.currentStep,
		Balance:     e.pos.balance.InexactFloat64(),
		SharesHeld:  e.pos.shares.InexactFloat64(),
		TotalProfit: e.totalProfit.InexactFloat64(),
	}
}

// Len returns the number of rows in the episode.
func (e *Env) Len() int {
	return len(e.rows)
}

// Columns returns the table columns, without balance and shares.
func (e *Env) Columns() []string {
	return append([]string(nil), e.columns...)
}

// Price returns the price at the current row.
func (e *Env) Price() float64 {
	return e.prices[e.currentStep].InexactFloat64()
}

// Render writes a short human readable account of the current state.
func (e *Env) Render(w io.Writer) error {
	_, err := fmt.Fprintf(w,
		"Step: %d\nBalance: %s\nShares Held: %s\nCurrent Price: %s\nTotal Profit: %s\n",
		e.currentStep,
		e.pos.balance.StringFixed(2),
		e.pos.shares.String(),
		e.prices[e.currentStep].StringFixed(2),
		e.totalProfit.StringFixed(2),
	)
	return err
}

func (e *Env) observation() Observation {
	row := e.rows[e.currentStep]
	obs := make(Observation, 0, len(row)+2)
	obs = append(obs, row...)
	return append(obs, e.pos.balance.InexactFloat64(), e.pos.shares.InexactFloat64())
}
