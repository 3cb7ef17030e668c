package sim

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func priceTable(prices ...float64) *Table {
	t := &Table{Columns: []string{"momentum", PriceColumn}}
	for i, p := range prices {
		t.Rows = append(t.Rows, []float64{float64(i), p})
	}
	return t
}

func newEnv(t *testing.T, balance float64, prices ...float64) *Env {
	t.Helper()
	e, err := NewEnv(priceTable(prices...), balance)
	require.NoError(t, err)
	return e
}

func TestEnvBuySellScenario(t *testing.T) {
	t.Parallel()

	e := newEnv(t, 1000, 100, 110, 120)

	res, err := e.Step(Buy)
	require.NoError(t, err)
	assert.Equal(t, State{CurrentStep: 1, Balance: 0, SharesHeld: 10, TotalProfit: 0}, e.State())
	assert.Equal(t, 0.0, res.Reward)
	assert.False(t, res.Done)
	assert.Equal(t, Observation{1, 110, 0, 10}, res.Observation)

	res, err = e.Step(Sell)
	require.NoError(t, err)
	assert.Equal(t, State{CurrentStep: 2, Balance: 1100, SharesHeld: 0, TotalProfit: 100}, e.State())
	assert.Equal(t, 100.0, res.Reward)
	assert.True(t, res.Done)
	assert.Empty(t, res.Info)
}

func TestEnvReset(t *testing.T) {
	t.Parallel()

	e := newEnv(t, 500, 10, 20, 30)
	obs := e.Reset()
	assert.Equal(t, Observation{0, 10, 500, 0}, obs)

	_, err := e.Step(Buy)
	require.NoError(t, err)

	obs = e.Reset()
	assert.Equal(t, Observation{0, 10, 500, 0}, obs)
	assert.Equal(t, State{Balance: 500}, e.State())
}

func TestEnvBoundaryNoOps(t *testing.T) {
	t.Parallel()

	t.Run("buy below price", func(t *testing.T) {
		t.Parallel()

		e := newEnv(t, 50, 100, 100, 100)
		_, err := e.Step(Buy)
		require.NoError(t, err)
		assert.Equal(t, 50.0, e.State().Balance)
		assert.Equal(t, 0.0, e.State().SharesHeld)
	})

	t.Run("sell with no shares", func(t *testing.T) {
		t.Parallel()

		e := newEnv(t, 50, 100, 100, 100)
		_, err := e.Step(Sell)
		require.NoError(t, err)
		assert.Equal(t, 50.0, e.State().Balance)
	})

	t.Run("buy floors shares", func(t *testing.T) {
		t.Parallel()

		e := newEnv(t, 1000, 30, 30)
		_, err := e.Step(Buy)
		require.NoError(t, err)
		assert.Equal(t, 33.0, e.State().SharesHeld)
		assert.InDelta(t, 10.0, e.State().Balance, 1e-9)
	})
}

func TestEnvRewardIsRecomputed(t *testing.T) {
	t.Parallel()

	prices := []float64{100, 90, 120, 80, 130}
	actions := []Action{Buy, Hold, Hold, Sell}
	e := newEnv(t, 1000, prices...)

	for k, a := range actions {
		res, err := e.Step(a)
		require.NoError(t, err)
		st := e.State()
		want := st.Balance + st.SharesHeld*prices[k] - 1000
		assert.InDelta(t, want, res.Reward, 1e-9, "step %d", k)
		assert.Equal(t, res.Reward, st.TotalProfit)
	}
	// Bought 10 at 100, sold at 80.
	assert.InDelta(t, -200.0, e.State().TotalProfit, 1e-9)
}

func TestEnvTermination(t *testing.T) {
	t.Parallel()

	for _, n := range []int{2, 3, 10} {
		prices := make([]float64, n)
		for i := range prices {
			prices[i] = 1
		}
		e := newEnv(t, 10, prices...)

		steps := 0
		for !e.Done() {
			res, err := e.Step(Hold)
			require.NoError(t, err)
			steps++
			assert.Equal(t, e.State().CurrentStep == n-1, res.Done)
		}
		assert.Equal(t, n-1, steps)
		assert.Equal(t, n-1, e.State().CurrentStep)
	}
}

func TestEnvSingleRowIsDone(t *testing.T) {
	t.Parallel()

	e := newEnv(t, 10, 5)
	assert.True(t, e.Done())
	_, err := e.Step(Hold)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestEnvStepErrorsLeaveState(t *testing.T) {
	t.Parallel()

	e := newEnv(t, 1000, 100, 110)
	_, err := e.Step(Action(7))
	require.ErrorIs(t, err, ErrInvalidAction)
	assert.Equal(t, State{Balance: 1000}, e.State())

	_, err = e.Step(Buy)
	require.NoError(t, err)
	before := e.State()

	_, err = e.Step(Sell)
	require.ErrorIs(t, err, ErrOutOfRange)
	assert.Equal(t, before, e.State())
}

func TestNewEnvErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		table   *Table
		balance float64
		want    error
	}{
		{"nil table", nil, 10, ErrEmptyTable},
		{"no rows", &Table{Columns: []string{PriceColumn}}, 10, ErrEmptyTable},
		{"no price", &Table{Columns: []string{"close"}, Rows: [][]float64{{1}}}, 10, ErrMissingColumn},
		{"ragged", &Table{Columns: []string{PriceColumn}, Rows: [][]float64{{1, 2}}}, 10, ErrRowWidth},
		{"zero price", priceTable(1, 0), 10, ErrInvalidPrice},
		{"nan price", priceTable(math.NaN()), 10, ErrInvalidPrice},
		{"negative balance", priceTable(1), -1, ErrInvalidBalance},
		{"inf balance", priceTable(1), math.Inf(1), ErrInvalidBalance},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewEnv(tt.table, tt.balance)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestEnvCopiesTable(t *testing.T) {
	t.Parallel()

	table := priceTable(10, 20)
	e, err := NewEnv(table, 100)
	require.NoError(t, err)

	table.Rows[0][0] = 99
	table.Columns[0] = "changed"
	assert.Equal(t, Observation{0, 10, 100, 0}, e.Reset())
	assert.Equal(t, []string{"momentum", PriceColumn}, e.Columns())
	assert.Equal(t, 2, e.Len())
	assert.Equal(t, 10.0, e.Price())
}

func TestEnvSpaces(t *testing.T) {
	t.Parallel()

	e := newEnv(t, 100, 10, 20)
	box := e.ObservationSpace()
	assert.Equal(t, 4, box.Shape)
	assert.True(t, box.Contains(e.Reset()))
	assert.False(t, box.Contains(Observation{1}))

	space := ActionSpace()
	assert.Equal(t, 3, space.N)
	assert.True(t, space.Contains(Sell))
	assert.False(t, space.Contains(Action(3)))
}

func TestEnvRender(t *testing.T) {
	t.Parallel()

	e := newEnv(t, 1000, 100, 110, 120)
	_, err := e.Step(Buy)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, e.Render(&buf))
	assert.Equal(t,
		"Step: 1\nBalance: 0.00\nShares Held: 10\nCurrent Price: 110.00\nTotal Profit: 0.00\n",
		buf.String())
}
