package sim

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAction(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want Action
	}{
		{"hold", Hold},
		{"BUY", Buy},
		{" sell ", Sell},
		{"0", Hold},
		{"1", Buy},
		{"2", Sell},
	}
	for _, tt := range tests {
		got, err := ParseAction(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
		assert.True(t, got.Valid())
	}

	_, err := ParseAction("short")
	assert.ErrorIs(t, err, ErrInvalidAction)
}

func TestActionString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "hold", Hold.String())
	assert.Equal(t, "buy", Buy.String())
	assert.Equal(t, "sell", Sell.String())
	assert.Equal(t, "Action(-1)", Action(-1).String())
	assert.False(t, Action(-1).Valid())
}

func TestDiscreteSample(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewSource(1))
	space := ActionSpace()
	seen := map[Action]bool{}
	for i := 0; i < 100; i++ {
		a := space.Sample(r)
		assert.True(t, space.Contains(a))
		seen[a] = true
	}
	assert.Len(t, seen, 3)
}
