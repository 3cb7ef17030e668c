package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	t.Parallel()

	r := New(1000)
	r.ObserveStep("buy", 0)
	r.ObserveStep("hold", 12.5)
	r.ObserveStep("hold", -3)
	r.ObserveEpisode(-3)

	assert.Equal(t, 1.0, testutil.ToFloat64(r.steps.WithLabelValues("buy")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.steps.WithLabelValues("hold")))
	assert.Equal(t, -3.0, testutil.ToFloat64(r.lastReward))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.episodes))

	n, err := testutil.GatherAndCount(r.Registry(), "tradegym_episode_return")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRecordersAreIndependent(t *testing.T) {
	t.Parallel()

	a, b := New(1000), New(1000)
	a.ObserveEpisode(1)
	assert.Equal(t, 0.0, testutil.ToFloat64(b.episodes))
}

func TestNilRecorder(t *testing.T) {
	t.Parallel()

	var r *Recorder
	assert.NotPanics(t, func() {
		r.ObserveStep("sell", 1)
		r.ObserveEpisode(1)
	})
}

func TestHandler(t *testing.T) {
	t.Parallel()

	r := New(1000)
	r.ObserveStep("sell", 4)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Result().Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `tradegym_steps_total{action="sell"} 1`)
}

func TestReturnBuckets(t *testing.T) {
	t.Parallel()

	b := ReturnBuckets(10000)
	require.Len(t, b, 13)
	assert.Equal(t, -10000.0, b[0])
	assert.Equal(t, 0.0, b[4])
	assert.Equal(t, 20000.0, b[12])

	assert.Equal(t, ReturnBuckets(defaultReturnScale), ReturnBuckets(0))
}
