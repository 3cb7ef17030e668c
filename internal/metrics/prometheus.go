package metrics

import (
	"math"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder collects simulation metrics in its own registry. A nil
// *Recorder is valid and records nothing.
type Recorder struct {
	registry      *prometheus.Registry
	episodes      prometheus.Counter
	steps         *prometheus.CounterVec
	lastReward    prometheus.Gauge
	episodeReturn prometheus.Histogram
}

// defaultReturnScale is used when the initial balance is not positive.
const defaultReturnScale = 1000

// ReturnBuckets spans episode returns from losing the whole initial balance
// to tripling it, in steps of a quarter of the balance.
func ReturnBuckets(initialBalance float64) []float64 {
	scale := initialBalance
	if !(scale > 0) || math.IsInf(scale, 0) {
		scale = defaultReturnScale
	}
	return prometheus.LinearBuckets(-scale, scale/4, 13)
}

// New creates a new Prometheus metrics recorder. Episode return buckets are
// scaled to initialBalance.
func New(initialBalance float64) *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		episodes: factory.NewCounter(prometheus.CounterOpts{
			Name: "tradegym_episodes_total",
			Help: "Total number of finished episodes",
		}),
		steps: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tradegym_steps_total",
				Help: "Total number of environment steps by action",
			},
			[]string{"action"},
		),
		lastReward: factory.NewGauge(prometheus.GaugeOpts{
			Name: "tradegym_last_reward",
			Help: "Reward returned by the most recent step",
		}),
		episodeReturn: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "tradegym_episode_return",
			Help:    "Total profit at the end of each episode",
			Buckets: ReturnBuckets(initialBalance),
		}),
	}
}

// ObserveStep records one step.
func (r *Recorder) ObserveStep(action string, reward float64) {
	if r == nil {
		return
	}
	r.steps.WithLabelValues(action).Inc()
	r.lastReward.Set(reward)
}

// ObserveEpisode records a finished episode and its return.
func (r *Recorder) ObserveEpisode(ret float64) {
	if r == nil {
		return
	}
	r.episodes.Inc()
	r.episodeReturn.Observe(ret)
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the recorder's metrics.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
