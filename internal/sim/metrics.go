package sim

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tinygo-org/ledfield/pattern"
)

// Metrics records tick timing and channel levels.
type Metrics struct {
	reg *prometheus.Registry

	ticks        prometheus.Counter
	overruns     prometheus.Counter
	tickDuration prometheus.Histogram
	duty         *prometheus.GaugeVec
}

var channelLabels = [pattern.Channels]string{"0", "1", "2", "3"}

// NewMetrics registers the simulator metrics on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Metrics{
		reg: reg,
		ticks: f.NewCounter(prometheus.CounterOpts{
			Namespace: "ledfield",
			Name:      "ticks_total",
			Help:      "Engine ticks executed.",
		}),
		overruns: f.NewCounter(prometheus.CounterOpts{
			Namespace: "ledfield",
			Name:      "tick_overruns_total",
			Help:      "Ticks whose update took longer than the tick period.",
		}),
		tickDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "ledfield",
			Name:      "tick_duration_seconds",
			Help:      "Time spent in one engine update.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 2, 14),
		}),
		duty: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "ledfield",
			Name:      "channel_duty_ratio",
			Help:      "Fraction of recent ticks each channel was lit.",
		}, []string{"channel"}),
	}
}

// ObserveTick records one update and reports whether it overran period.
func (m *Metrics) ObserveTick(took, period time.Duration) bool {
	m.ticks.Inc()
	m.tickDuration.Observe(took.Seconds())
	if took > period {
		m.overruns.Inc()
		return true
	}
	return false
}

// SetDuty publishes the current duty cycles.
func (m *Metrics) SetDuty(d [pattern.Channels]float64) {
	for i, v := range d {
		m.duty.WithLabelValues(channelLabels[i]).Set(v)
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}
