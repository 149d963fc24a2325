package metrics

import "github.com/prometheus/client_golang/prometheus"

// BroadcasterMetrics holds Prometheus metrics for the live catalog broadcaster.
type BroadcasterMetrics struct {
	Ticks            prometheus.Counter
	TickDuration     prometheus.Histogram
	LastTick         prometheus.Gauge
	Subscribers      prometheus.Gauge
	DeliveryFailures prometheus.Counter
	Panics           prometheus.Counter
	StopTimeouts     prometheus.Counter
}

// NewBroadcasterMetrics creates and registers broadcaster metrics on the given registry.
func NewBroadcasterMetrics(reg prometheus.Registerer) *BroadcasterMetrics {
	m := &BroadcasterMetrics{
		Ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "broadcaster",
			Name:      "ticks_total",
			Help:      "Total number of catalog refresh ticks.",
		}),
		TickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "broadcaster",
			Name:      "tick_duration_seconds",
			Help:      "Duration of a refresh-and-broadcast tick in seconds.",
			Buckets:   []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
		}),
		LastTick: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "broadcaster",
			Name:      "last_tick_timestamp_seconds",
			Help:      "Unix time of the most recently published snapshot.",
		}),
		Subscribers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "broadcaster",
			Name:      "subscribers",
			Help:      "Number of registered catalog subscribers.",
		}),
		DeliveryFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "broadcaster",
			Name:      "delivery_failures_total",
			Help:      "Total number of subscribers dropped after a failed push.",
		}),
		Panics: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "broadcaster",
			Name:      "panics_total",
			Help:      "Total broadcaster panic recoveries.",
		}),
		StopTimeouts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "broadcaster",
			Name:      "stop_timeouts_total",
			Help:      "Broadcaster stops that exceeded the timeout.",
		}),
	}

	reg.MustRegister(m.Ticks, m.TickDuration, m.LastTick, m.Subscribers, m.DeliveryFailures, m.Panics, m.StopTimeouts)
	return m
}
