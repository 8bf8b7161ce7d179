package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "timerdash"

type Metrics struct {
	EntitiesStarted *prometheus.CounterVec
	TimersFinished  prometheus.Counter
	Laps            prometheus.Counter
	Actions         *prometheus.CounterVec
	Entities        *prometheus.GaugeVec
}

func New() *Metrics {
	return &Metrics{
		EntitiesStarted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entities_started_total",
			Help:      "Timers and stopwatches created.",
		}, []string{"kind"}),
		TimersFinished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "timers_finished_total",
			Help:      "Timer completions notified.",
		}),
		Laps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "laps_total",
			Help:      "Stopwatch laps recorded.",
		}),
		Actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "actions_total",
			Help:      "Action log records written, by action.",
		}, []string{"action"}),
		Entities: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "entities",
			Help:      "Tracked entities by kind and state.",
		}, []string{"kind", "state"}),
	}
}

func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.EntitiesStarted,
		m.TimersFinished,
		m.Laps,
		m.Actions,
		m.Entities,
	}
}

// Registry returns a fresh registry with m registered.
func (m *Metrics) Registry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(m.Collectors()...)
	return registry
}
