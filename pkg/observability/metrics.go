package observability

import (
	"github.com/aretw0/tendril/pkg/value"
	"github.com/aretw0/tendril/pkg/valuenode"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the graph collectors.
type Metrics struct {
	events   *prometheus.CounterVec
	resolved prometheus.Counter
	samples  prometheus.Histogram
}

// NewMetrics creates the collectors and registers them on reg. A nil reg
// leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		events: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tendril_graph_events_total",
				Help: "Total number of value graph events by type",
			},
			[]string{"type"},
		),
		resolved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tendril_placeholders_resolved_total",
			Help: "Total number of forward references resolved",
		}),
		samples: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "tendril_sample_table_size",
			Help:    "Number of change points per sampled node",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}),
	}
	if reg != nil {
		reg.MustRegister(m.events, m.resolved, m.samples)
	}
	return m
}

// Observe records ev. It satisfies valuenode.Observer.
func (m *Metrics) Observe(ev valuenode.Event) {
	m.events.WithLabelValues(string(ev.Type)).Inc()
	if ev.Type == valuenode.EventPlaceholderResolved {
		m.resolved.Inc()
	}
}

// Dispatch lets Metrics be installed directly with valuenode.WithDispatcher.
func (m *Metrics) Dispatch(ev valuenode.Event) {
	m.Observe(ev)
}

// Track subscribes m to every event on bus. The returned func detaches it.
func (m *Metrics) Track(bus *valuenode.Bus) func() {
	return bus.Subscribe(m.Observe)
}

// ObserveTable records the size of a sample table.
func (m *Metrics) ObserveTable(tb *value.Table) {
	m.samples.Observe(float64(tb.Len()))
}

// EventCounter returns the counter for events of type t.
func (m *Metrics) EventCounter(t valuenode.EventType) prometheus.Counter {
	return m.events.WithLabelValues(string(t))
}
