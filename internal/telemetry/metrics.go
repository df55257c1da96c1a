package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Sink receives fire-and-forget business events. Implementations must never
// panic back into the orchestrator.
type Sink interface {
	IncrementCounter(name string)
	RecordDistribution(name string, value float64)
}

// Noop discards every event.
type Noop struct{}

func (Noop) IncrementCounter(string)            {}
func (Noop) RecordDistribution(string, float64) {}

type prom struct {
	counters      *prometheus.CounterVec
	distributions *prometheus.HistogramVec
}

// NewPrometheus registers the order-core metric families with reg and
// returns a sink feeding them.
func NewPrometheus(reg prometheus.Registerer) Sink {
	counters := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "orders",
		Name:      "events_total",
		Help:      "Total count of order lifecycle events.",
	}, []string{"event"})
	distributions := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "orders",
		Name:      "amount_minor_units",
		Help:      "Order amount distributions in minor currency units.",
		Buckets:   prometheus.ExponentialBuckets(1000, 4, 10),
	}, []string{"event"})

	reg.MustRegister(counters, distributions)
	return &prom{counters: counters, distributions: distributions}
}

func (p *prom) IncrementCounter(name string) {
	p.counters.WithLabelValues(name).Inc()
}

func (p *prom) RecordDistribution(name string, value float64) {
	p.distributions.WithLabelValues(name).Observe(value)
}

// Handler serves the scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
