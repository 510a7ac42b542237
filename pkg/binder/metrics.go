package binder

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the binder's Prometheus collectors. The discarded-connections
// counter is the one to alert on: a non-zero rate means bind or reset
// statements are failing.
type Metrics struct {
	Binds      *prometheus.CounterVec
	Resets     *prometheus.CounterVec
	Discarded  prometheus.Counter
	TxDuration prometheus.Histogram
}

// NewMetrics creates and registers the collectors. A nil registerer uses the
// default registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		Binds: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tenantguard",
			Subsystem: "binder",
			Name:      "binds_total",
			Help:      "Total number of tenant bind statements by result.",
		}, []string{"result"}), // result: ok, error
		Resets: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tenantguard",
			Subsystem: "binder",
			Name:      "resets_total",
			Help:      "Total number of session reset statements by result.",
		}, []string{"result"}),
		Discarded: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "tenantguard",
			Subsystem: "binder",
			Name:      "connections_discarded_total",
			Help:      "Total number of connections discarded instead of released.",
		}),
		TxDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "tenantguard",
			Subsystem: "binder",
			Name:      "bound_tx_duration_seconds",
			Help:      "Duration of bound transactions from checkout to release.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

func (m *Metrics) observeBind(err error) {
	if err != nil {
		m.Binds.WithLabelValues("error").Inc()
		return
	}
	m.Binds.WithLabelValues("ok").Inc()
}

func (m *Metrics) observeReset(err error) {
	if err != nil {
		m.Resets.WithLabelValues("error").Inc()
		return
	}
	m.Resets.WithLabelValues("ok").Inc()
}
