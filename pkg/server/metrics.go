package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics are the server's own collectors. Coordinator collectors are
// registered separately by scrollsync.NewMetrics.
type metrics struct {
	sessions       prometheus.Gauge
	groups         prometheus.Gauge
	messages       *prometheus.CounterVec
	protocolErrors *prometheus.CounterVec
	writeFailures  prometheus.Counter
}

func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)
	return &metrics{
		sessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "gridsync",
			Subsystem: "server",
			Name:      "sessions",
			Help:      "Open WebSocket sessions",
		}),
		groups: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "gridsync",
			Subsystem: "server",
			Name:      "groups",
			Help:      "Groups with at least one session",
		}),
		messages: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gridsync",
			Subsystem: "server",
			Name:      "messages_total",
			Help:      "Messages by direction and type",
		}, []string{"direction", "type"}),
		protocolErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gridsync",
			Subsystem: "server",
			Name:      "protocol_errors_total",
			Help:      "Rejected inbound messages by error code",
		}, []string{"code"}),
		writeFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "gridsync",
			Subsystem: "server",
			Name:      "write_failures_total",
			Help:      "WebSocket writes that failed and closed their session",
		}),
	}
}
