package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MutationsTotal counts graph/content mutations by operation and outcome.
	MutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "loomline_mutations_total",
		Help: "Total number of graph and content mutations by operation and outcome",
	}, []string{"operation", "outcome"})

	// NotificationsPersistedTotal counts fan-out notifications written, by type.
	NotificationsPersistedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "loomline_notifications_persisted_total",
		Help: "Total number of notifications persisted by fan-out, by type",
	}, []string{"type"})

	// NotificationPersistFailures counts fan-out rows that could not be written.
	NotificationPersistFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "loomline_notification_persist_failures_total",
		Help: "Total number of notifications fan-out failed to persist",
	})

	// DeliveryFailures counts best-effort realtime pushes that failed.
	DeliveryFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "loomline_notification_delivery_failures_total",
		Help: "Total number of realtime notification pushes that failed",
	})

	// WebSocketConnections is the gauge of active notification stream connections.
	WebSocketConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "loomline_websocket_connections",
		Help: "Number of active notification WebSocket connections",
	})

	// WebSocketBackpressureDrops counts messages dropped because a client's
	// send buffer was full or closed.
	WebSocketBackpressureDrops = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "loomline_websocket_backpressure_drops_total",
		Help: "Total number of WebSocket messages dropped due to backpressure",
	}, []string{"reason"})
)

// RecordMutation increments the mutation counter for the operation. outcome is
// "ok" or "error".
func RecordMutation(operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	MutationsTotal.WithLabelValues(operation, outcome).Inc()
}
