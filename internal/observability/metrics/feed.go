package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	FeedActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "feed_active_connections",
			Help: "Number of websocket clients subscribed to the live feed",
		},
	)

	FeedEventsBroadcastTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_events_broadcast_total",
			Help: "Total number of events broadcast to the live feed",
		},
		[]string{"event_type"},
	)

	FeedDroppedClientsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "feed_dropped_clients_total",
			Help: "Total number of feed clients dropped for slow consumption",
		},
	)
)
