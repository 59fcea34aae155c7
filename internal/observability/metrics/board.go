package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	NeedsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "needs_created_total",
			Help: "Total number of needs posted by category",
		},
		[]string{"category"},
	)

	DonationsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "donations_created_total",
			Help: "Total number of donations recorded",
		},
	)

	DonationItemsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "donation_items_total",
			Help: "Total quantity of items pledged across all donations",
		},
	)
)
