package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	UsersRegisteredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "users_registered_total",
			Help: "Total number of successfully registered users",
		},
	)

	RegisterFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "register_failures_total",
			Help: "Total number of failed registration attempts by reason",
		},
		[]string{"reason"},
	)

	LoginAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "login_attempts_total",
			Help: "Total number of login attempts by result",
		},
		[]string{"result"},
	)

	SessionsIssuedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sessions_issued_total",
			Help: "Total number of session tokens issued",
		},
	)
)
