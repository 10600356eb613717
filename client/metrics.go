package client

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "itinerary_client",
			Name:      "requests_total",
			Help:      "HTTP requests issued by the client.",
		},
		[]string{"op", "outcome"},
	)

	rollbacksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "itinerary_client",
			Name:      "rollbacks_total",
			Help:      "Speculative cache updates rolled back after a failed request.",
		},
	)
)
