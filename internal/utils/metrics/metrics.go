// File: internal/utils/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts all HTTP requests.
	RequestsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "federation_service_requests_total",
		Help: "The total number of requests",
	})

	// ResponsesTotal counts responses by status code.
	ResponsesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "federation_service_responses_total",
		Help: "The total number of responses by status code",
	}, []string{"status"})

	// RequestDuration observes request handling time.
	RequestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "federation_service_request_duration_seconds",
		Help:    "The request duration in seconds",
		Buckets: prometheus.DefBuckets,
	})

	// LoginAttemptsTotal counts federation login attempts by outcome.
	LoginAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "federation_service_login_attempts_total",
		Help: "The total number of federation login attempts",
	}, []string{"status"})

	// LedgerRepairsTotal counts logins recovered via the pending-credential
	// ledger.
	LedgerRepairsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "federation_service_ledger_repairs_total",
		Help: "The total number of logins repaired from the pending-credential ledger",
	})

	// ShadowAccountsTotal counts RocketChat shadow accounts created.
	ShadowAccountsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "federation_service_shadow_accounts_total",
		Help: "The total number of chat shadow accounts provisioned",
	})
)
