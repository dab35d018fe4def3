package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ModelsTotal tracks the number of models currently in each
	// aggregated state, as last observed via the change event stream.
	ModelsTotal = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cascade_models_total",
			Help: "Total number of models by aggregated state",
		},
		[]string{"state"},
	)

	// PackagesTotal tracks the number of packages currently in each
	// aggregated state.
	PackagesTotal = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cascade_packages_total",
			Help: "Total number of packages by aggregated state",
		},
		[]string{"state"},
	)

	// IngressObservationsTotal counts observation batch results by
	// outcome: one per model in a batch, plus one per malformed item.
	IngressObservationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cascade_ingress_observations_total",
			Help: "Total observation batch results (per model or malformed item) by outcome",
		},
		[]string{"outcome"},
	)

	// IngressStateChangesTotal counts processed direct state-change
	// requests by outcome.
	IngressStateChangesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cascade_ingress_state_changes_total",
			Help: "Total direct state-change requests processed by outcome",
		},
		[]string{"outcome"},
	)

	// ReconciliationDuration times a full ProcessObservationBatch or
	// ProcessStateChangeRequest call.
	ReconciliationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cascade_reconciliation_duration_seconds",
			Help:    "Time taken to process one observation batch or state-change request",
			Buckets: prometheus.DefBuckets,
		},
	)

	// ReconciliationCyclesTotal counts completed reconciliation calls.
	ReconciliationCyclesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cascade_reconciliation_cycles_total",
			Help: "Total reconciliation cycles completed",
		},
	)

	// RemediationRequestsTotal counts successfully acknowledged
	// reconcile RPCs sent to the remediation service.
	RemediationRequestsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cascade_remediation_requests_total",
			Help: "Total remediation reconcile RPCs acknowledged",
		},
	)

	// RemediationFailuresTotal counts reconcile RPC attempts that
	// failed (and were retried per the dispatcher's backoff schedule).
	RemediationFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cascade_remediation_failures_total",
			Help: "Total remediation reconcile RPC attempts that failed",
		},
	)

	// APIRequestsTotal counts ingress gRPC requests by method and
	// status.
	APIRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cascade_api_requests_total",
			Help: "Total ingress API requests by method and status",
		},
		[]string{"method", "status"},
	)

	// APIRequestDuration times ingress gRPC requests by method.
	APIRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cascade_api_request_duration_seconds",
			Help:    "Ingress API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	// PackageHealthScore tracks the fraction of a package's member
	// models currently in a healthy state (Running or Exited).
	PackageHealthScore = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cascade_package_health_score",
			Help: "Fraction of a package's member models in a healthy state",
		},
		[]string{"package"},
	)
)

func init() {
	prometheus.MustRegister(ModelsTotal)
	prometheus.MustRegister(PackagesTotal)
	prometheus.MustRegister(IngressObservationsTotal)
	prometheus.MustRegister(IngressStateChangesTotal)
	prometheus.MustRegister(ReconciliationDuration)
	prometheus.MustRegister(ReconciliationCyclesTotal)
	prometheus.MustRegister(RemediationRequestsTotal)
	prometheus.MustRegister(RemediationFailuresTotal)
	prometheus.MustRegister(APIRequestsTotal)
	prometheus.MustRegister(APIRequestDuration)
	prometheus.MustRegister(PackageHealthScore)
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
