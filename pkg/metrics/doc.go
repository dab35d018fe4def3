// Package metrics exposes Prometheus instrumentation for the cascade
// engine, ingress, and remediation dispatcher.
//
// Models and packages are counted by aggregated state
// (cascade_models_total, cascade_packages_total); the collector keeps
// these gauges current by subscribing to the change event broker
// rather than polling the store, since the store's key schema has no
// list-everything operation to poll. Ingress and remediation
// activity are counted directly at their call sites
// (cascade_ingress_observations_total, cascade_ingress_state_changes_total,
// cascade_remediation_requests_total, cascade_remediation_failures_total).
// Reconciliation duration is timed with the Timer helper in timer.go.
//
// Metrics are served over HTTP via Handler(), in Prometheus text
// exposition format.
package metrics
