// Package prometheus exposes goAuthz decision metrics to Prometheus.
//
// [Collector] adapts a [goAuthz.MetricsSnapshot] to client_golang: one
// goauthz_decisions_total counter labelled by outcome, the
// goauthz_audit_dropped_total counter, and the goauthz_check_latency_seconds
// histogram. Register it with an existing registry, or use [Exporter] for a
// private registry served through promhttp.
//
// # What this package must NOT do
//
//   - Register anything at import time.
//   - Mutate metric state.
package prometheus
