// Package otel publishes goAuthz decision metrics through OpenTelemetry.
//
// [NewExporter] registers goauthz_decisions_total with an outcome
// attribute, goauthz_audit_dropped_total, and
// goauthz_check_latency_seconds_bucket as a gauge with an le attribute. A
// single callback reads a [goAuthz.MetricsSnapshot] on each collection
// cycle.
//
// # What this package must NOT do
//
//   - Own the MeterProvider. Callers supply the Meter.
//   - Mutate metric state.
package otel
