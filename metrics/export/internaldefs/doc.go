// Package internaldefs holds the metric names, labels and bucket bounds
// shared by the exporters, so the Prometheus and OpenTelemetry outputs never
// drift apart.
//
// Request outcomes are one counter, goauthz_decisions_total, labelled by
// outcome. Audit drops and check latency are separate series.
//
// # What this package must NOT do
//
//   - Import any exporter package.
//   - Perform I/O.
package internaldefs
