package otel

import (
	"context"
	"errors"
	"fmt"

	goAuthz "github.com/MrEthical07/goAuthz"
	"github.com/MrEthical07/goAuthz/metrics/export/internaldefs"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	ErrNilMeter  = errors.New("nil meter")
	ErrNilSource = errors.New("nil metrics source")
)

type metricsSource interface {
	MetricsSnapshot() goAuthz.MetricsSnapshot
}

// Exporter publishes a metrics snapshot through three observable
// instruments. Attribute sets are built once and reused on every cycle.
type Exporter struct {
	source       metricsSource
	registration metric.Registration

	decisions    metric.Int64ObservableCounter
	auditDropped metric.Int64ObservableCounter
	latency      metric.Int64ObservableGauge

	outcomeAttrs []metric.ObserveOption
	bucketAttrs  [internaldefs.BucketCount]metric.ObserveOption
}

// NewExporter reads from m, usually middleware.Extractor.Metrics().
func NewExporter(meter metric.Meter, m *goAuthz.Metrics) (*Exporter, error) {
	if m == nil {
		return nil, ErrNilSource
	}
	return NewExporterFromSource(meter, m)
}

// NewExporterFromSource reads from any snapshot source.
func NewExporterFromSource(meter metric.Meter, source metricsSource) (*Exporter, error) {
	if meter == nil {
		return nil, ErrNilMeter
	}
	if source == nil {
		return nil, ErrNilSource
	}

	e := &Exporter{
		source:       source,
		outcomeAttrs: make([]metric.ObserveOption, len(internaldefs.Outcomes)),
	}
	for i, o := range internaldefs.Outcomes {
		e.outcomeAttrs[i] = metric.WithAttributes(attribute.String(internaldefs.OutcomeLabel, o.Label))
	}
	for i, le := range internaldefs.HistogramBounds {
		e.bucketAttrs[i] = metric.WithAttributes(attribute.String(internaldefs.BucketLabel, le))
	}

	var err error
	e.decisions, err = meter.Int64ObservableCounter(internaldefs.DecisionsName,
		metric.WithDescription(internaldefs.DecisionsHelp))
	if err != nil {
		return nil, fmt.Errorf("create counter %s: %w", internaldefs.DecisionsName, err)
	}
	e.auditDropped, err = meter.Int64ObservableCounter(internaldefs.AuditDroppedName,
		metric.WithDescription(internaldefs.AuditDroppedHelp))
	if err != nil {
		return nil, fmt.Errorf("create counter %s: %w", internaldefs.AuditDroppedName, err)
	}
	// Observable histograms do not exist, so cumulative buckets are a gauge
	// keyed by le, the +Inf bucket being the sample count.
	latencyName := internaldefs.CheckLatencyName + "_bucket"
	e.latency, err = meter.Int64ObservableGauge(latencyName,
		metric.WithDescription(internaldefs.CheckLatencyHelp))
	if err != nil {
		return nil, fmt.Errorf("create gauge %s: %w", latencyName, err)
	}

	e.registration, err = meter.RegisterCallback(e.observe, e.decisions, e.auditDropped, e.latency)
	if err != nil {
		return nil, fmt.Errorf("register callback: %w", err)
	}
	return e, nil
}

func (e *Exporter) observe(_ context.Context, o metric.Observer) error {
	snapshot := e.source.MetricsSnapshot()
	if len(snapshot.Counters) == 0 && len(snapshot.Histograms) == 0 {
		return nil
	}

	for i, outcome := range internaldefs.Outcomes {
		o.ObserveInt64(e.decisions, int64(snapshot.Counters[outcome.ID]), e.outcomeAttrs[i])
	}
	o.ObserveInt64(e.auditDropped, int64(snapshot.Counters[goAuthz.MetricAuditDropped]))

	if cumulative, ok := internaldefs.LatencyBuckets(snapshot); ok {
		for i, n := range cumulative {
			o.ObserveInt64(e.latency, int64(n), e.bucketAttrs[i])
		}
	}
	return nil
}

// Close unregisters the callback. The instruments stay with the meter.
func (e *Exporter) Close() error {
	if e == nil || e.registration == nil {
		return nil
	}
	return e.registration.Unregister()
}
