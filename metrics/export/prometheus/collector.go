package prometheus

import (
	"errors"

	goAuthz "github.com/MrEthical07/goAuthz"
	"github.com/MrEthical07/goAuthz/metrics/export/internaldefs"
	promclient "github.com/prometheus/client_golang/prometheus"
)

type metricsSource interface {
	MetricsSnapshot() goAuthz.MetricsSnapshot
}

// Collector is a client_golang collector over a goAuthz metrics snapshot.
// Values are read at scrape time; nothing is cached.
type Collector struct {
	source       metricsSource
	decisions    *promclient.Desc
	auditDropped *promclient.Desc
	latency      *promclient.Desc
}

// NewCollector reads from m, usually middleware.Extractor.Metrics().
func NewCollector(m *goAuthz.Metrics) *Collector {
	if m == nil {
		return NewCollectorFromSource(nil)
	}
	return NewCollectorFromSource(m)
}

// NewCollectorFromSource reads from any snapshot source.
func NewCollectorFromSource(source metricsSource) *Collector {
	return &Collector{
		source: source,
		decisions: promclient.NewDesc(internaldefs.DecisionsName, internaldefs.DecisionsHelp,
			[]string{internaldefs.OutcomeLabel}, nil),
		auditDropped: promclient.NewDesc(internaldefs.AuditDroppedName, internaldefs.AuditDroppedHelp, nil, nil),
		latency:      promclient.NewDesc(internaldefs.CheckLatencyName, internaldefs.CheckLatencyHelp, nil, nil),
	}
}

// Describe implements promclient.Collector.
func (c *Collector) Describe(ch chan<- *promclient.Desc) {
	ch <- c.decisions
	ch <- c.auditDropped
	ch <- c.latency
}

// Collect implements promclient.Collector. Disabled metrics export nothing.
func (c *Collector) Collect(ch chan<- promclient.Metric) {
	if c.source == nil {
		return
	}
	snapshot := c.source.MetricsSnapshot()
	if len(snapshot.Counters) == 0 && len(snapshot.Histograms) == 0 {
		return
	}

	for _, o := range internaldefs.Outcomes {
		ch <- promclient.MustNewConstMetric(c.decisions, promclient.CounterValue,
			float64(snapshot.Counters[o.ID]), o.Label)
	}
	ch <- promclient.MustNewConstMetric(c.auditDropped, promclient.CounterValue,
		float64(snapshot.Counters[goAuthz.MetricAuditDropped]))

	cumulative, ok := internaldefs.LatencyBuckets(snapshot)
	if !ok {
		return
	}
	buckets := make(map[float64]uint64, len(internaldefs.HistogramUpperBounds))
	for i, upper := range internaldefs.HistogramUpperBounds {
		buckets[upper] = cumulative[i]
	}
	// Snapshots carry bucket counts only, so the sum is unknown.
	ch <- promclient.MustNewConstHistogram(c.latency, cumulative[internaldefs.BucketCount-1], 0, buckets)
}

// Register adds c to reg, treating an identical earlier registration as success.
func (c *Collector) Register(reg promclient.Registerer) error {
	if reg == nil {
		reg = promclient.DefaultRegisterer
	}
	if err := reg.Register(c); err != nil {
		var are promclient.AlreadyRegisteredError
		if errors.As(err, &are) {
			return nil
		}
		return err
	}
	return nil
}
