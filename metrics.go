package goAuthz

import (
	"sync/atomic"
	"time"
)

// MetricID identifies an authorization counter or histogram.
type MetricID uint16

const (
	// MetricAuthorized counts requests whose claims passed every check.
	MetricAuthorized MetricID = iota
	// MetricForbidden counts authenticated requests missing a permission.
	MetricForbidden
	// MetricUnauthenticated counts requests without a token.
	MetricUnauthenticated
	// MetricTokenExpired counts requests whose claims had expired.
	MetricTokenExpired
	// MetricTokenMalformed counts tokens the validator rejected.
	MetricTokenMalformed
	// MetricAuditDropped counts audit events dropped on a full queue.
	MetricAuditDropped
	// MetricCheckLatency is the histogram of extraction+check latency.
	MetricCheckLatency
	metricIDCount
)

const (
	histBucketCount = 8
	cacheLineSize   = 64
)

type metricHistogram struct {
	buckets [histBucketCount]uint64
}

type paddedCounter struct {
	value uint64
	_     [cacheLineSize - 8]byte
}

// Metrics holds lock-free decision counters. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	enabled       bool
	enableLatency bool
	counters      [metricIDCount]paddedCounter
	histograms    [metricIDCount]metricHistogram
}

// MetricsSnapshot is a point-in-time copy of every counter and histogram.
type MetricsSnapshot struct {
	Counters   map[MetricID]uint64
	Histograms map[MetricID][]uint64
}

// NewMetrics returns counters configured by cfg. Disabled metrics record nothing.
func NewMetrics(cfg MetricsConfig) *Metrics {
	return &Metrics{
		enabled:       cfg.Enabled,
		enableLatency: cfg.Enabled && cfg.EnableLatencyHistograms,
	}
}

// Enabled reports whether counters are recorded.
func (m *Metrics) Enabled() bool {
	return m != nil && m.enabled
}

// LatencyEnabled reports whether the check latency histogram is recorded.
func (m *Metrics) LatencyEnabled() bool {
	return m != nil && m.enableLatency
}

// Inc adds one to counter id.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || !m.enabled || id >= metricIDCount {
		return
	}
	atomic.AddUint64(&m.counters[id].value, 1)
}

// Observe records d in the latency histogram. Only MetricCheckLatency is a
// histogram; other ids are ignored.
func (m *Metrics) Observe(id MetricID, d time.Duration) {
	if m == nil || !m.enabled || !m.enableLatency || id != MetricCheckLatency {
		return
	}
	b := bucketIndex(d)
	atomic.AddUint64(&m.histograms[id].buckets[b], 1)
}

// Value returns the current value of counter id.
func (m *Metrics) Value(id MetricID) uint64 {
	if m == nil || id >= metricIDCount {
		return 0
	}
	return atomic.LoadUint64(&m.counters[id].value)
}

// MetricsSnapshot lets *Metrics serve as the source of the exporters.
func (m *Metrics) MetricsSnapshot() MetricsSnapshot {
	return m.Snapshot()
}

// Snapshot copies every counter, and the latency histogram when enabled.
// Disabled metrics yield empty maps.
func (m *Metrics) Snapshot() MetricsSnapshot {
	if m == nil || !m.enabled {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}

	s := MetricsSnapshot{
		Counters:   make(map[MetricID]uint64, int(metricIDCount)),
		Histograms: make(map[MetricID][]uint64, 1),
	}

	for id := MetricID(0); id < metricIDCount; id++ {
		if id == MetricCheckLatency {
			continue
		}
		s.Counters[id] = atomic.LoadUint64(&m.counters[id].value)
	}

	if m.enableLatency {
		buckets := make([]uint64, histBucketCount)
		for i := 0; i < histBucketCount; i++ {
			buckets[i] = atomic.LoadUint64(&m.histograms[MetricCheckLatency].buckets[i])
		}
		s.Histograms[MetricCheckLatency] = buckets
	}

	return s
}

// Buckets are sized for in-process checks: 5µs up to 1ms, then +Inf.
func bucketIndex(d time.Duration) int {
	us := d.Microseconds()

	switch {
	case us <= 5:
		return 0
	case us <= 10:
		return 1
	case us <= 25:
		return 2
	case us <= 50:
		return 3
	case us <= 100:
		return 4
	case us <= 250:
		return 5
	case us <= 1000:
		return 6
	default:
		return 7
	}
}
