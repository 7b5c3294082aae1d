package goAuthz

import (
	"sync"
	"testing"
	"time"
)

func TestMetricsDisabledNoIncrement(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: false})
	m.Inc(MetricAuthorized)

	if got := m.Value(MetricAuthorized); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
	if snap := m.Snapshot(); len(snap.Counters) != 0 || len(snap.Histograms) != 0 {
		t.Fatalf("expected empty snapshot, got %+v", snap)
	}
}

func TestMetricsNilSafe(t *testing.T) {
	var m *Metrics
	m.Inc(MetricForbidden)
	m.Observe(MetricCheckLatency, time.Microsecond)

	if m.Enabled() || m.LatencyEnabled() || m.Value(MetricForbidden) != 0 {
		t.Fatal("nil metrics must record nothing")
	}
}

func TestMetricsEnabledIncrement(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})
	m.Inc(MetricForbidden)
	m.Inc(MetricForbidden)
	m.Inc(MetricForbidden)

	if got := m.Value(MetricForbidden); got != 3 {
		t.Fatalf("expected 3, got %d", got)
	}
	m.Inc(metricIDCount)
}

func TestMetricsConcurrentIncrementSafe(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})

	const goroutines = 32
	const perG = 4000

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < perG; j++ {
				m.Inc(MetricAuthorized)
			}
		}()
	}
	wg.Wait()

	want := uint64(goroutines * perG)
	if got := m.Value(MetricAuthorized); got != want {
		t.Fatalf("expected %d, got %d", want, got)
	}
}

func TestMetricsHistogramBucketCorrectness(t *testing.T) {
	m := NewMetrics(MetricsConfig{
		Enabled:                 true,
		EnableLatencyHistograms: true,
	})

	observations := []time.Duration{
		5 * time.Microsecond,
		10 * time.Microsecond,
		25 * time.Microsecond,
		50 * time.Microsecond,
		100 * time.Microsecond,
		250 * time.Microsecond,
		time.Millisecond,
		7 * time.Millisecond,
	}

	for _, d := range observations {
		m.Observe(MetricCheckLatency, d)
	}

	snap := m.Snapshot()
	buckets := snap.Histograms[MetricCheckLatency]
	if len(buckets) != 8 {
		t.Fatalf("expected 8 buckets, got %d", len(buckets))
	}
	for i, v := range buckets {
		if v != 1 {
			t.Fatalf("bucket %d expected 1, got %d", i, v)
		}
	}
}

func TestMetricsObserveIgnoresCounters(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true, EnableLatencyHistograms: true})
	m.Observe(MetricAuthorized, time.Microsecond)

	if got := m.Value(MetricAuthorized); got != 0 {
		t.Fatalf("Observe must not touch counters, got %d", got)
	}
}

func TestMetricsLatencyRequiresEnabled(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: false, EnableLatencyHistograms: true})
	if m.LatencyEnabled() {
		t.Fatal("latency must be off when metrics are disabled")
	}

	m = NewMetrics(MetricsConfig{Enabled: true})
	m.Observe(MetricCheckLatency, time.Microsecond)
	if _, ok := m.Snapshot().Histograms[MetricCheckLatency]; ok {
		t.Fatal("histogram must be absent when latency is disabled")
	}
}

func TestMetricsSnapshotConsistency(t *testing.T) {
	m := NewMetrics(MetricsConfig{
		Enabled:                 true,
		EnableLatencyHistograms: true,
	})
	m.Inc(MetricAuthorized)
	m.Inc(MetricTokenExpired)
	m.Inc(MetricTokenExpired)
	m.Observe(MetricCheckLatency, 2*time.Microsecond)

	snap := m.MetricsSnapshot()

	if snap.Counters[MetricAuthorized] != 1 {
		t.Fatalf("expected MetricAuthorized=1 got %d", snap.Counters[MetricAuthorized])
	}
	if snap.Counters[MetricTokenExpired] != 2 {
		t.Fatalf("expected MetricTokenExpired=2 got %d", snap.Counters[MetricTokenExpired])
	}
	if _, ok := snap.Counters[MetricCheckLatency]; ok {
		t.Fatal("latency id must not appear among counters")
	}
	if len(snap.Histograms[MetricCheckLatency]) != 8 {
		t.Fatalf("expected histogram length 8")
	}
	if snap.Histograms[MetricCheckLatency][0] != 1 {
		t.Fatalf("expected first histogram bucket=1 got %d", snap.Histograms[MetricCheckLatency][0])
	}
}
