package internaldefs

import (
	"testing"

	goAuthz "github.com/MrEthical07/goAuthz"
)

func TestDefinitionsCoverBounds(t *testing.T) {
	if len(HistogramBounds) != BucketCount {
		t.Fatalf("bounds must have %d entries", BucketCount)
	}
	if len(HistogramUpperBounds) != BucketCount-1 {
		t.Fatalf("expected %d finite bounds, got %d", BucketCount-1, len(HistogramUpperBounds))
	}
	for i := 1; i < len(HistogramUpperBounds); i++ {
		if HistogramUpperBounds[i] <= HistogramUpperBounds[i-1] {
			t.Fatalf("bounds not increasing at %d", i)
		}
	}

	seenID := map[goAuthz.MetricID]bool{}
	seenLabel := map[string]bool{}
	for _, o := range Outcomes {
		if seenID[o.ID] || seenLabel[o.Label] {
			t.Fatalf("duplicate outcome %+v", o)
		}
		if o.ID == goAuthz.MetricAuditDropped || o.ID == goAuthz.MetricCheckLatency {
			t.Fatalf("%q is not a decision", o.Label)
		}
		seenID[o.ID] = true
		seenLabel[o.Label] = true
	}
}

func TestDecisionsAndLatencyBuckets(t *testing.T) {
	snap := goAuthz.MetricsSnapshot{
		Counters: map[goAuthz.MetricID]uint64{
			goAuthz.MetricAuthorized:   4,
			goAuthz.MetricForbidden:    1,
			goAuthz.MetricAuditDropped: 9,
		},
		Histograms: map[goAuthz.MetricID][]uint64{},
	}

	got := Decisions(snap)
	if got["authorized"] != 4 || got["forbidden"] != 1 || got["token_expired"] != 0 {
		t.Fatalf("unexpected decisions %v", got)
	}
	if len(got) != len(Outcomes) {
		t.Fatalf("expected every outcome present, got %v", got)
	}
	if _, ok := LatencyBuckets(snap); ok {
		t.Fatal("latency must be absent without a histogram")
	}

	snap.Histograms[goAuthz.MetricCheckLatency] = []uint64{2, 0, 1}
	buckets, ok := LatencyBuckets(snap)
	if !ok || buckets[0] != 2 || buckets[BucketCount-1] != 3 {
		t.Fatalf("unexpected buckets %v (ok=%v)", buckets, ok)
	}
}

func TestCumulativeBuckets(t *testing.T) {
	got := CumulativeBuckets(NormalizeBuckets([]uint64{1, 2, 3}))
	want := [BucketCount]uint64{1, 3, 6, 6, 6, 6, 6, 6}
	if got != want {
		t.Fatalf("got %v, want %v", got, want)
	}

	got = CumulativeBuckets(NormalizeBuckets([]uint64{1, 1, 1, 1, 1, 1, 1, 1, 99}))
	if got[BucketCount-1] != 8 {
		t.Fatalf("extra buckets must be ignored, got %v", got)
	}
}
