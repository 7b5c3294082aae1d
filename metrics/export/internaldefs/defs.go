package internaldefs

import (
	goAuthz "github.com/MrEthical07/goAuthz"
)

// Decision outcomes share one counter, split by the outcome label.
const (
	DecisionsName = "goauthz_decisions_total"
	DecisionsHelp = "Authorization decisions, one per request, by outcome."
	OutcomeLabel  = "outcome"
)

const (
	AuditDroppedName = "goauthz_audit_dropped_total"
	AuditDroppedHelp = "Audit events that never reached the sink."
)

const (
	CheckLatencyName = "goauthz_check_latency_seconds"
	CheckLatencyHelp = "Claims extraction and permission check latency."
	BucketLabel      = "le"
)

// Outcome maps a decision counter to its outcome label value.
type Outcome struct {
	ID    goAuthz.MetricID
	Label string
}

// Outcomes lists every decision a request can end in. Exactly one of them
// is counted per guarded request.
var Outcomes = []Outcome{
	{ID: goAuthz.MetricAuthorized, Label: "authorized"},
	{ID: goAuthz.MetricForbidden, Label: "forbidden"},
	{ID: goAuthz.MetricUnauthenticated, Label: "unauthenticated"},
	{ID: goAuthz.MetricTokenExpired, Label: "token_expired"},
	{ID: goAuthz.MetricTokenMalformed, Label: "token_malformed"},
}

// BucketCount matches the core histogram layout.
const BucketCount = 8

// HistogramBounds are the upper bounds in seconds, as rendered in le labels.
var HistogramBounds = []string{
	"5e-06",
	"1e-05",
	"2.5e-05",
	"5e-05",
	"0.0001",
	"0.00025",
	"0.001",
	"+Inf",
}

// HistogramUpperBounds are the finite bounds in seconds. The +Inf bucket is
// implied.
var HistogramUpperBounds = []float64{
	0.000005,
	0.00001,
	0.000025,
	0.00005,
	0.0001,
	0.00025,
	0.001,
}

// Decisions returns the decision counters of snapshot keyed by outcome label.
func Decisions(snapshot goAuthz.MetricsSnapshot) map[string]uint64 {
	out := make(map[string]uint64, len(Outcomes))
	for _, o := range Outcomes {
		out[o.Label] = snapshot.Counters[o.ID]
	}
	return out
}

// LatencyBuckets returns the cumulative check latency buckets, or false when
// latency histograms are disabled.
func LatencyBuckets(snapshot goAuthz.MetricsSnapshot) ([BucketCount]uint64, bool) {
	raw, ok := snapshot.Histograms[goAuthz.MetricCheckLatency]
	if !ok {
		return [BucketCount]uint64{}, false
	}
	return CumulativeBuckets(NormalizeBuckets(raw)), true
}

// NormalizeBuckets copies raw into a fixed-size array, zero-filling missing
// buckets and ignoring extras.
func NormalizeBuckets(raw []uint64) [BucketCount]uint64 {
	var out [BucketCount]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets turns per-bucket counts into running totals.
func CumulativeBuckets(raw [BucketCount]uint64) [BucketCount]uint64 {
	var out [BucketCount]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
