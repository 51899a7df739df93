package runner

import (
	"encoding/json"
	"math"
	"slices"
	"time"

	"github.com/DjordjeVuckovic/polybench/internal/bench/operation"
)

// LatencyStats summarizes the per-query samples of one multi-query
// operation. Single-shot operations (write, aggregate) have none.
type LatencyStats struct {
	Min         time.Duration
	Max         time.Duration
	Mean        time.Duration
	Stddev      time.Duration
	P50         time.Duration
	P90         time.Duration
	P99         time.Duration
	SampleCount int
}

func latencyStats(m operation.Measurement) LatencyStats {
	n := len(m.Latencies)
	if n == 0 {
		return LatencyStats{}
	}

	sorted := slices.Clone(m.Latencies)
	slices.Sort(sorted)

	var sum time.Duration
	for _, d := range sorted {
		sum += d
	}
	mean := sum / time.Duration(n)

	var stddev time.Duration
	if n > 1 {
		var sq float64
		for _, d := range sorted {
			diff := float64(d - mean)
			sq += diff * diff
		}
		stddev = time.Duration(math.Sqrt(sq / float64(n-1)))
	}

	return LatencyStats{
		Min:         sorted[0],
		Max:         sorted[n-1],
		Mean:        mean,
		Stddev:      stddev,
		P50:         quantile(sorted, 0.50),
		P90:         quantile(sorted, 0.90),
		P99:         quantile(sorted, 0.99),
		SampleCount: n,
	}
}

// quantile interpolates linearly between the two closest ranks of sorted.
func quantile(sorted []time.Duration, q float64) time.Duration {
	if len(sorted) == 1 {
		return sorted[0]
	}
	rank := q * float64(len(sorted)-1)
	lo := int(rank)
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	w := rank - float64(lo)
	return time.Duration(float64(sorted[lo])*(1-w) + float64(sorted[lo+1])*w)
}

func (s LatencyStats) IsZero() bool {
	return s.SampleCount == 0
}

type latencyJSON struct {
	Min         float64 `json:"min"`
	Max         float64 `json:"max"`
	Mean        float64 `json:"mean"`
	Stddev      float64 `json:"stddev"`
	P50         float64 `json:"p50"`
	P90         float64 `json:"p90"`
	P99         float64 `json:"p99"`
	SampleCount int     `json:"sample_count"`
}

// MarshalJSON reports times in seconds, like Result.
func (s LatencyStats) MarshalJSON() ([]byte, error) {
	return json.Marshal(latencyJSON{
		Min:         s.Min.Seconds(),
		Max:         s.Max.Seconds(),
		Mean:        s.Mean.Seconds(),
		Stddev:      s.Stddev.Seconds(),
		P50:         s.P50.Seconds(),
		P90:         s.P90.Seconds(),
		P99:         s.P99.Seconds(),
		SampleCount: s.SampleCount,
	})
}
