package runner

import (
	"encoding/json"
	"time"

	"github.com/DjordjeVuckovic/polybench/internal/bench/operation"
)

type Status string

const (
	Completed             Status = "completed"
	ConnectionCheckFailed Status = "connection_check_failed"
)

// Result is one successfully completed operation.
type Result struct {
	Database         string
	Operation        string
	TotalTime        time.Duration
	RecordsProcessed int
	AvgTimePerRecord time.Duration
	Latency          LatencyStats
}

func newResult(database, label string, units int, m operation.Measurement) Result {
	return Result{
		Database:         database,
		Operation:        label,
		TotalTime:        m.Elapsed,
		RecordsProcessed: units,
		AvgTimePerRecord: m.Elapsed / time.Duration(units),
		Latency:          latencyStats(m),
	}
}

type resultJSON struct {
	Database         string        `json:"database"`
	Operation        string        `json:"operation"`
	TotalTime        float64       `json:"total_time"`
	RecordsProcessed int           `json:"records_processed"`
	AvgTimePerRecord float64       `json:"avg_time_per_record"`
	Latency          *LatencyStats `json:"latency,omitempty"`
}

// MarshalJSON reports times in seconds. The average is derived from the
// total in floating point.
func (r Result) MarshalJSON() ([]byte, error) {
	out := resultJSON{
		Database:         r.Database,
		Operation:        r.Operation,
		TotalTime:        r.TotalTime.Seconds(),
		RecordsProcessed: r.RecordsProcessed,
	}
	if r.RecordsProcessed > 0 {
		out.AvgTimePerRecord = r.TotalTime.Seconds() / float64(r.RecordsProcessed)
	}
	if !r.Latency.IsZero() {
		out.Latency = &r.Latency
	}
	return json.Marshal(out)
}

type Report struct {
	RunID    string   `json:"run_id"`
	Status   Status   `json:"status"`
	Results  []Result `json:"results"`
	Warnings []string `json:"warnings,omitempty"`
}

// Databases lists backend names in the order they first appear.
func (r *Report) Databases() []string {
	seen := make(map[string]bool)
	var names []string
	for _, res := range r.Results {
		if !seen[res.Database] {
			seen[res.Database] = true
			names = append(names, res.Database)
		}
	}
	return names
}
