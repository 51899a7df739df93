package report

import (
	"runtime"
	"time"

	"github.com/DjordjeVuckovic/polybench/internal/bench/runner"
)

type Report struct {
	Meta     BenchMeta       `json:"meta"`
	Status   runner.Status   `json:"status"`
	Results  []runner.Result `json:"results"`
	Rankings []Ranking       `json:"rankings"`
	Warnings []string        `json:"warnings,omitempty"`
}

type BenchMeta struct {
	RunID       string                 `json:"run_id"`
	Timestamp   time.Time              `json:"timestamp"`
	Backends    map[string]BackendInfo `json:"backends,omitempty"`
	Environment EnvironmentInfo        `json:"environment"`
}

type BackendInfo struct {
	Type string `json:"type"`
}

type EnvironmentInfo struct {
	GoVersion string `json:"go_version"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
	NumCPU    int    `json:"num_cpu"`
}

func NewEnvironmentInfo() EnvironmentInfo {
	return EnvironmentInfo{
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
		NumCPU:    runtime.NumCPU(),
	}
}

// Ranking orders the backends that completed one operation, fastest first
// by average time per record.
type Ranking struct {
	Operation string         `json:"operation"`
	Entries   []RankingEntry `json:"entries"`
}

type RankingEntry struct {
	Database         string        `json:"database"`
	AvgTimePerRecord time.Duration `json:"avg_time_per_record_ns"`
	// Slowdown is AvgTimePerRecord relative to the fastest entry.
	Slowdown float64 `json:"slowdown"`
}
