package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/DjordjeVuckovic/polybench/internal/bench/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRun() *runner.Report {
	return &runner.Report{
		RunID:  "run-1",
		Status: runner.Completed,
		Results: []runner.Result{
			{Database: "pg", Operation: "Write", TotalTime: time.Second, RecordsProcessed: 100, AvgTimePerRecord: 10 * time.Millisecond},
			{Database: "pg", Operation: "Read", TotalTime: 50 * time.Millisecond, RecordsProcessed: 10, AvgTimePerRecord: 5 * time.Millisecond},
			{Database: "mongo", Operation: "Write", TotalTime: 500 * time.Millisecond, RecordsProcessed: 100, AvgTimePerRecord: 5 * time.Millisecond},
		},
		Warnings: []string{"mongo read benchmark failed: timeout"},
	}
}

func TestGenerate_Rankings(t *testing.T) {
	r := Generate(sampleRun(), map[string]BackendInfo{"pg": {Type: "postgres"}})

	assert.Equal(t, "run-1", r.Meta.RunID)
	require.Len(t, r.Rankings, 2)

	write := r.Rankings[0]
	assert.Equal(t, "Write", write.Operation)
	require.Len(t, write.Entries, 2)
	assert.Equal(t, "mongo", write.Entries[0].Database)
	assert.Equal(t, 1.0, write.Entries[0].Slowdown)
	assert.Equal(t, "pg", write.Entries[1].Database)
	assert.Equal(t, 2.0, write.Entries[1].Slowdown)

	assert.Equal(t, "Read", r.Rankings[1].Operation)
	assert.Len(t, r.Rankings[1].Entries, 1)
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	WriteTable(Generate(sampleRun(), nil), &buf)

	out := buf.String()
	assert.Contains(t, out, "Database Benchmark (completed)")
	assert.Contains(t, out, "Ranking (fastest first)")
	assert.Contains(t, out, "mongo read benchmark failed: timeout")
	assert.Contains(t, out, "10.00ms")
}

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, WriteJSON(Generate(sampleRun(), nil), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got struct {
		Status  string           `json:"status"`
		Results []map[string]any `json:"results"`
	}
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "completed", got.Status)
	require.Len(t, got.Results, 3)
	assert.InDelta(t, 1.0, got.Results[0]["total_time"], 1e-9)
}

func TestFmtDuration(t *testing.T) {
	assert.Equal(t, "-", fmtDuration(0))
	assert.Equal(t, "500.0µs", fmtDuration(500*time.Microsecond))
	assert.Equal(t, "12.50ms", fmtDuration(12500*time.Microsecond))
	assert.Equal(t, "2.00s", fmtDuration(2*time.Second))
}
