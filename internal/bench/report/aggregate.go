package report

import (
	"sort"
	"time"

	"github.com/DjordjeVuckovic/polybench/internal/bench/runner"
	"github.com/DjordjeVuckovic/polybench/pkg/utils"
)

func Generate(rr *runner.Report, backends map[string]BackendInfo) *Report {
	r := &Report{
		Meta: BenchMeta{
			RunID:       rr.RunID,
			Timestamp:   time.Now().UTC(),
			Backends:    backends,
			Environment: NewEnvironmentInfo(),
		},
		Status:   rr.Status,
		Results:  rr.Results,
		Warnings: rr.Warnings,
	}

	r.Rankings = rank(rr.Results)

	return r
}

func rank(results []runner.Result) []Ranking {
	byOp := make(map[string][]RankingEntry)
	var order []string

	for _, res := range results {
		if _, ok := byOp[res.Operation]; !ok {
			order = append(order, res.Operation)
		}
		byOp[res.Operation] = append(byOp[res.Operation], RankingEntry{
			Database:         res.Database,
			AvgTimePerRecord: res.AvgTimePerRecord,
		})
	}

	rankings := make([]Ranking, 0, len(order))
	for _, op := range order {
		entries := byOp[op]
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].AvgTimePerRecord < entries[j].AvgTimePerRecord
		})

		fastest := entries[0].AvgTimePerRecord
		for i := range entries {
			if fastest > 0 {
				entries[i].Slowdown = utils.RoundDecimal(float64(entries[i].AvgTimePerRecord)/float64(fastest), 2)
			} else {
				entries[i].Slowdown = 1
			}
		}

		rankings = append(rankings, Ranking{Operation: op, Entries: entries})
	}

	return rankings
}
