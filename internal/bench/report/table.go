package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"
)

func WriteTable(r *Report, w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "\n=== Database Benchmark (%s) ===\n\n", r.Status)

	writeResultsTable(tw, r)
	writeLatencyTable(tw, r)
	writeRankingTable(tw, r)
	writeWarnings(tw, r)

	tw.Flush()
}

func writeHeader(tw *tabwriter.Writer, header ...string) {
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	sep := make([]string, len(header))
	for i := range sep {
		sep[i] = "---"
	}
	fmt.Fprintln(tw, strings.Join(sep, "\t"))
}

func writeResultsTable(tw *tabwriter.Writer, r *Report) {
	fmt.Fprintf(tw, "Results\n\n")
	writeHeader(tw, "Database", "Operation", "Total", "Records", "Avg/Record")

	for _, res := range r.Results {
		row := []string{
			res.Database,
			res.Operation,
			fmtDuration(res.TotalTime),
			fmt.Sprintf("%d", res.RecordsProcessed),
			fmtDuration(res.AvgTimePerRecord),
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}

	fmt.Fprintln(tw)
}

func writeLatencyTable(tw *tabwriter.Writer, r *Report) {
	var rows [][]string
	for _, res := range r.Results {
		s := res.Latency
		if s.IsZero() {
			continue
		}
		rows = append(rows, []string{
			res.Database,
			res.Operation,
			fmtDuration(s.Min),
			fmtDuration(s.P50),
			fmtDuration(s.P90),
			fmtDuration(s.P99),
			fmtDuration(s.Max),
			fmtDuration(s.Mean),
			fmt.Sprintf("%d", s.SampleCount),
		})
	}
	if len(rows) == 0 {
		return
	}

	fmt.Fprintf(tw, "Per-Query Latency\n\n")
	writeHeader(tw, "Database", "Operation", "Min", "p50", "p90", "p99", "Max", "Mean", "Samples")
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}

	fmt.Fprintln(tw)
}

func writeRankingTable(tw *tabwriter.Writer, r *Report) {
	if len(r.Rankings) == 0 {
		return
	}

	fmt.Fprintf(tw, "Ranking (fastest first)\n\n")
	writeHeader(tw, "Operation", "Rank", "Database", "Avg/Record", "Slowdown")

	for _, rk := range r.Rankings {
		for i, e := range rk.Entries {
			row := []string{
				rk.Operation,
				fmt.Sprintf("%d", i+1),
				e.Database,
				fmtDuration(e.AvgTimePerRecord),
				fmt.Sprintf("x%.2f", e.Slowdown),
			}
			fmt.Fprintln(tw, strings.Join(row, "\t"))
		}
	}

	fmt.Fprintln(tw)
}

func writeWarnings(tw *tabwriter.Writer, r *Report) {
	if len(r.Warnings) == 0 {
		return
	}

	fmt.Fprintf(tw, "Warnings\n\n")
	for _, w := range r.Warnings {
		fmt.Fprintf(tw, "- %s\n", w)
	}

	fmt.Fprintln(tw)
}

func fmtDuration(d time.Duration) string {
	if d == 0 {
		return "-"
	}
	if d < time.Millisecond {
		return fmt.Sprintf("%.1fµs", float64(d.Nanoseconds())/1000)
	}
	if d < time.Second {
		return fmt.Sprintf("%.2fms", float64(d.Microseconds())/1000)
	}
	return fmt.Sprintf("%.2fs", d.Seconds())
}
