package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ResultOK    = "ok"
	ResultError = "error"
)

type metrics struct {
	operationsTotal  *prometheus.CounterVec
	recordsProcessed *prometheus.CounterVec
	runsTotal        *prometheus.CounterVec

	operationDuration *prometheus.HistogramVec
	avgPerRecord      *prometheus.GaugeVec
}

var metricsSingleton = sync.OnceValue(func() *metrics {
	return &metrics{
		operationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "polybench",
			Name:      "operations_total",
			Help:      "Total number of benchmark operations executed.",
		}, []string{"backend", "operation", "result"}),
		recordsProcessed: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "polybench",
			Name:      "records_processed_total",
			Help:      "Units of work (records or queries) completed by successful operations.",
		}, []string{"backend", "operation"}),
		runsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "polybench",
			Name:      "runs_total",
			Help:      "Total number of benchmark runs by final status.",
		}, []string{"status"}),
		operationDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "polybench",
			Name:      "operation_duration_seconds",
			Help:      "Wall-clock duration of one benchmark operation.",
			Buckets: []float64{
				0.001, 0.005, 0.01,
				0.05, 0.1, 0.5,
				1, 2, 5, 10, 30, 60,
			},
		}, []string{"backend", "operation"}),
		avgPerRecord: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "polybench",
			Name:      "avg_time_per_record_seconds",
			Help:      "Average time per unit of the last successful operation.",
		}, []string{"backend", "operation"}),
	}
})

func getMetrics() *metrics {
	return metricsSingleton()
}

func ObserveOperation(backend, operation string, elapsed time.Duration, units int) {
	m := getMetrics()
	m.operationsTotal.WithLabelValues(backend, operation, ResultOK).Inc()
	m.operationDuration.WithLabelValues(backend, operation).Observe(elapsed.Seconds())
	m.recordsProcessed.WithLabelValues(backend, operation).Add(float64(units))
	if units > 0 {
		m.avgPerRecord.WithLabelValues(backend, operation).Set(elapsed.Seconds() / float64(units))
	}
}

func ObserveFailure(backend, operation string) {
	getMetrics().operationsTotal.WithLabelValues(backend, operation, ResultError).Inc()
}

func ObserveRun(status string) {
	getMetrics().runsTotal.WithLabelValues(status).Inc()
}
