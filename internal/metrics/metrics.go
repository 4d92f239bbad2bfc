// internal/metrics/metrics.go
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "trial_balance"

// ReportMetrics records report generation. A nil *ReportMetrics is a no-op.
type ReportMetrics struct {
	generated    *prometheus.CounterVec
	duration     prometheus.Histogram
	rows         prometheus.Histogram
	datasetLines *prometheus.GaugeVec
}

func NewReportMetrics(reg prometheus.Registerer) *ReportMetrics {
	m := &ReportMetrics{
		generated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "reports_generated_total",
				Help:      "Number of rendered trial balance reports by output format",
			},
			[]string{"format"},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "report_duration_seconds",
				Help:      "Time spent aggregating a trial balance",
				Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
			},
		),
		rows: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "report_rows",
				Help:      "Number of balance rows per report",
				Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
			},
		),
		datasetLines: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "dataset_lines",
				Help:      "Records held in the loaded dataset",
			},
			[]string{"kind"},
		),
	}

	reg.MustRegister(m.generated, m.duration, m.rows, m.datasetLines)

	return m
}

// ObserveReport records one aggregation run
func (m *ReportMetrics) ObserveReport(rows int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.duration.Observe(elapsed.Seconds())
	m.rows.Observe(float64(rows))
}

// IncRendered counts a report rendered in format
func (m *ReportMetrics) IncRendered(format string) {
	if m == nil {
		return
	}
	m.generated.WithLabelValues(format).Inc()
}

// SetDataset publishes the size of the loaded dataset
func (m *ReportMetrics) SetDataset(journal, accounts int) {
	if m == nil {
		return
	}
	m.datasetLines.WithLabelValues("journal").Set(float64(journal))
	m.datasetLines.WithLabelValues("accounts").Set(float64(accounts))
}
