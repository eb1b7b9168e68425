package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/cypherlabdev/kelly-sizer-service/pkg/kelly"
)

// Source labels
const (
	SourceHTTP  = "http"
	SourceKafka = "kafka"
)

// Metrics holds the Prometheus collectors of the sizing service
type Metrics struct {
	TablesSized    *prometheus.CounterVec
	RowsSized      *prometheus.CounterVec
	BetsSized      *prometheus.CounterVec
	SizingDuration prometheus.Histogram
}

// NewMetrics creates and registers the collectors
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		TablesSized: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kelly_sizer",
			Name:      "tables_sized_total",
			Help:      "Scraped tables sized, by ingestion source.",
		}, []string{"source"}),
		RowsSized: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kelly_sizer",
			Name:      "rows_sized_total",
			Help:      "Table rows sized, by outcome.",
		}, []string{"status"}),
		BetsSized: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kelly_sizer",
			Name:      "bets_sized_total",
			Help:      "Single bets sized, by outcome.",
		}, []string{"status"}),
		SizingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "kelly_sizer",
			Name:      "table_sizing_duration_seconds",
			Help:      "Time spent sizing one scraped table.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
	}

	reg.MustRegister(m.TablesSized, m.RowsSized, m.BetsSized, m.SizingDuration)
	return m
}

// ObserveRows counts rows by outcome
func (m *Metrics) ObserveRows(rows []kelly.RowResult) {
	for _, row := range rows {
		m.RowsSized.WithLabelValues(string(row.Status)).Inc()
	}
}
