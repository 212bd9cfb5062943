package handler

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Philipp01105/consoleline/core"
)

// StatsCollector exports the counters of a Stats value as Prometheus
// metrics labelled by level.
type StatsCollector struct {
	stats     *Stats
	processed *prometheus.Desc
	failed    *prometheus.Desc
}

// NewStatsCollector creates a collector for stats. namespace prefixes the
// metric names, e.g. "consoleline_records_processed_total".
func NewStatsCollector(namespace string, stats *Stats) *StatsCollector {
	return &StatsCollector{
		stats: stats,
		processed: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "records", "processed_total"),
			"The total number of log records written",
			[]string{"level"}, nil,
		),
		failed: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "records", "failed_total"),
			"The total number of log records that could not be written",
			[]string{"level"}, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *StatsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.processed
	ch <- c.failed
}

// Collect implements prometheus.Collector.
func (c *StatsCollector) Collect(ch chan<- prometheus.Metric) {
	for _, l := range core.Levels() {
		ch <- prometheus.MustNewConstMetric(c.processed, prometheus.CounterValue, float64(c.stats.GetProcessed(l)), l.String())
		ch <- prometheus.MustNewConstMetric(c.failed, prometheus.CounterValue, float64(c.stats.GetFailed(l)), l.String())
	}
}
