// Package prometheus records screening run metrics and exports them in the
// Prometheus text format.
package prometheus

import (
	"time"
)

// SieveMetrics holds the screening metrics.
type SieveMetrics struct {
	RecordsLoaded   GaugeVec
	RecordsParsed   CounterVec
	StageRecords    CounterVec
	StageDuration   HistogramVec
	PhaseDuration   HistogramVec
	SurvivorRecords GaugeVec
	RunsTotal       CounterVec
	LastRunSeconds  GaugeVec
}

// Default Buckets
var (
	DefaultPhaseDurationBuckets = []float64{.001, .01, .1, .5, 1, 2.5, 5, 10, 30, 60, 300}
)

// NewSieveMetrics registers all metrics on collector.
func NewSieveMetrics(collector MetricsCollector) *SieveMetrics {
	m := &SieveMetrics{}

	m.RecordsLoaded = collector.RegisterGauge("records_loaded", "Records in the input table, duplicates included")
	m.RecordsParsed = collector.RegisterCounter("records_parsed_total", "Structure parse outcomes", "outcome")
	m.StageRecords = collector.RegisterCounter("stage_records_total", "Records seen by a filter stage", "stage", "mode", "outcome")
	m.StageDuration = collector.RegisterHistogram("stage_duration_seconds", "Filter stage evaluation time", DefaultPhaseDurationBuckets, "stage")
	m.PhaseDuration = collector.RegisterHistogram("phase_duration_seconds", "Pipeline phase time", DefaultPhaseDurationBuckets, "phase")
	m.SurvivorRecords = collector.RegisterGauge("survivor_records", "Records left after all stages", "kind")
	m.RunsTotal = collector.RegisterCounter("runs_total", "Pipeline runs", "status")
	m.LastRunSeconds = collector.RegisterGauge("last_run_timestamp_seconds", "Unix time the last run finished", "status")

	return m
}

// ObserveLoad records the loaded table size and load time.
func (m *SieveMetrics) ObserveLoad(records int, d time.Duration) {
	m.RecordsLoaded.WithLabelValues().Set(float64(records))
	m.PhaseDuration.WithLabelValues("load").Observe(d.Seconds())
}

// ObserveParse records structure parse outcomes.
func (m *SieveMetrics) ObserveParse(parsed, unparseable int, d time.Duration) {
	m.RecordsParsed.WithLabelValues("parsed").Add(float64(parsed))
	m.RecordsParsed.WithLabelValues("unparseable").Add(float64(unparseable))
	m.PhaseDuration.WithLabelValues("parse").Observe(d.Seconds())
}

// ObserveStage records one filter stage.  dropped includes unparseable.
func (m *SieveMetrics) ObserveStage(stage, mode string, kept, dropped, unparseable int, d time.Duration) {
	m.StageRecords.WithLabelValues(stage, mode, "kept").Add(float64(kept))
	m.StageRecords.WithLabelValues(stage, mode, "dropped").Add(float64(dropped - unparseable))
	m.StageRecords.WithLabelValues(stage, mode, "unparseable").Add(float64(unparseable))
	m.StageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// ObserveRun records the end of a run.
func (m *SieveMetrics) ObserveRun(status string, survivors, unique int, d time.Duration) {
	m.RunsTotal.WithLabelValues(status).Inc()
	m.SurvivorRecords.WithLabelValues("total").Set(float64(survivors))
	m.SurvivorRecords.WithLabelValues("unique").Set(float64(unique))
	m.PhaseDuration.WithLabelValues("total").Observe(d.Seconds())
	m.LastRunSeconds.WithLabelValues(status).Set(float64(time.Now().Unix()))
}

//Personal.AI order the ending
