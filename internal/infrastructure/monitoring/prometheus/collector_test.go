package prometheus

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/ScaffoldSieve/internal/infrastructure/monitoring/logging"
)

func newTestCollector(t *testing.T) MetricsCollector {
	t.Helper()
	c, err := NewMetricsCollector(CollectorConfig{Namespace: "test", Subsystem: "unit"}, logging.NewNopLogger())
	require.NoError(t, err)
	return c
}

func gather(t *testing.T, c MetricsCollector) map[string]*dto.MetricFamily {
	t.Helper()
	families, err := c.Gatherer().Gather()
	require.NoError(t, err)
	out := make(map[string]*dto.MetricFamily, len(families))
	for _, f := range families {
		out[f.GetName()] = f
	}
	return out
}

func labelValue(m *dto.Metric, name string) string {
	for _, lp := range m.GetLabel() {
		if lp.GetName() == name {
			return lp.GetValue()
		}
	}
	return ""
}

func TestNewMetricsCollector_EmptyNamespace(t *testing.T) {
	_, err := NewMetricsCollector(CollectorConfig{}, nil)
	assert.Error(t, err)
}

func TestRegisterCounter_Idempotent(t *testing.T) {
	c := newTestCollector(t)
	a := c.RegisterCounter("events_total", "events", "kind")
	b := c.RegisterCounter("events_total", "events", "kind")
	a.WithLabelValues("x").Inc()
	b.WithLabelValues("x").Add(2)

	fam := gather(t, c)["test_unit_events_total"]
	require.NotNil(t, fam)
	require.Len(t, fam.GetMetric(), 1)
	assert.Equal(t, 3.0, fam.GetMetric()[0].GetCounter().GetValue())
}

func TestRegister_TypeMismatchReturnsNoop(t *testing.T) {
	c := newTestCollector(t)
	c.RegisterCounter("mixed", "mixed")
	g := c.RegisterGauge("mixed", "mixed")
	assert.IsType(t, &noopGaugeVec{}, g)
	assert.NotPanics(t, func() { g.WithLabelValues().Set(1) })
}

func TestGaugeAndHistogram(t *testing.T) {
	c := newTestCollector(t)
	g := c.RegisterGauge("level", "level")
	g.WithLabelValues().Set(4)
	g.WithLabelValues().Dec()

	h := c.RegisterHistogram("latency_seconds", "latency", nil)
	timer := NewTimer(h.WithLabelValues())
	assert.GreaterOrEqual(t, timer.ObserveDuration(), time.Duration(0))

	fams := gather(t, c)
	assert.Equal(t, 3.0, fams["test_unit_level"].GetMetric()[0].GetGauge().GetValue())
	assert.Equal(t, uint64(1), fams["test_unit_latency_seconds"].GetMetric()[0].GetHistogram().GetSampleCount())
}

func TestWriteTextfile(t *testing.T) {
	c := newTestCollector(t)
	c.RegisterCounter("written_total", "written").WithLabelValues().Inc()

	path := filepath.Join(t.TempDir(), "sieve.prom")
	require.NoError(t, c.WriteTextfile(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "test_unit_written_total 1")

	err = c.WriteTextfile(filepath.Join(t.TempDir(), "missing", "dir", "x.prom"))
	assert.Error(t, err)
}

func TestSieveMetrics(t *testing.T) {
	c := newTestCollector(t)
	m := NewSieveMetrics(c)

	m.ObserveLoad(10, time.Millisecond)
	m.ObserveParse(9, 1, time.Millisecond)
	m.ObserveStage("scaffold", "require", 4, 6, 1, time.Millisecond)
	m.ObserveRun("success", 3, 2, time.Second)

	fams := gather(t, c)
	assert.Equal(t, 10.0, fams["test_unit_records_loaded"].GetMetric()[0].GetGauge().GetValue())

	outcomes := map[string]float64{}
	for _, metric := range fams["test_unit_stage_records_total"].GetMetric() {
		outcomes[labelValue(metric, "outcome")] = metric.GetCounter().GetValue()
		assert.Equal(t, "scaffold", labelValue(metric, "stage"))
	}
	assert.Equal(t, map[string]float64{"kept": 4, "dropped": 5, "unparseable": 1}, outcomes)

	survivors := map[string]float64{}
	for _, metric := range fams["test_unit_survivor_records"].GetMetric() {
		survivors[labelValue(metric, "kind")] = metric.GetGauge().GetValue()
	}
	assert.Equal(t, map[string]float64{"total": 3, "unique": 2}, survivors)
	assert.NotNil(t, fams["test_unit_runs_total"])
}

//Personal.AI order the ending
