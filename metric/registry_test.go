package metric

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/storesight/errors"
)

func TestNewRegistry(t *testing.T) {
	registry := NewRegistry()
	require.NotNil(t, registry)
	require.NotNil(t, registry.PrometheusRegistry())
	require.NotNil(t, registry.CoreMetrics())
}

func TestRegistry_RegisterCounter(t *testing.T) {
	registry := NewRegistry()

	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "test_counter_total",
		Help: "test counter",
	})

	err := registry.RegisterCounter("loader", "test_counter_total", counter)
	require.NoError(t, err)

	// Same key again is rejected
	err = registry.RegisterCounter("loader", "test_counter_total", counter)
	require.Error(t, err)
	assert.True(t, errors.IsInvalid(err))
}

func TestRegistry_Unregister(t *testing.T) {
	registry := NewRegistry()

	gauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "test_gauge",
		Help: "test gauge",
	})

	require.NoError(t, registry.RegisterGauge("engine", "test_gauge", gauge))
	assert.True(t, registry.Unregister("engine", "test_gauge"))
	assert.False(t, registry.Unregister("engine", "test_gauge"))

	// Re-registration after unregister succeeds
	require.NoError(t, registry.RegisterGauge("engine", "test_gauge", gauge))
}

func TestCoreMetrics_Record(t *testing.T) {
	registry := NewRegistry()
	m := registry.CoreMetrics()

	// Exercise all recorder paths; values are scraped, not read back here
	m.RecordLoaded("transactions", 100)
	m.RecordSkipped("transactions", 2)
	m.RecordEvent("Scanner Avoidance")
	m.RecordDetectorDuration("weight", 5*time.Millisecond)
	m.RecordUnknownSKU()
	m.RecordSinkWrite(42)
	m.RecordSinkError("file")

	families, err := registry.PrometheusRegistry().Gather()
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, fam := range families {
		names[fam.GetName()] = true
	}
	assert.True(t, names["storesight_input_records_loaded_total"])
	assert.True(t, names["storesight_detection_events_total"])
	assert.True(t, names["storesight_sink_writes_total"])
}
