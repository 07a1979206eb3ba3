package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/storesight/errors"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.InDelta(t, 0.7, cfg.Detection.RecognitionConfidenceMin, 1e-9)
	assert.InDelta(t, 10, cfg.Detection.WeightTolerancePercent, 1e-9)
	assert.Equal(t, 5, cfg.Detection.QueueLengthThreshold)
	assert.InDelta(t, 300, cfg.Detection.WaitTimeThreshold, 1e-9)
	assert.Equal(t, 2, cfg.Detection.InventoryDiscrepancyThreshold)
	assert.InDelta(t, 600, cfg.Detection.InventoryCheckInterval, 1e-9)
	assert.InDelta(t, 180, cfg.Detection.StationInactiveThreshold, 1e-9)
	assert.InDelta(t, 5, cfg.Detection.RecognitionWindowBefore, 1e-9)
	assert.InDelta(t, 10, cfg.Detection.RecognitionWindowAfter, 1e-9)
	assert.InDelta(t, 10, cfg.Detection.TransactionWindow, 1e-9)

	require.NoError(t, cfg.Validate())
}

func TestDetection_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Detection)
	}{
		{"confidence below zero", func(d *Detection) { d.RecognitionConfidenceMin = -0.1 }},
		{"confidence above one", func(d *Detection) { d.RecognitionConfidenceMin = 1.5 }},
		{"zero weight tolerance", func(d *Detection) { d.WeightTolerancePercent = 0 }},
		{"negative weight tolerance", func(d *Detection) { d.WeightTolerancePercent = -5 }},
		{"zero queue threshold", func(d *Detection) { d.QueueLengthThreshold = 0 }},
		{"negative wait threshold", func(d *Detection) { d.WaitTimeThreshold = -1 }},
		{"negative inventory threshold", func(d *Detection) { d.InventoryDiscrepancyThreshold = -1 }},
		{"zero check interval", func(d *Detection) { d.InventoryCheckInterval = 0 }},
		{"zero inactive threshold", func(d *Detection) { d.StationInactiveThreshold = 0 }},
		{"negative window before", func(d *Detection) { d.RecognitionWindowBefore = -1 }},
		{"negative window after", func(d *Detection) { d.RecognitionWindowAfter = -1 }},
		{"negative transaction window", func(d *Detection) { d.TransactionWindow = -1 }},
		{"negative workers", func(d *Detection) { d.Workers = -1 }},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := Default()
			test.mutate(&cfg.Detection)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.IsFatal(err), "config violations must be fatal")
		})
	}
}

func TestSink_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Sink)
		wantErr bool
	}{
		{"valid defaults", func(_ *Sink) {}, false},
		{"json format", func(s *Sink) { s.Format = "json" }, false},
		{"empty directory", func(s *Sink) { s.Directory = "" }, true},
		{"bad format", func(s *Sink) { s.Format = "csv" }, true},
		{"nats url without subject", func(s *Sink) { s.NATSURL = "nats://localhost:4222" }, true},
		{"nats subject without url", func(s *Sink) { s.NATSSubject = "storesight.events" }, true},
		{"nats fully configured", func(s *Sink) {
			s.NATSURL = "nats://localhost:4222"
			s.NATSSubject = "storesight.events"
		}, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := Default()
			test.mutate(&cfg.Sink)
			err := cfg.Validate()
			if test.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoad_JSONFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	content := `{
		"detection": {
			"recognition_confidence_min": 0.8,
			"queue_length_threshold": 7
		}
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	// Overridden values
	assert.InDelta(t, 0.8, cfg.Detection.RecognitionConfidenceMin, 1e-9)
	assert.Equal(t, 7, cfg.Detection.QueueLengthThreshold)
	// Defaults survive for unmentioned fields
	assert.InDelta(t, 10, cfg.Detection.WeightTolerancePercent, 1e-9)
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "detection:\n  wait_time_threshold: 240\nsink:\n  format: json\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.InDelta(t, 240, cfg.Detection.WaitTimeThreshold, 1e-9)
	assert.Equal(t, "json", cfg.Sink.Format)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.True(t, errors.IsFatal(err))
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(""), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_InvalidValuesRejected(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	content := `{"detection": {"recognition_confidence_min": 2.0}}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.IsFatal(err))
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("STORESIGHT_QUEUE_LENGTH_THRESHOLD", "9")
	t.Setenv("STORESIGHT_SINK_FORMAT", "json")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9, cfg.Detection.QueueLengthThreshold)
	assert.Equal(t, "json", cfg.Sink.Format)
}
