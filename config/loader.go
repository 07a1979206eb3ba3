package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/c360/storesight/errors"
)

// envPrefix is the prefix for environment variable overrides.
const envPrefix = "STORESIGHT"

// Load reads a configuration file, applies STORESIGHT_* environment
// overrides on top, and validates the result. The file format is selected
// by extension: .yaml/.yml or .json. An empty path yields the defaults
// (plus env overrides).
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, errors.WrapFatal(errors.ErrConfigNotFound, "Config", "Load", path)
			}
			return nil, errors.WrapFatal(err, "Config", "Load", "read file")
		}

		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, errors.WrapFatal(err, "Config", "Load", "parse yaml")
			}
		case ".json":
			if err := json.Unmarshal(data, cfg); err != nil {
				return nil, errors.WrapFatal(err, "Config", "Load", "parse json")
			}
		default:
			return nil, errors.WrapFatal(errors.ErrInvalidConfig, "Config", "Load",
				"unsupported config extension "+filepath.Ext(path))
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides on top of the
// file values. Unparseable values are ignored rather than guessed at;
// validation catches out-of-domain results.
func applyEnvOverrides(cfg *Config) {
	setFloat := func(key string, target *float64) {
		if val := os.Getenv(envPrefix + key); val != "" {
			if parsed, err := strconv.ParseFloat(val, 64); err == nil {
				*target = parsed
			}
		}
	}
	setInt := func(key string, target *int) {
		if val := os.Getenv(envPrefix + key); val != "" {
			if parsed, err := strconv.Atoi(val); err == nil {
				*target = parsed
			}
		}
	}
	setString := func(key string, target *string) {
		if val := os.Getenv(envPrefix + key); val != "" {
			*target = val
		}
	}

	setFloat("_RECOGNITION_CONFIDENCE_MIN", &cfg.Detection.RecognitionConfidenceMin)
	setFloat("_WEIGHT_TOLERANCE_PERCENT", &cfg.Detection.WeightTolerancePercent)
	setInt("_QUEUE_LENGTH_THRESHOLD", &cfg.Detection.QueueLengthThreshold)
	setFloat("_WAIT_TIME_THRESHOLD", &cfg.Detection.WaitTimeThreshold)
	setInt("_INVENTORY_DISCREPANCY_THRESHOLD", &cfg.Detection.InventoryDiscrepancyThreshold)
	setFloat("_STATION_INACTIVE_THRESHOLD", &cfg.Detection.StationInactiveThreshold)
	setInt("_WORKERS", &cfg.Detection.Workers)

	setString("_SINK_DIRECTORY", &cfg.Sink.Directory)
	setString("_SINK_FORMAT", &cfg.Sink.Format)
	setString("_NATS_URL", &cfg.Sink.NATSURL)
	setString("_NATS_SUBJECT", &cfg.Sink.NATSSubject)
	setString("_METRICS_LISTEN_ADDR", &cfg.Metrics.ListenAddr)
}
