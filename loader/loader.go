// Package loader reads the sensor export directory into typed streams.
//
// Streams arrive as JSONL files (one record per line) plus a CSV
// product catalog. Loading is tolerant by design: a missing file is an
// empty stream, and a malformed record is skipped and counted, never
// fatal. Only I/O failures on files that exist are surfaced as errors.
package loader

import (
	"bufio"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/c360/storesight/catalog"
	"github.com/c360/storesight/dataset"
	"github.com/c360/storesight/errors"
	"github.com/c360/storesight/metric"
	"github.com/c360/storesight/pkg/timestamp"
	"github.com/c360/storesight/types"
)

// Input file basenames within the export directory.
const (
	fileTransactions = "pos_transactions.jsonl"
	fileRecognitions = "product_recognition.jsonl"
	fileQueue        = "queue_monitoring.jsonl"
	fileInventory    = "inventory_snapshots.jsonl"
	fileCatalog      = "products_list.csv"
)

// maxLineBytes bounds a single JSONL line. Inventory snapshots carry
// the whole store's SKU map on one line, well past bufio's default.
const maxLineBytes = 4 * 1024 * 1024

// Streams holds the raw loaded collections before indexing, plus the
// per-stream skip counts.
type Streams struct {
	Transactions []types.Transaction
	Recognitions []types.Recognition
	QueueSamples []types.QueueSample
	Snapshots    []types.InventorySnapshot
	Catalog      []types.CatalogEntry

	Skipped map[string]int
}

// Loader reads one export directory.
type Loader struct {
	dir     string
	logger  *slog.Logger
	metrics *metric.Metrics
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) { l.logger = logger }
}

// WithMetrics enables load counters.
func WithMetrics(m *metric.Metrics) Option {
	return func(l *Loader) { l.metrics = m }
}

// New creates a loader for the given export directory.
func New(dir string, opts ...Option) *Loader {
	l := &Loader{
		dir:    dir,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadAll reads every stream plus the catalog.
func (l *Loader) LoadAll() (*Streams, error) {
	s := &Streams{Skipped: make(map[string]int)}

	if err := l.loadJSONL(fileTransactions, types.StreamTransactions, s, parseTransaction); err != nil {
		return nil, err
	}
	if err := l.loadJSONL(fileRecognitions, types.StreamRecognitions, s, parseRecognition); err != nil {
		return nil, err
	}
	if err := l.loadJSONL(fileQueue, types.StreamQueue, s, parseQueueSample); err != nil {
		return nil, err
	}
	if err := l.loadJSONL(fileInventory, types.StreamInventory, s, parseSnapshot); err != nil {
		return nil, err
	}
	if err := l.loadCatalog(s); err != nil {
		return nil, err
	}

	l.logger.Info("data loading complete",
		slog.Int("transactions", len(s.Transactions)),
		slog.Int("recognitions", len(s.Recognitions)),
		slog.Int("queue_samples", len(s.QueueSamples)),
		slog.Int("snapshots", len(s.Snapshots)),
		slog.Int("catalog_entries", len(s.Catalog)),
		slog.Any("skipped", s.Skipped))

	return s, nil
}

// LoadDataset loads every stream and assembles the run context. Catalog
// validation failures (duplicate SKUs) surface here.
func (l *Loader) LoadDataset() (*dataset.Dataset, error) {
	s, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	cat, err := catalog.New(s.Catalog)
	if err != nil {
		return nil, err
	}
	return dataset.New(s.Transactions, s.Recognitions, s.QueueSamples,
		s.Snapshots, cat, s.Skipped), nil
}

// envelope is the common JSONL record shape. The data payload is
// stream-specific and decoded by the per-stream parser. Unknown fields
// such as the exporter's status flag are ignored.
type envelope struct {
	Timestamp string          `json:"timestamp"`
	StationID string          `json:"station_id"`
	Data      json.RawMessage `json:"data"`
}

// loadJSONL reads one JSONL stream. Each line is decoded into the
// envelope and handed to parse; any failure skips the line and bumps
// the stream's skip count.
func (l *Loader) loadJSONL(filename, stream string, s *Streams, parse func(envelope, *Streams) error) error {
	path := filepath.Join(l.dir, filename)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			l.logger.Warn("stream file not found, treating as empty",
				slog.String("stream", stream), slog.String("path", path))
			return nil
		}
		return errors.Wrap(err, "Loader", "loadJSONL", "open "+filename)
	}
	defer f.Close()

	loaded, skipped := 0, 0
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}

		var env envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			skipped++
			l.logger.Debug("skipping malformed record",
				slog.String("stream", stream), slog.Int("line", line),
				slog.String("error", err.Error()))
			continue
		}
		if err := parse(env, s); err != nil {
			skipped++
			l.logger.Debug("skipping malformed record",
				slog.String("stream", stream), slog.Int("line", line),
				slog.String("error", err.Error()))
			continue
		}
		loaded++
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "Loader", "loadJSONL", "scan "+filename)
	}

	s.Skipped[stream] += skipped
	if l.metrics != nil {
		l.metrics.RecordLoaded(stream, loaded)
		l.metrics.RecordSkipped(stream, skipped)
	}
	return nil
}

func parseEnvelope(env envelope, requireStation bool) (int64, error) {
	if env.Timestamp == "" {
		return 0, errors.WrapInvalid(errors.ErrMalformedRecord, "Loader", "parseEnvelope", "missing timestamp")
	}
	ts, err := timestamp.Parse(env.Timestamp)
	if err != nil {
		return 0, err
	}
	if requireStation && env.StationID == "" {
		return 0, errors.WrapInvalid(errors.ErrMalformedRecord, "Loader", "parseEnvelope", "missing station_id")
	}
	if len(env.Data) == 0 {
		return 0, errors.WrapInvalid(errors.ErrMalformedRecord, "Loader", "parseEnvelope", "missing data")
	}
	return ts, nil
}

func parseTransaction(env envelope, s *Streams) error {
	ts, err := parseEnvelope(env, true)
	if err != nil {
		return err
	}
	var data struct {
		CustomerID string  `json:"customer_id"`
		SKU        string  `json:"sku"`
		Barcode    string  `json:"barcode"`
		Price      float64 `json:"price"`
		WeightG    float64 `json:"weight_g"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return errors.WrapInvalid(err, "Loader", "parseTransaction", "decode data")
	}
	if data.SKU == "" {
		return errors.WrapInvalid(errors.ErrMalformedRecord, "Loader", "parseTransaction", "missing sku")
	}
	s.Transactions = append(s.Transactions, types.Transaction{
		Timestamp:    ts,
		StationID:    env.StationID,
		CustomerID:   data.CustomerID,
		SKU:          data.SKU,
		Barcode:      data.Barcode,
		Price:        data.Price,
		ActualWeight: data.WeightG,
	})
	return nil
}

func parseRecognition(env envelope, s *Streams) error {
	ts, err := parseEnvelope(env, true)
	if err != nil {
		return err
	}
	var data struct {
		PredictedProduct string  `json:"predicted_product"`
		Accuracy         float64 `json:"accuracy"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return errors.WrapInvalid(err, "Loader", "parseRecognition", "decode data")
	}
	if data.PredictedProduct == "" {
		return errors.WrapInvalid(errors.ErrMalformedRecord, "Loader", "parseRecognition", "missing predicted_product")
	}
	s.Recognitions = append(s.Recognitions, types.Recognition{
		Timestamp:    ts,
		StationID:    env.StationID,
		PredictedSKU: data.PredictedProduct,
		Confidence:   data.Accuracy,
	})
	return nil
}

func parseQueueSample(env envelope, s *Streams) error {
	ts, err := parseEnvelope(env, true)
	if err != nil {
		return err
	}
	var data struct {
		CustomerCount    int     `json:"customer_count"`
		AverageDwellTime float64 `json:"average_dwell_time"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return errors.WrapInvalid(err, "Loader", "parseQueueSample", "decode data")
	}
	if data.CustomerCount < 0 {
		return errors.WrapInvalid(errors.ErrMalformedRecord, "Loader", "parseQueueSample", "negative customer_count")
	}
	s.QueueSamples = append(s.QueueSamples, types.QueueSample{
		Timestamp:        ts,
		StationID:        env.StationID,
		CustomerCount:    data.CustomerCount,
		AverageDwellTime: data.AverageDwellTime,
	})
	return nil
}

func parseSnapshot(env envelope, s *Streams) error {
	// Snapshots are store-wide; no station required.
	ts, err := parseEnvelope(env, false)
	if err != nil {
		return err
	}
	var counts map[string]int
	if err := json.Unmarshal(env.Data, &counts); err != nil {
		return errors.WrapInvalid(err, "Loader", "parseSnapshot", "decode data")
	}
	s.Snapshots = append(s.Snapshots, types.InventorySnapshot{
		Timestamp: ts,
		Counts:    counts,
	})
	return nil
}
