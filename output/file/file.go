// Package file writes the assembled event log to disk.
package file

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/c360/storesight/errors"
	"github.com/c360/storesight/metric"
	"github.com/c360/storesight/types"
)

// Config holds configuration for the file sink.
type Config struct {
	// Directory is created if missing; FilePrefix names the output file
	// within it.
	Directory  string `json:"directory"   yaml:"directory"`
	FilePrefix string `json:"file_prefix" yaml:"file_prefix"`

	// Format selects jsonl (one event per line) or json (a single
	// indented array).
	Format string `json:"format" yaml:"format"`
}

// Validate checks the configuration for errors
func (c *Config) Validate() error {
	if c.Directory == "" {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "FileSink", "Validate", "directory is required")
	}
	if c.FilePrefix == "" {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "FileSink", "Validate", "file_prefix is required")
	}
	if c.Format != "jsonl" && c.Format != "json" {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "FileSink", "Validate",
			"format must be jsonl or json")
	}
	return nil
}

// Sink writes one event log per call to Write, replacing any previous
// file. A write failure never corrupts the caller's in-memory result.
type Sink struct {
	cfg     Config
	logger  *slog.Logger
	metrics *metric.Metrics
}

// Option configures a Sink.
type Option func(*Sink)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Sink) { s.logger = logger }
}

// WithMetrics enables sink counters.
func WithMetrics(m *metric.Metrics) Option {
	return func(s *Sink) { s.metrics = m }
}

// New validates the configuration and creates the sink.
func New(cfg Config, opts ...Option) (*Sink, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Sink{
		cfg:    cfg,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Path returns the output file path.
func (s *Sink) Path() string {
	return filepath.Join(s.cfg.Directory, s.cfg.FilePrefix+"."+s.cfg.Format)
}

// Write renders the events in the configured format and replaces the
// output file atomically enough for a batch sink: temp file then rename.
func (s *Sink) Write(events []types.Event) error {
	if err := os.MkdirAll(s.cfg.Directory, 0755); err != nil {
		return errors.WrapTransient(errors.ErrSinkWrite, "FileSink", "Write",
			fmt.Sprintf("create directory %s: %v", s.cfg.Directory, err))
	}

	tmp, err := os.CreateTemp(s.cfg.Directory, s.cfg.FilePrefix+".*.tmp")
	if err != nil {
		return errors.WrapTransient(errors.ErrSinkWrite, "FileSink", "Write",
			fmt.Sprintf("create temp file: %v", err))
	}
	defer os.Remove(tmp.Name())

	if err := s.render(tmp, events); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return errors.WrapTransient(errors.ErrSinkWrite, "FileSink", "Write",
			fmt.Sprintf("close temp file: %v", err))
	}

	path := s.Path()
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.WrapTransient(errors.ErrSinkWrite, "FileSink", "Write",
			fmt.Sprintf("rename to %s: %v", path, err))
	}

	if s.metrics != nil {
		s.metrics.RecordSinkWrite(len(events))
	}
	s.logger.Info("event log written",
		slog.String("path", path),
		slog.Int("events", len(events)))
	return nil
}

func (s *Sink) render(f *os.File, events []types.Event) error {
	w := bufio.NewWriter(f)

	switch s.cfg.Format {
	case "json":
		// A nil slice still renders as [], not null.
		if events == nil {
			events = []types.Event{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(events); err != nil {
			return errors.WrapTransient(errors.ErrSinkWrite, "FileSink", "render",
				fmt.Sprintf("encode events: %v", err))
		}
	default: // jsonl
		enc := json.NewEncoder(w)
		for i := range events {
			if err := enc.Encode(events[i]); err != nil {
				return errors.WrapTransient(errors.ErrSinkWrite, "FileSink", "render",
					fmt.Sprintf("encode event %s: %v", events[i].ID, err))
			}
		}
	}

	if err := w.Flush(); err != nil {
		return errors.WrapTransient(errors.ErrSinkWrite, "FileSink", "render",
			fmt.Sprintf("flush: %v", err))
	}
	return nil
}
