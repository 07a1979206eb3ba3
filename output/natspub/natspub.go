// Package natspub publishes the assembled event log to a NATS subject.
//
// The publisher is an optional second sink next to the file sink: live
// dashboards subscribe to the subject instead of polling the output
// file. Publishing is best-effort with retries; a failure surfaces to
// the caller without touching the in-memory result.
package natspub

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/c360/storesight/errors"
	"github.com/c360/storesight/metric"
	"github.com/c360/storesight/pkg/retry"
	"github.com/c360/storesight/types"
)

// Config holds configuration for the NATS publisher.
type Config struct {
	URL     string `json:"url"     yaml:"url"`
	Subject string `json:"subject" yaml:"subject"`

	// ConnectTimeout bounds the initial dial. Zero means 5 seconds.
	ConnectTimeout time.Duration `json:"connect_timeout" yaml:"connect_timeout"`

	// Retry governs per-event publish retries.
	Retry retry.Config `json:"retry" yaml:"retry"`
}

// Validate checks the configuration for errors
func (c *Config) Validate() error {
	if c.URL == "" {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "NATSPublisher", "Validate", "url is required")
	}
	if c.Subject == "" {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "NATSPublisher", "Validate", "subject is required")
	}
	return nil
}

// Publisher owns one NATS connection for the lifetime of a run.
type Publisher struct {
	conn    *nats.Conn
	cfg     Config
	logger  *slog.Logger
	metrics *metric.Metrics
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) { p.logger = logger }
}

// WithMetrics enables sink counters.
func WithMetrics(m *metric.Metrics) Option {
	return func(p *Publisher) { p.metrics = m }
}

// Connect validates the configuration and dials the server.
func Connect(cfg Config, opts ...Option) (*Publisher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if cfg.Retry.MaxAttempts == 0 {
		cfg.Retry = retry.DefaultConfig()
	}

	conn, err := nats.Connect(cfg.URL,
		nats.Name("storesight-publisher"),
		nats.Timeout(timeout),
		nats.MaxReconnects(3),
		nats.ReconnectWait(time.Second),
	)
	if err != nil {
		return nil, errors.WrapTransient(errors.ErrNoConnection, "NATSPublisher", "Connect",
			fmt.Sprintf("dial %s: %v", cfg.URL, err))
	}

	p := &Publisher{
		conn:   conn,
		cfg:    cfg,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Publish sends every event to the configured subject in log order and
// flushes. Each event is retried independently; the first event that
// exhausts its retries fails the whole publish.
func (p *Publisher) Publish(ctx context.Context, events []types.Event) error {
	for i := range events {
		payload, err := json.Marshal(events[i])
		if err != nil {
			// Marshal failures are not retryable.
			return retry.NonRetryable(errors.WrapInvalid(err, "NATSPublisher", "Publish",
				"marshal event "+events[i].ID))
		}

		err = retry.Do(ctx, p.cfg.Retry, func() error {
			return p.conn.Publish(p.cfg.Subject, payload)
		})
		if err != nil {
			if p.metrics != nil {
				p.metrics.RecordSinkError("nats")
			}
			return errors.WrapTransient(errors.ErrSinkWrite, "NATSPublisher", "Publish",
				fmt.Sprintf("publish event %s: %v", events[i].ID, err))
		}
	}

	if err := p.conn.FlushWithContext(ctx); err != nil {
		if p.metrics != nil {
			p.metrics.RecordSinkError("nats")
		}
		return errors.WrapTransient(errors.ErrSinkWrite, "NATSPublisher", "Publish", "flush")
	}

	if p.metrics != nil {
		p.metrics.RecordSinkWrite(len(events))
	}
	p.logger.Info("event log published",
		slog.String("subject", p.cfg.Subject),
		slog.Int("events", len(events)))
	return nil
}

// Close drains the connection.
func (p *Publisher) Close() {
	if p.conn != nil && !p.conn.IsClosed() {
		p.conn.Close()
	}
}
