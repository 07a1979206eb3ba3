// Package main implements the StoreSight command line entry point.
// StoreSight correlates retail checkout sensor streams and emits a
// globally time-ordered log of detected operational and fraud events.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"sort"
	"syscall"
	"time"

	"github.com/c360/storesight/config"
	"github.com/c360/storesight/engine"
	"github.com/c360/storesight/loader"
	"github.com/c360/storesight/metric"
	"github.com/c360/storesight/output/file"
	"github.com/c360/storesight/output/natspub"
)

// Build information constants
const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "storesight"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := run(); err != nil {
		slog.Error("Run failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cliCfg := parseFlags()

	if cliCfg.ShowHelp {
		printDetailedHelp()
		return nil
	}
	if cliCfg.ShowVersion {
		fmt.Printf("%s %s (build %s)\n", appName, Version, BuildTime)
		return nil
	}
	if err := validateFlags(cliCfg); err != nil {
		return err
	}

	logger := setupLogger(cliCfg.LogLevel, cliCfg.LogFormat)

	cfg, err := config.Load(cliCfg.ConfigPath)
	if err != nil {
		return err
	}
	if cliCfg.OutputDir != "" {
		cfg.Sink.Directory = cliCfg.OutputDir
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	if cliCfg.Validate {
		logger.Info("configuration is valid")
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	registry := metric.NewRegistry()
	if cfg.Metrics.ListenAddr != "" {
		server := metric.NewServer(cfg.Metrics.ListenAddr, "/metrics", registry)
		go func() {
			if err := server.Start(); err != nil {
				logger.Warn("metrics server stopped", slog.String("error", err.Error()))
			}
		}()
		defer func() {
			if err := server.Stop(); err != nil {
				logger.Warn("metrics server shutdown failed", slog.String("error", err.Error()))
			}
		}()
	}

	ds, err := loader.New(cliCfg.InputDir,
		loader.WithLogger(logger),
		loader.WithMetrics(registry.CoreMetrics()),
	).LoadDataset()
	if err != nil {
		return err
	}

	eng, err := engine.New(cfg, logger, registry)
	if err != nil {
		return err
	}
	result, err := eng.Run(ctx, ds)
	if err != nil {
		return err
	}

	printSummary(result)

	sink, err := file.New(file.Config{
		Directory:  cfg.Sink.Directory,
		FilePrefix: cfg.Sink.FilePrefix,
		Format:     cfg.Sink.Format,
	}, file.WithLogger(logger), file.WithMetrics(registry.CoreMetrics()))
	if err != nil {
		return err
	}
	if err := sink.Write(result.Events); err != nil {
		return err
	}
	fmt.Printf("Saved %d events to %s\n", len(result.Events), sink.Path())

	if cfg.Sink.NATSURL != "" {
		pub, err := natspub.Connect(natspub.Config{
			URL:     cfg.Sink.NATSURL,
			Subject: cfg.Sink.NATSSubject,
		}, natspub.WithLogger(logger), natspub.WithMetrics(registry.CoreMetrics()))
		if err != nil {
			return err
		}
		defer pub.Close()
		if err := pub.Publish(ctx, result.Events); err != nil {
			return err
		}
	}

	return nil
}

// printSummary writes the per-kind event breakdown in a stable order.
func printSummary(result *engine.Result) {
	fmt.Printf("\nDetection run %s: %d events in %s\n",
		result.RunID, len(result.Events), result.Duration.Round(time.Millisecond))

	names := make([]string, 0, len(result.Counts))
	for name := range result.Counts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %-26s %d\n", name, result.Counts[name])
	}

	if len(result.Skipped) > 0 {
		total := 0
		for _, n := range result.Skipped {
			total += n
		}
		if total > 0 {
			fmt.Printf("  (skipped %d malformed records)\n", total)
		}
	}
}
