package main

import (
	"flag"
	"fmt"
	"os"
)

// CLIConfig holds command-line configuration
type CLIConfig struct {
	ConfigPath  string
	InputDir    string
	OutputDir   string
	LogLevel    string
	LogFormat   string
	Validate    bool
	ShowVersion bool
	ShowHelp    bool
}

func parseFlags() *CLIConfig {
	cfg := &CLIConfig{}

	// Define flags with environment variable fallback
	flag.StringVar(&cfg.ConfigPath, "config",
		getEnv("STORESIGHT_CONFIG", ""),
		"Path to configuration file, empty for defaults (env: STORESIGHT_CONFIG)")

	flag.StringVar(&cfg.InputDir, "input",
		getEnv("STORESIGHT_INPUT", "data/input"),
		"Directory containing the sensor export (env: STORESIGHT_INPUT)")

	flag.StringVar(&cfg.OutputDir, "output",
		getEnv("STORESIGHT_OUTPUT", ""),
		"Override the sink output directory (env: STORESIGHT_OUTPUT)")

	flag.StringVar(&cfg.LogLevel, "log-level",
		getEnv("STORESIGHT_LOG_LEVEL", "info"),
		"Log level: debug, info, warn, error (env: STORESIGHT_LOG_LEVEL)")

	flag.StringVar(&cfg.LogFormat, "log-format",
		getEnv("STORESIGHT_LOG_FORMAT", "text"),
		"Log format: json, text (env: STORESIGHT_LOG_FORMAT)")

	flag.BoolVar(&cfg.Validate, "validate", false, "Validate configuration and exit")
	flag.BoolVar(&cfg.ShowVersion, "version", false, "Show version information")
	flag.BoolVar(&cfg.ShowVersion, "v", false, "Show version information")
	flag.BoolVar(&cfg.ShowHelp, "help", false, "Show help information")
	flag.BoolVar(&cfg.ShowHelp, "h", false, "Show help information")

	flag.Usage = func() {
		printDetailedHelp()
	}

	flag.Parse()

	return cfg
}

func validateFlags(cfg *CLIConfig) error {
	if cfg.ShowVersion || cfg.ShowHelp {
		return nil
	}

	if cfg.ConfigPath != "" {
		if _, err := os.Stat(cfg.ConfigPath); err != nil {
			return fmt.Errorf("config file not found: %s", cfg.ConfigPath)
		}
	}

	if !cfg.Validate {
		if _, err := os.Stat(cfg.InputDir); err != nil {
			return fmt.Errorf("input directory not found: %s", cfg.InputDir)
		}
	}

	validLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLevels, cfg.LogLevel) {
		return fmt.Errorf("invalid log level: %s", cfg.LogLevel)
	}

	validFormats := []string{"json", "text"}
	if !contains(validFormats, cfg.LogFormat) {
		return fmt.Errorf("invalid log format: %s", cfg.LogFormat)
	}

	return nil
}

func printDetailedHelp() {
	_, _ = fmt.Fprintf(os.Stderr, `%s - Retail Checkout Event Detection

Usage: %s [options]

Options:
`, appName, os.Args[0])
	flag.PrintDefaults()
	_, _ = fmt.Fprintf(os.Stderr, `
Examples:
  # Run against a sensor export
  %s --input=/data/export

  # Run with custom thresholds
  %s --input=/data/export --config=/etc/storesight/config.yaml

  # Validate configuration only
  %s --config=/etc/storesight/config.yaml --validate

Version: %s
Build: %s
`, os.Args[0], os.Args[0], os.Args[0], Version, BuildTime)
}

// Environment variable helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Utility function to check if slice contains string
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
