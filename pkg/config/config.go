// Package config assembles runtime settings from defaults, an optional YAML
// file and REQRECON_* environment variables (optionally seeded from .env).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables overriding file settings
const (
	EnvShortCodeTable    = "REQRECON_SHORTCODE_TABLE"
	EnvAccountTable      = "REQRECON_ACCOUNT_TABLE"
	EnvFallbackDir       = "REQRECON_FALLBACK_DIR"
	EnvLogLevel          = "REQRECON_LOG_LEVEL"
	EnvLogFormat         = "REQRECON_LOG_FORMAT"
	EnvHeaderScanRows    = "REQRECON_HEADER_SCAN_ROWS"
	EnvCriticalThreshold = "REQRECON_CRITICAL_THRESHOLD"
)

// Config holds every tunable of a processing run
type Config struct {
	Clients    ClientsConfig    `yaml:"clients"`
	Log        LogConfig        `yaml:"log"`
	Extraction ExtractionConfig `yaml:"extraction"`
	Report     ReportConfig     `yaml:"report"`
}

// ClientsConfig locates the client reference tables
type ClientsConfig struct {
	ShortCodeTable string `yaml:"shortcode_table"`
	AccountTable   string `yaml:"account_table"`
	FallbackDir    string `yaml:"fallback_dir"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type ExtractionConfig struct {
	HeaderScanRows int `yaml:"header_scan_rows"`
}

type ReportConfig struct {
	CriticalThreshold float64 `yaml:"critical_threshold"`
	Format            string  `yaml:"format"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Clients: ClientsConfig{
			ShortCodeTable: "data/sigla de clientes.csv",
			AccountTable:   "data/codigo de clientes.csv",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Extraction: ExtractionConfig{
			HeaderScanRows: 10,
		},
		Report: ReportConfig{
			CriticalThreshold: 0.2,
			Format:            "text",
		},
	}
}

// loadDotEnv seeds the environment from filename. A missing file is ignored;
// a malformed one is an error.
func loadDotEnv(filename string) error {
	if err := godotenv.Load(filename); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", filename, err)
	}
	return nil
}

// Load builds the configuration. A .env file in the working directory and
// the YAML file at path are both optional; path may be empty.
func Load(path string) (Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return Config{}, err
	}

	cfg := Default()
	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	setString(&c.Clients.ShortCodeTable, EnvShortCodeTable)
	setString(&c.Clients.AccountTable, EnvAccountTable)
	setString(&c.Clients.FallbackDir, EnvFallbackDir)
	setString(&c.Log.Level, EnvLogLevel)
	setString(&c.Log.Format, EnvLogFormat)

	if v, ok := os.LookupEnv(EnvHeaderScanRows); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvHeaderScanRows, v, err)
		}
		c.Extraction.HeaderScanRows = n
	}
	if v, ok := os.LookupEnv(EnvCriticalThreshold); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvCriticalThreshold, v, err)
		}
		c.Report.CriticalThreshold = f
	}
	return nil
}

func setString(target *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*target = v
	}
}

// Validate rejects settings no run could use
func (c Config) Validate() error {
	if c.Extraction.HeaderScanRows <= 0 {
		return fmt.Errorf("header scan rows must be positive, got %d", c.Extraction.HeaderScanRows)
	}
	if c.Report.CriticalThreshold < 0 {
		return fmt.Errorf("critical threshold must not be negative, got %v", c.Report.CriticalThreshold)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	switch c.Report.Format {
	case "text", "json", "csv":
	default:
		return fmt.Errorf("unknown output format %q", c.Report.Format)
	}
	return nil
}
