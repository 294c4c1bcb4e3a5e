package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "reqrecon.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Failed to load defaults: %v", err)
	}

	if cfg.Extraction.HeaderScanRows != 10 {
		t.Errorf("Expected scan window 10, got %d", cfg.Extraction.HeaderScanRows)
	}
	if cfg.Report.CriticalThreshold != 0.2 {
		t.Errorf("Expected threshold 0.2, got %v", cfg.Report.CriticalThreshold)
	}
	if cfg.Clients.ShortCodeTable != "data/sigla de clientes.csv" {
		t.Errorf("Unexpected short-code table %q", cfg.Clients.ShortCodeTable)
	}
}

func TestLoad_MissingFileIsNotAnError(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err != nil {
		t.Errorf("Expected missing config file to be ignored, got %v", err)
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := writeConfig(t, `
clients:
  shortcode_table: /srv/siglas.csv
  fallback_dir: /srv/fallback
log:
  level: debug
extraction:
  header_scan_rows: 15
report:
  critical_threshold: 0.5
`)
	t.Setenv(EnvFallbackDir, "/env/fallback")
	t.Setenv(EnvCriticalThreshold, "0.3")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Clients.ShortCodeTable != "/srv/siglas.csv" {
		t.Errorf("Expected file value for short-code table, got %q", cfg.Clients.ShortCodeTable)
	}
	if cfg.Clients.AccountTable != "data/codigo de clientes.csv" {
		t.Errorf("Expected default account table to survive, got %q", cfg.Clients.AccountTable)
	}
	if cfg.Clients.FallbackDir != "/env/fallback" {
		t.Errorf("Expected env to override fallback dir, got %q", cfg.Clients.FallbackDir)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("Unexpected log config %+v", cfg.Log)
	}
	if cfg.Extraction.HeaderScanRows != 15 {
		t.Errorf("Expected scan window 15, got %d", cfg.Extraction.HeaderScanRows)
	}
	if cfg.Report.CriticalThreshold != 0.3 {
		t.Errorf("Expected env threshold 0.3, got %v", cfg.Report.CriticalThreshold)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		env  map[string]string
	}{
		{name: "malformed yaml", yaml: "log: [unterminated"},
		{name: "bad scan rows env", env: map[string]string{EnvHeaderScanRows: "ten"}},
		{name: "bad threshold env", env: map[string]string{EnvCriticalThreshold: "x"}},
		{name: "zero scan rows", yaml: "extraction:\n  header_scan_rows: 0\n"},
		{name: "negative threshold", env: map[string]string{EnvCriticalThreshold: "-1"}},
		{name: "unknown log format", env: map[string]string{EnvLogFormat: "xml"}},
		{name: "unknown output format", yaml: "report:\n  format: pdf\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := ""
			if tt.yaml != "" {
				path = writeConfig(t, tt.yaml)
			}
			if _, err := Load(path); err == nil {
				t.Error("Expected error")
			}
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()

	if err := loadDotEnv(filepath.Join(dir, "absent.env")); err != nil {
		t.Errorf("Expected missing .env to be ignored, got %v", err)
	}

	valid := filepath.Join(dir, "valid.env")
	if err := os.WriteFile(valid, []byte("REQRECON_DOTENV_TEST=seeded\n"), 0o644); err != nil {
		t.Fatalf("Failed to write .env: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("REQRECON_DOTENV_TEST") })
	if err := loadDotEnv(valid); err != nil {
		t.Fatalf("Expected valid .env to load, got %v", err)
	}
	if got := os.Getenv("REQRECON_DOTENV_TEST"); got != "seeded" {
		t.Errorf("Expected REQRECON_DOTENV_TEST=seeded, got %q", got)
	}

	malformed := filepath.Join(dir, "malformed.env")
	if err := os.WriteFile(malformed, []byte("BAD-KEY=1\n"), 0o644); err != nil {
		t.Fatalf("Failed to write .env: %v", err)
	}
	if err := loadDotEnv(malformed); err == nil {
		t.Error("Expected error for malformed .env")
	}
}
