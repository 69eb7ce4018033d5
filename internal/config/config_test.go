// ABOUTME: Tests for configuration loading and parsing
// ABOUTME: Covers YAML loading, env var expansion, duration parsing, and validation

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return configPath
}

func TestLoad_ValidConfig(t *testing.T) {
	configPath := writeConfig(t, `
pipeline:
  settle_delay: "750ms"

events:
  subscriber_buffer: 32

logging:
  level: "debug"
  format: "json"

metrics:
  enabled: true
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Pipeline.SettleDelay != 750*time.Millisecond {
		t.Errorf("SettleDelay = %v, want 750ms", cfg.Pipeline.SettleDelay)
	}
	if cfg.Events.SubscriberBuffer != 32 {
		t.Errorf("SubscriberBuffer = %d, want 32", cfg.Events.SubscriberBuffer)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format = %q, want json", cfg.Logging.Format)
	}
	if !cfg.Metrics.Enabled {
		t.Error("Metrics.Enabled = false, want true")
	}
}

func TestLoad_EmptyFileKeepsDefaults(t *testing.T) {
	configPath := writeConfig(t, "")

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Pipeline.SettleDelay != 0 {
		t.Errorf("SettleDelay = %v, want 0 (engine default)", cfg.Pipeline.SettleDelay)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("Logging.Format = %q, want text", cfg.Logging.Format)
	}
}

func TestLoad_ExpandsEnvVars(t *testing.T) {
	t.Setenv("STITCH_TEST_LEVEL", "warn")

	configPath := writeConfig(t, `
logging:
  level: "${STITCH_TEST_LEVEL}"
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want warn", cfg.Logging.Level)
	}
}

func TestLoad_UnsetEnvVarBecomesEmpty(t *testing.T) {
	configPath := writeConfig(t, `
logging:
  level: "${STITCH_DEFINITELY_UNSET_VAR}"
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	// Empty level validates and falls back to info at use sites.
	if cfg.Logging.Level != "" {
		t.Errorf("Logging.Level = %q, want empty", cfg.Logging.Level)
	}
	if cfg.SlogLevel().String() != "INFO" {
		t.Errorf("SlogLevel() = %v, want INFO", cfg.SlogLevel())
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	configPath := writeConfig(t, `
pipeline:
  settle_delay: "soon"
`)

	_, err := Load(configPath)
	if err == nil {
		t.Fatal("Load() should fail on an unparseable duration")
	}
	if !strings.Contains(err.Error(), "settle_delay") {
		t.Errorf("error %q should name the offending field", err)
	}
}

func TestLoad_InvalidLevelRejected(t *testing.T) {
	configPath := writeConfig(t, `
logging:
  level: "verbose"
`)

	_, err := Load(configPath)
	if err == nil {
		t.Fatal("Load() should reject an unknown logging level")
	}
}

func TestLoad_NegativeBufferRejected(t *testing.T) {
	configPath := writeConfig(t, `
events:
  subscriber_buffer: -1
`)

	_, err := Load(configPath)
	if err == nil {
		t.Fatal("Load() should reject a negative subscriber buffer")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("Load() should fail for a missing file")
	}
}

func TestSlogLevel_Mapping(t *testing.T) {
	cases := map[string]string{
		"debug": "DEBUG",
		"info":  "INFO",
		"warn":  "WARN",
		"error": "ERROR",
		"":      "INFO",
	}
	for level, want := range cases {
		cfg := &Config{Logging: LoggingConfig{Level: level}}
		if got := cfg.SlogLevel().String(); got != want {
			t.Errorf("SlogLevel(%q) = %v, want %v", level, got, want)
		}
	}
}
