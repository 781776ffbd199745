package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rupor-github/gencfg"

	"cssb/common"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfiguration_NoFile(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() with empty path error = %v", err)
	}
	if cfg == nil {
		t.Fatal("LoadConfiguration() returned nil config")
	}

	if cfg.Version != 1 {
		t.Errorf("Default config version = %d, want 1", cfg.Version)
	}
	if cfg.Output.Format != common.OutputFormatText {
		t.Errorf("Default output format = %v, want text", cfg.Output.Format)
	}
	if !cfg.Output.NaturalSort {
		t.Error("Default natural_sort should be true")
	}
	if cfg.Logging.ConsoleLogger.Level != "normal" {
		t.Errorf("Default console level = %q, want normal", cfg.Logging.ConsoleLogger.Level)
	}
	if cfg.Logging.FileLogger.Level != "none" {
		t.Errorf("Default file level = %q, want none", cfg.Logging.FileLogger.Level)
	}
	if cfg.Reporting.Destination == "" {
		t.Error("Default report destination should not be empty")
	}
}

func TestLoadConfiguration_WithFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := writeConfig(t, `version: 1
output:
  format: json
  natural_sort: false
logging:
  console:
    level: debug
  file:
    level: normal
    destination: `+filepath.Join(tmpDir, "logs", "cssb.log")+`
    mode: append
`)

	cfg, err := LoadConfiguration(configPath)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if cfg.Output.Format != common.OutputFormatJson {
		t.Errorf("Format = %v, want json", cfg.Output.Format)
	}
	if cfg.Output.NaturalSort {
		t.Error("Expected NaturalSort to be false")
	}
	if cfg.Logging.FileLogger.Mode != "append" {
		t.Errorf("Mode = %q, want append", cfg.Logging.FileLogger.Mode)
	}
	// values absent from the file come from defaults
	if cfg.Reporting.Destination == "" {
		t.Error("Reporting destination lost while merging with defaults")
	}
	if want := filepath.Join(tmpDir, "logs", "cssb.log"); cfg.Logging.FileLogger.Destination != want {
		t.Errorf("Destination = %q, want %q", cfg.Logging.FileLogger.Destination, want)
	}
}

func TestLoadConfiguration_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"invalid yaml", "version: 1\noutput:\n  format: text\n  invalid indent\n"},
		{"unknown field", "version: 1\nunknown_field: value\n"},
		{"bad version", "version: 2\n"},
		{"bad format", "version: 1\noutput:\n  format: xml\n"},
		{"bad console level", "version: 1\nlogging:\n  console:\n    level: chatty\n"},
		{"bad file mode", "version: 1\nlogging:\n  file:\n    level: debug\n    mode: rotate\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadConfiguration(writeConfig(t, tt.content)); err == nil {
				t.Error("LoadConfiguration() expected error")
			}
		})
	}
}

func TestLoadConfiguration_NonExistentFile(t *testing.T) {
	if _, err := LoadConfiguration("/nonexistent/config.yaml"); err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestLoadConfiguration_WithOptions(t *testing.T) {
	option := func(opts *gencfg.ProcessingOptions) {}

	cfg, err := LoadConfiguration("", option)
	if err != nil {
		t.Fatalf("LoadConfiguration() with options error = %v", err)
	}
	if cfg == nil {
		t.Fatal("LoadConfiguration() returned nil config")
	}
}

func TestPrepare(t *testing.T) {
	data, err := Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if len(data) == 0 {
		t.Fatal("Prepare() returned empty data")
	}

	if _, err = unmarshalConfig(data, &Config{}, true); err != nil {
		t.Errorf("Prepared config is not valid: %v", err)
	}
}

func TestDump(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	cfg.Output.Format = common.OutputFormatTree

	data, err := Dump(cfg)
	if err != nil {
		t.Fatalf("Dump() error = %v", err)
	}
	if !strings.Contains(string(data), "format: tree") {
		t.Errorf("Dump() output does not contain format:\n%s", data)
	}

	cfg2, err := unmarshalConfig(data, &Config{}, false)
	if err != nil {
		t.Fatalf("Dumped config cannot be loaded: %v", err)
	}
	if cfg2.Output != cfg.Output {
		t.Errorf("Output mismatch after dump/load: got %+v, want %+v", cfg2.Output, cfg.Output)
	}
}

func TestUnmarshalConfig_WrapsValidationError(t *testing.T) {
	_, err := unmarshalConfig([]byte("version: 99\n"), &Config{}, true)
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}
	if !strings.Contains(err.Error(), "validation") {
		t.Errorf("expected error to mention validation, got: %v", err)
	}
	if errors.Unwrap(err) == nil {
		t.Errorf("expected wrapped error, got bare error: %v", err)
	}
}
