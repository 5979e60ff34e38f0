package server

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseSize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int64
		wantErr  bool
	}{
		{name: "Plain bytes", input: "1024", expected: 1024},
		{name: "Kilobytes", input: "256K", expected: 256 * 1024},
		{name: "Kilobytes long unit", input: "256KB", expected: 256 * 1024},
		{name: "Megabytes", input: "10M", expected: 10 * 1024 * 1024},
		{name: "Gigabytes", input: "1G", expected: 1024 * 1024 * 1024},
		{name: "Lowercase unit", input: "2m", expected: 2 * 1024 * 1024},
		{name: "Whitespace tolerated", input: " 5M ", expected: 5 * 1024 * 1024},
		{name: "Invalid unit", input: "5X", wantErr: true},
		{name: "No digits", input: "MB", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			size, err := ParseSize(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseSize(%q) expected error but got none", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSize(%q) error = %v", tt.input, err)
			}
			if size != tt.expected {
				t.Errorf("ParseSize(%q) = %d, expected %d", tt.input, size, tt.expected)
			}
		})
	}
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Address != ":8080" {
		t.Errorf("Address = %q, expected default :8080", cfg.Address)
	}
	if cfg.BodySizeBytes() != 1024*1024 {
		t.Errorf("BodySizeBytes() = %d, expected default 1 MB", cfg.BodySizeBytes())
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server-config.yaml")
	content := "address: \":9090\"\nmaxBodySize: 256K\nlogging:\n  level: debug\n  format: console\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Address != ":9090" {
		t.Errorf("Address = %q, expected :9090", cfg.Address)
	}
	if cfg.BodySizeBytes() != 256*1024 {
		t.Errorf("BodySizeBytes() = %d, expected 256K", cfg.BodySizeBytes())
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "console" {
		t.Errorf("Logging = %+v, expected debug/console", cfg.Logging)
	}
}
