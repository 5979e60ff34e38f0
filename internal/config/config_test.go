package config

import (
	"strings"
	"testing"
)

func TestLoadConfigurationFromReader(t *testing.T) {
	yaml := `
logging:
  level: debug
  format: console
output:
  format: csv
analysis:
  timeframeMonths: 12
`
	conf, err := LoadConfigurationFromReader(strings.NewReader(yaml))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader() error = %v", err)
	}

	if conf.Logging.Level != "debug" || conf.Logging.Format != "console" {
		t.Errorf("Logging = %+v, expected debug/console", conf.Logging)
	}
	if conf.Output.Format != "csv" {
		t.Errorf("Output.Format = %q, expected csv", conf.Output.Format)
	}
	if conf.Analysis.TimeframeMonths != 12 {
		t.Errorf("TimeframeMonths = %d, expected 12", conf.Analysis.TimeframeMonths)
	}
	// Unset fields fall back to defaults.
	if conf.Analysis.ProjectionMonths != 12 {
		t.Errorf("ProjectionMonths = %d, expected default 12", conf.Analysis.ProjectionMonths)
	}
}

func TestLoadConfigurationDefaults(t *testing.T) {
	conf, err := LoadConfigurationFromReader(strings.NewReader("logging:\n  level: info\n"))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader() error = %v", err)
	}
	if conf.Analysis.TimeframeMonths != 6 {
		t.Errorf("TimeframeMonths = %d, expected default 6", conf.Analysis.TimeframeMonths)
	}
}

func TestBuildLogger(t *testing.T) {
	tests := []struct {
		name    string
		config  LoggingConfig
		level   string
		wantErr bool
	}{
		{name: "Defaults", config: LoggingConfig{}},
		{name: "Console format", config: LoggingConfig{Level: "debug", Format: "console"}},
		{name: "Override level", config: LoggingConfig{Level: "info"}, level: "warn"},
		{name: "Invalid level", config: LoggingConfig{Level: "loud"}, wantErr: true},
		{name: "Invalid format", config: LoggingConfig{Format: "xml"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := BuildLogger(tt.config, tt.level)
			if tt.wantErr {
				if err == nil {
					t.Error("BuildLogger() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("BuildLogger() error = %v", err)
			}
			if logger == nil {
				t.Error("BuildLogger() returned nil logger")
			}
		})
	}
}
