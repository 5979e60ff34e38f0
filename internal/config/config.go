// Package config defines the application configuration and includes
// functions for loading and parsing it.
package config

import (
	"fmt"
	"io"

	"github.com/spf13/viper"

	"github.com/okonta/poultry-breakeven/pkg/constants"
)

// Configuration holds all configuration for the break-even application.
type Configuration struct {
	Logging  LoggingConfig  `yaml:"logging,omitempty"`
	Output   OutputConfig   `yaml:"output,omitempty"`
	Analysis AnalysisConfig `yaml:"analysis,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// AnalysisConfig holds defaults for the break-even analysis itself.
type AnalysisConfig struct {
	TimeframeMonths  int `yaml:"timeframeMonths,omitempty"`
	ProjectionMonths int `yaml:"projectionMonths,omitempty"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()

	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	if err := viper.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	configuration.applyDefaults()
	return &configuration, nil
}

// LoadConfigurationFromReader loads YAML configuration from an arbitrary
// reader, used by tests and request-supplied configs.
func LoadConfigurationFromReader(reader io.Reader) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yml")
	if err := v.ReadConfig(reader); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	configuration.applyDefaults()
	return &configuration, nil
}

func (c *Configuration) applyDefaults() {
	if c.Analysis.TimeframeMonths == 0 {
		c.Analysis.TimeframeMonths = constants.DefaultTimeframeMonths
	}
	if c.Analysis.ProjectionMonths == 0 {
		c.Analysis.ProjectionMonths = constants.DefaultProjectionMonths
	}
}
