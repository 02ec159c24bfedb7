package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"statref/internal"
	"statref/internal/errors"
)

// Output formats for CLI results
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// Config represents the complete application configuration
type Config struct {
	Defaults DefaultsConfig
	Output   OutputConfig
	Engine   EngineConfig
	LogLevel internal.LogLevel
}

// DefaultsConfig holds the significance and confidence used when a
// command does not name its own
type DefaultsConfig struct {
	Alpha      float64
	Confidence float64
}

// OutputConfig holds presentation settings
type OutputConfig struct {
	Format    string
	Precision int
}

// EngineConfig holds batch evaluation settings
type EngineConfig struct {
	Parallelism int
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	env := &envReader{}
	config := &Config{
		Defaults: DefaultsConfig{
			Alpha:      env.float("STATREF_ALPHA", 0.05),
			Confidence: env.float("STATREF_CONFIDENCE", 0.95),
		},
		Output: OutputConfig{
			Format:    strings.ToLower(getEnvOrDefault("STATREF_OUTPUT", OutputText)),
			Precision: env.int("STATREF_PRECISION", 4),
		},
		Engine: EngineConfig{
			Parallelism: env.int("STATREF_PARALLELISM", 4),
		},
	}
	if env.err != nil {
		return nil, env.err
	}

	level := getEnvOrDefault("LOG_LEVEL", "INFO")
	parsed, ok := internal.ParseLogLevel(level)
	if !ok {
		return nil, errors.ConfigInvalid(fmt.Sprintf("LOG_LEVEL %q is not one of ERROR, WARN, INFO, DEBUG, TRACE", level))
	}
	config.LogLevel = parsed

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if !(config.Defaults.Alpha > 0 && config.Defaults.Alpha < 1) {
		return errors.ConfigInvalid(fmt.Sprintf("STATREF_ALPHA=%v must be in (0, 1)", config.Defaults.Alpha))
	}
	if !(config.Defaults.Confidence > 0 && config.Defaults.Confidence < 1) {
		return errors.ConfigInvalid(fmt.Sprintf("STATREF_CONFIDENCE=%v must be in (0, 1)", config.Defaults.Confidence))
	}
	switch config.Output.Format {
	case OutputText, OutputJSON, OutputYAML:
	default:
		return errors.ConfigInvalid(fmt.Sprintf("STATREF_OUTPUT=%q must be text, json or yaml", config.Output.Format))
	}
	if config.Output.Precision < 0 || config.Output.Precision > 15 {
		return errors.ConfigInvalid(fmt.Sprintf("STATREF_PRECISION=%d must be in [0, 15]", config.Output.Precision))
	}
	if config.Engine.Parallelism < 1 {
		return errors.ConfigInvalid(fmt.Sprintf("STATREF_PARALLELISM=%d must be >= 1", config.Engine.Parallelism))
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// envReader parses numeric variables, keeping the first malformed one
type envReader struct {
	err error
}

func (r *envReader) int(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" || r.err != nil {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		r.err = errors.ConfigInvalid(fmt.Sprintf("%s=%q is not an integer", key, value))
		return defaultValue
	}
	return intValue
}

func (r *envReader) float(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" || r.err != nil {
		return defaultValue
	}
	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		r.err = errors.ConfigInvalid(fmt.Sprintf("%s=%q is not a number", key, value))
		return defaultValue
	}
	return floatValue
}
