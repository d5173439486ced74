package monitcontrol

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/core-tools/hsu-monit-go/pkg/cmdrunner"
	"github.com/core-tools/hsu-monit-go/pkg/errors"
	"github.com/core-tools/hsu-monit-go/pkg/logging/zaplog"
	"github.com/core-tools/hsu-monit-go/pkg/monit"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level configuration file structure
type Config struct {
	Monit    MonitConfig  `yaml:"monit"`
	Runner   RunnerConfig `yaml:"runner"`
	LogLevel string       `yaml:"log_level,omitempty"`
}

type MonitConfig struct {
	Binary string `yaml:"binary,omitempty"` // Executable name or path, defaults to "monit"
}

// RunnerConfig controls how monit commands are executed
type RunnerConfig struct {
	Timeout          time.Duration `yaml:"timeout,omitempty"` // Zero disables the timeout
	WorkingDirectory string        `yaml:"working_directory,omitempty"`
	Environment      []string      `yaml:"environment,omitempty"`
}

func DefaultConfig() *Config {
	config := &Config{}
	setConfigDefaults(config)
	return config
}

// LoadConfigFromFile loads configuration from a YAML file; an empty filename yields defaults
func LoadConfigFromFile(filename string) (*Config, error) {
	if filename == "" {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.NewIOError("failed to read configuration file", err).WithContext("filename", filename)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, errors.NewValidationError("failed to parse YAML configuration", err).WithContext("filename", filename)
	}

	setConfigDefaults(&config)

	return &config, nil
}

// ValidateConfig validates the entire configuration structure
func ValidateConfig(config *Config) error {
	if config == nil {
		return errors.NewValidationError("configuration cannot be nil", nil)
	}

	binary := config.Monit.Binary
	if binary == "" {
		return errors.NewValidationError("monit binary cannot be empty", nil)
	}
	if strings.ContainsAny(binary, " \t\n") {
		return errors.NewValidationError("monit binary cannot contain whitespace", nil).WithContext("binary", binary)
	}

	if config.Runner.Timeout < 0 {
		return errors.NewValidationError("runner timeout cannot be negative", nil).
			WithContext("timeout", config.Runner.Timeout.String())
	}

	for i, entry := range config.Runner.Environment {
		if !strings.Contains(entry, "=") || strings.HasPrefix(entry, "=") {
			return errors.NewValidationError("environment entry must have KEY=VALUE form", nil).
				WithContext("entry", entry).WithContext("index", fmt.Sprintf("%d", i))
		}
	}

	if _, err := zaplog.ParseLevel(config.LogLevel); err != nil {
		return errors.NewValidationError("invalid log level", err).WithContext("log_level", config.LogLevel)
	}

	return nil
}

// ValidateConfigFile validates a configuration file without running anything
func ValidateConfigFile(filename string) error {
	config, err := LoadConfigFromFile(filename)
	if err != nil {
		return errors.NewIOError("failed to load configuration", err).WithContext("config_file", filename)
	}

	if err := ValidateConfig(config); err != nil {
		return errors.NewValidationError("configuration validation failed", err).WithContext("config_file", filename)
	}

	return nil
}

func (c *Config) RunnerOptions() cmdrunner.Options {
	return cmdrunner.Options{
		Timeout:          c.Runner.Timeout,
		WorkingDirectory: c.Runner.WorkingDirectory,
		Environment:      c.Runner.Environment,
	}
}

func (c *Config) ProxyOptions(metrics *monit.Metrics) monit.Options {
	return monit.Options{
		Binary:  c.Monit.Binary,
		Metrics: metrics,
	}
}

func setConfigDefaults(config *Config) {
	if config.Monit.Binary == "" {
		config.Monit.Binary = monit.DefaultBinary
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
}
