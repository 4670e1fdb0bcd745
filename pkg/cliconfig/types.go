// Package cliconfig provides configuration types and loading for the bookstore CLI.
package cliconfig

import "fmt"

// CLIConfig represents the complete configuration for the bookstore server.
// Configuration values can come from multiple sources with the following precedence:
// 1. Command-line flags (highest priority)
// 2. Environment variables
// 3. Local config file (.bookstore.yaml in current directory)
// 4. Default values (lowest priority)
type CLIConfig struct {
	// Server settings
	Host            string `yaml:"host,omitempty" json:"host,omitempty"`
	Port            int    `yaml:"port" json:"port"`
	MetricsPort     int    `yaml:"metricsPort" json:"metricsPort"`
	ReadTimeout     int    `yaml:"readTimeout" json:"readTimeout"`
	WriteTimeout    int    `yaml:"writeTimeout" json:"writeTimeout"`
	ShutdownTimeout int    `yaml:"shutdownTimeout" json:"shutdownTimeout"`

	// Logging settings
	LogLevel  string `yaml:"logLevel" json:"logLevel"`
	LogFormat string `yaml:"logFormat" json:"logFormat"`

	// Seed loads the three starter books at startup.
	Seed bool `yaml:"seed" json:"seed"`

	// Sources tracks where each value came from (for debugging)
	Sources map[string]string `yaml:"-" json:"-"`

	// SetFields records which keys were present in a loaded file, so an
	// explicit false can be told apart from an omitted boolean.
	SetFields map[string]bool `yaml:"-" json:"-"`
}

// ConfigSource identifies where a config value originated.
const (
	SourceDefault = "default"
	SourceEnv     = "env"
	SourceLocal   = "local"
	SourceFile    = "file"
	SourceFlag    = "flag"
)

// maxTimeout bounds every timeout setting, in seconds.
const maxTimeout = 3600

// Validate checks that ports and timeouts are within range.
func (c *CLIConfig) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port %d is out of range (0-65535)", c.Port)
	}
	if c.MetricsPort < 0 || c.MetricsPort > 65535 {
		return fmt.Errorf("metricsPort %d is out of range (0-65535)", c.MetricsPort)
	}
	if c.MetricsPort != 0 && c.MetricsPort == c.Port {
		return fmt.Errorf("metricsPort %d must differ from port", c.MetricsPort)
	}
	if c.ReadTimeout < 0 || c.ReadTimeout > maxTimeout {
		return fmt.Errorf("readTimeout %d is out of range (0-%d)", c.ReadTimeout, maxTimeout)
	}
	if c.WriteTimeout < 0 || c.WriteTimeout > maxTimeout {
		return fmt.Errorf("writeTimeout %d is out of range (0-%d)", c.WriteTimeout, maxTimeout)
	}
	if c.ShutdownTimeout < 0 || c.ShutdownTimeout > maxTimeout {
		return fmt.Errorf("shutdownTimeout %d is out of range (0-%d)", c.ShutdownTimeout, maxTimeout)
	}
	return nil
}

// Addr returns the listen address of the book API.
func (c *CLIConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// MetricsAddr returns the listen address of the metrics endpoint, or ""
// when metrics are disabled.
func (c *CLIConfig) MetricsAddr() string {
	if c.MetricsPort == 0 {
		return ""
	}
	return fmt.Sprintf("%s:%d", c.Host, c.MetricsPort)
}
