package cliconfig

import (
	"strconv"
	"strings"
)

// Environment variable names
const (
	EnvConfig          = "BOOKSTORE_CONFIG"
	EnvHost            = "BOOKSTORE_HOST"
	EnvPort            = "BOOKSTORE_PORT"
	EnvMetricsPort     = "BOOKSTORE_METRICS_PORT"
	EnvReadTimeout     = "BOOKSTORE_READ_TIMEOUT"
	EnvWriteTimeout    = "BOOKSTORE_WRITE_TIMEOUT"
	EnvShutdownTimeout = "BOOKSTORE_SHUTDOWN_TIMEOUT"
	EnvLogLevel        = "BOOKSTORE_LOG_LEVEL"
	EnvLogFormat       = "BOOKSTORE_LOG_FORMAT"
	EnvSeed            = "BOOKSTORE_SEED"
)

// LoadEnvConfig loads configuration from environment variables.
// It only sets values that are present and parse cleanly.
func LoadEnvConfig(cfg *CLIConfig, getenv func(string) string) {
	if cfg.Sources == nil {
		cfg.Sources = make(map[string]string)
	}

	setString := func(env, key string, dst *string) {
		if v := getenv(env); v != "" {
			*dst = v
			cfg.Sources[key] = SourceEnv
		}
	}
	setInt := func(env, key string, dst *int) {
		if v := getenv(env); v != "" {
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				*dst = n
				cfg.Sources[key] = SourceEnv
			}
		}
	}

	setString(EnvHost, "host", &cfg.Host)
	setInt(EnvPort, "port", &cfg.Port)
	setInt(EnvMetricsPort, "metricsPort", &cfg.MetricsPort)
	setInt(EnvReadTimeout, "readTimeout", &cfg.ReadTimeout)
	setInt(EnvWriteTimeout, "writeTimeout", &cfg.WriteTimeout)
	setInt(EnvShutdownTimeout, "shutdownTimeout", &cfg.ShutdownTimeout)
	setString(EnvLogLevel, "logLevel", &cfg.LogLevel)
	setString(EnvLogFormat, "logFormat", &cfg.LogFormat)

	if v := getenv(EnvSeed); v != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			cfg.Seed = b
			cfg.Sources["seed"] = SourceEnv
		}
	}
}
