package cliconfig

// DefaultPort is the default HTTP port for the book API.
const DefaultPort = 3000

// DefaultMetricsPort is the default metrics port (0 = disabled).
const DefaultMetricsPort = 0

// DefaultReadTimeout is the default read timeout in seconds.
const DefaultReadTimeout = 30

// DefaultWriteTimeout is the default write timeout in seconds.
const DefaultWriteTimeout = 30

// DefaultShutdownTimeout is the default graceful shutdown timeout in seconds.
const DefaultShutdownTimeout = 5

// DefaultLogLevel is the default log level.
const DefaultLogLevel = "info"

// DefaultLogFormat is the default log format.
const DefaultLogFormat = "text"

// NewDefault creates a new CLIConfig with default values.
func NewDefault() *CLIConfig {
	cfg := &CLIConfig{
		Port:            DefaultPort,
		MetricsPort:     DefaultMetricsPort,
		ReadTimeout:     DefaultReadTimeout,
		WriteTimeout:    DefaultWriteTimeout,
		ShutdownTimeout: DefaultShutdownTimeout,
		LogLevel:        DefaultLogLevel,
		LogFormat:       DefaultLogFormat,
		Seed:            true,
		Sources:         make(map[string]string),
	}
	for _, key := range []string{
		"host", "port", "metricsPort", "readTimeout", "writeTimeout",
		"shutdownTimeout", "logLevel", "logFormat", "seed",
	} {
		cfg.Sources[key] = SourceDefault
	}
	return cfg
}
