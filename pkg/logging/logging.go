package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Level is the minimum severity the bookstore logs at.
type Level = slog.Level

// Levels accepted by --log-level and BOOKSTORE_LOG_LEVEL.
const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// Format selects the slog handler.
type Format string

// Formats accepted by --log-format and BOOKSTORE_LOG_FORMAT.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Config is the resolved logging section of the server configuration.
type Config struct {
	// Level filters records. Per-request access logs are emitted at debug.
	Level Level

	// Format is text for terminals, json for log shippers.
	Format Format

	// Output receives the records. The serve command passes its stderr.
	Output io.Writer

	// AddSource annotates records with file:line.
	AddSource bool
}

// DefaultConfig matches the server defaults: info, text, stderr.
func DefaultConfig() Config {
	return Config{
		Level:  LevelInfo,
		Format: FormatText,
		Output: os.Stderr,
	}
}

// New builds the server logger.
func New(cfg Config) *slog.Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}

	opts := &slog.HandlerOptions{
		Level:     cfg.Level,
		AddSource: cfg.AddSource,
	}

	var handler slog.Handler
	if cfg.Format == FormatJSON {
		handler = slog.NewJSONHandler(cfg.Output, opts)
	} else {
		handler = slog.NewTextHandler(cfg.Output, opts)
	}
	return slog.New(handler)
}

// Nop is the logger a Server uses until SetLogger is called.
func Nop() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// LookupLevel resolves a configured level name, ignoring case.
// "warning" is accepted as an alias of "warn".
func LookupLevel(s string) (Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, true
	case "info":
		return LevelInfo, true
	case "warn", "warning":
		return LevelWarn, true
	case "error":
		return LevelError, true
	}
	return LevelInfo, false
}

// ParseLevel is LookupLevel falling back to info.
func ParseLevel(s string) Level {
	level, _ := LookupLevel(s)
	return level
}

// LookupFormat resolves a configured format name, ignoring case.
func LookupFormat(s string) (Format, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(FormatText):
		return FormatText, true
	case string(FormatJSON):
		return FormatJSON, true
	}
	return FormatText, false
}

// ParseFormat is LookupFormat falling back to text.
func ParseFormat(s string) Format {
	format, _ := LookupFormat(s)
	return format
}
