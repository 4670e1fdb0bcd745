// Package logging provides structured logging configuration for bookstore.
//
// This package wraps log/slog so every component logs the same way.
//
// # Usage
//
//	logger := logging.New(logging.Config{
//	    Level:  logging.LevelInfo,
//	    Format: logging.FormatJSON,
//	})
//
//	logger.Info("listening", "addr", ":3000")
//	logger.Error("handler panic", "error", err, "requestId", id)
//
// # Integration
//
// Components accept a *slog.Logger in their constructor or via a setter.
// If no logger is provided they use logging.Nop().
package logging
