// Package cli provides the command-line interface for the bookstore server.
//
// Commands:
//   - serve: Run the book API in the foreground (default when no command is given)
//   - config: Display effective configuration and where each value came from
//   - version: Show build information
//
// Configuration precedence, highest first: flags, BOOKSTORE_* environment
// variables, a config file (--config, BOOKSTORE_CONFIG or ./.bookstore.yaml),
// built-in defaults.
//
// Usage:
//
//	bookstore
//	bookstore serve --port 8080 --log-level debug
//	bookstore serve --metrics-port 9090
//	bookstore config --json
//	bookstore version
package cli
