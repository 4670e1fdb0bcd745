package cli

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getmockd/bookstore/pkg/api"
	"github.com/getmockd/bookstore/pkg/books"
	"github.com/getmockd/bookstore/pkg/cli/internal/output"
	"github.com/getmockd/bookstore/pkg/cliconfig"
	"github.com/getmockd/bookstore/pkg/logging"
	"github.com/getmockd/bookstore/pkg/metrics"
	"github.com/spf13/cobra"
)

// serveFlags holds the values bound to the serve flags.
type serveFlags struct {
	configFile      string
	host            string
	port            int
	metricsPort     int
	readTimeout     int
	writeTimeout    int
	shutdownTimeout int
	logLevel        string
	logFormat       string
	seed            bool
}

func newServeCmd() *cobra.Command {
	f := &serveFlags{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the book API server (foreground)",
		Long: `Start the book API server in the foreground.

The server keeps every book in memory. Stopping it discards all changes.
Send SIGINT or SIGTERM to shut down gracefully.`,
		Example: `  # Start with defaults on port 3000
  bookstore serve

  # Start on a custom port with JSON logs
  bookstore serve --port 8080 --log-format json

  # Start empty, with Prometheus metrics on port 9090
  bookstore serve --seed=false --metrics-port 9090`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, f)
		},
	}
	addServeFlags(cmd, f)
	return cmd
}

func addServeFlags(cmd *cobra.Command, f *serveFlags) {
	fs := cmd.Flags()
	fs.StringVarP(&f.configFile, "config", "c", "", "Path to config file (default: ./.bookstore.yaml)")
	fs.StringVar(&f.host, "host", "", "Interface to listen on (default: all)")
	fs.IntVarP(&f.port, "port", "p", cliconfig.DefaultPort, "HTTP server port")
	fs.IntVar(&f.metricsPort, "metrics-port", cliconfig.DefaultMetricsPort, "Prometheus metrics port (0 = disabled)")
	fs.IntVar(&f.readTimeout, "read-timeout", cliconfig.DefaultReadTimeout, "Read timeout in seconds")
	fs.IntVar(&f.writeTimeout, "write-timeout", cliconfig.DefaultWriteTimeout, "Write timeout in seconds")
	fs.IntVar(&f.shutdownTimeout, "shutdown-timeout", cliconfig.DefaultShutdownTimeout, "Graceful shutdown timeout in seconds (0 = wait indefinitely)")
	fs.StringVar(&f.logLevel, "log-level", cliconfig.DefaultLogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&f.logFormat, "log-format", cliconfig.DefaultLogFormat, "Log format (text, json)")
	fs.BoolVar(&f.seed, "seed", true, "Load the starter books at startup")
}

// resolveConfig layers explicitly set flags over file, environment and defaults.
func resolveConfig(cmd *cobra.Command, f *serveFlags) (*cliconfig.CLIConfig, error) {
	cfg, err := cliconfig.LoadAll(cliconfig.LoadOptions{ConfigFile: f.configFile})
	if err != nil {
		return nil, err
	}

	changed := cmd.Flags().Changed
	setString := func(flag, key string, dst *string, v string) {
		if changed(flag) {
			*dst = v
			cfg.Sources[key] = cliconfig.SourceFlag
		}
	}
	setInt := func(flag, key string, dst *int, v int) {
		if changed(flag) {
			*dst = v
			cfg.Sources[key] = cliconfig.SourceFlag
		}
	}

	setString("host", "host", &cfg.Host, f.host)
	setInt("port", "port", &cfg.Port, f.port)
	setInt("metrics-port", "metricsPort", &cfg.MetricsPort, f.metricsPort)
	setInt("read-timeout", "readTimeout", &cfg.ReadTimeout, f.readTimeout)
	setInt("write-timeout", "writeTimeout", &cfg.WriteTimeout, f.writeTimeout)
	setInt("shutdown-timeout", "shutdownTimeout", &cfg.ShutdownTimeout, f.shutdownTimeout)
	setString("log-level", "logLevel", &cfg.LogLevel, f.logLevel)
	setString("log-format", "logFormat", &cfg.LogFormat, f.logFormat)
	if changed("seed") {
		cfg.Seed = f.seed
		cfg.Sources["seed"] = cliconfig.SourceFlag
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func runServe(cmd *cobra.Command, f *serveFlags) error {
	cfg, err := resolveConfig(cmd, f)
	if err != nil {
		return err
	}
	printWarnings(cmd.ErrOrStderr(), cfg)

	log := logging.New(logging.Config{
		Level:  logging.ParseLevel(cfg.LogLevel),
		Format: logging.ParseFormat(cfg.LogFormat),
		Output: cmd.ErrOrStderr(),
	})

	var m *metrics.Metrics
	var opts []books.Option
	if cfg.MetricsPort != 0 {
		m = metrics.New()
		opts = append(opts, books.WithObserver(m))
	}
	if cfg.Seed {
		opts = append(opts, books.WithSeed(books.DefaultSeed()))
	}
	store := books.NewStore(opts...)

	srv := api.NewServer(store, api.Config{
		Addr:         cfg.Addr(),
		MetricsAddr:  cfg.MetricsAddr(),
		ReadTimeout:  seconds(cfg.ReadTimeout),
		WriteTimeout: seconds(cfg.WriteTimeout),
	})
	srv.SetLogger(log)
	if m != nil {
		srv.SetMetrics(m)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Start(); err != nil {
		return fmt.Errorf("starting server: %w", err)
	}

	out := cmd.OutOrStdout()
	printStartupMessage(out, srv.Addr(), srv.MetricsAddr())

	<-ctx.Done()
	fmt.Fprintln(out, "\nShutting down...")

	shutdownCtx := context.Background()
	if cfg.ShutdownTimeout > 0 {
		var cancel context.CancelFunc
		shutdownCtx, cancel = context.WithTimeout(shutdownCtx, seconds(cfg.ShutdownTimeout))
		defer cancel()
	}
	if err := srv.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	log.Info("server stopped")
	return nil
}

// configWarnings lists settings that are accepted but fall back to a default.
func configWarnings(cfg *cliconfig.CLIConfig) []string {
	var warnings []string
	if _, ok := logging.LookupLevel(cfg.LogLevel); !ok {
		warnings = append(warnings, fmt.Sprintf("unknown log level %q (from %s), using info", cfg.LogLevel, cfg.Sources["logLevel"]))
	}
	if _, ok := logging.LookupFormat(cfg.LogFormat); !ok {
		warnings = append(warnings, fmt.Sprintf("unknown log format %q (from %s), using text", cfg.LogFormat, cfg.Sources["logFormat"]))
	}
	return warnings
}

func printWarnings(w io.Writer, cfg *cliconfig.CLIConfig) {
	for _, msg := range configWarnings(cfg) {
		output.Warn(w, "%s", msg)
	}
}

// printStartupMessage prints the listen address and the endpoint summary.
func printStartupMessage(w io.Writer, addr, metricsAddr string) {
	fmt.Fprintf(w, "Books API server is running on http://localhost:%s\n", portOf(addr))
	if metricsAddr != "" {
		fmt.Fprintf(w, "Metrics available on http://localhost:%s/metrics\n", portOf(metricsAddr))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Available endpoints:")
	fmt.Fprintln(w, "GET    /books     - Get all books")
	fmt.Fprintln(w, "GET    /books/:id - Get book by ID")
	fmt.Fprintln(w, "POST   /books     - Create new book")
	fmt.Fprintln(w, "PUT    /books/:id - Update book completely")
	fmt.Fprintln(w, "PATCH  /books/:id - Update book partially")
	fmt.Fprintln(w, "DELETE /books/:id - Delete book")
}

func portOf(addr string) string {
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return port
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}
