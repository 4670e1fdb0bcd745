package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// NewRootCommand builds the bookstore command tree. Running it without a
// subcommand serves the book API.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "bookstore",
		Short: "bookstore serves an in-memory books API over HTTP",
		Long: `bookstore serves a small REST API for book records held in memory.

Configuration can be provided via flags, environment variables, or a configuration file.
By default, bookstore looks for a configuration file at ./.bookstore.yaml.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true, // We handle errors in Execute()
	}

	// The bare command behaves like 'bookstore serve'.
	f := &serveFlags{}
	addServeFlags(root, f)
	root.RunE = func(cmd *cobra.Command, args []string) error {
		return runServe(cmd, f)
	}

	root.AddCommand(newServeCmd(), newConfigCmd(), newVersionCmd())
	return root
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
