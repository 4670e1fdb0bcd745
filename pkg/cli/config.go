package cli

import (
	"fmt"
	"slices"

	"github.com/getmockd/bookstore/pkg/cli/internal/output"
	"github.com/getmockd/bookstore/pkg/cliconfig"
	"github.com/spf13/cobra"
)

// ConfigOutput is the JSON form of 'bookstore config'.
type ConfigOutput struct {
	Config  *cliconfig.CLIConfig `json:"config"`
	Sources map[string]string    `json:"sources"`
}

func newConfigCmd() *cobra.Command {
	f := &serveFlags{}
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show effective configuration",
		Long: `Show the configuration 'bookstore serve' would run with, given the same
flags, and where each value came from (default, local, file, env, flag).`,
		Example: `  bookstore config
  bookstore config --port 8080 --json
  BOOKSTORE_LOG_LEVEL=debug bookstore config`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, f)
			if err != nil {
				return err
			}

			printWarnings(cmd.ErrOrStderr(), cfg)

			w := cmd.OutOrStdout()
			if jsonOutput {
				return output.JSON(w, ConfigOutput{Config: cfg, Sources: cfg.Sources})
			}

			fmt.Fprintln(w, "# Effective configuration")
			if err := output.YAML(w, cfg); err != nil {
				return err
			}

			fmt.Fprintln(w)
			fmt.Fprintln(w, "# Sources")
			tw := output.Table(w)
			keys := make([]string, 0, len(cfg.Sources))
			for k := range cfg.Sources {
				keys = append(keys, k)
			}
			slices.Sort(keys)
			for _, k := range keys {
				fmt.Fprintf(tw, "# %s\t%s\n", k, cfg.Sources[k])
			}
			return tw.Flush()
		},
	}
	addServeFlags(cmd, f)
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (default: YAML)")
	return cmd
}
