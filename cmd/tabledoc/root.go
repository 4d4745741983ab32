package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"tabledoc/internal/config"
	"tabledoc/internal/logging"
)

type rootOptions struct {
	configPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "tabledoc",
		Short: "Generate table documentation from MySQL schema exports",
		Long: `tabledoc turns a phpMyAdmin or mysqldump XML export, or a live MySQL
database, into one documentation page per table plus an index page.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Config file (.toml, .yaml or .yml)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log skipped tables, clauses and written files")

	rootCmd.AddCommand(generateCmd(opts))
	rootCmd.AddCommand(inspectCmd(opts))
	rootCmd.AddCommand(introspectCmd(opts))

	return rootCmd
}

// loadConfig reads the config file when one was given, otherwise the
// defaults, and applies the root flags on top.
func (o *rootOptions) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		loaded, err := config.Load(o.configPath)
		if err != nil {
			if config.IsNotFound(err) {
				return nil, fmt.Errorf("config file %s does not exist", o.configPath)
			}
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = o.verbose
	}
	return cfg, nil
}

func newLogger(w io.Writer, cfg *config.Config) logging.Logger {
	return logging.NewWriterLogger(w, cfg.Verbose)
}
