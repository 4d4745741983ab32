package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tabledoc/internal/extract"
)

func generateCmd(root *rootOptions) *cobra.Command {
	flags := &outputFlags{}

	cmd := &cobra.Command{
		Use:   "generate <export.xml>",
		Short: "Generate documentation pages from an XML schema export",
		Long: `Generate reads a phpMyAdmin or mysqldump --xml export and writes one page
per table plus an index page.

Examples:
  tabledoc generate shop.xml
  tabledoc generate shop.xml --markdown --output docs
  tabledoc generate shop.xml --include users,orders --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			if _, err := os.Stat(input); err != nil {
				return fmt.Errorf("input file %s is not readable: %w", input, err)
			}

			cfg, err := root.loadConfig(cmd)
			if err != nil {
				return err
			}
			flags.apply(cmd, cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger := newLogger(cmd.ErrOrStderr(), cfg)
			opts, err := extractOptions(cfg, logger)
			if err != nil {
				return err
			}
			schema, _, err := extract.ExtractFile(input, opts)
			if err != nil {
				return err
			}
			return writeDocs(cmd, cfg, schema, input, logger)
		},
	}

	flags.register(cmd)
	return cmd
}
