package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tabledoc/internal/extract"
	"tabledoc/internal/output"
)

func inspectCmd(root *rootOptions) *cobra.Command {
	var include, exclude, mode string

	cmd := &cobra.Command{
		Use:   "inspect <export.xml>",
		Short: "Parse an export and print a summary of its tables",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig(cmd)
			if err != nil {
				return err
			}
			flags := &outputFlags{include: include, exclude: exclude, mode: mode}
			flags.apply(cmd, cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger := newLogger(cmd.ErrOrStderr(), cfg)
			opts, err := extractOptions(cfg, logger)
			if err != nil {
				return err
			}
			schema, stats, err := extract.ExtractFile(args[0], opts)
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), output.FormatSummary(schema))
			logger.Info("%s", stats)
			return nil
		},
	}

	cmd.Flags().StringVar(&include, "include", "", "Comma separated tables to inspect")
	cmd.Flags().StringVar(&exclude, "exclude", "", "Comma separated tables to skip")
	cmd.Flags().StringVar(&mode, "mode", "", "CREATE TABLE parse mode: pattern or ast")
	return cmd
}
