package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tabledoc/internal/config"
	"tabledoc/internal/core"
	"tabledoc/internal/extract"
	"tabledoc/internal/logging"
	"tabledoc/internal/output"
	parser "tabledoc/internal/parser/mysql"
)

// outputFlags are shared by every command that writes documentation.
type outputFlags struct {
	output   string
	format   string
	markdown bool
	include  string
	exclude  string
	mode     string
	noIndex  bool
}

func (f *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Output directory (default: ./<input name>)")
	cmd.Flags().StringVarP(&f.format, "format", "f", "", "Output format: html, markdown or json")
	cmd.Flags().BoolVar(&f.markdown, "markdown", false, "Shorthand for --format markdown")
	cmd.Flags().StringVar(&f.include, "include", "", "Comma separated tables to document; disables the index page")
	cmd.Flags().StringVar(&f.exclude, "exclude", "", "Comma separated tables to skip")
	cmd.Flags().StringVar(&f.mode, "mode", "", "CREATE TABLE parse mode: pattern or ast")
	cmd.Flags().BoolVar(&f.noIndex, "no-index", false, "Do not write the index page")
}

// apply overrides config values with the flags that were set explicitly.
func (f *outputFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Output = f.output
	}
	if flags.Changed("format") {
		cfg.Format = f.format
	}
	if flags.Changed("markdown") && f.markdown {
		cfg.Format = string(output.FormatMarkdown)
	}
	if flags.Changed("include") {
		cfg.Include = config.SplitList(f.include)
	}
	if flags.Changed("exclude") {
		cfg.Exclude = config.SplitList(f.exclude)
	}
	if flags.Changed("mode") {
		cfg.Mode = f.mode
	}
	if flags.Changed("no-index") {
		cfg.NoIndex = f.noIndex
	}
}

func extractOptions(cfg *config.Config, logger logging.Logger) (extract.Options, error) {
	mode, err := parser.ParseMode(cfg.Mode)
	if err != nil {
		return extract.Options{}, err
	}
	return extract.Options{
		Include: cfg.Include,
		Exclude: cfg.Exclude,
		Mode:    mode,
		Logger:  logger,
	}, nil
}

// writeDocs renders schema into the output directory derived from name and
// reports what was written. The index page is left out when an include list
// narrows the run.
func writeDocs(cmd *cobra.Command, cfg *config.Config, schema *core.Schema, name string, logger logging.Logger) error {
	formatter, err := output.NewFormatter(cfg.Format)
	if err != nil {
		return err
	}

	base, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}
	dir, err := output.ResolveOutputDir(name, cfg.Output, base)
	if err != nil {
		return err
	}

	if schema.Len() == 0 {
		logger.Warn("no tables to document")
	}

	withIndex := !cfg.NoIndex && len(cfg.Include) == 0
	written, err := output.NewWriter(dir, formatter, logger).Write(schema, withIndex)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Documentation generated.")
	fmt.Fprintf(out, "Output directory: %s\n", dir)
	fmt.Fprintf(out, "Files written: %d\n", len(written))
	return nil
}
