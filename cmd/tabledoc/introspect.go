package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"tabledoc/internal/extract"
	"tabledoc/internal/introspect/mysql"
)

func introspectCmd(root *rootOptions) *cobra.Command {
	flags := &outputFlags{}
	var dsn string
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "introspect",
		Short: "Generate documentation pages from a live MySQL database",
		Long: `Introspect connects to a MySQL, MariaDB or TiDB server and documents the
tables of the database selected by the DSN.

The DSN is taken from --dsn, the config file, the TABLEDOC_MYSQL_DSN variable
(also read from a .env file in the working directory) or the mysql host,
user and database settings of the config file, in that order.

Examples:
  tabledoc introspect --dsn "user:pass@tcp(localhost:3306)/shop"
  tabledoc introspect -c tabledoc.toml --markdown`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()

			cfg, err := root.loadConfig(cmd)
			if err != nil {
				return err
			}
			flags.apply(cmd, cfg)
			if cmd.Flags().Changed("dsn") {
				cfg.MySQL.DSN = dsn
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			resolved, err := cfg.MySQL.ResolveDSN()
			if err != nil {
				return err
			}

			logger := newLogger(cmd.ErrOrStderr(), cfg)
			opts, err := extractOptions(cfg, logger)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			db, err := mysql.Connect(ctx, resolved)
			if err != nil {
				return err
			}
			defer db.Close()

			src, err := mysql.NewSource(ctx, db)
			if err != nil {
				return err
			}
			logger.Verbose("connected to %s, database %s with %d table(s)", src.Server(), src.Database(), src.Len())

			e := extract.NewExtractor(opts)
			schema := e.Extract(src)
			logger.Verbose("%s: %s", src.Database(), e.Stats())

			return writeDocs(cmd, cfg, schema, src.Database(), logger)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&dsn, "dsn", "", "MySQL DSN, e.g. user:pass@tcp(localhost:3306)/shop")
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "Timeout for reading the database")
	return cmd
}
