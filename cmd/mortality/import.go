package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/feLLpe04/Project3/internal/dataset"
	"github.com/feLLpe04/Project3/internal/logging"
	"github.com/feLLpe04/Project3/internal/store"
)

func newImportCmd(flags *flagValues) *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Load the dataset and replace the rows in the SQLite store",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, flags)
			if err != nil {
				return err
			}
			if cfg.DBPath == "" {
				return errors.New("import requires --db")
			}
			logger, err := newLogger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			ds, err := dataset.NewLoader(datasetConfig(cfg), logger).Load(cmd.Context())
			if err != nil {
				return err
			}

			client, err := store.Open(cfg.DBPath, logger)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer logging.SafeCloseWithLogging(client, logger, "store")

			if err := client.ImportRecords(cmd.Context(), ds.Records); err != nil {
				return err
			}
			n, err := client.Count(cmd.Context())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "imported %d records into %s\n", n, cfg.DBPath)
			return err
		},
	}
}
