package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/feLLpe04/Project3/internal/aggregate"
	"github.com/feLLpe04/Project3/internal/dataset"
	"github.com/feLLpe04/Project3/internal/models"
	"github.com/feLLpe04/Project3/internal/mortality"
)

func newTotalsCmd(flags *flagValues) *cobra.Command {
	var selection mortality.Selection

	cmd := &cobra.Command{
		Use:   "totals",
		Short: "Print the per-sex totals and chart data for one selection as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, flags)
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			ds, err := dataset.NewLoader(datasetConfig(cfg), logger).Load(cmd.Context())
			if err != nil {
				return err
			}

			sel := selection
			if sel.Year == "" {
				if def, ok := ds.Dimensions.DefaultSelection(); ok {
					sel.Year = def.Year
				}
			}

			entry := models.NewTotalsEntry(sel, aggregate.Summarize(ds.Records, sel))
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(entry)
		},
	}

	cmd.Flags().StringVar(&selection.Year, "year", "", "Year to select (default: first year in the dataset)")
	cmd.Flags().StringVar(&selection.Cause, "cause", mortality.AllCauses, "Cause to select")
	return cmd
}
