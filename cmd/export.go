package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/dockfinder-cli/internal/export"
	"github.com/KaramelBytes/dockfinder-cli/internal/grid"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export [source]",
	Short: "Write the visible table to a .csv or .xlsx file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if exportOutput == "" {
			return errors.New("--output is required")
		}
		if _, err := export.FormatFor(exportOutput); err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		res, err := loadSource(cmd.Context(), out, args)
		if err != nil {
			return err
		}
		st, err := viewState(res.Dataset, res.State)
		if err != nil {
			return err
		}
		f := grid.Build(res.Dataset, st).Frame()
		if err := export.WriteFile(exportOutput, f); err != nil {
			return err
		}
		fmt.Fprintf(out, "✓ Wrote %d rows to %s\n", len(f.Rows), exportOutput)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (.csv or .xlsx)")
	addViewFlags(exportCmd)
}
