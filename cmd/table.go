package cmd

import (
	"github.com/spf13/cobra"

	"github.com/KaramelBytes/dockfinder-cli/internal/grid"
	"github.com/KaramelBytes/dockfinder-cli/internal/termview"
)

var tableCmd = &cobra.Command{
	Use:   "table [source]",
	Short: "Print the listings as a filtered, sorted table",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		res, err := loadSource(cmd.Context(), out, args)
		if err != nil {
			return err
		}
		st, err := viewState(res.Dataset, res.State)
		if err != nil {
			return err
		}
		return termview.WriteFrame(out, grid.Build(res.Dataset, st).Frame())
	},
}

func init() {
	rootCmd.AddCommand(tableCmd)
	addViewFlags(tableCmd)
}
