package cmd

import (
	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary [source]",
	Short: "Print the dock count for a listings CSV",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := loadSource(cmd.Context(), cmd.OutOrStdout(), args)
		return err
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}
