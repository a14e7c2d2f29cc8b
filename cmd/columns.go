package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/dockfinder-cli/internal/analysis"
	"github.com/KaramelBytes/dockfinder-cli/internal/termview"
)

var columnsMarkdown bool

var columnsCmd = &cobra.Command{
	Use:   "columns [source]",
	Short: "List column indices, inferred kinds and value statistics",
	Long: `Profile every column of the listings CSV. The index shown is the one accepted by
--filter, --hide, --order and --sort.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		res, err := loadSource(cmd.Context(), out, args)
		if err != nil {
			return err
		}
		source, _ := resolveSource(args)
		rep := analysis.Profile(res.Dataset, source, analysis.DefaultOptions())
		if columnsMarkdown {
			_, err := fmt.Fprint(out, rep.Markdown())
			return err
		}
		return termview.WriteProfile(out, rep)
	},
}

func init() {
	rootCmd.AddCommand(columnsCmd)
	columnsCmd.Flags().BoolVar(&columnsMarkdown, "markdown", false, "print a markdown schema instead of a table")
}
