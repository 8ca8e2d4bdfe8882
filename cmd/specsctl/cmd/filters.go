package cmd

import (
	"github.com/spf13/cobra"

	autospecs "github.com/kailas-cloud/autospecs/pkg/sdk"
)

func newFiltersCmd(conn *connection, connect connectFunc) *cobra.Command {
	var (
		search string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "filters <field>",
		Short: "Print the values available to a filter control",
		Long: `Print the values available to a filter control.

Fields: manufacturers, models, body-classes, data-sources, year-range.
--search and --limit only apply to manufacturers and models.`,
		Args: cobra.ExactArgs(1),
		ValidArgs: []string{
			string(autospecs.Manufacturers),
			string(autospecs.Models),
			string(autospecs.BodyClasses),
			string(autospecs.DataSources),
			string(autospecs.YearRange),
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := open(cmd, conn, connect)
			if err != nil {
				return err
			}
			res, err := client.Lookup(cmd.Context(), autospecs.FilterField(args[0]), search, limit)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "Case-insensitive prefix")
	cmd.Flags().IntVarP(&limit, "limit", "n", autospecs.DefaultFilterLimit, "Maximum number of values")

	return cmd
}
