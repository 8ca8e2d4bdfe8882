package cmd

import (
	"github.com/spf13/cobra"

	autospecs "github.com/kailas-cloud/autospecs/pkg/sdk"
)

func newCombinationsCmd(conn *connection, connect connectFunc) *cobra.Command {
	var q autospecs.CombinationsQuery

	cmd := &cobra.Command{
		Use:   "combinations",
		Short: "List manufacturers with their models and record counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := open(cmd, conn, connect)
			if err != nil {
				return err
			}
			res, err := client.Combinations(cmd.Context(), q)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}

	cmd.Flags().StringVarP(&q.Search, "search", "s", "", "Free-text search over manufacturer, model and body class")
	cmd.Flags().StringVarP(&q.Manufacturer, "manufacturer", "m", "", "Exact manufacturer")
	cmd.Flags().IntVar(&q.Page, "page", 1, "Page number")
	cmd.Flags().IntVar(&q.Size, "size", autospecs.DefaultCombinationsSize, "Manufacturers per page (1-100)")

	return cmd
}
