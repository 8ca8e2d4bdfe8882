package cmd

import (
	"github.com/spf13/cobra"

	autospecs "github.com/kailas-cloud/autospecs/pkg/sdk"
)

func newDetailsCmd(conn *connection, connect connectFunc) *cobra.Command {
	var q autospecs.DetailsQuery

	cmd := &cobra.Command{
		Use:   "details",
		Short: "Print one page of vehicle details with facet statistics",
		Long: `Print one page of vehicle details with facet statistics.

Multi-value flags take comma-separated values. Highlight flags never
narrow the results; they add highlighted counts to the statistics.

Examples:
  specsctl details --models "Ford:Mustang,Chevrolet:Camaro" --year-min 2015
  specsctl details --manufacturer Ford --h-body-class Coupe --sort-by year --sort-order desc`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := open(cmd, conn, connect)
			if err != nil {
				return err
			}
			env, err := client.Details(cmd.Context(), q)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), env)
		},
	}

	f := cmd.Flags()
	f.StringVar(&q.Models, "models", "", "Manufacturer:Model pairs")
	f.StringVar(&q.Manufacturer, "manufacturer", "", "Exact manufacturers")
	f.StringVar(&q.Model, "model", "", "Exact models")
	f.StringVar(&q.BodyClass, "body-class", "", "Exact body classes")
	f.StringVar(&q.DataSource, "data-source", "", "Exact data source")
	f.StringVar(&q.YearMin, "year-min", "", "Lowest year, inclusive")
	f.StringVar(&q.YearMax, "year-max", "", "Highest year, inclusive")
	f.StringVar(&q.ManufacturerSearch, "manufacturer-search", "", "Partial manufacturer match")
	f.StringVar(&q.ModelSearch, "model-search", "", "Partial model match")
	f.StringVar(&q.BodyClassSearch, "body-class-search", "", "Partial body class match")
	f.StringVar(&q.DataSourceSearch, "data-source-search", "", "Partial data source match")
	f.StringVar(&q.HighlightYearMin, "h-year-min", "", "Highlight from year")
	f.StringVar(&q.HighlightYearMax, "h-year-max", "", "Highlight up to year")
	f.StringVar(&q.HighlightManufacturer, "h-manufacturer", "", "Highlight manufacturers")
	f.StringVar(&q.HighlightModels, "h-models", "", "Highlight Manufacturer:Model pairs")
	f.StringVar(&q.HighlightBodyClass, "h-body-class", "", "Highlight body classes")
	f.StringVar(&q.SortBy, "sort-by", "", "Sort field")
	f.StringVar(&q.SortOrder, "sort-order", "asc", "Sort order: asc, desc")
	f.IntVar(&q.Page, "page", 1, "Page number")
	f.IntVar(&q.Size, "size", 20, "Page size (1-100)")

	return cmd
}
