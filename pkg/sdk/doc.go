// Package autospecs is an embedded Go client for the vehicle specification
// search. It runs the same pipeline as the HTTP service directly against an
// OpenSearch or Elasticsearch cluster: faceted vehicle details with optional
// highlight counts, manufacturer-model combinations and filter options.
//
//	client, err := autospecs.New(ctx,
//	    autospecs.WithEngine("http://localhost:9200"),
//	    autospecs.WithIndices("autos-unified", "autos-vins"),
//	)
//	if err != nil {
//	    return err
//	}
//
//	env, err := client.Vehicles().Details(ctx, autospecs.DetailsQuery{
//	    Models:             "Ford:Mustang,Chevrolet:Camaro",
//	    YearMin:            "2015",
//	    HighlightBodyClass: "Coupe",
//	    SortBy:             "year",
//	    SortOrder:          "desc",
//	})
//
//	makes, err := client.Filters().Lookup(ctx, autospecs.Manufacturers, "for", 10)
package autospecs
