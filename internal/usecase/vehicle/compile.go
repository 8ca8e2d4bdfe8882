package vehicle

import (
	"strings"

	"github.com/kailas-cloud/autospecs/internal/domain/search/criteria"
	"github.com/kailas-cloud/autospecs/internal/domain/search/query"
	"github.com/kailas-cloud/autospecs/internal/domain/search/sorting"
	domveh "github.com/kailas-cloud/autospecs/internal/domain/vehicle"
)

// phrasePrefixExpansions caps how many terms the last word of a phrase prefix may expand to.
const phrasePrefixExpansions = 50

var (
	manufacturerField = domveh.MustLookup(domveh.FieldManufacturer)
	modelField        = domveh.MustLookup(domveh.FieldModel)
	yearField         = domveh.MustLookup(domveh.FieldYear)
	bodyClassField    = domveh.MustLookup(domveh.FieldBodyClass)
	dataSourceField   = domveh.MustLookup(domveh.FieldDataSource)
)

// compileQuery builds the primary query: the base selection ANDed with every
// present partial-match and exact clause. Absent criteria add nothing.
func compileQuery(pairs []criteria.Pair, f criteria.Filter) query.Clause {
	var filters []query.Clause

	for _, p := range []struct {
		field domveh.FieldSpec
		text  string
	}{
		{manufacturerField, f.ManufacturerSearch},
		{modelField, f.ModelSearch},
		{bodyClassField, f.BodyClassSearch},
		{dataSourceField, f.DataSourceSearch},
	} {
		if p.text != "" {
			filters = append(filters, partialMatch(p.field, p.text))
		}
	}

	if len(f.Manufacturers) > 0 {
		filters = append(filters, query.TermsAny(manufacturerField.Exact, f.Manufacturers, false))
	}
	if len(f.Models) > 0 {
		filters = append(filters, query.TermsAny(modelField.Exact, f.Models, false))
	}
	if r := yearRange(f.YearMin, f.YearMax); r != nil {
		filters = append(filters, r)
	}
	if len(f.BodyClasses) > 0 {
		filters = append(filters, query.TermsAny(bodyClassField.Exact, f.BodyClasses, false))
	}
	if f.DataSource != "" {
		filters = append(filters, query.Term{Field: dataSourceField.Exact, Value: f.DataSource})
	}

	return query.Bool{Must: []query.Clause{compileBase(pairs)}, Filter: filters}
}

// compileBase selects rows matching any of the pairs, or every row when there are none.
func compileBase(pairs []criteria.Pair) query.Clause {
	if len(pairs) == 0 {
		return query.MatchAll{}
	}
	return pairSelection(pairs)
}

func pairSelection(pairs []criteria.Pair) query.Clause {
	alts := make([]query.Clause, len(pairs))
	for i, p := range pairs {
		alts[i] = query.AllOf(
			query.Term{Field: manufacturerField.Exact, Value: p.Manufacturer},
			query.Term{Field: modelField.Exact, Value: p.Model},
		)
	}
	return query.Bool{Should: alts, MinimumShouldMatch: 1}
}

// partialMatch scopes a substring test to one field. Analyzed text fields are
// case-insensitive at the engine and take a phrase prefix; keyword fields take
// an explicit case-insensitive wildcard over the lower-cased text.
func partialMatch(f domveh.FieldSpec, text string) query.Clause {
	if f.Analyzed {
		return query.PhrasePrefix{Field: f.Name, Query: text, MaxExpansions: phrasePrefixExpansions}
	}
	return query.Wildcard{
		Field:           f.Exact,
		Pattern:         "*" + query.EscapeWildcard(strings.ToLower(text)) + "*",
		CaseInsensitive: true,
	}
}

func yearRange(lo, hi *int) query.Clause {
	if lo == nil && hi == nil {
		return nil
	}
	return query.Range{Field: yearField.Exact, GTE: lo, LTE: hi}
}

// compileHighlight builds the highlight filter. The second result is false when
// no highlight field is present; facets then carry plain counts.
func compileHighlight(h criteria.Highlight) (query.Clause, bool) {
	var clauses []query.Clause

	if r := yearRange(h.YearMin, h.YearMax); r != nil {
		clauses = append(clauses, r)
	}
	if len(h.Manufacturers) > 0 {
		clauses = append(clauses, query.TermsAny(manufacturerField.Exact, h.Manufacturers, true))
	}
	if len(h.Pairs) > 0 {
		clauses = append(clauses, pairSelection(h.Pairs))
	}
	if len(h.BodyClasses) > 0 {
		clauses = append(clauses, query.TermsAny(bodyClassField.Exact, h.BodyClasses, false))
	}

	if len(clauses) == 0 {
		return nil, false
	}
	return query.Bool{Filter: clauses}, true
}

// defaultSort keeps pagination deterministic when no sort is requested.
var defaultSort = []sorting.Field{
	{Name: manufacturerField.SortableAs, Direction: sorting.Asc},
	{Name: modelField.SortableAs, Direction: sorting.Asc},
	{Name: yearField.SortableAs, Direction: sorting.Desc},
}

// resolveSort maps a public sort field to its sortable engine field. Unknown
// and computed fields fall back to the default order.
func resolveSort(sortBy string, dir sorting.Direction) []sorting.Field {
	f, ok := domveh.Lookup(sortBy)
	if !ok || !f.Sortable() {
		return defaultSort
	}
	return []sorting.Field{{Name: f.SortableAs, Direction: dir}}
}

// effectiveSortBy is the sort field actually applied, or nil for the default order.
func effectiveSortBy(sortBy string) *string {
	f, ok := domveh.Lookup(sortBy)
	if !ok || !f.Sortable() {
		return nil
	}
	name := f.Name
	return &name
}
