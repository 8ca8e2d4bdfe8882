package opensearch

import (
	"fmt"

	"github.com/kailas-cloud/autospecs/internal/db"
	"github.com/kailas-cloud/autospecs/internal/domain/search/agg"
	"github.com/kailas-cloud/autospecs/internal/domain/search/query"
)

// buildBody renders a search query into the engine request body.
func buildBody(q *db.SearchQuery) (map[string]any, error) {
	clause, err := renderClause(q.Query)
	if err != nil {
		return nil, err
	}
	body := map[string]any{
		"query": clause,
		"from":  q.From,
		"size":  q.Size,
	}
	if q.TrackTotalHits {
		body["track_total_hits"] = true
	}
	if len(q.Sort) > 0 {
		sort := make([]map[string]any, len(q.Sort))
		for i, f := range q.Sort {
			sort[i] = map[string]any{f.Name: map[string]any{"order": string(f.Direction)}}
		}
		body["sort"] = sort
	}
	if len(q.Aggs) > 0 {
		aggs, err := renderAggs(q.Aggs)
		if err != nil {
			return nil, err
		}
		body["aggs"] = aggs
	}
	return body, nil
}

func renderClause(c query.Clause) (map[string]any, error) {
	switch q := c.(type) {
	case nil, query.MatchAll:
		return map[string]any{"match_all": map[string]any{}}, nil
	case query.Term:
		t := map[string]any{"value": q.Value}
		if q.CaseInsensitive {
			t["case_insensitive"] = true
		}
		return map[string]any{"term": map[string]any{q.Field: t}}, nil
	case query.Terms:
		return map[string]any{"terms": map[string]any{q.Field: q.Values}}, nil
	case query.Range:
		r := map[string]any{}
		if q.GTE != nil {
			r["gte"] = *q.GTE
		}
		if q.LTE != nil {
			r["lte"] = *q.LTE
		}
		return map[string]any{"range": map[string]any{q.Field: r}}, nil
	case query.PhrasePrefix:
		p := map[string]any{"query": q.Query}
		if q.MaxExpansions > 0 {
			p["max_expansions"] = q.MaxExpansions
		}
		return map[string]any{"match_phrase_prefix": map[string]any{q.Field: p}}, nil
	case query.Wildcard:
		w := map[string]any{"value": q.Pattern}
		if q.CaseInsensitive {
			w["case_insensitive"] = true
		}
		return map[string]any{"wildcard": map[string]any{q.Field: w}}, nil
	case query.Match:
		m := map[string]any{"query": q.Query}
		if q.Fuzziness != "" {
			m["fuzziness"] = q.Fuzziness
		}
		return map[string]any{"match": map[string]any{q.Field: m}}, nil
	case query.Bool:
		return renderBool(q)
	default:
		return nil, fmt.Errorf("unsupported clause %T", c)
	}
}

func renderBool(q query.Bool) (map[string]any, error) {
	b := map[string]any{}
	for _, part := range []struct {
		name    string
		clauses []query.Clause
	}{
		{"must", q.Must},
		{"should", q.Should},
		{"filter", q.Filter},
	} {
		if len(part.clauses) == 0 {
			continue
		}
		rendered := make([]map[string]any, 0, len(part.clauses))
		for _, c := range part.clauses {
			r, err := renderClause(c)
			if err != nil {
				return nil, err
			}
			rendered = append(rendered, r)
		}
		b[part.name] = rendered
	}
	if q.MinimumShouldMatch > 0 {
		b["minimum_should_match"] = q.MinimumShouldMatch
	}
	return map[string]any{"bool": b}, nil
}

func renderAggs(set agg.Set) (map[string]any, error) {
	out := make(map[string]any, len(set))
	for name, a := range set {
		r, err := renderAgg(a)
		if err != nil {
			return nil, fmt.Errorf("aggregation %s: %w", name, err)
		}
		out[name] = r
	}
	return out, nil
}

func renderAgg(a agg.Aggregation) (map[string]any, error) {
	switch v := a.(type) {
	case agg.Terms:
		t := map[string]any{"field": v.Field, "size": v.Size}
		if v.Order != nil {
			t["order"] = map[string]any{string(v.Order.By): string(v.Order.Direction)}
		}
		body := map[string]any{"terms": t}
		if len(v.Sub) > 0 {
			sub, err := renderAggs(v.Sub)
			if err != nil {
				return nil, err
			}
			body["aggs"] = sub
		}
		return body, nil
	case agg.Filter:
		c, err := renderClause(v.Clause)
		if err != nil {
			return nil, err
		}
		return map[string]any{"filter": c}, nil
	case agg.Stats:
		return map[string]any{"stats": map[string]any{"field": v.Field}}, nil
	default:
		return nil, fmt.Errorf("unsupported aggregation %T", a)
	}
}
