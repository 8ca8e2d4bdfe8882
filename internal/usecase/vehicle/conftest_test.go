package vehicle

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"testing"

	"github.com/kailas-cloud/autospecs/internal/domain/search/agg"
	"github.com/kailas-cloud/autospecs/internal/domain/search/query"
	"github.com/kailas-cloud/autospecs/internal/domain/search/request"
	"github.com/kailas-cloud/autospecs/internal/domain/search/result"
	"github.com/kailas-cloud/autospecs/internal/domain/search/sorting"
	domveh "github.com/kailas-cloud/autospecs/internal/domain/vehicle"
)

// memIndex evaluates compiled clauses and aggregations over in-memory records.
type memIndex struct {
	docs     []domveh.Vehicle
	err      error
	searches []request.Search
	aggCalls int
}

func (m *memIndex) Vehicles(_ context.Context, req request.Search) (result.Raw, error) {
	m.searches = append(m.searches, req)
	if m.err != nil {
		return result.Raw{}, m.err
	}
	hits := m.filter(req.Query)
	sortDocs(hits, req.Sort)

	start, end := req.From, req.From+req.Size
	if start > len(hits) {
		start = len(hits)
	}
	if end > len(hits) {
		end = len(hits)
	}
	page := make([]domveh.Vehicle, end-start)
	copy(page, hits[start:end])

	return result.Raw{
		Total:    int64(len(hits)),
		Vehicles: page,
		Aggs:     evalAggs(req.Aggs, hits),
	}, nil
}

func (m *memIndex) Aggregate(_ context.Context, q query.Clause, aggs agg.Set) (agg.Results, error) {
	m.aggCalls++
	if m.err != nil {
		return nil, m.err
	}
	return evalAggs(aggs, m.filter(q)), nil
}

func (m *memIndex) filter(q query.Clause) []domveh.Vehicle {
	var out []domveh.Vehicle
	for _, d := range m.docs {
		if matches(q, d) {
			out = append(out, d)
		}
	}
	return out
}

// field resolves an engine field name (with or without .keyword) to a record value.
func field(v domveh.Vehicle, name string) string {
	name = strings.TrimSuffix(name, ".keyword")
	if name == domveh.FieldYear {
		if y, ok := v.Year(); ok {
			return strconv.Itoa(y)
		}
		return ""
	}
	raw, ok := v.Field(name)
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return strings.Trim(string(raw), `"`)
	}
	return s
}

func matches(c query.Clause, v domveh.Vehicle) bool {
	switch q := c.(type) {
	case nil, query.MatchAll:
		return true
	case query.Term:
		if q.CaseInsensitive {
			return strings.EqualFold(field(v, q.Field), q.Value)
		}
		return field(v, q.Field) == q.Value
	case query.Terms:
		for _, val := range q.Values {
			if field(v, q.Field) == val {
				return true
			}
		}
		return false
	case query.Range:
		y, ok := v.Year()
		if !ok {
			return false
		}
		return (q.GTE == nil || y >= *q.GTE) && (q.LTE == nil || y <= *q.LTE)
	case query.PhrasePrefix:
		text, prefix := strings.ToLower(field(v, q.Field)), strings.ToLower(q.Query)
		for _, w := range strings.Fields(text) {
			if strings.HasPrefix(w, prefix) {
				return true
			}
		}
		return strings.HasPrefix(text, prefix)
	case query.Wildcard:
		needle := strings.Trim(q.Pattern, "*")
		needle = strings.NewReplacer(`\*`, `*`, `\?`, `?`, `\\`, `\`).Replace(needle)
		text := field(v, q.Field)
		if q.CaseInsensitive {
			text, needle = strings.ToLower(text), strings.ToLower(needle)
		}
		return strings.Contains(text, needle)
	case query.Match:
		return strings.EqualFold(field(v, q.Field), q.Query)
	case query.Bool:
		for _, m := range q.Must {
			if !matches(m, v) {
				return false
			}
		}
		for _, f := range q.Filter {
			if !matches(f, v) {
				return false
			}
		}
		if len(q.Should) == 0 {
			return true
		}
		need := q.MinimumShouldMatch
		if need == 0 && len(q.Must) == 0 && len(q.Filter) == 0 {
			need = 1
		}
		hit := 0
		for _, s := range q.Should {
			if matches(s, v) {
				hit++
			}
		}
		return hit >= need
	default:
		panic(fmt.Sprintf("unexpected clause %T", c))
	}
}

func evalAggs(set agg.Set, docs []domveh.Vehicle) agg.Results {
	if len(set) == 0 {
		return nil
	}
	out := agg.Results{}
	for name, a := range set {
		switch d := a.(type) {
		case agg.Terms:
			out[name] = evalTerms(d, docs)
		case agg.Filter:
			n := 0
			for _, doc := range docs {
				if matches(d.Clause, doc) {
					n++
				}
			}
			out[name] = agg.Result{DocCount: int64(n)}
		case agg.Stats:
			var st agg.StatsResult
			for _, doc := range docs {
				y, ok := doc.Year()
				if !ok {
					continue
				}
				f := float64(y)
				if st.Min == nil || f < *st.Min {
					st.Min = &f
				}
				if st.Max == nil || f > *st.Max {
					g := f
					st.Max = &g
				}
				st.Count++
				st.Sum += f
			}
			out[name] = agg.Result{Stats: &st}
		}
	}
	return out
}

func evalTerms(d agg.Terms, docs []domveh.Vehicle) agg.Result {
	groups := map[string][]domveh.Vehicle{}
	var keys []string
	for _, doc := range docs {
		k := field(doc, d.Field)
		if k == "" {
			continue
		}
		if _, ok := groups[k]; !ok {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], doc)
	}

	order := d.Order
	if order == nil {
		order = agg.CountDesc()
	}
	sort.SliceStable(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if order.By == agg.ByCount && len(groups[a]) != len(groups[b]) {
			if order.Direction == sorting.Desc {
				return len(groups[a]) > len(groups[b])
			}
			return len(groups[a]) < len(groups[b])
		}
		if order.By == agg.ByKey && order.Direction == sorting.Desc {
			return a > b
		}
		return a < b
	})
	if len(keys) > d.Size {
		keys = keys[:d.Size]
	}

	buckets := make([]agg.Bucket, 0, len(keys))
	for _, k := range keys {
		buckets = append(buckets, agg.Bucket{
			Key:      k,
			DocCount: int64(len(groups[k])),
			Sub:      evalAggs(d.Sub, groups[k]),
		})
	}
	return agg.Result{Buckets: buckets}
}

func sortDocs(docs []domveh.Vehicle, keys []sorting.Field) {
	sort.SliceStable(docs, func(i, j int) bool {
		for _, k := range keys {
			a, b := field(docs[i], k.Name), field(docs[j], k.Name)
			if a == b {
				continue
			}
			if k.Direction == sorting.Desc {
				return a > b
			}
			return a < b
		}
		return false
	})
}

// registry is a canned secondary index.
type registry struct {
	counts map[string]int64
	err    error
	calls  int
	ids    []string
}

func (r *registry) Aggregate(_ context.Context, q query.Clause, aggs agg.Set) (agg.Results, error) {
	r.calls++
	if t, ok := q.(query.Terms); ok {
		r.ids = t.Values
	}
	if r.err != nil {
		return nil, r.err
	}
	var buckets []agg.Bucket
	for _, id := range r.ids {
		if n, ok := r.counts[id]; ok && n > 0 {
			buckets = append(buckets, agg.Bucket{Key: id, DocCount: n})
		}
	}
	out := agg.Results{}
	for name := range aggs {
		out[name] = agg.Result{Buckets: buckets}
	}
	return out, nil
}

func mustVehicle(t *testing.T, id, mfr, model string, year int, body, source string) domveh.Vehicle {
	t.Helper()
	src := fmt.Sprintf(`{"vehicle_id":%q,"manufacturer":%q,"model":%q,"year":%d,"body_class":%q,"data_source":%q}`,
		id, mfr, model, year, body, source)
	v, err := domveh.Parse([]byte(src))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return v
}

func fixture(t *testing.T) []domveh.Vehicle {
	t.Helper()
	return []domveh.Vehicle{
		mustVehicle(t, "V1", "Ford", "F-150", 2020, "Pickup", "epa"),
		mustVehicle(t, "V2", "Ford", "Mustang", 2019, "Coupe", "epa"),
		mustVehicle(t, "V3", "Chevrolet", "Corvette", 2021, "Coupe", "nhtsa"),
		mustVehicle(t, "V4", "Chevrolet", "Camaro", 2018, "Coupe", "epa"),
		mustVehicle(t, "V5", "Chevrolet", "Malibu", 2020, "Sedan", "nhtsa"),
		mustVehicle(t, "V6", "Honda", "Civic", 2020, "Sedan", "epa"),
		mustVehicle(t, "V7", "Honda", "CR-V", 2021, "SUV", "nhtsa"),
		mustVehicle(t, "V8", "Toyota", "Camry", 2019, "Sedan", "epa"),
	}
}

func newTestService(t *testing.T) (*Service, *memIndex, *registry) {
	t.Helper()
	idx := &memIndex{docs: fixture(t)}
	reg := &registry{counts: map[string]int64{}}
	return New(idx, reg, "", nil), idx, reg
}

func detailsReq(t *testing.T, p request.DetailsParams) request.Details {
	t.Helper()
	if p.Page == 0 {
		p.Page = 1
	}
	if p.Size == 0 {
		p.Size = 20
	}
	req, err := request.NewDetails(p)
	if err != nil {
		t.Fatalf("NewDetails: %v", err)
	}
	return req
}
