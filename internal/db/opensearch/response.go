package opensearch

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/kailas-cloud/autospecs/internal/db"
	"github.com/kailas-cloud/autospecs/internal/domain/search/agg"
)

type searchResponse struct {
	Hits struct {
		Total json.RawMessage `json:"total"`
		Hits  []struct {
			ID     string          `json:"_id"`
			Source json.RawMessage `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
	Aggregations map[string]json.RawMessage `json:"aggregations"`
}

func parseSearchResponse(r io.Reader, plan agg.Set) (*db.SearchResult, error) {
	var resp searchResponse
	if err := json.NewDecoder(r).Decode(&resp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	total, err := parseTotal(resp.Hits.Total)
	if err != nil {
		return nil, err
	}

	hits := make([]db.SearchHit, 0, len(resp.Hits.Hits))
	for _, h := range resp.Hits.Hits {
		hits = append(hits, db.SearchHit{ID: h.ID, Source: h.Source})
	}

	aggs, err := parseAggs(resp.Aggregations, plan)
	if err != nil {
		return nil, err
	}

	return &db.SearchResult{Total: total, Hits: hits, Aggregations: aggs}, nil
}

// parseTotal accepts both {"value": n} and a bare number.
func parseTotal(raw json.RawMessage) (int64, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, nil
	}
	if raw[0] == '{' {
		var t struct {
			Value int64 `json:"value"`
		}
		if err := json.Unmarshal(raw, &t); err != nil {
			return 0, fmt.Errorf("decode hits.total: %w", err)
		}
		return t.Value, nil
	}
	var n int64
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, fmt.Errorf("decode hits.total: %w", err)
	}
	return n, nil
}

// parseAggs decodes the aggregations named in plan. Unplanned names are ignored.
func parseAggs(raw map[string]json.RawMessage, plan agg.Set) (agg.Results, error) {
	if len(plan) == 0 {
		return nil, nil
	}
	out := make(agg.Results, len(plan))
	for name, def := range plan {
		data, ok := raw[name]
		if !ok {
			continue
		}
		res, err := parseAgg(data, def)
		if err != nil {
			return nil, fmt.Errorf("aggregation %s: %w", name, err)
		}
		out[name] = res
	}
	return out, nil
}

func parseAgg(data json.RawMessage, def agg.Aggregation) (agg.Result, error) {
	switch d := def.(type) {
	case agg.Terms:
		return parseTerms(data, d)
	case agg.Filter:
		var f struct {
			DocCount int64 `json:"doc_count"`
		}
		if err := json.Unmarshal(data, &f); err != nil {
			return agg.Result{}, fmt.Errorf("decode filter: %w", err)
		}
		return agg.Result{DocCount: f.DocCount}, nil
	case agg.Stats:
		var raw struct {
			Count int64    `json:"count"`
			Min   *float64 `json:"min"`
			Max   *float64 `json:"max"`
			Avg   *float64 `json:"avg"`
			Sum   float64  `json:"sum"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return agg.Result{}, fmt.Errorf("decode stats: %w", err)
		}
		s := agg.StatsResult{Count: raw.Count, Min: raw.Min, Max: raw.Max, Avg: raw.Avg, Sum: raw.Sum}
		return agg.Result{Stats: &s}, nil
	default:
		return agg.Result{}, fmt.Errorf("unsupported aggregation %T", def)
	}
}

func parseTerms(data json.RawMessage, def agg.Terms) (agg.Result, error) {
	var t struct {
		Buckets []map[string]json.RawMessage `json:"buckets"`
	}
	if err := json.Unmarshal(data, &t); err != nil {
		return agg.Result{}, fmt.Errorf("decode terms: %w", err)
	}

	buckets := make([]agg.Bucket, 0, len(t.Buckets))
	for _, raw := range t.Buckets {
		key, err := bucketKey(raw["key"])
		if err != nil {
			return agg.Result{}, err
		}
		var count int64
		if dc, ok := raw["doc_count"]; ok {
			if err := json.Unmarshal(dc, &count); err != nil {
				return agg.Result{}, fmt.Errorf("decode doc_count: %w", err)
			}
		}
		sub, err := parseAggs(raw, def.Sub)
		if err != nil {
			return agg.Result{}, err
		}
		buckets = append(buckets, agg.Bucket{Key: key, DocCount: count, Sub: sub})
	}
	return agg.Result{Buckets: buckets}, nil
}

// bucketKey returns string keys as-is and numeric keys in their literal form.
func bucketKey(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", fmt.Errorf("decode bucket key: %w", err)
		}
		return s, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var n json.Number
	if err := dec.Decode(&n); err != nil {
		return "", fmt.Errorf("decode bucket key: %w", err)
	}
	return n.String(), nil
}
