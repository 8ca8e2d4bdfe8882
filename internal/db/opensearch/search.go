package opensearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/opensearch-project/opensearch-go/v2/opensearchapi"

	"github.com/kailas-cloud/autospecs/internal/db"
	"github.com/kailas-cloud/autospecs/internal/metrics"
)

// Search executes one request with query, paging, sort and aggregations.
func (s *Store) Search(ctx context.Context, q *db.SearchQuery) (*db.SearchResult, error) {
	body, err := buildBody(q)
	if err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: err}
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: fmt.Errorf("marshal body: %w", err)}
	}

	ctx, cancel := s.bound(ctx)
	defer cancel()

	start := time.Now()
	resp, err := opensearchapi.SearchRequest{
		Index: []string{q.Index},
		Body:  bytes.NewReader(payload),
	}.Do(ctx, s.transport)
	metrics.EngineRequestDuration.WithLabelValues(q.Index).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.EngineRequestsTotal.WithLabelValues(q.Index, "error").Inc()
		return nil, &db.Error{Op: db.OpSearch, Err: fmt.Errorf("%w: %w", db.ErrEngineUnavailable, err)}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.IsError() {
		metrics.EngineRequestsTotal.WithLabelValues(q.Index, "error").Inc()
		return nil, &db.Error{Op: db.OpSearch, Err: errorFromResponse(resp)}
	}
	metrics.EngineRequestsTotal.WithLabelValues(q.Index, "ok").Inc()

	res, err := parseSearchResponse(resp.Body, q.Aggs)
	if err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: err}
	}
	return res, nil
}

type engineError struct {
	Error struct {
		Type   string `json:"type"`
		Reason string `json:"reason"`
	} `json:"error"`
}

func errorFromResponse(resp *opensearchapi.Response) error {
	data, _ := io.ReadAll(resp.Body)
	var e engineError
	if err := json.Unmarshal(data, &e); err == nil && e.Error.Type != "" {
		if e.Error.Type == "index_not_found_exception" {
			return fmt.Errorf("%w: %s", db.ErrIndexNotFound, e.Error.Reason)
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			return fmt.Errorf("%w: %d: %s: %s", db.ErrEngineUnavailable, resp.StatusCode, e.Error.Type, e.Error.Reason)
		}
		return fmt.Errorf("engine error %d: %s: %s", resp.StatusCode, e.Error.Type, e.Error.Reason)
	}
	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("%w: status %d", db.ErrEngineUnavailable, resp.StatusCode)
	}
	return fmt.Errorf("engine error status %d", resp.StatusCode)
}
