// Package result holds the shaped response of vehicle searches: facet
// statistics, the paginated envelope and the manufacturer-model summary.
package result

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Count is a bucket count. Without highlight it is a plain total; with
// highlight it also carries how many of the bucket's rows are highlighted.
type Count struct {
	Total       int64
	Highlighted *int64
}

// Plain creates a count without highlight.
func Plain(total int64) Count { return Count{Total: total} }

// Segmented creates a count with a highlighted subset.
func Segmented(total, highlighted int64) Count {
	return Count{Total: total, Highlighted: &highlighted}
}

// IsSegmented reports whether the count carries a highlighted subset.
func (c Count) IsSegmented() bool { return c.Highlighted != nil }

type segmentedJSON struct {
	Total       int64 `json:"total"`
	Highlighted int64 `json:"highlighted"`
}

// MarshalJSON writes a number, or {"total":n,"highlighted":m} when segmented.
func (c Count) MarshalJSON() ([]byte, error) {
	if c.Highlighted == nil {
		return json.Marshal(c.Total)
	}
	return json.Marshal(segmentedJSON{Total: c.Total, Highlighted: *c.Highlighted})
}

// Entry is one bucket of a facet.
type Entry struct {
	Key   string
	Count Count
}

// Facet is an ordered count breakdown. It marshals to a JSON object whose keys
// keep bucket order.
type Facet []Entry

// Get returns the count of a key.
func (f Facet) Get(key string) (Count, bool) {
	for _, e := range f {
		if e.Key == key {
			return e.Count, true
		}
	}
	return Count{}, false
}

// MarshalJSON writes the facet as an ordered JSON object.
func (f Facet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range f {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeKey(&buf, e.Key); err != nil {
			return nil, err
		}
		v, err := e.Count.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// NestedEntry is one top-level bucket of a two-level facet.
type NestedEntry struct {
	Key   string
	Facet Facet
}

// NestedFacet is an ordered two-level breakdown.
type NestedFacet []NestedEntry

// Get returns the sub-facet of a top-level key.
func (n NestedFacet) Get(key string) (Facet, bool) {
	for _, e := range n {
		if e.Key == key {
			return e.Facet, true
		}
	}
	return nil, false
}

// MarshalJSON writes the facet as an ordered JSON object of objects.
func (n NestedFacet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range n {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeKey(&buf, e.Key); err != nil {
			return nil, err
		}
		v, err := e.Facet.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeKey(buf *bytes.Buffer, key string) error {
	k, err := json.Marshal(key)
	if err != nil {
		return fmt.Errorf("encode facet key: %w", err)
	}
	buf.Write(k)
	buf.WriteByte(':')
	return nil
}
