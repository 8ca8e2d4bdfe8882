// Package option describes the filter option lookups that feed the filter
// controls: distinct values of a field, or the year bounds.
package option

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kailas-cloud/autospecs/internal/domain"
)

// Lookup limits.
const (
	DefaultLimit = 1000
	MaxLimit     = 5000
)

// Field names a lookup in its public URL form.
type Field string

// Supported lookups.
const (
	Manufacturers Field = "manufacturers"
	Models        Field = "models"
	BodyClasses   Field = "body-classes"
	DataSources   Field = "data-sources"
	YearRange     Field = "year-range"
)

var fields = []Field{Manufacturers, Models, BodyClasses, DataSources, YearRange}

// IsValid reports whether f is a supported lookup.
func (f Field) IsValid() bool {
	for _, v := range fields {
		if f == v {
			return true
		}
	}
	return false
}

// Searchable reports whether the lookup honours a prefix search and a limit.
func (f Field) Searchable() bool {
	return f == Manufacturers || f == Models
}

// ParseField validates a lookup name.
func ParseField(s string) (Field, error) {
	f := Field(s)
	if !f.IsValid() {
		names := make([]string, len(fields))
		for i, v := range fields {
			names[i] = string(v)
		}
		return "", fmt.Errorf("%w: field %q is not supported. Valid fields: %s",
			domain.ErrUnknownFilterField, s, strings.Join(names, ", "))
	}
	return f, nil
}

// ValidateLimit checks a lookup limit.
func ValidateLimit(limit int) error {
	if limit < 1 || limit > MaxLimit {
		return domain.NewInvalidInput("limit", fmt.Sprintf("limit must be between 1 and %d", MaxLimit))
	}
	return nil
}

// Bounds is the lowest and highest year present. Both are nil on an empty index.
type Bounds struct {
	Min *int `json:"min"`
	Max *int `json:"max"`
}

// Result is the outcome of one lookup: Values for value lookups, Bounds for year-range.
type Result struct {
	Field  Field
	Values []string
	Bounds Bounds
}

// responseKey is the JSON property holding the values of a value lookup.
func (f Field) responseKey() string {
	return strings.ReplaceAll(string(f), "-", "_")
}

// MarshalJSON writes {"<field>": [...]} for value lookups and {"min":..,"max":..} for year-range.
func (r Result) MarshalJSON() ([]byte, error) {
	if r.Field == YearRange {
		return json.Marshal(r.Bounds)
	}
	values := r.Values
	if values == nil {
		values = []string{}
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	key, _ := json.Marshal(r.Field.responseKey())
	buf.Write(key)
	buf.WriteByte(':')
	data, err := json.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", r.Field, err)
	}
	buf.Write(data)
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
