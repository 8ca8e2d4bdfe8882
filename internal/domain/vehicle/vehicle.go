// Package vehicle holds the vehicle specification record and its field schema.
package vehicle

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Vehicle is one specification record as stored in the primary index, plus the
// instance count joined from the secondary index. Source fields are kept verbatim.
type Vehicle struct {
	fields        map[string]json.RawMessage
	instanceCount *int64
}

// Parse decodes a JSON source document.
func Parse(source []byte) (Vehicle, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(source, &fields); err != nil {
		return Vehicle{}, fmt.Errorf("decode vehicle source: %w", err)
	}
	if fields == nil {
		fields = map[string]json.RawMessage{}
	}
	delete(fields, FieldInstanceCount)
	return Vehicle{fields: fields}, nil
}

// ID returns the vehicle identifier shared with the secondary index.
func (v Vehicle) ID() string { return v.text(FieldVehicleID) }

// Manufacturer returns the manufacturer name.
func (v Vehicle) Manufacturer() string { return v.text(FieldManufacturer) }

// Model returns the model name.
func (v Vehicle) Model() string { return v.text(FieldModel) }

// BodyClass returns the body class.
func (v Vehicle) BodyClass() string { return v.text(FieldBodyClass) }

// DataSource returns the originating data source.
func (v Vehicle) DataSource() string { return v.text(FieldDataSource) }

// Year returns the model year, if present and numeric.
func (v Vehicle) Year() (int, bool) {
	raw, ok := v.fields[FieldYear]
	if !ok {
		return 0, false
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, false
	}
	y, err := strconv.Atoi(n.String())
	if err != nil {
		return 0, false
	}
	return y, true
}

// Field returns a raw source field.
func (v Vehicle) Field(name string) (json.RawMessage, bool) {
	raw, ok := v.fields[name]
	return raw, ok
}

// InstanceCount returns the joined instance count. Nil means the lookup failed.
func (v Vehicle) InstanceCount() *int64 { return v.instanceCount }

// WithInstanceCount returns a copy of the vehicle carrying the given count.
func (v Vehicle) WithInstanceCount(count *int64) Vehicle {
	v.instanceCount = count
	return v
}

// MarshalJSON writes the source fields plus instance_count (null when unknown).
func (v Vehicle) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(v.fields)+1)
	for k, raw := range v.fields {
		out[k] = raw
	}
	if v.instanceCount != nil {
		out[FieldInstanceCount] = json.RawMessage(strconv.FormatInt(*v.instanceCount, 10))
	} else {
		out[FieldInstanceCount] = json.RawMessage("null")
	}
	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encode vehicle: %w", err)
	}
	return data, nil
}

// text returns a field as a string; non-string scalars are returned in their JSON form.
func (v Vehicle) text(name string) string {
	raw, ok := v.fields[name]
	if !ok {
		return ""
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	}
	if bytes.Equal(raw, []byte("null")) {
		return ""
	}
	return string(raw)
}
