package vehicle

// Source field names.
const (
	FieldVehicleID     = "vehicle_id"
	FieldManufacturer  = "manufacturer"
	FieldModel         = "model"
	FieldYear          = "year"
	FieldBodyClass     = "body_class"
	FieldDataSource    = "data_source"
	FieldInstanceCount = "instance_count"
)

// FieldSpec describes how a field is queried, aggregated and sorted.
type FieldSpec struct {
	// Name is the source field and the public sortBy value.
	Name string
	// Exact is the field used for term tests and aggregations.
	Exact string
	// SortableAs is the field the engine sorts by. Empty for computed fields.
	SortableAs string
	// Analyzed marks full-text fields that are case-insensitive at the engine.
	Analyzed bool
}

// Sortable reports whether the engine can order by this field.
func (f FieldSpec) Sortable() bool { return f.SortableAs != "" }

var schema = []FieldSpec{
	{Name: FieldManufacturer, Exact: "manufacturer.keyword", SortableAs: "manufacturer.keyword", Analyzed: true},
	{Name: FieldModel, Exact: "model.keyword", SortableAs: "model.keyword", Analyzed: true},
	{Name: FieldYear, Exact: FieldYear, SortableAs: FieldYear},
	{Name: FieldBodyClass, Exact: FieldBodyClass, SortableAs: FieldBodyClass},
	{Name: FieldDataSource, Exact: FieldDataSource, SortableAs: FieldDataSource},
	{Name: FieldVehicleID, Exact: FieldVehicleID, SortableAs: FieldVehicleID},
	// Joined from the secondary index after the search; nothing to sort by.
	{Name: FieldInstanceCount},
}

var byName = func() map[string]FieldSpec {
	m := make(map[string]FieldSpec, len(schema))
	for _, f := range schema {
		m[f.Name] = f
	}
	return m
}()

// Lookup returns the spec of a named field.
func Lookup(name string) (FieldSpec, bool) {
	f, ok := byName[name]
	return f, ok
}

// MustLookup returns the spec of a field known to exist in the schema.
func MustLookup(name string) FieldSpec {
	f, ok := byName[name]
	if !ok {
		panic("vehicle: unknown field " + name)
	}
	return f
}

// SortFields lists the accepted sortBy values in schema order.
func SortFields() []string {
	names := make([]string, len(schema))
	for i, f := range schema {
		names[i] = f.Name
	}
	return names
}
