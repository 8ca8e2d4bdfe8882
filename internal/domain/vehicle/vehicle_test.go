package vehicle

import (
	"encoding/json"
	"testing"
)

func TestParse(t *testing.T) {
	v, err := Parse([]byte(`{"vehicle_id":"V1","manufacturer":"Ford","model":"Mustang",` +
		`"year":2020,"body_class":"Coupe","data_source":"epa","engine":{"cylinders":8}}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.ID() != "V1" || v.Manufacturer() != "Ford" || v.Model() != "Mustang" {
		t.Errorf("identity = (%q, %q, %q)", v.ID(), v.Manufacturer(), v.Model())
	}
	if v.BodyClass() != "Coupe" || v.DataSource() != "epa" {
		t.Errorf("classes = (%q, %q)", v.BodyClass(), v.DataSource())
	}
	if y, ok := v.Year(); !ok || y != 2020 {
		t.Errorf("Year = (%d, %v)", y, ok)
	}
	if raw, ok := v.Field("engine"); !ok || string(raw) != `{"cylinders":8}` {
		t.Errorf("engine = %s", raw)
	}
}

func TestParse_NumericID(t *testing.T) {
	v, err := Parse([]byte(`{"vehicle_id":42,"model":null}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.ID() != "42" {
		t.Errorf("ID = %q, want 42", v.ID())
	}
	if v.Model() != "" {
		t.Errorf("Model = %q, want empty", v.Model())
	}
	if _, ok := v.Year(); ok {
		t.Error("Year present on a record without year")
	}
}

func TestParse_Invalid(t *testing.T) {
	if _, err := Parse([]byte(`[1,2]`)); err == nil {
		t.Fatal("expected error for non-object source")
	}
}

func TestParse_DropsStoredInstanceCount(t *testing.T) {
	v, err := Parse([]byte(`{"vehicle_id":"V1","instance_count":99}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.InstanceCount() != nil {
		t.Errorf("InstanceCount = %v, want nil", *v.InstanceCount())
	}
}

func TestVehicle_MarshalJSON(t *testing.T) {
	v, _ := Parse([]byte(`{"vehicle_id":"V1","year":2020}`))

	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"instance_count":null,"vehicle_id":"V1","year":2020}` {
		t.Errorf("unknown count = %s", data)
	}

	n := int64(3)
	data, err = json.Marshal(v.WithInstanceCount(&n))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"instance_count":3,"vehicle_id":"V1","year":2020}` {
		t.Errorf("known count = %s", data)
	}

	if v.InstanceCount() != nil {
		t.Error("WithInstanceCount mutated the original")
	}
}

func TestSchema(t *testing.T) {
	f, ok := Lookup(FieldManufacturer)
	if !ok || f.Exact != "manufacturer.keyword" || !f.Analyzed || !f.Sortable() {
		t.Errorf("manufacturer = %+v", f)
	}

	ic := MustLookup(FieldInstanceCount)
	if ic.Sortable() {
		t.Error("instance_count must not be engine-sortable")
	}

	if _, ok := Lookup("price"); ok {
		t.Error("Lookup(price) found an unknown field")
	}

	fields := SortFields()
	if len(fields) != 7 || fields[len(fields)-1] != FieldInstanceCount {
		t.Errorf("SortFields = %v", fields)
	}
}

func TestMustLookup_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	MustLookup("price")
}
