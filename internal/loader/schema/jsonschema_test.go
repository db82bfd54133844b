package schema

import (
	"encoding/json"
	"testing"
)

func TestJSONSchema(t *testing.T) {
	data, err := json.Marshal(JSONSchema())
	if err != nil {
		t.Fatalf("marshal schema: %v", err)
	}

	var doc struct {
		Type       string                     `json:"type"`
		Required   []string                   `json:"required"`
		Properties map[string]json.RawMessage `json:"properties"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unmarshal schema: %v", err)
	}

	if doc.Type != "object" {
		t.Errorf("expected object root, got %q", doc.Type)
	}
	if len(doc.Required) != 1 || doc.Required[0] != "name" {
		t.Errorf("expected only name to be required, got %v", doc.Required)
	}
	for _, key := range []string{"name", "f32", "u32", "i32", "u64", "i64", "v3", "array_f32"} {
		if _, ok := doc.Properties[key]; !ok {
			t.Errorf("property %q missing from schema", key)
		}
	}

	var v3 struct {
		OneOf []json.RawMessage `json:"oneOf"`
	}
	if err := json.Unmarshal(doc.Properties["v3"], &v3); err != nil || len(v3.OneOf) != 2 {
		t.Errorf("expected v3 to accept two shapes, got %s", doc.Properties["v3"])
	}
}
