package domain

import (
	"encoding/json"
	"testing"
)

func TestOptional_UnmarshalDistinguishesAbsentNullAndValue(t *testing.T) {
	var p ItemPatch
	if err := json.Unmarshal([]byte(`{"description":null,"is_completed":false}`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if p.Title.Set {
		t.Fatalf("absent title must not be set")
	}
	if !p.Description.Set || !p.Description.Null {
		t.Fatalf("description should be an explicit null: %+v", p.Description)
	}
	if !p.IsCompleted.Set || p.IsCompleted.Null || p.IsCompleted.Value {
		t.Fatalf("is_completed should be set to false: %+v", p.IsCompleted)
	}
}

func TestOptional_UnmarshalTypeMismatch(t *testing.T) {
	var p ItemPatch
	if err := json.Unmarshal([]byte(`{"title":42}`), &p); err == nil {
		t.Fatalf("expected type error")
	}
}

func TestOptional_Marshal(t *testing.T) {
	out, err := json.Marshal(struct {
		A Optional[string] `json:"a"`
		B Optional[string] `json:"b"`
		C Optional[int]    `json:"c"`
	}{A: Some("x"), B: Null[string]()})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"a":"x","b":null,"c":null}` {
		t.Fatalf("unexpected json: %s", out)
	}
}

func TestOptional_ValidationValue(t *testing.T) {
	if v := (Optional[string]{}).ValidationValue(); v != nil {
		t.Fatalf("unset should yield nil, got %v", v)
	}
	if v := Null[string]().ValidationValue(); v != nil {
		t.Fatalf("null should yield nil, got %v", v)
	}
	if v := Some("x").ValidationValue(); v != "x" {
		t.Fatalf("expected x, got %v", v)
	}
}
