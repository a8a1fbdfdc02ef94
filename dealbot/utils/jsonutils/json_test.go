package jsonutils

import (
	"encoding/json"
	"testing"
)

func TestExtractJSONFencedBlock(t *testing.T) {
	input := "Here is the result:\n```json\n{\"product\": \"perfume\", \"quantity\": \"100 Ml\"}\n```\nHope that helps!"
	out := ExtractJSON(input)

	var parsed map[string]string
	if err := json.Unmarshal([]byte(out), &parsed); err != nil {
		t.Fatalf("extracted block not valid JSON: %v (got %q)", err, out)
	}
	if parsed["product"] != "perfume" {
		t.Errorf("expected product 'perfume', got %q", parsed["product"])
	}
}

func TestExtractJSONBareObject(t *testing.T) {
	input := `Sure! {"price": "499", "rating": "4.2",} trailing text`
	out := ExtractJSON(input)

	var parsed map[string]string
	if err := json.Unmarshal([]byte(out), &parsed); err != nil {
		t.Fatalf("trailing comma not cleaned: %v (got %q)", err, out)
	}
	if parsed["price"] != "499" {
		t.Errorf("expected price '499', got %q", parsed["price"])
	}
}

func TestExtractJSONInvisibleRunes(t *testing.T) {
	input := "\uFEFF{\"a\":\u200B \"b\"}"
	out := ExtractJSON(input)

	var parsed map[string]string
	if err := json.Unmarshal([]byte(out), &parsed); err != nil {
		t.Fatalf("invisible runes not stripped: %v (got %q)", err, out)
	}
}

func TestToJSONRoundTrip(t *testing.T) {
	out := ToJSON(map[string]string{"k": "v"})
	if out == "" {
		t.Fatal("expected non-empty JSON")
	}
	var parsed map[string]string
	if err := json.Unmarshal([]byte(out), &parsed); err != nil {
		t.Fatalf("ToJSON output not valid JSON: %v", err)
	}
}
