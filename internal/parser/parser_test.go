package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/starford/petdesk/internal/apperr"
	"github.com/starford/petdesk/internal/models"
)

func TestParse_JSONServerLayout(t *testing.T) {
	input := []byte(`{
  "pets": [
    {"id": "a1", "name": "Rex", "type": "Dog", "age": 3, "weight": 12.5, "caregiverName": "Ana", "isDocile": true}
  ]
}`)
	doc, err := Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Pets) != 1 {
		t.Fatalf("len(pets) = %d, want 1", len(doc.Pets))
	}
	want := models.Pet{ID: "a1", Name: "Rex", Type: "Dog", Age: 3, Weight: 12.5, CaregiverName: "Ana", IsDocile: true}
	if doc.Pets[0] != want {
		t.Errorf("pet = %+v, want %+v", doc.Pets[0], want)
	}
}

func TestParse_YAMLSeed(t *testing.T) {
	input := []byte("pets:\n  - id: b2\n    name: Tom\n    type: Cat\n    age: 5\n    weight: 4\n    caregiverName: Bo\n    isDocile: false\n")
	doc, err := Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Pets) != 1 || doc.Pets[0].Name != "Tom" || doc.Pets[0].IsDocile {
		t.Errorf("pets = %+v", doc.Pets)
	}
}

func TestParse_Empty(t *testing.T) {
	for _, input := range []string{"", "  \n", "{}"} {
		doc, err := Parse([]byte(input))
		if err != nil {
			t.Fatalf("Parse(%q): %v", input, err)
		}
		if doc.Pets == nil || len(doc.Pets) != 0 {
			t.Errorf("Parse(%q) pets = %v, want empty non-nil", input, doc.Pets)
		}
	}
}

func TestParse_MissingID(t *testing.T) {
	_, err := Parse([]byte(`{"pets":[{"name":"Rex"}]}`))
	if !errors.Is(err, apperr.ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}

func TestParse_DuplicateID(t *testing.T) {
	_, err := Parse([]byte(`{"pets":[{"id":"x","name":"A"},{"id":"x","name":"B"}]}`))
	if !errors.Is(err, apperr.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
	if !strings.Contains(err.Error(), `"x"`) {
		t.Errorf("error does not name the id: %v", err)
	}
}

func TestParse_Malformed(t *testing.T) {
	if _, err := Parse([]byte(`{"pets": [`)); err == nil {
		t.Error("expected error for malformed input")
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	doc := &Document{Pets: []models.Pet{
		{ID: "a1", Name: "Rex", Type: "Dog", Age: 3, Weight: 12.5, CaregiverName: "Ana", IsDocile: true},
		{ID: "b2", Name: "Tom", Type: "Cat", Age: 5, Weight: 4, CaregiverName: "Bo"},
	}}
	data, err := Encode(doc)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !strings.HasPrefix(string(data), "{\n  \"pets\": [") || !strings.HasSuffix(string(data), "}\n") {
		t.Errorf("unexpected layout:\n%s", data)
	}
	if !strings.Contains(string(data), `"caregiverName": "Ana"`) {
		t.Errorf("field names not camelCase:\n%s", data)
	}

	back, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(back.Pets) != 2 || back.Pets[0] != doc.Pets[0] || back.Pets[1] != doc.Pets[1] {
		t.Errorf("round trip = %+v", back.Pets)
	}
}

func TestEncode_NilPets(t *testing.T) {
	data, err := Encode(&Document{})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"pets": []`) {
		t.Errorf("nil pets encoded as %s", data)
	}
}

func TestDocumentIndex(t *testing.T) {
	doc := &Document{Pets: []models.Pet{{ID: "a"}, {ID: "b"}}}
	if doc.Index("b") != 1 || doc.Index("z") != -1 {
		t.Errorf("Index mismatch")
	}
}
