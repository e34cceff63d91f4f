// Package parser decodes and encodes the pet database document (db.json).
//
// The document is read with a YAML decoder, so both the json-server JSON
// layout and hand-written YAML seed files are accepted.
package parser

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/starford/petdesk/internal/apperr"
	"github.com/starford/petdesk/internal/models"
)

// Document is the whole database file.
type Document struct {
	Pets []models.Pet `json:"pets" yaml:"pets"`
}

// Parse decodes data into a Document. Empty input yields an empty document.
// Every pet must carry a unique, non-empty id.
func Parse(data []byte) (*Document, error) {
	doc := &Document{}
	if len(bytes.TrimSpace(data)) > 0 {
		if err := yaml.Unmarshal(data, doc); err != nil {
			return nil, fmt.Errorf("parser: decode: %w", err)
		}
	}
	if doc.Pets == nil {
		doc.Pets = []models.Pet{}
	}

	seen := make(map[string]int, len(doc.Pets))
	for i, p := range doc.Pets {
		if p.ID == "" {
			return nil, fmt.Errorf("parser: pet at position %d: %w: missing id", i, apperr.ErrInvalidInput)
		}
		if j, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("parser: pets at positions %d and %d: %w: duplicate id %q", j, i, apperr.ErrInvalidInput, p.ID)
		}
		seen[p.ID] = i
	}
	return doc, nil
}

// Encode renders doc in the json-server layout: two-space indented JSON with
// a trailing newline.
func Encode(doc *Document) ([]byte, error) {
	out := Document{Pets: doc.Pets}
	if out.Pets == nil {
		out.Pets = []models.Pet{}
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("parser: encode: %w", err)
	}
	return append(data, '\n'), nil
}

// Index returns the position of the pet with the given id, or -1.
func (d *Document) Index(id string) int {
	for i, p := range d.Pets {
		if p.ID == id {
			return i
		}
	}
	return -1
}
