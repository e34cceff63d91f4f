// Package models defines the domain types for Petdesk.
package models

// Pet is one animal record as exchanged with the /pets resource.
type Pet struct {
	ID            string  `json:"id" yaml:"id"`
	Name          string  `json:"name" yaml:"name"`
	Type          string  `json:"type" yaml:"type"`
	Age           float64 `json:"age" yaml:"age"`
	Weight        float64 `json:"weight" yaml:"weight"`
	CaregiverName string  `json:"caregiverName" yaml:"caregiverName"`
	IsDocile      bool    `json:"isDocile" yaml:"isDocile"`
}

// Input returns every field of the pet except its id.
func (p Pet) Input() PetInput {
	return PetInput{
		Name:          p.Name,
		Type:          p.Type,
		Age:           p.Age,
		Weight:        p.Weight,
		CaregiverName: p.CaregiverName,
		IsDocile:      p.IsDocile,
	}
}

// PetInput is the full replacement field set of a pet (everything but the id).
// It is the body of PUT /pets/{id} and the result of form validation.
type PetInput struct {
	Name          string  `json:"name"`
	Type          string  `json:"type"`
	Age           float64 `json:"age"`
	Weight        float64 `json:"weight"`
	CaregiverName string  `json:"caregiverName"`
	IsDocile      bool    `json:"isDocile"`
}

// WithID builds a Pet from the input and the given id.
func (in PetInput) WithID(id string) Pet {
	return Pet{
		ID:            id,
		Name:          in.Name,
		Type:          in.Type,
		Age:           in.Age,
		Weight:        in.Weight,
		CaregiverName: in.CaregiverName,
		IsDocile:      in.IsDocile,
	}
}

// SearchAttribute names the single pet attribute a search filters on.
type SearchAttribute string

// Recognised search attributes.
const (
	SearchByName          SearchAttribute = "name"
	SearchByCaregiverName SearchAttribute = "caregiverName"
	SearchByType          SearchAttribute = "type"
)

// SearchAttributes lists the recognised attributes in selector order.
var SearchAttributes = []SearchAttribute{SearchByName, SearchByCaregiverName, SearchByType}

// Valid reports whether a is one of the recognised attributes.
func (a SearchAttribute) Valid() bool {
	switch a {
	case SearchByName, SearchByCaregiverName, SearchByType:
		return true
	}
	return false
}

// Label is the human-readable name used in selectors.
func (a SearchAttribute) Label() string {
	switch a {
	case SearchByName:
		return "Name"
	case SearchByCaregiverName:
		return "Caregiver name"
	case SearchByType:
		return "Type"
	}
	return string(a)
}

// Next returns the attribute after a in selector order, wrapping around.
func (a SearchAttribute) Next() SearchAttribute {
	for i, attr := range SearchAttributes {
		if attr == a {
			return SearchAttributes[(i+1)%len(SearchAttributes)]
		}
	}
	return SearchByName
}
