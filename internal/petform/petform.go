// Package petform validates raw pet form input.
//
// Validation is synchronous and total: every call returns either a complete
// models.PetInput or a non-empty FieldErrors map keyed by JSON field name.
package petform

import (
	"errors"
	"math"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/petdesk/internal/models"
)

// Field names, matching the JSON keys of a pet.
const (
	FieldName          = "name"
	FieldType          = "type"
	FieldAge           = "age"
	FieldWeight        = "weight"
	FieldCaregiverName = "caregiverName"
	FieldIsDocile      = "isDocile"
)

// Fields lists every form field in display order.
var Fields = []string{FieldName, FieldType, FieldAge, FieldWeight, FieldIsDocile, FieldCaregiverName}

// Values holds the raw text of each form field as typed by the user.
// IsDocile is "true", "false" or empty when no option was selected.
type Values struct {
	Name          string `json:"name"`
	Type          string `json:"type"`
	Age           string `json:"age"`
	Weight        string `json:"weight"`
	CaregiverName string `json:"caregiverName"`
	IsDocile      string `json:"isDocile"`
}

// Get returns the raw value of the named field.
func (v Values) Get(field string) string {
	switch field {
	case FieldName:
		return v.Name
	case FieldType:
		return v.Type
	case FieldAge:
		return v.Age
	case FieldWeight:
		return v.Weight
	case FieldCaregiverName:
		return v.CaregiverName
	case FieldIsDocile:
		return v.IsDocile
	}
	return ""
}

// Set returns a copy of v with the named field replaced.
func (v Values) Set(field, value string) Values {
	switch field {
	case FieldName:
		v.Name = value
	case FieldType:
		v.Type = value
	case FieldAge:
		v.Age = value
	case FieldWeight:
		v.Weight = value
	case FieldCaregiverName:
		v.CaregiverName = value
	case FieldIsDocile:
		v.IsDocile = value
	}
	return v
}

// FromPet returns form defaults pre-populated from p.
func FromPet(p models.Pet) Values {
	return Values{
		Name:          p.Name,
		Type:          p.Type,
		Age:           strconv.FormatFloat(p.Age, 'f', -1, 64),
		Weight:        strconv.FormatFloat(p.Weight, 'f', -1, 64),
		CaregiverName: p.CaregiverName,
		IsDocile:      strconv.FormatBool(p.IsDocile),
	}
}

// FieldErrors maps a field name to its error message.
type FieldErrors map[string]string

// Get returns the message for field, or empty string.
func (e FieldErrors) Get(field string) string {
	return e[field]
}

func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, f := range Fields {
		if msg, ok := e[f]; ok {
			parts = append(parts, f+": "+msg)
		}
	}
	return strings.Join(parts, "; ")
}

// Validate checks raw form values and converts them to a PetInput.
// On failure the returned FieldErrors is non-nil and the PetInput is zero.
func Validate(v Values) (models.PetInput, FieldErrors) {
	v = trimmed(v)

	err := validation.ValidateStruct(&v,
		validation.Field(&v.Name, validation.Required.Error("Name is required")),
		validation.Field(&v.Type, validation.Required.Error("Type is required")),
		validation.Field(&v.Age,
			validation.Required.Error("Age is required"),
			validation.By(number("Age")),
		),
		validation.Field(&v.Weight,
			validation.Required.Error("Weight is required"),
			validation.By(number("Weight")),
		),
		validation.Field(&v.CaregiverName, validation.Required.Error("Caregiver name is required")),
		validation.Field(&v.IsDocile,
			validation.Required.Error("You must select an option"),
			validation.In("true", "false").Error("You must select an option"),
		),
	)
	if err != nil {
		return models.PetInput{}, toFieldErrors(err)
	}

	age, _ := strconv.ParseFloat(v.Age, 64)
	weight, _ := strconv.ParseFloat(v.Weight, 64)
	return models.PetInput{
		Name:          v.Name,
		Type:          v.Type,
		Age:           age,
		Weight:        weight,
		CaregiverName: v.CaregiverName,
		IsDocile:      v.IsDocile == "true",
	}, nil
}

// ValidateInput checks an already-typed input, as received by the REST API.
func ValidateInput(in models.PetInput) error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required.Error("Name is required")),
		validation.Field(&in.Type, validation.Required.Error("Type is required")),
		validation.Field(&in.Age, validation.Min(0.0).Error("Age must not be negative")),
		validation.Field(&in.Weight, validation.Min(0.0).Error("Weight must not be negative")),
		validation.Field(&in.CaregiverName, validation.Required.Error("Caregiver name is required")),
	)
}

// number returns a rule accepting finite, non-negative decimal text.
func number(label string) validation.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(string)
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return errors.New(label + " must be a number")
		}
		if f < 0 {
			return errors.New(label + " must not be negative")
		}
		return nil
	}
}

func trimmed(v Values) Values {
	return Values{
		Name:          strings.TrimSpace(v.Name),
		Type:          strings.TrimSpace(v.Type),
		Age:           strings.TrimSpace(v.Age),
		Weight:        strings.TrimSpace(v.Weight),
		CaregiverName: strings.TrimSpace(v.CaregiverName),
		IsDocile:      strings.TrimSpace(v.IsDocile),
	}
}

func toFieldErrors(err error) FieldErrors {
	out := FieldErrors{}
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		for field, ferr := range verrs {
			out[field] = ferr.Error()
		}
		return out
	}
	// Internal rule failure; surface it on every field rather than dropping it.
	for _, f := range Fields {
		out[f] = err.Error()
	}
	return out
}
