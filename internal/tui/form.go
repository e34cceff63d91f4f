package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/starford/petdesk/internal/petform"
)

var fieldLabels = map[string]string{
	petform.FieldName:          "Name",
	petform.FieldType:          "Type",
	petform.FieldAge:           "Age",
	petform.FieldWeight:        "Weight",
	petform.FieldIsDocile:      "Docile",
	petform.FieldCaregiverName: "Caregiver Name",
}

var docileOptions = []SelectOption{
	{Label: "Yes", Value: "true"},
	{Label: "No", Value: "false"},
}

// Form is the six-field pet form shared by the create page and the edit
// dialog. tab and shift+tab move between fields.
type Form struct {
	keys     []string
	controls []control
	focus    int
}

// NewForm builds a form pre-populated with values.
func NewForm(values petform.Values, styles Styles) *Form {
	f := &Form{}
	for _, key := range petform.Fields {
		var c control
		if key == petform.FieldIsDocile {
			c = NewSelect(fieldLabels[key], "Select an option", docileOptions, values.Get(key), styles)
		} else {
			c = NewField(fieldLabels[key], values.Get(key), styles)
		}
		f.keys = append(f.keys, key)
		f.controls = append(f.controls, c)
	}
	f.controls[0].Focus()
	return f
}

// Values returns the raw content of every field.
func (f *Form) Values() petform.Values {
	var v petform.Values
	for i, key := range f.keys {
		v = v.Set(key, f.controls[i].Value())
	}
	return v
}

// SetErrors shows errs next to their fields and clears the rest.
func (f *Form) SetErrors(errs petform.FieldErrors) {
	for i, key := range f.keys {
		f.controls[i].SetError(errs.Get(key))
	}
}

// SetPlaceholders shows values as hints in the text fields, so a cleared
// field still tells what it held.
func (f *Form) SetPlaceholders(values petform.Values) {
	for i, key := range f.keys {
		if fld, ok := f.controls[i].(*Field); ok {
			fld.SetPlaceholder(values.Get(key))
		}
	}
}

// Focused returns the key of the focused field.
func (f *Form) Focused() string {
	return f.keys[f.focus]
}

func (f *Form) move(delta int) tea.Cmd {
	f.controls[f.focus].Blur()
	f.focus = (f.focus + delta + len(f.controls)) % len(f.controls)
	return f.controls[f.focus].Focus()
}

// Update handles focus movement and forwards everything else to the focused
// control.
func (f *Form) Update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "down":
			return f.move(1)
		case "shift+tab", "up":
			return f.move(-1)
		}
	}
	return f.controls[f.focus].Update(msg)
}

func (f *Form) View() string {
	rows := make([]string, len(f.controls))
	for i, c := range f.controls {
		rows[i] = c.View()
	}
	return strings.Join(rows, "\n\n")
}
