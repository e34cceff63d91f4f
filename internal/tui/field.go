package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// control is one focusable row of a form.
type control interface {
	Value() string
	SetError(msg string)
	Focus() tea.Cmd
	Blur()
	Update(msg tea.Msg) tea.Cmd
	View() string
}

// Field is a labeled text input that shows its validation error below the
// value. It holds no validation logic of its own.
type Field struct {
	label  string
	input  textinput.Model
	err    string
	styles Styles
}

// NewField creates a field with an initial value.
func NewField(label, value string, styles Styles) *Field {
	in := textinput.New()
	in.Prompt = "> "
	in.CharLimit = 120
	in.Width = 40
	in.SetValue(value)
	return &Field{label: label, input: in, styles: styles}
}

func (f *Field) Value() string { return f.input.Value() }
func (f *Field) SetError(msg string) { f.err = msg }
func (f *Field) Focus() tea.Cmd { return f.input.Focus() }
func (f *Field) Blur() { f.input.Blur() }

// SetPlaceholder sets the hint shown while the field is empty.
func (f *Field) SetPlaceholder(s string) { f.input.Placeholder = s }

// Update forwards keystrokes to the text input.
func (f *Field) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return cmd
}

func (f *Field) View() string {
	var b strings.Builder
	if f.label != "" {
		b.WriteString(f.styles.Label.Render(f.label))
		b.WriteString("\n")
	}
	b.WriteString(f.input.View())
	if f.err != "" {
		b.WriteString("\n")
		b.WriteString(f.styles.Error.Render(f.err))
	}
	return b.String()
}

// SelectOption is one choice of a Select.
type SelectOption struct {
	Label string
	Value string
}

// Select is a labeled single choice. With nothing chosen its value is empty
// and the placeholder is shown.
type Select struct {
	label       string
	placeholder string
	options     []SelectOption
	index       int
	focused     bool
	err         string
	styles      Styles
}

// NewSelect creates a select with value preselected when it matches an option.
func NewSelect(label, placeholder string, options []SelectOption, value string, styles Styles) *Select {
	s := &Select{label: label, placeholder: placeholder, options: options, index: -1, styles: styles}
	for i, o := range options {
		if o.Value == value {
			s.index = i
		}
	}
	return s
}

func (s *Select) Value() string {
	if s.index < 0 {
		return ""
	}
	return s.options[s.index].Value
}

func (s *Select) SetError(msg string) { s.err = msg }
func (s *Select) Focus() tea.Cmd {
	s.focused = true
	return nil
}

func (s *Select) Blur() { s.focused = false }

// Update moves the choice with left/right or space.
func (s *Select) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok || !s.focused || len(s.options) == 0 {
		return nil
	}
	switch key.String() {
	case "right", "l", " ":
		s.index = (s.index + 1) % len(s.options)
	case "left", "h":
		if s.index <= 0 {
			s.index = len(s.options) - 1
		} else {
			s.index--
		}
	case "backspace", "delete":
		s.index = -1
	}
	return nil
}

func (s *Select) View() string {
	var b strings.Builder
	if s.label != "" {
		b.WriteString(s.styles.Label.Render(s.label))
		b.WriteString("\n")
	}
	if s.focused {
		b.WriteString("> ")
	} else {
		b.WriteString("  ")
	}
	if s.index < 0 {
		b.WriteString(s.styles.Muted.Render(s.placeholder))
	} else {
		for i, o := range s.options {
			if i > 0 {
				b.WriteString("  ")
			}
			if i == s.index {
				b.WriteString(s.styles.Selected.Render("(•) " + o.Label))
			} else {
				b.WriteString("( ) " + o.Label)
			}
		}
	}
	if s.err != "" {
		b.WriteString("\n")
		b.WriteString(s.styles.Error.Render(s.err))
	}
	return b.String()
}
