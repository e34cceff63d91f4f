package createpet

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/starford/petdesk/internal/models"
	"github.com/starford/petdesk/internal/nav"
	"github.com/starford/petdesk/internal/petform"
)

type fakeCreator struct {
	got []models.Pet
	err error
}

func (f *fakeCreator) Create(_ context.Context, p models.Pet) (models.Pet, error) {
	f.got = append(f.got, p)
	if f.err != nil {
		return models.Pet{}, f.err
	}
	return p, nil
}

type navCall struct {
	path string
	opts nav.Options
}

type fakeNav struct {
	calls []navCall
}

func (f *fakeNav) NavigateTo(path string, opts nav.Options) {
	f.calls = append(f.calls, navCall{path, opts})
}

func newModel(c Creator, n nav.Navigator) *Model {
	return New(c, n,
		WithIDGenerator(func() string { return "id-1" }),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
}

func fill(m *Model) {
	for field, v := range map[string]string{
		petform.FieldName:          "Rex",
		petform.FieldType:          "Dog",
		petform.FieldAge:           "3",
		petform.FieldWeight:        "12.5",
		petform.FieldCaregiverName: "Ana",
		petform.FieldIsDocile:      "true",
	} {
		m.Update(SetField{Field: field, Value: v})
	}
}

func run(m *Model, eff Effect) {
	for eff != nil {
		eff = m.Update(eff(context.Background()))
	}
}

func TestSubmit_CreatesAndRedirects(t *testing.T) {
	c := &fakeCreator{}
	n := &fakeNav{}
	m := newModel(c, n)
	fill(m)

	eff := m.Update(Submit{})
	if eff == nil {
		t.Fatal("valid form returned no effect")
	}
	if !m.Submitting {
		t.Error("submitting flag not set")
	}
	run(m, eff)

	want := models.Pet{ID: "id-1", Name: "Rex", Type: "Dog", Age: 3, Weight: 12.5, CaregiverName: "Ana", IsDocile: true}
	if len(c.got) != 1 || c.got[0] != want {
		t.Errorf("created = %+v, want %+v", c.got, want)
	}
	if len(n.calls) != 1 || n.calls[0].path != nav.RouteList || !n.calls[0].opts.Replace {
		t.Errorf("navigation = %+v, want replace to /", n.calls)
	}
	if m.Submitting {
		t.Error("submitting flag still set")
	}
}

func TestSubmit_InvalidShowsErrors(t *testing.T) {
	c := &fakeCreator{}
	n := &fakeNav{}
	m := newModel(c, n)
	fill(m)
	m.Update(SetField{Field: petform.FieldAge, Value: "three"})
	m.Update(SetField{Field: petform.FieldIsDocile, Value: ""})

	if eff := m.Update(Submit{}); eff != nil {
		t.Fatal("invalid form returned an effect")
	}
	if m.Errors.Get(petform.FieldAge) != "Age must be a number" {
		t.Errorf("age error = %q", m.Errors.Get(petform.FieldAge))
	}
	if m.Errors.Get(petform.FieldIsDocile) != "You must select an option" {
		t.Errorf("isDocile error = %q", m.Errors.Get(petform.FieldIsDocile))
	}
	if len(c.got) != 0 || len(n.calls) != 0 {
		t.Error("invalid form reached the server or navigated")
	}
}

func TestSubmit_FailureStaysOnPage(t *testing.T) {
	c := &fakeCreator{err: errors.New("connection refused")}
	n := &fakeNav{}
	m := newModel(c, n)
	fill(m)

	run(m, m.Update(Submit{}))

	if len(n.calls) != 0 {
		t.Errorf("navigated after failure: %+v", n.calls)
	}
	if m.Submitting {
		t.Error("submitting flag still set")
	}
	if m.Notice == "" {
		t.Error("no notice after failure")
	}
	if m.Values.Name != "Rex" {
		t.Error("form values lost after failure")
	}
	if len(c.got) != 1 {
		t.Errorf("create calls = %d, want 1 (no retry)", len(c.got))
	}
}

func TestSubmit_FreshIDPerSubmission(t *testing.T) {
	c := &fakeCreator{err: errors.New("down")}
	ids := []string{"first", "second"}
	m := New(c, &fakeNav{}, WithIDGenerator(func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}), WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	fill(m)

	run(m, m.Update(Submit{}))
	run(m, m.Update(Submit{}))

	if len(c.got) != 2 || c.got[0].ID != "first" || c.got[1].ID != "second" {
		t.Errorf("ids = %+v", c.got)
	}
}

func TestCancel_NavigatesWithoutReplace(t *testing.T) {
	n := &fakeNav{}
	m := newModel(&fakeCreator{}, n)

	m.Update(Cancel{})

	if len(n.calls) != 1 || n.calls[0].path != nav.RouteList || n.calls[0].opts.Replace {
		t.Errorf("navigation = %+v", n.calls)
	}
}

func TestDefaultIDIsUUID(t *testing.T) {
	c := &fakeCreator{}
	m := New(c, &fakeNav{}, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	fill(m)
	run(m, m.Update(Submit{}))

	if len(c.got) != 1 || len(c.got[0].ID) != 36 {
		t.Errorf("generated id = %+v", c.got)
	}
}
