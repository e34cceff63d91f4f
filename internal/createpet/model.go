// Package createpet implements the create-pet page: one form, validated
// locally, submitted once, then a redirect back to the list.
package createpet

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/starford/petdesk/internal/models"
	"github.com/starford/petdesk/internal/nav"
	"github.com/starford/petdesk/internal/petform"
)

// Creator persists a new pet.
type Creator interface {
	Create(ctx context.Context, p models.Pet) (models.Pet, error)
}

// Msg is a command or effect result accepted by Model.Update.
type Msg any

// Effect is asynchronous work whose result is fed back to Update.
type Effect func(ctx context.Context) Msg

type (
	// SetField replaces the raw value of one form field.
	SetField struct {
		Field string
		Value string
	}
	Submit        struct{}
	Cancel        struct{}
	DismissNotice struct{}

	created struct {
		pet models.Pet
		err error
	}
)

// Option configures a Model.
type Option func(*Model)

// WithIDGenerator overrides uuid.NewString.
func WithIDGenerator(fn func() string) Option {
	return func(m *Model) {
		m.newID = fn
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Model) {
		m.logger = l
	}
}

// Model is the create page state. Like petlist.Model it must only be used
// from one event loop.
type Model struct {
	creator Creator
	nav     nav.Navigator
	newID   func() string
	logger  *slog.Logger

	Values     petform.Values
	Errors     petform.FieldErrors
	Submitting bool
	// Notice is the last submission failure, empty when none.
	Notice string
}

// New creates an empty create page.
func New(creator Creator, navigator nav.Navigator, opts ...Option) *Model {
	m := &Model{
		creator: creator,
		nav:     navigator,
		newID:   uuid.NewString,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Update applies msg and returns follow-up work, if any.
func (m *Model) Update(msg Msg) Effect {
	switch msg := msg.(type) {
	case SetField:
		m.Values = m.Values.Set(msg.Field, msg.Value)
	case Submit:
		return m.Submit()
	case Cancel:
		m.Cancel()
	case DismissNotice:
		m.Notice = ""
	case created:
		m.created(msg)
	}
	return nil
}

// Submit validates the form. Invalid input shows field errors and sends
// nothing; valid input is posted with a freshly generated id.
func (m *Model) Submit() Effect {
	if m.Submitting {
		return nil
	}
	in, errs := petform.Validate(m.Values)
	if errs != nil {
		m.Errors = errs
		return nil
	}
	m.Errors = nil
	m.Notice = ""
	m.Submitting = true

	pet := in.WithID(m.newID())
	creator := m.creator
	return func(ctx context.Context) Msg {
		p, err := creator.Create(ctx, pet)
		return created{pet: p, err: err}
	}
}

// Cancel leaves the page without saving.
func (m *Model) Cancel() {
	if m.Submitting {
		return
	}
	m.nav.NavigateTo(nav.RouteList, nav.Options{})
}

func (m *Model) created(msg created) {
	m.Submitting = false
	if msg.err != nil {
		m.logger.Warn("createpet: create failed", slog.String("error", msg.err.Error()))
		m.Notice = fmt.Sprintf("Could not create pet: %v", msg.err)
		return
	}
	m.logger.Info("createpet: pet created", slog.String("id", msg.pet.ID))
	m.nav.NavigateTo(nav.RouteList, nav.Options{Replace: true})
}
