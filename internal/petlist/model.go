package petlist

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/starford/petdesk/internal/models"
	"github.com/starford/petdesk/internal/petapi"
	"github.com/starford/petdesk/internal/petform"
)

// Store is the subset of the remote resource the list needs.
type Store interface {
	List(ctx context.Context, f petapi.Filter) ([]models.Pet, error)
	Update(ctx context.Context, id string, in models.PetInput) (models.Pet, error)
	Delete(ctx context.Context, id string) error
}

// TermSink receives every raw search term. A *debounce.Debouncer[string]
// satisfies it; its settled values must come back as TermSettled.
type TermSink interface {
	Set(term string)
}

// Option configures a Model.
type Option func(*Model)

// WithTermSink routes search terms through a debouncer. Without one, every
// term settles immediately.
func WithTermSink(s TermSink) Option {
	return func(m *Model) {
		m.terms = s
	}
}

// WithLogger sets the logger for failed operations.
func WithLogger(l *slog.Logger) Option {
	return func(m *Model) {
		m.logger = l
	}
}

// Model is the pet list view-model. It is not safe for concurrent use: all
// calls must come from one event loop.
type Model struct {
	store  Store
	terms  TermSink
	logger *slog.Logger
	state  State
}

// New creates a view-model backed by store.
func New(store Store, opts ...Option) *Model {
	m := &Model{
		store:  store,
		logger: slog.Default(),
		state:  initialState(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// State returns a snapshot of the current state.
func (m *Model) State() State {
	s := m.state
	s.Pets = append([]models.Pet(nil), m.state.Pets...)
	return s
}

// Update applies msg and returns the follow-up work, if any.
func (m *Model) Update(msg Msg) Effect {
	switch msg := msg.(type) {
	case Mount:
		return m.LoadAll()
	case SetTerm:
		return m.setTerm(msg.Term)
	case TermSettled:
		return m.termSettled(msg.Term)
	case SetSearchBy:
		return m.setSearchBy(msg.By)
	case ClearFilters:
		return m.ClearFilters()
	case OpenDelete:
		m.OpenDelete(msg.ID)
	case CloseDelete:
		m.CloseDelete()
	case ConfirmDelete:
		return m.ConfirmDelete()
	case OpenEdit:
		m.OpenEdit(msg.Pet)
	case CloseEdit:
		m.CloseEdit()
	case ConfirmEdit:
		return m.ConfirmEdit(msg.Values)
	case DismissNotice:
		m.state.Notice = nil
	case listLoaded:
		m.listLoaded(msg)
	case deleted:
		m.deleted(msg)
	case edited:
		m.edited(msg)
	}
	return nil
}

// LoadAll fetches the unfiltered list.
func (m *Model) LoadAll() Effect {
	return m.fetch(petapi.Filter{})
}

// Search fetches the list filtered by attr. An unrecognised attribute raises
// a warning and sends nothing.
func (m *Model) Search(term string, attr models.SearchAttribute) Effect {
	if !attr.Valid() {
		m.warn(fmt.Sprintf("Cannot search by %q", string(attr)))
		return nil
	}
	return m.fetch(petapi.Filter{Attribute: attr, Term: term})
}

func (m *Model) fetch(f petapi.Filter) Effect {
	m.state.seq++
	seq := m.state.seq
	m.state.Loading = true

	store := m.store
	return func(ctx context.Context) Msg {
		pets, err := store.List(ctx, f)
		return listLoaded{seq: seq, pets: pets, err: err}
	}
}

func (m *Model) listLoaded(msg listLoaded) {
	// Only the most recently issued request is applied.
	if msg.seq != m.state.seq {
		m.logger.Debug("petlist: discarded stale list response",
			slog.Uint64("seq", msg.seq),
			slog.Uint64("latest", m.state.seq))
		return
	}
	m.state.Loading = false
	if msg.err != nil {
		m.logger.Warn("petlist: load failed", slog.String("error", msg.err.Error()))
		m.fail("Could not load pets", msg.err)
		return
	}
	pets := msg.pets
	if pets == nil {
		pets = []models.Pet{}
	}
	m.state.Pets = pets
}

func (m *Model) setTerm(term string) Effect {
	m.state.Term = term
	return m.pushTerm(term)
}

func (m *Model) pushTerm(term string) Effect {
	if m.terms != nil {
		m.terms.Set(term)
		return nil
	}
	return func(context.Context) Msg { return TermSettled{Term: term} }
}

func (m *Model) termSettled(term string) Effect {
	// A settle for a term the user has since changed is obsolete.
	if term != m.state.Term {
		return nil
	}
	if term == "" {
		return m.LoadAll()
	}
	return m.Search(term, m.state.By)
}

func (m *Model) setSearchBy(by models.SearchAttribute) Effect {
	m.state.By = by
	if m.state.Term == "" {
		return nil
	}
	// Restarts any pending settle, so the term is searched once under the new
	// attribute.
	return m.pushTerm(m.state.Term)
}

// ClearFilters resets the attribute to name and empties the term. The empty
// term reaches LoadAll through the debounced path.
func (m *Model) ClearFilters() Effect {
	m.state.By = models.SearchByName
	if m.state.Term == "" {
		return nil
	}
	m.state.Term = ""
	return m.pushTerm("")
}

// OpenDelete opens the delete confirmation for id.
func (m *Model) OpenDelete(id string) {
	if id == "" || m.state.Dialog.Busy {
		return
	}
	m.state.Dialog = Dialog{Kind: DialogDelete, TargetID: id}
}

// CloseDelete closes the delete confirmation and clears its target.
func (m *Model) CloseDelete() {
	if m.state.Dialog.Kind == DialogDelete {
		m.state.Dialog = Dialog{}
	}
}

// ConfirmDelete deletes the pending target.
func (m *Model) ConfirmDelete() Effect {
	d := m.state.Dialog
	if d.Kind != DialogDelete || d.TargetID == "" || d.Busy {
		return nil
	}
	m.state.Dialog.Busy = true

	id := d.TargetID
	store := m.store
	return func(ctx context.Context) Msg {
		return deleted{id: id, err: store.Delete(ctx, id)}
	}
}

func (m *Model) deleted(msg deleted) {
	// The dialog closes and the target clears whether or not the server
	// confirmed; the list only changes on confirmation.
	if m.state.Dialog.Kind == DialogDelete && m.state.Dialog.TargetID == msg.id {
		m.state.Dialog = Dialog{}
	}
	if msg.err != nil {
		m.logger.Warn("petlist: delete failed", slog.String("id", msg.id), slog.String("error", msg.err.Error()))
		m.fail("Could not delete pet", msg.err)
		return
	}
	kept := make([]models.Pet, 0, len(m.state.Pets))
	for _, p := range m.state.Pets {
		if p.ID != msg.id {
			kept = append(kept, p)
		}
	}
	m.state.Pets = kept
}

// OpenEdit opens the edit form pre-populated from pet.
func (m *Model) OpenEdit(pet models.Pet) {
	if pet.ID == "" || m.state.Dialog.Busy {
		return
	}
	p := pet
	m.state.Dialog = Dialog{Kind: DialogEdit, Pet: &p, Defaults: petform.FromPet(pet)}
}

// CloseEdit closes the edit form, clearing its target and field errors.
func (m *Model) CloseEdit() {
	if m.state.Dialog.Kind == DialogEdit {
		m.state.Dialog = Dialog{}
	}
}

// ConfirmEdit validates values and, if they pass, replaces every field of the
// edited pet except its id.
func (m *Model) ConfirmEdit(values petform.Values) Effect {
	d := m.state.Dialog
	if d.Kind != DialogEdit || d.Pet == nil || d.Busy {
		return nil
	}

	in, errs := petform.Validate(values)
	if errs != nil {
		m.state.Dialog.Defaults = values
		m.state.Dialog.Errors = errs
		return nil
	}
	m.state.Dialog.Errors = nil
	m.state.Dialog.Busy = true

	id := d.Pet.ID
	store := m.store
	return func(ctx context.Context) Msg {
		_, err := store.Update(ctx, id, in)
		return edited{id: id, in: in, err: err}
	}
}

func (m *Model) edited(msg edited) {
	open := m.state.Dialog.Kind == DialogEdit && m.state.Dialog.Pet != nil && m.state.Dialog.Pet.ID == msg.id
	if msg.err != nil {
		if open {
			m.state.Dialog.Busy = false
		}
		m.logger.Warn("petlist: edit failed", slog.String("id", msg.id), slog.String("error", msg.err.Error()))
		m.fail("Could not save pet", msg.err)
		return
	}

	pets := make([]models.Pet, len(m.state.Pets))
	for i, p := range m.state.Pets {
		if p.ID == msg.id {
			p = msg.in.WithID(msg.id)
		}
		pets[i] = p
	}
	m.state.Pets = pets
	if open {
		m.state.Dialog = Dialog{}
	}
}

func (m *Model) warn(text string) {
	m.state.Notice = &Notice{Level: NoticeWarning, Text: text}
}

func (m *Model) fail(text string, err error) {
	m.state.Notice = &Notice{Level: NoticeError, Text: fmt.Sprintf("%s: %v", text, err)}
}
