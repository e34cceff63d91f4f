// Package petservice owns the db.json document behind the dev server.
package petservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/google/uuid"

	"github.com/starford/petdesk/internal/apperr"
	"github.com/starford/petdesk/internal/index"
	"github.com/starford/petdesk/internal/models"
	"github.com/starford/petdesk/internal/parser"
	"github.com/starford/petdesk/internal/petform"
	"github.com/starford/petdesk/internal/storage"
)

// Notifier receives every change the index picks up, whether it came through
// the service or from an external edit of the file.
type Notifier func(kind, id string)

// Option configures a Service.
type Option func(*Service)

// WithIDGenerator overrides the id assigned to pets created without one.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) {
		s.newID = fn
	}
}

// WithNotifier registers fn for index changes.
func WithNotifier(fn Notifier) Option {
	return func(s *Service) {
		s.notify = fn
	}
}

// WithLogger sets the service logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

// Service coordinates the file and the index. Writes go to the file first and
// are then picked up by a resync, the same path an external edit takes.
type Service struct {
	mu     sync.Mutex
	store  storage.Provider
	db     index.PetIndex
	newID  func() string
	notify Notifier
	logger *slog.Logger
}

// New creates a pet service.
func New(store storage.Provider, db index.PetIndex, opts ...Option) *Service {
	s := &Service{
		store:  store,
		db:     db,
		newID:  uuid.NewString,
		notify: func(string, string) {},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Init creates an empty document when the file is missing and indexes it.
func (s *Service) Init(ctx context.Context) error {
	s.mu.Lock()
	if _, err := s.store.Read(); errors.Is(err, os.ErrNotExist) {
		data, encErr := parser.Encode(&parser.Document{Pets: []models.Pet{}})
		if encErr != nil {
			s.mu.Unlock()
			return encErr
		}
		if err := s.store.Write(data); err != nil {
			s.mu.Unlock()
			return fmt.Errorf("petservice: init: %w", err)
		}
		s.logger.Info("petservice: created empty database", slog.String("path", s.store.Path()))
	}
	s.mu.Unlock()
	return s.Resync(ctx)
}

// Ready reports whether the database file can be read.
func (s *Service) Ready() error {
	_, err := s.store.Stat()
	return err
}

// List returns the pets matching q in file order.
func (s *Service) List(_ context.Context, q index.Query) ([]models.Pet, error) {
	return s.db.ListPets(q)
}

// Get returns the pet with the given id.
func (s *Service) Get(_ context.Context, id string) (models.Pet, error) {
	row, err := s.db.GetPet(id)
	if err != nil {
		return models.Pet{}, err
	}
	return row.Pet, nil
}

// Create appends p to the document. An empty id is replaced with a uuid.
func (s *Service) Create(ctx context.Context, p models.Pet) (models.Pet, error) {
	if err := petform.ValidateInput(p.Input()); err != nil {
		return models.Pet{}, fmt.Errorf("%w: %v", apperr.ErrInvalidInput, err)
	}
	if p.ID == "" {
		p.ID = s.newID()
	}

	err := s.mutate(ctx, func(doc *parser.Document) error {
		if doc.Index(p.ID) >= 0 {
			return fmt.Errorf("petservice: pet %q: %w", p.ID, apperr.ErrAlreadyExists)
		}
		doc.Pets = append(doc.Pets, p)
		return nil
	})
	if err != nil {
		return models.Pet{}, err
	}
	return p, nil
}

// Update replaces every field of the pet with the given id.
func (s *Service) Update(ctx context.Context, id string, in models.PetInput) (models.Pet, error) {
	if err := petform.ValidateInput(in); err != nil {
		return models.Pet{}, fmt.Errorf("%w: %v", apperr.ErrInvalidInput, err)
	}
	p := in.WithID(id)

	err := s.mutate(ctx, func(doc *parser.Document) error {
		i := doc.Index(id)
		if i < 0 {
			return fmt.Errorf("petservice: pet %q: %w", id, apperr.ErrNotFound)
		}
		doc.Pets[i] = p
		return nil
	})
	if err != nil {
		return models.Pet{}, err
	}
	return p, nil
}

// Delete removes the pet with the given id.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.mutate(ctx, func(doc *parser.Document) error {
		i := doc.Index(id)
		if i < 0 {
			return fmt.Errorf("petservice: pet %q: %w", id, apperr.ErrNotFound)
		}
		doc.Pets = append(doc.Pets[:i], doc.Pets[i+1:]...)
		return nil
	})
}

// Resync brings the index up to date with the file and notifies every change.
// The watcher calls it after external edits.
func (s *Service) Resync(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resyncLocked()
}

func (s *Service) resyncLocked() error {
	changes, err := index.Sync(s.db, s.store, s.logger)
	if err != nil {
		return fmt.Errorf("petservice: resync: %w", err)
	}
	for _, c := range changes {
		s.notify(c.Kind, c.ID)
	}
	return nil
}

// mutate applies fn to the current document, writes it back and resyncs.
// Once the write succeeds the mutation is reported as done.
func (s *Service) mutate(_ context.Context, fn func(*parser.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.store.Read()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("petservice: read: %w", err)
	}
	doc, err := parser.Parse(data)
	if err != nil {
		return fmt.Errorf("petservice: %w", err)
	}
	if err := fn(doc); err != nil {
		return err
	}

	out, err := parser.Encode(doc)
	if err != nil {
		return err
	}
	if err := s.store.Write(out); err != nil {
		return fmt.Errorf("petservice: write: %w", err)
	}
	// The file is the source of truth and already holds the change. A lagging
	// index is repaired by the next resync.
	if err := s.resyncLocked(); err != nil {
		s.logger.Error("index out of date after write", slog.String("error", err.Error()))
	}
	return nil
}
