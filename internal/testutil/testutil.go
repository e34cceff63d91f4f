// Package testutil provides shared test helpers for the dev server packages.
package testutil

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/starford/petdesk/internal/index"
	"github.com/starford/petdesk/internal/models"
	"github.com/starford/petdesk/internal/parser"
	"github.com/starford/petdesk/internal/petservice"
	"github.com/starford/petdesk/internal/storage"
)

// Logger discards everything.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestDB creates a temporary SQLite database that is automatically cleaned up.
func TestDB(t *testing.T) *index.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "petdesk-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := index.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestStore creates a db.json in a temporary directory seeded with pets.
func TestStore(t *testing.T, pets ...models.Pet) *storage.File {
	t.Helper()
	store, err := storage.NewFile(filepath.Join(t.TempDir(), "db.json"))
	if err != nil {
		t.Fatal(err)
	}
	data, err := parser.Encode(&parser.Document{Pets: pets})
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Write(data); err != nil {
		t.Fatal(err)
	}
	return store
}

// TestService wires a store, an index and a service around pets.
func TestService(t *testing.T, pets []models.Pet, opts ...petservice.Option) (*petservice.Service, *storage.File) {
	t.Helper()
	store := TestStore(t, pets...)
	opts = append([]petservice.Option{petservice.WithLogger(Logger())}, opts...)
	svc := petservice.New(store, TestDB(t), opts...)
	if err := svc.Init(context.Background()); err != nil {
		t.Fatal(err)
	}
	return svc, store
}

// Seed pets shared by the dev server tests.
var (
	Rex  = models.Pet{ID: "a1", Name: "Rex", Type: "Dog", Age: 3, Weight: 12.5, CaregiverName: "Ana", IsDocile: true}
	Tom  = models.Pet{ID: "b2", Name: "Tom", Type: "Cat", Age: 5, Weight: 4, CaregiverName: "Bo"}
	Kiko = models.Pet{ID: "c3", Name: "Kiko", Type: "Bird", Age: 1, Weight: 0.2, CaregiverName: "Ana", IsDocile: true}
)
