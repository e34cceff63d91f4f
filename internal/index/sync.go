package index

import (
	"errors"
	"log/slog"
	"os"
	"sort"

	"github.com/starford/petdesk/internal/checksum"
	"github.com/starford/petdesk/internal/parser"
	"github.com/starford/petdesk/internal/storage"
)

// Change kinds reported by Sync.
const (
	ChangeCreated = "created"
	ChangeUpdated = "updated"
	ChangeDeleted = "deleted"
)

// Change is one pet whose indexed state changed during a Sync.
type Change struct {
	Kind string
	ID   string
}

// Sync reads the database file and brings the index up to date:
//   - new/changed pets are upserted
//   - pets removed from the file are deleted from the index
//
// A pet that only moved within the file is re-positioned without a Change.
// A missing file is treated as empty. A file that fails to parse leaves the
// index untouched.
func Sync(db PetIndex, store storage.Provider, logger *slog.Logger) ([]Change, error) {
	data, err := store.Read()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	doc, err := parser.Parse(data)
	if err != nil {
		return nil, err
	}

	existing, err := db.AllMeta()
	if err != nil {
		return nil, err
	}

	var changes []Change
	onDisk := make(map[string]struct{}, len(doc.Pets))
	for pos, p := range doc.Pets {
		onDisk[p.ID] = struct{}{}
		cs := checksum.Pet(p)

		meta, known := existing[p.ID]
		if known && meta.Checksum == cs && meta.Position == pos {
			continue
		}
		if err := db.UpsertPet(PetRow{Pet: p, Position: pos, Checksum: cs}); err != nil {
			logger.Warn("sync: index failed", slog.String("id", p.ID), slog.String("error", err.Error()))
			continue
		}
		switch {
		case !known:
			changes = append(changes, Change{Kind: ChangeCreated, ID: p.ID})
		case meta.Checksum != cs:
			changes = append(changes, Change{Kind: ChangeUpdated, ID: p.ID})
		}
		logger.Debug("sync: indexed", slog.String("id", p.ID))
	}

	// Remove stale entries.
	var stale []string
	for id := range existing {
		if _, ok := onDisk[id]; !ok {
			stale = append(stale, id)
		}
	}
	sort.Strings(stale)
	for _, id := range stale {
		if err := db.DeletePet(id); err != nil {
			logger.Warn("sync: delete failed", slog.String("id", id), slog.String("error", err.Error()))
			continue
		}
		logger.Debug("sync: removed stale", slog.String("id", id))
		changes = append(changes, Change{Kind: ChangeDeleted, ID: id})
	}

	return changes, nil
}
