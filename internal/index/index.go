package index

import "github.com/starford/petdesk/internal/models"

// PetIndex is the query side of the pet store. Sync and the pet service
// only need this much of *DB.
type PetIndex interface {
	UpsertPet(r PetRow) error
	DeletePet(id string) error
	GetPet(id string) (*PetRow, error)
	ListPets(q Query) ([]models.Pet, error)
	AllMeta() (map[string]RowMeta, error)
}

var _ PetIndex = (*DB)(nil)
