package api

import (
	"context"

	"github.com/starford/petdesk/internal/index"
	"github.com/starford/petdesk/internal/models"
)

// PetService is the store behind the handlers. *petservice.Service
// satisfies it.
type PetService interface {
	List(ctx context.Context, q index.Query) ([]models.Pet, error)
	Get(ctx context.Context, id string) (models.Pet, error)
	Create(ctx context.Context, p models.Pet) (models.Pet, error)
	Update(ctx context.Context, id string, in models.PetInput) (models.Pet, error)
	Delete(ctx context.Context, id string) error
}

// Pet is the resource representation (aliased from the domain layer).
type Pet = models.Pet

// CreatePetRequest is the body of POST /pets. The id is optional.
type CreatePetRequest struct {
	ID            string  `json:"id,omitempty" example:"6f1c2e0a-3b7d-4c55-9a1e-2f6d8b0c4e11"`
	Name          string  `json:"name" example:"Rex" validate:"required"`
	Type          string  `json:"type" example:"Dog" validate:"required"`
	Age           float64 `json:"age" example:"3"`
	Weight        float64 `json:"weight" example:"12.5"`
	CaregiverName string  `json:"caregiverName" example:"Ana" validate:"required"`
	IsDocile      bool    `json:"isDocile" example:"true"`
}

func (r CreatePetRequest) pet() models.Pet {
	return models.Pet{
		ID:            r.ID,
		Name:          r.Name,
		Type:          r.Type,
		Age:           r.Age,
		Weight:        r.Weight,
		CaregiverName: r.CaregiverName,
		IsDocile:      r.IsDocile,
	}
}

// UpdatePetRequest is the body of PUT /pets/{id}: every field but the id.
type UpdatePetRequest = models.PetInput
