package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NewRouter creates a chi router serving the /pets resource.
// events, if non-nil, is mounted at GET /events.
func NewRouter(svc PetService, events http.Handler) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.Use(CORS())

	r.Get("/pets", h.ListPets)
	r.Post("/pets", h.CreatePet)
	r.Get("/pets/{id}", h.GetPet)
	r.Put("/pets/{id}", h.UpdatePet)
	r.Delete("/pets/{id}", h.DeletePet)

	if events != nil {
		r.Get("/events", events.ServeHTTP)
	}

	return r
}
