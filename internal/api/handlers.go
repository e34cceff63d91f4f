package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/starford/petdesk/internal/apperr"
	"github.com/starford/petdesk/internal/index"
)

// Handler holds API route handlers.
type Handler struct {
	svc PetService
}

// NewHandler creates a new Handler.
func NewHandler(svc PetService) *Handler {
	return &Handler{svc: svc}
}

// listQuery turns the query string into an index query. q is a full-text
// match; parameters starting with "_" are json-server options and ignored;
// everything else is an exact field match.
func listQuery(r *http.Request) index.Query {
	q := index.Query{Equals: map[string]string{}}
	for key, values := range r.URL.Query() {
		switch {
		case key == "q":
			q.Q = values[0]
		case strings.HasPrefix(key, "_"):
		default:
			q.Equals[key] = values[0]
		}
	}
	return q
}

// writeError maps service errors onto status codes.
func writeError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
	case errors.Is(err, apperr.ErrAlreadyExists):
		writeJSON(w, http.StatusConflict, errorBody("pet already exists"))
	case errors.Is(err, apperr.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
	default:
		slog.Error(op+" failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
	}
}

// ListPets handles GET /pets.
//
//	@Summary		List pets, optionally filtered
//	@Tags			pets
//	@Produce		json
//	@Param			name			query		string	false	"Exact name"
//	@Param			type			query		string	false	"Exact type"
//	@Param			caregiverName	query		string	false	"Exact caregiver name"
//	@Param			q				query		string	false	"Full-text match"
//	@Success		200				{array}		Pet
//	@Failure		400				{object}	errResponse
//	@Router			/pets [get]
func (h *Handler) ListPets(w http.ResponseWriter, r *http.Request) {
	pets, err := h.svc.List(r.Context(), listQuery(r))
	if err != nil {
		writeError(w, "list pets", err)
		return
	}
	writeJSON(w, http.StatusOK, pets)
}

// GetPet handles GET /pets/{id}.
//
//	@Summary		Get a single pet
//	@Tags			pets
//	@Produce		json
//	@Param			id	path		string	true	"Pet id"
//	@Success		200	{object}	Pet
//	@Failure		404	{object}	errResponse
//	@Router			/pets/{id} [get]
func (h *Handler) GetPet(w http.ResponseWriter, r *http.Request) {
	pet, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, "get pet", err)
		return
	}
	writeJSON(w, http.StatusOK, pet)
}

// CreatePet handles POST /pets.
//
//	@Summary		Create a pet
//	@Tags			pets
//	@Accept			json
//	@Produce		json
//	@Param			body	body		CreatePetRequest	true	"Pet to create"
//	@Success		201		{object}	Pet
//	@Failure		400		{object}	errResponse
//	@Failure		409		{object}	errResponse
//	@Router			/pets [post]
func (h *Handler) CreatePet(w http.ResponseWriter, r *http.Request) {
	var req CreatePetRequest
	if !readJSON(w, r, &req) {
		return
	}
	pet, err := h.svc.Create(r.Context(), req.pet())
	if err != nil {
		writeError(w, "create pet", err)
		return
	}
	writeJSON(w, http.StatusCreated, pet)
}

// UpdatePet handles PUT /pets/{id}.
//
//	@Summary		Replace a pet
//	@Tags			pets
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"Pet id"
//	@Param			body	body		UpdatePetRequest	true	"Every field but the id"
//	@Success		200		{object}	Pet
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Router			/pets/{id} [put]
func (h *Handler) UpdatePet(w http.ResponseWriter, r *http.Request) {
	var req UpdatePetRequest
	if !readJSON(w, r, &req) {
		return
	}
	pet, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeError(w, "update pet", err)
		return
	}
	writeJSON(w, http.StatusOK, pet)
}

// DeletePet handles DELETE /pets/{id}.
//
//	@Summary		Delete a pet
//	@Tags			pets
//	@Param			id	path	string	true	"Pet id"
//	@Success		204	"Pet deleted"
//	@Failure		404	{object}	errResponse
//	@Router			/pets/{id} [delete]
func (h *Handler) DeletePet(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, "delete pet", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
