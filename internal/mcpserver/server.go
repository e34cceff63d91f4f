// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes the pet store as tools over stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/petdesk/internal/index"
	"github.com/starford/petdesk/internal/models"
)

const schemaURI = "petdesk://pet-schema"

// Store is the pet store behind the tools. *petservice.Service satisfies it.
type Store interface {
	List(ctx context.Context, q index.Query) ([]models.Pet, error)
	Get(ctx context.Context, id string) (models.Pet, error)
	Create(ctx context.Context, p models.Pet) (models.Pet, error)
	Update(ctx context.Context, id string, in models.PetInput) (models.Pet, error)
	Delete(ctx context.Context, id string) error
}

// Server wraps the MCP server with the pet tools.
type Server struct {
	mcp   *server.MCPServer
	store Store
}

// New creates a new MCP server with all pet tools registered.
func New(store Store, version string) *Server {
	s := &Server{store: store}

	s.mcp = server.NewMCPServer(
		"Petdesk",
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_pets",
		mcp.WithDescription("List pets in file order. Optional filters are exact, case-sensitive matches."),
		mcp.WithString("name", mcp.Description("Exact pet name")),
		mcp.WithString("type", mcp.Description("Exact pet type, e.g. Dog")),
		mcp.WithString("caregiverName", mcp.Description("Exact caregiver name")),
	), s.listPets)

	s.mcp.AddTool(mcp.NewTool("search_pets",
		mcp.WithDescription("Full-text search over pet name, type and caregiver name."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
	), s.searchPets)

	s.mcp.AddTool(mcp.NewTool("get_pet",
		mcp.WithDescription("Read a single pet by id."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Pet id")),
	), s.getPet)

	s.mcp.AddTool(mcp.NewTool("create_pet",
		mcp.WithDescription("Create a pet. Read the schema first via get_pet_schema or the "+
			schemaURI+" resource."),
		mcp.WithString("id", mcp.Description("Optional id; a UUID is assigned when empty")),
		mcp.WithString("name", mcp.Required(), mcp.Description("Pet name")),
		mcp.WithString("type", mcp.Required(), mcp.Description("Pet type, e.g. Dog")),
		mcp.WithNumber("age", mcp.Required(), mcp.Description("Age in years")),
		mcp.WithNumber("weight", mcp.Required(), mcp.Description("Weight in kilograms")),
		mcp.WithString("caregiverName", mcp.Required(), mcp.Description("Caregiver name")),
		mcp.WithBoolean("isDocile", mcp.Required(), mcp.Description("Whether the pet is docile")),
	), s.createPet)

	s.mcp.AddTool(mcp.NewTool("update_pet",
		mcp.WithDescription("Replace every field of an existing pet."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Pet id")),
		mcp.WithString("name", mcp.Required(), mcp.Description("Pet name")),
		mcp.WithString("type", mcp.Required(), mcp.Description("Pet type")),
		mcp.WithNumber("age", mcp.Required(), mcp.Description("Age in years")),
		mcp.WithNumber("weight", mcp.Required(), mcp.Description("Weight in kilograms")),
		mcp.WithString("caregiverName", mcp.Required(), mcp.Description("Caregiver name")),
		mcp.WithBoolean("isDocile", mcp.Required(), mcp.Description("Whether the pet is docile")),
	), s.updatePet)

	s.mcp.AddTool(mcp.NewTool("delete_pet",
		mcp.WithDescription("Delete a pet by id."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Pet id")),
	), s.deletePet)

	s.mcp.AddTool(mcp.NewTool("get_pet_schema",
		mcp.WithDescription("Returns the pet record schema and its rules."),
	), s.getPetSchema)

	s.mcp.AddResource(
		mcp.NewResource(schemaURI, "Pet Schema",
			mcp.WithResourceDescription("Fields and rules of a pet record."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readPetSchemaResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

// petInput reads the six editable fields.
func petInput(req mcp.CallToolRequest) (models.PetInput, error) {
	var in models.PetInput
	var err error
	if in.Name, err = req.RequireString("name"); err != nil {
		return in, err
	}
	if in.Type, err = req.RequireString("type"); err != nil {
		return in, err
	}
	if in.Age, err = req.RequireFloat("age"); err != nil {
		return in, err
	}
	if in.Weight, err = req.RequireFloat("weight"); err != nil {
		return in, err
	}
	if in.CaregiverName, err = req.RequireString("caregiverName"); err != nil {
		return in, err
	}
	if in.IsDocile, err = req.RequireBool("isDocile"); err != nil {
		return in, err
	}
	return in, nil
}

func (s *Server) listPets(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	q := index.Query{Equals: map[string]string{}}
	for _, field := range []string{"name", "type", "caregiverName"} {
		if v := req.GetString(field, ""); v != "" {
			q.Equals[field] = v
		}
	}
	pets, err := s.store.List(ctx, q)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(pets)
}

func (s *Server) searchPets(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	pets, err := s.store.List(ctx, index.Query{Q: query})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(pets)
}

func (s *Server) getPet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	pet, err := s.store.Get(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("pet %s: %v", id, err)), nil
	}
	return jsonResult(pet)
}

func (s *Server) createPet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	in, err := petInput(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	pet, err := s.store.Create(ctx, in.WithID(req.GetString("id", "")))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(pet)
}

func (s *Server) updatePet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	in, err := petInput(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	pet, err := s.store.Update(ctx, id, in)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(pet)
}

func (s *Server) deletePet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("deleted: %s", id)), nil
}

func (s *Server) getPetSchema(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(PetSchemaContract), nil
}

func (s *Server) readPetSchemaResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      schemaURI,
			MIMEType: "text/markdown",
			Text:     PetSchemaContract,
		},
	}, nil
}
