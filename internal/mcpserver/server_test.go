package mcpserver

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/starford/petdesk/internal/models"
	"github.com/starford/petdesk/internal/petservice"
	"github.com/starford/petdesk/internal/testutil"
)

func testServer(t *testing.T, pets ...models.Pet) (*Server, *petservice.Service) {
	t.Helper()
	svc, _ := testutil.TestService(t, pets)
	return New(svc, "test"), svc
}

func callTool(t *testing.T, srv *Server, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	// mcp-go has no in-process call helper; invoke the handlers directly.
	var result *mcp.CallToolResult
	var err error

	switch name {
	case "list_pets":
		result, err = srv.listPets(ctx, req)
	case "search_pets":
		result, err = srv.searchPets(ctx, req)
	case "get_pet":
		result, err = srv.getPet(ctx, req)
	case "create_pet":
		result, err = srv.createPet(ctx, req)
	case "update_pet":
		result, err = srv.updatePet(ctx, req)
	case "delete_pet":
		result, err = srv.deletePet(ctx, req)
	case "get_pet_schema":
		result, err = srv.getPetSchema(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}

	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func resultPets(t *testing.T, r *mcp.CallToolResult) []models.Pet {
	t.Helper()
	var pets []models.Pet
	if err := json.Unmarshal([]byte(resultText(r)), &pets); err != nil {
		t.Fatalf("decode %q: %v", resultText(r), err)
	}
	return pets
}

func kikoArgs() map[string]any {
	return map[string]any{
		"id":            "c3",
		"name":          "Kiko",
		"type":          "Bird",
		"age":           1.0,
		"weight":        0.2,
		"caregiverName": "Ana",
		"isDocile":      true,
	}
}

func TestListPets(t *testing.T) {
	srv, _ := testServer(t, testutil.Rex, testutil.Tom)

	pets := resultPets(t, callTool(t, srv, "list_pets", map[string]any{}))
	if len(pets) != 2 {
		t.Errorf("pets = %+v", pets)
	}

	pets = resultPets(t, callTool(t, srv, "list_pets", map[string]any{"type": "Cat"}))
	if len(pets) != 1 || pets[0].ID != "b2" {
		t.Errorf("type=Cat: %+v", pets)
	}
}

func TestSearchPets(t *testing.T) {
	srv, _ := testServer(t, testutil.Rex, testutil.Tom)

	pets := resultPets(t, callTool(t, srv, "search_pets", map[string]any{"query": "Ana"}))
	if len(pets) != 1 || pets[0].ID != "a1" {
		t.Errorf("pets = %+v", pets)
	}

	if r := callTool(t, srv, "search_pets", map[string]any{}); !r.IsError {
		t.Error("missing query should be an error")
	}
}

func TestCreateAndGetPet(t *testing.T) {
	srv, svc := testServer(t)

	r := callTool(t, srv, "create_pet", kikoArgs())
	if r.IsError {
		t.Fatalf("create failed: %s", resultText(r))
	}

	r = callTool(t, srv, "get_pet", map[string]any{"id": "c3"})
	var got models.Pet
	if err := json.Unmarshal([]byte(resultText(r)), &got); err != nil {
		t.Fatal(err)
	}
	if got != testutil.Kiko {
		t.Errorf("pet = %+v, want %+v", got, testutil.Kiko)
	}
	if _, err := svc.Get(context.Background(), "c3"); err != nil {
		t.Errorf("service does not see the pet: %v", err)
	}
}

func TestCreatePet_MissingField(t *testing.T) {
	srv, _ := testServer(t)
	args := kikoArgs()
	delete(args, "isDocile")

	if r := callTool(t, srv, "create_pet", args); !r.IsError {
		t.Error("expected error for missing isDocile")
	}
}

func TestCreatePet_Duplicate(t *testing.T) {
	srv, _ := testServer(t, testutil.Kiko)
	r := callTool(t, srv, "create_pet", kikoArgs())
	if !r.IsError || !strings.Contains(resultText(r), "already exists") {
		t.Errorf("result = %q", resultText(r))
	}
}

func TestUpdatePet(t *testing.T) {
	srv, _ := testServer(t, testutil.Kiko)
	args := kikoArgs()
	args["name"] = "Coco"

	r := callTool(t, srv, "update_pet", args)
	if r.IsError {
		t.Fatalf("update failed: %s", resultText(r))
	}
	var got models.Pet
	_ = json.Unmarshal([]byte(resultText(r)), &got)
	if got.Name != "Coco" || got.ID != "c3" {
		t.Errorf("pet = %+v", got)
	}
}

func TestDeletePet(t *testing.T) {
	srv, _ := testServer(t, testutil.Rex)

	if r := callTool(t, srv, "delete_pet", map[string]any{"id": "a1"}); resultText(r) != "deleted: a1" {
		t.Errorf("result = %q", resultText(r))
	}
	if r := callTool(t, srv, "get_pet", map[string]any{"id": "a1"}); !r.IsError {
		t.Error("expected error for deleted pet")
	}
}

func TestGetPetSchema(t *testing.T) {
	srv, _ := testServer(t)
	if text := resultText(callTool(t, srv, "get_pet_schema", nil)); !strings.Contains(text, "caregiverName") {
		t.Errorf("schema = %q", text)
	}

	contents, err := srv.readPetSchemaResource(context.Background(), mcp.ReadResourceRequest{})
	if err != nil || len(contents) != 1 {
		t.Fatalf("resource = %v, %v", contents, err)
	}
	if tc, ok := contents[0].(mcp.TextResourceContents); !ok || tc.URI != schemaURI {
		t.Errorf("resource = %+v", contents[0])
	}
}
