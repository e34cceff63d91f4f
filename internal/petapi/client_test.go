package petapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/starford/petdesk/internal/apperr"
	"github.com/starford/petdesk/internal/models"
)

type recorded struct {
	method string
	path   string
	query  string
	body   map[string]any
}

type recorder struct {
	mu    sync.Mutex
	calls []recorded
}

func (r *recorder) all() []recorded {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]recorded(nil), r.calls...)
}

func (r *recorder) first(t *testing.T) recorded {
	t.Helper()
	calls := r.all()
	if len(calls) == 0 {
		t.Fatal("no request recorded")
	}
	return calls[0]
}

func testClient(t *testing.T, status int, response string) (*Client, *recorder) {
	t.Helper()
	calls := &recorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recorded{method: r.Method, path: r.URL.Path, query: r.URL.RawQuery}
		if data, _ := io.ReadAll(r.Body); len(data) > 0 {
			_ = json.Unmarshal(data, &rec.body)
		}
		calls.mu.Lock()
		calls.calls = append(calls.calls, rec)
		calls.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, response)
	}))
	t.Cleanup(srv.Close)

	c, err := New(srv.URL, time.Second)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c, calls
}

func TestList_Unfiltered(t *testing.T) {
	c, calls := testClient(t, http.StatusOK, `[{"id":"A","name":"Rex","type":"Dog","age":3,"weight":10,"caregiverName":"Ana","isDocile":true}]`)

	pets, err := c.List(context.Background(), Filter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(pets) != 1 || pets[0].ID != "A" || !pets[0].IsDocile {
		t.Errorf("pets = %+v", pets)
	}
	if got := calls.first(t); got.method != http.MethodGet || got.path != "/pets" || got.query != "" {
		t.Errorf("request = %+v", got)
	}
}

func TestList_FilteredByType(t *testing.T) {
	c, calls := testClient(t, http.StatusOK, `[]`)

	pets, err := c.List(context.Background(), Filter{Attribute: models.SearchByType, Term: "Dog"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if pets == nil || len(pets) != 0 {
		t.Errorf("pets = %#v, want empty non-nil slice", pets)
	}
	if got := calls.first(t); got.path != "/pets" || got.query != "type=Dog" {
		t.Errorf("request = %+v", got)
	}
}

func TestList_InvalidAttributeSendsNothing(t *testing.T) {
	c, calls := testClient(t, http.StatusOK, `[]`)

	_, err := c.List(context.Background(), Filter{Attribute: "color", Term: "brown"})
	if !errors.Is(err, apperr.ErrInvalidSearchAttribute) {
		t.Fatalf("err = %v, want ErrInvalidSearchAttribute", err)
	}
	if len(calls.all()) != 0 {
		t.Errorf("requests = %d, want 0", len(calls.all()))
	}
}

func TestCreate_SendsID(t *testing.T) {
	c, calls := testClient(t, http.StatusCreated, `{"id":"X","name":"Rex","type":"Dog","age":1,"weight":2,"caregiverName":"Ana","isDocile":false}`)

	p := models.Pet{ID: "X", Name: "Rex", Type: "Dog", Age: 1, Weight: 2, CaregiverName: "Ana"}
	out, err := c.Create(context.Background(), p)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if out != p {
		t.Errorf("created = %+v, want %+v", out, p)
	}
	got := calls.first(t)
	if got.method != http.MethodPost || got.path != "/pets" {
		t.Errorf("request = %+v", got)
	}
	if got.body["id"] != "X" || got.body["caregiverName"] != "Ana" {
		t.Errorf("body = %v", got.body)
	}
}

func TestUpdate_OmitsID(t *testing.T) {
	c, calls := testClient(t, http.StatusOK, `{}`)

	in := models.PetInput{Name: "Max", Type: "Dog", Age: 2, Weight: 3, CaregiverName: "Bo", IsDocile: true}
	out, err := c.Update(context.Background(), "A", in)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if out != in.WithID("A") {
		t.Errorf("updated = %+v", out)
	}
	got := calls.first(t)
	if got.method != http.MethodPut || got.path != "/pets/A" {
		t.Errorf("request = %+v", got)
	}
	if _, ok := got.body["id"]; ok {
		t.Errorf("PUT body must not carry id: %v", got.body)
	}
	if len(got.body) != 6 {
		t.Errorf("PUT body fields = %d, want 6", len(got.body))
	}
}

func TestDelete(t *testing.T) {
	c, calls := testClient(t, http.StatusNoContent, ``)

	if err := c.Delete(context.Background(), "A"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if got := calls.first(t); got.method != http.MethodDelete || got.path != "/pets/A" {
		t.Errorf("request = %+v", got)
	}
}

func TestNotFound(t *testing.T) {
	c, _ := testClient(t, http.StatusNotFound, `{"error":"not found"}`)

	_, err := c.Get(context.Background(), "missing")
	if !IsNotFound(err) {
		t.Fatalf("err = %v, want not found", err)
	}
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) || httpErr.StatusCode != http.StatusNotFound {
		t.Errorf("err = %#v", err)
	}
}

func TestServerError(t *testing.T) {
	c, _ := testClient(t, http.StatusInternalServerError, `boom`)

	err := c.Delete(context.Background(), "A")
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("err = %v, want *HTTPError", err)
	}
	if httpErr.Body != "boom" || IsNotFound(err) {
		t.Errorf("err = %#v", httpErr)
	}
}

func TestTimeout(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c, err := New(srv.URL, 20*time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.List(context.Background(), Filter{}); err == nil {
		t.Error("expected timeout error")
	}
	if hits.Load() != 1 {
		t.Errorf("hits = %d, want 1", hits.Load())
	}
}

func TestNew_InvalidBaseURL(t *testing.T) {
	if _, err := New("not a url", time.Second); err == nil {
		t.Error("expected error for invalid base url")
	}
}
