// handler_test.go provides shared fakes for the handler tests. No test in
// this package needs PostgreSQL, Valkey or network access.
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"iconforge/internal/ai"
	"iconforge/internal/download"
	"iconforge/internal/icons"
	"iconforge/internal/models"
	"iconforge/internal/theme"
)

// fakeProvider implements ai.ImageProvider. It records prompts and
// returns a URL derived from the call number.
type fakeProvider struct {
	mu      sync.Mutex
	prompts []string
	err     error
	block   bool // wait for the context to end
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) GenerateImage(ctx context.Context, req ai.ImageRequest) ([]ai.Image, error) {
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	f.mu.Lock()
	f.prompts = append(f.prompts, req.Prompt)
	n := len(f.prompts)
	f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	return []ai.Image{{URL: "https://replicate.delivery/out/" + string(rune('a'+n-1)) + ".png"}}, nil
}

func (f *fakeProvider) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

// memoryHistory is an in-memory HistoryStore.
type memoryHistory struct {
	mu    sync.Mutex
	items []models.Generation
	err   error
}

func (m *memoryHistory) Create(g *models.Generation) (*models.Generation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	created := *g
	created.ID = uuid.New()
	created.CreatedAt = time.Now()
	m.items = append([]models.Generation{created}, m.items...)
	return &created, nil
}

func (m *memoryHistory) FindByID(id uuid.UUID) (*models.Generation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, g := range m.items {
		if g.ID == id {
			return &g, nil
		}
	}
	return nil, nil
}

func (m *memoryHistory) List(limit, offset int) ([]models.Generation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if offset >= len(m.items) {
		return []models.Generation{}, nil
	}
	end := min(offset+limit, len(m.items))
	return append([]models.Generation{}, m.items[offset:end]...), nil
}

func (m *memoryHistory) Count() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items), nil
}

func (m *memoryHistory) Delete(id uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, g := range m.items {
		if g.ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// testAPI builds an API backed by provider. history may be nil.
func testAPI(t *testing.T, provider *fakeProvider, history HistoryStore) (*API, *ai.Registry) {
	t.Helper()

	registry := ai.NewRegistry("fake", nil)
	if provider != nil {
		registry.Register("fake", provider)
	}
	selector := theme.New(theme.WithRand(rand.New(rand.NewSource(1))))
	gen := icons.New(registry, nil, selector, 200*time.Millisecond)
	downloads := download.NewClient([]string{"replicate.delivery"}, nil)

	return NewAPI(gen, registry, history, downloads, false), registry
}

// routes mounts the API the way the router does, minus middleware.
func routes(a *API) http.Handler {
	r := chi.NewRouter()
	r.Get("/api/styles", a.Styles)
	r.Get("/api/health", a.Health)
	r.Post("/api/generate", a.Generate)
	r.Post("/api/regenerate", a.Regenerate)
	r.Post("/api/download", a.Download)
	r.Get("/api/history", a.History)
	r.Get("/api/history/{id}", a.HistoryItem)
	r.Delete("/api/history/{id}", a.HistoryDelete)
	return r
}

// doJSON sends body (marshalled unless it is a string) and returns the
// recorder.
func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		if err := json.NewEncoder(&buf).Encode(b); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

// decodeBody unmarshals the recorder body into a generic map.
func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return out
}
