package roster

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	rostermodel "github.com/agenticdoctor/backend/internal/model/roster"
)

func TestListAgents(t *testing.T) {
	handler := New(rostermodel.NewMemoryStore(rostermodel.Seed()))
	r := chi.NewRouter()
	handler.RegisterRoutes(r)

	req := httptest.NewRequest(http.MethodGet, "/agents", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var profiles []rostermodel.Profile
	if err := json.Unmarshal(resp.Body.Bytes(), &profiles); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(profiles) != len(rostermodel.PipelineOrder) {
		t.Fatalf("expected %d profiles, got %d", len(rostermodel.PipelineOrder), len(profiles))
	}

	seen := make(map[string]bool, len(profiles))
	for _, p := range profiles {
		seen[p.ID] = true
	}
	if !seen["triage"] || !seen["report"] || !seen["collab"] {
		t.Fatalf("roster missing expected profiles: %v", seen)
	}
}
