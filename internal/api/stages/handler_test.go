package stages_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/johnwards/oppscore/internal/api/stages"
)

func setupTestServer(t *testing.T) *http.ServeMux {
	t.Helper()
	mux := http.NewServeMux()
	stages.RegisterRoutes(mux)
	return mux
}

func TestListStages(t *testing.T) {
	mux := setupTestServer(t)

	req := httptest.NewRequest("GET", "/stages", http.NoBody)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp stages.ListResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Results) != 7 {
		t.Fatalf("expected 7 stages, got %d", len(resp.Results))
	}
	if resp.Results[1].Stage != "Qualification" || resp.Results[1].BenchmarkDays != 15 {
		t.Errorf("unexpected second stage: %+v", resp.Results[1])
	}
	if resp.DefaultBenchmarkDays != 10 {
		t.Errorf("defaultBenchmarkDays = %d, want 10", resp.DefaultBenchmarkDays)
	}
}

func TestGetStage(t *testing.T) {
	mux := setupTestServer(t)

	tests := []struct {
		path      string
		wantStage string
		wantDays  int
		wantKnown bool
	}{
		{"/stages/Negotiation", "Negotiation", 8, true},
		{"/stages/Needs%20Analysis", "Needs Analysis", 10, true},
		{"/stages/Discovery", "Discovery", 10, false},
	}

	for _, tt := range tests {
		t.Run(tt.wantStage, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, http.NoBody)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
			}

			var resp stages.BenchmarkResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if resp.Stage != tt.wantStage || resp.BenchmarkDays != tt.wantDays || resp.Known != tt.wantKnown {
				t.Errorf("got %+v, want stage=%q days=%d known=%v", resp, tt.wantStage, tt.wantDays, tt.wantKnown)
			}
		})
	}
}
