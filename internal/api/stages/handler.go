package stages

import (
	"net/http"

	"github.com/johnwards/oppscore/internal/api"
	"github.com/johnwards/oppscore/internal/scoring"
)

// ListResponse is the body of a stage benchmark listing.
type ListResponse struct {
	Results              []scoring.StageBenchmark `json:"results"`
	DefaultBenchmarkDays int                      `json:"defaultBenchmarkDays"`
}

// BenchmarkResponse describes the benchmark applied to a single stage name.
type BenchmarkResponse struct {
	scoring.StageBenchmark
	Known bool `json:"known"`
}

// List returns the benchmark table in pipeline order.
func List(w http.ResponseWriter, _ *http.Request) {
	api.WriteJSON(w, http.StatusOK, ListResponse{
		Results:              scoring.Benchmarks(),
		DefaultBenchmarkDays: scoring.DefaultBenchmark,
	})
}

// Get returns the benchmark used for the given stage name. Unknown stages
// are not an error; they report the default benchmark.
func Get(w http.ResponseWriter, r *http.Request) {
	stage := r.PathValue("stage")

	known := false
	for _, b := range scoring.Benchmarks() {
		if b.Stage == stage {
			known = true
			break
		}
	}

	api.WriteJSON(w, http.StatusOK, BenchmarkResponse{
		StageBenchmark: scoring.StageBenchmark{Stage: stage, BenchmarkDays: scoring.Benchmark(stage)},
		Known:          known,
	})
}
