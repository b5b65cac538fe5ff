package score

import (
	"net/http"
	"time"

	"github.com/johnwards/oppscore/internal/recommend"
)

// RegisterRoutes registers the scoring endpoints on the mux. A positive
// timeout bounds each generation call.
func RegisterRoutes(mux *http.ServeMux, rec *recommend.Recommender, timeout time.Duration) {
	h := &Handler{recommender: rec, timeout: timeout}

	mux.HandleFunc("POST /score", h.Score)
	mux.HandleFunc("POST /score/preview", h.Preview)
}
