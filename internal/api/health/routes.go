package health

import (
	"net/http"

	"github.com/johnwards/oppscore/internal/api"
)

// ServiceName identifies this service in health responses.
const ServiceName = "opportunity-scoring-api"

// RegisterRoutes registers the health check at the root path.
func RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", Check)
}

// Check reports that the service is up.
func Check(w http.ResponseWriter, _ *http.Request) {
	api.WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": ServiceName,
	})
}
