package stages

import "net/http"

// RegisterRoutes registers the stage benchmark routes on the mux.
func RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /stages", List)
	mux.HandleFunc("GET /stages/{stage}", Get)
}
