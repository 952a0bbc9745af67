package leads

import (
	"net/http"

	"tapcard/internal/platform/transport"
)

// Register wires lead capture and management routes.
func Register(mux *http.ServeMux, reg transport.Registrar, deps Dependencies) {
	register := func(pattern string, handler http.Handler) {
		reg.RegisterRoute(mux, pattern, handler)
	}

	handler := NewHandler(deps)
	register("/api/leads/capture", http.HandlerFunc(handler.Capture))
	register("/api/leads", http.HandlerFunc(reg.RequireSessionJSON(handler.Collection)))
	register("/api/leads/", http.HandlerFunc(reg.RequireSessionJSON(handler.Item)))
}
