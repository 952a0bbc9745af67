package services

import (
	"net/http"

	"tapcard/internal/platform/transport"
)

// Register wires the service offering routes.
func Register(mux *http.ServeMux, reg transport.Registrar, deps Dependencies) {
	register := func(pattern string, handler http.Handler) {
		reg.RegisterRoute(mux, pattern, handler)
	}

	handler := NewHandler(deps)
	register("/api/services", http.HandlerFunc(reg.RequireSessionJSON(handler.Collection)))
	register("/api/services/", http.HandlerFunc(reg.RequireSessionJSON(handler.Item)))
}
