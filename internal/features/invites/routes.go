package invites

import (
	"net/http"

	"tapcard/internal/platform/transport"
)

// Register wires invite routes.
func Register(mux *http.ServeMux, reg transport.Registrar, deps Dependencies) {
	register := func(pattern string, handler http.Handler) {
		reg.RegisterRoute(mux, pattern, handler)
	}

	handler := NewHandler(deps)
	register("/invites/", http.HandlerFunc(handler.Accept))
	register("/api/invites", http.HandlerFunc(reg.RequireSessionJSON(handler.List)))
	register("/api/invites/create", http.HandlerFunc(reg.RequireSessionJSON(handler.Create)))
	register("/api/invites/delete", http.HandlerFunc(reg.RequireSessionJSON(handler.Delete)))
}
