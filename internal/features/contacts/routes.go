package contacts

import (
	"net/http"

	"tapcard/internal/platform/transport"
)

// Register wires the contact book routes.
func Register(mux *http.ServeMux, reg transport.Registrar, deps Dependencies) {
	register := func(pattern string, handler http.Handler) {
		reg.RegisterRoute(mux, pattern, handler)
	}

	handler := NewHandler(deps)
	register("/api/contacts", http.HandlerFunc(reg.RequireSessionJSON(handler.Collection)))
	register("/api/contacts/", http.HandlerFunc(reg.RequireSessionJSON(handler.Item)))
}
