package cards

import (
	"net/http"

	"tapcard/internal/platform/transport"
)

// Register registers routes and handlers.
func Register(mux *http.ServeMux, reg transport.Registrar, deps Dependencies) {
	register := func(pattern string, handler http.Handler) {
		reg.RegisterRoute(mux, pattern, handler)
	}

	handler := NewHandler(deps)

	register("/", http.HandlerFunc(handler.Index))
	register("/cards/", http.HandlerFunc(handler.Card))
	register("/api/cards/current", http.HandlerFunc(reg.RequireSessionJSON(handler.CurrentCard)))
	register("/api/cards/refresh", http.HandlerFunc(reg.RequireSessionJSON(handler.RefreshCard)))
	register("/api/cards/", http.HandlerFunc(handler.CardJSON))
}
