package shop

import (
	"net/http"

	"tapcard/internal/platform/transport"
)

// Register wires the shop item routes.
func Register(mux *http.ServeMux, reg transport.Registrar, deps Dependencies) {
	register := func(pattern string, handler http.Handler) {
		reg.RegisterRoute(mux, pattern, handler)
	}

	handler := NewHandler(deps)
	register("/api/shop", http.HandlerFunc(reg.RequireSessionJSON(handler.Collection)))
	register("/api/shop/", http.HandlerFunc(reg.RequireSessionJSON(handler.Item)))
}
