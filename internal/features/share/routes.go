package share

import (
	"net/http"

	"tapcard/internal/platform/transport"
)

// Register wires share page and QR routes.
func Register(mux *http.ServeMux, reg transport.Registrar, deps Dependencies) {
	register := func(pattern string, handler http.Handler) {
		reg.RegisterRoute(mux, pattern, handler)
	}

	handler := NewHandler(deps)
	register("/share/qr/", http.HandlerFunc(handler.QR))
	register("/share/", http.HandlerFunc(handler.Page))
}
