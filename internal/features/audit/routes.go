package audit

import (
	"net/http"

	"tapcard/internal/platform/transport"
)

// Register wires audit log routes.
func Register(mux *http.ServeMux, reg transport.Registrar, deps Dependencies) {
	register := func(pattern string, handler http.Handler) {
		reg.RegisterRoute(mux, pattern, handler)
	}

	handler := NewHandler(deps)
	register("/api/audit", http.HandlerFunc(reg.RequireSessionJSON(handler.List)))
	register("/api/audit/download", http.HandlerFunc(reg.RequireSessionJSON(handler.Download)))
}
