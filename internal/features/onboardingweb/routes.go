package onboardingweb

import (
	"net/http"

	"tapcard/internal/onboarding"
	"tapcard/internal/platform/transport"
)

// Register registers routes and handlers. A nil submitter stores completed
// drafts locally; a non-nil one sends them to an upstream profile API.
func Register(mux *http.ServeMux, reg transport.Registrar, deps Dependencies, submitter onboarding.Submitter) {
	register := func(pattern string, handler http.Handler) {
		reg.RegisterRoute(mux, pattern, handler)
	}

	handler := NewHandler(deps)
	if submitter != nil {
		handler = NewHandlerWithSubmitter(deps, submitter)
	}
	requireLogin := func(next http.HandlerFunc) http.HandlerFunc {
		return reg.RequireSession(next, "/login?next=/onboarding")
	}

	register("/onboarding", http.HandlerFunc(requireLogin(handler.Show)))
	register("/onboarding/field", http.HandlerFunc(requireLogin(handler.UpdateField)))
	register("/onboarding/next", http.HandlerFunc(requireLogin(handler.Next)))
	register("/onboarding/back", http.HandlerFunc(requireLogin(handler.Back)))
	register("/onboarding/skip", http.HandlerFunc(requireLogin(handler.Skip)))
	register("/onboarding/goto", http.HandlerFunc(requireLogin(handler.GoTo)))
	register("/onboarding/complete", http.HandlerFunc(requireLogin(handler.Complete)))
	register("/api/onboarding", http.HandlerFunc(reg.RequireSessionJSON(handler.State)))
}
