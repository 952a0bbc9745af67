package http

import (
	"net/http"

	"tapcard/internal/features/audit"
	"tapcard/internal/features/auth"
	"tapcard/internal/features/cards"
	"tapcard/internal/features/contacts"
	"tapcard/internal/features/health"
	"tapcard/internal/features/invites"
	"tapcard/internal/features/leads"
	"tapcard/internal/features/onboardingweb"
	"tapcard/internal/features/pictures"
	"tapcard/internal/features/services"
	"tapcard/internal/features/share"
	"tapcard/internal/features/shop"
	"tapcard/internal/onboarding"
	tapserver "tapcard/internal/platform/server"
	"tapcard/internal/platform/wiring"
)

// Routes builds the HTTP mux from the feature packages.
func Routes(s *tapserver.Server) http.Handler {
	mux := http.NewServeMux()
	register := func(pattern string, handler http.Handler) {
		s.RegisterRoute(mux, pattern, handler)
	}

	cfg := s.Config()
	deps := wiring.NewDeps(s)
	register("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir))))

	cards.Register(mux, s, deps)
	health.Register(mux, s, cfg)
	auth.Register(mux, s, deps)
	var submitter onboarding.Submitter
	if remote := s.Remote(); remote != nil {
		submitter = onboardingweb.NewRemoteSubmitter(remote, deps)
	}
	onboardingweb.Register(mux, s, deps, submitter)
	pictures.Register(mux, s, deps, cfg)
	contacts.Register(mux, s, deps)
	leads.Register(mux, s, deps)
	services.Register(mux, s, deps)
	shop.Register(mux, s, deps)
	share.Register(mux, s, deps)
	invites.Register(mux, s, deps)
	audit.Register(mux, s, deps)

	return s.WithSecurityHeaders(cards.WithCardRateLimit(cards.WithSetupRedirect(deps, mux)))
}
