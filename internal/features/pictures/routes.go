package pictures

import (
	"net/http"

	"tapcard/internal/config"
	"tapcard/internal/platform/transport"
)

// Register wires picture routes.
func Register(mux *http.ServeMux, reg transport.Registrar, deps Dependencies, cfg config.Config) {
	register := func(pattern string, handler http.Handler) {
		reg.RegisterRoute(mux, pattern, handler)
	}

	handler := NewHandler(Config{
		ProfilePictureDir: cfg.ProfilePictureDir,
		StaticDir:         cfg.StaticDir,
		AllowedExts:       cfg.AllowedExts,
		MaxUploadBytes:    cfg.MaxUploadBytes,
	}, deps)

	register("/pictures/", http.HandlerFunc(handler.Serve))
	register("/pictures/upload", http.HandlerFunc(reg.RequireSession(handler.Upload, "/login?next=/onboarding")))
	register("/pictures/alt", http.HandlerFunc(reg.RequireSession(handler.UpdateAlt, "/login?next=/onboarding")))
	register("/pictures/delete", http.HandlerFunc(reg.RequireSession(handler.Delete, "/login?next=/onboarding")))
}
