package wiring

import (
	"context"
	"net/http"

	"github.com/gorilla/sessions"
	"tapcard/internal/config"
	"tapcard/internal/domain"
	"tapcard/internal/profilecache"
)

// Platform helpers.
func (d Deps) Config() config.Config {
	return d.srv.Config()
}

// GetSession returns the session by delegating to configured services.
func (d Deps) GetSession(r *http.Request, name string) (*sessions.Session, error) {
	return d.srv.GetSession(r, name)
}

// EnsureCSRF ensures CSRF is initialized and available by delegating to configured services.
func (d Deps) EnsureCSRF(session *sessions.Session) string {
	return d.srv.EnsureCSRF(session)
}

// ValidateCSRF validates CSRF and returns an error on failure.
func (d Deps) ValidateCSRF(session *sessions.Session, token string) bool {
	return d.srv.ValidateCSRF(session, token)
}

// RenderTemplate renders a named template with the provided data.
func (d Deps) RenderTemplate(w http.ResponseWriter, name string, data interface{}) error {
	return d.srv.RenderTemplate(w, name, data)
}

// CurrentAccount returns the authenticated account from the request.
func (d Deps) CurrentAccount(r *http.Request) (domain.Account, error) {
	return d.srv.CurrentAccount(r)
}

// ProfileCache returns the shared profile cache.
func (d Deps) ProfileCache() *profilecache.Cache {
	return d.srv.ProfileCache()
}

// SetCurrentProfile persists the durable current-profile pointer.
func (d Deps) SetCurrentProfile(ctx context.Context, id string) error {
	return d.srv.ProfileCache().SetCurrent(ctx, id)
}

// InvalidateProfile drops a profile from the cache after a direct edit.
func (d Deps) InvalidateProfile(id string) {
	d.srv.ProfileCache().Invalidate(id)
}

// AuditAttempt records attempt as an audit event.
func (d Deps) AuditAttempt(ctx context.Context, actorID int, action, target string, meta map[string]string) {
	d.srv.AuditAttempt(ctx, actorID, action, target, meta)
}

// AuditOutcome records outcome as an audit event.
func (d Deps) AuditOutcome(ctx context.Context, actorID int, action, target string, err error, meta map[string]string) {
	d.srv.AuditOutcome(ctx, actorID, action, target, err, meta)
}

// BaseURL returns scheme and host for the request.
func (d Deps) BaseURL(r *http.Request) string {
	return d.srv.BaseURL(r)
}

// Reserved returns the set of reserved path segments.
func (d Deps) Reserved() map[string]struct{} {
	return d.srv.Reserved()
}
