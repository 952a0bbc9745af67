package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/sessions"
	"tapcard/internal/domain"
	"tapcard/internal/platform/core"
)

var errNotLoggedIn = errors.New("not logged in")

// EnsureCSRF ensures CSRF is initialized and available.
func (s *Server) EnsureCSRF(session *sessions.Session) string {
	return s.ensureCSRF(session)
}

// RenderTemplate renders a named template with the provided data.
func (s *Server) RenderTemplate(w http.ResponseWriter, name string, data interface{}) error {
	return s.tmpl.ExecuteTemplate(w, name, data)
}

// Reserved returns the set of reserved path segments.
func (s *Server) Reserved() map[string]struct{} {
	return s.reserved
}

// GetSession returns the session.
func (s *Server) GetSession(r *http.Request, name string) (*sessions.Session, error) {
	return s.store.Get(r, name)
}

// ValidateCSRF validates CSRF and returns an error on failure.
func (s *Server) ValidateCSRF(session *sessions.Session, token string) bool {
	return s.validateCSRF(session, token)
}

// CurrentAccount returns the authenticated account from the session.
func (s *Server) CurrentAccount(r *http.Request) (domain.Account, error) {
	session, _ := s.store.Get(r, SessionName)
	id := core.SessionUserID(session)
	if id == 0 {
		return domain.Account{}, errNotLoggedIn
	}
	return s.repos.Accounts.GetAccountByID(r.Context(), int(id))
}

// AuditAttempt records attempt as an audit event.
func (s *Server) AuditAttempt(ctx context.Context, actorID int, action, target string, meta map[string]string) {
	s.auditAttempt(ctx, actorID, action, target, meta)
}

// AuditOutcome records outcome as an audit event.
func (s *Server) AuditOutcome(ctx context.Context, actorID int, action, target string, err error, meta map[string]string) {
	s.auditOutcome(ctx, actorID, action, target, err, meta)
}

// BaseURL returns scheme and host for the incoming request.
func (s *Server) BaseURL(r *http.Request) string {
	if s.cfg.BaseURL != "" {
		return s.cfg.BaseURL
	}
	return core.BaseURL(r)
}
