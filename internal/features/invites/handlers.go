package invites

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"tapcard/internal/domain"
	"tapcard/internal/platform/core"
)

type Dependencies interface {
	CreateInvite(ctx context.Context, token, profileID, email, role string) error
	ListInvites(ctx context.Context, profileID string) ([]domain.Invite, error)
	GetInviteByToken(ctx context.Context, token string) (domain.Invite, error)
	MarkInviteUsed(ctx context.Context, id int) error
	DeleteInvite(ctx context.Context, id int) error
	GetProfile(ctx context.Context, id string) (domain.Profile, error)
	UpdateProfile(ctx context.Context, profile domain.Profile) error
	InvalidateProfile(id string)
	CurrentAccount(r *http.Request) (domain.Account, error)
	GetSession(r *http.Request, name string) (*sessions.Session, error)
	EnsureCSRF(session *sessions.Session) string
	ValidateCSRF(session *sessions.Session, token string) bool
	RenderTemplate(w http.ResponseWriter, name string, data interface{}) error
	AuditAttempt(ctx context.Context, actorID int, action, target string, meta map[string]string)
	AuditOutcome(ctx context.Context, actorID int, action, target string, err error, meta map[string]string)
}

type Handler struct {
	deps Dependencies
}

// NewHandler constructs a new handler.
func NewHandler(deps Dependencies) Handler {
	return Handler{deps: deps}
}

const sessionName = "tapcard_session"

// Accept renders an invitation and, on POST, records the member as accepted
// on the owning profile's organization.
func (h Handler) Accept(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimSpace(strings.TrimPrefix(r.URL.Path, "/invites/"))
	if token == "" {
		http.NotFound(w, r)
		return
	}
	invite, err := h.deps.GetInviteByToken(r.Context(), token)
	if err != nil || invite.UsedAt.Valid {
		http.NotFound(w, r)
		return
	}
	profile, err := h.deps.GetProfile(r.Context(), invite.ProfileID)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	session, _ := h.deps.GetSession(r, sessionName)
	data := map[string]interface{}{
		"Error":        "",
		"Accepted":     false,
		"CSRFToken":    h.deps.EnsureCSRF(session),
		"Email":        invite.Email,
		"Role":         invite.Role,
		"Organization": profile.Organization,
		"FullName":     profile.FullName,
	}

	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Bad request", http.StatusBadRequest)
			return
		}
		if !h.deps.ValidateCSRF(session, r.FormValue("csrf_token")) {
			http.Error(w, "Invalid CSRF token", http.StatusBadRequest)
			return
		}
		if err := h.acceptMember(r.Context(), profile, invite); err != nil {
			h.deps.AuditOutcome(r.Context(), 0, "invite.accept", invite.Email, err, nil)
			data["Error"] = "Failed to join the organization"
		} else {
			h.deps.AuditOutcome(r.Context(), 0, "invite.accept", invite.Email, nil, nil)
			data["Accepted"] = true
		}
	}

	if err := session.Save(r, w); err != nil {
		http.Error(w, "Session error", http.StatusInternalServerError)
		return
	}
	if err := h.deps.RenderTemplate(w, "invite.html", data); err != nil {
		http.Error(w, "Template error", http.StatusInternalServerError)
	}
}

func (h Handler) acceptMember(ctx context.Context, profile domain.Profile, invite domain.Invite) error {
	if profile.Organization == nil {
		profile.Organization = &domain.Organization{}
	}
	found := false
	for i, member := range profile.Organization.Members {
		if strings.EqualFold(member.Email, invite.Email) {
			profile.Organization.Members[i].Status = domain.MemberAccepted
			found = true
			break
		}
	}
	if !found {
		profile.Organization.Members = append(profile.Organization.Members, domain.OrgMember{
			Email:  strings.ToLower(invite.Email),
			Role:   invite.Role,
			Status: domain.MemberAccepted,
		})
	}
	if err := h.deps.UpdateProfile(ctx, profile); err != nil {
		return err
	}
	if err := h.deps.MarkInviteUsed(ctx, invite.ID); err != nil {
		return err
	}
	h.deps.InvalidateProfile(profile.ID)
	return nil
}

// Create issues a new invite token for a profile's organization.
func (h Handler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	account, err := h.deps.CurrentAccount(r)
	if err != nil {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}
	session, _ := h.deps.GetSession(r, sessionName)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	if !h.deps.ValidateCSRF(session, r.FormValue("csrf_token")) {
		http.Error(w, "Invalid CSRF token", http.StatusBadRequest)
		return
	}
	profileID := strings.TrimSpace(r.FormValue("profile_id"))
	email := strings.ToLower(strings.TrimSpace(r.FormValue("email")))
	role := strings.TrimSpace(r.FormValue("role"))
	if role != domain.RoleAdmin && role != domain.RoleMember {
		role = domain.RoleMember
	}
	if profileID == "" || email == "" {
		core.WriteJSONError(w, http.StatusBadRequest, "profile_id and email are required")
		return
	}
	token := uuid.NewString()
	h.deps.AuditAttempt(r.Context(), account.ID, "invite.create", email, map[string]string{"role": role})
	if err := h.deps.CreateInvite(r.Context(), token, profileID, email, role); err != nil {
		h.deps.AuditOutcome(r.Context(), account.ID, "invite.create", email, err, nil)
		core.WriteJSONError(w, http.StatusInternalServerError, "failed to create invite")
		return
	}
	h.deps.AuditOutcome(r.Context(), account.ID, "invite.create", email, nil, nil)
	core.WriteJSON(w, http.StatusCreated, map[string]string{"token": token})
}

// List returns the open and used invites for a profile.
func (h Handler) List(w http.ResponseWriter, r *http.Request) {
	profileID := strings.TrimSpace(r.URL.Query().Get("profile_id"))
	if profileID == "" {
		core.WriteJSONError(w, http.StatusBadRequest, "profile_id is required")
		return
	}
	invites, err := h.deps.ListInvites(r.Context(), profileID)
	if err != nil {
		core.WriteJSONError(w, http.StatusInternalServerError, "failed to list invites")
		return
	}
	core.WriteJSON(w, http.StatusOK, invites)
}

// Delete revokes an invite by ID.
func (h Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	account, err := h.deps.CurrentAccount(r)
	if err != nil {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}
	session, _ := h.deps.GetSession(r, sessionName)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	if !h.deps.ValidateCSRF(session, r.FormValue("csrf_token")) {
		http.Error(w, "Invalid CSRF token", http.StatusBadRequest)
		return
	}
	id, err := strconv.Atoi(r.FormValue("invite_id"))
	if err != nil || id <= 0 {
		core.WriteJSONError(w, http.StatusBadRequest, "invalid invite")
		return
	}
	h.deps.AuditAttempt(r.Context(), account.ID, "invite.delete", strconv.Itoa(id), nil)
	if err := h.deps.DeleteInvite(r.Context(), id); err != nil {
		h.deps.AuditOutcome(r.Context(), account.ID, "invite.delete", strconv.Itoa(id), err, nil)
		core.WriteJSONError(w, http.StatusInternalServerError, "failed to delete invite")
		return
	}
	h.deps.AuditOutcome(r.Context(), account.ID, "invite.delete", strconv.Itoa(id), nil, nil)
	core.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
