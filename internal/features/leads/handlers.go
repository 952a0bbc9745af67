package leads

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"tapcard/internal/domain"
	"tapcard/internal/platform/core"
)

type Dependencies interface {
	ListLeads(ctx context.Context, profileID, status string) ([]domain.Lead, error)
	GetLead(ctx context.Context, profileID, id string) (domain.Lead, error)
	CreateLead(ctx context.Context, lead domain.Lead) error
	UpdateLeadStatus(ctx context.Context, profileID, id, status string) error
	DeleteLead(ctx context.Context, profileID, id string) error
	GetProfileByHandle(ctx context.Context, handle string) (domain.Profile, error)
	CurrentAccount(r *http.Request) (domain.Account, error)
	AuditOutcome(ctx context.Context, actorID int, action, target string, err error, meta map[string]string)
}

// Handler serves lead capture and the lead management API.
type Handler struct {
	deps Dependencies
}

func NewHandler(deps Dependencies) Handler {
	return Handler{deps: deps}
}

// Capture records an inbound lead from a public card page. It is the one
// unauthenticated write endpoint, keyed by the card's handle.
func (h Handler) Capture(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var payload struct {
		Handle  string `json:"handle"`
		Name    string `json:"name"`
		Email   string `json:"email"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		core.WriteJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	payload.Name = strings.TrimSpace(payload.Name)
	payload.Email = strings.TrimSpace(payload.Email)
	if payload.Handle == "" || payload.Name == "" || payload.Email == "" {
		core.WriteJSONError(w, http.StatusBadRequest, "handle, name, and email are required")
		return
	}
	profile, err := h.deps.GetProfileByHandle(r.Context(), payload.Handle)
	if err != nil {
		core.WriteJSONError(w, http.StatusNotFound, "unknown card")
		return
	}
	lead := domain.Lead{
		ID:        uuid.NewString(),
		ProfileID: profile.ID,
		Name:      payload.Name,
		Email:     payload.Email,
		Message:   payload.Message,
		Status:    domain.LeadNew,
	}
	if err := h.deps.CreateLead(r.Context(), lead); err != nil {
		core.WriteJSONError(w, http.StatusInternalServerError, "failed to record lead")
		return
	}
	core.WriteJSON(w, http.StatusCreated, map[string]bool{"ok": true})
}

// Collection lists leads for a profile, optionally filtered by status.
func (h Handler) Collection(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	profileID := strings.TrimSpace(r.URL.Query().Get("profile_id"))
	if profileID == "" {
		core.WriteJSONError(w, http.StatusBadRequest, "profile_id is required")
		return
	}
	status := strings.TrimSpace(r.URL.Query().Get("status"))
	leads, err := h.deps.ListLeads(r.Context(), profileID, status)
	if err != nil {
		core.WriteJSONError(w, http.StatusInternalServerError, "failed to list leads")
		return
	}
	core.WriteJSON(w, http.StatusOK, leads)
}

// Item handles get, status update, and delete on /api/leads/{id}.
func (h Handler) Item(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(strings.TrimPrefix(r.URL.Path, "/api/leads/"))
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}
	profileID := strings.TrimSpace(r.URL.Query().Get("profile_id"))
	if profileID == "" {
		core.WriteJSONError(w, http.StatusBadRequest, "profile_id is required")
		return
	}
	switch r.Method {
	case http.MethodGet:
		lead, err := h.deps.GetLead(r.Context(), profileID, id)
		if err != nil {
			core.WriteJSONError(w, http.StatusNotFound, "lead not found")
			return
		}
		core.WriteJSON(w, http.StatusOK, lead)
	case http.MethodPut:
		account, err := h.deps.CurrentAccount(r)
		if err != nil {
			core.WriteJSONError(w, http.StatusForbidden, "forbidden")
			return
		}
		var payload struct {
			Status string `json:"status"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			core.WriteJSONError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if err := h.deps.UpdateLeadStatus(r.Context(), profileID, id, payload.Status); err != nil {
			h.deps.AuditOutcome(r.Context(), account.ID, "lead.status", id, err, nil)
			core.WriteJSONError(w, http.StatusBadRequest, "invalid status")
			return
		}
		h.deps.AuditOutcome(r.Context(), account.ID, "lead.status", id, nil, map[string]string{"status": payload.Status})
		core.WriteJSON(w, http.StatusOK, map[string]string{"status": payload.Status})
	case http.MethodDelete:
		account, err := h.deps.CurrentAccount(r)
		if err != nil {
			core.WriteJSONError(w, http.StatusForbidden, "forbidden")
			return
		}
		if err := h.deps.DeleteLead(r.Context(), profileID, id); err != nil {
			h.deps.AuditOutcome(r.Context(), account.ID, "lead.delete", id, err, nil)
			core.WriteJSONError(w, http.StatusInternalServerError, "failed to delete lead")
			return
		}
		h.deps.AuditOutcome(r.Context(), account.ID, "lead.delete", id, nil, nil)
		core.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
