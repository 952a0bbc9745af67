package contacts

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
	ListContacts(ctx context.Context, profileID string) ([]domain.Contact, error)
	GetContact(ctx context.Context, profileID, id string) (domain.Contact, error)
	CreateContact(ctx context.Context, contact domain.Contact) error
	UpdateContact(ctx context.Context, contact domain.Contact) error
	DeleteContact(ctx context.Context, profileID, id string) error
	CurrentAccount(r *http.Request) (domain.Account, error)
	AuditOutcome(ctx context.Context, actorID int, action, target string, err error, meta map[string]string)
}

// Handler serves the contact book API for a profile.
type Handler struct {
	deps Dependencies
}

func NewHandler(deps Dependencies) Handler {
	return Handler{deps: deps}
}

type contactPayload struct {
	ProfileID string `json:"profile_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Company   string `json:"company"`
	Notes     string `json:"notes"`
}

// Collection handles list and create on /api/contacts.
func (h Handler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		profileID := strings.TrimSpace(r.URL.Query().Get("profile_id"))
		if profileID == "" {
			core.WriteJSONError(w, http.StatusBadRequest, "profile_id is required")
			return
		}
		contacts, err := h.deps.ListContacts(r.Context(), profileID)
		if err != nil {
			core.WriteJSONError(w, http.StatusInternalServerError, "failed to list contacts")
			return
		}
		core.WriteJSON(w, http.StatusOK, contacts)
	case http.MethodPost:
		account, err := h.deps.CurrentAccount(r)
		if err != nil {
			core.WriteJSONError(w, http.StatusForbidden, "forbidden")
			return
		}
		var payload contactPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			core.WriteJSONError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		payload.Name = strings.TrimSpace(payload.Name)
		if payload.ProfileID == "" || payload.Name == "" {
			core.WriteJSONError(w, http.StatusBadRequest, "profile_id and name are required")
			return
		}
		contact := domain.Contact{
			ID:        uuid.NewString(),
			ProfileID: payload.ProfileID,
			Name:      payload.Name,
			Email:     strings.TrimSpace(payload.Email),
			Phone:     strings.TrimSpace(payload.Phone),
			Company:   strings.TrimSpace(payload.Company),
			Notes:     payload.Notes,
		}
		if err := h.deps.CreateContact(r.Context(), contact); err != nil {
			h.deps.AuditOutcome(r.Context(), account.ID, "contact.create", contact.ID, err, nil)
			core.WriteJSONError(w, http.StatusInternalServerError, "failed to create contact")
			return
		}
		h.deps.AuditOutcome(r.Context(), account.ID, "contact.create", contact.ID, nil, nil)
		core.WriteJSON(w, http.StatusCreated, contact)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Item handles get, update, and delete on /api/contacts/{id}.
func (h Handler) Item(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(strings.TrimPrefix(r.URL.Path, "/api/contacts/"))
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
		contact, err := h.deps.GetContact(r.Context(), profileID, id)
		if err != nil {
			core.WriteJSONError(w, http.StatusNotFound, "contact not found")
			return
		}
		core.WriteJSON(w, http.StatusOK, contact)
	case http.MethodPut:
		account, err := h.deps.CurrentAccount(r)
		if err != nil {
			core.WriteJSONError(w, http.StatusForbidden, "forbidden")
			return
		}
		existing, err := h.deps.GetContact(r.Context(), profileID, id)
		if err != nil {
			core.WriteJSONError(w, http.StatusNotFound, "contact not found")
			return
		}
		var payload contactPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			core.WriteJSONError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if name := strings.TrimSpace(payload.Name); name != "" {
			existing.Name = name
		}
		existing.Email = strings.TrimSpace(payload.Email)
		existing.Phone = strings.TrimSpace(payload.Phone)
		existing.Company = strings.TrimSpace(payload.Company)
		existing.Notes = payload.Notes
		if err := h.deps.UpdateContact(r.Context(), existing); err != nil {
			h.deps.AuditOutcome(r.Context(), account.ID, "contact.update", id, err, nil)
			core.WriteJSONError(w, http.StatusInternalServerError, "failed to update contact")
			return
		}
		h.deps.AuditOutcome(r.Context(), account.ID, "contact.update", id, nil, nil)
		core.WriteJSON(w, http.StatusOK, existing)
	case http.MethodDelete:
		account, err := h.deps.CurrentAccount(r)
		if err != nil {
			core.WriteJSONError(w, http.StatusForbidden, "forbidden")
			return
		}
		if err := h.deps.DeleteContact(r.Context(), profileID, id); err != nil {
			h.deps.AuditOutcome(r.Context(), account.ID, "contact.delete", id, err, nil)
			core.WriteJSONError(w, http.StatusInternalServerError, "failed to delete contact")
			return
		}
		h.deps.AuditOutcome(r.Context(), account.ID, "contact.delete", id, nil, nil)
		core.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
