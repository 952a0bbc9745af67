package services

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
	ListServices(ctx context.Context, profileID string) ([]domain.ServiceOffering, error)
	GetService(ctx context.Context, profileID, id string) (domain.ServiceOffering, error)
	CreateService(ctx context.Context, service domain.ServiceOffering) error
	UpdateService(ctx context.Context, service domain.ServiceOffering) error
	DeleteService(ctx context.Context, profileID, id string) error
	CurrentAccount(r *http.Request) (domain.Account, error)
	AuditOutcome(ctx context.Context, actorID int, action, target string, err error, meta map[string]string)
}

// Handler serves the service offerings API.
type Handler struct {
	deps Dependencies
}

func NewHandler(deps Dependencies) Handler {
	return Handler{deps: deps}
}

type servicePayload struct {
	ProfileID   string `json:"profile_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	PriceCents  int64  `json:"price_cents"`
	Position    int    `json:"position"`
}

// Collection handles list and create on /api/services.
func (h Handler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		profileID := strings.TrimSpace(r.URL.Query().Get("profile_id"))
		if profileID == "" {
			core.WriteJSONError(w, http.StatusBadRequest, "profile_id is required")
			return
		}
		services, err := h.deps.ListServices(r.Context(), profileID)
		if err != nil {
			core.WriteJSONError(w, http.StatusInternalServerError, "failed to list services")
			return
		}
		core.WriteJSON(w, http.StatusOK, services)
	case http.MethodPost:
		account, err := h.deps.CurrentAccount(r)
		if err != nil {
			core.WriteJSONError(w, http.StatusForbidden, "forbidden")
			return
		}
		var payload servicePayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			core.WriteJSONError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		payload.Title = strings.TrimSpace(payload.Title)
		if payload.ProfileID == "" || payload.Title == "" {
			core.WriteJSONError(w, http.StatusBadRequest, "profile_id and title are required")
			return
		}
		if payload.PriceCents < 0 {
			core.WriteJSONError(w, http.StatusBadRequest, "price must not be negative")
			return
		}
		service := domain.ServiceOffering{
			ID:          uuid.NewString(),
			ProfileID:   payload.ProfileID,
			Title:       payload.Title,
			Description: payload.Description,
			PriceCents:  payload.PriceCents,
			Position:    payload.Position,
		}
		if err := h.deps.CreateService(r.Context(), service); err != nil {
			h.deps.AuditOutcome(r.Context(), account.ID, "service.create", service.ID, err, nil)
			core.WriteJSONError(w, http.StatusInternalServerError, "failed to create service")
			return
		}
		h.deps.AuditOutcome(r.Context(), account.ID, "service.create", service.ID, nil, nil)
		core.WriteJSON(w, http.StatusCreated, service)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Item handles get, update, and delete on /api/services/{id}.
func (h Handler) Item(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(strings.TrimPrefix(r.URL.Path, "/api/services/"))
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
		service, err := h.deps.GetService(r.Context(), profileID, id)
		if err != nil {
			core.WriteJSONError(w, http.StatusNotFound, "service not found")
			return
		}
		core.WriteJSON(w, http.StatusOK, service)
	case http.MethodPut:
		account, err := h.deps.CurrentAccount(r)
		if err != nil {
			core.WriteJSONError(w, http.StatusForbidden, "forbidden")
			return
		}
		existing, err := h.deps.GetService(r.Context(), profileID, id)
		if err != nil {
			core.WriteJSONError(w, http.StatusNotFound, "service not found")
			return
		}
		var payload servicePayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			core.WriteJSONError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if title := strings.TrimSpace(payload.Title); title != "" {
			existing.Title = title
		}
		if payload.PriceCents < 0 {
			core.WriteJSONError(w, http.StatusBadRequest, "price must not be negative")
			return
		}
		existing.Description = payload.Description
		existing.PriceCents = payload.PriceCents
		existing.Position = payload.Position
		if err := h.deps.UpdateService(r.Context(), existing); err != nil {
			h.deps.AuditOutcome(r.Context(), account.ID, "service.update", id, err, nil)
			core.WriteJSONError(w, http.StatusInternalServerError, "failed to update service")
			return
		}
		h.deps.AuditOutcome(r.Context(), account.ID, "service.update", id, nil, nil)
		core.WriteJSON(w, http.StatusOK, existing)
	case http.MethodDelete:
		account, err := h.deps.CurrentAccount(r)
		if err != nil {
			core.WriteJSONError(w, http.StatusForbidden, "forbidden")
			return
		}
		if err := h.deps.DeleteService(r.Context(), profileID, id); err != nil {
			h.deps.AuditOutcome(r.Context(), account.ID, "service.delete", id, err, nil)
			core.WriteJSONError(w, http.StatusInternalServerError, "failed to delete service")
			return
		}
		h.deps.AuditOutcome(r.Context(), account.ID, "service.delete", id, nil, nil)
		core.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
