package shop

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"tapcard/internal/domain"
	"tapcard/internal/onboarding"
	"tapcard/internal/platform/core"
)

type Dependencies interface {
	ListShopItems(ctx context.Context, profileID string) ([]domain.ShopItem, error)
	GetShopItem(ctx context.Context, profileID, id string) (domain.ShopItem, error)
	CreateShopItem(ctx context.Context, item domain.ShopItem) error
	UpdateShopItem(ctx context.Context, item domain.ShopItem) error
	DeleteShopItem(ctx context.Context, profileID, id string) error
	CurrentAccount(r *http.Request) (domain.Account, error)
	AuditOutcome(ctx context.Context, actorID int, action, target string, err error, meta map[string]string)
}

// Handler serves the shop item API.
type Handler struct {
	deps Dependencies
}

func NewHandler(deps Dependencies) Handler {
	return Handler{deps: deps}
}

type itemPayload struct {
	ProfileID   string `json:"profile_id"`
	Title       string `json:"title"`
	ImageURL    string `json:"image_url"`
	PriceCents  int64  `json:"price_cents"`
	Currency    string `json:"currency"`
	ExternalURL string `json:"external_url"`
	Position    int    `json:"position"`
}

func (p *itemPayload) validate() string {
	p.Title = strings.TrimSpace(p.Title)
	if p.ProfileID == "" || p.Title == "" {
		return "profile_id and title are required"
	}
	if p.PriceCents < 0 {
		return "price must not be negative"
	}
	if p.ExternalURL != "" {
		normalized, ok := onboarding.NormalizeURL(p.ExternalURL)
		if !ok {
			return "external_url must be a valid URL"
		}
		p.ExternalURL = normalized
	}
	return ""
}

// Collection handles list and create on /api/shop.
func (h Handler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		profileID := strings.TrimSpace(r.URL.Query().Get("profile_id"))
		if profileID == "" {
			core.WriteJSONError(w, http.StatusBadRequest, "profile_id is required")
			return
		}
		items, err := h.deps.ListShopItems(r.Context(), profileID)
		if err != nil {
			core.WriteJSONError(w, http.StatusInternalServerError, "failed to list shop items")
			return
		}
		core.WriteJSON(w, http.StatusOK, items)
	case http.MethodPost:
		account, err := h.deps.CurrentAccount(r)
		if err != nil {
			core.WriteJSONError(w, http.StatusForbidden, "forbidden")
			return
		}
		var payload itemPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			core.WriteJSONError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if msg := payload.validate(); msg != "" {
			core.WriteJSONError(w, http.StatusBadRequest, msg)
			return
		}
		item := domain.ShopItem{
			ID:          uuid.NewString(),
			ProfileID:   payload.ProfileID,
			Title:       payload.Title,
			ImageURL:    payload.ImageURL,
			PriceCents:  payload.PriceCents,
			Currency:    strings.ToUpper(strings.TrimSpace(payload.Currency)),
			ExternalURL: payload.ExternalURL,
			Position:    payload.Position,
		}
		if err := h.deps.CreateShopItem(r.Context(), item); err != nil {
			h.deps.AuditOutcome(r.Context(), account.ID, "shop.create", item.ID, err, nil)
			core.WriteJSONError(w, http.StatusInternalServerError, "failed to create shop item")
			return
		}
		h.deps.AuditOutcome(r.Context(), account.ID, "shop.create", item.ID, nil, nil)
		core.WriteJSON(w, http.StatusCreated, item)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Item handles get, update, and delete on /api/shop/{id}.
func (h Handler) Item(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(strings.TrimPrefix(r.URL.Path, "/api/shop/"))
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
		item, err := h.deps.GetShopItem(r.Context(), profileID, id)
		if err != nil {
			core.WriteJSONError(w, http.StatusNotFound, "shop item not found")
			return
		}
		core.WriteJSON(w, http.StatusOK, item)
	case http.MethodPut:
		account, err := h.deps.CurrentAccount(r)
		if err != nil {
			core.WriteJSONError(w, http.StatusForbidden, "forbidden")
			return
		}
		existing, err := h.deps.GetShopItem(r.Context(), profileID, id)
		if err != nil {
			core.WriteJSONError(w, http.StatusNotFound, "shop item not found")
			return
		}
		var payload itemPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			core.WriteJSONError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		payload.ProfileID = profileID
		if payload.Title == "" {
			payload.Title = existing.Title
		}
		if msg := payload.validate(); msg != "" {
			core.WriteJSONError(w, http.StatusBadRequest, msg)
			return
		}
		existing.Title = payload.Title
		existing.ImageURL = payload.ImageURL
		existing.PriceCents = payload.PriceCents
		if payload.Currency != "" {
			existing.Currency = strings.ToUpper(strings.TrimSpace(payload.Currency))
		}
		existing.ExternalURL = payload.ExternalURL
		existing.Position = payload.Position
		if err := h.deps.UpdateShopItem(r.Context(), existing); err != nil {
			h.deps.AuditOutcome(r.Context(), account.ID, "shop.update", id, err, nil)
			core.WriteJSONError(w, http.StatusInternalServerError, "failed to update shop item")
			return
		}
		h.deps.AuditOutcome(r.Context(), account.ID, "shop.update", id, nil, nil)
		core.WriteJSON(w, http.StatusOK, existing)
	case http.MethodDelete:
		account, err := h.deps.CurrentAccount(r)
		if err != nil {
			core.WriteJSONError(w, http.StatusForbidden, "forbidden")
			return
		}
		if err := h.deps.DeleteShopItem(r.Context(), profileID, id); err != nil {
			h.deps.AuditOutcome(r.Context(), account.ID, "shop.delete", id, err, nil)
			core.WriteJSONError(w, http.StatusInternalServerError, "failed to delete shop item")
			return
		}
		h.deps.AuditOutcome(r.Context(), account.ID, "shop.delete", id, nil, nil)
		core.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
