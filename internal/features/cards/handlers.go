package cards

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"tapcard/internal/domain"
	"tapcard/internal/platform/core"
	"tapcard/internal/profilecache"
)

type Dependencies interface {
	HasAccount(ctx context.Context) (bool, error)
	GetProfileByHandle(ctx context.Context, handle string) (domain.Profile, error)
	ProfileCache() *profilecache.Cache
	RenderTemplate(w http.ResponseWriter, name string, data interface{}) error
	BaseURL(r *http.Request) string
}

// Handler serves the public card pages and the card JSON API.
type Handler struct {
	deps Dependencies
}

func NewHandler(deps Dependencies) Handler { return Handler{deps: deps} }

// Index redirects to the current profile's card, or to onboarding when no
// profile has been published yet.
func (h Handler) Index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	cache := h.deps.ProfileCache()
	current, err := cache.Current(r.Context())
	if err != nil || current == "" {
		http.Redirect(w, r, "/onboarding", http.StatusFound)
		return
	}
	profile := cache.Fetch(r.Context(), current)
	if profile == nil {
		if cache.Err(current) != "" {
			http.Redirect(w, r, "/onboarding", http.StatusFound)
			return
		}
		h.renderLoading(w, r)
		return
	}
	http.Redirect(w, r, "/cards/"+url.PathEscape(profile.Handle), http.StatusFound)
}

// Card renders the public card page for a handle.
func (h Handler) Card(w http.ResponseWriter, r *http.Request) {
	handle := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(r.URL.Path, "/cards/")))
	if handle == "" || strings.Contains(handle, "/") {
		http.NotFound(w, r)
		return
	}
	stored, err := h.deps.GetProfileByHandle(r.Context(), handle)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	cache := h.deps.ProfileCache()
	profile := cache.Fetch(r.Context(), stored.ID)
	if profile == nil {
		if fetchErr := cache.Err(stored.ID); fetchErr != "" {
			http.Error(w, "Card temporarily unavailable", http.StatusBadGateway)
			return
		}
		h.renderLoading(w, r)
		return
	}

	data := map[string]interface{}{
		"Profile": profile,
		"BaseURL": h.deps.BaseURL(r),
	}
	if err := h.deps.RenderTemplate(w, "card.html", data); err != nil {
		http.Error(w, "Template error", http.StatusInternalServerError)
	}
}

func (h Handler) renderLoading(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Retry-After", "1")
	if err := h.deps.RenderTemplate(w, "card_loading.html", nil); err != nil {
		http.Error(w, "Template error", http.StatusInternalServerError)
	}
}

// CardJSON serves the cached profile as JSON. While a fetch is in flight it
// answers 202 so clients can poll again.
func (h Handler) CardJSON(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(strings.TrimPrefix(r.URL.Path, "/api/cards/"))
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}
	cache := h.deps.ProfileCache()
	profile := cache.Fetch(r.Context(), id)
	if profile != nil {
		core.WriteJSON(w, http.StatusOK, profile)
		return
	}
	if msg := cache.Err(id); msg != "" {
		core.WriteJSONError(w, http.StatusBadGateway, msg)
		return
	}
	w.Header().Set("Retry-After", "1")
	core.WriteJSON(w, http.StatusAccepted, map[string]string{"status": "loading"})
}

// RefreshCard invalidates the cache entry and starts a fresh fetch.
func (h Handler) RefreshCard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id := strings.TrimSpace(r.FormValue("profile_id"))
	if id == "" {
		core.WriteJSONError(w, http.StatusBadRequest, "profile_id is required")
		return
	}
	cache := h.deps.ProfileCache()
	if profile := cache.Refresh(r.Context(), id); profile != nil {
		core.WriteJSON(w, http.StatusOK, profile)
		return
	}
	if msg := cache.Err(id); msg != "" {
		core.WriteJSONError(w, http.StatusBadGateway, msg)
		return
	}
	w.Header().Set("Retry-After", "1")
	core.WriteJSON(w, http.StatusAccepted, map[string]string{"status": "loading"})
}

// CurrentCard reads or updates the durable current-profile pointer.
func (h Handler) CurrentCard(w http.ResponseWriter, r *http.Request) {
	cache := h.deps.ProfileCache()
	switch r.Method {
	case http.MethodGet:
		current, err := cache.Current(r.Context())
		if err != nil {
			core.WriteJSONError(w, http.StatusInternalServerError, "failed to load current profile")
			return
		}
		core.WriteJSON(w, http.StatusOK, map[string]string{"profile_id": current})
	case http.MethodPut, http.MethodPost:
		var body struct {
			ProfileID string `json:"profile_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			core.WriteJSONError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if strings.TrimSpace(body.ProfileID) == "" {
			core.WriteJSONError(w, http.StatusBadRequest, "profile_id is required")
			return
		}
		if err := cache.SetCurrent(r.Context(), body.ProfileID); err != nil {
			core.WriteJSONError(w, http.StatusInternalServerError, "failed to save current profile")
			return
		}
		cache.Preload(r.Context(), body.ProfileID)
		core.WriteJSON(w, http.StatusOK, map[string]string{"profile_id": body.ProfileID})
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
