package share

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
	"tapcard/internal/domain"
)

type Dependencies interface {
	GetProfileByHandle(ctx context.Context, handle string) (domain.Profile, error)
	BaseURL(r *http.Request) string
	RenderTemplate(w http.ResponseWriter, name string, data interface{}) error
}

// Handler serves share pages and QR codes for card URLs.
type Handler struct {
	deps Dependencies
}

func NewHandler(deps Dependencies) Handler {
	return Handler{deps: deps}
}

const (
	defaultQRSize = 256
	minQRSize     = 64
	maxQRSize     = 1024
)

// QR answers a PNG QR code pointing at the card page for a handle.
func (h Handler) QR(w http.ResponseWriter, r *http.Request) {
	handle := strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/share/qr/"), ".png"))
	if handle == "" || strings.Contains(handle, "/") {
		http.NotFound(w, r)
		return
	}
	profile, err := h.deps.GetProfileByHandle(r.Context(), handle)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	size := defaultQRSize
	if raw := r.URL.Query().Get("s"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			size = parsed
		}
	}
	if size < minQRSize {
		size = minQRSize
	}
	if size > maxQRSize {
		size = maxQRSize
	}

	cardURL := h.deps.BaseURL(r) + "/cards/" + url.PathEscape(profile.Handle)
	png, err := qrcode.Encode(cardURL, qrcode.Medium, size)
	if err != nil {
		http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(png)
}

// Page renders the share page with the card link and QR code.
func (h Handler) Page(w http.ResponseWriter, r *http.Request) {
	handle := strings.TrimSpace(strings.TrimPrefix(r.URL.Path, "/share/"))
	if handle == "" || strings.Contains(handle, "/") {
		http.NotFound(w, r)
		return
	}
	profile, err := h.deps.GetProfileByHandle(r.Context(), handle)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	data := map[string]interface{}{
		"Profile": profile,
		"CardURL": h.deps.BaseURL(r) + "/cards/" + url.PathEscape(profile.Handle),
		"QRURL":   "/share/qr/" + url.PathEscape(profile.Handle) + ".png",
	}
	if err := h.deps.RenderTemplate(w, "share.html", data); err != nil {
		http.Error(w, "Template error", http.StatusInternalServerError)
	}
}
