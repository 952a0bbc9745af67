package pictures

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"tapcard/internal/platform/media"
)

// parsePictureSize reads s/size from query params and clamps it to safe bounds.
func parsePictureSize(r *http.Request) int {
	raw := r.URL.Query().Get("s")
	if raw == "" {
		raw = r.URL.Query().Get("size")
	}
	if raw == "" {
		return media.DefaultSize
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return media.DefaultSize
	}
	if parsed < media.MinSize {
		return media.MinSize
	}
	if parsed > media.MaxSize {
		return media.MaxSize
	}
	return parsed
}

// wantsJSON reports whether the request's Accept header prefers JSON.
func wantsJSON(r *http.Request) bool {
	accept := strings.ToLower(r.Header.Get("Accept"))
	return strings.Contains(accept, "application/json") || strings.Contains(accept, "json")
}

// writePictureStoreError maps media errors to HTTP responses.
func writePictureStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, media.ErrImageTooSmall) {
		http.Error(w, "Image too small", http.StatusBadRequest)
		return
	}
	http.Error(w, "Failed to process picture", http.StatusInternalServerError)
}
