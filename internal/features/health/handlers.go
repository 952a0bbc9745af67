package health

import (
	"encoding/json"
	"image"
	"net/http"
	"os"
	"path/filepath"

	"tapcard/internal/config"
	"tapcard/internal/platform/media"
)

type Handler struct {
	cfg config.Config
}

// NewHandler builds a health handler with config dependencies.
func NewHandler(cfg config.Config) Handler {
	return Handler{cfg: cfg}
}

// tinyPNG is a 1x1 transparent PNG used to probe the image pipeline.
var tinyPNG = []byte{137, 80, 78, 71, 13, 10, 26, 10, 0, 0, 0, 13, 73, 72, 68, 82, 0, 0, 0, 1, 0, 0, 0, 1, 8, 6, 0, 0, 0, 31, 21, 196, 137, 0, 0, 0, 10, 73, 68, 65, 84, 120, 156, 99, 0, 1, 0, 0, 5, 0, 1, 13, 10, 44, 118, 0, 0, 0, 0, 73, 69, 78, 68, 174, 66, 96, 130}

// ImageHealth reports availability of the image processing pipeline.
func (h Handler) ImageHealth(w http.ResponseWriter, _ *http.Request) {
	test := map[string]interface{}{
		"write_ok":  false,
		"resize_ok": false,
		"decode_ok": false,
	}
	status := map[string]interface{}{
		"profile_picture": test,
	}
	tmpDir := filepath.Join(h.cfg.ProfilePictureDir, "cache")
	if err := os.MkdirAll(tmpDir, 0755); err == nil {
		test["write_ok"] = true
		tmpInput := filepath.Join(tmpDir, "health_input.png")
		tmpOutput := filepath.Join(tmpDir, "health_output.png")
		_ = os.WriteFile(tmpInput, tinyPNG, 0644)
		if err := media.ResizeAndCache(tmpInput, tmpOutput, 1); err == nil {
			test["resize_ok"] = true
		}
		if file, err := os.Open(tmpOutput); err == nil {
			if _, _, err := image.Decode(file); err == nil {
				test["decode_ok"] = true
			}
			_ = file.Close()
		}
		_ = os.Remove(tmpInput)
		_ = os.Remove(tmpOutput)
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(status)
}
