package pictures

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/sessions"
	"tapcard/internal/domain"
	"tapcard/internal/platform/core"
	"tapcard/internal/platform/media"
)

type Config struct {
	ProfilePictureDir string
	StaticDir         string
	AllowedExts       map[string]bool
	MaxUploadBytes    int64
}

type Dependencies interface {
	Store
	GetSession(r *http.Request, name string) (*sessions.Session, error)
	ValidateCSRF(session *sessions.Session, token string) bool
	CurrentAccount(r *http.Request) (domain.Account, error)
	GetProfile(ctx context.Context, id string) (domain.Profile, error)
	GetProfileByHandle(ctx context.Context, handle string) (domain.Profile, error)
	UpdateProfile(ctx context.Context, profile domain.Profile) error
	AuditAttempt(ctx context.Context, actorID int, action, target string, meta map[string]string)
	AuditOutcome(ctx context.Context, actorID int, action, target string, err error, meta map[string]string)
}

type Handler struct {
	cfg  Config
	deps Dependencies
	svc  Service
}

func NewHandler(cfg Config, deps Dependencies) Handler {
	return Handler{cfg: cfg, deps: deps, svc: NewService(deps)}
}

const sessionName = "tapcard_session"

// Serve delivers the active picture of the profile named in the path,
// resized to the requested dimension and cached on disk.
func (h Handler) Serve(w http.ResponseWriter, r *http.Request) {
	handle := strings.TrimSpace(strings.TrimPrefix(r.URL.Path, "/pictures/"))
	if handle == "" {
		http.NotFound(w, r)
		return
	}
	profile, err := h.deps.GetProfileByHandle(r.Context(), handle)
	if err != nil {
		h.serveDefault(w, r)
		return
	}
	filename := strings.TrimSpace(profile.ProfilePicture)
	if filename == "" {
		h.serveDefault(w, r)
		return
	}

	size := parsePictureSize(r)
	sourcePath := filepath.Join(h.cfg.ProfilePictureDir, filepath.Base(filename))
	if _, err := os.Stat(sourcePath); err != nil {
		h.serveDefault(w, r)
		return
	}
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	cachePath := filepath.Join(h.cfg.ProfilePictureDir, "cache", fmt.Sprintf("%s_%d.png", base, size))
	if _, err := os.Stat(cachePath); err == nil {
		servePNG(w, r, cachePath)
		return
	}
	if err := media.ResizeAndCache(sourcePath, cachePath, size); err != nil {
		if errors.Is(err, media.ErrImageTooSmall) {
			servePNG(w, r, sourcePath)
			return
		}
		servePNG(w, r, sourcePath)
		return
	}
	servePNG(w, r, cachePath)
}

func (h Handler) serveDefault(w http.ResponseWriter, r *http.Request) {
	servePNG(w, r, filepath.Join(h.cfg.StaticDir, "img", "default_profile_picture.png"))
}

func servePNG(w http.ResponseWriter, r *http.Request, path string) {
	w.Header().Set("Content-Type", "image/png")
	http.ServeFile(w, r, path)
}

// Upload stores a new picture for a profile and makes it the active one.
func (h Handler) Upload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	session, _ := h.deps.GetSession(r, sessionName)
	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(h.cfg.MaxUploadBytes); err != nil {
		http.Error(w, "Upload too large", http.StatusBadRequest)
		return
	}
	if !h.deps.ValidateCSRF(session, r.FormValue("csrf_token")) {
		http.Error(w, "Invalid CSRF token", http.StatusBadRequest)
		return
	}
	account, err := h.deps.CurrentAccount(r)
	if err != nil {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}
	profile, err := h.deps.GetProfile(r.Context(), strings.TrimSpace(r.FormValue("profile_id")))
	if err != nil {
		http.Error(w, "Unknown profile", http.StatusNotFound)
		return
	}
	file, header, err := r.FormFile("picture")
	if err != nil || header == nil || header.Filename == "" {
		http.Error(w, "Missing picture", http.StatusBadRequest)
		return
	}
	defer file.Close()
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !h.cfg.AllowedExts[ext] {
		http.Error(w, "Picture must be an image (png/jpg/gif/webp)", http.StatusBadRequest)
		return
	}
	if err := os.MkdirAll(h.cfg.ProfilePictureDir, 0755); err != nil {
		http.Error(w, "Failed to store picture", http.StatusInternalServerError)
		return
	}
	filename := fmt.Sprintf("picture_%d.png", time.Now().UTC().UnixNano())
	if err := media.WritePicture(file, filepath.Join(h.cfg.ProfilePictureDir, filename)); err != nil {
		writePictureStoreError(w, err)
		return
	}
	alt := strings.TrimSpace(r.FormValue("alt"))
	meta := map[string]string{"filename": filename}
	h.deps.AuditAttempt(r.Context(), account.ID, "picture.upload", profile.ID, meta)
	picID, err := h.svc.Create(r.Context(), profile.ID, filename, alt)
	if err != nil {
		h.deps.AuditOutcome(r.Context(), account.ID, "picture.upload", profile.ID, err, meta)
		http.Error(w, "Failed to save picture", http.StatusInternalServerError)
		return
	}
	profile.ProfilePicture = filename
	err = h.deps.UpdateProfile(r.Context(), profile)
	h.deps.AuditOutcome(r.Context(), account.ID, "picture.upload", profile.ID, err, meta)
	if wantsJSON(r) {
		core.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"ok":       err == nil,
			"id":       picID,
			"filename": filename,
			"pictures": h.mustList(r.Context(), profile.ID),
		})
		return
	}
	http.Redirect(w, r, "/onboarding", http.StatusFound)
}

// UpdateAlt changes the alt text on an uploaded picture.
func (h Handler) UpdateAlt(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
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
	account, err := h.deps.CurrentAccount(r)
	if err != nil {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}
	profileID := strings.TrimSpace(r.FormValue("profile_id"))
	picID, err := strconv.ParseInt(strings.TrimSpace(r.FormValue("picture_id")), 10, 64)
	if err != nil || picID <= 0 {
		http.Error(w, "Invalid picture", http.StatusBadRequest)
		return
	}
	alt := strings.TrimSpace(r.FormValue("alt"))
	if err := h.svc.UpdateAlt(r.Context(), profileID, picID, alt); err != nil {
		h.deps.AuditOutcome(r.Context(), account.ID, "picture.alt", profileID, err, nil)
		http.Error(w, "Failed to update picture", http.StatusInternalServerError)
		return
	}
	h.deps.AuditOutcome(r.Context(), account.ID, "picture.alt", profileID, nil, nil)
	core.WriteJSON(w, http.StatusOK, map[string]interface{}{"ok": true})
}

// Delete removes an uploaded picture and clears it from the profile if active.
func (h Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
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
	account, err := h.deps.CurrentAccount(r)
	if err != nil {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}
	profile, err := h.deps.GetProfile(r.Context(), strings.TrimSpace(r.FormValue("profile_id")))
	if err != nil {
		http.Error(w, "Unknown profile", http.StatusNotFound)
		return
	}
	picID, err := strconv.ParseInt(strings.TrimSpace(r.FormValue("picture_id")), 10, 64)
	if err != nil || picID <= 0 {
		http.Error(w, "Invalid picture", http.StatusBadRequest)
		return
	}
	h.deps.AuditAttempt(r.Context(), account.ID, "picture.delete", profile.ID, nil)
	filename, err := h.svc.Delete(r.Context(), profile.ID, picID)
	if err != nil {
		h.deps.AuditOutcome(r.Context(), account.ID, "picture.delete", profile.ID, err, nil)
		http.Error(w, "Failed to delete picture", http.StatusInternalServerError)
		return
	}
	if filename != "" {
		_ = os.Remove(filepath.Join(h.cfg.ProfilePictureDir, filename))
		if profile.ProfilePicture == filename {
			profile.ProfilePicture = ""
			_ = h.deps.UpdateProfile(r.Context(), profile)
		}
	}
	h.deps.AuditOutcome(r.Context(), account.ID, "picture.delete", profile.ID, nil, map[string]string{"filename": filename})
	core.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"ok":       true,
		"pictures": h.mustList(r.Context(), profile.ID),
	})
}

func (h Handler) mustList(ctx context.Context, profileID string) []domain.ProfilePicture {
	pics, err := h.svc.List(ctx, profileID)
	if err != nil {
		return []domain.ProfilePicture{}
	}
	return pics
}
