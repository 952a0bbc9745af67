package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/sessions"
	"github.com/pquerna/otp/totp"
	"golang.org/x/crypto/bcrypt"
	"tapcard/internal/domain"
	"tapcard/internal/platform/core"
)

type Dependencies interface {
	HasAccount(ctx context.Context) (bool, error)
	GetAccountByUsername(ctx context.Context, username string) (domain.Account, error)
	CreateAccount(ctx context.Context, account domain.Account) (int64, error)
	GetSession(r *http.Request, name string) (*sessions.Session, error)
	EnsureCSRF(session *sessions.Session) string
	ValidateCSRF(session *sessions.Session, token string) bool
	RenderTemplate(w http.ResponseWriter, name string, data interface{}) error
	AuditOutcome(ctx context.Context, actorID int, action, target string, err error, meta map[string]string)
}

type Handler struct {
	deps Dependencies
}

func NewHandler(deps Dependencies) Handler {
	return Handler{deps: deps}
}

const sessionName = "tapcard_session"

// Login renders the login form and authenticates the operator account.
func (h Handler) Login(w http.ResponseWriter, r *http.Request) {
	if ok, err := h.deps.HasAccount(r.Context()); err != nil {
		http.Error(w, "Failed to load account", http.StatusInternalServerError)
		return
	} else if !ok {
		http.Redirect(w, r, "/setup", http.StatusFound)
		return
	}
	session, _ := h.deps.GetSession(r, sessionName)
	next := r.URL.Query().Get("next")
	if !core.IsSafeRedirect(next) {
		next = "/onboarding"
	}

	data := map[string]interface{}{
		"Error":     "",
		"Next":      next,
		"CSRFToken": h.deps.EnsureCSRF(session),
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
		username := strings.TrimSpace(r.FormValue("username"))
		account, err := h.deps.GetAccountByUsername(r.Context(), username)
		if err != nil {
			data["Error"] = "Invalid username"
			goto render
		}
		{
			password := r.FormValue("password")
			code := strings.TrimSpace(r.FormValue("totp"))

			if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
				data["Error"] = "Invalid password"
				h.deps.AuditOutcome(r.Context(), account.ID, "auth.login", username, err, nil)
			} else if account.TOTPSecret != "" && !totp.Validate(code, account.TOTPSecret) {
				data["Error"] = "Invalid one-time code"
			} else {
				session.Values["user_id"] = int64(account.ID)
				if err := session.Save(r, w); err != nil {
					http.Error(w, "Session error", http.StatusInternalServerError)
					return
				}
				h.deps.AuditOutcome(r.Context(), account.ID, "auth.login", username, nil, nil)
				http.Redirect(w, r, next, http.StatusFound)
				return
			}
		}
	}

render:
	if err := session.Save(r, w); err != nil {
		http.Error(w, "Session error", http.StatusInternalServerError)
		return
	}

	if err := h.deps.RenderTemplate(w, "login.html", data); err != nil {
		http.Error(w, "Template error", http.StatusInternalServerError)
	}
}

// Setup creates the first operator account with a fresh TOTP secret.
func (h Handler) Setup(w http.ResponseWriter, r *http.Request) {
	if ok, err := h.deps.HasAccount(r.Context()); err != nil {
		http.Error(w, "Failed to load account", http.StatusInternalServerError)
		return
	} else if ok {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}
	session, _ := h.deps.GetSession(r, sessionName)
	data := map[string]interface{}{
		"Error":     "",
		"CSRFToken": h.deps.EnsureCSRF(session),
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
		username := strings.TrimSpace(r.FormValue("username"))
		password := r.FormValue("password")
		switch {
		case username == "":
			data["Error"] = "Username is required"
		case len(password) < 8:
			data["Error"] = "Password must be at least 8 characters"
		default:
			hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
			if err != nil {
				http.Error(w, "Failed to create account", http.StatusInternalServerError)
				return
			}
			key, err := totp.Generate(totp.GenerateOpts{Issuer: "tapcard", AccountName: username})
			if err != nil {
				http.Error(w, "Failed to create account", http.StatusInternalServerError)
				return
			}
			id, err := h.deps.CreateAccount(r.Context(), domain.Account{
				Username:     username,
				Email:        strings.TrimSpace(r.FormValue("email")),
				PasswordHash: string(hash),
				TOTPSecret:   key.Secret(),
			})
			if err != nil {
				data["Error"] = "Failed to create account"
				h.deps.AuditOutcome(r.Context(), 0, "auth.setup", username, err, nil)
			} else {
				session.Values["user_id"] = id
				if err := session.Save(r, w); err != nil {
					http.Error(w, "Session error", http.StatusInternalServerError)
					return
				}
				h.deps.AuditOutcome(r.Context(), int(id), "auth.setup", username, nil, nil)
				data["TOTPSecret"] = key.Secret()
				data["TOTPURL"] = key.URL()
				if err := h.deps.RenderTemplate(w, "setup_done.html", data); err != nil {
					http.Error(w, "Template error", http.StatusInternalServerError)
				}
				return
			}
		}
	}

	if err := session.Save(r, w); err != nil {
		http.Error(w, "Session error", http.StatusInternalServerError)
		return
	}
	if err := h.deps.RenderTemplate(w, "setup.html", data); err != nil {
		http.Error(w, "Template error", http.StatusInternalServerError)
	}
}

// Logout clears the session and redirects to the home page.
func (h Handler) Logout(w http.ResponseWriter, r *http.Request) {
	session, _ := h.deps.GetSession(r, sessionName)
	session.Values = map[interface{}]interface{}{}
	session.Options.MaxAge = -1
	_ = session.Save(r, w)
	http.Redirect(w, r, "/", http.StatusFound)
}
