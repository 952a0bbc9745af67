package onboardingweb

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"tapcard/internal/onboarding"
	"tapcard/internal/platform/core"
	"tapcard/internal/themes"
)

type Dependencies interface {
	SubmitterDependencies
	GetSession(r *http.Request, name string) (*sessions.Session, error)
	EnsureCSRF(session *sessions.Session) string
	ValidateCSRF(session *sessions.Session, token string) bool
	RenderTemplate(w http.ResponseWriter, name string, data interface{}) error
}

type Handler struct {
	deps      Dependencies
	submitter onboarding.Submitter
	registry  *Registry
}

func NewHandler(deps Dependencies) Handler {
	return Handler{deps: deps, submitter: NewSubmitter(deps), registry: NewRegistry()}
}

// NewHandlerWithSubmitter overrides the storage-backed submitter, used when
// completed drafts go to an upstream profile API instead of local storage.
func NewHandlerWithSubmitter(deps Dependencies, submitter onboarding.Submitter) Handler {
	return Handler{deps: deps, submitter: submitter, registry: NewRegistry()}
}

const sessionName = "tapcard_session"

// machineFor resolves the wizard machine bound to the request's session,
// creating both the session key and the machine on first use.
func (h Handler) machineFor(w http.ResponseWriter, r *http.Request) (*onboarding.Machine, string, error) {
	session, _ := h.deps.GetSession(r, sessionName)
	key, _ := session.Values["onboarding_key"].(string)
	if key == "" {
		key = uuid.NewString()
		session.Values["onboarding_key"] = key
		if err := session.Save(r, w); err != nil {
			return nil, "", err
		}
	}
	machine := h.registry.GetOrCreate(key, func() *onboarding.Machine {
		return onboarding.NewMachine(h.submitter, Translate)
	})
	return machine, key, nil
}

// Show renders the wizard page for the current step.
func (h Handler) Show(w http.ResponseWriter, r *http.Request) {
	machine, _, err := h.machineFor(w, r)
	if err != nil {
		http.Error(w, "Session error", http.StatusInternalServerError)
		return
	}
	session, _ := h.deps.GetSession(r, sessionName)
	data := map[string]interface{}{
		"Step":      machine.Step(),
		"LastStep":  onboarding.LastStep,
		"Skippable": onboarding.Skippable(machine.Step()),
		"Draft":     machine.Draft(),
		"Errors":    machine.Errors(),
		"Themes":    themes.Options(),
		"CSRFToken": h.deps.EnsureCSRF(session),
	}
	if err := session.Save(r, w); err != nil {
		http.Error(w, "Session error", http.StatusInternalServerError)
		return
	}
	if err := h.deps.RenderTemplate(w, "onboarding.html", data); err != nil {
		http.Error(w, "Template error", http.StatusInternalServerError)
	}
}

// State reports the wizard state as JSON for polling clients.
func (h Handler) State(w http.ResponseWriter, r *http.Request) {
	machine, _, err := h.machineFor(w, r)
	if err != nil {
		core.WriteJSONError(w, http.StatusInternalServerError, "session error")
		return
	}
	h.writeState(w, machine)
}

// UpdateField applies a single field edit to the draft.
func (h Handler) UpdateField(w http.ResponseWriter, r *http.Request) {
	machine, ok := h.postMachine(w, r)
	if !ok {
		return
	}
	switch field := strings.TrimSpace(r.FormValue("field")); field {
	case "full_name":
		machine.UpdateFullName(r.FormValue("value"))
	case "link":
		machine.UpdateLink(r.FormValue("platform"), r.FormValue("value"))
	case "remove_link":
		machine.RemoveLink(r.FormValue("platform"))
	case "picture":
		machine.SetProfilePicture(strings.TrimSpace(r.FormValue("value")))
	case "theme":
		machine.SetTheme(strings.TrimSpace(r.FormValue("value")))
	case "org_name":
		machine.SetOrganizationName(r.FormValue("value"))
	case "member_add":
		machine.AddOrganizationMember(r.FormValue("email"), r.FormValue("role"))
	case "member_remove":
		index, err := strconv.Atoi(strings.TrimSpace(r.FormValue("index")))
		if err != nil {
			core.WriteJSONError(w, http.StatusBadRequest, "invalid member index")
			return
		}
		machine.RemoveOrganizationMember(index)
	default:
		core.WriteJSONError(w, http.StatusBadRequest, "unknown field")
		return
	}
	h.writeState(w, machine)
}

// Next advances the wizard when the current step validates.
func (h Handler) Next(w http.ResponseWriter, r *http.Request) {
	machine, ok := h.postMachine(w, r)
	if !ok {
		return
	}
	machine.NextStep(r.Context())
	h.afterStepChange(w, r, machine)
}

// Back returns to the previous step.
func (h Handler) Back(w http.ResponseWriter, r *http.Request) {
	machine, ok := h.postMachine(w, r)
	if !ok {
		return
	}
	machine.PreviousStep()
	h.writeState(w, machine)
}

// Skip skips the current step when the step allows it.
func (h Handler) Skip(w http.ResponseWriter, r *http.Request) {
	machine, ok := h.postMachine(w, r)
	if !ok {
		return
	}
	machine.SkipStep(r.Context())
	h.afterStepChange(w, r, machine)
}

// GoTo jumps back to an earlier step.
func (h Handler) GoTo(w http.ResponseWriter, r *http.Request) {
	machine, ok := h.postMachine(w, r)
	if !ok {
		return
	}
	target, err := strconv.Atoi(strings.TrimSpace(r.FormValue("step")))
	if err != nil {
		core.WriteJSONError(w, http.StatusBadRequest, "invalid step")
		return
	}
	machine.GoToStep(target)
	h.writeState(w, machine)
}

// Complete validates the whole draft and submits it.
func (h Handler) Complete(w http.ResponseWriter, r *http.Request) {
	machine, ok := h.postMachine(w, r)
	if !ok {
		return
	}
	machine.Complete(r.Context())
	h.afterStepChange(w, r, machine)
}

// afterStepChange drops the session machine once the wizard completed.
func (h Handler) afterStepChange(w http.ResponseWriter, r *http.Request, machine *onboarding.Machine) {
	if machine.Completed() {
		session, _ := h.deps.GetSession(r, sessionName)
		if key, _ := session.Values["onboarding_key"].(string); key != "" {
			h.registry.Drop(key)
			delete(session.Values, "onboarding_key")
			_ = session.Save(r, w)
		}
	}
	h.writeState(w, machine)
}

// postMachine enforces method and CSRF checks shared by all mutations.
func (h Handler) postMachine(w http.ResponseWriter, r *http.Request) (*onboarding.Machine, bool) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return nil, false
	}
	if err := r.ParseForm(); err != nil {
		core.WriteJSONError(w, http.StatusBadRequest, "bad request")
		return nil, false
	}
	session, _ := h.deps.GetSession(r, sessionName)
	if !h.deps.ValidateCSRF(session, r.FormValue("csrf_token")) {
		core.WriteJSONError(w, http.StatusBadRequest, "invalid CSRF token")
		return nil, false
	}
	machine, _, err := h.machineFor(w, r)
	if err != nil {
		core.WriteJSONError(w, http.StatusInternalServerError, "session error")
		return nil, false
	}
	return machine, true
}

func (h Handler) writeState(w http.ResponseWriter, machine *onboarding.Machine) {
	core.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"step":      machine.Step(),
		"completed": machine.Completed(),
		"skippable": onboarding.Skippable(machine.Step()),
		"draft":     machine.Draft(),
		"errors":    machine.Errors(),
	})
}
