package onboardingweb

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gorilla/sessions"
)

type fakeDeps struct {
	*fakeStore
	store    *sessions.CookieStore
	rendered string
}

func newFakeDeps() *fakeDeps {
	return &fakeDeps{
		fakeStore: newFakeStore(),
		store:     sessions.NewCookieStore([]byte("test-secret")),
	}
}

func (f *fakeDeps) GetSession(r *http.Request, name string) (*sessions.Session, error) {
	return f.store.Get(r, name)
}

func (f *fakeDeps) EnsureCSRF(session *sessions.Session) string { return "token" }

func (f *fakeDeps) ValidateCSRF(session *sessions.Session, token string) bool { return true }

func (f *fakeDeps) RenderTemplate(w http.ResponseWriter, name string, data interface{}) error {
	f.rendered = name
	fmt.Fprint(w, name)
	return nil
}

// wizard drives the handler while carrying session cookies between requests.
type wizard struct {
	t       *testing.T
	handler Handler
	cookies []*http.Cookie
}

func (wz *wizard) post(path string, form url.Values, fn http.HandlerFunc) map[string]interface{} {
	wz.t.Helper()
	form.Set("csrf_token", "token")
	r := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range wz.cookies {
		r.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	fn(rec, r)
	if cookies := rec.Result().Cookies(); len(cookies) > 0 {
		wz.cookies = cookies
	}
	if rec.Code != http.StatusOK {
		wz.t.Fatalf("POST %s: status %d body %q", path, rec.Code, rec.Body.String())
	}
	var state map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &state); err != nil {
		wz.t.Fatalf("POST %s: bad JSON %q", path, rec.Body.String())
	}
	return state
}

func (wz *wizard) step(state map[string]interface{}) int {
	wz.t.Helper()
	step, ok := state["step"].(float64)
	if !ok {
		wz.t.Fatalf("no step in state %v", state)
	}
	return int(step)
}

func TestWizardHappyPath(t *testing.T) {
	deps := newFakeDeps()
	handler := NewHandler(deps)
	wz := &wizard{t: t, handler: handler}

	state := wz.post("/onboarding/field", url.Values{"field": {"full_name"}, "value": {"Ada Lovelace"}}, handler.UpdateField)
	if wz.step(state) != 1 {
		t.Fatalf("step = %v", state["step"])
	}
	state = wz.post("/onboarding/next", url.Values{}, handler.Next)
	if wz.step(state) != 2 {
		t.Fatalf("after name: step = %v, errors = %v", state["step"], state["errors"])
	}

	wz.post("/onboarding/field", url.Values{"field": {"link"}, "platform": {"GitHub"}, "value": {"github.com/ada"}}, handler.UpdateField)
	state = wz.post("/onboarding/next", url.Values{}, handler.Next)
	if wz.step(state) != 3 {
		t.Fatalf("after links: step = %v, errors = %v", state["step"], state["errors"])
	}

	state = wz.post("/onboarding/skip", url.Values{}, handler.Skip)
	if wz.step(state) != 4 {
		t.Fatalf("after picture skip: step = %v", state["step"])
	}

	wz.post("/onboarding/field", url.Values{"field": {"theme"}, "value": {"noir"}}, handler.UpdateField)
	state = wz.post("/onboarding/next", url.Values{}, handler.Next)
	if wz.step(state) != 5 {
		t.Fatalf("after theme: step = %v, errors = %v", state["step"], state["errors"])
	}

	state = wz.post("/onboarding/skip", url.Values{}, handler.Skip)
	if state["completed"] != true {
		t.Fatalf("skip on final step should submit: %v", state)
	}
	if len(deps.profiles) != 1 {
		t.Fatalf("profiles = %d", len(deps.profiles))
	}
}

func TestWizardBlocksInvalidStep(t *testing.T) {
	deps := newFakeDeps()
	handler := NewHandler(deps)
	wz := &wizard{t: t, handler: handler}

	state := wz.post("/onboarding/next", url.Values{}, handler.Next)
	if wz.step(state) != 1 {
		t.Fatalf("step advanced without a name: %v", state)
	}
	errs, _ := state["errors"].(map[string]interface{})
	if _, ok := errs["fullName"]; !ok {
		t.Fatalf("expected fullName error, got %v", errs)
	}
}

func TestWizardTranslatesErrors(t *testing.T) {
	deps := newFakeDeps()
	handler := NewHandler(deps)
	wz := &wizard{t: t, handler: handler}

	state := wz.post("/onboarding/next", url.Values{}, handler.Next)
	errs, _ := state["errors"].(map[string]interface{})
	if errs["fullName"] != "Full name is required" {
		t.Fatalf("error = %v", errs["fullName"])
	}
}

func TestWizardSessionIsolatesMachines(t *testing.T) {
	deps := newFakeDeps()
	handler := NewHandler(deps)

	first := &wizard{t: t, handler: handler}
	first.post("/onboarding/field", url.Values{"field": {"full_name"}, "value": {"Ada Lovelace"}}, handler.UpdateField)
	state := first.post("/onboarding/next", url.Values{}, handler.Next)
	if first.step(state) != 2 {
		t.Fatalf("first wizard step = %v", state["step"])
	}

	second := &wizard{t: t, handler: handler}
	state = second.post("/onboarding/field", url.Values{"field": {"theme"}, "value": {"noir"}}, handler.UpdateField)
	if second.step(state) != 1 {
		t.Fatalf("second wizard should start fresh: %v", state["step"])
	}
}

func TestShowRendersWizardTemplate(t *testing.T) {
	deps := newFakeDeps()
	handler := NewHandler(deps)

	rec := httptest.NewRecorder()
	handler.Show(rec, httptest.NewRequest("GET", "/onboarding", nil))
	if deps.rendered != "onboarding.html" {
		t.Fatalf("rendered %q", deps.rendered)
	}
}
