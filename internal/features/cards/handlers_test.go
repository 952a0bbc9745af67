package cards

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"tapcard/internal/domain"
	"tapcard/internal/profilecache"
)

type fakeSource struct {
	profiles map[string]domain.Profile
	err      error
}

func (s *fakeSource) GetProfile(ctx context.Context, id string) (domain.Profile, error) {
	if s.err != nil {
		return domain.Profile{}, s.err
	}
	profile, ok := s.profiles[id]
	if !ok {
		return domain.Profile{}, errors.New("unknown profile")
	}
	return profile, nil
}

type memStore struct {
	current string
}

func (m *memStore) LoadCurrentProfile(ctx context.Context) (string, error) { return m.current, nil }
func (m *memStore) SaveCurrentProfile(ctx context.Context, id string) error {
	m.current = id
	return nil
}

type fakeDeps struct {
	cache    *profilecache.Cache
	byHandle map[string]domain.Profile
	rendered string
}

func (f *fakeDeps) HasAccount(ctx context.Context) (bool, error) { return true, nil }

func (f *fakeDeps) GetProfileByHandle(ctx context.Context, handle string) (domain.Profile, error) {
	profile, ok := f.byHandle[handle]
	if !ok {
		return domain.Profile{}, errors.New("no such handle")
	}
	return profile, nil
}

func (f *fakeDeps) ProfileCache() *profilecache.Cache { return f.cache }

func (f *fakeDeps) RenderTemplate(w http.ResponseWriter, name string, data interface{}) error {
	f.rendered = name
	fmt.Fprint(w, name)
	return nil
}

func (f *fakeDeps) BaseURL(r *http.Request) string { return "http://cards.test" }

func newDeps(source *fakeSource) *fakeDeps {
	cache := profilecache.New(source, &memStore{}, profilecache.Options{
		TTL:          time.Minute,
		FetchTimeout: time.Second,
	})
	byHandle := map[string]domain.Profile{}
	for _, p := range source.profiles {
		byHandle[p.Handle] = p
	}
	return &fakeDeps{cache: cache, byHandle: byHandle}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestCardRendersAfterFetchSettles(t *testing.T) {
	deps := newDeps(&fakeSource{profiles: map[string]domain.Profile{
		"p1": {ID: "p1", Handle: "ada", FullName: "Ada Lovelace"},
	}})
	handler := NewHandler(deps)

	// First hit starts the fetch and renders the loading page.
	rec := httptest.NewRecorder()
	handler.Card(rec, httptest.NewRequest("GET", "/cards/ada", nil))
	if deps.rendered != "card_loading.html" {
		t.Fatalf("first render = %q", deps.rendered)
	}

	waitFor(t, func() bool { return !deps.cache.Loading("p1") })

	rec = httptest.NewRecorder()
	handler.Card(rec, httptest.NewRequest("GET", "/cards/ada", nil))
	if deps.rendered != "card.html" {
		t.Fatalf("second render = %q", deps.rendered)
	}
}

func TestCardUnknownHandle404(t *testing.T) {
	deps := newDeps(&fakeSource{profiles: map[string]domain.Profile{}})
	handler := NewHandler(deps)

	rec := httptest.NewRecorder()
	handler.Card(rec, httptest.NewRequest("GET", "/cards/nobody", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestCardJSONLoadingThenOK(t *testing.T) {
	deps := newDeps(&fakeSource{profiles: map[string]domain.Profile{
		"p1": {ID: "p1", Handle: "ada", FullName: "Ada Lovelace"},
	}})
	handler := NewHandler(deps)

	rec := httptest.NewRecorder()
	handler.CardJSON(rec, httptest.NewRequest("GET", "/api/cards/p1", nil))
	if rec.Code != http.StatusAccepted {
		t.Fatalf("status while loading = %d", rec.Code)
	}

	waitFor(t, func() bool { return !deps.cache.Loading("p1") })

	rec = httptest.NewRecorder()
	handler.CardJSON(rec, httptest.NewRequest("GET", "/api/cards/p1", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status after settle = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Ada Lovelace") {
		t.Fatalf("body = %q", rec.Body.String())
	}
}

func TestCardJSONFetchErrorIsBadGateway(t *testing.T) {
	deps := newDeps(&fakeSource{err: errors.New("backend down")})
	handler := NewHandler(deps)

	rec := httptest.NewRecorder()
	handler.CardJSON(rec, httptest.NewRequest("GET", "/api/cards/p1", nil))
	if rec.Code != http.StatusAccepted {
		t.Fatalf("status while loading = %d", rec.Code)
	}

	waitFor(t, func() bool { return deps.cache.Err("p1") != "" })

	rec = httptest.NewRecorder()
	handler.CardJSON(rec, httptest.NewRequest("GET", "/api/cards/p1", nil))
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status after failure = %d", rec.Code)
	}
}

func TestCurrentCardRoundTrip(t *testing.T) {
	deps := newDeps(&fakeSource{profiles: map[string]domain.Profile{
		"p1": {ID: "p1", Handle: "ada"},
	}})
	handler := NewHandler(deps)

	r := httptest.NewRequest("PUT", "/api/cards/current", strings.NewReader(`{"profile_id":"p1"}`))
	rec := httptest.NewRecorder()
	handler.CurrentCard(rec, r)
	if rec.Code != http.StatusOK {
		t.Fatalf("put status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.CurrentCard(rec, httptest.NewRequest("GET", "/api/cards/current", nil))
	if !strings.Contains(rec.Body.String(), `"p1"`) {
		t.Fatalf("get body = %q", rec.Body.String())
	}
}

func TestIndexRedirectsToOnboardingWithoutCurrent(t *testing.T) {
	deps := newDeps(&fakeSource{profiles: map[string]domain.Profile{}})
	handler := NewHandler(deps)

	rec := httptest.NewRecorder()
	handler.Index(rec, httptest.NewRequest("GET", "/", nil))
	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != "/onboarding" {
		t.Fatalf("redirect = %q", got)
	}
}
