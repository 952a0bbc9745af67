package profileapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"tapcard/internal/domain"
	"tapcard/internal/onboarding"
)

func TestGetProfile(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if r.URL.Path != "/api/profiles/p1" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(domain.Profile{ID: "p1", FullName: "Ada Lovelace"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "secret-token", srv.Client())
	profile, err := client.GetProfile(context.Background(), "p1")
	if err != nil {
		t.Fatal(err)
	}
	if profile.FullName != "Ada Lovelace" {
		t.Fatalf("got %q", profile.FullName)
	}
	if gotAuth != "Bearer secret-token" {
		t.Fatalf("auth header = %q", gotAuth)
	}
}

func TestGetProfileNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", srv.Client())
	if _, err := client.GetProfile(context.Background(), "missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSubmitPostsDraft(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/profiles" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(domain.Profile{ID: "p1", Handle: "ada-lovelace"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", srv.Client())
	created, err := client.Submit(context.Background(), onboarding.Draft{
		FullName: "Ada Lovelace",
		Theme:    domain.Theme{ID: "noir"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if body["full_name"] != "Ada Lovelace" || body["theme_id"] != "noir" {
		t.Fatalf("unexpected payload %v", body)
	}
	if created.ID != "p1" {
		t.Fatalf("expected created profile id, got %q", created.ID)
	}
}

func TestSubmitErrorSurfacesStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", srv.Client())
	if _, err := client.Submit(context.Background(), onboarding.Draft{}); err == nil {
		t.Fatal("expected error")
	}
}
