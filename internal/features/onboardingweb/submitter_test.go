package onboardingweb

import (
	"context"
	"errors"
	"testing"

	"tapcard/internal/domain"
	"tapcard/internal/onboarding"
)

type fakeStore struct {
	profiles map[string]domain.Profile
	handles  map[string]bool
	invites  []string
	current  string
	fail     error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		profiles: map[string]domain.Profile{},
		handles:  map[string]bool{},
	}
}

func (f *fakeStore) CreateProfile(ctx context.Context, profile domain.Profile) error {
	if f.fail != nil {
		return f.fail
	}
	f.profiles[profile.ID] = profile
	f.handles[profile.Handle] = true
	return nil
}

func (f *fakeStore) CheckHandleCollision(ctx context.Context, handle, excludeID string) error {
	if f.handles[handle] {
		return errors.New("handle taken")
	}
	return nil
}

func (f *fakeStore) CreateInvite(ctx context.Context, token, profileID, email, role string) error {
	f.invites = append(f.invites, email)
	return nil
}

func (f *fakeStore) SetCurrentProfile(ctx context.Context, id string) error {
	f.current = id
	return nil
}

func TestSubmitCreatesProfileAndSetsCurrent(t *testing.T) {
	store := newFakeStore()
	submitter := NewSubmitter(store)

	err := submitter.Submit(context.Background(), onboarding.Draft{
		FullName: "Ada Lovelace",
		Theme:    domain.Theme{ID: "noir"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(store.profiles) != 1 {
		t.Fatalf("profiles = %d", len(store.profiles))
	}
	for _, profile := range store.profiles {
		if profile.Handle != "ada-lovelace" {
			t.Fatalf("handle = %q", profile.Handle)
		}
		if store.current != profile.ID {
			t.Fatal("current pointer not set")
		}
		if !profile.PublishedAt.Valid {
			t.Fatal("expected published timestamp")
		}
	}
}

func TestSubmitSuffixesHandleOnCollision(t *testing.T) {
	store := newFakeStore()
	store.handles["ada-lovelace"] = true
	submitter := NewSubmitter(store)

	err := submitter.Submit(context.Background(), onboarding.Draft{FullName: "Ada Lovelace"})
	if err != nil {
		t.Fatal(err)
	}
	for _, profile := range store.profiles {
		if profile.Handle != "ada-lovelace-2" {
			t.Fatalf("handle = %q", profile.Handle)
		}
	}
}

func TestSubmitInvitesOrganizationMembers(t *testing.T) {
	store := newFakeStore()
	submitter := NewSubmitter(store)

	err := submitter.Submit(context.Background(), onboarding.Draft{
		FullName: "Ada Lovelace",
		Organization: &domain.Organization{
			Name: "Analytical Engines",
			Members: []domain.OrgMember{
				{Email: "babbage@example.com", Role: domain.RoleAdmin},
				{Email: "menabrea@example.com", Role: domain.RoleMember},
			},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(store.invites) != 2 {
		t.Fatalf("invites = %v", store.invites)
	}
}

func TestSubmitPropagatesStorageError(t *testing.T) {
	store := newFakeStore()
	store.fail = errors.New("disk full")
	submitter := NewSubmitter(store)

	if err := submitter.Submit(context.Background(), onboarding.Draft{FullName: "Ada Lovelace"}); err == nil {
		t.Fatal("expected error")
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Ada Lovelace":     "ada-lovelace",
		"  Grace  Hopper ": "grace-hopper",
		"Æmilía Nóttúr":    "æmilía-nóttúr",
		"!!!":              "",
	}
	for in, want := range cases {
		if got := slugify(in); got != want {
			t.Errorf("slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

type fakeDraftAPI struct {
	drafts  []onboarding.Draft
	created domain.Profile
	err     error
}

func (f *fakeDraftAPI) Submit(ctx context.Context, draft onboarding.Draft) (domain.Profile, error) {
	f.drafts = append(f.drafts, draft)
	return f.created, f.err
}

func TestRemoteSubmitSetsCurrentToUpstreamProfile(t *testing.T) {
	store := newFakeStore()
	api := &fakeDraftAPI{created: domain.Profile{ID: "upstream-1"}}
	submitter := NewRemoteSubmitter(api, store)

	err := submitter.Submit(context.Background(), onboarding.Draft{FullName: "Ada Lovelace"})
	if err != nil {
		t.Fatal(err)
	}
	if len(api.drafts) != 1 {
		t.Fatalf("expected one upstream submission, got %d", len(api.drafts))
	}
	if store.current != "upstream-1" {
		t.Fatalf("expected current profile upstream-1, got %q", store.current)
	}
	if len(store.profiles) != 0 {
		t.Fatalf("remote submit must not create a local profile")
	}
}

func TestRemoteSubmitPropagatesAPIError(t *testing.T) {
	store := newFakeStore()
	api := &fakeDraftAPI{err: errors.New("upstream down")}
	submitter := NewRemoteSubmitter(api, store)

	if err := submitter.Submit(context.Background(), onboarding.Draft{FullName: "Ada Lovelace"}); err == nil {
		t.Fatal("expected error")
	}
	if store.current != "" {
		t.Fatalf("current pointer must stay unset on failure, got %q", store.current)
	}
}
