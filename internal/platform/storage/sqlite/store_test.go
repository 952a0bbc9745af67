package sqlitestore

import (
	"context"
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
	"tapcard/internal/domain"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	if err := InitDB(db); err != nil {
		t.Fatalf("init db: %v", err)
	}
	return db
}

// TestProfileRoundTrip verifies profile JSON columns survive storage.
func TestProfileRoundTrip(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	profile := domain.Profile{
		ID:       "p1",
		Handle:   "Ada",
		FullName: "Ada Lovelace",
		Headline: "Analyst",
		Links: []domain.Link{
			{Platform: "github", URL: "https://github.com/ada"},
		},
		Theme: domain.Theme{ID: "noir", Name: "Noir studio", TextColor: "#E8ECF1", BackgroundColor: "#10141B", PrimaryColor: "#27D9E5"},
		Organization: &domain.Organization{
			Name: "Analytical Engines",
			Members: []domain.OrgMember{
				{Email: "a@x.com", Role: domain.RoleAdmin, Status: domain.MemberPending},
			},
		},
		LockedFeatures: []string{"shop"},
	}
	if err := CreateProfile(ctx, db, profile); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := GetProfile(ctx, db, "p1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Handle != "ada" {
		t.Fatalf("handle should lower-case, got %q", got.Handle)
	}
	if len(got.Links) != 1 || got.Links[0].URL != "https://github.com/ada" {
		t.Fatalf("links did not round-trip: %+v", got.Links)
	}
	if got.Theme.ID != "noir" || got.Theme.PrimaryColor != "#27D9E5" {
		t.Fatalf("theme did not round-trip: %+v", got.Theme)
	}
	if got.Organization == nil || got.Organization.Members[0].Email != "a@x.com" {
		t.Fatalf("organization did not round-trip: %+v", got.Organization)
	}
	if len(got.LockedFeatures) != 1 || got.LockedFeatures[0] != "shop" {
		t.Fatalf("locked features did not round-trip: %+v", got.LockedFeatures)
	}

	byHandle, err := GetProfileByHandle(ctx, db, "ADA")
	if err != nil || byHandle.ID != "p1" {
		t.Fatalf("lookup by handle: %v %+v", err, byHandle)
	}

	if err := CheckHandleCollision(ctx, db, "ada", "p2"); err == nil {
		t.Fatalf("expected handle collision")
	}
	if err := CheckHandleCollision(ctx, db, "ada", "p1"); err != nil {
		t.Fatalf("own handle should not collide: %v", err)
	}
}

// TestDeleteProfileCascades verifies dependent rows go with the profile.
func TestDeleteProfileCascades(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if err := CreateProfile(ctx, db, domain.Profile{ID: "p1", Handle: "ada", FullName: "Ada Lovelace"}); err != nil {
		t.Fatalf("create profile: %v", err)
	}
	if err := CreateLead(ctx, db, domain.Lead{ID: "l1", ProfileID: "p1", Name: "Grace"}); err != nil {
		t.Fatalf("create lead: %v", err)
	}
	if err := CreateContact(ctx, db, domain.Contact{ID: "c1", ProfileID: "p1", Name: "Charles"}); err != nil {
		t.Fatalf("create contact: %v", err)
	}

	if err := DeleteProfile(ctx, db, "p1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	leads, err := ListLeads(ctx, db, "p1", "")
	if err != nil {
		t.Fatalf("list leads: %v", err)
	}
	if len(leads) != 0 {
		t.Fatalf("leads should cascade, got %v", leads)
	}
	contacts, err := ListContacts(ctx, db, "p1")
	if err != nil {
		t.Fatalf("list contacts: %v", err)
	}
	if len(contacts) != 0 {
		t.Fatalf("contacts should cascade, got %v", contacts)
	}
}

// TestLeadStatusLifecycle verifies status defaulting and validation.
func TestLeadStatusLifecycle(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if err := CreateLead(ctx, db, domain.Lead{ID: "l1", ProfileID: "p1", Name: "Grace"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	lead, err := GetLead(ctx, db, "p1", "l1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if lead.Status != domain.LeadNew {
		t.Fatalf("expected default status new, got %q", lead.Status)
	}

	if err := UpdateLeadStatus(ctx, db, "p1", "l1", "bogus"); err == nil {
		t.Fatalf("invalid status accepted")
	}
	if err := UpdateLeadStatus(ctx, db, "p1", "l1", domain.LeadContacted); err != nil {
		t.Fatalf("update status: %v", err)
	}
	filtered, err := ListLeads(ctx, db, "p1", domain.LeadContacted)
	if err != nil || len(filtered) != 1 {
		t.Fatalf("status filter: %v %v", err, filtered)
	}
}

// TestCurrentStore verifies the durable current-profile pointer.
func TestCurrentStore(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	store := NewCurrentStore(db)

	if current, err := store.LoadCurrentProfile(ctx); err != nil || current != "" {
		t.Fatalf("expected empty pointer, got %q %v", current, err)
	}
	if err := store.SaveCurrentProfile(ctx, "p1"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if current, _ := store.LoadCurrentProfile(ctx); current != "p1" {
		t.Fatalf("expected p1, got %q", current)
	}
	if err := store.SaveCurrentProfile(ctx, ""); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if current, _ := store.LoadCurrentProfile(ctx); current != "" {
		t.Fatalf("expected reset pointer, got %q", current)
	}
}

// TestInviteRoundTrip verifies invitation create/get/use.
func TestInviteRoundTrip(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if err := CreateInvite(ctx, db, "tok1", "p1", "A@X.com", domain.RoleMember); err != nil {
		t.Fatalf("create: %v", err)
	}
	invite, err := GetInviteByToken(ctx, db, "tok1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if invite.Email != "a@x.com" {
		t.Fatalf("email should lower-case, got %q", invite.Email)
	}
	if invite.UsedAt.Valid {
		t.Fatalf("new invite should be unused")
	}
	if err := MarkInviteUsed(ctx, db, invite.ID); err != nil {
		t.Fatalf("mark used: %v", err)
	}
	used, _ := GetInviteByToken(ctx, db, "tok1")
	if !used.UsedAt.Valid {
		t.Fatalf("invite should record used_at")
	}
}
