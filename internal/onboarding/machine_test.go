package onboarding

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"tapcard/internal/domain"
)

type fakeSubmitter struct {
	mu     sync.Mutex
	calls  int
	err    error
	drafts []Draft
}

func (f *fakeSubmitter) Submit(ctx context.Context, draft Draft) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return f.err
	}
	f.drafts = append(f.drafts, draft)
	return nil
}

// TestStepGating verifies step 1 blocks on an invalid name and advances on
// a valid one, clearing errors.
func TestStepGating(t *testing.T) {
	m := NewMachine(&fakeSubmitter{}, nil)

	m.UpdateFullName("A")
	if m.NextStep(context.Background()) {
		t.Fatalf("single-letter name must not advance")
	}
	if m.Step() != StepFullName {
		t.Fatalf("expected step 1, got %d", m.Step())
	}
	if _, ok := m.Errors()["fullName"]; !ok {
		t.Fatalf("expected fullName error, got %v", m.Errors())
	}

	m.UpdateFullName("Ada Lovelace")
	if !m.NextStep(context.Background()) {
		t.Fatalf("valid name must advance")
	}
	if m.Step() != StepLinks {
		t.Fatalf("expected step 2, got %d", m.Step())
	}
	if len(m.Errors()) != 0 {
		t.Fatalf("errors should clear on advance, got %v", m.Errors())
	}
	if m.Draft().FullName != "Ada Lovelace" {
		t.Fatalf("unexpected normalized name %q", m.Draft().FullName)
	}
}

// TestSkipStepClearsLinks verifies skipping step 2 bypasses validation and
// discards partial link entries.
func TestSkipStepClearsLinks(t *testing.T) {
	m := NewMachine(&fakeSubmitter{}, nil)
	m.UpdateFullName("Ada Lovelace")
	if !m.NextStep(context.Background()) {
		t.Fatalf("step 1 advance failed")
	}

	m.UpdateLink("website", "not a url")
	if !m.SkipStep(context.Background()) {
		t.Fatalf("links step is skippable")
	}
	if m.Step() != StepPicture {
		t.Fatalf("expected step 3, got %d", m.Step())
	}
	if len(m.Draft().Links) != 0 {
		t.Fatalf("skipping links must clear them, got %v", m.Draft().Links)
	}
}

// TestSkipNotAllowedOnRequiredSteps verifies steps 1 and 4 cannot be
// skipped.
func TestSkipNotAllowedOnRequiredSteps(t *testing.T) {
	m := NewMachine(&fakeSubmitter{}, nil)
	if m.SkipStep(context.Background()) {
		t.Fatalf("step 1 must not be skippable")
	}
	if m.Step() != StepFullName {
		t.Fatalf("step changed on refused skip")
	}
}

// TestBackwardOnlyJump verifies goToStep refuses forward jumps.
func TestBackwardOnlyJump(t *testing.T) {
	m := NewMachine(&fakeSubmitter{}, nil)
	m.UpdateFullName("Ada Lovelace")
	m.NextStep(context.Background())
	m.SkipStep(context.Background())

	m.GoToStep(5)
	if m.Step() != StepPicture {
		t.Fatalf("forward jump must be a no-op, got step %d", m.Step())
	}

	m.GoToStep(1)
	if m.Step() != StepFullName {
		t.Fatalf("backward jump failed, got step %d", m.Step())
	}
	if len(m.Errors()) != 0 {
		t.Fatalf("errors should clear on jump")
	}
}

// TestPreviousStep verifies decrement and the step-1 no-op.
func TestPreviousStep(t *testing.T) {
	m := NewMachine(&fakeSubmitter{}, nil)
	m.PreviousStep()
	if m.Step() != StepFullName {
		t.Fatalf("previous on step 1 must no-op")
	}
	m.UpdateFullName("Ada Lovelace")
	m.NextStep(context.Background())
	m.PreviousStep()
	if m.Step() != StepFullName {
		t.Fatalf("expected step 1, got %d", m.Step())
	}
}

// TestUpdateLinkUpsertsByPlatform verifies platform names act as the unique
// key and empty values remove entries.
func TestUpdateLinkUpsertsByPlatform(t *testing.T) {
	m := NewMachine(&fakeSubmitter{}, nil)
	m.UpdateLink("github", "github.com/ada")
	m.UpdateLink("github", "github.com/lovelace")
	m.UpdateLink("mastodon", "hachyderm.io/@ada")

	links := m.Draft().Links
	if len(links) != 2 {
		t.Fatalf("expected 2 links, got %v", links)
	}
	if links[0].URL != "github.com/lovelace" {
		t.Fatalf("upsert did not replace, got %q", links[0].URL)
	}

	m.UpdateLink("github", "")
	if len(m.Draft().Links) != 1 {
		t.Fatalf("empty value must remove the link")
	}
	m.RemoveLink("MASTODON")
	if len(m.Draft().Links) != 0 {
		t.Fatalf("remove by platform is case-insensitive")
	}
}

// TestAddOrganizationMemberDedup verifies case-insensitive member
// de-duplication and the pending status.
func TestAddOrganizationMemberDedup(t *testing.T) {
	m := NewMachine(&fakeSubmitter{}, nil)
	m.SetOrganizationName("Analytical Engines")

	if !m.AddOrganizationMember("a@x.com", domain.RoleMember) {
		t.Fatalf("first add should succeed")
	}
	if m.AddOrganizationMember("a@x.com", domain.RoleMember) {
		t.Fatalf("duplicate add should fail")
	}
	if m.AddOrganizationMember("A@X.com", domain.RoleAdmin) {
		t.Fatalf("case-insensitive duplicate should fail")
	}
	if m.AddOrganizationMember("not-an-email", domain.RoleMember) {
		t.Fatalf("invalid email should fail")
	}
	if m.AddOrganizationMember("b@x.com", "owner") {
		t.Fatalf("invalid role should fail")
	}

	members := m.Draft().Organization.Members
	if len(members) != 1 {
		t.Fatalf("expected 1 member, got %v", members)
	}
	if members[0].Status != domain.MemberPending {
		t.Fatalf("expected pending status, got %q", members[0].Status)
	}

	m.RemoveOrganizationMember(5)
	m.RemoveOrganizationMember(0)
	if len(m.Draft().Organization.Members) != 0 {
		t.Fatalf("remove by index failed")
	}
}

// TestDebouncedNameValidation verifies the raw value lands immediately and
// the error arrives only after the debounce window.
func TestDebouncedNameValidation(t *testing.T) {
	m := NewMachine(&fakeSubmitter{}, nil)
	m.SetDebounceDelay(10 * time.Millisecond)

	m.UpdateFullName("A")
	if m.Draft().FullName != "A" {
		t.Fatalf("raw input must land immediately")
	}
	if _, ok := m.Errors()["fullName"]; ok {
		t.Fatalf("error must not flash before the debounce fires")
	}

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if _, ok := m.Errors()["fullName"]; ok {
			break
		}
		time.Sleep(time.Millisecond)
	}
	if _, ok := m.Errors()["fullName"]; !ok {
		t.Fatalf("debounced validation never fired")
	}

	m.UpdateFullName("Ada Lovelace")
	deadline = time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if _, ok := m.Errors()["fullName"]; !ok {
			break
		}
		time.Sleep(time.Millisecond)
	}
	if _, ok := m.Errors()["fullName"]; ok {
		t.Fatalf("error should clear once the name is valid")
	}
}

// TestCompleteSubmitsAndResets walks the whole wizard and checks the final
// submission payload.
func TestCompleteSubmitsAndResets(t *testing.T) {
	sub := &fakeSubmitter{}
	m := NewMachine(sub, nil)

	m.UpdateFullName("Ada Lovelace")
	if !m.NextStep(context.Background()) {
		t.Fatalf("step 1 failed")
	}
	m.UpdateLink("github", "github.com/ada")
	if !m.NextStep(context.Background()) {
		t.Fatalf("step 2 failed: %v", m.Errors())
	}
	if !m.SkipStep(context.Background()) {
		t.Fatalf("step 3 skip failed")
	}
	m.SetTheme("noir")
	if !m.NextStep(context.Background()) {
		t.Fatalf("step 4 failed: %v", m.Errors())
	}
	m.SetOrganizationName("Analytical Engines")
	if !m.AddOrganizationMember("a@x.com", domain.RoleAdmin) {
		t.Fatalf("member add failed")
	}
	if !m.NextStep(context.Background()) {
		t.Fatalf("final step failed: %v", m.Errors())
	}

	if sub.calls != 1 {
		t.Fatalf("expected 1 submission, got %d", sub.calls)
	}
	draft := sub.drafts[0]
	if draft.FullName != "Ada Lovelace" || draft.Theme.ID != "noir" {
		t.Fatalf("unexpected submitted draft %+v", draft)
	}
	if draft.Links[0].URL != "https://github.com/ada" {
		t.Fatalf("expected prefixed URL, got %q", draft.Links[0].URL)
	}
	if !m.Completed() {
		t.Fatalf("machine should mark completed")
	}
	if m.Step() != StepFullName || m.Draft().FullName != "" {
		t.Fatalf("draft should reset after submission")
	}
}

// TestSubmissionFailurePreservesDraft verifies the general error key and
// that entered data survives a failed submission.
func TestSubmissionFailurePreservesDraft(t *testing.T) {
	sub := &fakeSubmitter{err: errors.New("api down")}
	m := NewMachine(sub, nil)

	m.UpdateFullName("Ada Lovelace")
	m.NextStep(context.Background())
	m.SkipStep(context.Background())
	m.SkipStep(context.Background())
	m.NextStep(context.Background())

	if m.NextStep(context.Background()) {
		t.Fatalf("submission should fail")
	}
	if m.Errors()[GeneralErrorKey] == "" {
		t.Fatalf("expected general error, got %v", m.Errors())
	}
	if m.Draft().FullName != "Ada Lovelace" {
		t.Fatalf("draft must be preserved for retry")
	}
	if m.Step() != StepOrganization {
		t.Fatalf("expected to stay on step 5, got %d", m.Step())
	}

	sub.mu.Lock()
	sub.err = nil
	sub.mu.Unlock()
	if !m.NextStep(context.Background()) {
		t.Fatalf("retry should succeed: %v", m.Errors())
	}
}

// TestSkipFinalStepSubmits verifies skipping step 5 completes the wizard.
func TestSkipFinalStepSubmits(t *testing.T) {
	sub := &fakeSubmitter{}
	m := NewMachine(sub, nil)
	m.UpdateFullName("Ada Lovelace")
	m.NextStep(context.Background())
	m.SkipStep(context.Background())
	m.SkipStep(context.Background())
	m.NextStep(context.Background())

	if !m.SkipStep(context.Background()) {
		t.Fatalf("skip on final step should submit")
	}
	if sub.calls != 1 {
		t.Fatalf("expected submission, got %d calls", sub.calls)
	}
}

// TestSkipFinalStepDiscardsPartialOrganization verifies a half-filled
// organization does not block skipping step 5.
func TestSkipFinalStepDiscardsPartialOrganization(t *testing.T) {
	sub := &fakeSubmitter{}
	m := NewMachine(sub, nil)
	m.UpdateFullName("Ada Lovelace")
	m.NextStep(context.Background())
	m.SkipStep(context.Background())
	m.SkipStep(context.Background())
	m.NextStep(context.Background())
	m.SetOrganizationName("X")

	if !m.SkipStep(context.Background()) {
		t.Fatalf("skip should bypass organization validation, errors=%v", m.Errors())
	}
	if !m.Completed() {
		t.Fatal("machine should be completed after final skip")
	}
	if sub.calls != 1 {
		t.Fatalf("expected submission, got %d calls", sub.calls)
	}
	if sub.drafts[0].Organization != nil {
		t.Fatalf("skipped organization must not be submitted, got %+v", sub.drafts[0].Organization)
	}
}
