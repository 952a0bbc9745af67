package onboarding

import (
	"context"
	"strings"
	"sync"
	"time"

	"tapcard/internal/domain"
	"tapcard/internal/themes"
)

// Wizard steps, strictly ordered.
const (
	StepFullName     = 1
	StepLinks        = 2
	StepPicture      = 3
	StepTheme        = 4
	StepOrganization = 5

	FirstStep = StepFullName
	LastStep  = StepOrganization
)

// GeneralErrorKey carries submission failures that are not tied to a field.
const GeneralErrorKey = "general"

const defaultDebounce = 300 * time.Millisecond

// skippable is the fixed per-step skip table. Steps 1 and 4 always require
// valid data before the wizard moves on.
var skippable = map[int]bool{
	StepFullName:     false,
	StepLinks:        true,
	StepPicture:      true,
	StepTheme:        false,
	StepOrganization: true,
}

// Draft is the mutable onboarding record built up across the wizard steps
// and submitted as one unit.
type Draft struct {
	FullName       string
	Links          []domain.Link
	ProfilePicture string
	Theme          domain.Theme
	Organization   *domain.Organization
}

// Submitter receives the fully validated draft at final-step completion.
type Submitter interface {
	Submit(ctx context.Context, draft Draft) error
}

// Machine drives the 5-step wizard over a single draft. All methods are safe
// for concurrent use; the debounced name validation runs on a timer owned by
// the machine.
type Machine struct {
	mu        sync.Mutex
	step      int
	draft     Draft
	errors    map[string]string
	validator Validator
	submitter Submitter
	completed bool

	debounce      *time.Timer
	debounceDelay time.Duration
}

// NewMachine returns a machine at step 1 with an empty draft and the default
// theme applied, so step 4 is always valid.
func NewMachine(submitter Submitter, tr Translate) *Machine {
	return &Machine{
		step:          FirstStep,
		draft:         Draft{Theme: themes.Default()},
		errors:        map[string]string{},
		validator:     NewValidator(tr),
		submitter:     submitter,
		debounceDelay: defaultDebounce,
	}
}

// Step returns the current wizard step.
func (m *Machine) Step() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.step
}

// Completed reports whether the draft was submitted successfully.
func (m *Machine) Completed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.completed
}

// Draft returns a copy of the current draft.
func (m *Machine) Draft() Draft {
	m.mu.Lock()
	defer m.mu.Unlock()
	return copyDraft(m.draft)
}

// Errors returns a copy of the current field error map.
func (m *Machine) Errors() map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]string, len(m.errors))
	for k, v := range m.errors {
		out[k] = v
	}
	return out
}

// NextStep validates the current step and advances on success. On the final
// step it submits the draft instead. Returns true when the wizard advanced
// or completed; on failure the field errors are recorded and the step is
// unchanged.
func (m *Machine) NextStep(ctx context.Context) bool {
	m.mu.Lock()
	result := m.validator.Step(m.step, m.draft)
	if !result.Valid {
		m.errors = result.Errors
		m.mu.Unlock()
		return false
	}
	m.draft = result.Data
	if m.step < LastStep {
		m.step++
		m.errors = map[string]string{}
		m.mu.Unlock()
		return true
	}
	m.mu.Unlock()
	return m.Complete(ctx)
}

// PreviousStep moves one step back and clears errors; no-op on step 1.
func (m *Machine) PreviousStep() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.step > FirstStep {
		m.step--
		m.errors = map[string]string{}
	}
}

// SkipStep bypasses validation on skippable steps. Skipping a step discards
// its partial input, so a half-filled links or organization step cannot block
// the skip. Skipping the final step submits the draft. Non-skippable steps
// are unchanged.
func (m *Machine) SkipStep(ctx context.Context) bool {
	m.mu.Lock()
	if !skippable[m.step] {
		m.mu.Unlock()
		return false
	}
	if m.step == StepLinks {
		m.draft.Links = nil
	}
	if m.step == StepOrganization {
		m.draft.Organization = nil
	}
	if m.step < LastStep {
		m.step++
		m.errors = map[string]string{}
		m.mu.Unlock()
		return true
	}
	m.mu.Unlock()
	return m.Complete(ctx)
}

// GoToStep jumps backward to a previously visited step and clears errors.
// Forward jumps are a no-op.
func (m *Machine) GoToStep(target int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if target < FirstStep || target > m.step {
		return
	}
	m.step = target
	m.errors = map[string]string{}
}

// UpdateFullName stores the raw input immediately and revalidates it after a
// short debounce so the error does not flash on every keystroke.
func (m *Machine) UpdateFullName(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.draft.FullName = name
	if m.debounce != nil {
		m.debounce.Stop()
	}
	m.debounce = time.AfterFunc(m.debounceDelay, m.revalidateFullName)
}

// revalidateFullName attaches or clears the fullName error from the timer.
func (m *Machine) revalidateFullName() {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := m.validator.Step(StepFullName, m.draft)
	if msg, ok := result.Errors["fullName"]; ok {
		m.errors["fullName"] = msg
	} else {
		delete(m.errors, "fullName")
	}
}

// SetDebounceDelay overrides the name revalidation delay.
func (m *Machine) SetDebounceDelay(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if d > 0 {
		m.debounceDelay = d
	}
}

// UpdateLink upserts the link for platform; an empty value removes it.
// Platform names act as the de-facto unique key.
func (m *Machine) UpdateLink(platform, value string) {
	platform = strings.TrimSpace(platform)
	if platform == "" {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if strings.TrimSpace(value) == "" {
		m.draft.Links = removeLink(m.draft.Links, platform)
		return
	}
	for i, link := range m.draft.Links {
		if strings.EqualFold(link.Platform, platform) {
			m.draft.Links[i].URL = value
			return
		}
	}
	m.draft.Links = append(m.draft.Links, domain.Link{Platform: platform, URL: value})
}

// RemoveLink removes the link whose platform matches.
func (m *Machine) RemoveLink(platform string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.draft.Links = removeLink(m.draft.Links, platform)
}

// SetProfilePicture records the picture URL; empty clears it.
func (m *Machine) SetProfilePicture(url string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.draft.ProfilePicture = strings.TrimSpace(url)
}

// SetTheme applies the chosen theme, normalizing unknown ids to the default.
func (m *Machine) SetTheme(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.draft.Theme = themes.ByID(id)
}

// SetOrganizationName creates or renames the draft organization. An empty
// name removes it entirely.
func (m *Machine) SetOrganizationName(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	name = strings.TrimSpace(name)
	if name == "" {
		m.draft.Organization = nil
		return
	}
	if m.draft.Organization == nil {
		m.draft.Organization = &domain.Organization{}
	}
	m.draft.Organization.Name = name
}

// AddOrganizationMember validates the member and appends it with pending
// status. Returns false without mutating on an invalid email or role, or
// when the email already exists case-insensitively.
func (m *Machine) AddOrganizationMember(email, role string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	email = strings.ToLower(strings.TrimSpace(email))
	if !ValidEmail(email) {
		return false
	}
	if role != domain.RoleAdmin && role != domain.RoleMember {
		return false
	}
	if m.draft.Organization == nil {
		m.draft.Organization = &domain.Organization{}
	}
	if len(m.draft.Organization.Members) >= maxOrgMembers {
		return false
	}
	for _, member := range m.draft.Organization.Members {
		if strings.EqualFold(member.Email, email) {
			return false
		}
	}
	m.draft.Organization.Members = append(m.draft.Organization.Members, domain.OrgMember{
		Email:  email,
		Role:   role,
		Status: domain.MemberPending,
	})
	return true
}

// RemoveOrganizationMember removes the member at index; out-of-range indexes
// and a missing organization are no-ops.
func (m *Machine) RemoveOrganizationMember(index int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	org := m.draft.Organization
	if org == nil || index < 0 || index >= len(org.Members) {
		return
	}
	org.Members = append(org.Members[:index], org.Members[index+1:]...)
}

// Complete validates the whole draft and submits it. A validation failure
// records field errors; a submission failure records a general error and
// leaves the draft untouched so the user can retry. On success the machine
// is marked completed and the draft reset.
func (m *Machine) Complete(ctx context.Context) bool {
	m.mu.Lock()
	result := m.validator.Complete(m.draft)
	if !result.Valid {
		m.errors = result.Errors
		m.mu.Unlock()
		return false
	}
	draft := result.Data
	submitter := m.submitter
	m.mu.Unlock()

	if err := submitter.Submit(ctx, draft); err != nil {
		m.mu.Lock()
		m.errors = map[string]string{GeneralErrorKey: m.validator.t("submission_failed")}
		m.mu.Unlock()
		return false
	}

	m.mu.Lock()
	m.completed = true
	m.resetLocked()
	m.mu.Unlock()
	return true
}

// Reset discards the draft and returns the wizard to step 1.
func (m *Machine) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resetLocked()
	m.completed = false
}

func (m *Machine) resetLocked() {
	if m.debounce != nil {
		m.debounce.Stop()
		m.debounce = nil
	}
	m.step = FirstStep
	m.draft = Draft{Theme: themes.Default()}
	m.errors = map[string]string{}
}

// Skippable reports whether the given step may be bypassed.
func Skippable(step int) bool {
	return skippable[step]
}

func removeLink(links []domain.Link, platform string) []domain.Link {
	out := links[:0]
	for _, link := range links {
		if !strings.EqualFold(link.Platform, platform) {
			out = append(out, link)
		}
	}
	return out
}

func copyDraft(d Draft) Draft {
	out := d
	out.Links = append([]domain.Link(nil), d.Links...)
	if d.Organization != nil {
		org := domain.Organization{Name: d.Organization.Name}
		org.Members = append([]domain.OrgMember(nil), d.Organization.Members...)
		out.Organization = &org
	}
	return out
}
