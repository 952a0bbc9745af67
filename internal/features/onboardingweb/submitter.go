package onboardingweb

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"tapcard/internal/domain"
	"tapcard/internal/onboarding"
)

// SubmitterDependencies is the storage surface the wizard needs at completion.
type SubmitterDependencies interface {
	CreateProfile(ctx context.Context, profile domain.Profile) error
	CheckHandleCollision(ctx context.Context, handle, excludeID string) error
	CreateInvite(ctx context.Context, token, profileID, email, role string) error
	SetCurrentProfile(ctx context.Context, id string) error
}

// profileSubmitter turns a completed draft into a stored profile, makes it
// current, and sends invites for any organization members.
type profileSubmitter struct {
	deps SubmitterDependencies
}

func NewSubmitter(deps SubmitterDependencies) onboarding.Submitter {
	return profileSubmitter{deps: deps}
}

// DraftAPI submits a draft to an upstream profile service and reports the
// profile it created.
type DraftAPI interface {
	Submit(ctx context.Context, draft onboarding.Draft) (domain.Profile, error)
}

// remoteSubmitter pushes the draft upstream, then points the local current
// pointer at the profile the upstream created.
type remoteSubmitter struct {
	api  DraftAPI
	deps SubmitterDependencies
}

func NewRemoteSubmitter(api DraftAPI, deps SubmitterDependencies) onboarding.Submitter {
	return remoteSubmitter{api: api, deps: deps}
}

func (s remoteSubmitter) Submit(ctx context.Context, draft onboarding.Draft) error {
	profile, err := s.api.Submit(ctx, draft)
	if err != nil {
		return err
	}
	if profile.ID == "" {
		return nil
	}
	return s.deps.SetCurrentProfile(ctx, profile.ID)
}

func (s profileSubmitter) Submit(ctx context.Context, draft onboarding.Draft) error {
	handle, err := s.availableHandle(ctx, draft.FullName)
	if err != nil {
		return err
	}
	profile := domain.Profile{
		ID:             uuid.NewString(),
		Handle:         handle,
		FullName:       draft.FullName,
		Links:          draft.Links,
		Theme:          draft.Theme,
		ProfilePicture: draft.ProfilePicture,
		Organization:   draft.Organization,
		PublishedAt:    sql.NullTime{Time: time.Now().UTC(), Valid: true},
	}
	if err := s.deps.CreateProfile(ctx, profile); err != nil {
		return err
	}
	if err := s.deps.SetCurrentProfile(ctx, profile.ID); err != nil {
		return err
	}
	if draft.Organization != nil {
		for _, member := range draft.Organization.Members {
			if err := s.deps.CreateInvite(ctx, uuid.NewString(), profile.ID, member.Email, member.Role); err != nil {
				return err
			}
		}
	}
	return nil
}

// availableHandle slugifies the full name and suffixes a counter on collision.
func (s profileSubmitter) availableHandle(ctx context.Context, fullName string) (string, error) {
	base := slugify(fullName)
	if base == "" {
		base = "card"
	}
	if err := s.deps.CheckHandleCollision(ctx, base, ""); err == nil {
		return base, nil
	}
	for i := 2; i <= 100; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		if err := s.deps.CheckHandleCollision(ctx, candidate, ""); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no available handle for %q", fullName)
}

func slugify(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteRune('-')
			lastDash = true
		}
	}
	return strings.Trim(b.String(), "-")
}
