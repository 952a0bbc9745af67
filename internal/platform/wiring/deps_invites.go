package wiring

import (
	"context"

	"tapcard/internal/domain"
)

// CreateInvite stores a member invitation token.
func (d Deps) CreateInvite(ctx context.Context, token, profileID, email, role string) error {
	return d.repos.Invites.CreateInvite(ctx, token, profileID, email, role)
}

// ListInvites returns the invitations issued for a profile.
func (d Deps) ListInvites(ctx context.Context, profileID string) ([]domain.Invite, error) {
	return d.repos.Invites.ListInvites(ctx, profileID)
}

// GetInviteByToken returns the invitation matching a token.
func (d Deps) GetInviteByToken(ctx context.Context, token string) (domain.Invite, error) {
	return d.repos.Invites.GetInviteByToken(ctx, token)
}

// MarkInviteUsed flags an invitation as consumed.
func (d Deps) MarkInviteUsed(ctx context.Context, id int) error {
	return d.repos.Invites.MarkInviteUsed(ctx, id)
}

// DeleteInvite removes an invitation.
func (d Deps) DeleteInvite(ctx context.Context, id int) error {
	return d.repos.Invites.DeleteInvite(ctx, id)
}
