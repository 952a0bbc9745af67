package invites

import (
	"context"

	"tapcard/internal/domain"
)

// Repository defines persistence operations for member invitations.
type Repository interface {
	CreateInvite(ctx context.Context, token, profileID, email, role string) error
	ListInvites(ctx context.Context, profileID string) ([]domain.Invite, error)
	GetInviteByToken(ctx context.Context, token string) (domain.Invite, error)
	MarkInviteUsed(ctx context.Context, id int) error
	DeleteInvite(ctx context.Context, id int) error
}
