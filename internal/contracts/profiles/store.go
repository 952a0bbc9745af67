package profiles

import (
	"context"

	"tapcard/internal/domain"
)

// Repository defines persistence operations for profiles.
type Repository interface {
	GetProfile(ctx context.Context, id string) (domain.Profile, error)
	GetProfileByHandle(ctx context.Context, handle string) (domain.Profile, error)
	ListProfiles(ctx context.Context) ([]domain.Profile, error)
	CreateProfile(ctx context.Context, profile domain.Profile) error
	UpdateProfile(ctx context.Context, profile domain.Profile) error
	DeleteProfile(ctx context.Context, id string) error
	CheckHandleCollision(ctx context.Context, handle, excludeID string) error
}
