package wiring

import (
	"context"

	"tapcard/internal/domain"
)

// GetProfile returns a profile by ID.
func (d Deps) GetProfile(ctx context.Context, id string) (domain.Profile, error) {
	return d.repos.Profiles.GetProfile(ctx, id)
}

// GetProfileByHandle returns a profile by its public handle.
func (d Deps) GetProfileByHandle(ctx context.Context, handle string) (domain.Profile, error) {
	return d.repos.Profiles.GetProfileByHandle(ctx, handle)
}

// ListProfiles returns all stored profiles.
func (d Deps) ListProfiles(ctx context.Context) ([]domain.Profile, error) {
	return d.repos.Profiles.ListProfiles(ctx)
}

// CreateProfile stores a new profile.
func (d Deps) CreateProfile(ctx context.Context, profile domain.Profile) error {
	return d.repos.Profiles.CreateProfile(ctx, profile)
}

// UpdateProfile updates a stored profile.
func (d Deps) UpdateProfile(ctx context.Context, profile domain.Profile) error {
	return d.repos.Profiles.UpdateProfile(ctx, profile)
}

// DeleteProfile removes a profile and its dependent rows.
func (d Deps) DeleteProfile(ctx context.Context, id string) error {
	return d.repos.Profiles.DeleteProfile(ctx, id)
}

// CheckHandleCollision fails when handle is already taken by another profile.
func (d Deps) CheckHandleCollision(ctx context.Context, handle, excludeID string) error {
	return d.repos.Profiles.CheckHandleCollision(ctx, handle, excludeID)
}
