package wiring

import (
	"context"

	"tapcard/internal/domain"
)

// ListProfilePictures returns the uploaded pictures of a profile.
func (d Deps) ListProfilePictures(ctx context.Context, profileID string) ([]domain.ProfilePicture, error) {
	return d.repos.Pictures.ListProfilePictures(ctx, profileID)
}

// CreateProfilePicture records an uploaded picture and returns its ID.
func (d Deps) CreateProfilePicture(ctx context.Context, profileID, filename, alt string) (int64, error) {
	return d.repos.Pictures.CreateProfilePicture(ctx, profileID, filename, alt)
}

// GetProfilePictureFilename returns the stored filename of a picture.
func (d Deps) GetProfilePictureFilename(ctx context.Context, profileID string, pictureID int64) (string, error) {
	return d.repos.Pictures.GetProfilePictureFilename(ctx, profileID, pictureID)
}

// UpdateProfilePictureAlt updates a picture's alt text.
func (d Deps) UpdateProfilePictureAlt(ctx context.Context, profileID string, pictureID int64, alt string) error {
	return d.repos.Pictures.UpdateProfilePictureAlt(ctx, profileID, pictureID, alt)
}

// DeleteProfilePicture removes a picture record and returns its filename.
func (d Deps) DeleteProfilePicture(ctx context.Context, profileID string, pictureID int64) (string, error) {
	return d.repos.Pictures.DeleteProfilePicture(ctx, profileID, pictureID)
}
