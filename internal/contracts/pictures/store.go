package pictures

import (
	"context"

	"tapcard/internal/domain"
)

// Repository defines persistence operations for uploaded card images.
type Repository interface {
	ListProfilePictures(ctx context.Context, profileID string) ([]domain.ProfilePicture, error)
	CreateProfilePicture(ctx context.Context, profileID, filename, alt string) (int64, error)
	GetProfilePictureFilename(ctx context.Context, profileID string, pictureID int64) (string, error)
	UpdateProfilePictureAlt(ctx context.Context, profileID string, pictureID int64, alt string) error
	DeleteProfilePicture(ctx context.Context, profileID string, pictureID int64) (string, error)
}
