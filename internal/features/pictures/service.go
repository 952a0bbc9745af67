package pictures

import (
	"context"

	"tapcard/internal/domain"
)

type Store interface {
	ListProfilePictures(ctx context.Context, profileID string) ([]domain.ProfilePicture, error)
	CreateProfilePicture(ctx context.Context, profileID, filename, alt string) (int64, error)
	GetProfilePictureFilename(ctx context.Context, profileID string, pictureID int64) (string, error)
	UpdateProfilePictureAlt(ctx context.Context, profileID string, pictureID int64, alt string) error
	DeleteProfilePicture(ctx context.Context, profileID string, pictureID int64) (string, error)
}

type Service struct {
	store Store
}

func NewService(store Store) Service {
	return Service{store: store}
}

func (s Service) List(ctx context.Context, profileID string) ([]domain.ProfilePicture, error) {
	return s.store.ListProfilePictures(ctx, profileID)
}

func (s Service) Create(ctx context.Context, profileID, filename, alt string) (int64, error) {
	return s.store.CreateProfilePicture(ctx, profileID, filename, alt)
}

func (s Service) Filename(ctx context.Context, profileID string, pictureID int64) (string, error) {
	return s.store.GetProfilePictureFilename(ctx, profileID, pictureID)
}

func (s Service) UpdateAlt(ctx context.Context, profileID string, pictureID int64, alt string) error {
	return s.store.UpdateProfilePictureAlt(ctx, profileID, pictureID, alt)
}

func (s Service) Delete(ctx context.Context, profileID string, pictureID int64) (string, error) {
	return s.store.DeleteProfilePicture(ctx, profileID, pictureID)
}
