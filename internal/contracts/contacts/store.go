package contacts

import (
	"context"

	"tapcard/internal/domain"
)

// Repository defines persistence operations for the contact list.
type Repository interface {
	ListContacts(ctx context.Context, profileID string) ([]domain.Contact, error)
	GetContact(ctx context.Context, profileID, id string) (domain.Contact, error)
	CreateContact(ctx context.Context, contact domain.Contact) error
	UpdateContact(ctx context.Context, contact domain.Contact) error
	DeleteContact(ctx context.Context, profileID, id string) error
}
