package wiring

import (
	"context"

	"tapcard/internal/domain"
)

// ListContacts returns the contact book of a profile.
func (d Deps) ListContacts(ctx context.Context, profileID string) ([]domain.Contact, error) {
	return d.repos.Contacts.ListContacts(ctx, profileID)
}

// GetContact returns a single contact.
func (d Deps) GetContact(ctx context.Context, profileID, id string) (domain.Contact, error) {
	return d.repos.Contacts.GetContact(ctx, profileID, id)
}

// CreateContact stores a new contact.
func (d Deps) CreateContact(ctx context.Context, contact domain.Contact) error {
	return d.repos.Contacts.CreateContact(ctx, contact)
}

// UpdateContact updates a stored contact.
func (d Deps) UpdateContact(ctx context.Context, contact domain.Contact) error {
	return d.repos.Contacts.UpdateContact(ctx, contact)
}

// DeleteContact removes a contact.
func (d Deps) DeleteContact(ctx context.Context, profileID, id string) error {
	return d.repos.Contacts.DeleteContact(ctx, profileID, id)
}
