package wiring

import (
	"context"

	"tapcard/internal/domain"
)

// ListServices returns the service offerings of a profile.
func (d Deps) ListServices(ctx context.Context, profileID string) ([]domain.ServiceOffering, error) {
	return d.repos.Services.ListServices(ctx, profileID)
}

// GetService returns a single service offering.
func (d Deps) GetService(ctx context.Context, profileID, id string) (domain.ServiceOffering, error) {
	return d.repos.Services.GetService(ctx, profileID, id)
}

// CreateService stores a new service offering.
func (d Deps) CreateService(ctx context.Context, service domain.ServiceOffering) error {
	return d.repos.Services.CreateService(ctx, service)
}

// UpdateService updates a stored service offering.
func (d Deps) UpdateService(ctx context.Context, service domain.ServiceOffering) error {
	return d.repos.Services.UpdateService(ctx, service)
}

// DeleteService removes a service offering.
func (d Deps) DeleteService(ctx context.Context, profileID, id string) error {
	return d.repos.Services.DeleteService(ctx, profileID, id)
}
