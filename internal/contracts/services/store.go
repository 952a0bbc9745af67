package services

import (
	"context"

	"tapcard/internal/domain"
)

// Repository defines persistence operations for service offerings.
type Repository interface {
	ListServices(ctx context.Context, profileID string) ([]domain.ServiceOffering, error)
	GetService(ctx context.Context, profileID, id string) (domain.ServiceOffering, error)
	CreateService(ctx context.Context, service domain.ServiceOffering) error
	UpdateService(ctx context.Context, service domain.ServiceOffering) error
	DeleteService(ctx context.Context, profileID, id string) error
}
