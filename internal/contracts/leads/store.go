package leads

import (
	"context"

	"tapcard/internal/domain"
)

// Repository defines persistence operations for inbound leads.
type Repository interface {
	ListLeads(ctx context.Context, profileID, status string) ([]domain.Lead, error)
	GetLead(ctx context.Context, profileID, id string) (domain.Lead, error)
	CreateLead(ctx context.Context, lead domain.Lead) error
	UpdateLeadStatus(ctx context.Context, profileID, id, status string) error
	DeleteLead(ctx context.Context, profileID, id string) error
}
