package wiring

import (
	"context"

	"tapcard/internal/domain"
)

// ListLeads returns a profile's leads, optionally filtered by status.
func (d Deps) ListLeads(ctx context.Context, profileID, status string) ([]domain.Lead, error) {
	return d.repos.Leads.ListLeads(ctx, profileID, status)
}

// GetLead returns a single lead.
func (d Deps) GetLead(ctx context.Context, profileID, id string) (domain.Lead, error) {
	return d.repos.Leads.GetLead(ctx, profileID, id)
}

// CreateLead stores an inbound lead.
func (d Deps) CreateLead(ctx context.Context, lead domain.Lead) error {
	return d.repos.Leads.CreateLead(ctx, lead)
}

// UpdateLeadStatus moves a lead through its lifecycle.
func (d Deps) UpdateLeadStatus(ctx context.Context, profileID, id, status string) error {
	return d.repos.Leads.UpdateLeadStatus(ctx, profileID, id, status)
}

// DeleteLead removes a lead.
func (d Deps) DeleteLead(ctx context.Context, profileID, id string) error {
	return d.repos.Leads.DeleteLead(ctx, profileID, id)
}
