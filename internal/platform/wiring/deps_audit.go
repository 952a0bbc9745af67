package wiring

import (
	"context"

	"tapcard/internal/domain"
)

// ListAuditLogs returns a page of audit entries, newest first.
func (d Deps) ListAuditLogs(ctx context.Context, limit, offset int) ([]domain.AuditLog, error) {
	return d.repos.Audit.ListAuditLogs(ctx, limit, offset)
}

// CountAuditLogs returns the total number of audit entries.
func (d Deps) CountAuditLogs(ctx context.Context) (int, error) {
	return d.repos.Audit.CountAuditLogs(ctx)
}
