package audit

import (
	"context"

	"tapcard/internal/domain"
)

// Repository defines persistence operations for the audit log.
type Repository interface {
	WriteAuditLog(ctx context.Context, actorID int, action, target string, metadata map[string]string) error
	ListAuditLogs(ctx context.Context, limit, offset int) ([]domain.AuditLog, error)
	CountAuditLogs(ctx context.Context) (int, error)
}
