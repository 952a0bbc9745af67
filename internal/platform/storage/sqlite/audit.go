package sqlitestore

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"tapcard/internal/domain"
)

// WriteAuditLog appends an entry to the audit log.
func WriteAuditLog(ctx context.Context, db *sql.DB, actorID int, action, target string, metadata map[string]string) error {
	meta := ""
	if len(metadata) > 0 {
		if b, err := json.Marshal(metadata); err == nil {
			meta = string(b)
		}
	}
	var actor interface{}
	if actorID > 0 {
		actor = actorID
	}
	_, err := db.ExecContext(
		ctx,
		"INSERT INTO audit_log (actor_id, action, target, metadata, created_at) VALUES (?, ?, ?, ?, ?)",
		actor, action, target, meta, time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// ListAuditLogs returns a page of audit entries, newest first.
func ListAuditLogs(ctx context.Context, db *sql.DB, limit, offset int) ([]domain.AuditLog, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := db.QueryContext(ctx, "SELECT id, actor_id, action, COALESCE(target,''), COALESCE(metadata,''), created_at FROM audit_log ORDER BY id DESC LIMIT ? OFFSET ?", limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []domain.AuditLog
	for rows.Next() {
		var entry domain.AuditLog
		var created string
		if err := rows.Scan(&entry.ID, &entry.ActorID, &entry.Action, &entry.Target, &entry.Metadata, &created); err != nil {
			return nil, err
		}
		entry.CreatedAt, _ = time.Parse(time.RFC3339, created)
		logs = append(logs, entry)
	}
	return logs, rows.Err()
}

// CountAuditLogs returns the total number of audit entries.
func CountAuditLogs(ctx context.Context, db *sql.DB) (int, error) {
	row := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM audit_log")
	var count int
	if err := row.Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
