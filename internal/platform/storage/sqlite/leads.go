package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"tapcard/internal/domain"
)

// ListLeads returns the leads for a profile, optionally filtered by status,
// newest first.
func ListLeads(ctx context.Context, db *sql.DB, profileID, status string) ([]domain.Lead, error) {
	query := "SELECT id, profile_id, name, COALESCE(email,''), COALESCE(message,''), status, created_at FROM lead WHERE profile_id = ?"
	args := []interface{}{profileID}
	if strings.TrimSpace(status) != "" {
		query += " AND status = ?"
		args = append(args, status)
	}
	query += " ORDER BY created_at DESC"
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []domain.Lead
	for rows.Next() {
		var l domain.Lead
		var created string
		if err := rows.Scan(&l.ID, &l.ProfileID, &l.Name, &l.Email, &l.Message, &l.Status, &created); err != nil {
			return nil, err
		}
		l.CreatedAt, _ = time.Parse(time.RFC3339, created)
		leads = append(leads, l)
	}
	return leads, rows.Err()
}

// GetLead returns a single lead scoped to the profile.
func GetLead(ctx context.Context, db *sql.DB, profileID, id string) (domain.Lead, error) {
	row := db.QueryRowContext(ctx, "SELECT id, profile_id, name, COALESCE(email,''), COALESCE(message,''), status, created_at FROM lead WHERE profile_id = ? AND id = ?", profileID, id)
	var l domain.Lead
	var created string
	if err := row.Scan(&l.ID, &l.ProfileID, &l.Name, &l.Email, &l.Message, &l.Status, &created); err != nil {
		return domain.Lead{}, err
	}
	l.CreatedAt, _ = time.Parse(time.RFC3339, created)
	return l, nil
}

// CreateLead inserts a lead, defaulting the status to new.
func CreateLead(ctx context.Context, db *sql.DB, l domain.Lead) error {
	if strings.TrimSpace(l.Name) == "" {
		return errors.New("lead name is required")
	}
	status := l.Status
	if status == "" {
		status = domain.LeadNew
	}
	_, err := db.ExecContext(
		ctx,
		"INSERT INTO lead (id, profile_id, name, email, message, status, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		l.ID, l.ProfileID, l.Name, l.Email, l.Message, status, time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// UpdateLeadStatus moves a lead through its status lifecycle.
func UpdateLeadStatus(ctx context.Context, db *sql.DB, profileID, id, status string) error {
	switch status {
	case domain.LeadNew, domain.LeadContacted, domain.LeadClosed:
	default:
		return errors.New("invalid lead status")
	}
	_, err := db.ExecContext(ctx, "UPDATE lead SET status = ? WHERE profile_id = ? AND id = ?", status, profileID, id)
	return err
}

// DeleteLead removes a lead scoped to the profile.
func DeleteLead(ctx context.Context, db *sql.DB, profileID, id string) error {
	_, err := db.ExecContext(ctx, "DELETE FROM lead WHERE profile_id = ? AND id = ?", profileID, id)
	return err
}
