package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"tapcard/internal/domain"
)

// CreateInvite records a member invitation token for a profile's
// organization.
func CreateInvite(ctx context.Context, db *sql.DB, token, profileID, email, role string) error {
	if strings.TrimSpace(token) == "" {
		return errors.New("invite token is required")
	}
	_, err := db.ExecContext(
		ctx,
		"INSERT INTO invite (token, profile_id, email, role, created_at) VALUES (?, ?, ?, ?, ?)",
		token, profileID, strings.ToLower(strings.TrimSpace(email)), role, time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// ListInvites returns the invitations for a profile, newest first.
func ListInvites(ctx context.Context, db *sql.DB, profileID string) ([]domain.Invite, error) {
	rows, err := db.QueryContext(ctx, "SELECT id, token, profile_id, email, role, created_at, used_at FROM invite WHERE profile_id = ? ORDER BY id DESC", profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invites []domain.Invite
	for rows.Next() {
		var invite domain.Invite
		var created string
		var usedAt sql.NullString
		if err := rows.Scan(&invite.ID, &invite.Token, &invite.ProfileID, &invite.Email, &invite.Role, &created, &usedAt); err != nil {
			return nil, err
		}
		invite.CreatedAt, _ = time.Parse(time.RFC3339, created)
		invite.UsedAt = parseNullTime(usedAt)
		invites = append(invites, invite)
	}
	return invites, rows.Err()
}

// GetInviteByToken returns the invite matching token.
func GetInviteByToken(ctx context.Context, db *sql.DB, token string) (domain.Invite, error) {
	row := db.QueryRowContext(ctx, "SELECT id, token, profile_id, email, role, created_at, used_at FROM invite WHERE token = ? LIMIT 1", token)
	var invite domain.Invite
	var created string
	var usedAt sql.NullString
	if err := row.Scan(&invite.ID, &invite.Token, &invite.ProfileID, &invite.Email, &invite.Role, &created, &usedAt); err != nil {
		return domain.Invite{}, err
	}
	invite.CreatedAt, _ = time.Parse(time.RFC3339, created)
	invite.UsedAt = parseNullTime(usedAt)
	return invite, nil
}

// MarkInviteUsed stamps the invite as accepted.
func MarkInviteUsed(ctx context.Context, db *sql.DB, id int) error {
	_, err := db.ExecContext(ctx, "UPDATE invite SET used_at = ? WHERE id = ?", time.Now().UTC().Format(time.RFC3339), id)
	return err
}

// DeleteInvite removes an invitation.
func DeleteInvite(ctx context.Context, db *sql.DB, id int) error {
	_, err := db.ExecContext(ctx, "DELETE FROM invite WHERE id = ?", id)
	return err
}
