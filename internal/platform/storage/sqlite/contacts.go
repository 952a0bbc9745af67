package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"tapcard/internal/domain"
)

// ListContacts returns the contacts for a profile, newest first.
func ListContacts(ctx context.Context, db *sql.DB, profileID string) ([]domain.Contact, error) {
	rows, err := db.QueryContext(ctx, "SELECT id, profile_id, name, COALESCE(email,''), COALESCE(phone,''), COALESCE(company,''), COALESCE(notes,''), created_at FROM contact WHERE profile_id = ? ORDER BY created_at DESC", profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contacts []domain.Contact
	for rows.Next() {
		var c domain.Contact
		var created string
		if err := rows.Scan(&c.ID, &c.ProfileID, &c.Name, &c.Email, &c.Phone, &c.Company, &c.Notes, &created); err != nil {
			return nil, err
		}
		c.CreatedAt, _ = time.Parse(time.RFC3339, created)
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

// GetContact returns a single contact scoped to the profile.
func GetContact(ctx context.Context, db *sql.DB, profileID, id string) (domain.Contact, error) {
	row := db.QueryRowContext(ctx, "SELECT id, profile_id, name, COALESCE(email,''), COALESCE(phone,''), COALESCE(company,''), COALESCE(notes,''), created_at FROM contact WHERE profile_id = ? AND id = ?", profileID, id)
	var c domain.Contact
	var created string
	if err := row.Scan(&c.ID, &c.ProfileID, &c.Name, &c.Email, &c.Phone, &c.Company, &c.Notes, &created); err != nil {
		return domain.Contact{}, err
	}
	c.CreatedAt, _ = time.Parse(time.RFC3339, created)
	return c, nil
}

// CreateContact inserts a contact.
func CreateContact(ctx context.Context, db *sql.DB, c domain.Contact) error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("contact name is required")
	}
	_, err := db.ExecContext(
		ctx,
		"INSERT INTO contact (id, profile_id, name, email, phone, company, notes, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		c.ID, c.ProfileID, c.Name, c.Email, c.Phone, c.Company, c.Notes, time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// UpdateContact updates a contact's mutable fields.
func UpdateContact(ctx context.Context, db *sql.DB, c domain.Contact) error {
	_, err := db.ExecContext(
		ctx,
		"UPDATE contact SET name = ?, email = ?, phone = ?, company = ?, notes = ? WHERE profile_id = ? AND id = ?",
		c.Name, c.Email, c.Phone, c.Company, c.Notes, c.ProfileID, c.ID,
	)
	return err
}

// DeleteContact removes a contact scoped to the profile.
func DeleteContact(ctx context.Context, db *sql.DB, profileID, id string) error {
	_, err := db.ExecContext(ctx, "DELETE FROM contact WHERE profile_id = ? AND id = ?", profileID, id)
	return err
}
