package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"tapcard/internal/domain"
)

// ListServices returns the service offerings for a profile in display order.
func ListServices(ctx context.Context, db *sql.DB, profileID string) ([]domain.ServiceOffering, error) {
	rows, err := db.QueryContext(ctx, "SELECT id, profile_id, title, COALESCE(description,''), price_cents, position, created_at FROM service_offering WHERE profile_id = ? ORDER BY position, created_at", profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var services []domain.ServiceOffering
	for rows.Next() {
		var s domain.ServiceOffering
		var created string
		if err := rows.Scan(&s.ID, &s.ProfileID, &s.Title, &s.Description, &s.PriceCents, &s.Position, &created); err != nil {
			return nil, err
		}
		s.CreatedAt, _ = time.Parse(time.RFC3339, created)
		services = append(services, s)
	}
	return services, rows.Err()
}

// GetService returns a single offering scoped to the profile.
func GetService(ctx context.Context, db *sql.DB, profileID, id string) (domain.ServiceOffering, error) {
	row := db.QueryRowContext(ctx, "SELECT id, profile_id, title, COALESCE(description,''), price_cents, position, created_at FROM service_offering WHERE profile_id = ? AND id = ?", profileID, id)
	var s domain.ServiceOffering
	var created string
	if err := row.Scan(&s.ID, &s.ProfileID, &s.Title, &s.Description, &s.PriceCents, &s.Position, &created); err != nil {
		return domain.ServiceOffering{}, err
	}
	s.CreatedAt, _ = time.Parse(time.RFC3339, created)
	return s, nil
}

// CreateService inserts a service offering.
func CreateService(ctx context.Context, db *sql.DB, s domain.ServiceOffering) error {
	if strings.TrimSpace(s.Title) == "" {
		return errors.New("service title is required")
	}
	_, err := db.ExecContext(
		ctx,
		"INSERT INTO service_offering (id, profile_id, title, description, price_cents, position, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		s.ID, s.ProfileID, s.Title, s.Description, s.PriceCents, s.Position, time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// UpdateService updates an offering's mutable fields.
func UpdateService(ctx context.Context, db *sql.DB, s domain.ServiceOffering) error {
	_, err := db.ExecContext(
		ctx,
		"UPDATE service_offering SET title = ?, description = ?, price_cents = ?, position = ? WHERE profile_id = ? AND id = ?",
		s.Title, s.Description, s.PriceCents, s.Position, s.ProfileID, s.ID,
	)
	return err
}

// DeleteService removes an offering scoped to the profile.
func DeleteService(ctx context.Context, db *sql.DB, profileID, id string) error {
	_, err := db.ExecContext(ctx, "DELETE FROM service_offering WHERE profile_id = ? AND id = ?", profileID, id)
	return err
}
