package sqlitestore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"tapcard/internal/domain"
)

const profileColumns = `id, handle, full_name, COALESCE(headline,''), COALESCE(links,''), COALESCE(theme,''), COALESCE(profile_picture,''), COALESCE(organization,''), COALESCE(locked_features,''), published_at, updated_at`

// GetProfile returns the profile with the given id.
func GetProfile(ctx context.Context, db *sql.DB, id string) (domain.Profile, error) {
	row := db.QueryRowContext(ctx, "SELECT "+profileColumns+" FROM profile WHERE id = ?", id)
	return scanProfile(row)
}

// GetProfileByHandle returns the profile addressed by its public handle.
func GetProfileByHandle(ctx context.Context, db *sql.DB, handle string) (domain.Profile, error) {
	row := db.QueryRowContext(ctx, "SELECT "+profileColumns+" FROM profile WHERE handle = ?", strings.ToLower(strings.TrimSpace(handle)))
	return scanProfile(row)
}

// ListProfiles returns all profiles ordered by handle.
func ListProfiles(ctx context.Context, db *sql.DB) ([]domain.Profile, error) {
	rows, err := db.QueryContext(ctx, "SELECT "+profileColumns+" FROM profile ORDER BY handle")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []domain.Profile
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	return profiles, rows.Err()
}

// CreateProfile inserts a profile using the supplied input.
func CreateProfile(ctx context.Context, db *sql.DB, p domain.Profile) error {
	if strings.TrimSpace(p.ID) == "" || strings.TrimSpace(p.Handle) == "" {
		return errors.New("profile id and handle are required")
	}
	links, theme, org, locked, err := encodeProfileJSON(p)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(
		ctx,
		`INSERT INTO profile (id, handle, full_name, headline, links, theme, profile_picture, organization, locked_features, published_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, strings.ToLower(strings.TrimSpace(p.Handle)), p.FullName, p.Headline, links, theme, p.ProfilePicture, org, locked, nullTimeValue(p.PublishedAt), time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// UpdateProfile updates all mutable profile fields.
func UpdateProfile(ctx context.Context, db *sql.DB, p domain.Profile) error {
	links, theme, org, locked, err := encodeProfileJSON(p)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(
		ctx,
		`UPDATE profile SET handle = ?, full_name = ?, headline = ?, links = ?, theme = ?, profile_picture = ?, organization = ?, locked_features = ?, published_at = ?, updated_at = ? WHERE id = ?`,
		strings.ToLower(strings.TrimSpace(p.Handle)), p.FullName, p.Headline, links, theme, p.ProfilePicture, org, locked, nullTimeValue(p.PublishedAt), time.Now().UTC().Format(time.RFC3339), p.ID,
	)
	return err
}

// DeleteProfile removes a profile and its dependent rows.
func DeleteProfile(ctx context.Context, db *sql.DB, id string) error {
	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	for _, stmt := range []string{
		"DELETE FROM contact WHERE profile_id = ?",
		"DELETE FROM lead WHERE profile_id = ?",
		"DELETE FROM service_offering WHERE profile_id = ?",
		"DELETE FROM shop_item WHERE profile_id = ?",
		"DELETE FROM invite WHERE profile_id = ?",
		"DELETE FROM profile_picture WHERE profile_id = ?",
		"DELETE FROM profile WHERE id = ?",
	} {
		if _, err := tx.ExecContext(ctx, stmt, id); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// CheckHandleCollision returns an error when another profile already uses
// the handle.
func CheckHandleCollision(ctx context.Context, db *sql.DB, handle, excludeID string) error {
	row := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM profile WHERE handle = ? AND id != ?", strings.ToLower(strings.TrimSpace(handle)), excludeID)
	var count int
	if err := row.Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return errors.New("handle already in use")
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProfile(row rowScanner) (domain.Profile, error) {
	var p domain.Profile
	var links, theme, org, locked string
	var published sql.NullString
	var updated string
	if err := row.Scan(&p.ID, &p.Handle, &p.FullName, &p.Headline, &links, &theme, &p.ProfilePicture, &org, &locked, &published, &updated); err != nil {
		return domain.Profile{}, err
	}
	if links != "" {
		_ = json.Unmarshal([]byte(links), &p.Links)
	}
	if theme != "" {
		_ = json.Unmarshal([]byte(theme), &p.Theme)
	}
	if org != "" {
		var parsed domain.Organization
		if err := json.Unmarshal([]byte(org), &parsed); err == nil {
			p.Organization = &parsed
		}
	}
	if locked != "" {
		_ = json.Unmarshal([]byte(locked), &p.LockedFeatures)
	}
	p.PublishedAt = parseNullTime(published)
	if parsed, err := time.Parse(time.RFC3339, updated); err == nil {
		p.UpdatedAt = parsed
	}
	return p, nil
}

func encodeProfileJSON(p domain.Profile) (links, theme, org, locked string, err error) {
	linksBytes, err := json.Marshal(p.Links)
	if err != nil {
		return "", "", "", "", err
	}
	themeBytes, err := json.Marshal(p.Theme)
	if err != nil {
		return "", "", "", "", err
	}
	orgStr := ""
	if p.Organization != nil {
		orgBytes, err := json.Marshal(p.Organization)
		if err != nil {
			return "", "", "", "", err
		}
		orgStr = string(orgBytes)
	}
	lockedBytes, err := json.Marshal(p.LockedFeatures)
	if err != nil {
		return "", "", "", "", err
	}
	return string(linksBytes), string(themeBytes), orgStr, string(lockedBytes), nil
}

func parseNullTime(value sql.NullString) sql.NullTime {
	if !value.Valid || strings.TrimSpace(value.String) == "" {
		return sql.NullTime{}
	}
	parsed, err := time.Parse(time.RFC3339, value.String)
	if err != nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: parsed, Valid: true}
}

func nullTimeValue(value sql.NullTime) interface{} {
	if !value.Valid {
		return nil
	}
	return value.Time.UTC().Format(time.RFC3339)
}
