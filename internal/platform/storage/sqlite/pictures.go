package sqlitestore

import (
	"context"
	"database/sql"
	"time"

	"tapcard/internal/domain"
)

// ListProfilePictures returns the uploaded images for a profile.
func ListProfilePictures(ctx context.Context, db *sql.DB, profileID string) ([]domain.ProfilePicture, error) {
	rows, err := db.QueryContext(ctx, "SELECT id, profile_id, filename, COALESCE(alt_text,''), created_at FROM profile_picture WHERE profile_id = ? ORDER BY id DESC", profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pictures []domain.ProfilePicture
	for rows.Next() {
		var p domain.ProfilePicture
		var created string
		if err := rows.Scan(&p.ID, &p.ProfileID, &p.Filename, &p.AltText, &created); err != nil {
			return nil, err
		}
		p.CreatedAt, _ = time.Parse(time.RFC3339, created)
		pictures = append(pictures, p)
	}
	return pictures, rows.Err()
}

// CreateProfilePicture records an uploaded image and returns its id.
func CreateProfilePicture(ctx context.Context, db *sql.DB, profileID, filename, alt string) (int64, error) {
	res, err := db.ExecContext(
		ctx,
		"INSERT INTO profile_picture (profile_id, filename, alt_text, created_at) VALUES (?, ?, ?, ?)",
		profileID, filename, alt, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// GetProfilePictureFilename returns the stored filename for a picture.
func GetProfilePictureFilename(ctx context.Context, db *sql.DB, profileID string, pictureID int64) (string, error) {
	row := db.QueryRowContext(ctx, "SELECT filename FROM profile_picture WHERE profile_id = ? AND id = ?", profileID, pictureID)
	var filename string
	if err := row.Scan(&filename); err != nil {
		return "", err
	}
	return filename, nil
}

// UpdateProfilePictureAlt updates a picture's alt text.
func UpdateProfilePictureAlt(ctx context.Context, db *sql.DB, profileID string, pictureID int64, alt string) error {
	_, err := db.ExecContext(ctx, "UPDATE profile_picture SET alt_text = ? WHERE profile_id = ? AND id = ?", alt, profileID, pictureID)
	return err
}

// DeleteProfilePicture removes a picture row and returns its filename so the
// caller can unlink the file.
func DeleteProfilePicture(ctx context.Context, db *sql.DB, profileID string, pictureID int64) (string, error) {
	filename, err := GetProfilePictureFilename(ctx, db, profileID, pictureID)
	if err != nil {
		return "", err
	}
	if _, err := db.ExecContext(ctx, "DELETE FROM profile_picture WHERE profile_id = ? AND id = ?", profileID, pictureID); err != nil {
		return "", err
	}
	return filename, nil
}
