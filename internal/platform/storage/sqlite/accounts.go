package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"tapcard/internal/domain"
)

const accountColumns = `id, username, COALESCE(email,''), COALESCE(role,'owner'), password_hash, totp_secret, COALESCE(updated_at,'')`

// GetAccountByID returns the account with the given id.
func GetAccountByID(ctx context.Context, db *sql.DB, id int) (domain.Account, error) {
	row := db.QueryRowContext(ctx, "SELECT "+accountColumns+" FROM account WHERE id = ?", id)
	return scanAccount(row)
}

// GetAccountByUsername returns the account with the given username.
func GetAccountByUsername(ctx context.Context, db *sql.DB, username string) (domain.Account, error) {
	row := db.QueryRowContext(ctx, "SELECT "+accountColumns+" FROM account WHERE username = ?", strings.TrimSpace(username))
	return scanAccount(row)
}

// HasAccount reports whether any operator account exists yet.
func HasAccount(ctx context.Context, db *sql.DB) (bool, error) {
	row := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM account")
	var count int
	if err := row.Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateAccount inserts an operator account.
func CreateAccount(ctx context.Context, db *sql.DB, a domain.Account) (int64, error) {
	if strings.TrimSpace(a.Username) == "" || strings.TrimSpace(a.PasswordHash) == "" || strings.TrimSpace(a.TOTPSecret) == "" {
		return 0, errors.New("username, password hash, and TOTP secret are required")
	}
	role := a.Role
	if role == "" {
		role = "owner"
	}
	res, err := db.ExecContext(
		ctx,
		"INSERT INTO account (username, email, role, password_hash, totp_secret, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
		a.Username, a.Email, role, a.PasswordHash, a.TOTPSecret, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UpdateAccount updates an account's mutable fields.
func UpdateAccount(ctx context.Context, db *sql.DB, a domain.Account) error {
	_, err := db.ExecContext(
		ctx,
		"UPDATE account SET username = ?, email = ?, role = ?, password_hash = ?, totp_secret = ?, updated_at = ? WHERE id = ?",
		a.Username, a.Email, a.Role, a.PasswordHash, a.TOTPSecret, time.Now().UTC().Format(time.RFC3339), a.ID,
	)
	return err
}

func scanAccount(row rowScanner) (domain.Account, error) {
	var a domain.Account
	var updated string
	if err := row.Scan(&a.ID, &a.Username, &a.Email, &a.Role, &a.PasswordHash, &a.TOTPSecret, &updated); err != nil {
		return domain.Account{}, err
	}
	if parsed, err := time.Parse(time.RFC3339, updated); err == nil {
		a.UpdatedAt = parsed
	}
	return a, nil
}
