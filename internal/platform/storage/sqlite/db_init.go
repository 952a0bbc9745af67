package sqlitestore

import (
	"database/sql"
	"fmt"
	"strings"
)

// InitDB ensures the SQLite schema exists and applies lightweight migrations.
func InitDB(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS profile (
            id TEXT PRIMARY KEY,
            handle TEXT UNIQUE NOT NULL,
            full_name TEXT NOT NULL,
            headline TEXT,
            links TEXT,
            theme TEXT,
            profile_picture TEXT,
            organization TEXT,
            locked_features TEXT,
            published_at TEXT,
            updated_at TEXT NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS settings (
            key TEXT PRIMARY KEY,
            value TEXT
        )`,
		`CREATE TABLE IF NOT EXISTS account (
            id INTEGER PRIMARY KEY,
            username TEXT UNIQUE NOT NULL,
            email TEXT,
            role TEXT,
            password_hash TEXT NOT NULL,
            totp_secret TEXT NOT NULL,
            updated_at TEXT
        )`,
		`CREATE TABLE IF NOT EXISTS contact (
            id TEXT PRIMARY KEY,
            profile_id TEXT NOT NULL,
            name TEXT NOT NULL,
            email TEXT,
            phone TEXT,
            company TEXT,
            notes TEXT,
            created_at TEXT NOT NULL
        )`,
		`CREATE INDEX IF NOT EXISTS idx_contact_profile ON contact(profile_id)`,
		`CREATE TABLE IF NOT EXISTS lead (
            id TEXT PRIMARY KEY,
            profile_id TEXT NOT NULL,
            name TEXT NOT NULL,
            email TEXT,
            message TEXT,
            status TEXT NOT NULL,
            created_at TEXT NOT NULL
        )`,
		`CREATE INDEX IF NOT EXISTS idx_lead_profile ON lead(profile_id)`,
		`CREATE TABLE IF NOT EXISTS service_offering (
            id TEXT PRIMARY KEY,
            profile_id TEXT NOT NULL,
            title TEXT NOT NULL,
            description TEXT,
            price_cents INTEGER NOT NULL DEFAULT 0,
            position INTEGER NOT NULL DEFAULT 0,
            created_at TEXT NOT NULL
        )`,
		`CREATE INDEX IF NOT EXISTS idx_service_profile ON service_offering(profile_id)`,
		`CREATE TABLE IF NOT EXISTS shop_item (
            id TEXT PRIMARY KEY,
            profile_id TEXT NOT NULL,
            title TEXT NOT NULL,
            image_url TEXT,
            price_cents INTEGER NOT NULL DEFAULT 0,
            currency TEXT NOT NULL DEFAULT 'USD',
            external_url TEXT,
            position INTEGER NOT NULL DEFAULT 0,
            created_at TEXT NOT NULL
        )`,
		`CREATE INDEX IF NOT EXISTS idx_shop_item_profile ON shop_item(profile_id)`,
		`CREATE TABLE IF NOT EXISTS invite (
            id INTEGER PRIMARY KEY,
            token TEXT UNIQUE NOT NULL,
            profile_id TEXT NOT NULL,
            email TEXT NOT NULL,
            role TEXT NOT NULL,
            created_at TEXT NOT NULL,
            used_at TEXT
        )`,
		`CREATE TABLE IF NOT EXISTS audit_log (
            id INTEGER PRIMARY KEY,
            actor_id INTEGER,
            action TEXT NOT NULL,
            target TEXT,
            metadata TEXT,
            created_at TEXT NOT NULL
        )`,
		`CREATE INDEX IF NOT EXISTS idx_audit_log_created ON audit_log(created_at)`,
		`CREATE TABLE IF NOT EXISTS profile_picture (
            id INTEGER PRIMARY KEY,
            profile_id TEXT NOT NULL,
            filename TEXT NOT NULL,
            alt_text TEXT,
            created_at TEXT NOT NULL
        )`,
		`CREATE INDEX IF NOT EXISTS idx_profile_picture_profile ON profile_picture(profile_id)`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	columns := map[string]string{
		"headline":        "TEXT",
		"links":           "TEXT",
		"theme":           "TEXT",
		"profile_picture": "TEXT",
		"organization":    "TEXT",
		"locked_features": "TEXT",
		"published_at":    "TEXT",
	}
	for col, typ := range columns {
		if err := ensureColumn(db, "profile", col, typ); err != nil {
			return err
		}
	}

	return nil
}

func ensureColumn(db *sql.DB, table, column, columnType string) error {
	rows, err := db.Query("PRAGMA table_info(" + table + ")")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var cid int
		var name, ctype string
		var notnull int
		var dflt sql.NullString
		var pk int
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dflt, &pk); err != nil {
			return err
		}
		if strings.EqualFold(name, column) {
			return nil
		}
	}
	_, err = db.Exec(fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, columnType))
	return err
}
