package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"tapcard/internal/domain"
)

// ListShopItems returns the shop items for a profile in display order.
func ListShopItems(ctx context.Context, db *sql.DB, profileID string) ([]domain.ShopItem, error) {
	rows, err := db.QueryContext(ctx, "SELECT id, profile_id, title, COALESCE(image_url,''), price_cents, currency, COALESCE(external_url,''), position, created_at FROM shop_item WHERE profile_id = ? ORDER BY position, created_at", profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.ShopItem
	for rows.Next() {
		var item domain.ShopItem
		var created string
		if err := rows.Scan(&item.ID, &item.ProfileID, &item.Title, &item.ImageURL, &item.PriceCents, &item.Currency, &item.ExternalURL, &item.Position, &created); err != nil {
			return nil, err
		}
		item.CreatedAt, _ = time.Parse(time.RFC3339, created)
		items = append(items, item)
	}
	return items, rows.Err()
}

// GetShopItem returns a single item scoped to the profile.
func GetShopItem(ctx context.Context, db *sql.DB, profileID, id string) (domain.ShopItem, error) {
	row := db.QueryRowContext(ctx, "SELECT id, profile_id, title, COALESCE(image_url,''), price_cents, currency, COALESCE(external_url,''), position, created_at FROM shop_item WHERE profile_id = ? AND id = ?", profileID, id)
	var item domain.ShopItem
	var created string
	if err := row.Scan(&item.ID, &item.ProfileID, &item.Title, &item.ImageURL, &item.PriceCents, &item.Currency, &item.ExternalURL, &item.Position, &created); err != nil {
		return domain.ShopItem{}, err
	}
	item.CreatedAt, _ = time.Parse(time.RFC3339, created)
	return item, nil
}

// CreateShopItem inserts a shop item.
func CreateShopItem(ctx context.Context, db *sql.DB, item domain.ShopItem) error {
	if strings.TrimSpace(item.Title) == "" {
		return errors.New("shop item title is required")
	}
	currency := item.Currency
	if currency == "" {
		currency = "USD"
	}
	_, err := db.ExecContext(
		ctx,
		"INSERT INTO shop_item (id, profile_id, title, image_url, price_cents, currency, external_url, position, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		item.ID, item.ProfileID, item.Title, item.ImageURL, item.PriceCents, currency, item.ExternalURL, item.Position, time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// UpdateShopItem updates an item's mutable fields.
func UpdateShopItem(ctx context.Context, db *sql.DB, item domain.ShopItem) error {
	_, err := db.ExecContext(
		ctx,
		"UPDATE shop_item SET title = ?, image_url = ?, price_cents = ?, currency = ?, external_url = ?, position = ? WHERE profile_id = ? AND id = ?",
		item.Title, item.ImageURL, item.PriceCents, item.Currency, item.ExternalURL, item.Position, item.ProfileID, item.ID,
	)
	return err
}

// DeleteShopItem removes an item scoped to the profile.
func DeleteShopItem(ctx context.Context, db *sql.DB, profileID, id string) error {
	_, err := db.ExecContext(ctx, "DELETE FROM shop_item WHERE profile_id = ? AND id = ?", profileID, id)
	return err
}
