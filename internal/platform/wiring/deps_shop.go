package wiring

import (
	"context"

	"tapcard/internal/domain"
)

// ListShopItems returns the shop items of a profile.
func (d Deps) ListShopItems(ctx context.Context, profileID string) ([]domain.ShopItem, error) {
	return d.repos.Shop.ListShopItems(ctx, profileID)
}

// GetShopItem returns a single shop item.
func (d Deps) GetShopItem(ctx context.Context, profileID, id string) (domain.ShopItem, error) {
	return d.repos.Shop.GetShopItem(ctx, profileID, id)
}

// CreateShopItem stores a new shop item.
func (d Deps) CreateShopItem(ctx context.Context, item domain.ShopItem) error {
	return d.repos.Shop.CreateShopItem(ctx, item)
}

// UpdateShopItem updates a stored shop item.
func (d Deps) UpdateShopItem(ctx context.Context, item domain.ShopItem) error {
	return d.repos.Shop.UpdateShopItem(ctx, item)
}

// DeleteShopItem removes a shop item.
func (d Deps) DeleteShopItem(ctx context.Context, profileID, id string) error {
	return d.repos.Shop.DeleteShopItem(ctx, profileID, id)
}
