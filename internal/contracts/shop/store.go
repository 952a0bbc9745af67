package shop

import (
	"context"

	"tapcard/internal/domain"
)

// Repository defines persistence operations for shop items.
type Repository interface {
	ListShopItems(ctx context.Context, profileID string) ([]domain.ShopItem, error)
	GetShopItem(ctx context.Context, profileID, id string) (domain.ShopItem, error)
	CreateShopItem(ctx context.Context, item domain.ShopItem) error
	UpdateShopItem(ctx context.Context, item domain.ShopItem) error
	DeleteShopItem(ctx context.Context, profileID, id string) error
}
