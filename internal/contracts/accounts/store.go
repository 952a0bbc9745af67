package accounts

import (
	"context"

	"tapcard/internal/domain"
)

// Repository defines persistence operations for operator accounts.
type Repository interface {
	HasAccount(ctx context.Context) (bool, error)
	GetAccountByID(ctx context.Context, id int) (domain.Account, error)
	GetAccountByUsername(ctx context.Context, username string) (domain.Account, error)
	CreateAccount(ctx context.Context, account domain.Account) (int64, error)
	UpdateAccount(ctx context.Context, account domain.Account) error
}
