package wiring

import (
	"context"

	"tapcard/internal/domain"
)

// HasAccount reports whether an operator account has been set up.
func (d Deps) HasAccount(ctx context.Context) (bool, error) {
	return d.repos.Accounts.HasAccount(ctx)
}

// GetAccountByUsername returns an account by its username.
func (d Deps) GetAccountByUsername(ctx context.Context, username string) (domain.Account, error) {
	return d.repos.Accounts.GetAccountByUsername(ctx, username)
}

// CreateAccount stores a new operator account and returns its ID.
func (d Deps) CreateAccount(ctx context.Context, account domain.Account) (int64, error) {
	return d.repos.Accounts.CreateAccount(ctx, account)
}
