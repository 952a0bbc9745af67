package settings

import "context"

// Repository defines persistence operations for key/value settings, used for
// durable install state such as the current-profile pointer.
type Repository interface {
	GetSetting(ctx context.Context, key string) (string, bool, error)
	SetSetting(ctx context.Context, key, value string) error
	DeleteSetting(ctx context.Context, key string) error
}
