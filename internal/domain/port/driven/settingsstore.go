package driven

import (
	"context"
	"errors"
)

// ErrSettingNotFound indicates the requested setting has never been stored.
var ErrSettingNotFound = errors.New("setting not found")

// SettingsStore is the driven port for small persisted user settings,
// currently only the message template. Get returns ErrSettingNotFound for
// a key that was never set or has been deleted; Delete of an absent key is
// a no-op.
type SettingsStore interface {
	Get(ctx context.Context, name string) (string, error)
	Set(ctx context.Context, name, value string) error
	Delete(ctx context.Context, name string) error
}
