package repositories

import "context"

// Well-known setting keys
const (
	SettingEnvMode          = "env:mode"
	SettingLastRoute        = "last:route"
	SettingSidebarCollapsed = "sidebar:collapsed"
)

// SettingRepository persists small key/value UI state (environment mode,
// last visited route, sidebar collapsed)
type SettingRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
