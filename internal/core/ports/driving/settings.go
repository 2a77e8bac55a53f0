package driving

import (
	"github.com/custodia-labs/catalogue-cli/internal/core/domain"
)

// SettingsService reads and writes application settings.
type SettingsService interface {
	// Get returns the effective settings, defaults filled in.
	Get() (*domain.AppSettings, error)

	// SetPageSize updates the provider page size.
	SetPageSize(size int) error

	// SetGraceWindow updates the observer keep-alive period.
	SetGraceWindow(raw string) error

	// SetProvider selects the catalogue provider and its options.
	SetProvider(settings domain.ProviderSettings) error

	// ConfigPath returns where settings are persisted.
	ConfigPath() string
}
