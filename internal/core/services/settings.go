package services

import (
	"fmt"
	"os"
	"time"

	"github.com/custodia-labs/catalogue-cli/internal/core/domain"
	"github.com/custodia-labs/catalogue-cli/internal/core/ports/driven"
	"github.com/custodia-labs/catalogue-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyPageSize     = "browse.page_size"
	keyGraceWindow  = "browse.grace_window"
	keyProviderKind = "provider.kind"
	keySQLiteDir    = "provider.sqlite.data_dir"
	keyPokeAPIURL   = "provider.pokeapi.base_url"
	keyGitHubOwner  = "provider.github.owner"
	keyGitHubToken  = "provider.github.token"
	keyGitHubURL    = "provider.github.base_url"
	keyDriveToken   = "provider.drive.token"
	keyDriveFolder  = "provider.drive.folder_id"
	keyFSRoot       = "provider.filesystem.root"
)

// Environment fallbacks for tokens missing from the config file.
const (
	EnvGitHubToken = "GITHUB_TOKEN"
	EnvDriveToken  = "GOOGLE_DRIVE_TOKEN"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	getenv      func(string) string
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		getenv:      os.Getenv,
	}
}

// Get retrieves current application settings.
// Missing or invalid values fall back to their defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Browse: domain.BrowseSettings{
			PageSize:    s.getPageSize(defaults.Browse.PageSize),
			GraceWindow: s.getGraceWindow(defaults.Browse.GraceWindow),
		},
		Provider: s.getProvider(defaults.Provider.Kind),
	}
	return settings, nil
}

// SetPageSize updates the provider page size.
func (s *SettingsService) SetPageSize(size int) error {
	browse := domain.DefaultBrowseSettings()
	browse.PageSize = size
	if err := browse.Validate(); err != nil {
		return err
	}
	return s.configStore.Set(keyPageSize, size)
}

// SetGraceWindow updates the keep-alive period from a duration string such as "5s".
func (s *SettingsService) SetGraceWindow(raw string) error {
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("%w: grace window %q: %v", domain.ErrInvalidInput, raw, err)
	}
	if d < 0 {
		return fmt.Errorf("%w: grace window must not be negative", domain.ErrInvalidInput)
	}
	return s.configStore.Set(keyGraceWindow, d.String())
}

// SetProvider selects the catalogue provider.
// Only the fields relevant to the provider kind are written.
func (s *SettingsService) SetProvider(p domain.ProviderSettings) error {
	if err := p.Validate(); err != nil {
		return err
	}

	values := map[string]string{keyProviderKind: string(p.Kind)}
	switch p.Kind {
	case domain.ProviderSQLite:
		values[keySQLiteDir] = p.DataDir
	case domain.ProviderPokeAPI:
		values[keyPokeAPIURL] = p.BaseURL
	case domain.ProviderGitHub:
		values[keyGitHubOwner] = p.Owner
		values[keyGitHubToken] = p.Token
		values[keyGitHubURL] = p.BaseURL
	case domain.ProviderDrive:
		values[keyDriveToken] = p.Token
		values[keyDriveFolder] = p.FolderID
	case domain.ProviderFilesystem:
		values[keyFSRoot] = p.Root
	case domain.ProviderBuiltin:
	}

	for key, value := range values {
		if value == "" && key != keyProviderKind {
			continue
		}
		if err := s.configStore.Set(key, value); err != nil {
			return fmt.Errorf("failed to save %s: %w", key, err)
		}
	}
	return nil
}

// ConfigPath returns the configuration file path.
func (s *SettingsService) ConfigPath() string {
	return s.configStore.Path()
}

func (s *SettingsService) getPageSize(defaultVal int) int {
	size := s.configStore.GetInt(keyPageSize)
	if size <= 0 || size > domain.MaxPageSize {
		return defaultVal
	}
	return size
}

func (s *SettingsService) getGraceWindow(defaultVal time.Duration) time.Duration {
	raw := s.configStore.GetString(keyGraceWindow)
	if raw == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		return defaultVal
	}
	return d
}

func (s *SettingsService) getProvider(defaultKind domain.ProviderKind) domain.ProviderSettings {
	kind := domain.ProviderKind(s.configStore.GetString(keyProviderKind))
	if !kind.IsValid() {
		kind = defaultKind
	}

	p := domain.ProviderSettings{Kind: kind}
	switch kind {
	case domain.ProviderSQLite:
		p.DataDir = s.configStore.GetString(keySQLiteDir)
	case domain.ProviderPokeAPI:
		p.BaseURL = s.configStore.GetString(keyPokeAPIURL)
	case domain.ProviderGitHub:
		p.Owner = s.configStore.GetString(keyGitHubOwner)
		p.BaseURL = s.configStore.GetString(keyGitHubURL)
		p.Token = s.withEnv(keyGitHubToken, EnvGitHubToken)
	case domain.ProviderDrive:
		p.FolderID = s.configStore.GetString(keyDriveFolder)
		p.Token = s.withEnv(keyDriveToken, EnvDriveToken)
	case domain.ProviderFilesystem:
		p.Root = s.configStore.GetString(keyFSRoot)
	case domain.ProviderBuiltin:
	}
	return p
}

func (s *SettingsService) withEnv(key, env string) string {
	if v := s.configStore.GetString(key); v != "" {
		return v
	}
	return s.getenv(env)
}
