package domain

import (
	"fmt"
	"time"
)

const unknownDescription = "Unknown"

// Browse defaults.
const (
	// DefaultPageSize is the number of items requested per page.
	DefaultPageSize = 20

	// MaxPageSize caps the page size accepted from configuration.
	MaxPageSize = 500

	// DefaultGraceWindow is how long the fetch pipeline stays alive after the
	// last observer detaches.
	DefaultGraceWindow = 5 * time.Second
)

// BrowseSettings configures pagination and observer keep-alive.
type BrowseSettings struct {
	// PageSize is the number of items per provider page.
	PageSize int

	// GraceWindow is the keep-alive period after the last observer detaches.
	GraceWindow time.Duration
}

// DefaultBrowseSettings returns the browse defaults.
func DefaultBrowseSettings() BrowseSettings {
	return BrowseSettings{
		PageSize:    DefaultPageSize,
		GraceWindow: DefaultGraceWindow,
	}
}

// Validate checks the settings are usable.
func (b BrowseSettings) Validate() error {
	if b.PageSize <= 0 || b.PageSize > MaxPageSize {
		return fmt.Errorf("%w: page size must be between 1 and %d, got %d", ErrInvalidInput, MaxPageSize, b.PageSize)
	}
	if b.GraceWindow < 0 {
		return fmt.Errorf("%w: grace window must not be negative", ErrInvalidInput)
	}
	return nil
}

// ProviderKind identifies which catalogue backs the browser.
type ProviderKind string

// Available provider kinds.
const (
	// ProviderBuiltin is the catalogue compiled into the binary.
	ProviderBuiltin ProviderKind = "builtin"

	// ProviderSQLite is a local SQLite catalogue populated with `catalogue import`.
	ProviderSQLite ProviderKind = "sqlite"

	// ProviderPokeAPI is the public PokeAPI species list.
	ProviderPokeAPI ProviderKind = "pokeapi"

	// ProviderGitHub lists repositories of a GitHub user or organisation.
	ProviderGitHub ProviderKind = "github"

	// ProviderDrive lists files in Google Drive.
	ProviderDrive ProviderKind = "drive"

	// ProviderFilesystem lists entries of a local directory.
	ProviderFilesystem ProviderKind = "filesystem"
)

// AllProviderKinds returns every recognised provider kind.
func AllProviderKinds() []ProviderKind {
	return []ProviderKind{
		ProviderBuiltin, ProviderSQLite, ProviderPokeAPI,
		ProviderGitHub, ProviderDrive, ProviderFilesystem,
	}
}

// IsValid returns true if the provider kind is recognised.
func (k ProviderKind) IsValid() bool {
	switch k {
	case ProviderBuiltin, ProviderSQLite, ProviderPokeAPI, ProviderGitHub, ProviderDrive, ProviderFilesystem:
		return true
	default:
		return false
	}
}

// RequiresToken returns true if the provider cannot work without an access token.
func (k ProviderKind) RequiresToken() bool {
	return k == ProviderDrive
}

// IsRemote returns true if the provider talks to a network service.
func (k ProviderKind) IsRemote() bool {
	return k == ProviderPokeAPI || k == ProviderGitHub || k == ProviderDrive
}

// String returns the string representation.
func (k ProviderKind) String() string {
	return string(k)
}

// Description returns a human-readable description of the provider.
func (k ProviderKind) Description() string {
	switch k {
	case ProviderBuiltin:
		return "Built-in catalogue"
	case ProviderSQLite:
		return "Local SQLite catalogue"
	case ProviderPokeAPI:
		return "PokeAPI (remote)"
	case ProviderGitHub:
		return "GitHub repositories (remote)"
	case ProviderDrive:
		return "Google Drive files (remote)"
	case ProviderFilesystem:
		return "Local directory"
	default:
		return unknownDescription
	}
}

// ProviderSettings holds the configuration of the catalogue provider.
// Only the fields relevant to Kind are read.
type ProviderSettings struct {
	// Kind selects the provider.
	Kind ProviderKind

	// DataDir is the SQLite data directory (sqlite).
	DataDir string

	// BaseURL overrides the API endpoint (pokeapi, github).
	BaseURL string

	// Owner is the user or organisation whose repositories are listed (github).
	Owner string

	// Token is the access token (github optional, drive required).
	Token string

	// FolderID restricts the listing to one folder (drive).
	FolderID string

	// Root is the directory to list (filesystem).
	Root string
}

// Validate checks the fields required by Kind are present.
func (p ProviderSettings) Validate() error {
	if !p.Kind.IsValid() {
		return fmt.Errorf("%w: provider %q", ErrUnsupportedType, p.Kind)
	}
	switch p.Kind {
	case ProviderGitHub:
		if p.Owner == "" && p.Token == "" {
			return fmt.Errorf("%w: github provider needs an owner or a token", ErrInvalidInput)
		}
	case ProviderDrive:
		if p.Token == "" {
			return fmt.Errorf("%w: drive provider needs a token", ErrAuthRequired)
		}
	case ProviderFilesystem:
		if p.Root == "" {
			return fmt.Errorf("%w: filesystem provider needs a root directory", ErrInvalidInput)
		}
	case ProviderBuiltin, ProviderSQLite, ProviderPokeAPI:
	}
	return nil
}

// AppSettings aggregates everything read from configuration.
type AppSettings struct {
	Browse   BrowseSettings
	Provider ProviderSettings
}

// DefaultAppSettings returns settings that work without any configuration file.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Browse:   DefaultBrowseSettings(),
		Provider: ProviderSettings{Kind: ProviderBuiltin},
	}
}
