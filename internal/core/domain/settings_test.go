package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultBrowseSettings(t *testing.T) {
	s := DefaultBrowseSettings()

	assert.Equal(t, 20, s.PageSize)
	assert.Equal(t, 5*time.Second, s.GraceWindow)
	require.NoError(t, s.Validate())
}

func TestBrowseSettings_Validate(t *testing.T) {
	tests := []struct {
		name     string
		settings BrowseSettings
		wantErr  bool
	}{
		{"defaults", DefaultBrowseSettings(), false},
		{"zero grace window", BrowseSettings{PageSize: 10}, false},
		{"max page size", BrowseSettings{PageSize: MaxPageSize}, false},
		{"zero page size", BrowseSettings{PageSize: 0}, true},
		{"negative page size", BrowseSettings{PageSize: -1}, true},
		{"page size too large", BrowseSettings{PageSize: MaxPageSize + 1}, true},
		{"negative grace window", BrowseSettings{PageSize: 10, GraceWindow: -time.Second}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.settings.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidInput))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestProviderKind_IsValid(t *testing.T) {
	for _, k := range AllProviderKinds() {
		assert.True(t, k.IsValid(), "%s should be valid", k)
		assert.NotEqual(t, unknownDescription, k.Description())
	}
	assert.False(t, ProviderKind("").IsValid())
	assert.False(t, ProviderKind("ftp").IsValid())
	assert.Equal(t, unknownDescription, ProviderKind("ftp").Description())
}

func TestProviderKind_Traits(t *testing.T) {
	assert.True(t, ProviderDrive.RequiresToken())
	assert.False(t, ProviderGitHub.RequiresToken())
	assert.True(t, ProviderPokeAPI.IsRemote())
	assert.True(t, ProviderGitHub.IsRemote())
	assert.False(t, ProviderSQLite.IsRemote())
	assert.Equal(t, "builtin", ProviderBuiltin.String())
}

func TestProviderSettings_Validate(t *testing.T) {
	tests := []struct {
		name     string
		settings ProviderSettings
		target   error
	}{
		{"builtin", ProviderSettings{Kind: ProviderBuiltin}, nil},
		{"sqlite", ProviderSettings{Kind: ProviderSQLite}, nil},
		{"pokeapi", ProviderSettings{Kind: ProviderPokeAPI}, nil},
		{"github with owner", ProviderSettings{Kind: ProviderGitHub, Owner: "octocat"}, nil},
		{"github with token", ProviderSettings{Kind: ProviderGitHub, Token: "t"}, nil},
		{"github without owner or token", ProviderSettings{Kind: ProviderGitHub}, ErrInvalidInput},
		{"drive with token", ProviderSettings{Kind: ProviderDrive, Token: "t"}, nil},
		{"drive without token", ProviderSettings{Kind: ProviderDrive}, ErrAuthRequired},
		{"filesystem with root", ProviderSettings{Kind: ProviderFilesystem, Root: "/tmp"}, nil},
		{"filesystem without root", ProviderSettings{Kind: ProviderFilesystem}, ErrInvalidInput},
		{"unknown kind", ProviderSettings{Kind: "ftp"}, ErrUnsupportedType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.settings.Validate()
			if tt.target == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func TestDefaultAppSettings(t *testing.T) {
	s := DefaultAppSettings()
	assert.Equal(t, ProviderBuiltin, s.Provider.Kind)
	assert.Equal(t, DefaultBrowseSettings(), s.Browse)
}
