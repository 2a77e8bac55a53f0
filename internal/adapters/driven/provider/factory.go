package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/catalogue-cli/internal/adapters/driven/catalogue"
	"github.com/custodia-labs/catalogue-cli/internal/adapters/driven/provider/drive"
	"github.com/custodia-labs/catalogue-cli/internal/adapters/driven/provider/filesystem"
	"github.com/custodia-labs/catalogue-cli/internal/adapters/driven/provider/github"
	"github.com/custodia-labs/catalogue-cli/internal/adapters/driven/provider/pokeapi"
	"github.com/custodia-labs/catalogue-cli/internal/adapters/driven/provider/store"
	"github.com/custodia-labs/catalogue-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/catalogue-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/catalogue-cli/internal/core/domain"
	"github.com/custodia-labs/catalogue-cli/internal/core/ports/driven"
	"github.com/custodia-labs/catalogue-cli/internal/logger"
)

// Provider is a ready-to-use FetchProvider together with the resources
// backing it. Close releases them.
type Provider struct {
	*Accumulator
	closers []func() error
}

// Close releases database handles and watchers held by the provider.
func (p *Provider) Close() error {
	var errs []error
	for i := len(p.closers) - 1; i >= 0; i-- {
		if err := p.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// New builds the provider selected by settings.
func New(ctx context.Context, settings domain.AppSettings) (*Provider, error) {
	pageSize := settings.Browse.PageSize
	p := settings.Provider

	logger.Debug("provider: building %s (page size %d)", p.Kind, pageSize)

	switch p.Kind {
	case domain.ProviderBuiltin:
		items, err := catalogue.Builtin()
		if err != nil {
			return nil, err
		}
		itemStore := memory.NewItemStore()
		if err := itemStore.SaveItems(ctx, items); err != nil {
			return nil, fmt.Errorf("seed builtin catalogue: %w", err)
		}
		return wrap(store.NewSource("builtin", itemStore, pageSize)), nil

	case domain.ProviderSQLite:
		db, err := sqlite.NewStore(p.DataDir)
		if err != nil {
			return nil, fmt.Errorf("open sqlite catalogue: %w", err)
		}
		return wrap(store.NewSource("sqlite", db.ItemStore(), pageSize), db.Close), nil

	case domain.ProviderPokeAPI:
		return wrap(pokeapi.NewSource(pokeapi.Config{BaseURL: p.BaseURL, PageSize: pageSize})), nil

	case domain.ProviderGitHub:
		source, err := github.NewSource(github.Config{
			Owner:    p.Owner,
			Token:    p.Token,
			BaseURL:  p.BaseURL,
			PageSize: pageSize,
		})
		if err != nil {
			return nil, err
		}
		return wrap(source), nil

	case domain.ProviderDrive:
		source, err := drive.NewSource(ctx, drive.Config{
			Token:    p.Token,
			FolderID: p.FolderID,
			PageSize: pageSize,
		})
		if err != nil {
			return nil, err
		}
		return wrap(source), nil

	case domain.ProviderFilesystem:
		source, err := filesystem.NewSource(p.Root, pageSize)
		if err != nil {
			return nil, err
		}
		prov := wrap(source, source.Close)
		if err := source.Watch(prov.Invalidate); err != nil {
			logger.Warn("provider: watching %s disabled: %v", source.Root(), err)
		}
		return prov, nil

	default:
		return nil, fmt.Errorf("%w: provider %q", domain.ErrUnsupportedType, p.Kind)
	}
}

func wrap(source driven.PageSource, closers ...func() error) *Provider {
	return &Provider{Accumulator: NewAccumulator(source), closers: closers}
}
