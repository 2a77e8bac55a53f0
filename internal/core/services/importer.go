package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/catalogue-cli/internal/core/domain"
	"github.com/custodia-labs/catalogue-cli/internal/core/ports/driven"
	"github.com/custodia-labs/catalogue-cli/internal/core/ports/driving"
	"github.com/custodia-labs/catalogue-cli/internal/logger"
)

// Ensure ImportService implements the interface.
var _ driving.CatalogueImporter = (*ImportService)(nil)

// CatalogueReader decodes a catalogue file into items.
type CatalogueReader func(path string) ([]domain.Item, error)

// ImportService copies catalogue files into an ItemStore.
type ImportService struct {
	store driven.ItemStore
	read  CatalogueReader
}

// NewImportService creates an import service.
func NewImportService(store driven.ItemStore, read CatalogueReader) *ImportService {
	return &ImportService{store: store, read: read}
}

// ImportFile reads path and saves its items.
func (s *ImportService) ImportFile(ctx context.Context, path string, replace bool) (int, error) {
	items, err := s.read(path)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", path, err)
	}
	if len(items) == 0 {
		return 0, fmt.Errorf("%w: %s contains no items", domain.ErrInvalidInput, path)
	}

	if replace {
		if err := s.store.DeleteAll(ctx); err != nil {
			return 0, fmt.Errorf("clear catalogue: %w", err)
		}
	}
	if err := s.store.SaveItems(ctx, items); err != nil {
		return 0, fmt.Errorf("save items: %w", err)
	}

	count, err := s.store.CountItems(ctx)
	if err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	logger.Info("imported %d items from %s (%d stored)", len(items), path, count)
	return count, nil
}
