package driven

import (
	"context"

	"github.com/custodia-labs/catalogue-cli/internal/core/domain"
)

// ItemStore persists a local catalogue.
// Backed by SQLite for the sqlite provider.
type ItemStore interface {
	// SaveItems inserts or replaces items, keeping their catalogue order.
	SaveItems(ctx context.Context, items []domain.Item) error

	// ListItems returns up to limit items starting at offset, in catalogue order.
	ListItems(ctx context.Context, offset, limit int) ([]domain.Item, error)

	// CountItems returns the number of stored items.
	CountItems(ctx context.Context) (int, error)

	// DeleteAll removes every stored item.
	DeleteAll(ctx context.Context) error
}
