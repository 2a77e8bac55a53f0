package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/catalogue-cli/internal/core/domain"
	"github.com/custodia-labs/catalogue-cli/internal/core/ports/driven"
)

// itemStore implements driven.ItemStore.
type itemStore struct {
	store *Store
}

var _ driven.ItemStore = (*itemStore)(nil)

// SaveItems inserts new items at the end of the catalogue and updates
// existing ones in place.
func (s *itemStore) SaveItems(ctx context.Context, items []domain.Item) error {
	for _, item := range items {
		if item.ID == "" {
			return fmt.Errorf("%w: item %q has no id", domain.ErrInvalidInput, item.Name)
		}
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	var next int64
	if err := tx.QueryRowContext(ctx, "SELECT COALESCE(MAX(position), -1) + 1 FROM items").Scan(&next); err != nil {
		return fmt.Errorf("reading next position: %w", err)
	}

	now := time.Now().UTC()
	for _, item := range items {
		res, err := tx.ExecContext(ctx,
			"UPDATE items SET name = ?, url = ?, updated_at = ? WHERE id = ?",
			item.Name, item.URL, now, item.ID)
		if err != nil {
			return fmt.Errorf("updating item %s: %w", item.ID, err)
		}
		if n, err := res.RowsAffected(); err == nil && n > 0 {
			continue
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO items (id, position, name, url, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`, item.ID, next, item.Name, item.URL, now, now)
		if err != nil {
			return fmt.Errorf("saving item %s: %w", item.ID, err)
		}
		next++
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing items: %w", err)
	}
	return nil
}

// ListItems returns up to limit items starting at offset, in catalogue order.
func (s *itemStore) ListItems(ctx context.Context, offset, limit int) ([]domain.Item, error) {
	if offset < 0 || limit < 0 {
		return nil, fmt.Errorf("%w: offset %d limit %d", domain.ErrInvalidInput, offset, limit)
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, name, url FROM items
		ORDER BY position
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	items := []domain.Item{}
	for rows.Next() {
		var item domain.Item
		if err := rows.Scan(&item.ID, &item.Name, &item.URL); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// CountItems returns the number of stored items.
func (s *itemStore) CountItems(ctx context.Context) (int, error) {
	var n int
	if err := s.store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM items").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting items: %w", err)
	}
	return n, nil
}

// DeleteAll removes every item.
func (s *itemStore) DeleteAll(ctx context.Context) error {
	if _, err := s.store.db.ExecContext(ctx, "DELETE FROM items"); err != nil {
		return fmt.Errorf("deleting items: %w", err)
	}
	return nil
}
