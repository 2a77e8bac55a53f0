package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/catalogue-cli/internal/core/domain"
	"github.com/custodia-labs/catalogue-cli/internal/core/ports/driven"
)

// Ensure ItemStore implements the interface.
var _ driven.ItemStore = (*ItemStore)(nil)

// ItemStore is an in-memory implementation of driven.ItemStore.
// Items keep insertion order; saving an existing ID replaces it in place.
type ItemStore struct {
	mu    sync.RWMutex
	items []domain.Item
	index map[string]int
}

// NewItemStore creates a new in-memory item store.
func NewItemStore() *ItemStore {
	return &ItemStore{
		index: make(map[string]int),
	}
}

// SaveItems inserts or replaces items.
func (s *ItemStore) SaveItems(_ context.Context, items []domain.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range items {
		if item.ID == "" {
			return domain.ErrInvalidInput
		}
		if i, ok := s.index[item.ID]; ok {
			s.items[i] = item
			continue
		}
		s.index[item.ID] = len(s.items)
		s.items = append(s.items, item)
	}
	return nil
}

// ListItems returns up to limit items starting at offset.
func (s *ItemStore) ListItems(_ context.Context, offset, limit int) ([]domain.Item, error) {
	if offset < 0 || limit < 0 {
		return nil, domain.ErrInvalidInput
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if offset >= len(s.items) {
		return []domain.Item{}, nil
	}
	end := min(offset+limit, len(s.items))
	result := make([]domain.Item, end-offset)
	copy(result, s.items[offset:end])
	return result, nil
}

// CountItems returns the number of stored items.
func (s *ItemStore) CountItems(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items), nil
}

// DeleteAll removes every item.
func (s *ItemStore) DeleteAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.index = make(map[string]int)
	return nil
}
