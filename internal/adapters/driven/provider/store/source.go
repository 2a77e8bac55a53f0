// Package store serves catalogue pages from a driven.ItemStore.
package store

import (
	"context"
	"fmt"

	"github.com/custodia-labs/catalogue-cli/internal/core/domain"
	"github.com/custodia-labs/catalogue-cli/internal/core/ports/driven"
)

// Ensure Source implements the interface.
var _ driven.PageSource = (*Source)(nil)

// Source pages through an ItemStore.
type Source struct {
	name     string
	items    driven.ItemStore
	pageSize int
}

// NewSource creates a source named name over items.
func NewSource(name string, items driven.ItemStore, pageSize int) *Source {
	if pageSize <= 0 {
		pageSize = domain.DefaultPageSize
	}
	return &Source{name: name, items: items, pageSize: pageSize}
}

// Name identifies the source.
func (s *Source) Name() string {
	return s.name
}

// FetchPage reads one page. One extra row is requested to detect the last page.
func (s *Source) FetchPage(ctx context.Context, page int) (driven.Page, error) {
	list, err := s.items.ListItems(ctx, page*s.pageSize, s.pageSize+1)
	if err != nil {
		return driven.Page{}, fmt.Errorf("page %d: %w", page, err)
	}
	if len(list) > s.pageSize {
		return driven.Page{Items: list[:s.pageSize]}, nil
	}
	return driven.Page{Items: list, Last: true}, nil
}
