package provider

import (
	"context"
	"fmt"
	"iter"
	"sync"

	"github.com/custodia-labs/catalogue-cli/internal/core/domain"
	"github.com/custodia-labs/catalogue-cli/internal/core/ports/driven"
	"github.com/custodia-labs/catalogue-cli/internal/logger"
)

// Ensure Accumulator implements the interface.
var _ driven.FetchProvider = (*Accumulator)(nil)

// Accumulator serves cumulative page ranges from a PageSource.
// Fetched pages are kept for the lifetime of the Accumulator or until
// Invalidate is called.
type Accumulator struct {
	source driven.PageSource

	mu    sync.Mutex
	pages []driven.Page
	// last is the index of the final page once the source reported it, else -1.
	last int
}

// NewAccumulator wraps source.
func NewAccumulator(source driven.PageSource) *Accumulator {
	return &Accumulator{source: source, last: -1}
}

// Name returns the wrapped source's name.
func (a *Accumulator) Name() string {
	return a.source.Name()
}

// Fetch returns the items of pages 0 through page.
func (a *Accumulator) Fetch(ctx context.Context, page int, cb driven.FetchCallbacks) iter.Seq[domain.Item] {
	return func(yield func(domain.Item) bool) {
		cb.Start()
		if page < 0 {
			cb.Error(fmt.Sprintf("%s: page %d: %v", a.source.Name(), page, domain.ErrInvalidInput))
			return
		}

		pages, lastReached, err := a.load(ctx, page)
		if err != nil {
			logger.Warn("provider %s: page %d: %v", a.source.Name(), page, err)
			cb.Error(fmt.Sprintf("%s: %v", a.source.Name(), err))
			return
		}

		for _, p := range pages {
			for _, item := range p.Items {
				if !yield(item) {
					return
				}
			}
		}
		if lastReached {
			cb.LastPageReached()
		}
		cb.Complete()
	}
}

// Invalidate drops every cached page. The next Fetch starts from page 0.
func (a *Accumulator) Invalidate() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.pages = nil
	a.last = -1
	logger.Debug("provider %s: cache invalidated", a.source.Name())
}

// load fetches the missing pages up to page and returns a snapshot of the range.
func (a *Accumulator) load(ctx context.Context, page int) ([]driven.Page, bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for i := len(a.pages); i <= page; i++ {
		if a.last >= 0 {
			break
		}
		logger.Debug("provider %s: fetching page %d", a.source.Name(), i)
		p, err := a.source.FetchPage(ctx, i)
		if err != nil {
			return nil, false, err
		}
		a.pages = append(a.pages, p)
		if p.Last {
			a.last = i
		}
	}

	end := min(page+1, len(a.pages))
	lastReached := a.last >= 0 && page >= a.last
	return append([]driven.Page(nil), a.pages[:end]...), lastReached, nil
}
