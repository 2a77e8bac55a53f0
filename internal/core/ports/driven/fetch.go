package driven

import (
	"context"
	"iter"

	"github.com/custodia-labs/catalogue-cli/internal/core/domain"
)

// FetchCallbacks reports the lifecycle of one Fetch invocation.
// Nil callbacks are allowed and are simply not called.
type FetchCallbacks struct {
	// OnStart fires before any item is produced.
	OnStart func()

	// OnComplete fires once all items have been produced.
	OnComplete func()

	// OnLastPageReached fires at most once, when the requested page is the last.
	OnLastPageReached func()

	// OnError fires instead of OnComplete when the fetch fails.
	OnError func(message string)
}

// Start invokes OnStart if set.
func (c FetchCallbacks) Start() {
	if c.OnStart != nil {
		c.OnStart()
	}
}

// Complete invokes OnComplete if set.
func (c FetchCallbacks) Complete() {
	if c.OnComplete != nil {
		c.OnComplete()
	}
}

// LastPageReached invokes OnLastPageReached if set.
func (c FetchCallbacks) LastPageReached() {
	if c.OnLastPageReached != nil {
		c.OnLastPageReached()
	}
}

// Error invokes OnError if set.
func (c FetchCallbacks) Error(message string) {
	if c.OnError != nil {
		c.OnError(message)
	}
}

// FetchProvider yields catalogue items page by page.
//
// The returned sequence is lazy and single use: nothing is fetched until it is
// ranged over. It yields the items of pages 0 through page, in order.
// Exactly one of OnComplete or OnError fires per invocation, and every callback
// fires on the ranging goroutine before the range ends. Cancelling ctx ends the
// sequence early.
type FetchProvider interface {
	Fetch(ctx context.Context, page int, cb FetchCallbacks) iter.Seq[domain.Item]
}

// Page is one page of items returned by a PageSource.
type Page struct {
	// Items are the entries of this page only.
	Items []domain.Item

	// Last reports that no page follows this one.
	Last bool
}

// PageSource fetches a single page from a backend.
// Implementations do not accumulate; that is done by the provider layer.
type PageSource interface {
	// FetchPage retrieves the page with the given zero-based index.
	FetchPage(ctx context.Context, page int) (Page, error)

	// Name identifies the source in logs and error messages.
	Name() string
}
