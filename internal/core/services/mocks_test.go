package services

import (
	"context"
	"iter"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/catalogue-cli/internal/core/domain"
	"github.com/custodia-labs/catalogue-cli/internal/core/ports/driven"
)

const (
	waitFor = 2 * time.Second
	tick    = 5 * time.Millisecond
)

// fetchOutcome scripts what one Fetch call does once ranged over.
type fetchOutcome struct {
	items    []domain.Item
	lastPage bool
	err      string
	panicMsg string
	// gate blocks the fetch after OnStart until closed. It ignores ctx.
	gate <-chan struct{}
}

func (o fetchOutcome) seq(cb driven.FetchCallbacks) iter.Seq[domain.Item] {
	return func(yield func(domain.Item) bool) {
		cb.Start()
		if o.gate != nil {
			<-o.gate
		}
		if o.panicMsg != "" {
			panic(o.panicMsg)
		}
		if o.err != "" {
			cb.Error(o.err)
			return
		}
		for _, item := range o.items {
			if !yield(item) {
				return
			}
		}
		if o.lastPage {
			cb.LastPageReached()
		}
		cb.Complete()
	}
}

// mockFetchProvider is a mock implementation of driven.FetchProvider.
type mockFetchProvider struct {
	mu    sync.Mutex
	pages []int

	// RespondFunc receives the 1-based call number and the requested page.
	RespondFunc func(call, page int) fetchOutcome

	// FetchFunc, when set, replaces RespondFunc entirely.
	FetchFunc func(ctx context.Context, page int, cb driven.FetchCallbacks) iter.Seq[domain.Item]
}

func (m *mockFetchProvider) Fetch(ctx context.Context, page int, cb driven.FetchCallbacks) iter.Seq[domain.Item] {
	m.mu.Lock()
	m.pages = append(m.pages, page)
	call := len(m.pages)
	m.mu.Unlock()

	if m.FetchFunc != nil {
		return m.FetchFunc(ctx, page, cb)
	}
	return m.RespondFunc(call, page).seq(cb)
}

func (m *mockFetchProvider) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pages)
}

func (m *mockFetchProvider) requested() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int(nil), m.pages...)
}

// staticProvider always answers with the same items.
func staticProvider(items ...domain.Item) *mockFetchProvider {
	return &mockFetchProvider{
		RespondFunc: func(int, int) fetchOutcome { return fetchOutcome{items: items} },
	}
}

// pagedProvider serves names cumulatively, size per page, and reports the last page.
func pagedProvider(size int, names ...string) *mockFetchProvider {
	return &mockFetchProvider{
		RespondFunc: func(_, page int) fetchOutcome {
			end := min((page+1)*size, len(names))
			return fetchOutcome{
				items:    named(names[:end]...),
				lastPage: end == len(names),
			}
		},
	}
}

func named(names ...string) []domain.Item {
	items := make([]domain.Item, 0, len(names))
	for _, name := range names {
		items = append(items, domain.Item{ID: name, Name: name})
	}
	return items
}

// recorder collects values delivered to a subscriber.
type recorder[T any] struct {
	mu     sync.Mutex
	values []T
}

func (r *recorder[T]) add(v T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = append(r.values, v)
}

func (r *recorder[T]) last() (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var zero T
	if len(r.values) == 0 {
		return zero, false
	}
	return r.values[len(r.values)-1], true
}

func (r *recorder[T]) all() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]T(nil), r.values...)
}

// fixture wires the state holders and a coordinator the way Browser does.
type fixture struct {
	cursor   *PageCursor
	query    *QueryChannel
	lastPage *LastPageFlag
	search   *SearchController
	coord    *ResultCoordinator
}

func newFixture(t *testing.T, provider driven.FetchProvider, grace time.Duration) *fixture {
	t.Helper()
	f := &fixture{
		cursor:   NewPageCursor(),
		query:    NewQueryChannel(),
		lastPage: &LastPageFlag{},
	}
	f.search = NewSearchController(f.cursor, f.query, f.lastPage)
	f.coord = NewResultCoordinator(provider, f.cursor, f.query, f.lastPage, grace)
	t.Cleanup(f.coord.Close)
	return f
}

func (f *fixture) waitStatus(t *testing.T, want domain.FetchStatus) {
	t.Helper()
	require.Eventually(t, func() bool { return f.coord.Status() == want }, waitFor, tick,
		"status never became %s", want)
}

func (f *fixture) waitItems(t *testing.T, want []domain.Item) {
	t.Helper()
	require.Eventually(t, func() bool {
		got := f.coord.Items()
		if len(got) != len(want) {
			return false
		}
		for i := range got {
			if got[i] != want[i] {
				return false
			}
		}
		return true
	}, waitFor, tick, "items never became %v", want)
}

// sync waits until the coordinator has handled every event posted so far.
func (f *fixture) sync(t *testing.T) {
	t.Helper()
	require.True(t, f.coord.inspect(func() {}))
}

// running reads the loop-owned running flag. A closed coordinator reports false.
func (f *fixture) running(t *testing.T) bool {
	t.Helper()
	var running bool
	f.coord.inspect(func() { running = f.coord.running })
	return running
}
