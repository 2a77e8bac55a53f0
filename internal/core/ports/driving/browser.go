package driving

import (
	"github.com/custodia-labs/catalogue-cli/internal/core/domain"
)

// Unsubscribe detaches an observer. Calling it more than once is a no-op.
type Unsubscribe func()

// CatalogueBrowser is a paginated catalogue with a live text filter.
//
// Commands never block on fetching; they mutate state and return.
// Observers receive the current value immediately on subscription and every
// later change on their own goroutine. A slow observer only sees the latest value.
type CatalogueBrowser interface {
	// ToggleSearchActive flips search mode. Turning it off clears the query
	// and restarts pagination from the first page.
	ToggleSearchActive()

	// UpdateQuery sets the filter text. A blank query restarts pagination.
	UpdateQuery(text string)

	// AdvancePage requests the next page unless a fetch is loading, the last
	// page was reached or a query is active.
	AdvancePage()

	// Retry re-issues the fetch for the current key after an error.
	Retry()

	// SubscribeList observes the published item list.
	SubscribeList(fn func([]domain.Item)) Unsubscribe

	// SubscribeStatus observes the fetch status.
	SubscribeStatus(fn func(domain.FetchStatus)) Unsubscribe

	// SubscribeSearchActive observes search mode.
	SubscribeSearchActive(fn func(bool)) Unsubscribe

	// SubscribeQuery observes the current query.
	SubscribeQuery(fn func(string)) Unsubscribe

	// Snapshot returns the current published state.
	Snapshot() domain.Snapshot

	// Close stops the browser and cancels any in-flight fetch.
	Close()
}
