package services

import (
	"github.com/custodia-labs/catalogue-cli/internal/core/domain"
	"github.com/custodia-labs/catalogue-cli/internal/core/ports/driven"
	"github.com/custodia-labs/catalogue-cli/internal/core/ports/driving"
)

// Ensure Browser implements the interface.
var _ driving.CatalogueBrowser = (*Browser)(nil)

// Browser composes the browsing state, the search controller and the result
// coordinator into a single session.
type Browser struct {
	cursor   *PageCursor
	query    *QueryChannel
	lastPage *LastPageFlag
	search   *SearchController
	results  *ResultCoordinator
}

// NewBrowser creates a browsing session over provider.
func NewBrowser(provider driven.FetchProvider, settings domain.BrowseSettings) *Browser {
	cursor := NewPageCursor()
	query := NewQueryChannel()
	lastPage := &LastPageFlag{}

	return &Browser{
		cursor:   cursor,
		query:    query,
		lastPage: lastPage,
		search:   NewSearchController(cursor, query, lastPage),
		results:  NewResultCoordinator(provider, cursor, query, lastPage, settings.GraceWindow),
	}
}

// ToggleSearchActive flips search mode.
func (b *Browser) ToggleSearchActive() {
	b.search.ToggleSearchActive()
}

// UpdateQuery sets the filter text.
func (b *Browser) UpdateQuery(text string) {
	b.search.UpdateQuery(text)
}

// AdvancePage requests the next page.
func (b *Browser) AdvancePage() {
	b.results.AdvancePage()
}

// Retry re-issues a failed fetch.
func (b *Browser) Retry() {
	b.results.Retry()
}

// SubscribeList observes the published list.
func (b *Browser) SubscribeList(fn func([]domain.Item)) driving.Unsubscribe {
	return b.results.SubscribeList(fn)
}

// SubscribeStatus observes the fetch status.
func (b *Browser) SubscribeStatus(fn func(domain.FetchStatus)) driving.Unsubscribe {
	return b.results.SubscribeStatus(fn)
}

// SubscribeSearchActive observes search mode.
func (b *Browser) SubscribeSearchActive(fn func(bool)) driving.Unsubscribe {
	return b.search.SubscribeSearchActive(fn)
}

// SubscribeQuery observes the query.
func (b *Browser) SubscribeQuery(fn func(string)) driving.Unsubscribe {
	return b.query.Subscribe(fn)
}

// Snapshot returns the current published state.
// The key is read from the state holders directly, so right after a key change
// the status and items can still describe the previous key until the
// coordinator issues the new fetch and reports Loading.
func (b *Browser) Snapshot() domain.Snapshot {
	return domain.Snapshot{
		Key:          domain.Key{Page: b.cursor.Page(), Query: b.query.Query()},
		Status:       b.results.Status(),
		Items:        b.results.Items(),
		SearchActive: b.search.SearchActive(),
		LastPage:     b.lastPage.IsSet(),
	}
}

// Close stops the session.
func (b *Browser) Close() {
	b.results.Close()
}
