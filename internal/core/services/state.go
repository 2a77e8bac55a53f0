package services

import "sync/atomic"

// PageCursor holds the zero-based page index of a browsing session.
// Only the SearchController resets it and only the ResultCoordinator advances it.
type PageCursor struct {
	flow *StateFlow[int]
}

// NewPageCursor creates a cursor positioned on the first page.
func NewPageCursor() *PageCursor {
	return &PageCursor{flow: NewStateFlow(0)}
}

// Page returns the current page index.
func (c *PageCursor) Page() int {
	return c.flow.Value()
}

// Subscribe observes page changes.
func (c *PageCursor) Subscribe(fn func(int)) func() {
	return c.flow.Subscribe(fn)
}

func (c *PageCursor) reset() {
	c.flow.Set(0)
}

func (c *PageCursor) advance() int {
	page, _ := c.flow.Update(func(p int) int { return p + 1 })
	return page
}

func (c *PageCursor) onChange(hook func()) {
	c.flow.onChange(hook)
}

// QueryChannel holds the current free-text query.
type QueryChannel struct {
	flow *StateFlow[string]
}

// NewQueryChannel creates an empty query channel.
func NewQueryChannel() *QueryChannel {
	return &QueryChannel{flow: NewStateFlow("")}
}

// Query returns the current query text.
func (q *QueryChannel) Query() string {
	return q.flow.Value()
}

// Subscribe observes query changes.
func (q *QueryChannel) Subscribe(fn func(string)) func() {
	return q.flow.Subscribe(fn)
}

func (q *QueryChannel) set(text string) {
	q.flow.Set(text)
}

func (q *QueryChannel) onChange(hook func()) {
	q.flow.onChange(hook)
}

// LastPageFlag records that query-less pagination has no further pages.
type LastPageFlag struct {
	v atomic.Bool
}

// IsSet reports whether the last page was reached.
func (f *LastPageFlag) IsSet() bool {
	return f.v.Load()
}

func (f *LastPageFlag) mark() {
	f.v.Store(true)
}

func (f *LastPageFlag) clear() {
	f.v.Store(false)
}
