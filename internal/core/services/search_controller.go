package services

import (
	"github.com/custodia-labs/catalogue-cli/internal/core/domain"
	"github.com/custodia-labs/catalogue-cli/internal/logger"
)

// SearchController turns user search commands into state changes.
// It owns SearchActive and is the only writer of the query.
type SearchController struct {
	active   *StateFlow[bool]
	query    *QueryChannel
	cursor   *PageCursor
	lastPage *LastPageFlag
}

// NewSearchController creates a controller with search mode off.
func NewSearchController(cursor *PageCursor, query *QueryChannel, lastPage *LastPageFlag) *SearchController {
	return &SearchController{
		active:   NewStateFlow(false),
		query:    query,
		cursor:   cursor,
		lastPage: lastPage,
	}
}

// SearchActive reports whether search mode is on.
func (s *SearchController) SearchActive() bool {
	return s.active.Value()
}

// SubscribeSearchActive observes search mode.
func (s *SearchController) SubscribeSearchActive(fn func(bool)) func() {
	return s.active.Subscribe(fn)
}

// ToggleSearchActive flips search mode. Leaving search mode clears the query
// and restarts pagination.
func (s *SearchController) ToggleSearchActive() {
	active, _ := s.active.Update(func(v bool) bool { return !v })
	logger.Debug("search active: %t", active)
	if active {
		return
	}
	s.lastPage.clear()
	s.query.set("")
	s.cursor.reset()
}

// UpdateQuery sets the query. A blank query restarts pagination.
func (s *SearchController) UpdateQuery(text string) {
	blank := domain.IsBlank(text)
	// The flag is cleared before the key changes so a fast fetch for the new
	// key can mark it again.
	if blank {
		s.lastPage.clear()
	}
	s.query.set(text)
	if blank {
		s.cursor.reset()
	}
}
