package provider

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/catalogue-cli/internal/core/domain"
	"github.com/custodia-labs/catalogue-cli/internal/core/ports/driven"
)

// mockPageSource is a mock implementation of driven.PageSource.
type mockPageSource struct {
	FetchPageFunc func(ctx context.Context, page int) (driven.Page, error)
	requested     []int
}

func (m *mockPageSource) FetchPage(ctx context.Context, page int) (driven.Page, error) {
	m.requested = append(m.requested, page)
	return m.FetchPageFunc(ctx, page)
}

func (m *mockPageSource) Name() string {
	return "mock"
}

// threePages serves pages of two items; page 2 is the last.
func threePages() *mockPageSource {
	return &mockPageSource{
		FetchPageFunc: func(_ context.Context, page int) (driven.Page, error) {
			if page > 2 {
				return driven.Page{}, fmt.Errorf("unexpected page %d", page)
			}
			return driven.Page{
				Items: []domain.Item{
					{ID: fmt.Sprintf("%d-a", page), Name: fmt.Sprintf("item %d a", page)},
					{ID: fmt.Sprintf("%d-b", page), Name: fmt.Sprintf("item %d b", page)},
				},
				Last: page == 2,
			}, nil
		},
	}
}

type fetchResult struct {
	items     []domain.Item
	events    []string
	errorText string
}

func collect(t *testing.T, p driven.FetchProvider, page int) fetchResult {
	t.Helper()
	var r fetchResult
	cb := driven.FetchCallbacks{
		OnStart:           func() { r.events = append(r.events, "start") },
		OnComplete:        func() { r.events = append(r.events, "complete") },
		OnLastPageReached: func() { r.events = append(r.events, "last") },
		OnError: func(msg string) {
			r.events = append(r.events, "error")
			r.errorText = msg
		},
	}
	for item := range p.Fetch(context.Background(), page, cb) {
		r.items = append(r.items, item)
	}
	return r
}

func TestAccumulator_IsLazy(t *testing.T) {
	source := threePages()
	acc := NewAccumulator(source)

	_ = acc.Fetch(context.Background(), 1, driven.FetchCallbacks{})

	assert.Empty(t, source.requested)
}

func TestAccumulator_Cumulative(t *testing.T) {
	acc := NewAccumulator(threePages())

	r := collect(t, acc, 1)

	assert.Equal(t, []string{"start", "complete"}, r.events)
	require.Len(t, r.items, 4)
	assert.Equal(t, "0-a", r.items[0].ID)
	assert.Equal(t, "1-b", r.items[3].ID)
}

func TestAccumulator_FetchesEachPageOnce(t *testing.T) {
	source := threePages()
	acc := NewAccumulator(source)

	collect(t, acc, 0)
	collect(t, acc, 1)
	collect(t, acc, 1)
	collect(t, acc, 0)

	assert.Equal(t, []int{0, 1}, source.requested)
}

func TestAccumulator_LastPage(t *testing.T) {
	source := threePages()
	acc := NewAccumulator(source)

	r := collect(t, acc, 2)
	assert.Equal(t, []string{"start", "last", "complete"}, r.events)
	assert.Len(t, r.items, 6)

	// Beyond the last page the full catalogue is returned without new requests.
	r = collect(t, acc, 5)
	assert.Equal(t, []string{"start", "last", "complete"}, r.events)
	assert.Len(t, r.items, 6)
	assert.Equal(t, []int{0, 1, 2}, source.requested)
}

func TestAccumulator_Error(t *testing.T) {
	source := &mockPageSource{
		FetchPageFunc: func(context.Context, int) (driven.Page, error) {
			return driven.Page{}, errors.New("connection refused")
		},
	}
	acc := NewAccumulator(source)

	r := collect(t, acc, 0)

	assert.Equal(t, []string{"start", "error"}, r.events)
	assert.Equal(t, "mock: connection refused", r.errorText)
	assert.Empty(t, r.items)
}

func TestAccumulator_ErrorKeepsFetchedPages(t *testing.T) {
	fail := false
	source := threePages()
	inner := source.FetchPageFunc
	source.FetchPageFunc = func(ctx context.Context, page int) (driven.Page, error) {
		if fail {
			return driven.Page{}, errors.New("timeout")
		}
		return inner(ctx, page)
	}
	acc := NewAccumulator(source)

	collect(t, acc, 0)
	fail = true
	r := collect(t, acc, 1)
	assert.Equal(t, []string{"start", "error"}, r.events)

	fail = false
	r = collect(t, acc, 1)
	assert.Len(t, r.items, 4)
	assert.Equal(t, []int{0, 1, 1}, source.requested)
}

func TestAccumulator_NegativePage(t *testing.T) {
	acc := NewAccumulator(threePages())

	r := collect(t, acc, -1)

	assert.Equal(t, []string{"start", "error"}, r.events)
	assert.Contains(t, r.errorText, domain.ErrInvalidInput.Error())
}

func TestAccumulator_EarlyStop(t *testing.T) {
	acc := NewAccumulator(threePages())
	var events []string
	cb := driven.FetchCallbacks{
		OnComplete: func() { events = append(events, "complete") },
	}

	for range acc.Fetch(context.Background(), 1, cb) {
		break
	}

	assert.Empty(t, events)
}

func TestAccumulator_Invalidate(t *testing.T) {
	source := threePages()
	acc := NewAccumulator(source)
	collect(t, acc, 2)

	acc.Invalidate()
	collect(t, acc, 0)

	assert.Equal(t, []int{0, 1, 2, 0}, source.requested)
	assert.Equal(t, "mock", acc.Name())
}
