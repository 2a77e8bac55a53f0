package services

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/custodia-labs/catalogue-cli/internal/core/domain"
	"github.com/custodia-labs/catalogue-cli/internal/core/ports/driven"
	"github.com/custodia-labs/catalogue-cli/internal/logger"
)

const eventBuffer = 64

// ResultCoordinator fetches the current key from a FetchProvider and publishes
// the filtered item list and fetch status.
//
// All coordination state is owned by a single loop goroutine. Key changes,
// commands, fetch callbacks and timers reach it as events. Every fetch carries
// a generation number and events from superseded generations are dropped, so
// only the most recent key ever publishes.
type ResultCoordinator struct {
	provider driven.FetchProvider
	cursor   *PageCursor
	query    *QueryChannel
	lastPage *LastPageFlag
	grace    time.Duration

	list   *StateFlow[[]domain.Item]
	status *StateFlow[domain.FetchStatus]

	keyDirty  chan struct{}
	events    chan any
	done      chan struct{}
	stopped   chan struct{}
	closeOnce sync.Once
	baseCtx   context.Context
	stopBase  context.CancelFunc

	// Owned by the loop goroutine.
	running    bool
	key        domain.Key
	generation uint64
	cancel     context.CancelFunc
	inFlight   bool
	fetched    []domain.Item
	observers  int
	graceEpoch uint64
	graceTimer *time.Timer
}

type (
	attachEvent       struct{}
	detachEvent       struct{}
	advanceEvent      struct{}
	retryEvent        struct{}
	graceExpiredEvent struct{ epoch uint64 }
	fetchStartedEvent struct{ gen uint64 }
)

// inspectEvent runs fn on the loop goroutine. Only tests post it.
type inspectEvent struct {
	fn   func()
	done chan struct{}
}

type fetchFinishedEvent struct {
	gen       uint64
	key       domain.Key
	items     []domain.Item
	failed    bool
	message   string
	lastPage  bool
	completed bool
}

// NewResultCoordinator creates a coordinator and starts its loop.
// The pipeline itself stays idle until the first observer attaches.
// A grace window of zero or less tears the pipeline down as soon as the last
// observer detaches.
func NewResultCoordinator(
	provider driven.FetchProvider,
	cursor *PageCursor,
	query *QueryChannel,
	lastPage *LastPageFlag,
	grace time.Duration,
) *ResultCoordinator {
	baseCtx, stopBase := context.WithCancel(context.Background())
	c := &ResultCoordinator{
		provider: provider,
		cursor:   cursor,
		query:    query,
		lastPage: lastPage,
		grace:    grace,
		list:     NewStateFlowFunc([]domain.Item{}, slices.Equal[[]domain.Item]),
		status:   NewStateFlow(domain.StatusLoading()),
		keyDirty: make(chan struct{}, 1),
		events:   make(chan any, eventBuffer),
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
		baseCtx:  baseCtx,
		stopBase: stopBase,
	}

	cursor.onChange(c.signalKey)
	query.onChange(c.signalKey)

	go c.run()
	return c
}

// Status returns the published fetch status.
func (c *ResultCoordinator) Status() domain.FetchStatus {
	return c.status.Value()
}

// Items returns the published item list.
func (c *ResultCoordinator) Items() []domain.Item {
	return c.list.Value()
}

// SubscribeList observes the item list and keeps the pipeline alive until
// the returned function is called.
func (c *ResultCoordinator) SubscribeList(fn func([]domain.Item)) func() {
	return c.attach(c.list.Subscribe(fn))
}

// SubscribeStatus observes the fetch status and keeps the pipeline alive until
// the returned function is called.
func (c *ResultCoordinator) SubscribeStatus(fn func(domain.FetchStatus)) func() {
	return c.attach(c.status.Subscribe(fn))
}

// AdvancePage moves to the next page when nothing is loading, the last page
// has not been reached and no query is active. Otherwise it does nothing.
func (c *ResultCoordinator) AdvancePage() {
	c.post(advanceEvent{})
}

// Retry re-issues the fetch for the current key if the last one failed.
func (c *ResultCoordinator) Retry() {
	c.post(retryEvent{})
}

// Close stops the loop and cancels any in-flight fetch.
// Commands issued afterwards are ignored.
func (c *ResultCoordinator) Close() {
	c.closeOnce.Do(func() { close(c.done) })
	<-c.stopped
}

func (c *ResultCoordinator) attach(unsubscribe func()) func() {
	c.post(attachEvent{})
	var once sync.Once
	return func() {
		once.Do(func() {
			unsubscribe()
			c.post(detachEvent{})
		})
	}
}

func (c *ResultCoordinator) signalKey() {
	select {
	case c.keyDirty <- struct{}{}:
	default:
	}
}

func (c *ResultCoordinator) post(ev any) {
	select {
	case c.events <- ev:
	case <-c.done:
	}
}

func (c *ResultCoordinator) run() {
	defer close(c.stopped)
	for {
		select {
		case <-c.done:
			c.shutdown()
			return
		case <-c.keyDirty:
			c.onKeyChanged()
		case ev := <-c.events:
			// A key change that happened before this event was posted must be
			// applied first, or a stale fetch result could pass the generation check.
			c.drainKey()
			c.handle(ev)
		}
	}
}

func (c *ResultCoordinator) drainKey() {
	select {
	case <-c.keyDirty:
		c.onKeyChanged()
	default:
	}
}

func (c *ResultCoordinator) handle(ev any) {
	switch ev := ev.(type) {
	case attachEvent:
		c.onAttach()
	case detachEvent:
		c.onDetach()
	case advanceEvent:
		c.onAdvance()
	case retryEvent:
		c.onRetry()
	case graceExpiredEvent:
		if ev.epoch == c.graceEpoch && c.observers == 0 {
			c.teardown()
		}
	case fetchStartedEvent:
		if ev.gen == c.generation {
			c.status.Set(domain.StatusLoading())
		}
	case fetchFinishedEvent:
		c.onFetchFinished(ev)
	case inspectEvent:
		ev.fn()
		close(ev.done)
	default:
		logger.Warn("coordinator: unknown event %T", ev)
	}
}

func (c *ResultCoordinator) currentKey() domain.Key {
	return domain.Key{Page: c.cursor.Page(), Query: c.query.Query()}
}

func (c *ResultCoordinator) onKeyChanged() {
	if !c.running {
		return
	}
	key := c.currentKey()
	if key == c.key {
		return
	}
	logger.Debug("coordinator: key %s -> %s", c.key, key)
	c.issue(key)
}

func (c *ResultCoordinator) onAttach() {
	c.observers++
	c.stopGrace()
	if c.running {
		return
	}
	c.running = true
	logger.Debug("coordinator: pipeline started")
	c.issue(c.currentKey())
}

func (c *ResultCoordinator) onDetach() {
	if c.observers > 0 {
		c.observers--
	}
	if c.observers > 0 || !c.running {
		return
	}

	c.graceEpoch++
	if c.grace <= 0 {
		c.teardown()
		return
	}
	epoch := c.graceEpoch
	c.graceTimer = time.AfterFunc(c.grace, func() {
		c.post(graceExpiredEvent{epoch: epoch})
	})
}

func (c *ResultCoordinator) stopGrace() {
	c.graceEpoch++
	if c.graceTimer != nil {
		c.graceTimer.Stop()
		c.graceTimer = nil
	}
}

func (c *ResultCoordinator) teardown() {
	logger.Debug("coordinator: pipeline stopped at %s", c.key)
	c.running = false
	c.graceTimer = nil
	c.abort()
}

func (c *ResultCoordinator) onAdvance() {
	switch {
	case c.status.Value().IsLoading(), c.inFlight:
		logger.Debug("coordinator: advance ignored, fetch in progress")
	case c.lastPage.IsSet():
		logger.Debug("coordinator: advance ignored, last page reached")
	case !domain.IsBlank(c.query.Query()):
		logger.Debug("coordinator: advance ignored, query active")
	default:
		c.cursor.advance()
	}
}

func (c *ResultCoordinator) onRetry() {
	if !c.running || !c.status.Value().IsError() {
		return
	}
	logger.Debug("coordinator: retrying %s", c.currentKey())
	c.issue(c.currentKey())
}

// abort cancels the in-flight fetch and invalidates its pending events.
func (c *ResultCoordinator) abort() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.generation++
	c.inFlight = false
}

func (c *ResultCoordinator) issue(key domain.Key) {
	c.abort()
	gen := c.generation
	ctx, cancel := context.WithCancel(c.baseCtx)
	c.cancel = cancel
	c.key = key
	c.inFlight = true
	c.status.Set(domain.StatusLoading())

	logger.Debug("coordinator: fetch #%d for %s", gen, key)
	go c.fetch(ctx, gen, key)
}

func (c *ResultCoordinator) onFetchFinished(ev fetchFinishedEvent) {
	if ev.gen != c.generation {
		logger.Debug("coordinator: dropping stale fetch #%d for %s", ev.gen, ev.key)
		return
	}
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.inFlight = false

	if ev.lastPage && !ev.key.Searching() {
		c.lastPage.mark()
	}

	if ev.failed {
		logger.Debug("coordinator: fetch #%d failed: %s", ev.gen, ev.message)
		c.list.Set(domain.FilterItems(c.fetched, ev.key.Query))
		c.status.Set(domain.StatusError(ev.message))
		return
	}

	if !ev.completed {
		logger.Debug("coordinator: fetch #%d ended without completion", ev.gen)
	}
	c.fetched = ev.items
	c.list.Set(domain.FilterItems(ev.items, ev.key.Query))
	c.status.Set(domain.StatusIdle())
}

// fetch ranges over the provider's sequence and reports one outcome to the loop.
// It runs on its own goroutine; the provider's callbacks fire here.
func (c *ResultCoordinator) fetch(ctx context.Context, gen uint64, key domain.Key) {
	var (
		mu     sync.Mutex
		result = fetchFinishedEvent{gen: gen, key: key}
	)

	callbacks := driven.FetchCallbacks{
		OnStart: func() {
			c.deliver(ctx, fetchStartedEvent{gen: gen})
		},
		OnComplete: func() {
			mu.Lock()
			result.completed = true
			mu.Unlock()
		},
		OnLastPageReached: func() {
			mu.Lock()
			result.lastPage = true
			mu.Unlock()
		},
		OnError: func(message string) {
			mu.Lock()
			result.failed = true
			result.message = message
			mu.Unlock()
		},
	}

	items := c.collect(ctx, key, callbacks, func(message string) {
		mu.Lock()
		result.failed = true
		result.message = message
		mu.Unlock()
	})

	mu.Lock()
	result.items = items
	outcome := result
	mu.Unlock()

	c.deliver(ctx, outcome)
}

func (c *ResultCoordinator) collect(
	ctx context.Context,
	key domain.Key,
	callbacks driven.FetchCallbacks,
	fail func(string),
) (items []domain.Item) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("coordinator: provider panicked for %s: %v", key, r)
			fail(fmt.Sprintf("provider failed: %v", r))
		}
	}()

	items = []domain.Item{}
	for item := range c.provider.Fetch(ctx, key.Page, callbacks) {
		if ctx.Err() != nil {
			break
		}
		items = append(items, item)
	}
	return items
}

// deliver posts a fetch event unless the fetch was superseded.
func (c *ResultCoordinator) deliver(ctx context.Context, ev any) {
	if ctx.Err() != nil {
		return
	}
	select {
	case c.events <- ev:
	case <-ctx.Done():
	case <-c.done:
	}
}

func (c *ResultCoordinator) shutdown() {
	if c.graceTimer != nil {
		c.graceTimer.Stop()
		c.graceTimer = nil
	}
	c.running = false
	c.abort()
	c.stopBase()
	logger.Debug("coordinator: closed")
}
