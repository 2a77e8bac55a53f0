package services

import (
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/catalogue-cli/internal/logger"
)

// StateFlow holds a value and notifies subscribers when it changes.
//
// Set is distinct-until-changed. Each subscriber receives values on its own
// goroutine through a single-slot mailbox, so a slow subscriber skips
// intermediate values and only sees the latest one.
type StateFlow[T any] struct {
	mu    sync.Mutex
	value T
	equal func(a, b T) bool
	subs  map[string]*subscriber[T]
	hooks []func()
}

// NewStateFlow creates a flow for a comparable value type.
func NewStateFlow[T comparable](initial T) *StateFlow[T] {
	return NewStateFlowFunc(initial, func(a, b T) bool { return a == b })
}

// NewStateFlowFunc creates a flow that uses equal to detect changes.
func NewStateFlowFunc[T any](initial T, equal func(a, b T) bool) *StateFlow[T] {
	return &StateFlow[T]{
		value: initial,
		equal: equal,
		subs:  make(map[string]*subscriber[T]),
	}
}

// Value returns the current value.
func (f *StateFlow[T]) Value() T {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value
}

// Set stores v and reports whether it differed from the current value.
func (f *StateFlow[T]) Set(v T) bool {
	_, changed := f.Update(func(T) T { return v })
	return changed
}

// Update atomically replaces the value with fn(current).
// It returns the resulting value and whether it changed.
func (f *StateFlow[T]) Update(fn func(T) T) (T, bool) {
	f.mu.Lock()
	next := fn(f.value)
	if f.equal(f.value, next) {
		f.mu.Unlock()
		return next, false
	}
	f.value = next
	for _, s := range f.subs {
		s.offer(next)
	}
	hooks := f.hooks
	f.mu.Unlock()

	for _, hook := range hooks {
		hook()
	}
	return next, true
}

// Subscribe registers fn and immediately delivers the current value to it.
// The returned function detaches fn; calling it again is a no-op.
func (f *StateFlow[T]) Subscribe(fn func(T)) func() {
	s := &subscriber[T]{
		id:      uuid.NewString(),
		mailbox: make(chan T, 1),
		done:    make(chan struct{}),
	}

	f.mu.Lock()
	f.subs[s.id] = s
	s.offer(f.value)
	f.mu.Unlock()

	go s.run(fn)

	var once sync.Once
	return func() {
		once.Do(func() {
			f.mu.Lock()
			delete(f.subs, s.id)
			f.mu.Unlock()
			close(s.done)
		})
	}
}

// onChange registers a hook run synchronously after every change, outside the lock.
// Hooks must not block.
func (f *StateFlow[T]) onChange(hook func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hooks = append(f.hooks, hook)
}

// subscriberCount is used by tests.
func (f *StateFlow[T]) subscriberCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}

type subscriber[T any] struct {
	id      string
	mailbox chan T
	done    chan struct{}
}

// offer replaces any undelivered value with v. Callers hold the flow lock,
// so there is a single producer per mailbox.
func (s *subscriber[T]) offer(v T) {
	for {
		select {
		case s.mailbox <- v:
			return
		default:
		}
		select {
		case <-s.mailbox:
		default:
		}
	}
}

func (s *subscriber[T]) run(fn func(T)) {
	for {
		select {
		case <-s.done:
			return
		case v := <-s.mailbox:
			select {
			case <-s.done:
				return
			default:
			}
			s.deliver(fn, v)
		}
	}
}

func (s *subscriber[T]) deliver(fn func(T), v T) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("subscriber %s panicked: %v", s.id, r)
		}
	}()
	fn(v)
}
