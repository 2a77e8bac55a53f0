// Package filesystem lists the entries of a local directory as a catalogue.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/catalogue-cli/internal/core/domain"
	"github.com/custodia-labs/catalogue-cli/internal/core/ports/driven"
	"github.com/custodia-labs/catalogue-cli/internal/logger"
)

// Ensure Source implements the interface.
var _ driven.PageSource = (*Source)(nil)

// Source pages through the non-hidden entries of a directory, sorted by name.
// The listing is read once and reused until a watched change discards it.
type Source struct {
	root     string
	pageSize int

	mu      sync.Mutex
	entries []domain.Item
	loaded  bool

	watcher   *fsnotify.Watcher
	done      chan struct{}
	closeOnce sync.Once
}

// NewSource creates a source over the directory root.
func NewSource(root string, pageSize int) (*Source, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("%w: root %q: %v", domain.ErrInvalidInput, root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: root %q", domain.ErrNotFound, root)
		}
		return nil, fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: root %q is not a directory", domain.ErrInvalidInput, root)
	}
	if pageSize <= 0 {
		pageSize = domain.DefaultPageSize
	}
	return &Source{root: abs, pageSize: pageSize, done: make(chan struct{})}, nil
}

// Name identifies the source.
func (s *Source) Name() string {
	return "filesystem"
}

// Root returns the absolute directory being listed.
func (s *Source) Root() string {
	return s.root
}

// FetchPage returns one page of the directory listing.
func (s *Source) FetchPage(ctx context.Context, page int) (driven.Page, error) {
	if err := ctx.Err(); err != nil {
		return driven.Page{}, err
	}

	entries, err := s.listing()
	if err != nil {
		return driven.Page{}, err
	}

	start := min(page*s.pageSize, len(entries))
	end := min(start+s.pageSize, len(entries))
	return driven.Page{
		Items: entries[start:end],
		Last:  end == len(entries),
	}, nil
}

// Watch starts watching the root directory. onChange runs after the cached
// listing has been discarded. Watch may be called once; Close stops it.
func (s *Source) Watch(onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(s.root); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watch %s: %w", s.root, err)
	}

	s.mu.Lock()
	s.watcher = watcher
	s.mu.Unlock()

	go s.watchLoop(watcher, onChange)
	return nil
}

// Close stops the watcher if one is running. It is safe to call more than once.
func (s *Source) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.done)
		s.mu.Lock()
		watcher := s.watcher
		s.mu.Unlock()
		if watcher != nil {
			err = watcher.Close()
		}
	})
	return err
}

func (s *Source) watchLoop(watcher *fsnotify.Watcher, onChange func()) {
	for {
		select {
		case <-s.done:
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !s.handleEvent(event) {
				continue
			}
			logger.Debug("filesystem: %s %s", event.Op, event.Name)
			if onChange != nil {
				onChange()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("filesystem watcher: %v", err)
		}
	}
}

// handleEvent discards the cached listing when event changes the set of
// visible entries and reports whether it did.
func (s *Source) handleEvent(event fsnotify.Event) bool {
	if isHidden(filepath.Base(event.Name)) {
		return false
	}
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}

	s.mu.Lock()
	s.entries = nil
	s.loaded = false
	s.mu.Unlock()
	return true
}

func (s *Source) listing() ([]domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		return s.entries, nil
	}

	// ReadDir returns entries sorted by filename.
	dirEntries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", domain.ErrProviderUnavailable, s.root, err)
	}

	items := make([]domain.Item, 0, len(dirEntries))
	for _, entry := range dirEntries {
		if isHidden(entry.Name()) {
			continue
		}
		items = append(items, s.toItem(entry))
	}

	s.entries = items
	s.loaded = true
	return items, nil
}

func (s *Source) toItem(entry fs.DirEntry) domain.Item {
	name := entry.Name()
	if entry.IsDir() {
		name += "/"
	}
	path := filepath.Join(s.root, entry.Name())
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	return domain.Item{ID: entry.Name(), Name: name, URL: u.String()}
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}
