package mcp

import (
	"sync"

	"github.com/custodia-labs/catalogue-cli/internal/core/domain"
	"github.com/custodia-labs/catalogue-cli/internal/core/ports/driving"
)

// mockBrowser is a mock implementation of driving.CatalogueBrowser.
type mockBrowser struct {
	mu       sync.Mutex
	snapshot domain.Snapshot
	calls    []string

	// SnapshotFunc, when set, replaces the fixed snapshot.
	SnapshotFunc func(n int) domain.Snapshot
	snapshots    int
}

func (m *mockBrowser) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
}

func (m *mockBrowser) recorded() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *mockBrowser) ToggleSearchActive() {
	m.record("toggle")
	m.mu.Lock()
	m.snapshot.SearchActive = !m.snapshot.SearchActive
	m.mu.Unlock()
}

func (m *mockBrowser) UpdateQuery(text string) {
	m.record("query:" + text)
	m.mu.Lock()
	m.snapshot.Key.Query = text
	m.mu.Unlock()
}

func (m *mockBrowser) AdvancePage() {
	m.record("advance")
	m.mu.Lock()
	m.snapshot.Key.Page++
	m.mu.Unlock()
}

func (m *mockBrowser) Retry() {
	m.record("retry")
}

func (m *mockBrowser) SubscribeList(func([]domain.Item)) driving.Unsubscribe {
	m.record("subscribe-list")
	return func() {}
}

func (m *mockBrowser) SubscribeStatus(func(domain.FetchStatus)) driving.Unsubscribe {
	m.record("subscribe-status")
	return func() { m.record("unsubscribe-status") }
}

func (m *mockBrowser) SubscribeSearchActive(func(bool)) driving.Unsubscribe {
	return func() {}
}

func (m *mockBrowser) SubscribeQuery(func(string)) driving.Unsubscribe {
	return func() {}
}

func (m *mockBrowser) Snapshot() domain.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshots++
	if m.SnapshotFunc != nil {
		return m.SnapshotFunc(m.snapshots)
	}
	return m.snapshot
}

func (m *mockBrowser) Close() {
	m.record("close")
}

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	settings *domain.AppSettings
	err      error
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	return m.settings, m.err
}

func (m *mockSettingsService) SetPageSize(int) error {
	return m.err
}

func (m *mockSettingsService) SetGraceWindow(string) error {
	return m.err
}

func (m *mockSettingsService) SetProvider(domain.ProviderSettings) error {
	return m.err
}

func (m *mockSettingsService) ConfigPath() string {
	return "/home/test/.catalogue/config.toml"
}
