package state

import (
	"database/sql"
	"sync"
	"time"

	"github.com/llehouerou/xiamiu/internal/api"
	"github.com/llehouerou/xiamiu/internal/listview"
)

// Mock is a test double for Manager. Saves are applied immediately.
type Mock struct {
	mu       sync.Mutex
	navState *NavigationState
	views    map[string]listview.Settings
	session  *StoredSession
	closed   bool
}

// NewMock creates a new mock state manager for testing.
func NewMock() *Mock {
	return &Mock{views: make(map[string]listview.Settings)}
}

func (m *Mock) DB() *sql.DB { return nil }

func (m *Mock) SaveNavigation(state NavigationState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.navState = &state
}

func (m *Mock) GetNavigation() (*NavigationState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.navState, nil
}

func (m *Mock) SaveViewSettings(view string, s listview.Settings) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.views[view] = s
}

func (m *Mock) GetViewSettings(view string) (*listview.Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.views[view]
	if !ok {
		return nil, nil //nolint:nilnil // mirrors Manager
	}
	return &s, nil
}

func (m *Mock) GetSession() (*StoredSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session, nil
}

func (m *Mock) SaveSession(sess api.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = &StoredSession{Session: sess, SavedAt: time.Now()}
	return nil
}

func (m *Mock) DeleteSession() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = nil
	return nil
}

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Test helpers

func (m *Mock) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
