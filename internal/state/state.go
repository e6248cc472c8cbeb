package state

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"go.uber.org/zap"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/llehouerou/xiamiu/internal/listview"
)

const (
	appName      = "xiamiu"
	dbFileName   = "xiamiu.db"
	saveDebounce = 500 * time.Millisecond
)

type Manager struct {
	db  *sql.DB
	log *zap.Logger

	saveMu      sync.Mutex
	saveTimer   *time.Timer
	pendingNav  *NavigationState
	pendingView map[string]listview.Settings
}

// Open opens the state database under $XDG_DATA_HOME/xiamiu.
func Open(log *zap.Logger) (*Manager, error) {
	dbPath, err := getDBPath()
	if err != nil {
		return nil, err
	}
	return OpenPath(dbPath, log)
}

// OpenPath opens (or creates) the state database at path.
func OpenPath(dbPath string, log *zap.Logger) (*Manager, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	// modernc sqlite serializes writers; one connection also keeps :memory: coherent.
	db.SetMaxOpenConns(1)

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		db:          db,
		log:         log.Named("state"),
		pendingView: make(map[string]listview.Settings),
	}, nil
}

func (m *Manager) Close() error {
	m.saveMu.Lock()
	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
	m.saveMu.Unlock()

	// Flush pending state
	m.flush()

	return m.db.Close()
}

func (m *Manager) DB() *sql.DB {
	return m.db
}

func (m *Manager) GetNavigation() (*NavigationState, error) {
	return getNavigation(m.db)
}

// SaveNavigation records the current page; writes are debounced.
func (m *Manager) SaveNavigation(state NavigationState) {
	m.saveMu.Lock()
	defer m.saveMu.Unlock()

	m.pendingNav = &state
	m.scheduleLocked()
}

// GetViewSettings returns the saved controls of one list view, or nil.
func (m *Manager) GetViewSettings(view string) (*listview.Settings, error) {
	return getViewSettings(m.db, view)
}

// SaveViewSettings records a list view's controls; writes are debounced.
func (m *Manager) SaveViewSettings(view string, s listview.Settings) {
	m.saveMu.Lock()
	defer m.saveMu.Unlock()

	m.pendingView[view] = s
	m.scheduleLocked()
}

func (m *Manager) scheduleLocked() {
	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
	m.saveTimer = time.AfterFunc(saveDebounce, m.flush)
}

func (m *Manager) flush() {
	m.saveMu.Lock()
	nav := m.pendingNav
	views := m.pendingView
	m.pendingNav = nil
	m.pendingView = make(map[string]listview.Settings)
	m.saveMu.Unlock()

	if nav != nil {
		if err := saveNavigation(m.db, *nav); err != nil {
			m.log.Warn("save navigation", zap.Error(err))
		}
	}
	if len(views) > 0 {
		if err := saveViewSettings(context.Background(), m.db, views); err != nil {
			m.log.Warn("save view settings", zap.Error(err))
		}
	}
}

func getDBPath() (string, error) {
	return xdg.DataFile(filepath.Join(appName, dbFileName))
}
