package state

import (
	"database/sql"

	"github.com/llehouerou/xiamiu/internal/api"
	"github.com/llehouerou/xiamiu/internal/listview"
)

// Interface defines the state manager contract for dependency injection and testing.
type Interface interface {
	DB() *sql.DB
	SaveNavigation(state NavigationState)
	GetNavigation() (*NavigationState, error)
	SaveViewSettings(view string, s listview.Settings)
	GetViewSettings(view string) (*listview.Settings, error)
	GetSession() (*StoredSession, error)
	SaveSession(sess api.Session) error
	DeleteSession() error
	Close() error
}

// Verify Manager implements Interface at compile time.
var _ Interface = (*Manager)(nil)
