package state

import (
	"database/sql"
	"errors"
	"time"

	"github.com/llehouerou/xiamiu/internal/api"
	dbutil "github.com/llehouerou/xiamiu/internal/db"
)

// StoredSession is a login token persisted between runs.
type StoredSession struct {
	api.Session
	SavedAt time.Time
}

// GetSession returns the stored session, or nil if logged out.
func (m *Manager) GetSession() (*StoredSession, error) {
	var s StoredSession
	var tokenType sql.NullString
	var savedAt sql.NullInt64

	err := m.db.QueryRow(`
		SELECT username, access_token, token_type, saved_at FROM session WHERE id = 1
	`).Scan(&s.Username, &s.AccessToken, &tokenType, &savedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil //nolint:nilnil // nil session means logged out, not an error
	}
	if err != nil {
		return nil, err
	}

	s.TokenType = dbutil.NullStringValue(tokenType)
	s.SavedAt = dbutil.UnixTime(savedAt)
	return &s, nil
}

// SaveSession stores the login token, replacing any previous one.
func (m *Manager) SaveSession(sess api.Session) error {
	_, err := m.db.Exec(`
		INSERT INTO session (id, username, access_token, token_type, saved_at)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			username = excluded.username,
			access_token = excluded.access_token,
			token_type = excluded.token_type,
			saved_at = excluded.saved_at
	`, sess.Username, sess.AccessToken, dbutil.NullString(sess.TokenType), time.Now().Unix())
	return err
}

// DeleteSession forgets the stored login token.
func (m *Manager) DeleteSession() error {
	_, err := m.db.Exec(`DELETE FROM session WHERE id = 1`)
	return err
}
