package state

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	dbutil "github.com/llehouerou/xiamiu/internal/db"
	"github.com/llehouerou/xiamiu/internal/listview"
)

func getViewSettings(db *sql.DB, view string) (*listview.Settings, error) {
	var raw string
	err := db.QueryRow(`SELECT settings FROM view_settings WHERE view = ?`, view).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil //nolint:nilnil // views start with default controls
	}
	if err != nil {
		return nil, err
	}

	var s listview.Settings
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		// Unreadable rows are treated as absent
		return nil, nil //nolint:nilnil,nilerr // fall back to defaults
	}
	return &s, nil
}

func saveViewSettings(ctx context.Context, db *sql.DB, views map[string]listview.Settings) error {
	now := time.Now().Unix()
	return dbutil.WithTx(ctx, db, func(tx *sql.Tx) error {
		for view, s := range views {
			data, err := json.Marshal(s)
			if err != nil {
				return err
			}
			_, err = tx.Exec(`
				INSERT INTO view_settings (view, settings, updated_at)
				VALUES (?, ?, ?)
				ON CONFLICT(view) DO UPDATE SET
					settings = excluded.settings,
					updated_at = excluded.updated_at
			`, view, string(data), now)
			if err != nil {
				return err
			}
		}
		return nil
	})
}
