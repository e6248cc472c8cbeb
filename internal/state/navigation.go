package state

import (
	"database/sql"
	"errors"

	dbutil "github.com/llehouerou/xiamiu/internal/db"
)

// NavigationState is the page the user was on when the app last closed.
type NavigationState struct {
	Page       string // "home", "artists", "album", ...
	EntityID   string // id of the artist/album/song/genre for detail pages
	SelectedID string // id of the highlighted row
}

func getNavigation(db *sql.DB) (*NavigationState, error) {
	row := db.QueryRow(`
		SELECT page, entity_id, selected_id FROM navigation_state WHERE id = 1
	`)

	var state NavigationState
	var entityID, selectedID sql.NullString

	err := row.Scan(&state.Page, &entityID, &selectedID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil //nolint:nilnil // no saved state is valid on first run
	}
	if err != nil {
		return nil, err
	}

	state.EntityID = dbutil.NullStringValue(entityID)
	state.SelectedID = dbutil.NullStringValue(selectedID)

	return &state, nil
}

func saveNavigation(db *sql.DB, state NavigationState) error {
	_, err := db.Exec(`
		INSERT INTO navigation_state (id, page, entity_id, selected_id)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			page = excluded.page,
			entity_id = excluded.entity_id,
			selected_id = excluded.selected_id
	`, state.Page, dbutil.NullString(state.EntityID), dbutil.NullString(state.SelectedID))

	return err
}
