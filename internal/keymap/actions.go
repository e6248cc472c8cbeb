// Package keymap defines key bindings and action dispatch for the application.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit    Action = "quit"
	ActionHelp    Action = "help"
	ActionBack    Action = "back"
	ActionReload  Action = "reload"
	ActionLogin   Action = "login" // logs out when a session is active
	ActionNextTab Action = "next_tab"
	ActionPrevTab Action = "prev_tab"

	// Page switching
	ActionViewHome    Action = "view_home"
	ActionViewArtists Action = "view_artists"
	ActionViewAlbums  Action = "view_albums"
	ActionViewSongs   Action = "view_songs"
	ActionViewGenres  Action = "view_genres"
	ActionViewSearch  Action = "view_search"
	ActionViewMyMusic Action = "view_my_music"

	// Cursor movement, shared by every page
	ActionMoveUp   Action = "move_up"
	ActionMoveDown Action = "move_down"
	ActionHalfUp   Action = "half_up"
	ActionHalfDown Action = "half_down"
	ActionTop      Action = "top"
	ActionBottom   Action = "bottom"
	ActionOpen     Action = "open"

	// List pages
	ActionFilter       Action = "filter"
	ActionCycleSort    Action = "cycle_sort"
	ActionCycleFacet   Action = "cycle_facet"
	ActionCycleFacet2  Action = "cycle_facet_2"
	ActionCycleGenre   Action = "cycle_genre"
	ActionClearGenre   Action = "clear_genre"
	ActionResetFilters Action = "reset_filters"
	ActionNextPage     Action = "next_page"
	ActionPrevPage     Action = "prev_page"

	// Detail pages
	ActionComment       Action = "comment"
	ActionDeleteComment Action = "delete_comment"

	// Search page
	ActionNewSearch Action = "new_search"
)
