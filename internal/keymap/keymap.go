package keymap

// Binding context names.
const (
	ContextGlobal = "global"
	ContextCursor = "cursor"
	ContextList   = "list"
	ContextDetail = "detail"
	ContextSearch = "search"
)

// Binding ties keys to an action within a context.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string
}

// All contains every key binding, in help display order.
var All = []Binding{
	// Global
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit", ContextGlobal},
	{ActionHelp, []string{"?"}, "Show help", ContextGlobal},
	{ActionBack, []string{"esc", "backspace"}, "Back to previous page", ContextGlobal},
	{ActionReload, []string{"r"}, "Reload page", ContextGlobal},
	{ActionLogin, []string{"L"}, "Log in / log out", ContextGlobal},
	{ActionNextTab, []string{"tab"}, "Next tab", ContextGlobal},
	{ActionPrevTab, []string{"shift+tab"}, "Previous tab", ContextGlobal},
	{ActionViewHome, []string{"1"}, "Home", ContextGlobal},
	{ActionViewArtists, []string{"2"}, "Artists", ContextGlobal},
	{ActionViewAlbums, []string{"3"}, "Albums", ContextGlobal},
	{ActionViewSongs, []string{"4"}, "Songs", ContextGlobal},
	{ActionViewGenres, []string{"5"}, "Genres", ContextGlobal},
	{ActionViewSearch, []string{"6"}, "Search", ContextGlobal},
	{ActionViewMyMusic, []string{"7"}, "My music", ContextGlobal},

	// Cursor
	{ActionMoveDown, []string{"j", "down"}, "Move down", ContextCursor},
	{ActionMoveUp, []string{"k", "up"}, "Move up", ContextCursor},
	{ActionHalfDown, []string{"ctrl+d"}, "Half page down", ContextCursor},
	{ActionHalfUp, []string{"ctrl+u"}, "Half page up", ContextCursor},
	{ActionTop, []string{"home"}, "First row", ContextCursor},
	{ActionBottom, []string{"end"}, "Last row", ContextCursor},
	{ActionOpen, []string{"enter"}, "Open selection", ContextCursor},

	// Lists
	{ActionFilter, []string{"/"}, "Filter by name", ContextList},
	{ActionCycleSort, []string{"s"}, "Cycle sort order", ContextList},
	{ActionCycleFacet, []string{"f"}, "Cycle first filter", ContextList},
	{ActionCycleFacet2, []string{"F"}, "Cycle second filter", ContextList},
	{ActionCycleGenre, []string{"g"}, "Cycle genre", ContextList},
	{ActionClearGenre, []string{"G"}, "Clear genre", ContextList},
	{ActionResetFilters, []string{"x"}, "Reset filters", ContextList},
	{ActionNextPage, []string{"]", "right", "l"}, "Next page", ContextList},
	{ActionPrevPage, []string{"[", "left", "h"}, "Previous page", ContextList},

	// Detail pages
	{ActionComment, []string{"c"}, "Write a comment", ContextDetail},
	{ActionDeleteComment, []string{"d", "delete"}, "Delete own comment", ContextDetail},

	// Search
	{ActionNewSearch, []string{"/"}, "New search", ContextSearch},
}

// ByContext returns all bindings for a given context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, b := range All {
		if b.Context == context {
			result = append(result, b)
		}
	}
	return result
}

// ContextLabel returns the help heading of a context.
func ContextLabel(context string) string {
	switch context {
	case ContextGlobal:
		return "Global"
	case ContextCursor:
		return "Navigation"
	case ContextList:
		return "Lists"
	case ContextDetail:
		return "Detail pages"
	case ContextSearch:
		return "Search"
	}
	return context
}
