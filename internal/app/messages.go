package app

import (
	"github.com/llehouerou/xiamiu/internal/api"
	"github.com/llehouerou/xiamiu/internal/app/navctl"
	"github.com/llehouerou/xiamiu/internal/catalog"
	"github.com/llehouerou/xiamiu/internal/errmsg"
)

// startMsg opens the initial page once the program runs.
type startMsg struct{}

// collectionLoadedMsg carries the snapshot fetched for a list page.
type collectionLoadedMsg struct {
	Kind    navctl.Kind
	Version uint64
	Items   any // []T of the page
	Err     error
}

// genreFilterMsg carries the cross-reference set of a genre filter.
type genreFilterMsg struct {
	Kind    navctl.Kind
	Version uint64
	GenreID string
	IDs     []string
	Err     error
}

// genresLoadedMsg carries the genres offered by the genre filter.
type genresLoadedMsg struct {
	Genres []catalog.Genre
	Err    error
}

// detailLoadedMsg carries the primary fetch of a detail page.
type detailLoadedMsg struct {
	Version uint64
	Op      errmsg.Op
	Apply   func(*detailPage)
	Err     error
}

// sectionMsg carries one secondary fetch of a detail page. A failure is
// logged and the section left out.
type sectionMsg struct {
	Version uint64
	Op      errmsg.Op
	Apply   func(*detailPage)
	Err     error
}

// sessionCheckedMsg reports whether a restored session is still accepted.
type sessionCheckedMsg struct {
	Token string
	User  catalog.User
	Err   error
}

// loginMsg carries the outcome of a login.
type loginMsg struct {
	Session api.Session
	User    catalog.User
	Err     error
}

// commentPostedMsg carries a posted comment.
type commentPostedMsg struct {
	Version uint64
	Comment catalog.Comment
	Err     error
}

// commentDeletedMsg reports a deleted comment.
type commentDeletedMsg struct {
	Version uint64
	ID      int
	Err     error
}
