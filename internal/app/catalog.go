package app

import (
	"context"

	"github.com/llehouerou/xiamiu/internal/api"
	"github.com/llehouerou/xiamiu/internal/catalog"
	"github.com/llehouerou/xiamiu/internal/lyrics"
	"github.com/llehouerou/xiamiu/internal/views"
)

// Catalog is the part of the API client the TUI talks to.
type Catalog interface {
	views.Fetcher
	lyrics.MetaFetcher

	Artist(ctx context.Context, id string) (catalog.Artist, error)
	ArtistMeta(ctx context.Context, id string) (catalog.ArtistMeta, error)
	Album(ctx context.Context, id string) (catalog.Album, error)
	AlbumMeta(ctx context.Context, id string) (catalog.AlbumMeta, error)
	AlbumRating(ctx context.Context, id string) (catalog.Rating, error)
	AlbumSongsRating(ctx context.Context, id string) ([]catalog.SongRating, error)
	Song(ctx context.Context, id string) (catalog.Song, error)
	SongRating(ctx context.Context, id string) (catalog.Rating, error)
	Genre(ctx context.Context, id string) (catalog.Genre, error)
	User(ctx context.Context, id int) (catalog.User, error)
	Search(ctx context.Context, query string) (catalog.SearchResult, error)

	Comments(ctx context.Context, target catalog.Target, id string) ([]catalog.Comment, error)
	UserComments(ctx context.Context, userID int, target catalog.Target) ([]catalog.Comment, error)
	AddComment(ctx context.Context, sess *api.Session, target catalog.Target, id, text string, stars int) (catalog.Comment, error)
	DeleteComment(ctx context.Context, sess *api.Session, target catalog.Target, commentID int) error

	AlbumCovers(ctx context.Context, ids []string) (map[string]string, error)
	ArtistPictures(ctx context.Context, ids []string) (map[string]string, error)

	Login(ctx context.Context, username, password string) (api.Session, error)
	CurrentUser(ctx context.Context, sess *api.Session) (catalog.User, error)
}

var _ Catalog = (*api.Client)(nil)
