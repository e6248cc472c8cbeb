package lyrics

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/adrg/xdg"
	"go.uber.org/zap"

	"github.com/llehouerou/xiamiu/internal/catalog"
	"github.com/llehouerou/xiamiu/internal/lrclib"
)

// Origin tells where lyrics came from.
type Origin string

const (
	OriginCatalog  Origin = "catalog"
	OriginCache    Origin = "cache"
	OriginLRCLib   Origin = "lrclib"
	OriginNotFound Origin = "not_found"
)

// MetaFetcher reads song metadata from the catalog.
type MetaFetcher interface {
	SongMeta(ctx context.Context, id string) (catalog.SongMeta, error)
}

// Source looks lyrics up in the catalog, then the local cache, then lrclib.
type Source struct {
	catalog  MetaFetcher
	client   *lrclib.Client // nil disables lrclib
	cacheDir string
	log      *zap.Logger
}

// NewSource creates a lyrics source. client may be nil.
func NewSource(meta MetaFetcher, client *lrclib.Client, log *zap.Logger) *Source {
	if log == nil {
		log = zap.NewNop()
	}
	return &Source{
		catalog:  meta,
		client:   client,
		cacheDir: filepath.Join(xdg.CacheHome, "xiamiu", "lyrics"),
		log:      log.Named("lyrics"),
	}
}

// WithCacheDir returns a copy of s caching under dir ("" disables caching).
func (s *Source) WithCacheDir(dir string) *Source {
	c := *s
	c.cacheDir = dir
	return &c
}

// Track identifies the song to find lyrics for.
type Track struct {
	SongID string
	Artist string
	Title  string
	Album  string
}

// Result is the outcome of a lookup. Err is set only for failures worth
// logging; a miss is OriginNotFound with no error.
type Result struct {
	Lyrics *Lyrics
	Origin Origin
	Err    error
}

// Fetch runs the lookup chain.
func (s *Source) Fetch(ctx context.Context, t Track) Result {
	if s.catalog != nil && t.SongID != "" {
		meta, err := s.catalog.SongMeta(ctx, t.SongID)
		switch {
		case err == nil:
			if l := Parse(meta.Lyrics); !l.Empty() {
				return Result{Lyrics: l, Origin: OriginCatalog}
			}
		case ctx.Err() != nil:
			return Result{Origin: OriginNotFound, Err: ctx.Err()}
		default:
			s.log.Debug("catalog lyrics unavailable", zap.String("song", t.SongID), zap.Error(err))
		}
	}

	if t.Artist == "" || t.Title == "" {
		return Result{Origin: OriginNotFound}
	}

	if l, err := s.loadFromFile(s.cachePath(t.Artist, t.Title)); err == nil && !l.Empty() {
		return Result{Lyrics: l, Origin: OriginCache}
	}

	if s.client == nil {
		return Result{Origin: OriginNotFound}
	}
	return s.fetchFromLRCLib(ctx, t)
}

func (s *Source) fetchFromLRCLib(ctx context.Context, t Track) Result {
	res, err := s.client.Get(ctx, t.Artist, t.Title, t.Album)
	if errors.Is(err, lrclib.ErrNotFound) {
		results, serr := s.client.Search(ctx, t.Artist+" "+t.Title)
		if serr != nil {
			return Result{Origin: OriginNotFound, Err: serr}
		}
		best, ok := lrclib.Best(results)
		if !ok {
			return Result{Origin: OriginNotFound}
		}
		res, err = best, nil
	}
	if err != nil {
		return Result{Origin: OriginNotFound, Err: err}
	}

	l := fromLRCLib(res)
	if l.Empty() {
		return Result{Origin: OriginNotFound}
	}

	content := res.SyncedLyrics
	if content == "" {
		content = res.PlainLyrics
	}
	if err := s.saveToCache(t.Artist, t.Title, content); err != nil {
		s.log.Debug("cache lyrics", zap.Error(err))
	}

	return Result{Lyrics: l, Origin: OriginLRCLib}
}

func fromLRCLib(r *lrclib.Result) *Lyrics {
	var l *Lyrics
	switch {
	case r.HasSyncedLyrics():
		parsed, err := ParseLRC(strings.NewReader(r.SyncedLyrics))
		if err != nil {
			return nil
		}
		l = parsed
	case r.HasPlainLyrics():
		l = Parse(r.PlainLyrics)
	default:
		return nil
	}

	if l.Artist == "" {
		l.Artist = r.ArtistName
	}
	if l.Title == "" {
		l.Title = r.TrackName
	}
	if l.Album == "" {
		l.Album = r.AlbumName
	}
	return l
}

func (s *Source) loadFromFile(path string) (*Lyrics, error) {
	if path == "" {
		return nil, os.ErrNotExist
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(string(data)), nil
}

func (s *Source) cachePath(artist, title string) string {
	if s.cacheDir == "" {
		return ""
	}
	return filepath.Join(s.cacheDir, sanitizeFilename(artist), sanitizeFilename(title)+".lrc")
}

func (s *Source) saveToCache(artist, title, content string) error {
	path := s.cachePath(artist, title)
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o600)
}

var invalidFilenameChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)

func sanitizeFilename(name string) string {
	name = invalidFilenameChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, " .")
	if len(name) > 100 {
		name = name[:100]
	}
	if name == "" {
		name = "_"
	}
	return name
}
