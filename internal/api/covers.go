package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/llehouerou/xiamiu/internal/catalog"
)

// coverFetchLimit bounds concurrent per-id meta requests.
const coverFetchLimit = 4

// AlbumCovers resolves cover URLs for a set of albums, keyed by album id.
// Albums without a cover, or whose lookup failed, are absent from the map.
// Only context cancellation is reported as an error.
func (c *Client) AlbumCovers(ctx context.Context, ids []string) (map[string]string, error) {
	return lookupPictures(ctx, c, "/albums", ids, &c.noBatchAlbumMeta,
		func(m catalog.AlbumMeta) (string, string) { return m.AlbumID, m.PicAddress })
}

// ArtistPictures resolves artist picture URLs, keyed by artist id.
func (c *Client) ArtistPictures(ctx context.Context, ids []string) (map[string]string, error) {
	return lookupPictures(ctx, c, "/artists", ids, &c.noBatchArtistMeta,
		func(m catalog.ArtistMeta) (string, string) { return m.ArtistID, m.PicAddress })
}

// lookupPictures tries the batched "<root>/meta?ids=" endpoint first. Servers
// without it answer 404 or 405; the client remembers that and falls back to
// one "<root>/{id}/meta" request per id.
func lookupPictures[M any](
	ctx context.Context,
	c *Client,
	root string,
	ids []string,
	noBatch *atomic.Bool,
	pic func(M) (id, address string),
) (map[string]string, error) {
	out := make(map[string]string, len(ids))
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return out, nil
	}

	if !noBatch.Load() {
		q := url.Values{}
		q.Set("ids", strings.Join(ids, ","))
		metas, err := getJSON[[]M](ctx, c, root+"/meta", q)
		if err == nil {
			for _, m := range metas {
				if id, addr := pic(m); id != "" && addr != "" {
					out[id] = addr
				}
			}
			return out, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if IsStatus(err, http.StatusNotFound, http.StatusMethodNotAllowed) {
			noBatch.Store(true)
			c.log.Debug("batched meta lookup unsupported, using per-id requests",
				zap.String("root", root))
		} else {
			c.log.Warn("batched meta lookup failed", zap.String("root", root), zap.Error(err))
		}
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(coverFetchLimit)
	for _, id := range ids {
		g.Go(func() error {
			m, err := getJSON[M](gctx, c, root+"/"+esc(id)+"/meta", nil)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				c.log.Debug("meta lookup failed", zap.String("id", id), zap.Error(err))
				return nil
			}
			if _, addr := pic(m); addr != "" {
				mu.Lock()
				out[id] = addr
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
