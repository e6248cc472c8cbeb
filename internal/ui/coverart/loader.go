package coverart

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder for covers
	_ "image/png"  // PNG decoder for covers
	"io"
	"net/http"
	"sync"
	"time"

	_ "golang.org/x/image/webp" // WebP decoder for covers
)

const (
	maxImageBytes = 5 << 20
	cacheEntries  = 64
)

// ErrNoImage is returned for an empty picture address.
var ErrNoImage = errors.New("no image")

// Loader downloads and decodes pictures, keeping decoded images in memory
// keyed by URL.
type Loader struct {
	client *http.Client

	mu    sync.Mutex
	cache map[string]image.Image
	order []string // insertion order for eviction
}

// NewLoader creates a loader. A nil client uses a 10s timeout client.
func NewLoader(client *http.Client) *Loader {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Loader{
		client: client,
		cache:  make(map[string]image.Image),
	}
}

// Cached returns an already loaded image.
func (l *Loader) Cached(url string) (image.Image, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	img, ok := l.cache[url]
	return img, ok
}

// Load returns the decoded image at url, fetching it when not cached.
func (l *Loader) Load(ctx context.Context, url string) (image.Image, error) {
	if url == "" {
		return nil, ErrNoImage
	}
	if img, ok := l.Cached(url); ok {
		return img, nil
	}

	img, err := l.fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.cache[url]; !ok {
		if len(l.order) >= cacheEntries {
			delete(l.cache, l.order[0])
			l.order = l.order[1:]
		}
		l.order = append(l.order, url)
	}
	l.cache[url] = img
	return img, nil
}

func (l *Loader) fetch(ctx context.Context, url string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch image: HTTP %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}
