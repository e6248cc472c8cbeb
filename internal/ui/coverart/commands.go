package coverart

import (
	"context"
	"image"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// LoadedMsg carries a downloaded picture.
type LoadedMsg struct {
	URL   string
	Image image.Image
	Err   error
}

// LoadCmd downloads the picture at url.
func LoadCmd(l *Loader, url string, timeout time.Duration) tea.Cmd {
	if url == "" {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		img, err := l.Load(ctx, url)
		return LoadedMsg{URL: url, Image: img, Err: err}
	}
}
