// Package coverart draws album covers and artist pictures in the terminal
// using the Kitty graphics protocol.
package coverart

import (
	"image"
	"sync"
	"sync/atomic"

	"github.com/nfnt/resize"
)

var nextImageID atomic.Uint32

// Renderer holds the picture currently shown on a page.
type Renderer struct {
	mu sync.RWMutex

	enabled bool
	width   int // cells
	height  int

	url     string
	imageID uint32
	pending string // transmission not yet written to the terminal
}

// New creates a renderer. When enabled is false the renderer only produces
// frame placeholders.
func New(enabled bool) *Renderer {
	return &Renderer{enabled: enabled}
}

// Enabled reports whether images are drawn.
func (r *Renderer) Enabled() bool {
	return r.enabled
}

// SetSize sets the display dimensions in terminal cells.
func (r *Renderer) SetSize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.width != width || r.height != height {
		r.width = width
		r.height = height
		r.url = "" // re-transmit at the new size
	}
}

// Size returns the display dimensions in cells.
func (r *Renderer) Size() (width, height int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.width, r.height
}

// URL returns the address of the prepared picture.
func (r *Renderer) URL() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.url
}

// Show prepares img, loaded from url, for display. The escape sequences are
// returned by TakePending on the next render.
func (r *Renderer) Show(url string, img image.Image) {
	if !r.enabled || img == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.url == url && r.imageID != 0 {
		return
	}

	var cmd string
	if r.imageID != 0 {
		cmd = DeleteImage(r.imageID)
	}

	// Terminal cells are about 8x16 pixels.
	pw := uint(max(r.width*8, 64))   //nolint:gosec // small dimensions
	ph := uint(max(r.height*16, 64)) //nolint:gosec // small dimensions
	thumb := resize.Thumbnail(pw, ph, img, resize.Lanczos3)

	id := nextImageID.Add(1)
	transmit, err := TransmitImage(thumb, id)
	if err != nil {
		r.url, r.imageID = "", 0
		r.pending += cmd
		return
	}

	r.url = url
	r.imageID = id
	r.pending += cmd + transmit
}

// TakePending returns the escape sequences still to be written and clears
// them.
func (r *Renderer) TakePending() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.pending
	r.pending = ""
	return p
}

// HasImage reports whether a picture is ready to be placed.
func (r *Renderer) HasImage() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.imageID != 0
}

// Placement returns the command placing the picture at a 1-based position.
func (r *Renderer) Placement(row, col int) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.imageID == 0 {
		return ""
	}
	return PlaceImage(r.imageID, row, col, r.width, r.height)
}

// Placeholder returns the layout text for the picture area.
func (r *Renderer) Placeholder() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.imageID != 0 {
		return BlankPlaceholder(r.width, r.height)
	}
	return FramePlaceholder(r.width, r.height)
}

// Clear removes the picture. The deletion command is returned by the next
// TakePending.
func (r *Renderer) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.imageID != 0 {
		r.pending = DeleteImage(r.imageID)
	} else {
		r.pending = ""
	}
	r.url = ""
	r.imageID = 0
}
