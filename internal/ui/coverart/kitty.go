package coverart

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"strings"
)

// Kitty graphics protocol escape sequences
const (
	escStart = "\x1b_G"
	escEnd   = "\x1b\\"

	chunkSize = 4096 // max base64 bytes per escape sequence
)

// TransmitImage sends an image to the terminal memory without displaying it (a=t).
func TransmitImage(img image.Image, id uint32) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode png: %w", err)
	}
	return TransmitPNG(buf.Bytes(), id), nil
}

// TransmitPNG builds the chunked transmission of pre-encoded PNG data.
// f=100: PNG, q=2: suppress terminal responses, m=1 while chunks follow.
func TransmitPNG(pngData []byte, id uint32) string {
	encoded := base64.StdEncoding.EncodeToString(pngData)

	var sb strings.Builder
	for i := 0; i < len(encoded); i += chunkSize {
		end := min(i+chunkSize, len(encoded))
		more := 0
		if end < len(encoded) {
			more = 1
		}

		sb.WriteString(escStart)
		if i == 0 {
			fmt.Fprintf(&sb, "a=t,f=100,i=%d,q=2,m=%d;", id, more)
		} else {
			fmt.Fprintf(&sb, "m=%d;", more)
		}
		sb.WriteString(encoded[i:end])
		sb.WriteString(escEnd)
	}
	return sb.String()
}

// PlaceImage displays a transmitted image at a 1-based terminal position,
// sized in cells. The fixed placement id (p=1) replaces any earlier
// placement so moving the image leaves no ghost behind.
func PlaceImage(id uint32, row, col, width, height int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "\x1b[s\x1b[%d;%dH", row, col)
	fmt.Fprintf(&sb, "%sa=p,i=%d,p=1,c=%d,r=%d,C=1,q=2;%s", escStart, id, width, height, escEnd)
	sb.WriteString("\x1b[u")
	return sb.String()
}

// DeleteImage removes a transmitted image and all its placements.
func DeleteImage(id uint32) string {
	return fmt.Sprintf("%sa=d,d=i,i=%d,q=2;%s", escStart, id, escEnd)
}

// BlankPlaceholder reserves the image area in the layout.
func BlankPlaceholder(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	line := strings.Repeat(" ", width)
	lines := make([]string, height)
	for i := range lines {
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

// FramePlaceholder draws an empty frame with a note, used when no image can
// be shown.
func FramePlaceholder(width, height int) string {
	if width < 4 || height < 2 {
		return ""
	}

	lines := make([]string, 0, height)
	lines = append(lines, "┌"+strings.Repeat("─", width-2)+"┐")
	for i := 1; i < height-1; i++ {
		if i == height/2 && width >= 5 {
			pad := (width - 3) / 2
			lines = append(lines, "│"+strings.Repeat(" ", pad)+"♪"+strings.Repeat(" ", width-3-pad)+"│")
			continue
		}
		lines = append(lines, "│"+strings.Repeat(" ", width-2)+"│")
	}
	lines = append(lines, "└"+strings.Repeat("─", width-2)+"┘")
	return strings.Join(lines, "\n")
}
