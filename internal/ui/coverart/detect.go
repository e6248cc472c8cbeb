package coverart

import (
	"os"
	"strings"
)

// Supported reports whether images can be drawn in the current terminal.
//
// XIAMIU_IMAGE_PROTOCOL overrides detection: "kitty" forces images on,
// "none" turns them off.
func Supported() bool {
	switch os.Getenv("XIAMIU_IMAGE_PROTOCOL") {
	case "kitty":
		return true
	case "none":
		return false
	}
	return IsKittySupported()
}

// IsKittySupported checks if the terminal supports Kitty graphics protocol.
func IsKittySupported() bool {
	// Contour sets CONTOUR_PROFILE but doesn't support Kitty protocol, while
	// parent terminal variables can leak into it.
	if os.Getenv("CONTOUR_PROFILE") != "" {
		return false
	}

	if os.Getenv("KITTY_WINDOW_ID") != "" {
		return true
	}
	if os.Getenv("TERM") == "xterm-kitty" {
		return true
	}
	if os.Getenv("TERM_PROGRAM") == "WezTerm" {
		return true
	}
	if os.Getenv("GHOSTTY_RESOURCES_DIR") != "" {
		return true
	}
	// KONSOLE_VERSION is like "220401" for 22.04.01
	if version := os.Getenv("KONSOLE_VERSION"); len(version) >= 4 && version[:4] >= "2204" {
		return true
	}
	return strings.Contains(os.Getenv("TERM"), "kitty")
}
