// Package ui provides shared UI constants and utilities.
package ui

// Layout constants for consistent sizing across pages.
const (
	// ScrollMargin is the number of items to keep visible above/below the cursor.
	ScrollMargin = 3

	// HeaderHeight is the tab bar plus the blank line under it.
	HeaderHeight = 2

	// FooterHeight is the status line plus the key hint line.
	FooterHeight = 2

	// CoverWidth and CoverHeight size the picture on detail pages, in cells.
	CoverWidth  = 20
	CoverHeight = 10

	// MinWidth is the narrowest terminal the pages lay out for.
	MinWidth = 40
)
