package popup

import tea "github.com/charmbracelet/bubbletea"

// Popup is a modal component. While one is open it receives every key.
type Popup interface {
	// Init returns any initial command (e.g., cursor blink).
	Init() tea.Cmd

	// Update handles messages and returns the updated popup.
	Update(msg tea.Msg) (Popup, tea.Cmd)

	// View renders the popup content without the outer border.
	View() string

	// SetSize sets the available dimensions for the popup content.
	SetSize(width, height int)
}
