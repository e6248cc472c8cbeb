package popupctl

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/xiamiu/internal/ui/confirm"
	"github.com/llehouerou/xiamiu/internal/ui/helpbindings"
	"github.com/llehouerou/xiamiu/internal/ui/popup"
	"github.com/llehouerou/xiamiu/internal/ui/textinput"
)

// Manager manages all modal popups and overlays.
type Manager struct {
	popups    map[Type]popup.Popup
	sizes     map[Type]popup.SizeConfig
	inputMode InputMode
	errorMsg  string
	width     int
	height    int
}

// New creates a new Manager.
func New() *Manager {
	return &Manager{
		popups: make(map[Type]popup.Popup),
		sizes: map[Type]popup.SizeConfig{
			Help:      popup.SizeLarge,
			TextInput: popup.SizeMedium,
			Confirm:   popup.SizeMedium,
			Error:     popup.SizeMedium,
		},
	}
}

// SetSize updates the dimensions for popup rendering.
func (p *Manager) SetSize(width, height int) {
	p.width = width
	p.height = height
	for t, pop := range p.popups {
		pop.SetSize(p.contentSize(p.sizes[t]))
	}
}

// IsVisible returns true if the specified popup type is visible.
func (p *Manager) IsVisible(t Type) bool {
	switch t {
	case Error:
		return p.errorMsg != ""
	case TextInput:
		return p.inputMode != InputNone && p.popups[t] != nil
	case Help, Confirm:
		return p.popups[t] != nil
	}
	return false
}

// ActivePopup returns which popup is currently active (highest priority).
func (p *Manager) ActivePopup() Type {
	for _, t := range Priority {
		if p.IsVisible(t) {
			return t
		}
	}
	return None
}

// Show displays a popup of the given type.
func (p *Manager) Show(t Type, pop popup.Popup) tea.Cmd {
	pop.SetSize(p.contentSize(p.sizes[t]))
	p.popups[t] = pop
	return pop.Init()
}

// Hide hides the specified popup type.
func (p *Manager) Hide(t Type) {
	switch t {
	case Error:
		p.errorMsg = ""
	case TextInput:
		p.inputMode = InputNone
		delete(p.popups, t)
	case Help, Confirm:
		delete(p.popups, t)
	}
}

// contentSize is the room left inside the border and padding.
func (p *Manager) contentSize(size popup.SizeConfig) (width, height int) {
	if size.WidthPct > 0 {
		return p.width*size.WidthPct/100 - 6, p.height*size.HeightPct/100 - 4
	}
	w := p.width - 10
	if size.MaxWidth > 0 {
		w = min(w, size.MaxWidth-6)
	}
	return max(w, 10), max(p.height-8, 3)
}

// ShowHelp displays the help popup with the given contexts.
func (p *Manager) ShowHelp(contexts []string) tea.Cmd {
	help := helpbindings.New()
	help.SetContexts(contexts)
	return p.Show(Help, &help)
}

// ShowTextInput displays the form popup.
func (p *Manager) ShowTextInput(mode InputMode, title string, fields []textinput.Field, context any) tea.Cmd {
	p.inputMode = mode
	ti := textinput.New()
	ti.Start(title, fields, context)
	return p.Show(TextInput, &ti)
}

// ShowConfirm asks a yes/no question. The answer arrives as a
// confirm.Result carrying context.
func (p *Manager) ShowConfirm(title, message string, context any) tea.Cmd {
	c := confirm.New()
	c.Show(title, message, context)
	return p.Show(Confirm, &c)
}

// ShowError displays an error message popup.
func (p *Manager) ShowError(msg string) {
	p.errorMsg = msg
}

// InputMode returns the current input mode.
func (p *Manager) InputMode() InputMode {
	return p.inputMode
}

// ErrorMsg returns the current error message.
func (p *Manager) ErrorMsg() string {
	return p.errorMsg
}

// HandleKey routes key events to the active popup.
// Returns (handled, cmd) where handled is true if a popup consumed the key.
func (p *Manager) HandleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	// Any key dismisses the error popup.
	if p.errorMsg != "" {
		p.errorMsg = ""
		return true, nil
	}

	active := p.ActivePopup()
	if active == None {
		return false, nil
	}
	pop := p.popups[active]
	if pop == nil {
		return false, nil
	}
	updated, cmd := pop.Update(msg)
	p.popups[active] = updated
	return true, cmd
}

// Update forwards non-key messages (cursor blink) to the text input.
func (p *Manager) Update(msg tea.Msg) tea.Cmd {
	pop := p.popups[TextInput]
	if pop == nil {
		return nil
	}
	updated, cmd := pop.Update(msg)
	p.popups[TextInput] = updated
	return cmd
}

// RenderOverlay renders active popup(s) on top of the base view.
func (p *Manager) RenderOverlay(base string) string {
	for _, t := range RenderOrder {
		if !p.IsVisible(t) {
			continue
		}
		var content string
		if t == Error {
			content = popup.Frame("Error", p.errorMsg, "press any key to dismiss")
		} else {
			content = p.popups[t].View()
		}
		rendered := popup.RenderBordered(content, p.width, p.height, p.sizes[t])
		base = popup.Compose(base, rendered, p.width)
	}
	return base
}
