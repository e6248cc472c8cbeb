// Package textinput provides a small form popup: one or more labelled text
// fields submitted together.
package textinput

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/xiamiu/internal/ui"
	"github.com/llehouerou/xiamiu/internal/ui/popup"
	"github.com/llehouerou/xiamiu/internal/ui/styles"
)

var _ popup.Popup = (*Model)(nil)

// Field describes one input of the form.
type Field struct {
	Label       string
	Value       string // initial value
	Placeholder string
	Password    bool
	CharLimit   int
}

// Model is a form popup. Tab and arrows move between fields, enter submits
// from the last field (or moves to the next one), esc cancels.
type Model struct {
	ui.Base
	title   string
	labels  []string
	inputs  []textinput.Model
	focus   int
	context any
}

// New creates an empty form.
func New() Model {
	return Model{}
}

// Start resets the form with the given title and fields.
func (m *Model) Start(title string, fields []Field, context any) {
	m.title = title
	m.context = context
	m.focus = 0
	m.labels = make([]string, len(fields))
	m.inputs = make([]textinput.Model, len(fields))
	for i, f := range fields {
		in := textinput.New()
		in.Prompt = "> "
		in.Placeholder = f.Placeholder
		in.CharLimit = f.CharLimit
		if f.Password {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '•'
		}
		in.SetValue(f.Value)
		in.CursorEnd()
		m.labels[i] = f.Label
		m.inputs[i] = in
	}
	if len(m.inputs) > 0 {
		m.inputs[0].Focus()
	}
	m.resizeInputs()
}

// SetSize implements popup.Popup.
func (m *Model) SetSize(width, height int) {
	m.Base.SetSize(width, height)
	m.resizeInputs()
}

func (m *Model) resizeInputs() {
	for i := range m.inputs {
		m.inputs[i].Width = max(m.Width()-4, 10)
	}
}

// Init implements popup.Popup.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Values returns the current field values.
func (m *Model) Values() []string {
	out := make([]string, len(m.inputs))
	for i, in := range m.inputs {
		out[i] = in.Value()
	}
	return out
}

// Update implements popup.Popup.
func (m *Model) Update(msg tea.Msg) (popup.Popup, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			ctx := m.context
			return m, func() tea.Msg {
				return ActionMsg(Result{Canceled: true, Context: ctx})
			}
		case "enter":
			if m.focus < len(m.inputs)-1 {
				return m, m.setFocus(m.focus + 1)
			}
			res := Result{Values: m.Values(), Context: m.context}
			return m, func() tea.Msg { return ActionMsg(res) }
		case "tab", "down":
			return m, m.setFocus(m.focus + 1)
		case "shift+tab", "up":
			return m, m.setFocus(m.focus - 1)
		}
	}

	if m.focus >= len(m.inputs) {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) setFocus(i int) tea.Cmd {
	if len(m.inputs) == 0 {
		return nil
	}
	i = (i + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Blur()
	m.focus = i
	return m.inputs[i].Focus()
}

// View implements popup.Popup.
func (m *Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}
	s := styles.T().S()

	var b strings.Builder
	for i, in := range m.inputs {
		if i > 0 {
			b.WriteString("\n\n")
		}
		if m.labels[i] != "" {
			label := s.Muted
			if i == m.focus {
				label = s.Title
			}
			b.WriteString(label.Render(m.labels[i]))
			b.WriteString("\n")
		}
		b.WriteString(in.View())
	}

	hint := "enter: confirm  esc: cancel"
	if len(m.inputs) > 1 {
		hint = "tab: next field  " + hint
	}
	return popup.Frame(m.title, b.String(), hint)
}
