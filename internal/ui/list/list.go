// Package list provides a generic scrollable list component.
package list

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/xiamiu/internal/ui"
	"github.com/llehouerou/xiamiu/internal/ui/cursor"
)

// Action represents what happened during Update.
type Action int

const (
	ActionNone   Action = iota
	ActionEnter         // Enter key pressed
	ActionDelete        // d or delete key
)

// Result is returned from Update to tell the parent what happened.
type Result struct {
	Action Action
	Index  int // item the action applies to (-1 if none)
}

// Model is a scrollable list. It handles navigation and returns actions for
// the parent to handle; the parent renders the rows in VisibleRange.
type Model[T any] struct {
	ui.Base
	items  []T
	cursor cursor.Cursor
}

// New creates a new list with the given scroll margin.
func New[T any](margin int) Model[T] {
	return Model[T]{cursor: cursor.New(margin)}
}

// SetItems replaces all items and keeps the cursor in bounds.
func (m *Model[T]) SetItems(items []T) {
	m.items = items
	m.cursor.Clamp(len(items), m.Height())
}

// Items returns the current items.
func (m Model[T]) Items() []T {
	return m.items
}

// Len returns the number of items.
func (m Model[T]) Len() int {
	return len(m.items)
}

// Selected returns the item under the cursor.
func (m Model[T]) Selected() (T, bool) {
	if m.cursor.Pos() >= len(m.items) {
		var zero T
		return zero, false
	}
	return m.items[m.cursor.Pos()], true
}

// SelectedIndex returns the cursor position.
func (m Model[T]) SelectedIndex() int {
	return m.cursor.Pos()
}

// Select moves the cursor to index i.
func (m *Model[T]) Select(i int) {
	m.cursor.Jump(i, len(m.items), m.Height())
}

// SelectFunc moves the cursor to the first item matching fn.
func (m *Model[T]) SelectFunc(fn func(T) bool) bool {
	for i, item := range m.items {
		if fn(item) {
			m.Select(i)
			return true
		}
	}
	return false
}

// Reset moves the cursor back to the top.
func (m *Model[T]) Reset() {
	m.cursor.Reset()
}

// VisibleRange returns [start, end) indices for rendering.
func (m Model[T]) VisibleRange() (start, end int) {
	return m.cursor.VisibleRange(len(m.items), m.Height())
}

// Update handles key presses and returns the action that occurred.
func (m *Model[T]) Update(msg tea.Msg) Result {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return Result{Index: -1}
	}
	if m.cursor.HandleKey(key.String(), len(m.items), m.Height()) {
		return Result{Index: -1}
	}
	if len(m.items) == 0 {
		return Result{Index: -1}
	}
	switch key.String() {
	case "enter":
		return Result{Action: ActionEnter, Index: m.cursor.Pos()}
	case "d", "delete":
		return Result{Action: ActionDelete, Index: m.cursor.Pos()}
	}
	return Result{Index: -1}
}
