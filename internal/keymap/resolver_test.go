package keymap

import (
	"slices"
	"testing"
)

func TestResolver_Resolve(t *testing.T) {
	r := Default()

	tests := []struct {
		key      string
		contexts []string
		expected Action
	}{
		{"q", nil, ActionQuit},
		{"ctrl+c", []string{ContextList}, ActionQuit},
		{"j", []string{ContextCursor}, ActionMoveDown},
		{"j", nil, ""},
		{"/", []string{ContextCursor, ContextList}, ActionFilter},
		{"/", []string{ContextCursor, ContextSearch}, ActionNewSearch},
		{"d", []string{ContextCursor, ContextDetail}, ActionDeleteComment},
		{"d", []string{ContextCursor, ContextList}, ""},
		{"2", []string{ContextList}, ActionViewArtists},
		{"unbound", []string{ContextList}, ""},
	}

	for _, tt := range tests {
		if got := r.Resolve(tt.key, tt.contexts...); got != tt.expected {
			t.Errorf("Resolve(%q, %v) = %q, want %q", tt.key, tt.contexts, got, tt.expected)
		}
	}
}

func TestResolver_ContextOrderWins(t *testing.T) {
	r := NewResolver([]Binding{
		{"a", []string{"x"}, "A", "first"},
		{"b", []string{"x"}, "B", "second"},
		{"g", []string{"x"}, "G", ContextGlobal},
	})

	if got := r.Resolve("x", "first", "second"); got != "a" {
		t.Errorf("Resolve() = %q, want a", got)
	}
	if got := r.Resolve("x", "second", "first"); got != "b" {
		t.Errorf("Resolve() = %q, want b", got)
	}
	if got := r.Resolve("x"); got != "g" {
		t.Errorf("Resolve() = %q, want g", got)
	}
}

func TestResolver_KeysFor(t *testing.T) {
	r := NewResolver([]Binding{
		{ActionOpen, []string{"enter"}, "Open", ContextCursor},
		{ActionOpen, []string{"enter", "o"}, "Open", ContextList},
	})

	keys := r.KeysFor(ActionOpen)
	if !slices.Equal(keys, []string{"enter", "o"}) {
		t.Errorf("KeysFor() = %v, want [enter o]", keys)
	}
	if r.KeysFor(ActionQuit) != nil {
		t.Error("KeysFor() of unbound action should be nil")
	}
}
