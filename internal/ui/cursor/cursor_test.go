package cursor

import "testing"

func TestNew(t *testing.T) {
	c := New(2)
	if c.Pos() != 0 || c.Offset() != 0 {
		t.Errorf("New() = pos %d offset %d, want 0 0", c.Pos(), c.Offset())
	}
}

func TestMove(t *testing.T) {
	tests := []struct {
		name       string
		margin     int
		initial    int
		delta      int
		len        int
		height     int
		wantPos    int
		wantOffset int
	}{
		{"down within bounds no scroll", 2, 0, 1, 10, 5, 1, 0},
		{"down scrolls with margin", 2, 0, 3, 10, 5, 3, 1},
		{"up clamps to 0", 2, 2, -5, 10, 5, 0, 0},
		{"down clamps to len-1", 2, 5, 15, 10, 5, 9, 5},
		{"short list never scrolls", 2, 0, 2, 3, 5, 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(tt.margin)
			c.Jump(tt.initial, tt.len, tt.height)
			c.Move(tt.delta, tt.len, tt.height)

			if c.Pos() != tt.wantPos {
				t.Errorf("pos = %d, want %d", c.Pos(), tt.wantPos)
			}
			if c.Offset() != tt.wantOffset {
				t.Errorf("offset = %d, want %d", c.Offset(), tt.wantOffset)
			}
		})
	}
}

func TestMove_EmptyList(t *testing.T) {
	c := New(2)
	c.Move(3, 0, 5)
	if c.Pos() != 0 || c.Offset() != 0 {
		t.Errorf("Move on empty list = pos %d offset %d, want 0 0", c.Pos(), c.Offset())
	}
}

func TestClamp_AfterShrink(t *testing.T) {
	c := New(1)
	c.Jump(8, 10, 4)

	c.Clamp(3, 4)

	if c.Pos() != 2 {
		t.Errorf("pos = %d, want 2", c.Pos())
	}
	if c.Offset() != 0 {
		t.Errorf("offset = %d, want 0", c.Offset())
	}
}

func TestVisibleRange(t *testing.T) {
	c := New(0)
	c.Jump(7, 10, 4)

	start, end := c.VisibleRange(10, 4)
	if start != 4 || end != 8 {
		t.Errorf("VisibleRange = [%d, %d), want [4, 8)", start, end)
	}

	if s, e := c.VisibleRange(0, 4); s != 0 || e != 0 {
		t.Errorf("VisibleRange on empty list = [%d, %d), want [0, 0)", s, e)
	}
}

func TestHandleKey(t *testing.T) {
	tests := []struct {
		key     string
		start   int
		wantPos int
		handled bool
	}{
		{"j", 0, 1, true},
		{"down", 0, 1, true},
		{"k", 3, 2, true},
		{"up", 0, 0, true},
		{"home", 5, 0, true},
		{"end", 0, 19, true},
		{"ctrl+d", 0, 5, true},
		{"ctrl+u", 10, 5, true},
		{"x", 4, 4, false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			c := New(2)
			c.Jump(tt.start, 20, 10)

			handled := c.HandleKey(tt.key, 20, 10)

			if handled != tt.handled {
				t.Errorf("HandleKey(%q) handled = %v, want %v", tt.key, handled, tt.handled)
			}
			if c.Pos() != tt.wantPos {
				t.Errorf("HandleKey(%q) pos = %d, want %d", tt.key, c.Pos(), tt.wantPos)
			}
		})
	}
}
