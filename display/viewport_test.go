package display

import "testing"

func newTestViewport(t *testing.T) *Viewport {
	t.Helper()
	v, err := NewViewport()
	if err != nil {
		t.Fatalf("NewViewport: %v", err)
	}
	v.SetSize(Vector2{X: 4, Y: 3})
	return v
}

func TestWriteASCIIAdvancesCursor(t *testing.T) {
	v := newTestViewport(t)
	v.WriteASCII('a')
	v.WriteASCII('b')
	if got := v.GetCursor(); got != (Vector2{X: 2, Y: 0}) {
		t.Fatalf("cursor = %+v, want {2 0}", got)
	}
	row, status := v.GetRow(0)
	if row[0].Character != 'a' || row[1].Character != 'b' {
		t.Fatalf("row = %+v", row)
	}
	if status.Length != 2 {
		t.Fatalf("status.Length = %d, want 2", status.Length)
	}
}

func TestWriteASCIIWrapsAtRightMargin(t *testing.T) {
	v := newTestViewport(t)
	for _, b := range []byte("abcd") {
		v.WriteASCII(b)
	}
	v.WriteASCII('e')
	if got := v.GetCursor(); got != (Vector2{X: 1, Y: 1}) {
		t.Fatalf("cursor = %+v, want {1 1}", got)
	}
	row0, status0 := v.GetRow(0)
	if string([]rune{row0[0].Character, row0[1].Character, row0[2].Character, row0[3].Character}) != "abcd" {
		t.Fatalf("row0 = %+v", row0)
	}
	if status0.IsLinebreak {
		t.Fatal("expected row 0 to NOT be a hard linebreak, only a wrap")
	}
	row1, _ := v.GetRow(1)
	if row1[0].Character != 'e' {
		t.Fatalf("row1[0] = %q, want 'e'", row1[0].Character)
	}
}

func TestNewlineEjectsOldestRowAtBottom(t *testing.T) {
	v := newTestViewport(t)
	v.WriteASCII('1')
	v.WriteASCII('\n')
	v.WriteASCII('2')
	v.WriteASCII('\n')
	v.WriteASCII('3')
	v.WriteASCII('\n')
	v.WriteASCII('4')

	row0, _ := v.GetRow(0)
	if row0[0].Character != '2' {
		t.Fatalf("row0[0] = %q, want '2' (row holding '1' should have scrolled into scrollback)", row0[0].Character)
	}
	lines := v.GetScrollbackBuffer().GetLines()
	if len(lines) == 0 {
		t.Fatal("expected at least one scrollback line")
	}
	cells := v.GetScrollbackBuffer().GetRow(lines[0])
	if len(cells) != 1 || cells[0].Character != '1' {
		t.Fatalf("scrollback row = %+v, want ['1']", cells)
	}
}

func TestCarriageReturnResetsColumn(t *testing.T) {
	v := newTestViewport(t)
	v.WriteASCII('a')
	v.WriteASCII('b')
	v.WriteASCII('\r')
	if got := v.GetCursor(); got.X != 0 {
		t.Fatalf("cursor.X = %d, want 0", got.X)
	}
}

func TestSetCursorClamps(t *testing.T) {
	v := newTestViewport(t)
	v.SetCursor(Vector2{X: 99, Y: 99})
	if got := v.GetCursor(); got != (Vector2{X: 3, Y: 2}) {
		t.Fatalf("cursor = %+v, want {3 2}", got)
	}
	v.SetCursor(Vector2{X: -5, Y: -5})
	if got := v.GetCursor(); got != (Vector2{X: 0, Y: 0}) {
		t.Fatalf("cursor = %+v, want {0 0}", got)
	}
}

func TestScrollUpWithinFullRegion(t *testing.T) {
	v := newTestViewport(t)
	v.WriteASCII('1')
	v.nextLineCursor(true)
	v.WriteASCII('2')
	v.nextLineCursor(true)
	v.WriteASCII('3')

	v.ScrollUp(1)

	row0, _ := v.GetRow(0)
	row2, _ := v.GetRow(2)
	if row0[0].Character != '2' {
		t.Fatalf("row0[0] after ScrollUp = %q, want '2'", row0[0].Character)
	}
	if row2[0].Character != 0 {
		t.Fatalf("row2[0] after ScrollUp = %q, want blank", row2[0].Character)
	}
}

func TestScrollUpRestrictedRegionDiscardsTop(t *testing.T) {
	v := newTestViewport(t)
	v.WriteASCII('1')
	v.nextLineCursor(true)
	v.WriteASCII('2')
	v.nextLineCursor(true)
	v.WriteASCII('3')

	v.SetScrollRegion(&ScrollRegion{Top: 1, Bottom: 2})
	v.ScrollUp(1)

	row0, _ := v.GetRow(0)
	if row0[0].Character != '1' {
		t.Fatalf("row0 outside region should be untouched, got %q", row0[0].Character)
	}
	row1, _ := v.GetRow(1)
	if row1[0].Character != '3' {
		t.Fatalf("row1 after scroll = %q, want '3'", row1[0].Character)
	}
	lines := v.GetScrollbackBuffer().GetLines()
	if len(lines) != 0 {
		t.Fatalf("restricted-region scroll must discard, not eject into scrollback; got %d lines", len(lines))
	}
}

func TestLinefeedAtScrollRegionBottomScrollsInstead(t *testing.T) {
	v := newTestViewport(t)
	v.SetScrollRegion(&ScrollRegion{Top: 0, Bottom: 1})
	v.WriteASCII('1')
	v.WriteASCII('\n')
	v.WriteASCII('2')
	v.WriteASCII('\n')
	v.WriteASCII('3')

	row0, _ := v.GetRow(0)
	if row0[0].Character != '2' {
		t.Fatalf("row0 = %q, want '2' (region-scoped scroll, not eject)", row0[0].Character)
	}
	row1, _ := v.GetRow(1)
	if row1[0].Character != '3' {
		t.Fatalf("row1 = %q, want '3'", row1[0].Character)
	}
	if got := v.GetCursor().Y; got != 1 {
		t.Fatalf("cursor.Y = %d, want 1 (stayed at region bottom)", got)
	}
}

func TestSetSizeReflowsLiveContent(t *testing.T) {
	v := newTestViewport(t)
	v.WriteASCII('a')
	v.WriteASCII('b')
	v.WriteASCII('\n')
	v.WriteASCII('c')

	v.SetSize(Vector2{X: 6, Y: 4})

	row0, _ := v.GetRow(0)
	if row0[0].Character != 'a' || row0[1].Character != 'b' {
		t.Fatalf("row0 after resize = %+v", row0[:2])
	}
	row1, _ := v.GetRow(1)
	if row1[0].Character != 'c' {
		t.Fatalf("row1 after resize = %+v", row1[:1])
	}
}

func TestLineDrawingTranslation(t *testing.T) {
	v := newTestViewport(t)
	v.SetLineDrawingCharset(true)
	v.WriteASCII('q')
	row0, _ := v.GetRow(0)
	if row0[0].Character != '─' {
		t.Fatalf("row0[0] = %q, want translated '─'", row0[0].Character)
	}
}
